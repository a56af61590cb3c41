package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/football-performance/internal/app"
	"github.com/riskibarqy/football-performance/internal/domain/matchstats"
	"github.com/riskibarqy/football-performance/internal/platform/logging"
	"github.com/riskibarqy/football-performance/internal/platform/table"
	"github.com/riskibarqy/football-performance/internal/usecase"
)

const maxConcurrentFiles = 4

type globalOptions struct {
	Aliases       string
	RequirePrefix bool
	LogLevel      string `validate:"omitempty,oneof=debug info warn warning error"`
}

type outputOptions struct {
	Format string `validate:"oneof=csv json"`
	Season string `validate:"max=64"`
}

type seasonOptions struct {
	Season string `validate:"max=64"`
}

type summaryOptions struct {
	Team   string `validate:"required,max=128"`
	Season string `validate:"max=64"`
}

type runner struct {
	out      io.Writer
	global   globalOptions
	validate *validator.Validate
	logger   *logging.Logger
	metrics  *usecase.TeamMetricsService
}

func newRootCommand(out io.Writer) *cobra.Command {
	r := &runner{out: out, validate: validator.New()}

	root := &cobra.Command{
		Use:           "metrics",
		Short:         "Reshape wide football match tables into per-team rows",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return r.setup()
		},
	}
	root.PersistentFlags().StringVar(&r.global.Aliases, "aliases", os.Getenv("COLUMN_ALIASES_FILE"), "YAML column alias file")
	root.PersistentFlags().BoolVar(&r.global.RequirePrefix, "require-prefix", false, "reject tables without home_/away_ columns")
	root.PersistentFlags().StringVar(&r.global.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(r.reshapeCmd(), r.detectCmd(), r.summaryCmd(), r.rankingsCmd())
	return root
}

func (r *runner) setup() error {
	if err := r.validate.Struct(r.global); err != nil {
		return errors.Wrap(err, "invalid options")
	}

	r.logger = logging.NewConsole(logging.ParseLevel(r.global.LogLevel))
	mappings, err := app.LoadColumnMappings(r.global.Aliases)
	if err != nil {
		return err
	}
	r.metrics = usecase.NewTeamMetricsService(usecase.TeamMetricsConfig{
		ColumnMappings: mappings,
		RequirePrefix:  r.global.RequirePrefix,
	}, r.logger)
	return nil
}

func (r *runner) reshapeCmd() *cobra.Command {
	opts := outputOptions{}
	cmd := &cobra.Command{
		Use:   "reshape FILE...",
		Short: "Reshape one or more wide CSV files into one long table",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.validate.Struct(opts); err != nil {
				return errors.Wrap(err, "invalid options")
			}
			long, err := r.reshapeFiles(cmd.Context(), args, opts.Season)
			if err != nil {
				return err
			}
			return r.writeLong(long, opts.Format)
		},
	}
	cmd.Flags().StringVar(&opts.Format, "format", "csv", "output format (csv, json)")
	cmd.Flags().StringVar(&opts.Season, "season", "", "keep only matches of this season")
	return cmd
}

func (r *runner) detectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect FILE",
		Short: "Report whether a wide CSV file carries home_/away_ columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wide, err := r.loadWide(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeDetection(r.out, args[0], wide)
		},
	}
}

func (r *runner) summaryCmd() *cobra.Command {
	opts := summaryOptions{}
	cmd := &cobra.Command{
		Use:   "summary FILE",
		Short: "Print the headline numbers of one team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.validate.Struct(opts); err != nil {
				return errors.Wrap(err, "invalid options")
			}
			long, err := r.reshapeFiles(cmd.Context(), args, opts.Season)
			if err != nil {
				return err
			}
			summary, err := r.metrics.Summary(cmd.Context(), long, opts.Team)
			if err != nil {
				return err
			}
			return writeJSON(r.out, summaryToOutput(summary))
		},
	}
	cmd.Flags().StringVar(&opts.Team, "team", "", "team name")
	cmd.Flags().StringVar(&opts.Season, "season", "", "keep only matches of this season")
	return cmd
}

func (r *runner) rankingsCmd() *cobra.Command {
	opts := seasonOptions{}
	cmd := &cobra.Command{
		Use:   "rankings FILE",
		Short: "Rank teams by goals scored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.validate.Struct(opts); err != nil {
				return errors.Wrap(err, "invalid options")
			}
			long, err := r.reshapeFiles(cmd.Context(), args, opts.Season)
			if err != nil {
				return err
			}
			rankings, err := r.metrics.Rankings(cmd.Context(), long)
			if err != nil {
				return err
			}
			return writeRankings(r.out, rankings)
		},
	}
	cmd.Flags().StringVar(&opts.Season, "season", "", "keep only matches of this season")
	return cmd
}

// reshapeFiles loads every file concurrently and concatenates the long
// tables in argument order.
func (r *runner) reshapeFiles(ctx context.Context, paths []string, season string) (table.Table, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	longs := make([]table.Table, len(paths))
	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(maxConcurrentFiles)
	for i, path := range paths {
		p.Go(func(ctx context.Context) error {
			wide, err := r.loadWide(ctx, path)
			if err != nil {
				return err
			}
			long, err := r.metrics.PrepareSeason(ctx, wide, season)
			if err != nil {
				return errors.Wrapf(err, "reshape %s", path)
			}
			longs[i] = long
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return table.Table{}, err
	}

	long, err := table.Concat(longs...)
	if err != nil {
		return table.Table{}, errors.Wrap(err, "combine reshaped files")
	}
	r.logger.Debug("files reshaped", "files", len(paths), "rows", long.NumRows())
	return long, nil
}

func (r *runner) loadWide(ctx context.Context, path string) (table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table.Table{}, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	wide, err := r.metrics.Decode(ctx, f)
	if err != nil {
		return table.Table{}, errors.Wrapf(err, "read %s", path)
	}
	return wide, nil
}

func (r *runner) writeLong(long table.Table, format string) error {
	if format == "json" {
		matches, err := matchstats.TeamMatchesFromTable(long)
		if err != nil {
			return err
		}
		return writeJSON(r.out, matchesToOutput(matches))
	}
	if err := table.EncodeCSV(r.out, long); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
