package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/riskibarqy/football-performance/internal/domain/matchstats"
	"github.com/riskibarqy/football-performance/internal/platform/logging"
	"github.com/riskibarqy/football-performance/internal/platform/table"
)

type TeamMetricsConfig struct {
	// ColumnMappings overrides the default column-mapping table when set.
	ColumnMappings []matchstats.ColumnMapping
	RequirePrefix  bool
	DateLayouts    []string
}

// TeamMetricsService reshapes wide match tables into long team-match tables
// and aggregates them.
type TeamMetricsService struct {
	cfg    TeamMetricsConfig
	logger *logging.Logger
}

func NewTeamMetricsService(cfg TeamMetricsConfig, logger *logging.Logger) *TeamMetricsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamMetricsService{cfg: cfg, logger: logger}
}

func (s *TeamMetricsService) options() []matchstats.Option {
	opts := []matchstats.Option{
		matchstats.WithRequirePrefix(s.cfg.RequirePrefix),
		matchstats.WithColumnMappings(s.cfg.ColumnMappings),
	}
	if len(s.cfg.DateLayouts) > 0 {
		opts = append(opts, matchstats.WithDateLayouts(s.cfg.DateLayouts...))
	}
	return opts
}

// Decode reads a wide CSV table. Malformed CSV is an invalid input.
func (s *TeamMetricsService) Decode(ctx context.Context, r io.Reader) (table.Table, error) {
	_, span := startUsecaseSpan(ctx, "usecase.TeamMetricsService.Decode")
	defer span.End()

	if r == nil {
		return table.Table{}, fmt.Errorf("%w: csv body is required", ErrInvalidInput)
	}
	wide, err := table.DecodeCSV(r, table.CSVOptions{DateLayouts: s.cfg.DateLayouts})
	if err != nil {
		return table.Table{}, fmt.Errorf("%w: decode csv: %v", ErrInvalidInput, err)
	}
	return wide, nil
}

// Prepare reshapes a wide table into the long team-match table.
func (s *TeamMetricsService) Prepare(ctx context.Context, wide table.Table) (_ table.Table, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamMetricsService.Prepare")
	defer func() { endSpan(span, err) }()

	if wide.Valid() && !matchstats.DetectPrefix(wide.Columns()) && !s.cfg.RequirePrefix {
		s.logger.WarnContext(ctx, "wide table has no home_/away_ column pairs, both sides read the whole table",
			"columns", wide.Columns(),
			"rows", wide.NumRows(),
		)
	}

	long, err := matchstats.PrepareTeamMetrics(wide, s.options()...)
	if err != nil {
		if errors.Is(err, matchstats.ErrUnprefixedSchema) || errors.Is(err, table.ErrInvalidTable) {
			return table.Table{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return table.Table{}, fmt.Errorf("prepare team metrics: %w", err)
	}
	return long, nil
}

// PrepareSeason reshapes the rows of one season. An empty season keeps every
// row.
func (s *TeamMetricsService) PrepareSeason(ctx context.Context, wide table.Table, season string) (table.Table, error) {
	return s.Prepare(ctx, matchstats.FilterSeason(wide, season))
}

// PrepareCSV decodes a wide CSV table and reshapes it.
func (s *TeamMetricsService) PrepareCSV(ctx context.Context, r io.Reader) (table.Table, error) {
	wide, err := s.Decode(ctx, r)
	if err != nil {
		return table.Table{}, err
	}
	return s.Prepare(ctx, wide)
}

func (s *TeamMetricsService) Matches(ctx context.Context, long table.Table) ([]matchstats.TeamMatch, error) {
	_, span := startUsecaseSpan(ctx, "usecase.TeamMetricsService.Matches")
	defer span.End()

	matches, err := matchstats.TeamMatchesFromTable(long)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return matches, nil
}

func (s *TeamMetricsService) Summary(ctx context.Context, long table.Table, team string) (matchstats.TeamSummary, error) {
	if team == "" {
		return matchstats.TeamSummary{}, fmt.Errorf("%w: team is required", ErrInvalidInput)
	}
	matches, err := s.Matches(ctx, long)
	if err != nil {
		return matchstats.TeamSummary{}, err
	}
	summary := matchstats.Summarize(matches, team)
	if summary.Matches == 0 {
		return matchstats.TeamSummary{}, fmt.Errorf("%w: no matches for team=%s", ErrNotFound, team)
	}
	return summary, nil
}

func (s *TeamMetricsService) Rankings(ctx context.Context, long table.Table) ([]matchstats.TeamRanking, error) {
	matches, err := s.Matches(ctx, long)
	if err != nil {
		return nil, err
	}
	return matchstats.RankTeams(matches), nil
}
