package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/riskibarqy/football-performance/internal/domain/dataset"
	"github.com/riskibarqy/football-performance/internal/domain/matchstats"
	"github.com/riskibarqy/football-performance/internal/platform/cache"
	"github.com/riskibarqy/football-performance/internal/platform/id"
	"github.com/riskibarqy/football-performance/internal/platform/logging"
	"github.com/riskibarqy/football-performance/internal/platform/table"
)

// importantPairs are the metrics a dashboard cannot do without.
var importantPairs = []string{matchstats.ColumnTeam, matchstats.ColumnGoals, matchstats.ColumnPossession}

type DatasetService struct {
	repo    dataset.Repository
	ids     id.Generator
	metrics *TeamMetricsService
	long    *cache.Store[table.Table]
	logger  *logging.Logger
	now     func() time.Time
}

// NewDatasetService builds the service. longCache may be nil to disable
// caching of reshaped tables.
func NewDatasetService(
	repo dataset.Repository,
	ids id.Generator,
	metrics *TeamMetricsService,
	longCache *cache.Store[table.Table],
	logger *logging.Logger,
) *DatasetService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DatasetService{
		repo:    repo,
		ids:     ids,
		metrics: metrics,
		long:    longCache,
		logger:  logger,
		now:     time.Now,
	}
}

// Upload decodes and stores a wide CSV table. Missing home/away pairs of the
// important metrics are reported on the dataset, not rejected.
func (s *DatasetService) Upload(ctx context.Context, name string, body io.Reader) (_ dataset.Dataset, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DatasetService.Upload")
	defer func() { endSpan(span, err) }()

	name = strings.TrimSpace(name)
	if name == "" {
		return dataset.Dataset{}, fmt.Errorf("%w: dataset name is required", ErrInvalidInput)
	}

	wide, err := s.metrics.Decode(ctx, body)
	if err != nil {
		return dataset.Dataset{}, err
	}

	datasetID, err := s.ids.NewID()
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("generate dataset id: %w", err)
	}

	columns := wide.Columns()
	item := dataset.Dataset{
		ID:           datasetID,
		Name:         name,
		Columns:      columns,
		RowCount:     wide.NumRows(),
		HasPrefix:    matchstats.DetectPrefix(columns),
		MissingPairs: matchstats.MissingSidePairs(columns, importantPairs...),
		UploadedAt:   s.now().UTC(),
		Wide:         wide,
	}
	if err := item.Validate(); err != nil {
		return dataset.Dataset{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(item.MissingPairs) > 0 {
		s.logger.WarnContext(ctx, "dataset is missing home/away column pairs, some aggregates will be incomplete",
			"dataset_id", item.ID,
			"missing", item.MissingPairs,
		)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return dataset.Dataset{}, fmt.Errorf("create dataset: %w", err)
	}

	s.logger.InfoContext(ctx, "dataset uploaded",
		"dataset_id", item.ID,
		"name", item.Name,
		"rows", item.RowCount,
		"has_prefix", item.HasPrefix,
	)
	return item, nil
}

func (s *DatasetService) Get(ctx context.Context, datasetID string) (dataset.Dataset, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DatasetService.Get")
	defer span.End()

	datasetID = strings.TrimSpace(datasetID)
	if datasetID == "" {
		return dataset.Dataset{}, fmt.Errorf("%w: dataset id is required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByID(ctx, datasetID)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("get dataset: %w", err)
	}
	if !exists {
		return dataset.Dataset{}, fmt.Errorf("%w: dataset=%s", ErrNotFound, datasetID)
	}
	return item, nil
}

func (s *DatasetService) List(ctx context.Context) ([]dataset.Dataset, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	return items, nil
}

// Long returns the reshaped table of a dataset, narrowed to one season when
// season is set.
func (s *DatasetService) Long(ctx context.Context, datasetID, season string) (table.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DatasetService.Long")
	defer span.End()

	load := func(ctx context.Context) (table.Table, error) {
		item, err := s.Get(ctx, datasetID)
		if err != nil {
			return table.Table{}, err
		}
		return s.metrics.PrepareSeason(ctx, item.Wide, season)
	}
	if s.long == nil {
		return load(ctx)
	}
	return s.long.GetOrLoad(ctx, longCacheKey(datasetID, season), load)
}

func longCacheKey(datasetID, season string) string {
	return "long:" + strings.TrimSpace(datasetID) + ":" + season
}

func (s *DatasetService) Seasons(ctx context.Context, datasetID string) ([]string, error) {
	item, err := s.Get(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	return matchstats.Seasons(item.Wide), nil
}

func (s *DatasetService) Teams(ctx context.Context, datasetID, season string) ([]string, error) {
	item, err := s.Get(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	return matchstats.Teams(matchstats.FilterSeason(item.Wide, season)), nil
}

// TeamMatches lists long rows of a dataset, optionally for one team.
func (s *DatasetService) TeamMatches(ctx context.Context, datasetID, season, team string) ([]matchstats.TeamMatch, error) {
	long, err := s.Long(ctx, datasetID, season)
	if err != nil {
		return nil, err
	}
	matches, err := s.metrics.Matches(ctx, long)
	if err != nil {
		return nil, err
	}
	if team = strings.TrimSpace(team); team != "" {
		matches = matchstats.FilterTeam(matches, team)
	}
	return matches, nil
}

func (s *DatasetService) TeamSummary(ctx context.Context, datasetID, season, team string) (matchstats.TeamSummary, error) {
	long, err := s.Long(ctx, datasetID, season)
	if err != nil {
		return matchstats.TeamSummary{}, err
	}
	return s.metrics.Summary(ctx, long, strings.TrimSpace(team))
}

func (s *DatasetService) Rankings(ctx context.Context, datasetID, season string) ([]matchstats.TeamRanking, error) {
	long, err := s.Long(ctx, datasetID, season)
	if err != nil {
		return nil, err
	}
	return s.metrics.Rankings(ctx, long)
}
