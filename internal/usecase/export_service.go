package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/football-performance/internal/domain/matchstats"
	"github.com/riskibarqy/football-performance/internal/platform/logging"
	"github.com/riskibarqy/football-performance/internal/platform/resilience"
)

type ExportResult struct {
	DatasetID string `json:"dataset_id"`
	Season    string `json:"season,omitempty"`
	Rows      int    `json:"rows"`
}

// ExportService persists reshaped team-match rows.
type ExportService struct {
	datasets *DatasetService
	repo     matchstats.Repository
	logger   *logging.Logger
}

func NewExportService(datasets *DatasetService, repo matchstats.Repository, logger *logging.Logger) *ExportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ExportService{datasets: datasets, repo: repo, logger: logger}
}

// Export replaces the stored rows of a dataset with its current long table.
func (s *ExportService) Export(ctx context.Context, datasetID, season string) (_ ExportResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExportService.Export")
	defer func() { endSpan(span, err) }()

	if s.repo == nil {
		return ExportResult{}, fmt.Errorf("%w: team match storage is not configured", ErrDependencyUnavailable)
	}

	datasetID = strings.TrimSpace(datasetID)
	matches, err := s.datasets.TeamMatches(ctx, datasetID, season, "")
	if err != nil {
		return ExportResult{}, err
	}

	rows := make([]matchstats.StoredTeamMatch, 0, len(matches))
	for i, m := range matches {
		rows = append(rows, matchstats.StoredTeamMatch{
			DatasetID: datasetID,
			RowIndex:  i,
			TeamMatch: m,
		})
	}

	if err := s.repo.ReplaceDataset(ctx, datasetID, rows); err != nil {
		return ExportResult{}, mapStorageError("replace team matches", err)
	}

	s.logger.InfoContext(ctx, "team matches exported",
		"dataset_id", datasetID,
		"season", season,
		"rows", len(rows),
	)
	return ExportResult{DatasetID: datasetID, Season: season, Rows: len(rows)}, nil
}

// Exported lists the stored rows of a dataset, optionally for one team.
func (s *ExportService) Exported(ctx context.Context, datasetID, team string) (_ []matchstats.StoredTeamMatch, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExportService.Exported")
	defer func() { endSpan(span, err) }()

	if s.repo == nil {
		return nil, fmt.Errorf("%w: team match storage is not configured", ErrDependencyUnavailable)
	}
	datasetID = strings.TrimSpace(datasetID)
	if datasetID == "" {
		return nil, fmt.Errorf("%w: dataset id is required", ErrInvalidInput)
	}

	var rows []matchstats.StoredTeamMatch
	if team = strings.TrimSpace(team); team != "" {
		rows, err = s.repo.ListByDatasetAndTeam(ctx, datasetID, team)
	} else {
		rows, err = s.repo.ListByDataset(ctx, datasetID)
	}
	if err != nil {
		return nil, mapStorageError("list team matches", err)
	}
	return rows, nil
}

func mapStorageError(op string, err error) error {
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return fmt.Errorf("%w: %s: %v", ErrDependencyUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
