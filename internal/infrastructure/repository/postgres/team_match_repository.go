package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-performance/internal/domain/matchstats"
	qb "github.com/riskibarqy/football-performance/internal/platform/querybuilder"
	"github.com/riskibarqy/football-performance/internal/platform/resilience"
)

// insertChunkSize keeps one INSERT under the postgres bind parameter limit.
const insertChunkSize = 500

type TeamMatchRepository struct {
	db      *sqlx.DB
	breaker *resilience.CircuitBreaker
}

// NewTeamMatchRepository guards every statement with breaker. A nil breaker
// disables the guard.
func NewTeamMatchRepository(db *sqlx.DB, breaker *resilience.CircuitBreaker) *TeamMatchRepository {
	return &TeamMatchRepository{db: db, breaker: breaker}
}

func (r *TeamMatchRepository) ReplaceDataset(ctx context.Context, datasetID string, rows []matchstats.StoredTeamMatch) error {
	return r.guard(func() error {
		return r.replaceDataset(ctx, datasetID, rows)
	})
}

func (r *TeamMatchRepository) replaceDataset(ctx context.Context, datasetID string, rows []matchstats.StoredTeamMatch) error {
	deleteQuery, deleteArgs, err := qb.DeleteFrom(teamMatchTable).
		Where(qb.Eq("dataset_id", datasetID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete team matches query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace team matches: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete team matches dataset_id=%s: %w", datasetID, err)
	}

	models := make([]teamMatchTableModel, 0, len(rows))
	for _, row := range rows {
		row.DatasetID = datasetID
		models = append(models, teamMatchToRow(row))
	}
	for start := 0; start < len(models); start += insertChunkSize {
		end := min(start+insertChunkSize, len(models))
		query, args, err := qb.InsertModels(teamMatchTable, models[start:end], "")
		if err != nil {
			return fmt.Errorf("build insert team matches query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert team matches dataset_id=%s: %w", datasetID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace team matches tx: %w", err)
	}
	return nil
}

func (r *TeamMatchRepository) ListByDataset(ctx context.Context, datasetID string) ([]matchstats.StoredTeamMatch, error) {
	return r.list(ctx, "list team matches by dataset",
		qb.Eq("dataset_id", datasetID),
	)
}

func (r *TeamMatchRepository) ListByDatasetAndTeam(ctx context.Context, datasetID, team string) ([]matchstats.StoredTeamMatch, error) {
	return r.list(ctx, "list team matches by dataset and team",
		qb.Eq("dataset_id", datasetID),
		qb.Eq("team", team),
	)
}

func (r *TeamMatchRepository) list(ctx context.Context, op string, conditions ...qb.Condition) ([]matchstats.StoredTeamMatch, error) {
	columns, err := qb.Columns(teamMatchTableModel{})
	if err != nil {
		return nil, fmt.Errorf("%s columns: %w", op, err)
	}
	query, args, err := qb.Select(columns...).
		From(teamMatchTable).
		Where(conditions...).
		OrderBy("row_index").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []teamMatchTableModel
	err = r.guard(func() error {
		return r.db.SelectContext(ctx, &rows, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]matchstats.StoredTeamMatch, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamMatchFromRow(row))
	}
	return out, nil
}

func (r *TeamMatchRepository) guard(fn func() error) error {
	if r.breaker == nil {
		return fn()
	}
	return r.breaker.Do(fn, isCallerError)
}

// isCallerError reports errors that say nothing about database health.
func isCallerError(err error) bool {
	return isNotFound(err) || errors.Is(err, context.Canceled)
}
