package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/football-performance/internal/domain/matchstats"
)

type TeamMatchRepository struct {
	mu        sync.RWMutex
	byDataset map[string][]matchstats.StoredTeamMatch
}

func NewTeamMatchRepository() *TeamMatchRepository {
	return &TeamMatchRepository{
		byDataset: make(map[string][]matchstats.StoredTeamMatch),
	}
}

func (r *TeamMatchRepository) ReplaceDataset(_ context.Context, datasetID string, rows []matchstats.StoredTeamMatch) error {
	items := make([]matchstats.StoredTeamMatch, 0, len(rows))
	for _, row := range rows {
		row.DatasetID = datasetID
		items = append(items, row)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].RowIndex < items[j].RowIndex
	})

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(items) == 0 {
		delete(r.byDataset, datasetID)
		return nil
	}
	r.byDataset[datasetID] = items

	return nil
}

func (r *TeamMatchRepository) ListByDataset(_ context.Context, datasetID string) ([]matchstats.StoredTeamMatch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]matchstats.StoredTeamMatch{}, r.byDataset[datasetID]...), nil
}

func (r *TeamMatchRepository) ListByDatasetAndTeam(_ context.Context, datasetID, team string) ([]matchstats.StoredTeamMatch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchstats.StoredTeamMatch, 0)
	for _, row := range r.byDataset[datasetID] {
		if row.Team == team {
			out = append(out, row)
		}
	}

	return out, nil
}
