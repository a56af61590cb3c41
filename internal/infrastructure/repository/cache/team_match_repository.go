package cache

import (
	"context"

	"github.com/riskibarqy/football-performance/internal/domain/matchstats"
	basecache "github.com/riskibarqy/football-performance/internal/platform/cache"
)

const teamMatchPrefix = "team-match:"

// TeamMatchRepository caches stored team-match reads per dataset. Writes drop
// every cached entry of the dataset.
type TeamMatchRepository struct {
	next  matchstats.Repository
	cache *basecache.Store[[]matchstats.StoredTeamMatch]
}

func NewTeamMatchRepository(next matchstats.Repository, cache *basecache.Store[[]matchstats.StoredTeamMatch]) *TeamMatchRepository {
	return &TeamMatchRepository{next: next, cache: cache}
}

func (r *TeamMatchRepository) ReplaceDataset(ctx context.Context, datasetID string, rows []matchstats.StoredTeamMatch) error {
	if err := r.next.ReplaceDataset(ctx, datasetID, rows); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, datasetKeyPrefix(datasetID))
	return nil
}

func (r *TeamMatchRepository) ListByDataset(ctx context.Context, datasetID string) ([]matchstats.StoredTeamMatch, error) {
	key := datasetKeyPrefix(datasetID) + "all"
	items, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) ([]matchstats.StoredTeamMatch, error) {
		items, err := r.next.ListByDataset(ctx, datasetID)
		if err != nil {
			return nil, err
		}
		return append([]matchstats.StoredTeamMatch(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]matchstats.StoredTeamMatch(nil), items...), nil
}

func (r *TeamMatchRepository) ListByDatasetAndTeam(ctx context.Context, datasetID, team string) ([]matchstats.StoredTeamMatch, error) {
	key := datasetKeyPrefix(datasetID) + "team:" + team
	items, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) ([]matchstats.StoredTeamMatch, error) {
		items, err := r.next.ListByDatasetAndTeam(ctx, datasetID, team)
		if err != nil {
			return nil, err
		}
		return append([]matchstats.StoredTeamMatch(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]matchstats.StoredTeamMatch(nil), items...), nil
}

func datasetKeyPrefix(datasetID string) string {
	return teamMatchPrefix + datasetID + ":"
}
