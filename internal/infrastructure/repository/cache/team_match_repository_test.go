package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/football-performance/internal/domain/matchstats"
	matchstatsmock "github.com/riskibarqy/football-performance/internal/mocks/domain/matchstats"
	basecache "github.com/riskibarqy/football-performance/internal/platform/cache"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTeamMatchRepository_ListByDatasetCachesUntilReplace(t *testing.T) {
	ctx := context.Background()
	next := matchstatsmock.NewRepository(t)
	repo := NewTeamMatchRepository(next, basecache.NewStore[[]matchstats.StoredTeamMatch](time.Minute))

	first := []matchstats.StoredTeamMatch{{DatasetID: "ds1", RowIndex: 0}}
	second := []matchstats.StoredTeamMatch{{DatasetID: "ds1", RowIndex: 0}, {DatasetID: "ds1", RowIndex: 1}}

	next.On("ListByDataset", mock.Anything, "ds1").Return(first, nil).Once()
	next.On("ReplaceDataset", mock.Anything, "ds1", second).Return(nil).Once()
	next.On("ListByDataset", mock.Anything, "ds1").Return(second, nil).Once()

	got, err := repo.ListByDataset(ctx, "ds1")
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = repo.ListByDataset(ctx, "ds1")
	require.NoError(t, err)
	require.Len(t, got, 1)

	require.NoError(t, repo.ReplaceDataset(ctx, "ds1", second))

	got, err = repo.ListByDataset(ctx, "ds1")
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestTeamMatchRepository_ReplaceFailureKeepsCache(t *testing.T) {
	ctx := context.Background()
	next := matchstatsmock.NewRepository(t)
	repo := NewTeamMatchRepository(next, basecache.NewStore[[]matchstats.StoredTeamMatch](time.Minute))

	rows := []matchstats.StoredTeamMatch{{DatasetID: "ds1", RowIndex: 0, TeamMatch: matchstats.TeamMatch{Team: "A"}}}
	next.On("ListByDatasetAndTeam", mock.Anything, "ds1", "A").Return(rows, nil).Once()
	next.On("ReplaceDataset", mock.Anything, "ds1", mock.Anything).Return(errors.New("db down")).Once()

	_, err := repo.ListByDatasetAndTeam(ctx, "ds1", "A")
	require.NoError(t, err)

	require.Error(t, repo.ReplaceDataset(ctx, "ds1", nil))

	got, err := repo.ListByDatasetAndTeam(ctx, "ds1", "A")
	require.NoError(t, err)
	require.Equal(t, rows, got)
}
