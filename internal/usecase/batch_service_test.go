package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/riskibarqy/football-performance/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-performance/internal/platform/logging"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestBatchService_Reshape(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	datasets := newTestDatasetService(memory.NewDatasetRepository(nil), nil)

	first, err := datasets.Upload(ctx, "epl", sampleWide())
	require.NoError(t, err)
	second, err := datasets.Upload(ctx, "flat", strings.NewReader(unprefixedCSV))
	require.NoError(t, err)

	service := NewBatchService(datasets, 4, logging.NewNop())
	result, err := service.Reshape(ctx, BatchReshapeInput{
		DatasetIDs: []string{second.ID, " ", first.ID, "missing", first.ID},
		Season:     "",
		MaxWorkers: 8,
	})
	require.NoError(t, err)

	require.Equal(t, 3, result.TaskCount)
	require.Equal(t, 3, result.WorkerCount)
	require.Equal(t, 2, result.SuccessCount)
	require.Equal(t, 1, result.FailedCount)

	require.Equal(t, []string{"ds-1", "ds-2", "missing"}, []string{
		result.Tasks[0].DatasetID,
		result.Tasks[1].DatasetID,
		result.Tasks[2].DatasetID,
	})
	require.Equal(t, batchStatusSuccess, result.Tasks[0].Status)
	require.Equal(t, 3, result.Tasks[0].WideRows)
	require.Equal(t, 6, result.Tasks[0].LongRows)
	require.Equal(t, 2, result.Tasks[1].LongRows)
	require.Equal(t, batchStatusFailed, result.Tasks[2].Status)
	require.NotEmpty(t, result.Tasks[2].Message)
}

func TestBatchService_ReshapeRequiresIDs(t *testing.T) {
	defer goleak.VerifyNone(t)

	service := NewBatchService(newTestDatasetService(memory.NewDatasetRepository(nil), nil), 2, logging.NewNop())
	_, err := service.Reshape(context.Background(), BatchReshapeInput{DatasetIDs: []string{" ", ""}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNormalizeBatchWorkerCount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		requested int
		limit     int
		tasks     int
		want      int
	}{
		{name: "default to limit", requested: 0, limit: 4, tasks: 10, want: 4},
		{name: "requested under limit", requested: 2, limit: 4, tasks: 10, want: 2},
		{name: "requested over limit", requested: 9, limit: 4, tasks: 10, want: 4},
		{name: "capped by tasks", requested: 0, limit: 4, tasks: 3, want: 3},
		{name: "no tasks", requested: 0, limit: 4, tasks: 0, want: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeBatchWorkerCount(tc.requested, tc.limit, tc.tasks); got != tc.want {
				t.Fatalf("unexpected worker count: got=%d want=%d", got, tc.want)
			}
		})
	}
}
