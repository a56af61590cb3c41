package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/football-performance/internal/domain/matchstats"
	"github.com/riskibarqy/football-performance/internal/platform/logging"
	"github.com/riskibarqy/football-performance/internal/platform/table"
)

type BatchReshapeInput struct {
	DatasetIDs []string
	Season     string
	MaxWorkers int
}

type BatchReshapeResult struct {
	TaskCount    int                `json:"task_count"`
	SuccessCount int                `json:"success_count"`
	FailedCount  int                `json:"failed_count"`
	WorkerCount  int                `json:"worker_count"`
	Tasks        []BatchReshapeTask `json:"tasks"`
}

type BatchReshapeTask struct {
	DatasetID  string `json:"dataset_id"`
	Status     string `json:"status"`
	WideRows   int    `json:"wide_rows"`
	LongRows   int    `json:"long_rows"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

const (
	batchStatusSuccess = "success"
	batchStatusFailed  = "failed"
)

// BatchService reshapes several datasets concurrently.
type BatchService struct {
	datasets   *DatasetService
	maxWorkers int
	logger     *logging.Logger
}

func NewBatchService(datasets *DatasetService, maxWorkers int, logger *logging.Logger) *BatchService {
	if logger == nil {
		logger = logging.Default()
	}
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &BatchService{datasets: datasets, maxWorkers: maxWorkers, logger: logger}
}

// Reshape reshapes every requested dataset in a bounded worker pool. A failing
// dataset is reported in its task and does not fail the batch. Tasks are
// ordered by dataset id.
func (s *BatchService) Reshape(ctx context.Context, input BatchReshapeInput) (BatchReshapeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BatchService.Reshape")
	defer span.End()

	ids := normalizeDatasetIDs(input.DatasetIDs)
	if len(ids) == 0 {
		return BatchReshapeResult{}, fmt.Errorf("%w: at least one dataset id is required", ErrInvalidInput)
	}

	workerCount := normalizeBatchWorkerCount(input.MaxWorkers, s.maxWorkers, len(ids))
	result := BatchReshapeResult{
		TaskCount:   len(ids),
		WorkerCount: workerCount,
		Tasks:       make([]BatchReshapeTask, 0, len(ids)),
	}

	results := make(chan BatchReshapeTask, len(ids))
	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return BatchReshapeResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, datasetID := range ids {
		datasetID := datasetID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := s.reshapeOne(ctx, datasetID, input.Season)
			row.DurationMs = time.Since(start).Milliseconds()
			if row.Status == batchStatusSuccess {
				successCount.Add(1)
			} else {
				failedCount.Add(1)
			}
			results <- row
		}); err != nil {
			workers.Done()
			return BatchReshapeResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}
	sort.SliceStable(result.Tasks, func(i, j int) bool {
		return result.Tasks[i].DatasetID < result.Tasks[j].DatasetID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	s.logger.InfoContext(ctx, "batch reshape finished",
		"tasks", result.TaskCount,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
		"workers", result.WorkerCount,
	)
	return result, nil
}

func (s *BatchService) reshapeOne(ctx context.Context, datasetID, season string) BatchReshapeTask {
	row := BatchReshapeTask{DatasetID: datasetID, Status: batchStatusFailed}

	item, err := s.datasets.Get(ctx, datasetID)
	if err != nil {
		row.Message = err.Error()
		return row
	}
	var long table.Table
	if long, err = s.datasets.Long(ctx, datasetID, season); err != nil {
		s.logger.WarnContext(ctx, "batch reshape dataset failed", "dataset_id", datasetID, "error", err)
		row.Message = err.Error()
		return row
	}

	row.Status = batchStatusSuccess
	row.WideRows = matchstats.FilterSeason(item.Wide, season).NumRows()
	row.LongRows = long.NumRows()
	return row
}

func normalizeDatasetIDs(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	out := make([]string, 0, len(input))
	for _, raw := range input {
		datasetID := strings.TrimSpace(raw)
		if datasetID == "" {
			continue
		}
		if _, ok := seen[datasetID]; ok {
			continue
		}
		seen[datasetID] = struct{}{}
		out = append(out, datasetID)
	}
	return out
}

func normalizeBatchWorkerCount(requested, limit, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	value := requested
	if value <= 0 || value > limit {
		value = limit
	}
	if value > taskCount {
		value = taskCount
	}
	if value < 1 {
		value = 1
	}
	return value
}
