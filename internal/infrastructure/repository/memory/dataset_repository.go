package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/football-performance/internal/domain/dataset"
)

type DatasetRepository struct {
	mu     sync.RWMutex
	items  map[string]dataset.Dataset
	orders []string
}

func NewDatasetRepository(datasets []dataset.Dataset) *DatasetRepository {
	items := make(map[string]dataset.Dataset, len(datasets))
	orders := make([]string, 0, len(datasets))

	for _, d := range datasets {
		items[d.ID] = d
		orders = append(orders, d.ID)
	}

	return &DatasetRepository{
		items:  items,
		orders: orders,
	}
}

func (r *DatasetRepository) Create(_ context.Context, d dataset.Dataset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[d.ID]; exists {
		return fmt.Errorf("dataset %s already exists", d.ID)
	}
	r.items[d.ID] = d
	r.orders = append(r.orders, d.ID)

	return nil
}

func (r *DatasetRepository) GetByID(_ context.Context, id string) (dataset.Dataset, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.items[id]
	if !ok {
		return dataset.Dataset{}, false, nil
	}

	return d, true, nil
}

// List returns datasets in upload order.
func (r *DatasetRepository) List(_ context.Context) ([]dataset.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dataset.Dataset, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}
