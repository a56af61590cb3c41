package memory

import (
	"context"
	"testing"

	"github.com/riskibarqy/football-performance/internal/domain/dataset"
)

func TestDatasetRepository_CreateAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewDatasetRepository([]dataset.Dataset{{ID: "seeded", Name: "seed"}})

	if err := repo.Create(ctx, dataset.Dataset{ID: "ds2", Name: "second"}); err != nil {
		t.Fatalf("create dataset: %v", err)
	}
	if err := repo.Create(ctx, dataset.Dataset{ID: "ds2", Name: "dup"}); err == nil {
		t.Fatalf("expected duplicate id error")
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list datasets: %v", err)
	}
	if len(items) != 2 || items[0].ID != "seeded" || items[1].ID != "ds2" {
		t.Fatalf("unexpected list order: %+v", items)
	}

	got, ok, err := repo.GetByID(ctx, "ds2")
	if err != nil || !ok {
		t.Fatalf("get dataset: ok=%v err=%v", ok, err)
	}
	if got.Name != "second" {
		t.Fatalf("unexpected name: got=%s want=second", got.Name)
	}

	if _, ok, _ := repo.GetByID(ctx, "missing"); ok {
		t.Fatalf("expected missing dataset")
	}
}
