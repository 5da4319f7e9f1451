package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/leaguegen/internal/domain/model"
)

func rec(id string, seed int64) Record {
	return Record{JobID: id, Job: model.GenerationJob{ID: id, Name: "liga", Seed: seed}}
}

func TestMemoryStore_BasicOperations(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}

	if err := store.Put(ctx, rec("a", 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := store.Get(ctx, "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Job.Seed != 1 {
		t.Errorf("expected seed 1, got %d", got.Job.Seed)
	}

	// replacing keeps the original position
	if err := store.Put(ctx, rec("b", 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Put(ctx, rec("a", 3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 || list[0].JobID != "a" || list[1].JobID != "b" {
		t.Errorf("unexpected order: %+v", list)
	}
	if list[0].Job.Seed != 3 {
		t.Errorf("expected replaced record, got seed %d", list[0].Job.Seed)
	}
	if count := store.Count(ctx); count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
}

func TestMemoryStore_Errors(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.List(ctx, 0); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("expected ErrInvalidLimit, got %v", err)
	}
	if err := store.Put(ctx, Record{}); !errors.Is(err, ErrMissingJobID) {
		t.Errorf("expected ErrMissingJobID, got %v", err)
	}
}

func TestMemoryStore_MaxRecords(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithMaxRecords(2))

	for i, id := range []string{"a", "b", "c"} {
		if err := store.Put(ctx, rec(id, int64(i))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if count := store.Count(ctx); count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
	if _, err := store.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected oldest record to be evicted, got %v", err)
	}
	list, _ := store.List(ctx, 1)
	if len(list) != 1 || list[0].JobID != "b" {
		t.Errorf("expected b first, got %+v", list)
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				id := fmt.Sprintf("job-%d-%d", w, i)
				if err := store.Put(ctx, rec(id, int64(i))); err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				if _, err := store.Get(ctx, id); err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		}(w)
	}
	wg.Wait()

	if count := store.Count(ctx); count != 800 {
		t.Errorf("expected count 800, got %d", count)
	}
}
