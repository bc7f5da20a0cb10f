package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/piwi3910/kubeact/pkg/pipeline"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	ctx := context.Background()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate store: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestNewStoreRequiresPath(t *testing.T) {
	if _, err := NewStore(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestRecordAndList(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	rec := pipeline.Record{
		Argv:     []string{"kubectl", "create", "pod", "web-0"},
		RC:       0,
		Changed:  true,
		Facts:    1,
		Duration: 120 * time.Millisecond,
	}
	if err := store.Record(ctx, rec); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	invocations, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(invocations) != 1 {
		t.Fatalf("invocations = %d, want 1", len(invocations))
	}

	inv := invocations[0]
	if inv.ID == "" {
		t.Error("ID must be assigned")
	}
	if len(inv.Argv) != 4 || inv.Argv[0] != "kubectl" {
		t.Errorf("Argv = %v, want round-tripped vector", inv.Argv)
	}
	if !inv.Changed || inv.Failed {
		t.Errorf("verdict: changed=%v failed=%v, want changed only", inv.Changed, inv.Failed)
	}
	if inv.Duration != 120*time.Millisecond {
		t.Errorf("Duration = %v, want 120ms", inv.Duration)
	}
}

func TestListLimit(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		rec := pipeline.Record{Argv: []string{"kubectl", "get", "node"}, RC: 0}
		if err := store.Record(ctx, rec); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	invocations, err := store.List(ctx, 3)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(invocations) != 3 {
		t.Errorf("invocations = %d, want 3", len(invocations))
	}
}

func TestListEmptyJournal(t *testing.T) {
	store := setupTestStore(t)

	invocations, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(invocations) != 0 {
		t.Errorf("invocations = %d, want 0", len(invocations))
	}
}

func TestHealthCheck(t *testing.T) {
	store := setupTestStore(t)
	if err := store.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}

	uninitialized, err := NewStore(filepath.Join(t.TempDir(), "unused.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := uninitialized.HealthCheck(context.Background()); err == nil {
		t.Error("expected error before Init")
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := setupTestStore(t)
	if err := store.Migrate(context.Background()); err != nil {
		t.Errorf("second Migrate failed: %v", err)
	}
}
