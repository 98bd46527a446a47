package limits

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *UsageStore {
	t.Helper()
	store, err := OpenUsageStore(filepath.Join(t.TempDir(), "usage.db"))
	if err != nil {
		t.Fatalf("OpenUsageStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUsageStore_CountsAccumulate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	count, err := store.CountToday(ctx, "gemini")
	if err != nil {
		t.Fatalf("CountToday failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 requests for fresh store, got %d", count)
	}

	for i := 0; i < 3; i++ {
		if err := store.RecordRequest(ctx, "gemini"); err != nil {
			t.Fatalf("RecordRequest failed: %v", err)
		}
	}

	count, err = store.CountToday(ctx, "gemini")
	if err != nil {
		t.Fatalf("CountToday failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 requests, got %d", count)
	}
}

func TestUsageStore_ProvidersIndependent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.RecordRequest(ctx, "gemini"); err != nil {
		t.Fatal(err)
	}

	count, err := store.CountToday(ctx, "groq")
	if err != nil {
		t.Fatalf("CountToday failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected providers to be tracked independently, got %d", count)
	}
}

func TestUsageStore_DayRollover(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	yesterday := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)
	store.now = func() time.Time { return yesterday }
	if err := store.RecordRequest(ctx, "gemini"); err != nil {
		t.Fatal(err)
	}

	store.now = func() time.Time { return yesterday.Add(2 * time.Minute) }
	count, err := store.CountToday(ctx, "gemini")
	if err != nil {
		t.Fatalf("CountToday failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected fresh budget after UTC midnight, got %d", count)
	}
}

func TestUsageStore_Prune(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	old := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return old }
	if err := store.RecordRequest(ctx, "gemini"); err != nil {
		t.Fatal(err)
	}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	if err := store.Prune(ctx, 30*24*time.Hour); err != nil {
		t.Fatalf("Prune failed: %v", err)
	}

	store.now = func() time.Time { return old }
	count, err := store.CountToday(ctx, "gemini")
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("Expected pruned rows to be gone, got %d", count)
	}
}

func TestOpenUsageStore_EmptyPath(t *testing.T) {
	if _, err := OpenUsageStore(""); err == nil {
		t.Error("Expected error for empty path")
	}
}
