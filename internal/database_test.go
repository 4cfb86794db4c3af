package internal

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iksnae/digifarmer-sync/testutil"
)

// newTestStore returns an SQLiteStore over a fresh in-memory database
func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(testutil.CreateInMemoryDB(t))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	return store
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	store := newTestStore(t)

	value, ok, err := store.Get(context.Background(), "session:nope")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Errorf("Get() ok = true for missing key, value %q", value)
	}
}

func TestSQLiteStore_SetOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "alerts", "first"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(ctx, "alerts", "second"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	value, ok, err := store.Get(ctx, "alerts")
	if err != nil || !ok {
		t.Fatalf("Get() = %q, %v, %v", value, ok, err)
	}
	if value != "second" {
		t.Errorf("Get() = %q, want second", value)
	}
}

func TestSQLiteStore_Keys(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, key := range []string{"session:b", "session:a", "cache:market_prices", "sessionX", "session:%_odd"} {
		if err := store.Set(ctx, key, "{}"); err != nil {
			t.Fatalf("Set(%q) error = %v", key, err)
		}
	}

	got, err := store.Keys(ctx, "session:")
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	want := []string{"session:%_odd", "session:a", "session:b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}

	got, err = store.Keys(ctx, "session:%")
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if diff := cmp.Diff([]string{"session:%_odd"}, got); diff != "" {
		t.Errorf("Keys() should treat %% literally (-want +got):\n%s", diff)
	}
}

func TestSQLiteStore_ClosedDatabase(t *testing.T) {
	store := newTestStore(t)
	_ = store.Close()

	_, _, err := store.Get(context.Background(), "alerts")
	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("Get() on closed store error = %v, want *PersistenceError", err)
	}
	if perr.Op != "get" {
		t.Errorf("PersistenceError.Op = %q, want get", perr.Op)
	}

	if err := store.Set(context.Background(), "alerts", "x"); !errors.As(err, &perr) {
		t.Errorf("Set() on closed store error = %v, want *PersistenceError", err)
	}
}

func TestOpenStore_CreatesFile(t *testing.T) {
	path := testutil.CreateTempStorePath(t)

	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("store file not created: %v", err)
	}

	ctx := context.Background()
	if err := store.Set(ctx, "session:x", "v"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestOpenStore_Reopen(t *testing.T) {
	path := testutil.CreateTempStorePath(t)
	ctx := context.Background()

	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	if err := store.Set(ctx, "alerts", "kept"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	store.Close()

	store, err = OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore() reopen error = %v", err)
	}
	defer store.Close()

	value, ok, err := store.Get(ctx, "alerts")
	if err != nil || !ok || value != "kept" {
		t.Errorf("Get() after reopen = %q, %v, %v; want kept", value, ok, err)
	}
}
