package localstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/archiveshq/storefront/pkg/config"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	cfg := config.StoreConfig{
		Driver:     config.StoreDriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "store.db"),
	}
	store, err := OpenSQLite(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("closing store: %v", err)
		}
	})
	return store
}

func TestSQLiteRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "archives-user", []byte(`{"email":"a@b.c"}`)); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := store.Get(ctx, "archives-user")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != `{"email":"a@b.c"}` {
		t.Fatalf("unexpected value: %s", got)
	}
}

func TestSQLiteSetOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte("one")); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := store.Set(ctx, "k", []byte("two")); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	got, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != "two" {
		t.Fatalf("expected overwrite, got %s", got)
	}
}

func TestSQLiteMissingKey(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// deleting an absent key is a no-op
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete of missing key failed: %v", err)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StoreConfig{Driver: "etcd"}, nil)
	if err == nil {
		t.Fatal("expected unknown driver to fail")
	}
}
