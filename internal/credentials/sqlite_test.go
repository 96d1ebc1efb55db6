package credentials

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/tessro/spot/internal/core"
)

func TestSQLiteStoreSaveLoad(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "credentials.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer store.Close()

	creds, err := store.Load()
	if err != nil {
		t.Fatalf("Load on empty db: %v", err)
	}
	if creds != nil {
		t.Errorf("expected nil credentials, got %+v", creds)
	}

	first := core.Credentials{Username: "alice", Token: "t1"}
	if err := store.Save(first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	expires := time.Now().Add(time.Hour).Truncate(time.Second)
	second := core.Credentials{Username: "bob", Token: "t2", TokenExpiresAt: expires}
	if err := store.Save(second); err != nil {
		t.Fatalf("Save again: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Username != "bob" || loaded.Token != "t2" {
		t.Errorf("expected bob/t2, got %s/%s", loaded.Username, loaded.Token)
	}
	if !loaded.TokenExpiresAt.Equal(expires) {
		t.Errorf("expected expiry %v, got %v", expires, loaded.TokenExpiresAt)
	}

	if err := store.Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	loaded, err = store.Load()
	if err != nil {
		t.Fatalf("Load after delete: %v", err)
	}
	if loaded != nil {
		t.Errorf("expected nil after delete, got %+v", loaded)
	}
}

func TestSQLiteStoreZeroExpiry(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "credentials.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer store.Close()

	if err := store.Save(core.Credentials{Username: "alice", Token: "t"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded.TokenExpiresAt.IsZero() {
		t.Errorf("expected zero expiry, got %v", loaded.TokenExpiresAt)
	}
}

func TestSQLiteStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.db")

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := store.Save(core.Credentials{Username: "alice", Token: "t"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	loaded, err := reopened.Load()
	if err != nil || loaded == nil || loaded.Username != "alice" {
		t.Errorf("expected alice after reopen, got %+v (err %v)", loaded, err)
	}
}

func TestNewSQLiteStoreSchemaError(t *testing.T) {
	// A directory cannot be opened as a database, so creating the schema fails.
	dir := t.TempDir()
	if _, err := NewSQLiteStore(dir); err == nil {
		t.Fatal("NewSQLiteStore() on a directory error = nil, want error")
	}
}
