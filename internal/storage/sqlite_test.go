package storage

import (
	"bytes"
	"path/filepath"
	"testing"
)

func newTestKV(t *testing.T) *SQLiteKV {
	t.Helper()
	kv, err := NewSQLiteKV(filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestSQLiteKV_SetGetDelete(t *testing.T) {
	kv := newTestKV(t)

	if _, ok := kv.Get("missing"); ok {
		t.Error("Get on a missing key should report absence")
	}

	if err := kv.Set("favorites", []byte(`[{"id":550}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok := kv.Get("favorites")
	if !ok || !bytes.Equal(got, []byte(`[{"id":550}]`)) {
		t.Errorf("Get = %q, %v", got, ok)
	}

	if err := kv.Delete("favorites"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := kv.Get("favorites"); ok {
		t.Error("key should be gone after Delete")
	}
}

func TestSQLiteKV_SetReplacesExistingValue(t *testing.T) {
	kv := newTestKV(t)

	if err := kv.Set("k", []byte("old")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Set("k", []byte("new")); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, ok := kv.Get("k")
	if !ok || string(got) != "new" {
		t.Errorf("Get = %q, %v", got, ok)
	}
}

func TestSQLiteKV_DeleteMissingKeyIsNoError(t *testing.T) {
	kv := newTestKV(t)
	if err := kv.Delete("never-set"); err != nil {
		t.Errorf("Delete on missing key: %v", err)
	}
}

func TestNewSQLiteKV_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "settings.db")
	kv, err := NewSQLiteKV(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer kv.Close()

	if err := kv.Set("k", []byte("v")); err != nil {
		t.Errorf("Set: %v", err)
	}
}
