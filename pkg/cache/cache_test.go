package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T, maxAge time.Duration) *Store {
	t.Helper()
	s, err := NewStore(StoreConfig{Dir: filepath.Join(t.TempDir(), "cache"), MaxAge: maxAge})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

type snapshot struct {
	IDs []string `json:"ids"`
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestStore(t, 0)

	data := []byte(`{"name":"test","count":42}`)
	if err := s.Put("mykey", data); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, created, ok := s.Get("mykey")
	if !ok {
		t.Fatal("expected hit")
	}
	if string(got) != string(data) {
		t.Errorf("round-trip mismatch: got %q, want %q", got, data)
	}
	if created.IsZero() {
		t.Error("expected a creation time")
	}
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t, 0)
	if _, _, ok := s.Get("nope"); ok {
		t.Error("expected miss")
	}
}

func TestPutRejectsInvalidJSON(t *testing.T) {
	s := newTestStore(t, 0)
	if err := s.Put("bad", []byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestExpiredEntryIsRemoved(t *testing.T) {
	s := newTestStore(t, time.Hour)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	if err := s.Put("k", []byte(`1`)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	s.now = func() time.Time { return base.Add(59 * time.Minute) }
	if _, _, ok := s.Get("k"); !ok {
		t.Fatal("entry should still be fresh")
	}

	s.now = func() time.Time { return base.Add(61 * time.Minute) }
	if _, _, ok := s.Get("k"); ok {
		t.Fatal("entry should have expired")
	}
	if _, err := os.Stat(s.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be deleted from disk")
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t, 0)
	_ = s.Put("k", []byte(`"v"`))
	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, _, ok := s.Get("k"); ok {
		t.Error("expected miss after delete")
	}
	if err := s.Delete("k"); err != nil {
		t.Errorf("deleting a missing key should succeed: %v", err)
	}
}

func TestFilesArePrivate(t *testing.T) {
	s := newTestStore(t, 0)
	_ = s.Put("k", []byte(`"secret"`))

	info, err := os.Stat(s.path("k"))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		t.Errorf("entry should not be group/world accessible, got %o", perm)
	}
	dir, err := os.Stat(s.cfg.Dir)
	if err != nil {
		t.Fatal(err)
	}
	if perm := dir.Mode().Perm(); perm != 0o700 {
		t.Errorf("expected 0700 directory, got %o", perm)
	}
}

func TestTypedRoundTrip(t *testing.T) {
	s := newTestStore(t, 0)
	if err := PutTyped(s, "history", snapshot{IDs: []string{"1", "2"}}); err != nil {
		t.Fatalf("PutTyped: %v", err)
	}
	got, _, ok := GetTyped[snapshot](s, "history")
	if !ok || len(got.IDs) != 2 || got.IDs[1] != "2" {
		t.Errorf("unexpected typed value: %+v ok=%v", got, ok)
	}
}

func TestTypedWrongShape(t *testing.T) {
	s := newTestStore(t, 0)
	_ = s.Put("history", []byte(`"a string"`))
	if _, _, ok := GetTyped[snapshot](s, "history"); ok {
		t.Error("expected miss for a value of the wrong shape")
	}
}

func TestHashKeyIsStable(t *testing.T) {
	if hashKey("a/b") != hashKey("a/b") || hashKey("a") == hashKey("b") {
		t.Error("hashKey should be deterministic and distinguish keys")
	}
	if len(hashKey("anything")) != 16 {
		t.Error("expected 16 hex characters")
	}
}
