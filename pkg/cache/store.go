// Package cache keeps the last history listing on disk so the picker can
// paint immediately on start, before the daemon answers.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// StoreConfig holds configuration for a cache Store.
type StoreConfig struct {
	// Dir is the directory where entries are stored. It is created with
	// mode 0700 because entries hold clipboard contents.
	Dir string

	// MaxAge bounds how old an entry may be and still be returned.
	// Zero means entries never expire.
	MaxAge time.Duration
}

// entry is the JSON envelope written for each key.
type entry struct {
	Key     string          `json:"key"`
	Created time.Time       `json:"created"`
	Data    json.RawMessage `json:"data"`
}

// Store is a small disk-backed key-value cache. Each key lives in its own
// file named by a hash of the key; writes are atomic via temp-file-then-
// rename.
type Store struct {
	cfg StoreConfig
	now func() time.Time

	mu sync.Mutex
}

// NewStore creates the cache directory if needed and returns a Store.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.Dir == "" {
		return nil, errors.New("cache: no directory")
	}
	if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("cache: create %s: %w", cfg.Dir, err)
	}
	return &Store{cfg: cfg, now: time.Now}, nil
}

// Get returns the raw value stored under key and when it was written.
// Missing, unreadable and expired entries report false; expired entries are
// removed.
func (s *Store) Get(key string) ([]byte, time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, false
	}
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil || e.Key != key {
		return nil, time.Time{}, false
	}
	if s.cfg.MaxAge > 0 && s.now().Sub(e.Created) > s.cfg.MaxAge {
		os.Remove(path)
		return nil, time.Time{}, false
	}
	return e.Data, e.Created, true
}

// Put stores value, which must be valid JSON, under key.
func (s *Store) Put(key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("cache: value for %q is not valid JSON", key)
	}
	data, err := json.Marshal(entry{Key: key, Created: s.now().UTC(), Data: value})
	if err != nil {
		return fmt.Errorf("cache: encode %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := atomicWrite(s.path(key), data, s.cfg.Dir); err != nil {
		return fmt.Errorf("cache: write %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cache: delete %q: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.cfg.Dir, hashKey(key)+".json")
}

// hashKey returns a filesystem-safe name for key: the first 16 hex
// characters of its SHA-256.
func hashKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:8])
}

// atomicWrite writes data to path via a 0600 temporary file and rename.
func atomicWrite(path string, data []byte, tmpDir string) error {
	tmp, err := os.CreateTemp(tmpDir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	success = true
	return nil
}
