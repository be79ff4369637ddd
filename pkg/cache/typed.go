package cache

import (
	"encoding/json"
	"fmt"
	"time"
)

// GetTyped decodes the value under key into T. It reports false when the
// key is missing, expired or does not decode as T.
func GetTyped[T any](s *Store, key string) (T, time.Time, bool) {
	var zero T
	data, created, ok := s.Get(key)
	if !ok {
		return zero, time.Time{}, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return zero, time.Time{}, false
	}
	return v, created, true
}

// PutTyped encodes value as JSON and stores it under key.
func PutTyped[T any](s *Store, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal typed value for %q: %w", key, err)
	}
	return s.Put(key, data)
}
