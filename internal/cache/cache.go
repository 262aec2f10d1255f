package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Store is a durable URL -> raw response body mapping. Entries accumulate
// monotonically: nothing is ever invalidated or expired within a run.
type Store interface {
	Get(key string) (string, bool)
	Put(key, value string)
	Flush() error
}

type fileStore struct {
	path    string
	mutex   sync.Mutex
	entries map[string]string
}

// NewFileStore loads the cache file at path, starting empty when the file
// is missing or unreadable.
func NewFileStore(path string) Store {
	s := &fileStore{
		path:    path,
		entries: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Infof("Starting with empty cache at %s", path)
		return s
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		log.Warnf("Cache file %s is corrupt, starting empty: %v", path, err)
		s.entries = make(map[string]string)
		return s
	}

	log.Infof("Loaded %d cached responses from %s", len(s.entries), path)
	return s
}

func (s *fileStore) Get(key string) (string, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	value, ok := s.entries[key]
	return value, ok
}

func (s *fileStore) Put(key, value string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.entries[key] = value
}

// Flush rewrites the whole cache file. The write goes to a temp file first
// and is renamed into place, so an interrupted flush never corrupts
// previously flushed entries.
func (s *fileStore) Flush() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	data, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("failed to serialize cache: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".cache-*")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp cache file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace cache file: %w", err)
	}

	return nil
}
