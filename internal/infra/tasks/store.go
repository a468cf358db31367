package tasks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"mcpstarter/internal/domain"
)

var tasksBucket = []byte("tasks")

// Store archives finished tasks in a bbolt database.
type Store struct {
	mu     sync.RWMutex
	db     *bolt.DB
	path   string
	closed bool
}

func OpenStore(path string) (*Store, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("task store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, fmt.Errorf("ensure task store dir: %w", err)
	}
	db, err := bolt.Open(trimmed, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open task store: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(tasksBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init task store: %w", err)
	}
	return &Store{db: db, path: trimmed}, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *Store) Put(record domain.TaskRecord) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return domain.ErrStoreClosed
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode task %s: %w", record.Task.TaskID, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(tasksBucket).Put([]byte(record.Task.TaskID), raw)
	})
}

func (s *Store) Get(taskID string) (domain.TaskRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return domain.TaskRecord{}, false, domain.ErrStoreClosed
	}
	var (
		record domain.TaskRecord
		found  bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(tasksBucket).Get([]byte(taskID))
		if raw == nil {
			return nil
		}
		found = true
		return json.Unmarshal(raw, &record)
	})
	if err != nil {
		return domain.TaskRecord{}, false, fmt.Errorf("read task %s: %w", taskID, err)
	}
	return record, found, nil
}

// Count returns the number of archived tasks.
func (s *Store) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, domain.ErrStoreClosed
	}
	count := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(tasksBucket).Stats().KeyN
		return nil
	})
	return count, err
}

var _ domain.TaskArchive = (*Store)(nil)
