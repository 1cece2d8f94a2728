package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"social_agent/internal/domain"
)

const lockRetryDelay = 10 * time.Millisecond

// Store keeps the post history as one JSON array document on disk.
//
// Every agent command is its own process, so read-modify-write cycles are
// serialized across processes with an advisory lock on <path>.lock. Readers
// take it shared, writers exclusive. mu guards the Flock handle, which is not
// safe for concurrent use by goroutines of one process.
type Store struct {
	path string
	lock *flock.Flock
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

func (s *Store) LoadAll(ctx context.Context) ([]domain.HistoryRecord, error) {
	var records []domain.HistoryRecord
	err := s.withLock(ctx, false, func() error {
		var err error
		records, err = s.read()
		return err
	})
	return records, err
}

func (s *Store) Append(ctx context.Context, record domain.HistoryRecord) error {
	return s.withLock(ctx, true, func() error {
		records, err := s.read()
		if err != nil {
			return err
		}
		return s.write(append(records, record))
	})
}

func (s *Store) UpdateAt(ctx context.Context, index int, record domain.HistoryRecord) error {
	return s.withLock(ctx, true, func() error {
		records, err := s.read()
		if err != nil {
			return err
		}
		if index < 0 || index >= len(records) {
			return fmt.Errorf("update record %d of %d: %w", index, len(records), domain.ErrIndexOutOfRange)
		}

		records[index] = record
		return s.write(records)
	})
}

// withLock runs fn while holding the history lock, waiting for other
// processes until ctx is done.
func (s *Store) withLock(ctx context.Context, exclusive bool, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acquire := s.lock.TryRLockContext
	if exclusive {
		acquire = s.lock.TryLockContext
	}
	locked, err := acquire(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock history %s: %w", s.path, err)
	}
	if !locked {
		return fmt.Errorf("lock history %s: not acquired", s.path)
	}
	defer s.lock.Unlock()

	return fn()
}

func (s *Store) Filter(ctx context.Context, query string) ([]domain.IndexedRecord, error) {
	records, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterRecords(records, query), nil
}

func (s *Store) read() ([]domain.HistoryRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var records []domain.HistoryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode history %s: %w", s.path, err)
	}
	return records, nil
}

// write replaces the document atomically so a crash never leaves it half written.
func (s *Store) write(records []domain.HistoryRecord) error {
	if records == nil {
		records = []domain.HistoryRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write history: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close history: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace history %s: %w", s.path, err)
	}
	return nil
}
