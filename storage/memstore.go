package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mmdatafocus/practice_backend/config"
	"github.com/mmdatafocus/practice_backend/utils"
	"github.com/sirupsen/logrus"
)

// MemStore is an in-memory Store used by tests and by the sweep CLI's
// dry-run mode. Scan order is by id so runs are deterministic.
type MemStore[T Record] struct {
	mu   sync.RWMutex
	recs map[string]T

	// Logger receives the scan truncation warning; the process logger is
	// used when unset.
	Logger *logrus.Logger
}

func NewMemStore[T Record]() *MemStore[T] {
	return &MemStore[T]{recs: make(map[string]T)}
}

func (s *MemStore[T]) Put(ctx context.Context, rec *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[(*rec).RecordID()] = *rec
	return nil
}

func (s *MemStore[T]) Get(ctx context.Context, id string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recs[id]
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	return &rec, nil
}

func (s *MemStore[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.recs, id)
	return nil
}

func (s *MemStore[T]) ListIds(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.recs))
	for id := range s.recs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemStore[T]) Scan(ctx context.Context, keep func(*T) bool) ([]*T, error) {
	ids, _ := s.ListIds(ctx)

	limit := config.ScanCap()
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*T
	for i, id := range ids {
		if i >= limit {
			break
		}
		rec := s.recs[id]
		if keep == nil || keep(&rec) {
			out = append(out, &rec)
		}
	}
	if len(ids) > limit {
		logger := s.Logger
		if logger == nil {
			logger = config.GetLogger()
		}
		config.LogWarn(logger, "memstore.go", "Scan",
			fmt.Sprintf("scan truncated at %d records", limit),
			"collection scan hit the record cap; results are incomplete")
	}
	return out, nil
}
