package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/temperature-heatmap/internal/dataset"
)

var (
	// ErrNotFound is returned when no snapshot is available for a source.
	ErrNotFound = errors.New("no dataset snapshot for source")
)

// SnapshotHistory holds the fetch-ordered snapshots of one source.
type SnapshotHistory struct {
	Snapshots []dataset.Snapshot
}

// MemoryStore is a concurrency-safe in-memory snapshot store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: source name, value: history
	data map[string]*SnapshotHistory

	// retention configuration
	maxHistory int           // max number of snapshots per source
	maxAge     time.Duration // optional max age for snapshots

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*SnapshotHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SaveSnapshot appends a snapshot for its source and enforces retention. The
// newest snapshot is always kept, however old.
func (s *MemoryStore) SaveSnapshot(snapshot dataset.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[snapshot.Source]
	if !ok {
		history = &SnapshotHistory{}
		s.data[snapshot.Source] = history
	}

	history.Snapshots = append(history.Snapshots, snapshot)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.Snapshots) > s.maxHistory {
		over := len(history.Snapshots) - s.maxHistory
		history.Snapshots = history.Snapshots[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.Snapshots)-1; i++ {
			if !history.Snapshots[i].FetchedAt.Before(cutoff) {
				break
			}
		}
		history.Snapshots = history.Snapshots[i:]
	}
}

// GetLatest returns the most recent snapshot for a source.
func (s *MemoryStore) GetLatest(source string) (dataset.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[source]
	if !ok || len(history.Snapshots) == 0 {
		return dataset.Snapshot{}, ErrNotFound
	}
	return history.Snapshots[len(history.Snapshots)-1], nil
}

// History returns a copy of the retained snapshots for a source, oldest first.
func (s *MemoryStore) History(source string) ([]dataset.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[source]
	if !ok || len(history.Snapshots) == 0 {
		return nil, ErrNotFound
	}

	result := make([]dataset.Snapshot, len(history.Snapshots))
	copy(result, history.Snapshots)
	return result, nil
}
