package memory

import (
	"context"
	"sync"

	"github.com/aretw0/sluice/pkg/domain"
)

// Store implements ports.SnapshotStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Snapshot
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Snapshot),
	}
}

// Save persists the snapshot in memory.
func (s *Store) Save(ctx context.Context, id string, snap *domain.Snapshot) error {
	// Copy on write so the caller can't mutate the stored snapshot by reference.
	stored := &domain.Snapshot{
		Values:  make(map[string]any, len(snap.Values)),
		TakenAt: snap.TakenAt,
	}
	for k, v := range snap.Values {
		stored.Values[k] = v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = stored
	return nil
}

// Load retrieves the snapshot from memory.
func (s *Store) Load(ctx context.Context, id string) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.data[id]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}

	ret := &domain.Snapshot{
		Values:  make(map[string]any, len(snap.Values)),
		TakenAt: snap.TakenAt,
	}
	for k, v := range snap.Values {
		ret.Values[k] = v
	}
	return ret, nil
}

// Delete removes the snapshot.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}
