package ports

import (
	"context"

	"github.com/aretw0/sluice/pkg/domain"
)

// SnapshotStore defines the interface for persisting binding snapshots.
// This enables warm restarts: a host checkpoints the cached values between
// digests and restores them after a restart so callbacks do not re-fire for
// values that never changed.
type SnapshotStore interface {
	// Save persists the snapshot under the given ID.
	Save(ctx context.Context, id string, snap *domain.Snapshot) error

	// Load retrieves the snapshot for the given ID.
	// Returns domain.ErrSnapshotNotFound if it does not exist.
	Load(ctx context.Context, id string) (*domain.Snapshot, error)

	// Delete removes the snapshot for the given ID.
	Delete(ctx context.Context, id string) error
}
