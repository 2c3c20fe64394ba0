package domain

import "errors"

// ErrDigestUnstable is returned when an ordinary digest does not settle
// within the pass TTL (bindings keep firing each other).
var ErrDigestUnstable = errors.New("digest did not stabilize")

// ErrSnapshotNotFound is returned when a snapshot ID cannot be found in the store.
var ErrSnapshotNotFound = errors.New("snapshot not found")
