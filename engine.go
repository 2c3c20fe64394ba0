package sluice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/sluice/pkg/domain"
	"github.com/aretw0/sluice/pkg/ports"
)

// Engine is the high-level entry point for the Sluice library. It owns the
// root scope and wires logging, hooks, the error sink and the optional
// snapshot store around the propagation core.
type Engine struct {
	root   *Scope
	store  ports.SnapshotStore
	logger *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine, *tree)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine, t *tree) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(_ *Engine, t *tree) {
		t.hooks = hooks
	}
}

// WithErrorSink overrides where recovered binding panics are reported.
// The default sink logs them at error level.
func WithErrorSink(sink func(error)) Option {
	return func(_ *Engine, t *tree) {
		t.sink = sink
	}
}

// WithSnapshotStore wires a store for Checkpoint/Restore.
func WithSnapshotStore(store ports.SnapshotStore) Option {
	return func(e *Engine, _ *tree) {
		e.store = store
	}
}

// New initializes a new Sluice Engine with an empty root scope.
func New(opts ...Option) *Engine {
	t := &tree{}
	e := &Engine{}
	for _, opt := range opts {
		opt(e, t)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}
	t.logger = e.logger
	if t.sink == nil {
		t.sink = func(err error) {
			e.logger.Error("binding failure", "err", err)
		}
	}

	e.root = newRoot(t)
	return e
}

// Root returns the root scope of the tree. Application code builds the
// hierarchy from here with NewChild, Watch and Gate.
func (e *Engine) Root() *Scope {
	return e.root
}

// Digest runs ordinary propagation passes until no binding fires, and
// returns the total number of firings. Gate drivers run as part of each
// pass, so gated cycles happen inside Digest as well.
//
// It returns domain.ErrDigestUnstable (wrapped) if the tree has not settled
// after the pass TTL.
func (e *Engine) Digest() (int, error) {
	return e.root.digest()
}

// Inspect returns a detached introspection view of the whole tree for
// debugging surfaces (HTTP handler, CLI).
func (e *Engine) Inspect() domain.ScopeInfo {
	return e.root.Info()
}

// Checkpoint records the cached values of checkpointable bindings (see
// domain.Snapshot) into the configured store under the given ID.
func (e *Engine) Checkpoint(ctx context.Context, id string) error {
	if e.store == nil {
		return fmt.Errorf("checkpoint %q: no snapshot store configured", id)
	}

	snap := &domain.Snapshot{Values: make(map[string]any), TakenAt: time.Now()}
	e.root.forEachBinding(func(_ *Scope, b *binding) {
		if b.group == "" || b.mode != domain.EqualityStructural || !b.seen {
			return
		}
		snap.Values[b.group] = domain.Copy(b.last)
	})

	if err := e.store.Save(ctx, id, snap); err != nil {
		return fmt.Errorf("checkpoint %q: %w", id, err)
	}
	return nil
}

// Restore loads a snapshot and seeds matching bindings' caches with it, so
// the next digest only fires callbacks for values that actually differ from
// the checkpointed ones. Bindings without a matching entry are untouched
// and fire normally.
func (e *Engine) Restore(ctx context.Context, id string) error {
	if e.store == nil {
		return fmt.Errorf("restore %q: no snapshot store configured", id)
	}

	snap, err := e.store.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("restore %q: %w", id, err)
	}

	e.root.forEachBinding(func(_ *Scope, b *binding) {
		if b.group == "" || b.mode != domain.EqualityStructural {
			return
		}
		v, ok := snap.Values[b.group]
		if !ok {
			return
		}
		b.last = domain.Copy(v)
		b.seen = true
	})
	return nil
}
