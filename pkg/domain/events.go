package domain

import "time"

// PassEvent describes one completed ordinary propagation pass.
type PassEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Fired     int           `json:"fired"`
	Duration  time.Duration `json:"duration"`
}

// GatedCycleEvent describes one gated cycle run for a single gate.
type GatedCycleEvent struct {
	Timestamp time.Time `json:"timestamp"`
	ScopeID   uint64    `json:"scope_id"`
	Dirty     bool      `json:"dirty"`
	// Promoted is true when the cycle was triggered by a promoted watcher
	// rather than the gate's regular driver.
	Promoted bool `json:"promoted,omitempty"`
}

// FireEvent describes a single binding callback invocation.
type FireEvent struct {
	Timestamp time.Time `json:"timestamp"`
	ScopeID   uint64    `json:"scope_id"`
	Group     string    `json:"group,omitempty"`
	Gated     bool      `json:"gated,omitempty"`
	First     bool      `json:"first,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
// Any field may be nil. Hooks run synchronously on the digesting goroutine,
// so they must be fast and must not recurse into the engine.
type LifecycleHooks struct {
	OnPass        func(*PassEvent)
	OnGatedCycle  func(*GatedCycleEvent)
	OnBindingFire func(*FireEvent)
	OnError       func(error)
}
