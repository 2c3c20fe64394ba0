package domain

import "time"

// Snapshot captures the cached values of checkpointable bindings so a
// restarted host can restore them and skip the initial storm of first-fire
// callbacks.
//
// Only structural bindings with a non-empty group label participate: their
// cached values are deep copies with no identity to lose, and the group
// label gives them a stable name across restarts. Identity bindings always
// re-fire after a restore.
type Snapshot struct {
	// Values maps a binding's group label to its recorded value.
	Values map[string]any `json:"values"`

	TakenAt time.Time `json:"taken_at"`
}

// ScopeInfo is the introspection view of one scope, used by the debug HTTP
// surface and the CLI. It is a detached copy, safe to serialize.
type ScopeInfo struct {
	ID       uint64        `json:"id"`
	Gated    bool          `json:"gated"`
	GateOpen *bool         `json:"gate_open,omitempty"`
	Bindings []BindingInfo `json:"bindings,omitempty"`
	Children []ScopeInfo   `json:"children,omitempty"`
}

// BindingInfo is the introspection view of one binding.
type BindingInfo struct {
	Group string       `json:"group,omitempty"`
	Mode  EqualityMode `json:"mode"`
	Gated bool         `json:"gated,omitempty"`
	// Seen is false until the binding's first successful evaluation.
	Seen bool `json:"seen"`
}
