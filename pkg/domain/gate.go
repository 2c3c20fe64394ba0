package domain

// Gate is the identity handle for one gate installation.
//
// Two gates are the same gate only when they are the same *Gate pointer.
// Go cannot compare funcs, so the handle (not the predicate) carries the
// identity: installing the same closure twice yields two distinct gates,
// matching the semantics of per-installation predicates. Both binding
// tagging and subtree pruning compare these pointers, never the predicate
// values.
type Gate struct {
	pred func() bool
}

// NewGate wraps a predicate into a fresh gate identity.
func NewGate(pred func() bool) *Gate {
	return &Gate{pred: pred}
}

// Open evaluates the gate predicate.
func (g *Gate) Open() bool {
	return g.pred()
}

// EqualityMode selects how a binding decides whether its value changed.
type EqualityMode string

const (
	// EqualityIdentity compares by strict identity (==), with NaN treated
	// as equal to NaN so a NaN-producing expression does not fire forever.
	EqualityIdentity EqualityMode = "identity"

	// EqualityStructural compares by deep structural equality. The cached
	// value is a deep copy, so in-place mutation of the live value is
	// detected on the next pass.
	EqualityStructural EqualityMode = "structural"
)
