package sluice

import "github.com/aretw0/sluice/pkg/domain"

// gatedDigest runs one gated cycle: a pre-order depth-first walk from s
// that evaluates only bindings tagged with target, pruning every subtree
// whose scope does not currently carry target as its active gate.
//
// The pruning is sound because children copy the parent's gate at creation:
// under normal construction, a scope whose gate differs from target cannot
// have target-tagged bindings registered beneath it. Bindings with other
// tags deeper in a pruned subtree are not missed: they belong to a
// different gate and are reached by that gate's own cycles.
//
// Returns true iff any binding fired; the gate driver turns that into its
// counter increment.
func (s *Scope) gatedDigest(target *domain.Gate) bool {
	dirty := false
	walk(s, func(sc *Scope) {
		if sc.scanGated(target) {
			dirty = true
		}
	}, func(sc *Scope) bool { return sc.gate == target })
	return dirty
}

// scanGated evaluates the scope's target-tagged bindings in reverse
// insertion order. Reverse order makes callback-triggered self-removal and
// registration safe mid-scan.
func (s *Scope) scanGated(target *domain.Gate) bool {
	dirty := false
	for i := len(s.gated) - 1; i >= 0; i-- {
		if i >= len(s.gated) {
			continue
		}
		b := s.gated[i]
		if b.gate != target {
			continue
		}
		if s.eval(b, true) {
			dirty = true
		}
	}
	return dirty
}
