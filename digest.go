package sluice

import (
	"fmt"
	"time"

	"github.com/aretw0/sluice/pkg/domain"
)

// maxPasses bounds the ordinary digest loop. Ten is the classic TTL:
// mutually-firing bindings that haven't settled by then never will.
const maxPasses = 10

// DigestOnce runs a single ordinary propagation pass over the subtree
// rooted at s and returns how many bindings fired.
//
// Ordinary watchers (including gate drivers and promoted watchers) are
// evaluated on every pass; gated bindings are reached only through their
// gate's driver. Hosts that own their propagation loop call this directly;
// everyone else uses Engine.Digest, which iterates to a fixpoint.
func (s *Scope) DigestOnce() int {
	fired := 0
	walk(s, func(sc *Scope) {
		// Reverse insertion order, so a callback removing the binding at
		// the current index, or registering new ones, cannot cause an
		// unvisited earlier entry to be skipped.
		for i := len(sc.watchers) - 1; i >= 0; i-- {
			if i >= len(sc.watchers) {
				continue
			}
			if sc.eval(sc.watchers[i], false) {
				fired++
			}
		}
	}, func(*Scope) bool { return true })
	return fired
}

// digest iterates DigestOnce until no binding fires, bounded by maxPasses.
func (s *Scope) digest() (int, error) {
	total := 0
	for pass := 0; ; pass++ {
		if pass == maxPasses {
			return total, fmt.Errorf("%d passes reached: %w", maxPasses, domain.ErrDigestUnstable)
		}

		start := time.Now()
		fired := s.DigestOnce()
		total += fired

		if h := s.tree.hooks.OnPass; h != nil {
			h(&domain.PassEvent{Timestamp: start, Fired: fired, Duration: time.Since(start)})
		}
		if fired == 0 {
			return total, nil
		}
	}
}
