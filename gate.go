package sluice

import (
	"time"

	"github.com/aretw0/sluice/pkg/domain"
)

// Gate installs a gate on the scope and returns its identity handle.
//
// From this call on, bindings registered on s (and on children created
// afterwards) that pass the admission predicate join the gated list and are
// evaluated only while pred holds. A nil admission admits everything.
//
// Installing a second gate on a scope that already owns one is re-gating:
// later registrations use the new gate, earlier bindings keep their
// original tag and stay owned by the previous gate's driver.
func (s *Scope) Gate(pred func() bool, admission Admission) *domain.Gate {
	g := domain.NewGate(pred)
	c := &gateController{scope: s, gate: g, hasOuter: s.gate != nil}

	// The driver is registered through the regular Watch path before the
	// gate becomes active, so it never gates itself, but it is subject to
	// any gate already active on s from an enclosing installation. The
	// promotion protocol below keeps that nesting live.
	s.Watch(c.drive, nil, domain.EqualityIdentity, "")

	s.gate = g
	s.admission = admission
	return g
}

// gateController wires one gate installation into the ordinary cycle.
//
// Per installation it is a two-state machine: ARMED (driver watching, no
// promotion) and PROMOTED (an extra ungated watcher polls the predicate).
// Promotion only ever happens for nested gates; at most one promoted
// watcher exists at a time and it tears itself down as soon as it fires.
type gateController struct {
	scope    *Scope
	gate     *domain.Gate
	hasOuter bool
	promoted bool

	// changes is the driver's observable value: a counter incremented once
	// per dirty gated cycle, so the host's dirty-check on the driver is a
	// no-op whenever no gated work occurred.
	changes int
}

// drive is the driver binding's expression, executed once per ordinary pass
// (or, when nested, once per enclosing gated cycle).
func (c *gateController) drive(s *Scope) any {
	if c.gate.Open() {
		c.runCycle(s, false)
	} else if c.hasOuter && !c.promoted {
		c.promote(s)
	}
	return c.changes
}

// promote escalates the predicate poll to the ungated cycle.
//
// The driver itself is nested inside the outer gate, so once the outer gate
// closes the driver is never called again until it reopens; if the inner
// predicate flips true in between, the inner bindings would starve. The
// promoted watcher lives on the ordinary list, bypassing every gate, and is
// therefore evaluated each pass regardless of the outer gate's state. When
// it observes the predicate hold it deregisters itself, runs exactly one
// gated cycle, and the controller is armed again.
func (c *gateController) promote(s *Scope) {
	c.promoted = true
	var remove func()
	remove = s.watchUngated(func(*Scope) any {
		if c.gate.Open() {
			// Self-removal is safe: the ordinary scan runs in reverse, so
			// removing the entry at the current index does not disturb the
			// not-yet-visited earlier entries.
			remove()
			c.promoted = false
			c.runCycle(s, true)
		}
		return c.changes
	}, nil, domain.EqualityIdentity, "")
}

func (c *gateController) runCycle(s *Scope, promoted bool) {
	dirty := s.gatedDigest(c.gate)
	if dirty {
		c.changes++
	}
	if h := s.tree.hooks.OnGatedCycle; h != nil {
		h(&domain.GatedCycleEvent{
			Timestamp: time.Now(),
			ScopeID:   s.id,
			Dirty:     dirty,
			Promoted:  promoted,
		})
	}
}
