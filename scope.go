package sluice

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/sluice/pkg/domain"
)

// Expr produces the observed value of a binding. It is called on every pass
// that visits the binding, so it should be cheap and free of side effects
// (gate drivers are the deliberate exception).
type Expr func(*Scope) any

// Callback is invoked when a binding's value changed. On the binding's
// first-ever firing, oldValue equals newValue.
type Callback func(newValue, oldValue any, s *Scope)

// Admission decides, at registration time, whether a new binding on a gated
// scope joins the gated list. A nil Admission admits every binding.
type Admission func(expr Expr, cb Callback, mode domain.EqualityMode, group string) bool

// tree holds state shared by every scope of one tree.
type tree struct {
	nextID uint64
	hooks  domain.LifecycleHooks
	sink   func(error)
	logger *slog.Logger
}

func (t *tree) report(err error) {
	if t.hooks.OnError != nil {
		t.hooks.OnError(err)
	}
	t.sink(err)
}

// Scope is one element of the propagation tree. It owns its children, its
// ordinary watcher list, its gated binding list and at most one active gate.
//
// Scopes are not safe for concurrent use; see the package documentation.
type Scope struct {
	id       uint64
	parent   *Scope
	children []*Scope

	// watchers are evaluated on every ordinary pass. gated bindings are
	// only evaluated by a gated cycle keyed to their own gate.
	watchers []*binding
	gated    []*binding

	// gate applies to bindings registered from now on; bindings already in
	// the gated list keep the tag they were registered under.
	gate      *domain.Gate
	admission Admission

	tree *tree
}

type binding struct {
	expr  Expr
	fn    Callback
	mode  domain.EqualityMode
	group string

	// gate is nil for ordinary bindings.
	gate *domain.Gate

	last any
	seen bool
}

func newRoot(t *tree) *Scope {
	t.nextID++
	return &Scope{id: t.nextID, tree: t}
}

// NewChild creates a child scope. The child inherits the parent's gate and
// admission predicate as a one-time copy: installing a gate on either scope
// afterwards does not affect the other.
//
// Descendants must always be created through NewChild, never by hand,
// otherwise gate inheritance silently breaks.
func (s *Scope) NewChild() *Scope {
	s.tree.nextID++
	child := &Scope{
		id:        s.tree.nextID,
		parent:    s,
		gate:      s.gate,
		admission: s.admission,
		tree:      s.tree,
	}
	s.children = append(s.children, child)
	return child
}

// ID returns the scope's tree-unique identifier.
func (s *Scope) ID() uint64 { return s.id }

// Watch registers a binding on the scope and returns its removal handle.
//
// If the scope has an active gate and the admission predicate accepts the
// registration, the binding joins the gated list tagged with the current
// gate; it will then only be evaluated by gated cycles for that gate.
// Otherwise it joins the ordinary list and is evaluated every pass.
func (s *Scope) Watch(expr Expr, fn Callback, mode domain.EqualityMode, group string) func() {
	if s.gate != nil && (s.admission == nil || s.admission(expr, fn, mode, group)) {
		b := &binding{expr: expr, fn: fn, mode: mode, group: group, gate: s.gate}
		s.gated = append(s.gated, b)
		return func() { s.gated = splice(s.gated, b) }
	}
	return s.watchUngated(expr, fn, mode, group)
}

// watchUngated registers directly on the ordinary list, bypassing any gate.
// The promotion protocol depends on this bypass.
func (s *Scope) watchUngated(expr Expr, fn Callback, mode domain.EqualityMode, group string) func() {
	b := &binding{expr: expr, fn: fn, mode: mode, group: group}
	s.watchers = append(s.watchers, b)
	return func() { s.watchers = splice(s.watchers, b) }
}

func splice(list []*binding, b *binding) []*binding {
	for i, cand := range list {
		if cand == b {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// eval re-evaluates one binding, firing its callback when dirty.
// Panics from the expression or the callback are recovered per binding and
// reported; an expression panic leaves the cached value untouched.
func (s *Scope) eval(b *binding, gated bool) (fired bool) {
	defer func() {
		if r := recover(); r != nil {
			s.tree.report(fmt.Errorf("scope %d: binding %q panicked: %v", s.id, b.group, r))
		}
	}()

	v := b.expr(s)
	if b.seen && domain.Equal(v, b.last, b.mode) {
		return false
	}

	first := !b.seen
	old := b.last
	if first {
		// First-fire contract: the callback sees old == new.
		old = v
	}
	if b.mode == domain.EqualityStructural {
		b.last = domain.Copy(v)
	} else {
		b.last = v
	}
	b.seen = true
	fired = true

	if h := s.tree.hooks.OnBindingFire; h != nil {
		h(&domain.FireEvent{
			Timestamp: time.Now(),
			ScopeID:   s.id,
			Group:     b.group,
			Gated:     gated,
			First:     first,
		})
	}
	if b.fn != nil {
		b.fn(v, old, s)
	}
	return fired
}

// nextSibling returns the scope after s in its parent's children order.
func (s *Scope) nextSibling() *Scope {
	p := s.parent
	if p == nil {
		return nil
	}
	for i, c := range p.children {
		if c == s && i+1 < len(p.children) {
			return p.children[i+1]
		}
	}
	return nil
}

// walk visits root and its descendants depth-first, pre-order. descend
// decides per scope whether its subtree is entered at all.
func walk(root *Scope, visit func(*Scope), descend func(*Scope) bool) {
	current := root
	for {
		visit(current)

		var next *Scope
		if descend(current) && len(current.children) > 0 {
			next = current.children[0]
		}
		if next == nil {
			// Done below current: move to its next sibling, or climb until
			// an ancestor has one. Ancestors are not re-visited.
			for current != root {
				if sib := current.nextSibling(); sib != nil {
					next = sib
					break
				}
				current = current.parent
			}
		}
		if next == nil {
			return
		}
		current = next
	}
}

// forEachBinding visits every binding in the subtree, ordinary and gated.
// Used by introspection and snapshots, never by propagation.
func (s *Scope) forEachBinding(f func(owner *Scope, b *binding)) {
	walk(s, func(sc *Scope) {
		for _, b := range sc.watchers {
			f(sc, b)
		}
		for _, b := range sc.gated {
			f(sc, b)
		}
	}, func(*Scope) bool { return true })
}

// Info returns a detached introspection view of the subtree rooted at s.
func (s *Scope) Info() domain.ScopeInfo {
	info := domain.ScopeInfo{ID: s.id, Gated: s.gate != nil}
	if s.gate != nil {
		open := s.gate.Open()
		info.GateOpen = &open
	}
	for _, b := range s.watchers {
		info.Bindings = append(info.Bindings, domain.BindingInfo{
			Group: b.group, Mode: b.mode, Seen: b.seen,
		})
	}
	for _, b := range s.gated {
		info.Bindings = append(info.Bindings, domain.BindingInfo{
			Group: b.group, Mode: b.mode, Gated: true, Seen: b.seen,
		})
	}
	for _, c := range s.children {
		info.Children = append(info.Children, c.Info())
	}
	return info
}
