package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/sluice"
	"github.com/aretw0/sluice/pkg/domain"
)

// Builder manages the declaration of a scope tree.
//
// Declarations are recorded in order and only applied when Build is
// called, so a tree can be described once and instantiated many times.
type Builder struct {
	root *ScopeBuilder
}

// New creates a new tree builder with an empty root scope.
func New() *Builder {
	return &Builder{root: &ScopeBuilder{}}
}

// Root returns the builder for the root scope.
func (b *Builder) Root() *ScopeBuilder {
	return b.root
}

// Build instantiates an engine and replays the recorded declarations
// onto its scope tree, in declaration order.
func (b *Builder) Build(opts ...sluice.Option) (*sluice.Engine, error) {
	eng := sluice.New(opts...)
	if err := b.root.apply(eng.Root()); err != nil {
		return nil, fmt.Errorf("failed to build scope tree: %w", err)
	}
	return eng, nil
}

// ScopeBuilder records the bindings, gates and children of one scope.
type ScopeBuilder struct {
	ops []func(*sluice.Scope) error
}

// Watch declares a binding on this scope. Order matters: a binding
// declared after Gate on the same builder is owned by that gate.
func (sb *ScopeBuilder) Watch(expr sluice.Expr) *BindingBuilder {
	bb := &BindingBuilder{expr: expr, mode: domain.EqualityIdentity}
	sb.ops = append(sb.ops, bb.apply)
	return bb
}

// Gate activates a gate on this scope for all bindings declared after it,
// here and in later children.
func (sb *ScopeBuilder) Gate(pred func() bool) *ScopeBuilder {
	return sb.GateWhere(pred, nil)
}

// GateWhere is Gate with an admission predicate deciding, per binding,
// whether it joins the gate or stays ungated.
func (sb *ScopeBuilder) GateWhere(pred func() bool, admission sluice.Admission) *ScopeBuilder {
	sb.ops = append(sb.ops, func(s *sluice.Scope) error {
		if pred == nil {
			return errors.New("gate predicate must not be nil")
		}
		s.Gate(pred, admission)
		return nil
	})
	return sb
}

// Child declares a child scope. The returned builder inherits whatever
// gate is active on this builder at this point in the declaration order.
func (sb *ScopeBuilder) Child() *ScopeBuilder {
	child := &ScopeBuilder{}
	sb.ops = append(sb.ops, func(s *sluice.Scope) error {
		return child.apply(s.NewChild())
	})
	return child
}

func (sb *ScopeBuilder) apply(s *sluice.Scope) error {
	for _, op := range sb.ops {
		if err := op(s); err != nil {
			return err
		}
	}
	return nil
}

// BindingBuilder provides a fluent API for configuring a binding.
type BindingBuilder struct {
	expr  sluice.Expr
	fn    sluice.Callback
	mode  domain.EqualityMode
	group string
}

// Do sets the callback invoked when the watched value changes.
func (bb *BindingBuilder) Do(fn sluice.Callback) *BindingBuilder {
	bb.fn = fn
	return bb
}

// Structural switches the binding to deep structural equality.
func (bb *BindingBuilder) Structural() *BindingBuilder {
	bb.mode = domain.EqualityStructural
	return bb
}

// Group labels the binding so checkpoints can address it.
func (bb *BindingBuilder) Group(name string) *BindingBuilder {
	bb.group = name
	return bb
}

func (bb *BindingBuilder) apply(s *sluice.Scope) error {
	if bb.expr == nil {
		return errors.New("binding expression must not be nil")
	}
	s.Watch(bb.expr, bb.fn, bb.mode, bb.group)
	return nil
}
