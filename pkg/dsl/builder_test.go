package dsl

import (
	"strings"
	"testing"

	"github.com/aretw0/sluice"
	"github.com/aretw0/sluice/pkg/domain"
)

func TestBuilder_OrdinaryBinding(t *testing.T) {
	price := 100.0
	var fires []float64

	b := New()
	b.Root().Watch(func(*sluice.Scope) any { return price }).
		Do(func(n, _ any, _ *sluice.Scope) { fires = append(fires, n.(float64)) })

	eng, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if _, err := eng.Digest(); err != nil {
		t.Fatalf("Digest() failed: %v", err)
	}
	if len(fires) != 1 || fires[0] != 100.0 {
		t.Fatalf("expected initial fire with 100, got %v", fires)
	}

	price = 120.0
	if _, err := eng.Digest(); err != nil {
		t.Fatalf("Digest() failed: %v", err)
	}
	if len(fires) != 2 || fires[1] != 120.0 {
		t.Fatalf("expected second fire with 120, got %v", fires)
	}
}

func TestBuilder_DeclarationOrderDecidesGating(t *testing.T) {
	before, after := 0, 0
	v := 1

	b := New()
	root := b.Root()
	root.Watch(func(*sluice.Scope) any { return v }).
		Do(func(_, _ any, _ *sluice.Scope) { before++ })
	root.Gate(func() bool { return false })
	root.Watch(func(*sluice.Scope) any { return v }).
		Do(func(_, _ any, _ *sluice.Scope) { after++ })

	eng, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if _, err := eng.Digest(); err != nil {
		t.Fatalf("Digest() failed: %v", err)
	}
	v = 2
	if _, err := eng.Digest(); err != nil {
		t.Fatalf("Digest() failed: %v", err)
	}

	if before != 2 {
		t.Errorf("binding declared before the gate should fire twice, got %d", before)
	}
	if after != 0 {
		t.Errorf("binding declared after the closed gate should not fire, got %d", after)
	}
}

func TestBuilder_GateOpensSubtree(t *testing.T) {
	open := false
	price := 100.0
	var fires []float64

	b := New()
	root := b.Root()
	root.Gate(func() bool { return open })

	child := root.Child()
	child.Watch(func(*sluice.Scope) any { return price }).
		Do(func(n, _ any, _ *sluice.Scope) { fires = append(fires, n.(float64)) })

	eng, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if _, err := eng.Digest(); err != nil {
		t.Fatalf("Digest() failed: %v", err)
	}
	price = 120.0
	if _, err := eng.Digest(); err != nil {
		t.Fatalf("Digest() failed: %v", err)
	}
	if len(fires) != 0 {
		t.Fatalf("closed gate should suppress the child binding, got %v", fires)
	}

	open = true
	if _, err := eng.Digest(); err != nil {
		t.Fatalf("Digest() failed: %v", err)
	}
	if len(fires) != 1 || fires[0] != 120.0 {
		t.Fatalf("expected one fire with 120 after the gate opened, got %v", fires)
	}
}

func TestBuilder_BindingConfiguration(t *testing.T) {
	b := New()
	b.Root().Watch(func(*sluice.Scope) any { return map[string]int{"a": 1} }).
		Structural().
		Group("cart")

	eng, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if _, err := eng.Digest(); err != nil {
		t.Fatalf("Digest() failed: %v", err)
	}

	info := eng.Inspect()
	if len(info.Bindings) != 1 {
		t.Fatalf("expected 1 root binding, got %d", len(info.Bindings))
	}
	got := info.Bindings[0]
	if got.Group != "cart" {
		t.Errorf("expected group 'cart', got %q", got.Group)
	}
	if got.Mode != domain.EqualityStructural {
		t.Errorf("expected structural mode, got %q", got.Mode)
	}
	if !got.Seen {
		t.Error("expected binding to be seen after a digest")
	}
}

func TestBuilder_NilExpression(t *testing.T) {
	b := New()
	b.Root().Watch(nil)

	if _, err := b.Build(); err == nil {
		t.Fatal("expected Build() to fail for a nil expression")
	} else if !strings.Contains(err.Error(), "expression") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestBuilder_NilGatePredicate(t *testing.T) {
	b := New()
	b.Root().Gate(nil)

	if _, err := b.Build(); err == nil {
		t.Fatal("expected Build() to fail for a nil gate predicate")
	}
}
