/*
Package dsl provides a fluent builder for constructing sluice scope trees
programmatically.

It allows developers to describe a tree of scopes, gates and bindings once,
with full type checking and IDE support, and instantiate it as an engine on
demand. This is particularly useful for tests and for hosts that assemble
the same watch topology repeatedly.

Example usage:

	package main

	import (
		sluice "github.com/aretw0/sluice"
		"github.com/aretw0/sluice/pkg/dsl"
	)

	func main() {
		price := 100.0
		open := false

		b := dsl.New()
		root := b.Root()

		root.Gate(func() bool { return open })
		root.Watch(func(*sluice.Scope) any { return price }).
			Do(func(n, o any, _ *sluice.Scope) { // react
		}).
			Group("price")

		eng, err := b.Build()
		if err != nil {
			// ...
		}
		eng.Digest()
	}
*/
package dsl
