/*
Package sluice is a gated change-propagation tree: a hierarchy of scopes,
each holding watch bindings (expression + cached value + callback) that are
evaluated during propagation passes ("digests").

The novel capability is gating. A scope can install a zero-argument
predicate (a gate) such that every binding registered on it and its
descendants after that point is evaluated only while the predicate holds,
and is skipped otherwise, without even being visited. Gates
nest: a descendant may install its own gate, whose bindings run only when
both its own gate and every enclosing gate hold. A promotion protocol
guarantees a nested gate's opening is never missed even when the enclosing
gate has closed in the meantime.

# Concept

Scopes form a tree; children are created with NewChild so they inherit the
parent's gate at creation time. Application code registers bindings with
Watch and installs gates with Gate. The host drives propagation by calling
Digest (or DigestOnce, for hosts with their own loop): ordinary bindings are
re-evaluated every pass, gated bindings only when their gate's driver sees
the predicate hold.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/sluice"
		"github.com/aretw0/sluice/pkg/domain"
	)

	func main() {
		eng := sluice.New()
		root := eng.Root()

		enabled := false
		root.Gate(func() bool { return enabled }, nil)

		price := 10
		root.Watch(
			func(*sluice.Scope) any { return price },
			func(newV, oldV any, _ *sluice.Scope) {
				fmt.Println("price:", oldV, "->", newV)
			},
			domain.EqualityIdentity, "price",
		)

		// Gate closed: the binding is not even visited.
		if _, err := eng.Digest(); err != nil {
			log.Fatal(err)
		}

		enabled = true
		price = 12
		if _, err := eng.Digest(); err != nil {
			log.Fatal(err) // prints "price: 12 -> 12" (first fire)
		}
	}

# Concurrency

The engine is single-threaded and cooperative: digests, gated cycles and
callbacks all run synchronously on the calling goroutine. Callbacks may
register bindings, install gates or remove themselves re-entrantly; they
must not start another digest. Adapters (Redis snapshots, the debug HTTP
server) only touch detached copies taken between digests.
*/
package sluice
