/*
Package domain contains the pure types shared across the Sluice engine and its
adapters: gates, equality modes, cycle events, snapshots and sentinel errors.

It has no dependencies on the runtime so that adapters (storage, HTTP,
observability) can speak the engine's vocabulary without importing it.
*/
package domain
