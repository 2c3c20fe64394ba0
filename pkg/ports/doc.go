/*
Package ports defines the driven ports (interfaces) for the Sluice engine.

These interfaces decouple the core from external implementations, allowing
snapshots to be persisted to various backends (in-memory, Redis) without the
engine knowing which one is wired in.
*/
package ports
