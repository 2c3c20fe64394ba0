/*
Package observability exposes the engine's lifecycle events as Prometheus
metrics. It is a hooks adapter: create a Collector, register it, and pass
Collector.Hooks() to sluice.WithLifecycleHooks.
*/
package observability
