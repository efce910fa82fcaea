// Package backend provides pluggable CPU execution engines for compute
// dispatches.
//
// An engine receives a validated [dispatch.Plan] and calls the shader body
// once per in-range invocation. Engines are registered by name and
// selected at runtime:
//
//	// Get the default (best available) engine
//	e := backend.Default()
//
//	// Or request a specific engine
//	e := backend.Get(backend.EngineSerial)
//
// # Available Engines
//
//   - "serial": runs groups one after another on the calling goroutine.
//   - "parallel": runs each group as one work item on a work-stealing pool.
//
// Invocations of one group always run sequentially on a single goroutine,
// in X-fastest order. Groups have no ordering guarantee on the parallel
// engine.
package backend
