package backend

import (
	"context"
	"errors"

	"github.com/gogpu/compute/dispatch"
)

// Engine name constants.
const (
	// EngineSerial is the name of the single-goroutine engine.
	EngineSerial = "serial"
	// EngineParallel is the name of the worker pool engine.
	EngineParallel = "parallel"
)

// ErrEngineNotAvailable is returned when a requested engine is not registered.
var ErrEngineNotAvailable = errors.New("backend: engine not available")

// Engine executes a dispatch plan on the CPU.
//
// Engines must be registered via Register() and are selected via
// Get() or Default().
type Engine interface {
	// Name returns the engine identifier (e.g., "serial", "parallel").
	Name() string

	// Run calls fn once for every in-range invocation of plan.
	// It returns ctx.Err() if the context is cancelled before every
	// group has run.
	Run(ctx context.Context, plan dispatch.Plan, fn func(dispatch.Invocation)) error
}
