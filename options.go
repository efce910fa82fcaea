package compute

import (
	"github.com/gogpu/compute/backend"
	"github.com/gogpu/compute/dispatch"
)

// Option configures a Device during creation.
//
// Example:
//
//	// Default engine and limits
//	dev, err := compute.New()
//
//	// Deterministic single-goroutine execution
//	dev, err := compute.New(compute.WithEngine(backend.Serial{}))
type Option func(*options)

// options holds optional configuration for Device creation.
type options struct {
	engine backend.Engine
	limits dispatch.Limits
	group  dispatch.Int3
}

// defaultOptions returns the default device options.
func defaultOptions() options {
	return options{
		engine: nil, // Will be set to backend.Default() if nil
		limits: dispatch.DefaultLimits(),
		group:  dispatch.Int3{X: 1, Y: 1, Z: 1},
	}
}

// WithEngine sets the engine dispatches run on.
func WithEngine(e backend.Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}

// WithLimits sets the limits dispatches are validated against.
//
// Example:
//
//	// Validate as a WebGPU device would
//	dev, err := compute.New(compute.WithLimits(
//		dispatch.LimitsFromDevice(gputypes.DefaultLimits())))
func WithLimits(l dispatch.Limits) Option {
	return func(o *options) {
		o.limits = l
	}
}

// WithDefaultGroupSize sets the group extents used by For, For2D, For3D
// and ForEach. For uses only x, For2D and ForEach use x and y.
// The extents are validated on every dispatch.
func WithDefaultGroupSize(x, y, z int) Option {
	return func(o *options) {
		o.group = dispatch.Int3{X: x, Y: y, Z: z}
	}
}
