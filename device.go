package compute

import (
	"context"

	"github.com/gogpu/compute/backend"
	"github.com/gogpu/compute/binding"
	"github.com/gogpu/compute/dispatch"
	"github.com/gogpu/compute/resource"
)

// Device dispatches shaders on a CPU engine.
//
// A Device is safe for concurrent use if its engine is.
type Device struct {
	engine backend.Engine
	limits dispatch.Limits
	group  dispatch.Int3
}

// New creates a device. Without WithEngine the best registered engine is
// used; if none is registered, backend.ErrEngineNotAvailable is returned.
func New(opts ...Option) (*Device, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.engine == nil {
		o.engine = backend.Default()
	}
	if o.engine == nil {
		return nil, backend.ErrEngineNotAvailable
	}

	Logger().Info("compute: device created",
		"engine", o.engine.Name(),
		"default_group", o.group)

	return &Device{engine: o.engine, limits: o.limits, group: o.group}, nil
}

// Engine returns the engine dispatches run on.
func (d *Device) Engine() backend.Engine { return d.engine }

// Limits returns the limits dispatches are validated against.
func (d *Device) Limits() dispatch.Limits { return d.limits }

// For dispatches s over gx threads.
func (d *Device) For(ctx context.Context, gx int, s Shader) error {
	return d.ForGroups(ctx, gx, 1, 1, d.group.X, 1, 1, s)
}

// For2D dispatches s over a gx*gy grid.
func (d *Device) For2D(ctx context.Context, gx, gy int, s Shader) error {
	return d.ForGroups(ctx, gx, gy, 1, d.group.X, d.group.Y, 1, s)
}

// For3D dispatches s over a gx*gy*gz grid.
func (d *Device) For3D(ctx context.Context, gx, gy, gz int, s Shader) error {
	return d.ForGroups(ctx, gx, gy, gz, d.group.X, d.group.Y, d.group.Z, s)
}

// ForGroups dispatches s over a gx*gy*gz grid in groups of sx*sy*sz
// threads.
//
// The extents are validated before any invocation runs; a rejection is a
// *dispatch.Error. Captured fields of an unsupported type are reported
// as binding.ErrUnsupportedCapturedType.
func (d *Device) ForGroups(ctx context.Context, gx, gy, gz, sx, sy, sz int, s Shader) error {
	if s == nil {
		return ErrNilShader
	}
	plan, err := d.limits.Validate(gx, gy, gz, sx, sy, sz)
	if err != nil {
		return err
	}
	layout, err := Layout(s)
	if err != nil {
		return err
	}
	return d.run(ctx, plan, layout, s.Execute)
}

// ForEach dispatches ps over every texel of out and stores the results.
// Texels are written by the invocation whose thread ids are their
// coordinates.
func (d *Device) ForEach(ctx context.Context, out resource.ReadWriteTexture2D[resource.Texel], ps PixelShader) error {
	if ps == nil {
		return ErrNilShader
	}
	plan, err := d.limits.Validate(out.Width(), out.Height(), 1, d.group.X, d.group.Y, 1)
	if err != nil {
		return err
	}
	layout, err := PixelLayout(ps)
	if err != nil {
		return err
	}
	return d.run(ctx, plan, layout, func(inv dispatch.Invocation) {
		id := inv.ThreadIds()
		out.Set(id.X, id.Y, ps.Shade(inv))
	})
}

func (d *Device) run(ctx context.Context, plan dispatch.Plan, layout *binding.Layout, fn func(dispatch.Invocation)) error {
	Logger().Debug("compute: dispatch",
		"shader", layout.Shader(),
		"engine", d.engine.Name(),
		"grid", plan.Grid,
		"group", plan.Group,
		"groups", plan.Groups,
		"descriptors", len(layout.Descriptors()),
		"constants_bytes", layout.ConstantsSize())

	return d.engine.Run(ctx, plan, fn)
}
