// Package compute runs Go compute shaders over 1D, 2D and 3D thread grids.
//
// # Overview
//
// A shader is a struct whose fields are the state it captures: scalar and
// plain-data constants, and the buffer and texture types of package
// resource. Before a dispatch, compute validates the grid and group
// extents against device limits and derives the shader's descriptor
// layout, the binding slot every captured resource is bound at.
//
// # Quick Start
//
//	type scale struct {
//		In  resource.ReadOnlyBuffer[float32]
//		Out resource.ReadWriteBuffer[float32]
//		K   float32
//	}
//
//	func (s scale) Execute(inv dispatch.Invocation) {
//		i := inv.ThreadIds().X
//		s.Out.Set(i, s.In.At(i)*s.K)
//	}
//
//	dev, err := compute.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = dev.For(ctx, n, scale{In: in, Out: out, K: 2})
//
// # Engines
//
// Dispatches run on a CPU engine from package backend. The default engine
// spreads groups over a work-stealing pool; backend.Serial runs them on
// the calling goroutine. Package gpu runs WGSL kernels with the same
// layout on a gogpu/wgpu HAL device.
//
// # Logging
//
// compute is silent by default. Use [SetLogger] to enable structured
// logging through log/slog.
package compute
