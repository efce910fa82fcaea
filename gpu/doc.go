//go:build !nogpu

// Package gpu runs compute shaders on a gogpu/wgpu HAL device.
//
// A [Kernel] is a Go shader type whose captured fields are bound through
// the descriptor layout of package binding, plus the WGSL source of its
// compute entry point. The source must declare every binding at
// @group(kind) @binding(offset):
//
//	@group(2) @binding(0) var<uniform> constants: Constants; // grid extents + values
//	@group(0) @binding(0) var<storage, read> x: array<f32>;
//	@group(1) @binding(0) var<storage, read_write> y: array<f32>;
//
// Usage:
//
//	d, err := gpu.NewFromProvider(provider)
//	if err != nil {
//		return err
//	}
//	defer d.Close()
//
//	p, err := d.Compile(kernel)
//	if err != nil {
//		return err
//	}
//	err = d.Dispatch(ctx, p, kernel, n, 1, 1)
//
// Read-write buffers are copied back into the kernel's
// resource.ReadWriteBuffer fields when Dispatch returns. Texture resources
// are not supported by this engine.
//
// Build with the nogpu tag to exclude the package's HAL dependency.
package gpu
