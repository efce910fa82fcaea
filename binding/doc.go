// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package binding derives the resource binding layout of a compute shader.
//
// A shader is a Go struct whose fields are its captured state. [Capture]
// walks the fields in declaration order and classifies each one:
//
//   - resource.ConstantBuffer fields bind a constant buffer,
//   - resource.ReadOnlyBuffer and ReadOnlyTexture2D/3D fields bind a
//     read-only resource,
//   - resource.ReadWriteBuffer and ReadWriteTexture2D/3D fields bind a
//     read-write resource,
//   - plain values (fixed-size scalars, arrays and structs of them) are
//     packed into the implicit per-dispatch constant buffer and bind
//     nothing.
//
// [BuildLayout] turns the classified fields into an ordered sequence of
// [Descriptor] values, one per resource field, each tagged with a [Kind]
// and an offset within that kind. Offsets start at 0 for read-only and
// read-write resources and at 1 for constant buffers; constant buffer 0 is
// the implicit buffer owned by the runtime. When a shader writes an
// implicit output texture, that texture is always (ReadWrite, 0).
//
// The descriptor sequence is the binding contract between kernel source and
// the runtime binder. It maps to WebGPU as @group(kind) @binding(offset)
// and to HLSL as register(t|u|b offset, space0). [ReflectWGSL] and
// [Layout.Verify] check that kernel source agrees with it.
package binding
