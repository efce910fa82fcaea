// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package resource provides the host-backed resource types a compute
// shader captures: constant buffers, read-only and read-write buffers, and
// 2D and 3D textures.
//
// Resources are small values that share their backing storage, so a shader
// struct can be copied freely and every copy reads and writes the same
// elements:
//
//	type scale struct {
//	    In     resource.ReadOnlyBuffer[float32]
//	    Out    resource.ReadWriteBuffer[float32]
//	    Factor float32
//	}
//
// Element types must be fixed-size plain data (numbers, arrays and structs
// of numbers) so that the same bytes can be uploaded to a GPU buffer.
package resource
