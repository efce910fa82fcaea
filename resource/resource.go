// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import (
	"errors"
	"unsafe"
)

// ErrSizeMismatch is returned when a host slice or byte payload does not
// match the size of a resource.
var ErrSizeMismatch = errors.New("resource: size mismatch")

// Buffer is implemented by every buffer resource.
type Buffer interface {
	// Len returns the number of elements.
	Len() int

	// ElemSize returns the size of one element in bytes.
	ElemSize() int

	// Bytes returns the elements as raw bytes. The slice aliases the
	// resource storage.
	Bytes() []byte
}

// Loader is implemented by resources whose contents can be replaced from
// raw bytes, such as after a GPU readback.
type Loader interface {
	Load(b []byte) error
}

// Texture is implemented by every texture resource.
type Texture interface {
	// Size returns width, height and depth. Depth is 1 for 2D textures.
	Size() (width, height, depth int)

	// Bytes returns the texels as raw bytes.
	Bytes() []byte
}

func elemSize[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// asBytes reinterprets a slice of plain data as bytes.
func asBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*elemSize[T]()) //nolint:gosec // T is plain data
}

// load copies b into data. The sizes must match exactly.
func load[T any](data []T, b []byte) error {
	if len(b) != len(data)*elemSize[T]() {
		return ErrSizeMismatch
	}
	copy(asBytes(data), b)
	return nil
}
