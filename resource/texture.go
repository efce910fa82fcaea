// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import "fmt"

// Texel is a four-channel floating point texel, RGBA order.
type Texel = [4]float32

type grid2D[T any] struct {
	width, height int
	data          []T
}

func newGrid2D[T any](width, height int, data []T) (grid2D[T], error) {
	if width < 0 || height < 0 {
		return grid2D[T]{}, fmt.Errorf("resource: invalid texture size %dx%d", width, height)
	}
	if data == nil {
		data = make([]T, width*height)
	}
	if len(data) != width*height {
		return grid2D[T]{}, fmt.Errorf("%w: %d texels for %dx%d", ErrSizeMismatch, len(data), width, height)
	}
	return grid2D[T]{width: width, height: height, data: data}, nil
}

func (g grid2D[T]) index(x, y int) int { return y*g.width + x }

type grid3D[T any] struct {
	width, height, depth int
	data                 []T
}

func newGrid3D[T any](width, height, depth int, data []T) (grid3D[T], error) {
	if width < 0 || height < 0 || depth < 0 {
		return grid3D[T]{}, fmt.Errorf("resource: invalid texture size %dx%dx%d", width, height, depth)
	}
	n := width * height * depth
	if data == nil {
		data = make([]T, n)
	}
	if len(data) != n {
		return grid3D[T]{}, fmt.Errorf("%w: %d texels for %dx%dx%d", ErrSizeMismatch, len(data), width, height, depth)
	}
	return grid3D[T]{width: width, height: height, depth: depth, data: data}, nil
}

func (g grid3D[T]) index(x, y, z int) int { return (z*g.height+y)*g.width + x }

// ReadOnlyTexture2D is a 2D texture that shaders may only read.
type ReadOnlyTexture2D[T any] struct {
	grid2D[T]
}

// NewReadOnlyTexture2D returns a read-only texture over data, stored row by
// row. data must hold width*height texels.
func NewReadOnlyTexture2D[T any](width, height int, data []T) (ReadOnlyTexture2D[T], error) {
	g, err := newGrid2D(width, height, data)
	return ReadOnlyTexture2D[T]{g}, err
}

// At returns the texel at (x, y).
func (t ReadOnlyTexture2D[T]) At(x, y int) T { return t.data[t.index(x, y)] }

// Width returns the texture width.
func (t ReadOnlyTexture2D[T]) Width() int { return t.width }

// Height returns the texture height.
func (t ReadOnlyTexture2D[T]) Height() int { return t.height }

// Size returns width, height and 1.
func (t ReadOnlyTexture2D[T]) Size() (width, height, depth int) { return t.width, t.height, 1 }

// Bytes returns the texels as raw bytes.
func (t ReadOnlyTexture2D[T]) Bytes() []byte { return asBytes(t.data) }

// ReadWriteTexture2D is a 2D texture that shaders may read and write.
type ReadWriteTexture2D[T any] struct {
	grid2D[T]
}

// NewReadWriteTexture2D returns a zeroed read-write texture.
func NewReadWriteTexture2D[T any](width, height int) (ReadWriteTexture2D[T], error) {
	g, err := newGrid2D[T](width, height, nil)
	return ReadWriteTexture2D[T]{g}, err
}

// At returns the texel at (x, y).
func (t ReadWriteTexture2D[T]) At(x, y int) T { return t.data[t.index(x, y)] }

// Set stores v at (x, y).
func (t ReadWriteTexture2D[T]) Set(x, y int, v T) { t.data[t.index(x, y)] = v }

// Width returns the texture width.
func (t ReadWriteTexture2D[T]) Width() int { return t.width }

// Height returns the texture height.
func (t ReadWriteTexture2D[T]) Height() int { return t.height }

// Size returns width, height and 1.
func (t ReadWriteTexture2D[T]) Size() (width, height, depth int) { return t.width, t.height, 1 }

// Data returns the backing texels, row by row.
func (t ReadWriteTexture2D[T]) Data() []T { return t.data }

// Bytes returns the texels as raw bytes.
func (t ReadWriteTexture2D[T]) Bytes() []byte { return asBytes(t.data) }

// Load replaces the texels with raw bytes.
func (t ReadWriteTexture2D[T]) Load(p []byte) error { return load(t.data, p) }

// ReadOnlyTexture3D is a 3D texture that shaders may only read.
type ReadOnlyTexture3D[T any] struct {
	grid3D[T]
}

// NewReadOnlyTexture3D returns a read-only texture over data, stored slice
// by slice and row by row. data must hold width*height*depth texels.
func NewReadOnlyTexture3D[T any](width, height, depth int, data []T) (ReadOnlyTexture3D[T], error) {
	g, err := newGrid3D(width, height, depth, data)
	return ReadOnlyTexture3D[T]{g}, err
}

// At returns the texel at (x, y, z).
func (t ReadOnlyTexture3D[T]) At(x, y, z int) T { return t.data[t.index(x, y, z)] }

// Size returns width, height and depth.
func (t ReadOnlyTexture3D[T]) Size() (width, height, depth int) {
	return t.width, t.height, t.depth
}

// Bytes returns the texels as raw bytes.
func (t ReadOnlyTexture3D[T]) Bytes() []byte { return asBytes(t.data) }

// ReadWriteTexture3D is a 3D texture that shaders may read and write.
type ReadWriteTexture3D[T any] struct {
	grid3D[T]
}

// NewReadWriteTexture3D returns a zeroed read-write texture.
func NewReadWriteTexture3D[T any](width, height, depth int) (ReadWriteTexture3D[T], error) {
	g, err := newGrid3D[T](width, height, depth, nil)
	return ReadWriteTexture3D[T]{g}, err
}

// At returns the texel at (x, y, z).
func (t ReadWriteTexture3D[T]) At(x, y, z int) T { return t.data[t.index(x, y, z)] }

// Set stores v at (x, y, z).
func (t ReadWriteTexture3D[T]) Set(x, y, z int, v T) { t.data[t.index(x, y, z)] = v }

// Size returns width, height and depth.
func (t ReadWriteTexture3D[T]) Size() (width, height, depth int) {
	return t.width, t.height, t.depth
}

// Data returns the backing texels.
func (t ReadWriteTexture3D[T]) Data() []T { return t.data }

// Bytes returns the texels as raw bytes.
func (t ReadWriteTexture3D[T]) Bytes() []byte { return asBytes(t.data) }

// Load replaces the texels with raw bytes.
func (t ReadWriteTexture3D[T]) Load(p []byte) error { return load(t.data, p) }
