// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import "unsafe"

// ConstantBuffer holds one value of T visible to every thread of a
// dispatch. It occupies its own constant buffer slot.
type ConstantBuffer[T any] struct {
	value *T
}

// NewConstantBuffer returns a constant buffer holding v.
func NewConstantBuffer[T any](v T) ConstantBuffer[T] {
	return ConstantBuffer[T]{value: &v}
}

// Value returns the buffer contents. A zero ConstantBuffer returns the
// zero value of T.
func (c ConstantBuffer[T]) Value() T {
	if c.value == nil {
		var zero T
		return zero
	}
	return *c.value
}

// Len returns 1.
func (c ConstantBuffer[T]) Len() int { return 1 }

// ElemSize returns the size of T in bytes.
func (c ConstantBuffer[T]) ElemSize() int { return elemSize[T]() }

// Bytes returns the value as raw bytes.
func (c ConstantBuffer[T]) Bytes() []byte {
	if c.value == nil {
		return make([]byte, elemSize[T]())
	}
	return asBytes(unsafe.Slice(c.value, 1))
}

// ReadOnlyBuffer is a typed buffer that shaders may only read.
type ReadOnlyBuffer[T any] struct {
	data []T
}

// NewReadOnlyBuffer returns a read-only buffer over data. The buffer
// aliases data; the caller must not modify it while a dispatch runs.
func NewReadOnlyBuffer[T any](data []T) ReadOnlyBuffer[T] {
	return ReadOnlyBuffer[T]{data: data}
}

// At returns element i.
func (b ReadOnlyBuffer[T]) At(i int) T { return b.data[i] }

// Len returns the number of elements.
func (b ReadOnlyBuffer[T]) Len() int { return len(b.data) }

// ElemSize returns the size of T in bytes.
func (b ReadOnlyBuffer[T]) ElemSize() int { return elemSize[T]() }

// Bytes returns the elements as raw bytes.
func (b ReadOnlyBuffer[T]) Bytes() []byte { return asBytes(b.data) }

// ReadWriteBuffer is a typed buffer that shaders may read and write.
type ReadWriteBuffer[T any] struct {
	data []T
}

// NewReadWriteBuffer returns a zeroed read-write buffer of n elements.
func NewReadWriteBuffer[T any](n int) ReadWriteBuffer[T] {
	return ReadWriteBuffer[T]{data: make([]T, n)}
}

// ReadWriteBufferOf returns a read-write buffer over data. Writes by
// shaders are visible in data.
func ReadWriteBufferOf[T any](data []T) ReadWriteBuffer[T] {
	return ReadWriteBuffer[T]{data: data}
}

// At returns element i.
func (b ReadWriteBuffer[T]) At(i int) T { return b.data[i] }

// Set stores v at element i.
func (b ReadWriteBuffer[T]) Set(i int, v T) { b.data[i] = v }

// Len returns the number of elements.
func (b ReadWriteBuffer[T]) Len() int { return len(b.data) }

// ElemSize returns the size of T in bytes.
func (b ReadWriteBuffer[T]) ElemSize() int { return elemSize[T]() }

// Data returns the backing slice.
func (b ReadWriteBuffer[T]) Data() []T { return b.data }

// CopyTo copies the buffer contents into dst, which must have exactly
// Len elements.
func (b ReadWriteBuffer[T]) CopyTo(dst []T) error {
	if len(dst) != len(b.data) {
		return ErrSizeMismatch
	}
	copy(dst, b.data)
	return nil
}

// Bytes returns the elements as raw bytes.
func (b ReadWriteBuffer[T]) Bytes() []byte { return asBytes(b.data) }

// Load replaces the buffer contents with raw bytes of exactly
// Len*ElemSize bytes.
func (b ReadWriteBuffer[T]) Load(p []byte) error { return load(b.data, p) }
