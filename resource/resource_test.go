// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func TestReadWriteBuffer_SharedStorage(t *testing.T) {
	b := NewReadWriteBuffer[int32](4)
	c := b // copies share elements
	c.Set(2, 7)

	if got := b.At(2); got != 7 {
		t.Errorf("At(2) = %d, want 7", got)
	}
	if b.Len() != 4 {
		t.Errorf("Len() = %d, want 4", b.Len())
	}
	if b.ElemSize() != 4 {
		t.Errorf("ElemSize() = %d, want 4", b.ElemSize())
	}
}

func TestReadWriteBuffer_CopyTo(t *testing.T) {
	b := ReadWriteBufferOf([]float32{1, 2, 3})

	dst := make([]float32, 3)
	if err := b.CopyTo(dst); err != nil {
		t.Fatalf("CopyTo() error = %v", err)
	}
	if dst[0] != 1 || dst[2] != 3 {
		t.Errorf("CopyTo() = %v, want [1 2 3]", dst)
	}

	if err := b.CopyTo(make([]float32, 2)); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("CopyTo(short) error = %v, want ErrSizeMismatch", err)
	}
}

func TestReadWriteBuffer_BytesAndLoad(t *testing.T) {
	b := ReadWriteBufferOf([]uint32{1, 0x01020304})
	raw := b.Bytes()
	if len(raw) != 8 {
		t.Fatalf("len(Bytes()) = %d, want 8", len(raw))
	}
	if got := binary.NativeEndian.Uint32(raw[4:]); got != 0x01020304 {
		t.Errorf("Bytes()[4:8] = %#x, want 0x01020304", got)
	}

	src := NewReadWriteBuffer[uint32](2)
	src.Set(0, 9)
	src.Set(1, 10)
	if err := b.Load(src.Bytes()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b.At(0) != 9 || b.At(1) != 10 {
		t.Errorf("after Load: %v, want [9 10]", b.Data())
	}
	if err := b.Load(make([]byte, 3)); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Load(3 bytes) error = %v, want ErrSizeMismatch", err)
	}
}

func TestReadOnlyBuffer(t *testing.T) {
	data := []float64{0.5, 1.5}
	b := NewReadOnlyBuffer(data)
	if b.Len() != 2 || b.At(1) != 1.5 {
		t.Errorf("ReadOnlyBuffer = len %d at(1) %v", b.Len(), b.At(1))
	}
	if got := len(b.Bytes()); got != 16 {
		t.Errorf("len(Bytes()) = %d, want 16", got)
	}
	if got := NewReadOnlyBuffer[float32](nil).Bytes(); got != nil {
		t.Errorf("empty Bytes() = %v, want nil", got)
	}
}

func TestConstantBuffer(t *testing.T) {
	type params struct {
		Scale float32
		Count uint32
	}
	c := NewConstantBuffer(params{Scale: 2, Count: 3})
	if c.Value().Count != 3 {
		t.Errorf("Value().Count = %d, want 3", c.Value().Count)
	}
	raw := c.Bytes()
	if len(raw) != 8 {
		t.Fatalf("len(Bytes()) = %d, want 8", len(raw))
	}
	if got := math.Float32frombits(binary.NativeEndian.Uint32(raw)); got != 2 {
		t.Errorf("Bytes() scale = %v, want 2", got)
	}

	var zero ConstantBuffer[params]
	if zero.Value() != (params{}) || len(zero.Bytes()) != 8 {
		t.Errorf("zero ConstantBuffer = %+v, %d bytes", zero.Value(), len(zero.Bytes()))
	}
}

func TestTexture2D(t *testing.T) {
	tex, err := NewReadWriteTexture2D[float32](3, 2)
	if err != nil {
		t.Fatalf("NewReadWriteTexture2D() error = %v", err)
	}
	tex.Set(2, 1, 5)
	if got := tex.Data()[5]; got != 5 {
		t.Errorf("Data()[5] = %v, want 5 (row-major)", got)
	}
	w, h, d := tex.Size()
	if w != 3 || h != 2 || d != 1 {
		t.Errorf("Size() = %d,%d,%d, want 3,2,1", w, h, d)
	}

	ro, err := NewReadOnlyTexture2D(2, 2, []int32{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("NewReadOnlyTexture2D() error = %v", err)
	}
	if ro.At(0, 1) != 3 {
		t.Errorf("At(0,1) = %d, want 3", ro.At(0, 1))
	}

	if _, err := NewReadOnlyTexture2D(2, 2, []int32{1}); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("short data error = %v, want ErrSizeMismatch", err)
	}
	if _, err := NewReadWriteTexture2D[int32](-1, 2); err == nil {
		t.Error("negative width: error = nil")
	}
}

func TestTexture3D(t *testing.T) {
	tex, err := NewReadWriteTexture3D[uint32](2, 3, 4)
	if err != nil {
		t.Fatalf("NewReadWriteTexture3D() error = %v", err)
	}
	tex.Set(1, 2, 3, 42)
	if got := tex.Data()[(3*3+2)*2+1]; got != 42 {
		t.Errorf("Data() at (1,2,3) = %d, want 42", got)
	}
	if tex.At(1, 2, 3) != 42 {
		t.Errorf("At(1,2,3) = %d, want 42", tex.At(1, 2, 3))
	}

	ro, err := NewReadOnlyTexture3D(1, 1, 2, []float32{1, 2})
	if err != nil {
		t.Fatalf("NewReadOnlyTexture3D() error = %v", err)
	}
	if ro.At(0, 0, 1) != 2 {
		t.Errorf("At(0,0,1) = %v, want 2", ro.At(0, 0, 1))
	}
	if _, err := NewReadOnlyTexture3D(2, 2, 2, []float32{1}); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("short data error = %v, want ErrSizeMismatch", err)
	}
}

func TestInterfaces(t *testing.T) {
	var (
		_ Buffer  = ConstantBuffer[float32]{}
		_ Buffer  = ReadOnlyBuffer[float32]{}
		_ Buffer  = ReadWriteBuffer[float32]{}
		_ Loader  = ReadWriteBuffer[float32]{}
		_ Loader  = ReadWriteTexture2D[Texel]{}
		_ Loader  = ReadWriteTexture3D[Texel]{}
		_ Texture = ReadOnlyTexture2D[Texel]{}
		_ Texture = ReadWriteTexture2D[Texel]{}
		_ Texture = ReadOnlyTexture3D[Texel]{}
		_ Texture = ReadWriteTexture3D[Texel]{}
	)
}
