// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package binding

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
)

// The implicit constant buffer starts with the dispatch grid extent as
// three uint32 values. Value fields follow in declaration order.
const constantsHeaderSize = 12

const registerSize = 16

// Constant is the placement of a value field in the implicit constant
// buffer.
type Constant struct {
	Field  Field
	Offset int
	Size   int
}

// placeConstants assigns byte offsets to value fields.
//
// Scalars are aligned to their size and never straddle a 16-byte
// register. Arrays and structs start on a register boundary and occupy
// whole registers; array elements use a 16-byte stride.
func placeConstants(fields []Field) ([]Constant, int) {
	var out []Constant
	off := constantsHeaderSize
	for _, f := range fields {
		if f.Class != ClassValue || f.typ == nil {
			continue
		}
		start, size := place(off, f.typ)
		out = append(out, Constant{Field: f, Offset: start, Size: size})
		off = start + size
	}
	return out, alignUp(off, registerSize)
}

// place returns the offset and size of a member of type t placed at or
// after off.
func place(off int, t reflect.Type) (start, size int) {
	switch t.Kind() {
	case reflect.Array, reflect.Struct:
		return alignUp(off, registerSize), aggregateSize(t)
	default:
		s := scalarSize(t)
		start = alignUp(off, s)
		if start/registerSize != (start+s-1)/registerSize {
			start = alignUp(start, registerSize)
		}
		return start, s
	}
}

func aggregateSize(t reflect.Type) int {
	if t.Kind() == reflect.Array {
		return t.Len() * arrayStride(t)
	}
	off := 0
	for i := range t.NumField() {
		start, size := place(off, t.Field(i).Type)
		off = start + size
	}
	return alignUp(off, registerSize)
}

func arrayStride(t reflect.Type) int {
	e := t.Elem()
	if k := e.Kind(); k == reflect.Array || k == reflect.Struct {
		return aggregateSize(e)
	}
	return registerSize
}

func scalarSize(t reflect.Type) int {
	if t.Kind() == reflect.Bool {
		return 4
	}
	return int(t.Size())
}

func alignUp(v, a int) int {
	return (v + a - 1) / a * a
}

// PackConstants returns the contents of the implicit constant buffer for
// one dispatch of shader over a grid of gx*gy*gz threads. shader must be
// a value of (or pointer to) the layout's shader type. Values are stored
// little-endian.
func (l *Layout) PackConstants(shader any, gx, gy, gz int) ([]byte, error) {
	v := reflect.ValueOf(shader)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if l.shader == nil || v.Type() != l.shader {
		return nil, fmt.Errorf("binding: pack constants: %T does not match layout of %v", shader, l.shader)
	}

	buf := make([]byte, l.constantsSize)
	binary.LittleEndian.PutUint32(buf[0:], uint32(gx)) //nolint:gosec // extents are validated
	binary.LittleEndian.PutUint32(buf[4:], uint32(gy)) //nolint:gosec // extents are validated
	binary.LittleEndian.PutUint32(buf[8:], uint32(gz)) //nolint:gosec // extents are validated
	for _, c := range l.constants {
		encode(buf, c.Offset, v.Field(c.Field.Index))
	}
	return buf, nil
}

func encode(buf []byte, off int, v reflect.Value) {
	le := binary.LittleEndian
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			le.PutUint32(buf[off:], 1)
		}
	case reflect.Int32:
		le.PutUint32(buf[off:], uint32(int32(v.Int()))) //nolint:gosec // two's complement
	case reflect.Int64:
		le.PutUint64(buf[off:], uint64(v.Int())) //nolint:gosec // two's complement
	case reflect.Uint32:
		le.PutUint32(buf[off:], uint32(v.Uint()))
	case reflect.Uint64:
		le.PutUint64(buf[off:], v.Uint())
	case reflect.Float32:
		le.PutUint32(buf[off:], math.Float32bits(float32(v.Float())))
	case reflect.Float64:
		le.PutUint64(buf[off:], math.Float64bits(v.Float()))
	case reflect.Array:
		stride := arrayStride(v.Type())
		for i := range v.Len() {
			encode(buf, off+i*stride, v.Index(i))
		}
	case reflect.Struct:
		rel := 0
		for i := range v.NumField() {
			start, size := place(rel, v.Type().Field(i).Type)
			encode(buf, off+start, v.Field(i))
			rel = start + size
		}
	}
}
