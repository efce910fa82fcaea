// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package binding

import "reflect"

// Field is one captured piece of shader state.
type Field struct {
	// Name is the Go field name.
	Name string

	// TypeName is the declared type, e.g. "resource.ReadOnlyBuffer[float32]".
	TypeName string

	// Index is the field's position in its struct.
	Index int

	// Class is the field classification.
	Class Class

	// Shape is the resource shape, ShapeNone for values.
	Shape Shape

	typ reflect.Type
}

// NewField returns a field classified by its type name.
// ok is false when the name is not recognized.
func NewField(name, typeName string, index int) (f Field, ok bool) {
	c, s, ok := classify(typeName)
	if !ok {
		return Field{}, false
	}
	return Field{Name: name, TypeName: typeName, Index: index, Class: c, Shape: s}, true
}

// Type returns the Go type of the field, or nil for fields that were not
// captured from a Go struct.
func (f Field) Type() reflect.Type {
	return f.typ
}
