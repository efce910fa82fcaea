// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package binding

import "strings"

// Class is the classification of a captured field.
type Class uint8

const (
	// ClassValue is a plain value packed into the implicit constant
	// buffer. It receives no descriptor.
	ClassValue Class = iota

	// ClassConstantBuffer is a constant buffer resource.
	ClassConstantBuffer

	// ClassReadOnly is a read-only buffer or texture.
	ClassReadOnly

	// ClassReadWrite is a read-write buffer or texture.
	ClassReadWrite
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassValue:
		return "Value"
	case ClassConstantBuffer:
		return "ConstantBuffer"
	case ClassReadOnly:
		return "ReadOnly"
	case ClassReadWrite:
		return "ReadWrite"
	default:
		return "Unknown"
	}
}

// IsResource reports whether fields of class c receive a descriptor.
func (c Class) IsResource() bool {
	return c != ClassValue
}

// Kind returns the descriptor kind of a resource class.
// It panics for ClassValue.
func (c Class) Kind() Kind {
	switch c {
	case ClassConstantBuffer:
		return KindConstantBuffer
	case ClassReadOnly:
		return KindReadOnly
	case ClassReadWrite:
		return KindReadWrite
	default:
		panic("binding: " + c.String() + " has no descriptor kind")
	}
}

// Shape is the resource dimensionality of a captured field.
type Shape uint8

const (
	ShapeNone Shape = iota
	ShapeBuffer
	ShapeTexture2D
	ShapeTexture3D
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeBuffer:
		return "buffer"
	case ShapeTexture2D:
		return "texture2d"
	case ShapeTexture3D:
		return "texture3d"
	default:
		return "none"
	}
}

// Classify classifies a field by its declared type name. Generic
// instantiations ("ReadOnlyBuffer[float32]") and package qualifiers
// ("resource.ReadWriteBuffer[int32]") are accepted. The bool result is
// false for names outside the closed set of recognized shapes.
func Classify(typeName string) (Class, bool) {
	c, _, ok := classify(typeName)
	return c, ok
}

// ShapeOf returns the shape of a recognized type name, or ShapeNone.
func ShapeOf(typeName string) Shape {
	_, s, _ := classify(typeName)
	return s
}

func classify(typeName string) (Class, Shape, bool) {
	switch baseName(typeName) {
	case "ConstantBuffer":
		return ClassConstantBuffer, ShapeBuffer, true
	case "ReadOnlyBuffer":
		return ClassReadOnly, ShapeBuffer, true
	case "ReadOnlyTexture2D":
		return ClassReadOnly, ShapeTexture2D, true
	case "ReadOnlyTexture3D":
		return ClassReadOnly, ShapeTexture3D, true
	case "ReadWriteBuffer":
		return ClassReadWrite, ShapeBuffer, true
	case "ReadWriteTexture2D":
		return ClassReadWrite, ShapeTexture2D, true
	case "ReadWriteTexture3D":
		return ClassReadWrite, ShapeTexture3D, true
	case "bool", "int32", "uint32", "float32", "int64", "uint64", "float64":
		return ClassValue, ShapeNone, true
	default:
		return 0, ShapeNone, false
	}
}

// baseName strips type arguments and any package qualifier.
func baseName(name string) string {
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
