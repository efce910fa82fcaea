// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package binding

import (
	"reflect"
	"sync"
)

// Layout is the binding layout of one shader type. It is immutable and
// safe to share.
type Layout struct {
	shader         reflect.Type
	implicitOutput bool
	fields         []Field
	descriptors    []Descriptor
	constants      []Constant
	constantsSize  int
}

// Binding pairs a descriptor with the field it binds.
type Binding struct {
	Descriptor

	// Field is nil for the implicit output texture.
	Field *Field
}

// NewLayout builds the layout of already captured fields.
func NewLayout(implicitOutput bool, fields []Field) *Layout {
	return newLayout(nil, implicitOutput, fields)
}

func newLayout(shader reflect.Type, implicitOutput bool, fields []Field) *Layout {
	fields = append([]Field(nil), fields...)
	constants, size := placeConstants(fields)
	return &Layout{
		shader:         shader,
		implicitOutput: implicitOutput,
		fields:         fields,
		descriptors:    BuildLayout(implicitOutput, fields),
		constants:      constants,
		constantsSize:  size,
	}
}

type layoutKey struct {
	t              reflect.Type
	implicitOutput bool
}

var layouts sync.Map // layoutKey -> *Layout

// LayoutOf returns the layout of shader type t, capturing and building it
// on first use. t may be a struct or a pointer to a struct; both share one
// layout.
func LayoutOf(t reflect.Type, implicitOutput bool) (*Layout, error) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	key := layoutKey{t: t, implicitOutput: implicitOutput}
	if l, ok := layouts.Load(key); ok {
		return l.(*Layout), nil
	}
	fields, err := Capture(t)
	if err != nil {
		return nil, err
	}
	l, _ := layouts.LoadOrStore(key, newLayout(t, implicitOutput, fields))
	return l.(*Layout), nil
}

// Shader returns the shader type, or nil for layouts built with NewLayout.
func (l *Layout) Shader() reflect.Type { return l.shader }

// ImplicitOutput reports whether the layout starts with the implicit
// output texture.
func (l *Layout) ImplicitOutput() bool { return l.implicitOutput }

// Fields returns the captured fields in declaration order.
func (l *Layout) Fields() []Field { return append([]Field(nil), l.fields...) }

// Descriptors returns the descriptor sequence.
func (l *Layout) Descriptors() []Descriptor {
	return append([]Descriptor(nil), l.descriptors...)
}

// Bindings returns descriptors paired with their fields, in binding order.
func (l *Layout) Bindings() []Binding {
	out := make([]Binding, 0, len(l.descriptors))
	i := 0
	if l.implicitOutput {
		out = append(out, Binding{Descriptor: l.descriptors[0]})
		i = 1
	}
	for fi := range l.fields {
		if !l.fields[fi].Class.IsResource() {
			continue
		}
		f := l.fields[fi]
		out = append(out, Binding{Descriptor: l.descriptors[i], Field: &f})
		i++
	}
	return out
}

// Count returns the number of descriptors of kind k. The implicit constant
// buffer is not counted.
func (l *Layout) Count(k Kind) int {
	n := 0
	for _, d := range l.descriptors {
		if d.Kind == k {
			n++
		}
	}
	return n
}

// Constants returns the placement of value fields in the implicit constant
// buffer.
func (l *Layout) Constants() []Constant { return append([]Constant(nil), l.constants...) }

// ConstantsSize returns the size in bytes of the implicit constant buffer,
// a multiple of 16.
func (l *Layout) ConstantsSize() int { return l.constantsSize }
