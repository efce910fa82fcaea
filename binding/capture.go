// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package binding

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/gogpu/compute/resource"
)

// ErrUnsupportedCapturedType is matched by errors for shader fields whose
// type cannot be bound or packed.
var ErrUnsupportedCapturedType = errors.New("binding: unsupported captured type")

// UnsupportedTypeError reports a shader field that cannot be captured.
type UnsupportedTypeError struct {
	// Shader is the shader type.
	Shader reflect.Type

	// Field is the offending field name. It is empty when the shader
	// itself is not a struct.
	Field string

	// Type is the offending type.
	Type reflect.Type
}

// Error implements the error interface.
func (e *UnsupportedTypeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("binding: shader %s is not a struct", e.Shader)
	}
	return fmt.Sprintf("binding: field %s.%s has unsupported type %s", e.Shader, e.Field, e.Type)
}

// Unwrap returns ErrUnsupportedCapturedType.
func (e *UnsupportedTypeError) Unwrap() error {
	return ErrUnsupportedCapturedType
}

// tagSkip excludes a field from capture: `compute:"-"`.
const tagSkip = "-"

var resourcePkg = reflect.TypeFor[resource.ReadOnlyBuffer[byte]]().PkgPath()

// Capture returns the fields of a shader struct type in declaration order.
// t may be a struct or a pointer to a struct.
//
// Fields of the resource package types are classified by name and their
// element type must be plain data. Other fields must be constant values:
// bool, int32, uint32, float32, int64, uint64, float64, or arrays and
// structs of those. Fields tagged `compute:"-"` are skipped.
func Capture(t reflect.Type) ([]Field, error) {
	shader := t
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, &UnsupportedTypeError{Shader: shader, Type: t}
	}

	fields := make([]Field, 0, t.NumField())
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Tag.Get("compute") == tagSkip {
			continue
		}
		f, ok := captureField(sf, i)
		if !ok {
			return nil, &UnsupportedTypeError{Shader: t, Field: sf.Name, Type: sf.Type}
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func captureField(sf reflect.StructField, index int) (Field, bool) {
	ft := sf.Type
	if ft.PkgPath() == resourcePkg {
		c, s, ok := classify(ft.Name())
		if !ok || !c.IsResource() || !isPlainData(elemType(ft)) {
			return Field{}, false
		}
		return Field{Name: sf.Name, TypeName: ft.String(), Index: index, Class: c, Shape: s, typ: ft}, true
	}
	if !isConstant(ft) {
		return Field{}, false
	}
	return Field{Name: sf.Name, TypeName: ft.String(), Index: index, Class: ClassValue, typ: ft}, true
}

// elemType returns the element type of a resource type, found through its
// backing storage field.
func elemType(t reflect.Type) reflect.Type {
	for _, name := range [...]string{"data", "value"} {
		if sf, ok := t.FieldByName(name); ok {
			return sf.Type.Elem()
		}
	}
	return nil
}

// isPlainData reports whether t is fixed-size data without pointers.
func isPlainData(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Array:
		return isPlainData(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if !isPlainData(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// isConstant reports whether t can be packed into a constant buffer.
func isConstant(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.Int32, reflect.Uint32, reflect.Float32,
		reflect.Int64, reflect.Uint64, reflect.Float64:
		return true
	case reflect.Array:
		return t.Len() > 0 && isConstant(t.Elem())
	case reflect.Struct:
		if t.NumField() == 0 || t.PkgPath() == resourcePkg {
			return false
		}
		for i := range t.NumField() {
			if !isConstant(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
