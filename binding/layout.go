// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package binding

import "fmt"

// Kind is the binding space of a descriptor.
type Kind uint8

const (
	// KindReadOnly is the shader resource view space (HLSL t registers).
	KindReadOnly Kind = 0

	// KindReadWrite is the unordered access view space (HLSL u registers).
	KindReadWrite Kind = 1

	// KindConstantBuffer is the constant buffer space (HLSL b registers).
	KindConstantBuffer Kind = 2
)

// KindCount is the number of binding spaces.
const KindCount = 3

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindReadOnly:
		return "ReadOnly"
	case KindReadWrite:
		return "ReadWrite"
	case KindConstantBuffer:
		return "ConstantBuffer"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Descriptor is one binding slot: a kind and a zero-based offset within
// that kind's binding space.
type Descriptor struct {
	Kind   Kind
	Offset uint32
}

// String returns "(Kind, offset)".
func (d Descriptor) String() string {
	return fmt.Sprintf("(%s, %d)", d.Kind, d.Offset)
}

// ImplicitConstants is the descriptor of the per-dispatch constant buffer
// owned by the runtime. No field ever receives it.
var ImplicitConstants = Descriptor{Kind: KindConstantBuffer, Offset: 0}

// BuildLayout assigns descriptors to fields in declaration order.
//
// Counters start at 1 for constant buffers and 0 for the other kinds.
// When implicitOutput is set, the output texture is prepended as
// (ReadWrite, 0). ClassValue fields receive no descriptor. The result is a
// pure function of its inputs.
func BuildLayout(implicitOutput bool, fields []Field) []Descriptor {
	var next [KindCount]uint32
	next[KindConstantBuffer] = 1

	out := make([]Descriptor, 0, len(fields)+1)
	if implicitOutput {
		out = append(out, Descriptor{Kind: KindReadWrite, Offset: next[KindReadWrite]})
		next[KindReadWrite]++
	}
	for _, f := range fields {
		if !f.Class.IsResource() {
			continue
		}
		k := f.Class.Kind()
		out = append(out, Descriptor{Kind: k, Offset: next[k]})
		next[k]++
	}
	return out
}
