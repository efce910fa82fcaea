// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package binding

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Group returns the WebGPU bind group of the descriptor, its kind.
func (d Descriptor) Group() uint32 { return uint32(d.Kind) }

// Binding returns the WebGPU binding index within the group, its offset.
func (d Descriptor) Binding() uint32 { return d.Offset }

// WGSL returns the WGSL attribute for the descriptor, e.g.
// "@group(1) @binding(0)".
func (d Descriptor) WGSL() string {
	return fmt.Sprintf("@group(%d) @binding(%d)", d.Group(), d.Binding())
}

// StorageTextureFormat is the texel format of read-write textures.
const StorageTextureFormat = gputypes.TextureFormatRGBA32Float

// BindGroupLayoutEntries returns the compute bind group layout entries of
// the layout, indexed by group. Group 2 always starts with the implicit
// constant buffer at binding 0.
func (l *Layout) BindGroupLayoutEntries() [KindCount][]gputypes.BindGroupLayoutEntry {
	var groups [KindCount][]gputypes.BindGroupLayoutEntry
	groups[KindConstantBuffer] = append(groups[KindConstantBuffer], gputypes.BindGroupLayoutEntry{
		Binding:    ImplicitConstants.Binding(),
		Visibility: gputypes.ShaderStageCompute,
		Buffer: &gputypes.BufferBindingLayout{
			Type:           gputypes.BufferBindingTypeUniform,
			MinBindingSize: uint64(l.constantsSize), //nolint:gosec // size is non-negative
		},
	})
	for _, b := range l.Bindings() {
		shape := ShapeTexture2D
		if b.Field != nil {
			shape = b.Field.Shape
		}
		groups[b.Kind] = append(groups[b.Kind], layoutEntry(b.Descriptor, shape))
	}
	return groups
}

func layoutEntry(d Descriptor, shape Shape) gputypes.BindGroupLayoutEntry {
	e := gputypes.BindGroupLayoutEntry{
		Binding:    d.Binding(),
		Visibility: gputypes.ShaderStageCompute,
	}
	dim := gputypes.TextureViewDimension2D
	if shape == ShapeTexture3D {
		dim = gputypes.TextureViewDimension3D
	}

	switch {
	case d.Kind == KindConstantBuffer:
		e.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}
	case shape == ShapeBuffer && d.Kind == KindReadOnly:
		e.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}
	case shape == ShapeBuffer:
		e.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}
	case d.Kind == KindReadOnly:
		e.Texture = &gputypes.TextureBindingLayout{
			SampleType:    gputypes.TextureSampleTypeFloat,
			ViewDimension: dim,
		}
	default:
		e.Storage = &gputypes.StorageTextureBindingLayout{
			Access:        gputypes.StorageTextureAccessReadWrite,
			Format:        StorageTextureFormat,
			ViewDimension: dim,
		}
	}
	return e
}
