// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package binding

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

var (
	// ErrNoEntryPoint is returned for kernel source without a @compute
	// entry point.
	ErrNoEntryPoint = errors.New("binding: no compute entry point")

	// ErrLayoutMismatch is returned when kernel source declares bindings
	// that disagree with a layout.
	ErrLayoutMismatch = errors.New("binding: kernel source does not match layout")
)

// Global is a resource variable declared by kernel source.
type Global struct {
	Name    string
	Group   uint32
	Binding uint32
	Class   Class
	Shape   Shape

	// Type is the declared WGSL type name, e.g. "array" or
	// "texture_storage_2d".
	Type string
}

// Descriptor returns the descriptor addressed by the global's group and
// binding.
func (g Global) Descriptor() Descriptor {
	return Descriptor{Kind: Kind(g.Group), Offset: g.Binding}
}

// Reflection describes the compute entry point of WGSL kernel source.
type Reflection struct {
	EntryPoint string

	// WorkgroupSize is the @workgroup_size of the entry point; omitted
	// dimensions are 1.
	WorkgroupSize [3]int

	// Globals are the resource globals in declaration order.
	Globals []Global
}

// ReflectWGSL parses WGSL kernel source and returns its compute entry
// point and resource globals.
func ReflectWGSL(source string) (*Reflection, error) {
	module, err := lowerWGSL(source)
	if err != nil {
		return nil, fmt.Errorf("binding: reflect wgsl: %w", err)
	}
	return reflectModule(module)
}

func lowerWGSL(source string) (*ir.Module, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, err
	}
	return naga.LowerWithSource(ast, source)
}

func reflectModule(m *ir.Module) (*Reflection, error) {
	r := &Reflection{}
	for _, ep := range m.EntryPoints {
		if ep.Stage != ir.StageCompute {
			continue
		}
		r.EntryPoint = ep.Name
		for i, v := range ep.Workgroup {
			if v == 0 {
				return nil, fmt.Errorf("binding: reflect wgsl: %s: unsupported workgroup size argument %d", ep.Name, i)
			}
			r.WorkgroupSize[i] = int(v)
		}
		break
	}
	if r.EntryPoint == "" {
		return nil, ErrNoEntryPoint
	}

	for _, v := range m.GlobalVariables {
		if v.Binding == nil {
			continue
		}
		space, ok := addressSpaces[v.Space]
		if !ok {
			return nil, fmt.Errorf("binding: reflect wgsl: global %s: unsupported address space", v.Name)
		}
		typeName, access := irType(m, v)
		c, ok := ClassifyWGSL(space, access, typeName)
		if !ok {
			return nil, fmt.Errorf("binding: reflect wgsl: global %s: unsupported resource type %s", v.Name, typeName)
		}
		r.Globals = append(r.Globals, Global{
			Name:    v.Name,
			Group:   v.Binding.Group,
			Binding: v.Binding.Binding,
			Class:   c,
			Shape:   wgslShape(space, typeName),
			Type:    typeName,
		})
	}
	return r, nil
}

// ClassifyWGSL classifies a WGSL resource global by address space, access
// mode and type name. For storage textures access is the texture's access
// parameter.
func ClassifyWGSL(addressSpace, access, typeName string) (Class, bool) {
	switch addressSpace {
	case "uniform":
		return ClassConstantBuffer, true
	case "storage":
		if access == "" || access == "read" {
			return ClassReadOnly, true
		}
		return ClassReadWrite, true
	}
	if wgslShape(addressSpace, typeName) == ShapeNone {
		return 0, false
	}
	if strings.HasPrefix(typeName, "texture_storage_") && access != "read" {
		return ClassReadWrite, true
	}
	return ClassReadOnly, true
}

func wgslShape(addressSpace, typeName string) Shape {
	if addressSpace != "" {
		return ShapeBuffer
	}
	switch strings.TrimPrefix(typeName, "texture_storage_") {
	case "texture_2d", "2d":
		return ShapeTexture2D
	case "texture_3d", "3d":
		return ShapeTexture3D
	}
	return ShapeNone
}

var addressSpaces = map[ir.AddressSpace]string{
	ir.SpaceUniform: "uniform",
	ir.SpaceStorage: "storage",
	ir.SpaceHandle:  "",
}

var imageDims = map[ir.ImageDimension]string{
	ir.Dim1D:   "1d",
	ir.Dim2D:   "2d",
	ir.Dim3D:   "3d",
	ir.DimCube: "cube",
}

var textureAccess = map[ir.StorageAccess]string{
	ir.StorageAccessRead:      "read",
	ir.StorageAccessWrite:     "write",
	ir.StorageAccessReadWrite: "read_write",
	ir.StorageAccessAtomic:    "atomic",
}

// irType returns the WGSL type name of a global and its access mode: the
// storage access of a buffer, or the access parameter of a storage
// texture.
func irType(m *ir.Module, v ir.GlobalVariable) (name, access string) {
	if v.Space == ir.SpaceStorage {
		access = "read_write"
		if v.Access == ir.StorageRead {
			access = "read"
		}
	}
	if int(v.Type) >= len(m.Types) {
		return "unknown", access
	}
	t := m.Types[v.Type]
	switch inner := t.Inner.(type) {
	case ir.ArrayType:
		return "array", access
	case ir.SamplerType:
		return "sampler", access
	case ir.ImageType:
		return imageTypeName(inner), textureAccess[inner.StorageAccess]
	}
	if t.Name != "" {
		return t.Name, access
	}
	return fmt.Sprintf("%T", t.Inner), access
}

func imageTypeName(t ir.ImageType) string {
	var b strings.Builder
	b.WriteString("texture_")
	switch {
	case t.Class == ir.ImageClassStorage:
		b.WriteString("storage_")
	case t.Class == ir.ImageClassDepth:
		b.WriteString("depth_")
	case t.Class == ir.ImageClassExternal:
		return "texture_external"
	case t.Multisampled:
		b.WriteString("multisampled_")
	}
	b.WriteString(imageDims[t.Dim])
	if t.Arrayed {
		b.WriteString("_array")
	}
	return b.String()
}

// Verify checks that kernel source declares exactly the bindings of the
// layout: every descriptor has a global at @group(kind) @binding(offset)
// with the same class and shape, and every resource global is a
// descriptor. The implicit constant buffer at @group(2) @binding(0) may be
// omitted.
func (l *Layout) Verify(r *Reflection) error {
	byDesc := make(map[Descriptor]Global, len(r.Globals))
	for _, g := range r.Globals {
		d := g.Descriptor()
		if prev, dup := byDesc[d]; dup {
			return fmt.Errorf("%w: %s and %s share %s", ErrLayoutMismatch, prev.Name, g.Name, d.WGSL())
		}
		byDesc[d] = g
	}

	for _, b := range l.Bindings() {
		name, shape, class := "implicit output", ShapeTexture2D, ClassReadWrite
		if b.Field != nil {
			name, shape, class = b.Field.Name, b.Field.Shape, b.Field.Class
		}
		g, ok := byDesc[b.Descriptor]
		if !ok {
			return fmt.Errorf("%w: %s has no global at %s", ErrLayoutMismatch, name, b.WGSL())
		}
		if g.Class != class || g.Shape != shape {
			return fmt.Errorf("%w: %s is %s %s, global %s at %s is %s %s",
				ErrLayoutMismatch, name, class, shape, g.Name, b.WGSL(), g.Class, g.Shape)
		}
		delete(byDesc, b.Descriptor)
	}

	if g, ok := byDesc[ImplicitConstants]; ok {
		if g.Class != ClassConstantBuffer {
			return fmt.Errorf("%w: global %s at %s must be a uniform buffer", ErrLayoutMismatch, g.Name, ImplicitConstants.WGSL())
		}
		delete(byDesc, ImplicitConstants)
	}
	for _, g := range r.Globals {
		if _, extra := byDesc[g.Descriptor()]; extra {
			return fmt.Errorf("%w: global %s at %s is not bound by the layout", ErrLayoutMismatch, g.Name, g.Descriptor().WGSL())
		}
	}
	return nil
}
