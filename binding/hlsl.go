// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package binding

import (
	"fmt"

	"github.com/gogpu/naga/hlsl"
)

// RegisterType returns the HLSL register type of the kind.
func (k Kind) RegisterType() hlsl.RegisterType {
	switch k {
	case KindReadOnly:
		return hlsl.RegisterTypeT
	case KindReadWrite:
		return hlsl.RegisterTypeU
	default:
		return hlsl.RegisterTypeB
	}
}

// BindTarget returns the HLSL register of the descriptor in space 0.
func (d Descriptor) BindTarget() hlsl.BindTarget {
	return hlsl.DefaultBindTarget().WithRegister(d.Offset)
}

// Register returns the HLSL register declaration, e.g.
// "register(u0, space0)".
func (d Descriptor) Register() string {
	bt := d.BindTarget()
	return fmt.Sprintf("register(%s%d, space%d)", d.Kind.RegisterType(), bt.Register, bt.Space)
}

// HLSLBindingMap maps the WebGPU binding of every descriptor, and of the
// implicit constant buffer, to its HLSL register.
func (l *Layout) HLSLBindingMap() map[hlsl.ResourceBinding]hlsl.BindTarget {
	m := make(map[hlsl.ResourceBinding]hlsl.BindTarget, len(l.descriptors)+1)
	for _, d := range append([]Descriptor{ImplicitConstants}, l.descriptors...) {
		m[hlsl.ResourceBinding{Group: d.Group(), Binding: d.Binding()}] = d.BindTarget()
	}
	return m
}

// CompileHLSL cross-compiles WGSL kernel source to HLSL for Shader Model
// 6.0. The source must agree with the layout (see [Layout.Verify]); every
// resource is emitted at the register of its descriptor.
func CompileHLSL(source string, l *Layout) (string, error) {
	module, err := lowerWGSL(source)
	if err != nil {
		return "", fmt.Errorf("binding: compile hlsl: %w", err)
	}
	refl, err := reflectModule(module)
	if err != nil {
		return "", err
	}
	if err := l.Verify(refl); err != nil {
		return "", err
	}

	opts := hlsl.DefaultOptions()
	opts.ShaderModel = hlsl.ShaderModel6_0
	opts.BindingMap = l.HLSLBindingMap()
	opts.FakeMissingBindings = false
	opts.EntryPoint = refl.EntryPoint

	code, _, err := hlsl.Compile(module, opts)
	if err != nil {
		return "", fmt.Errorf("binding: compile hlsl: %w", err)
	}
	return code, nil
}
