package compute

import (
	"errors"
	"reflect"

	"github.com/gogpu/compute/binding"
	"github.com/gogpu/compute/dispatch"
	"github.com/gogpu/compute/resource"
)

// ErrNilShader is returned when a nil shader is dispatched.
var ErrNilShader = errors.New("compute: nil shader")

// Shader is a compute shader. Execute runs once per in-range thread of a
// dispatch; invocations of different groups may run concurrently.
type Shader interface {
	Execute(inv dispatch.Invocation)
}

// PixelShader computes one texel of an implicit output texture per
// thread.
type PixelShader interface {
	Shade(inv dispatch.Invocation) resource.Texel
}

// Layout returns the descriptor layout of a shader's type.
func Layout(s Shader) (*binding.Layout, error) {
	if s == nil {
		return nil, ErrNilShader
	}
	return binding.LayoutOf(reflect.TypeOf(s), false)
}

// PixelLayout returns the descriptor layout of a pixel shader's type. The
// implicit output texture is bound first, at (ReadWrite, 0).
func PixelLayout(ps PixelShader) (*binding.Layout, error) {
	if ps == nil {
		return nil, ErrNilShader
	}
	return binding.LayoutOf(reflect.TypeOf(ps), true)
}
