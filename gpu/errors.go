//go:build !nogpu

package gpu

import "errors"

// Errors returned by the dispatcher.
var (
	// ErrNilKernel is returned when a nil kernel is compiled.
	ErrNilKernel = errors.New("gpu: nil kernel")

	// ErrNotHAL is returned when a device provider does not expose HAL
	// device and queue handles.
	ErrNotHAL = errors.New("gpu: provider does not expose HAL types")

	// ErrTextureUnsupported is returned when a kernel captures a texture.
	ErrTextureUnsupported = errors.New("gpu: texture resources are not supported")

	// ErrWorkgroupMismatch is returned when a dispatch requests a group
	// size other than the kernel's @workgroup_size.
	ErrWorkgroupMismatch = errors.New("gpu: group size does not match @workgroup_size")

	// ErrKernelMismatch is returned when a kernel is dispatched on a
	// pipeline compiled for another shader type.
	ErrKernelMismatch = errors.New("gpu: kernel does not match pipeline")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("gpu: dispatcher closed")
)
