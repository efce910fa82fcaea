//go:build !nogpu

package gpu

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/gogpu/compute/binding"
	"github.com/gogpu/compute/dispatch"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Kernel is a Go shader type with the WGSL source of its compute entry
// point. Its exported fields are captured the same way as shaders run on
// the CPU engines.
type Kernel interface {
	WGSL() string
}

// Dispatcher compiles kernels into compute pipelines and dispatches them
// on a HAL device.
//
// Dispatcher is safe for concurrent use. Pipelines are cached per kernel
// type.
type Dispatcher struct {
	mu        sync.Mutex
	device    hal.Device
	queue     hal.Queue
	limits    dispatch.Limits
	pipelines map[reflect.Type]*Pipeline
	closed    bool
}

// New returns a dispatcher on the given device and queue. The dispatcher
// does not take ownership of them.
func New(device hal.Device, queue hal.Queue, limits dispatch.Limits) *Dispatcher {
	return &Dispatcher{
		device:    device,
		queue:     queue,
		limits:    limits,
		pipelines: make(map[reflect.Type]*Pipeline),
	}
}

// NewFromProvider returns a dispatcher on a shared device. The provider
// must implement HalDevice() any and HalQueue() any returning hal.Device
// and hal.Queue; otherwise ErrNotHAL is returned.
func NewFromProvider(provider gpucontext.DeviceProvider) (*Dispatcher, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNotHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNotHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNotHAL)
	}

	slogger().Info("gpu: using shared device")
	return New(device, queue, dispatch.LimitsFromDevice(gputypes.DefaultLimits())), nil
}

// Limits returns the limits dispatches are validated against.
func (d *Dispatcher) Limits() dispatch.Limits { return d.limits }

// Compile returns the pipeline of k's type, creating it on first use.
//
// The kernel source is reflected and verified against the descriptor
// layout of k's captured fields; a disagreement is reported as
// binding.ErrLayoutMismatch.
func (d *Dispatcher) Compile(k Kernel) (*Pipeline, error) {
	if k == nil {
		return nil, ErrNilKernel
	}
	t := reflect.TypeOf(k)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, ErrClosed
	}
	if p, ok := d.pipelines[t]; ok {
		return p, nil
	}

	layout, err := binding.LayoutOf(t, false)
	if err != nil {
		return nil, err
	}
	for _, f := range layout.Fields() {
		if f.Shape == binding.ShapeTexture2D || f.Shape == binding.ShapeTexture3D {
			return nil, fmt.Errorf("%w: %s.%s", ErrTextureUnsupported, t.Name(), f.Name)
		}
	}

	src := k.WGSL()
	refl, err := binding.ReflectWGSL(src)
	if err != nil {
		return nil, fmt.Errorf("gpu: %s: %w", t.Name(), err)
	}
	if err := layout.Verify(refl); err != nil {
		return nil, fmt.Errorf("gpu: %s: %w", t.Name(), err)
	}

	p, err := d.createPipeline(t.Name(), src, layout, refl)
	if err != nil {
		return nil, err
	}
	d.pipelines[t] = p
	return p, nil
}

// Close releases all compiled pipelines. The device and queue are not
// destroyed. Close is safe to call multiple times.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	for _, p := range d.pipelines {
		p.destroy(d.device)
	}
	d.pipelines = nil
	d.closed = true
	slogger().Debug("gpu: dispatcher closed")
}
