//go:build !nogpu

package gpu

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/gogpu/compute/binding"
	"github.com/gogpu/compute/dispatch"
	"github.com/gogpu/compute/resource"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// fenceTimeout bounds the wait for a dispatch when ctx has no earlier
// deadline.
const fenceTimeout = 5 * time.Second

// minBufferSize is the smallest buffer created for a binding.
const minBufferSize = 4

// gpuBuffer is a buffer created for one binding.
type gpuBuffer struct {
	buf  hal.Buffer
	size uint64
}

// readback is a read-write buffer copied back after a dispatch.
type readback struct {
	src, staging gpuBuffer
	n            int
	dst          resource.Loader
}

// dispatchResources tracks per-dispatch GPU resources for cleanup.
type dispatchResources struct {
	device     hal.Device
	buffers    []hal.Buffer
	bindGroups []hal.BindGroup
	cmdBuf     hal.CommandBuffer
	fence      hal.Fence
	readbacks  []readback
}

// cleanup destroys all tracked per-dispatch resources.
func (r *dispatchResources) cleanup() {
	if r.fence != nil {
		r.device.DestroyFence(r.fence)
	}
	if r.cmdBuf != nil {
		r.device.FreeCommandBuffer(r.cmdBuf)
	}
	for _, g := range r.bindGroups {
		r.device.DestroyBindGroup(g)
	}
	for _, b := range r.buffers {
		r.device.DestroyBuffer(b)
	}
}

// Dispatch runs k over a grid of gx*gy*gz threads using the kernel's
// @workgroup_size as the group extents. p must have been compiled from
// k's type.
//
// The grid is validated before any GPU work is recorded. Read-write
// buffers of k hold the results when Dispatch returns nil.
func (d *Dispatcher) Dispatch(ctx context.Context, p *Pipeline, k Kernel, gx, gy, gz int) error {
	return d.DispatchGroups(ctx, p, k, gx, gy, gz, p.group.X, p.group.Y, p.group.Z)
}

// DispatchGroups is like Dispatch with explicit group extents, which must
// equal the kernel's @workgroup_size.
func (d *Dispatcher) DispatchGroups(ctx context.Context, p *Pipeline, k Kernel, gx, gy, gz, sx, sy, sz int) error {
	plan, err := d.limits.Validate(gx, gy, gz, sx, sy, sz)
	if err != nil {
		return err
	}
	if plan.Group != p.group {
		return fmt.Errorf("%w: got %v, kernel %s declares %v", ErrWorkgroupMismatch, plan.Group, p.name, p.group)
	}

	v := reflect.ValueOf(k)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Type() != p.layout.Shader() {
		return fmt.Errorf("%w: %T, pipeline %s", ErrKernelMismatch, k, p.name)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	closed := d.closed
	d.mu.Unlock()
	if closed {
		return ErrClosed
	}

	slogger().Debug("gpu: dispatch",
		"kernel", p.name,
		"grid", plan.Grid,
		"group", plan.Group,
		"groups", plan.Groups)

	res := &dispatchResources{device: d.device}
	defer res.cleanup()

	if err := d.bindResources(res, p, v, plan); err != nil {
		return err
	}
	if err := d.encode(res, p, plan); err != nil {
		return err
	}
	return d.submitAndWait(ctx, res)
}

// bindResources uploads every binding of the kernel and creates one bind
// group per descriptor kind.
func (d *Dispatcher) bindResources(res *dispatchResources, p *Pipeline, v reflect.Value, plan dispatch.Plan) error {
	var entries [binding.KindCount][]gputypes.BindGroupEntry

	constants, err := p.layout.PackConstants(v.Interface(), plan.Grid.X, plan.Grid.Y, plan.Grid.Z)
	if err != nil {
		return fmt.Errorf("gpu: %w", err)
	}
	cb, err := d.upload(res, p.name+"_constants", constants, gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	entries[binding.KindConstantBuffer] = append(entries[binding.KindConstantBuffer],
		bufferEntry(binding.ImplicitConstants.Binding(), cb))

	for _, b := range p.layout.Bindings() {
		fv := v.Field(b.Field.Index)
		if !fv.CanInterface() {
			return fmt.Errorf("gpu: %s.%s: resource field must be exported", p.name, b.Field.Name)
		}
		buf, ok := fv.Interface().(resource.Buffer)
		if !ok {
			return fmt.Errorf("%w: %s.%s", ErrTextureUnsupported, p.name, b.Field.Name)
		}

		label := p.name + "_" + b.Field.Name
		usage := gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst
		switch b.Kind {
		case binding.KindConstantBuffer:
			usage = gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst
		case binding.KindReadWrite:
			usage |= gputypes.BufferUsageCopySrc
		}

		data := buf.Bytes()
		gb, err := d.upload(res, label, data, usage)
		if err != nil {
			return err
		}
		entries[b.Kind] = append(entries[b.Kind], bufferEntry(b.Binding(), gb))

		if b.Kind != binding.KindReadWrite {
			continue
		}
		dst, ok := buf.(resource.Loader)
		if !ok {
			continue
		}
		staging, err := d.createBuffer(res, label+"_staging", gb.size,
			gputypes.BufferUsageMapRead|gputypes.BufferUsageCopyDst)
		if err != nil {
			return err
		}
		res.readbacks = append(res.readbacks, readback{src: gb, staging: staging, n: len(data), dst: dst})
	}

	for g := range entries {
		bg, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:   fmt.Sprintf("%s_bg%d", p.name, g),
			Layout:  p.bgLayouts[g],
			Entries: entries[g],
		})
		if err != nil {
			return fmt.Errorf("gpu: create bind group %d for %s: %w", g, p.name, err)
		}
		res.bindGroups = append(res.bindGroups, bg)
	}
	return nil
}

// createBuffer creates a buffer of at least size bytes, rounded up to a
// multiple of 4.
func (d *Dispatcher) createBuffer(res *dispatchResources, label string, size uint64, usage gputypes.BufferUsage) (gpuBuffer, error) {
	size = max((size+3)&^3, minBufferSize)
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return gpuBuffer{}, fmt.Errorf("gpu: create buffer %s: %w", label, err)
	}
	res.buffers = append(res.buffers, buf)
	return gpuBuffer{buf: buf, size: size}, nil
}

// upload creates a buffer holding data.
func (d *Dispatcher) upload(res *dispatchResources, label string, data []byte, usage gputypes.BufferUsage) (gpuBuffer, error) {
	gb, err := d.createBuffer(res, label, uint64(len(data)), usage)
	if err != nil {
		return gpuBuffer{}, err
	}
	if len(data) == 0 {
		return gb, nil
	}
	if uint64(len(data)) != gb.size {
		padded := make([]byte, gb.size)
		copy(padded, data)
		data = padded
	}
	d.queue.WriteBuffer(gb.buf, 0, data)
	return gb, nil
}

func bufferEntry(index uint32, gb gpuBuffer) gputypes.BindGroupEntry {
	return gputypes.BindGroupEntry{
		Binding:  index,
		Resource: gputypes.BufferBinding{Buffer: gb.buf.NativeHandle(), Offset: 0, Size: gb.size},
	}
}

// encode records the compute pass and the staging copies.
func (d *Dispatcher) encode(res *dispatchResources, p *Pipeline, plan dispatch.Plan) error {
	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: p.name})
	if err != nil {
		return fmt.Errorf("gpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(p.name); err != nil {
		return fmt.Errorf("gpu: begin encoding: %w", err)
	}

	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: p.name})
	pass.SetPipeline(p.pipeline)
	for g, bg := range res.bindGroups {
		pass.SetBindGroup(uint32(g), bg, nil) //nolint:gosec // g < KindCount
	}
	pass.Dispatch(
		uint32(plan.Groups.X), //nolint:gosec // validated against device limits
		uint32(plan.Groups.Y), //nolint:gosec // validated against device limits
		uint32(plan.Groups.Z), //nolint:gosec // validated against device limits
	)
	pass.End()

	for _, rb := range res.readbacks {
		encoder.CopyBufferToBuffer(rb.src.buf, rb.staging.buf, []hal.BufferCopy{
			{SrcOffset: 0, DstOffset: 0, Size: rb.src.size},
		})
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("gpu: end encoding: %w", err)
	}
	res.cmdBuf = cmdBuf
	return nil
}

// submitAndWait submits the command buffer, waits for the GPU and copies
// read-write buffers back into the kernel.
func (d *Dispatcher) submitAndWait(ctx context.Context, res *dispatchResources) error {
	fence, err := d.device.CreateFence()
	if err != nil {
		return fmt.Errorf("gpu: create fence: %w", err)
	}
	res.fence = fence

	if err := d.queue.Submit([]hal.CommandBuffer{res.cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("gpu: submit: %w", err)
	}

	timeout := fenceTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}
	ok, err := d.device.Wait(fence, 1, timeout)
	if err != nil {
		return fmt.Errorf("gpu: wait for GPU: %w", err)
	}
	if !ok {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("gpu: GPU timeout after %v", timeout)
	}

	for _, rb := range res.readbacks {
		data := make([]byte, rb.staging.size)
		if err := d.queue.ReadBuffer(rb.staging.buf, 0, data); err != nil {
			return fmt.Errorf("gpu: readback: %w", err)
		}
		if err := rb.dst.Load(data[:rb.n]); err != nil {
			return fmt.Errorf("gpu: readback: %w", err)
		}
	}

	slogger().Debug("gpu: dispatch complete", "readbacks", len(res.readbacks))
	return nil
}
