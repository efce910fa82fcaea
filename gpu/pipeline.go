//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/compute/binding"
	"github.com/gogpu/compute/dispatch"
	"github.com/gogpu/wgpu/hal"
)

// Pipeline is a compiled kernel.
type Pipeline struct {
	name       string
	layout     *binding.Layout
	entryPoint string
	group      dispatch.Int3

	module         hal.ShaderModule
	bgLayouts      [binding.KindCount]hal.BindGroupLayout
	pipelineLayout hal.PipelineLayout
	pipeline       hal.ComputePipeline
}

// Layout returns the descriptor layout the pipeline binds.
func (p *Pipeline) Layout() *binding.Layout { return p.layout }

// EntryPoint returns the name of the compute entry point.
func (p *Pipeline) EntryPoint() string { return p.entryPoint }

// GroupSize returns the kernel's @workgroup_size.
func (p *Pipeline) GroupSize() dispatch.Int3 { return p.group }

func (d *Dispatcher) createPipeline(name, src string, layout *binding.Layout, refl *binding.Reflection) (*Pipeline, error) {
	p := &Pipeline{
		name:       name,
		layout:     layout,
		entryPoint: refl.EntryPoint,
		group: dispatch.Int3{
			X: refl.WorkgroupSize[0],
			Y: refl.WorkgroupSize[1],
			Z: refl.WorkgroupSize[2],
		},
	}

	module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  name,
		Source: hal.ShaderSource{WGSL: src},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create shader module for %s: %w", name, err)
	}
	p.module = module

	entries := layout.BindGroupLayoutEntries()
	for g := range p.bgLayouts {
		bgl, err := d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label:   fmt.Sprintf("%s_bgl%d", name, g),
			Entries: entries[g],
		})
		if err != nil {
			p.destroy(d.device)
			return nil, fmt.Errorf("gpu: create bind group layout %d for %s: %w", g, name, err)
		}
		p.bgLayouts[g] = bgl
	}

	pipelineLayout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            name + "_pl",
		BindGroupLayouts: p.bgLayouts[:],
	})
	if err != nil {
		p.destroy(d.device)
		return nil, fmt.Errorf("gpu: create pipeline layout for %s: %w", name, err)
	}
	p.pipelineLayout = pipelineLayout

	pipeline, err := d.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  name,
		Layout: pipelineLayout,
		Compute: hal.ComputeState{
			Module:     module,
			EntryPoint: refl.EntryPoint,
		},
	})
	if err != nil {
		p.destroy(d.device)
		return nil, fmt.Errorf("gpu: create compute pipeline for %s: %w", name, err)
	}
	p.pipeline = pipeline

	slogger().Debug("gpu: pipeline created",
		"kernel", name,
		"entry_point", refl.EntryPoint,
		"workgroup_size", p.group,
		"bindings", len(layout.Descriptors()),
		"shader_bytes", len(src))
	return p, nil
}

// destroy releases whatever part of the pipeline was created.
func (p *Pipeline) destroy(device hal.Device) {
	if p.pipeline != nil {
		device.DestroyComputePipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipelineLayout != nil {
		device.DestroyPipelineLayout(p.pipelineLayout)
		p.pipelineLayout = nil
	}
	for i, bgl := range p.bgLayouts {
		if bgl != nil {
			device.DestroyBindGroupLayout(bgl)
			p.bgLayouts[i] = nil
		}
	}
	if p.module != nil {
		device.DestroyShaderModule(p.module)
		p.module = nil
	}
}
