package main

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/gogpu/compute/binding"
	"github.com/gogpu/compute/dispatch"
	"github.com/gogpu/gputypes"
)

// kernel is reflected WGSL source with the layout its globals imply.
type kernel struct {
	source string
	refl   *binding.Reflection
	layout *binding.Layout
	names  map[binding.Descriptor]string
}

// loadKernel reflects source and verifies that its globals follow the
// layout convention: within each kind, offsets are dense and in order.
func loadKernel(source string, implicitOutput bool) (*kernel, error) {
	refl, err := binding.ReflectWGSL(source)
	if err != nil {
		return nil, err
	}

	globals := slices.Clone(refl.Globals)
	slices.SortStableFunc(globals, func(a, b binding.Global) int {
		return cmp.Or(cmp.Compare(a.Group, b.Group), cmp.Compare(a.Binding, b.Binding))
	})

	names := make(map[binding.Descriptor]string, len(globals))
	var fields []binding.Field
	for _, g := range globals {
		d := g.Descriptor()
		names[d] = g.Name
		if d == binding.ImplicitConstants {
			continue
		}
		if implicitOutput && d == (binding.Descriptor{Kind: binding.KindReadWrite, Offset: 0}) {
			continue
		}
		f, ok := binding.NewField(g.Name, resourceTypeName(g), len(fields))
		if !ok {
			return nil, fmt.Errorf("global %s: unsupported %s %s", g.Name, g.Class, g.Shape)
		}
		fields = append(fields, f)
	}

	layout := binding.NewLayout(implicitOutput, fields)
	if err := layout.Verify(refl); err != nil {
		return nil, err
	}
	return &kernel{source: source, refl: refl, layout: layout, names: names}, nil
}

// resourceTypeName returns the resource type a global is declared as on
// the Go side.
func resourceTypeName(g binding.Global) string {
	switch {
	case g.Class == binding.ClassConstantBuffer:
		return "ConstantBuffer"
	case g.Shape == binding.ShapeBuffer:
		if g.Class == binding.ClassReadOnly {
			return "ReadOnlyBuffer"
		}
		return "ReadWriteBuffer"
	case g.Shape == binding.ShapeTexture3D:
		if g.Class == binding.ClassReadOnly {
			return "ReadOnlyTexture3D"
		}
		return "ReadWriteTexture3D"
	default:
		if g.Class == binding.ClassReadOnly {
			return "ReadOnlyTexture2D"
		}
		return "ReadWriteTexture2D"
	}
}

func (k *kernel) groupSize() []int {
	return k.refl.WorkgroupSize[:]
}

func (k *kernel) print(w io.Writer) error {
	ws := k.refl.WorkgroupSize
	fmt.Fprintf(w, "kernel %s @workgroup_size(%d, %d, %d)\n", k.refl.EntryPoint, ws[0], ws[1], ws[2])

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	descs := k.layout.Descriptors()
	if _, ok := k.names[binding.ImplicitConstants]; ok {
		descs = append([]binding.Descriptor{binding.ImplicitConstants}, descs...)
	}
	for _, d := range descs {
		name, ok := k.names[d]
		switch {
		case d == binding.ImplicitConstants:
			name += " (constants)"
		case !ok:
			name = "(implicit output)"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", name, d, d.WGSL(), d.Register())
	}
	return tw.Flush()
}

// checkDispatch validates a grid the way a WebGPU device would, using the
// kernel's @workgroup_size when group is nil.
func (k *kernel) checkDispatch(w io.Writer, grid, group []int) error {
	if group == nil {
		group = k.groupSize()
	}
	limits := dispatch.LimitsFromDevice(gputypes.DefaultLimits())
	plan, err := limits.Validate(grid[0], grid[1], grid[2], group[0], group[1], group[2])
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "dispatch %v in groups of %v: %v groups, %d threads\n",
		plan.Grid, plan.Group, plan.Groups, plan.Threads())
	if !plan.Uniform() {
		fmt.Fprintf(w, "  grid is not a multiple of the group size; out-of-range threads must be masked\n")
	}
	return nil
}

func (k *kernel) hlsl() (string, error) {
	return binding.CompileHLSL(k.source, k.layout)
}

// parseExtent parses "x[,y[,z]]"; omitted components are 1.
func parseExtent(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) > 3 {
		return nil, fmt.Errorf("%q: at most three components", s)
	}
	ext := []int{1, 1, 1}
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		ext[i] = v
	}
	return ext, nil
}
