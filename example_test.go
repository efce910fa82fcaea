package compute_test

import (
	"context"
	"fmt"

	"github.com/gogpu/compute"
	"github.com/gogpu/compute/backend"
	"github.com/gogpu/compute/dispatch"
	"github.com/gogpu/compute/resource"
)

type square struct {
	In  resource.ReadOnlyBuffer[int32]
	Out resource.ReadWriteBuffer[int32]
}

func (s square) Execute(inv dispatch.Invocation) {
	i := inv.ThreadIds().X
	v := s.In.At(i)
	s.Out.Set(i, v*v)
}

func ExampleDevice_For() {
	dev, err := compute.New(compute.WithEngine(backend.Serial{}))
	if err != nil {
		panic(err)
	}

	s := square{
		In:  resource.NewReadOnlyBuffer([]int32{1, 2, 3, 4, 5}),
		Out: resource.NewReadWriteBuffer[int32](5),
	}
	if err := dev.For(context.Background(), 5, s); err != nil {
		panic(err)
	}
	fmt.Println(s.Out.Data())
	// Output: [1 4 9 16 25]
}

type blendShader struct {
	Src   resource.ReadOnlyBuffer[float32]
	Alpha float32
	Dst   resource.ReadWriteBuffer[float32]
	Mask  resource.ReadOnlyBuffer[uint32]
}

func (blendShader) Execute(dispatch.Invocation) {}

func ExampleLayout() {
	l, err := compute.Layout(blendShader{})
	if err != nil {
		panic(err)
	}
	for _, b := range l.Bindings() {
		fmt.Println(b.Field.Name, b.Descriptor, b.Register())
	}
	// Output:
	// Src (ReadOnly, 0) register(t0, space0)
	// Dst (ReadWrite, 0) register(u0, space0)
	// Mask (ReadOnly, 1) register(t1, space0)
}

func ExampleDevice_ForGroups() {
	dev, err := compute.New(compute.WithEngine(backend.Serial{}))
	if err != nil {
		panic(err)
	}

	err = dev.ForGroups(context.Background(), 64, 64, 1, 64, 32, 1, square{})
	fmt.Println(err)
	// Output: dispatch GroupThreadCountExceeded: 2048 threads per group exceeds 1024
}
