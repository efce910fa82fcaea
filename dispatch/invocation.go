// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dispatch

// LocalIds is a thread's position within its own group.
type LocalIds struct {
	Int3
	size Int3
}

// Index returns the flattened position within the group, row-major with
// X varying fastest: z*sx*sy + y*sx + x.
func (l LocalIds) Index() int {
	return l.Z*l.size.X*l.size.Y + l.Y*l.size.X + l.X
}

// Invocation is the identity of one thread in a dispatch. It is computed
// per invocation and never stored by the engines.
type Invocation struct {
	thread Int3
	group  Int3
	grid   Int3
}

// Invocation returns the identity of the thread at global position
// (x, y, z). The position must satisfy [Plan.Contains].
func (p Plan) Invocation(x, y, z int) Invocation {
	return Invocation{
		thread: Int3{x, y, z},
		group:  p.Group,
		grid:   p.Grid,
	}
}

// ThreadIds returns the global position (x, y, z).
func (inv Invocation) ThreadIds() Int3 {
	return inv.thread
}

// GroupIds returns the position within the group,
// (x mod sx, y mod sy, z mod sz).
func (inv Invocation) GroupIds() LocalIds {
	return LocalIds{
		Int3: Int3{
			X: inv.thread.X % inv.group.X,
			Y: inv.thread.Y % inv.group.Y,
			Z: inv.thread.Z % inv.group.Z,
		},
		size: inv.group,
	}
}

// GroupIndex is shorthand for GroupIds().Index().
func (inv Invocation) GroupIndex() int {
	return inv.GroupIds().Index()
}

// GroupSize returns the group extent (sx, sy, sz). It is the same for
// every invocation of a dispatch.
func (inv Invocation) GroupSize() Int3 {
	return inv.group
}

// GroupCoord returns the position of the thread's group in the grid of
// groups, (x/sx, y/sy, z/sz).
func (inv Invocation) GroupCoord() Int3 {
	return Int3{
		X: inv.thread.X / inv.group.X,
		Y: inv.thread.Y / inv.group.Y,
		Z: inv.thread.Z / inv.group.Z,
	}
}

// DispatchSize returns the grid extent (gx, gy, gz).
func (inv Invocation) DispatchSize() Int3 {
	return inv.grid
}

// GroupAt returns the coordinate of the i-th group, counting with X
// fastest. i must be in [0, Groups.Count()).
func (p Plan) GroupAt(i int) Int3 {
	gx, gy := p.Groups.X, p.Groups.Y
	return Int3{X: i % gx, Y: (i / gx) % gy, Z: i / (gx * gy)}
}

// Each calls fn for every in-range invocation of the group at coordinate
// g, X fastest. Threads of a partially populated edge group that fall
// outside the grid are skipped.
func (p Plan) Each(g Int3, fn func(Invocation)) {
	x0, y0, z0 := g.X*p.Group.X, g.Y*p.Group.Y, g.Z*p.Group.Z
	x1 := min(x0+p.Group.X, p.Grid.X)
	y1 := min(y0+p.Group.Y, p.Grid.Y)
	z1 := min(z0+p.Group.Z, p.Grid.Z)
	for z := z0; z < z1; z++ {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				fn(p.Invocation(x, y, z))
			}
		}
	}
}
