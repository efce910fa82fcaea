// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dispatch

import "math"

// Plan is an accepted dispatch request.
type Plan struct {
	// Grid is the global thread extent (gx, gy, gz).
	Grid Int3

	// Group is the group extent (sx, sy, sz).
	Group Int3

	// Groups is the number of groups per axis, ceil(g/s).
	Groups Int3
}

var axes = [3]Axis{AxisX, AxisY, AxisZ}

// Validate checks a dispatch request against [DefaultLimits].
func Validate(gx, gy, gz, sx, sy, sz int) (Plan, error) {
	return DefaultLimits().Validate(gx, gy, gz, sx, sy, sz)
}

// Validate checks a dispatch request against l and returns its plan.
//
// Checks run in order and the first violation is returned: grid extents
// must be positive, group extents must be positive and within the per-axis
// ceilings, the group thread count must not exceed MaxGroupThreads, and
// the group count along each axis must not exceed MaxGroupCount. The total
// group count must fit in an int.
func (l Limits) Validate(gx, gy, gz, sx, sy, sz int) (Plan, error) {
	grid := Int3{gx, gy, gz}
	group := Int3{sx, sy, sz}

	for _, a := range axes {
		if v := grid.component(a); v <= 0 {
			return Plan{}, &Error{Kind: ErrInvalidDispatchExtent, Axis: a, Value: v, Limit: 1}
		}
	}
	for _, a := range axes {
		v := group.component(a)
		if v <= 0 {
			return Plan{}, &Error{Kind: ErrInvalidGroupExtent, Axis: a, Value: v, Limit: 1}
		}
		if limit := l.maxGroupSize(a); v > limit {
			return Plan{}, &Error{Kind: ErrInvalidGroupExtent, Axis: a, Value: v, Limit: limit}
		}
	}
	// Each factor is at most 1024 here, so the product cannot overflow.
	if n := group.Count(); n > l.MaxGroupThreads {
		return Plan{}, &Error{Kind: ErrGroupThreadCountExceeded, Axis: AxisNone, Value: n, Limit: l.MaxGroupThreads}
	}

	groups := Int3{ceilDiv(gx, sx), ceilDiv(gy, sy), ceilDiv(gz, sz)}
	if l.MaxGroupCount > 0 {
		for _, a := range axes {
			if v := groups.component(a); v > l.MaxGroupCount {
				return Plan{}, &Error{Kind: ErrGroupCountExceeded, Axis: a, Value: v, Limit: l.MaxGroupCount}
			}
		}
	}

	// Engines iterate Groups.Count() linearly, so the product must fit.
	total := 1
	for _, a := range axes {
		v := groups.component(a)
		if limit := math.MaxInt / total; v > limit {
			return Plan{}, &Error{Kind: ErrGroupCountExceeded, Axis: a, Value: v, Limit: limit}
		}
		total *= v
	}

	return Plan{Grid: grid, Group: group, Groups: groups}, nil
}

// Validate1D checks a linear dispatch of gx threads with groups of one
// thread.
func Validate1D(gx int) (Plan, error) {
	return Validate(gx, 1, 1, 1, 1, 1)
}

// Threads returns gx*gy*gz, the number of invocations the plan launches.
func (p Plan) Threads() int {
	return p.Grid.Count()
}

// Contains reports whether (x, y, z) lies inside the grid.
func (p Plan) Contains(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < p.Grid.X && y < p.Grid.Y && z < p.Grid.Z
}

// Uniform reports whether every group is fully populated.
func (p Plan) Uniform() bool {
	return p.Grid.X%p.Group.X == 0 && p.Grid.Y%p.Group.Y == 0 && p.Grid.Z%p.Group.Z == 0
}
