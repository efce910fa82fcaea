// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dispatch

import "fmt"

// Int3 is an integer triple used for grid positions and extents.
type Int3 struct {
	X, Y, Z int
}

// Count returns X*Y*Z.
func (v Int3) Count() int {
	return v.X * v.Y * v.Z
}

// String returns "(x, y, z)".
func (v Int3) String() string {
	return fmt.Sprintf("(%d, %d, %d)", v.X, v.Y, v.Z)
}

// Axis identifies one component of an extent.
type Axis int8

const (
	// AxisNone marks violations that are not tied to a single axis,
	// such as the per-group thread count.
	AxisNone Axis = iota - 1
	AxisX
	AxisY
	AxisZ
)

// String returns the lowercase axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "none"
	}
}

// component returns the extent along a.
func (v Int3) component(a Axis) int {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// ceilDiv returns ceil(a/b) for positive operands without overflowing
// near math.MaxInt.
func ceilDiv(a, b int) int {
	return (a-1)/b + 1
}
