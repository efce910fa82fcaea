// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package dispatch validates compute dispatch extents and defines the
// thread indexing model seen by kernel code.
//
// A dispatch covers a grid of gx*gy*gz threads partitioned into groups of
// sx*sy*sz threads. [Validate] checks the six extents against the
// hardware ceilings in [Limits] and returns an execution [Plan] or an
// [*Error] that matches [ErrArgumentOutOfRange]. No partial or clamped
// plan is ever produced.
//
// For every in-range global position a [Plan] yields an [Invocation]:
//
//	ThreadIds  = (x, y, z)
//	GroupIds   = (x mod sx, y mod sy, z mod sz)
//	GroupIndex = (z mod sz)*sx*sy + (y mod sy)*sx + (x mod sx)
//	GroupSize  = (sx, sy, sz)
//
// These values are definitional. Any execution engine, from a
// single-threaded simulation to GPU hardware, reproduces them exactly.
//
// Grids need not be multiples of the group extents. The last group along
// an axis may be partially populated; out-of-range global ids are never
// produced.
package dispatch
