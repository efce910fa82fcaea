// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dispatch

import "github.com/gogpu/gputypes"

// Limits holds the hardware ceilings a dispatch is validated against.
type Limits struct {
	// MaxGroupSizeX, MaxGroupSizeY and MaxGroupSizeZ bound the group
	// extents per axis.
	MaxGroupSizeX int
	MaxGroupSizeY int
	MaxGroupSizeZ int

	// MaxGroupThreads bounds sx*sy*sz.
	MaxGroupThreads int

	// MaxGroupCount bounds the number of groups along each axis.
	// Zero disables the check.
	MaxGroupCount int
}

// MaxDispatchGroups is the number of groups a hardware dispatch can
// launch along one axis.
const MaxDispatchGroups = 65535

// DefaultLimits returns the D3D12 group ceilings: groups of at most
// 1024x1024x64 threads with at most 1024 threads in total. The group
// count is unchecked; CPU engines can run any number of groups.
func DefaultLimits() Limits {
	return Limits{
		MaxGroupSizeX:   1024,
		MaxGroupSizeY:   1024,
		MaxGroupSizeZ:   64,
		MaxGroupThreads: 1024,
	}
}

// LimitsFromDevice derives limits for a hardware dispatch from WebGPU
// device limits. Group size and thread ceilings are taken from the device
// but never exceed [DefaultLimits]; zero device values keep the default.
// The group count comes from MaxComputeWorkgroupsPerDimension, or
// [MaxDispatchGroups] when that is zero.
func LimitsFromDevice(lim gputypes.Limits) Limits {
	l := DefaultLimits()
	l.MaxGroupSizeX = lower(l.MaxGroupSizeX, lim.MaxComputeWorkgroupSizeX)
	l.MaxGroupSizeY = lower(l.MaxGroupSizeY, lim.MaxComputeWorkgroupSizeY)
	l.MaxGroupSizeZ = lower(l.MaxGroupSizeZ, lim.MaxComputeWorkgroupSizeZ)
	l.MaxGroupThreads = lower(l.MaxGroupThreads, lim.MaxComputeInvocationsPerWorkgroup)
	l.MaxGroupCount = MaxDispatchGroups
	if n := lim.MaxComputeWorkgroupsPerDimension; n != 0 {
		l.MaxGroupCount = int(n)
	}
	return l
}

func lower(def int, device uint32) int {
	if device == 0 || int64(device) >= int64(def) {
		return def
	}
	return int(device)
}

// maxGroupSize returns the group size ceiling along a.
func (l Limits) maxGroupSize(a Axis) int {
	switch a {
	case AxisX:
		return l.MaxGroupSizeX
	case AxisY:
		return l.MaxGroupSizeY
	default:
		return l.MaxGroupSizeZ
	}
}
