// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dispatch

import (
	"errors"
	"fmt"
)

// ErrArgumentOutOfRange is matched by every dispatch validation error.
var ErrArgumentOutOfRange = errors.New("dispatch: argument out of range")

// ErrorKind categorizes dispatch validation errors.
type ErrorKind uint8

const (
	// ErrInvalidDispatchExtent indicates a grid extent that is not positive.
	ErrInvalidDispatchExtent ErrorKind = iota

	// ErrInvalidGroupExtent indicates a group extent that is not positive
	// or exceeds its per-axis ceiling.
	ErrInvalidGroupExtent

	// ErrGroupThreadCountExceeded indicates sx*sy*sz above the per-group
	// thread ceiling.
	ErrGroupThreadCountExceeded

	// ErrGroupCountExceeded indicates more groups along an axis than the
	// device can launch in one dispatch.
	ErrGroupCountExceeded
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidDispatchExtent:
		return "InvalidDispatchExtent"
	case ErrInvalidGroupExtent:
		return "InvalidGroupExtent"
	case ErrGroupThreadCountExceeded:
		return "GroupThreadCountExceeded"
	case ErrGroupCountExceeded:
		return "GroupCountExceeded"
	default:
		return "Unknown"
	}
}

// Error reports a rejected dispatch request.
type Error struct {
	// Kind categorizes the violation.
	Kind ErrorKind

	// Axis is the offending axis, or AxisNone for the thread count check.
	Axis Axis

	// Value is the offending value.
	Value int

	// Limit is the bound that was violated. For non-positive extents it
	// is the lower bound 1.
	Limit int
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case ErrInvalidDispatchExtent:
		return fmt.Sprintf("dispatch %s: grid extent %s = %d, must be > 0", e.Kind, e.Axis, e.Value)
	case ErrInvalidGroupExtent:
		if e.Value <= 0 {
			return fmt.Sprintf("dispatch %s: group extent %s = %d, must be > 0", e.Kind, e.Axis, e.Value)
		}
		return fmt.Sprintf("dispatch %s: group extent %s = %d exceeds %d", e.Kind, e.Axis, e.Value, e.Limit)
	case ErrGroupThreadCountExceeded:
		return fmt.Sprintf("dispatch %s: %d threads per group exceeds %d", e.Kind, e.Value, e.Limit)
	default:
		return fmt.Sprintf("dispatch %s: %d groups along %s exceeds %d", e.Kind, e.Value, e.Axis, e.Limit)
	}
}

// Is reports whether target is ErrArgumentOutOfRange.
func (e *Error) Is(target error) bool {
	return target == ErrArgumentOutOfRange
}

// IsInvalidDispatchExtent returns true if the error is ErrInvalidDispatchExtent.
func (e *Error) IsInvalidDispatchExtent() bool {
	return e.Kind == ErrInvalidDispatchExtent
}

// IsInvalidGroupExtent returns true if the error is ErrInvalidGroupExtent.
func (e *Error) IsInvalidGroupExtent() bool {
	return e.Kind == ErrInvalidGroupExtent
}

// IsGroupThreadCountExceeded returns true if the error is ErrGroupThreadCountExceeded.
func (e *Error) IsGroupThreadCountExceeded() bool {
	return e.Kind == ErrGroupThreadCountExceeded
}

// KindOf returns the kind of a dispatch validation error anywhere in
// err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return 0, false
}
