// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dispatch

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestValidate_Rejected(t *testing.T) {
	tests := []struct {
		name       string
		g, s       Int3
		wantKind   ErrorKind
		wantAxis   Axis
		wantValue  int
		wantLimit  int
		wantSubstr string
	}{
		{"group x zero", Int3{8, 8, 8}, Int3{0, 8, 8}, ErrInvalidGroupExtent, AxisX, 0, 1, "must be > 0"},
		{"group x over 1024", Int3{50, 50, 50}, Int3{1025, 8, 8}, ErrInvalidGroupExtent, AxisX, 1025, 1024, "exceeds 1024"},
		{"thread count 1920", Int3{50, 50, 50}, Int3{8, 15, 16}, ErrGroupThreadCountExceeded, AxisNone, 1920, 1024, "1920 threads"},
		{"grid x zero", Int3{0, 1, 1}, Int3{1, 1, 1}, ErrInvalidDispatchExtent, AxisX, 0, 1, "grid extent x"},
		{"grid y negative", Int3{4, -3, 1}, Int3{1, 1, 1}, ErrInvalidDispatchExtent, AxisY, -3, 1, "grid extent y"},
		{"grid z zero", Int3{4, 4, 0}, Int3{1, 1, 1}, ErrInvalidDispatchExtent, AxisZ, 0, 1, "grid extent z"},
		{"group y negative", Int3{4, 4, 4}, Int3{1, -1, 1}, ErrInvalidGroupExtent, AxisY, -1, 1, "must be > 0"},
		{"group y over 1024", Int3{4, 4, 4}, Int3{1, 1025, 1}, ErrInvalidGroupExtent, AxisY, 1025, 1024, "exceeds"},
		{"group z over 64", Int3{4, 4, 4}, Int3{1, 1, 65}, ErrInvalidGroupExtent, AxisZ, 65, 64, "group extent z"},
		{"thread count 1056", Int3{4, 4, 4}, Int3{33, 32, 1}, ErrGroupThreadCountExceeded, AxisNone, 1056, 1024, ""},
		// The grid is checked before the group.
		{"grid before group", Int3{0, 1, 1}, Int3{0, 1, 1}, ErrInvalidDispatchExtent, AxisX, 0, 1, ""},
		// Per-axis limits are checked before the thread count.
		{"extent before count", Int3{1, 1, 1}, Int3{1024, 1024, 65}, ErrInvalidGroupExtent, AxisZ, 65, 64, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Validate(tt.g.X, tt.g.Y, tt.g.Z, tt.s.X, tt.s.Y, tt.s.Z)
			if err == nil {
				t.Fatalf("Validate() = %+v, want error", plan)
			}
			if plan != (Plan{}) {
				t.Errorf("Validate() plan = %+v, want zero plan", plan)
			}
			if !errors.Is(err, ErrArgumentOutOfRange) {
				t.Errorf("errors.Is(err, ErrArgumentOutOfRange) = false for %v", err)
			}
			var de *Error
			if !errors.As(err, &de) {
				t.Fatalf("error %T is not *Error", err)
			}
			if de.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", de.Kind, tt.wantKind)
			}
			if de.Axis != tt.wantAxis {
				t.Errorf("Axis = %v, want %v", de.Axis, tt.wantAxis)
			}
			if de.Value != tt.wantValue {
				t.Errorf("Value = %d, want %d", de.Value, tt.wantValue)
			}
			if de.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", de.Limit, tt.wantLimit)
			}
			if tt.wantSubstr != "" && !strings.Contains(err.Error(), tt.wantSubstr) {
				t.Errorf("Error() = %q, want substring %q", err.Error(), tt.wantSubstr)
			}
		})
	}
}

func TestValidate_Accepted(t *testing.T) {
	tests := []struct {
		name       string
		g, s       Int3
		wantGroups Int3
	}{
		{"single thread", Int3{1, 1, 1}, Int3{4, 15, 7}, Int3{1, 1, 1}},
		{"uniform", Int3{64, 64, 64}, Int3{8, 8, 8}, Int3{8, 8, 8}},
		{"non-uniform", Int3{50, 50, 50}, Int3{4, 4, 4}, Int3{13, 13, 13}},
		{"linear", Int3{1000, 1, 1}, Int3{1, 1, 1}, Int3{1000, 1, 1}},
		{"max x", Int3{2048, 1, 1}, Int3{1024, 1, 1}, Int3{2, 1, 1}},
		{"max z", Int3{1, 1, 64}, Int3{1, 16, 64}, Int3{1, 1, 1}},
		{"max threads", Int3{32, 32, 1}, Int3{32, 32, 1}, Int3{1, 1, 1}},
		{"many groups", Int3{1 << 20, 1, 1}, Int3{1, 1, 1}, Int3{1 << 20, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Validate(tt.g.X, tt.g.Y, tt.g.Z, tt.s.X, tt.s.Y, tt.s.Z)
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if plan.Grid != tt.g {
				t.Errorf("Grid = %v, want %v", plan.Grid, tt.g)
			}
			if plan.Group != tt.s {
				t.Errorf("Group = %v, want %v", plan.Group, tt.s)
			}
			if plan.Groups != tt.wantGroups {
				t.Errorf("Groups = %v, want %v", plan.Groups, tt.wantGroups)
			}
		})
	}
}

func TestValidate_GroupSizeScenario(t *testing.T) {
	plan, err := Validate(1, 1, 1, 4, 15, 7)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	inv := plan.Invocation(0, 0, 0)
	if got, want := inv.GroupSize(), (Int3{4, 15, 7}); got != want {
		t.Errorf("GroupSize() = %v, want %v", got, want)
	}
	if got := inv.GroupSize().Count(); got != 420 {
		t.Errorf("GroupSize().Count() = %d, want 420", got)
	}
}

func TestValidate_GroupCountLimit(t *testing.T) {
	l := DefaultLimits()
	l.MaxGroupCount = MaxDispatchGroups

	if _, err := l.Validate(MaxDispatchGroups, 1, 1, 1, 1, 1); err != nil {
		t.Errorf("Validate(65535 groups) error = %v, want nil", err)
	}

	_, err := l.Validate(1, MaxDispatchGroups*2+1, 1, 1, 2, 1)
	kind, ok := KindOf(err)
	if !ok || kind != ErrGroupCountExceeded {
		t.Fatalf("KindOf(%v) = %v, %v; want ErrGroupCountExceeded", err, kind, ok)
	}
	var de *Error
	errors.As(err, &de)
	if de.Axis != AxisY || de.Value != MaxDispatchGroups+1 {
		t.Errorf("Error = %+v, want axis y value %d", de, MaxDispatchGroups+1)
	}
}

func TestValidate_LargeGrid(t *testing.T) {
	p, err := Validate(math.MaxInt, 1, 1, 2, 1, 1)
	if err != nil {
		t.Fatalf("Validate(MaxInt, 1, 1, 2, 1, 1) error = %v", err)
	}
	if want := math.MaxInt/2 + 1; p.Groups.X != want {
		t.Errorf("Groups.X = %d, want %d", p.Groups.X, want)
	}
	if p.Groups.Count() <= 0 {
		t.Errorf("Groups.Count() = %d, want > 0", p.Groups.Count())
	}

	if _, err := Validate(math.MaxInt, 1, 1, 1, 1, 1); err != nil {
		t.Errorf("Validate(MaxInt groups) error = %v, want nil", err)
	}

	_, err = Validate(math.MaxInt, 2, 1, 1, 1, 1)
	var de *Error
	if !errors.As(err, &de) || de.Kind != ErrGroupCountExceeded {
		t.Fatalf("Validate(MaxInt, 2, 1) error = %v, want GroupCountExceeded", err)
	}
	if de.Axis != AxisY || de.Value != 2 || de.Limit != 1 {
		t.Errorf("Error = %+v, want axis y value 2 limit 1", de)
	}
	if !errors.Is(err, ErrArgumentOutOfRange) {
		t.Error("errors.Is(err, ErrArgumentOutOfRange) = false")
	}
}

func TestValidate1D(t *testing.T) {
	plan, err := Validate1D(100)
	if err != nil {
		t.Fatalf("Validate1D() error = %v", err)
	}
	if plan.Grid != (Int3{100, 1, 1}) || plan.Group != (Int3{1, 1, 1}) {
		t.Errorf("Validate1D() = %+v", plan)
	}
	if _, err := Validate1D(0); !errors.Is(err, ErrArgumentOutOfRange) {
		t.Errorf("Validate1D(0) error = %v, want ErrArgumentOutOfRange", err)
	}
}

func TestPlan_Helpers(t *testing.T) {
	plan, err := Validate(10, 4, 2, 4, 4, 1)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got := plan.Threads(); got != 80 {
		t.Errorf("Threads() = %d, want 80", got)
	}
	if plan.Uniform() {
		t.Error("Uniform() = true for 10/4, want false")
	}
	if !plan.Contains(9, 3, 1) {
		t.Error("Contains(9,3,1) = false, want true")
	}
	for _, p := range []Int3{{10, 0, 0}, {0, 4, 0}, {0, 0, 2}, {-1, 0, 0}} {
		if plan.Contains(p.X, p.Y, p.Z) {
			t.Errorf("Contains(%v) = true, want false", p)
		}
	}
}

func TestErrorKind_String(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{ErrInvalidDispatchExtent, "InvalidDispatchExtent"},
		{ErrInvalidGroupExtent, "InvalidGroupExtent"},
		{ErrGroupThreadCountExceeded, "GroupThreadCountExceeded"},
		{ErrGroupCountExceeded, "GroupCountExceeded"},
		{ErrorKind(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestError_Helpers(t *testing.T) {
	e := &Error{Kind: ErrInvalidGroupExtent}
	if !e.IsInvalidGroupExtent() || e.IsInvalidDispatchExtent() || e.IsGroupThreadCountExceeded() {
		t.Errorf("helpers disagree with Kind %v", e.Kind)
	}
	if _, ok := KindOf(errors.New("other")); ok {
		t.Error("KindOf(non-dispatch error) ok = true, want false")
	}
}
