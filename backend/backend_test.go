package backend

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/gogpu/compute/dispatch"
)

// record runs plan on e and returns the thread ids seen, grouped by the
// group that produced them.
func record(t *testing.T, e Engine, plan dispatch.Plan) map[dispatch.Int3][]dispatch.Int3 {
	t.Helper()

	var mu sync.Mutex
	seen := make(map[dispatch.Int3][]dispatch.Int3)
	err := e.Run(context.Background(), plan, func(inv dispatch.Invocation) {
		mu.Lock()
		defer mu.Unlock()
		g := inv.GroupCoord()
		seen[g] = append(seen[g], inv.ThreadIds())
	})
	if err != nil {
		t.Fatalf("%s.Run() error = %v", e.Name(), err)
	}
	return seen
}

func mustPlan(t *testing.T, gx, gy, gz, sx, sy, sz int) dispatch.Plan {
	t.Helper()
	p, err := dispatch.Validate(gx, gy, gz, sx, sy, sz)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	return p
}

func allEngines(t *testing.T) []Engine {
	t.Helper()
	p := NewParallel(4)
	t.Cleanup(p.Close)
	return []Engine{Serial{}, p, &Parallel{}}
}

func TestEnginesCoverGrid(t *testing.T) {
	tests := []struct {
		name       string
		gx, gy, gz int
		sx, sy, sz int
	}{
		{"1d uniform", 256, 1, 1, 64, 1, 1},
		{"1d partial", 100, 1, 1, 64, 1, 1},
		{"2d partial", 17, 9, 1, 8, 8, 1},
		{"3d partial", 5, 7, 9, 4, 4, 4},
		{"single", 1, 1, 1, 1, 1, 1},
	}

	for _, e := range allEngines(t) {
		for _, tt := range tests {
			t.Run(e.Name()+"/"+tt.name, func(t *testing.T) {
				plan := mustPlan(t, tt.gx, tt.gy, tt.gz, tt.sx, tt.sy, tt.sz)
				seen := record(t, e, plan)

				total := 0
				hits := make(map[dispatch.Int3]int)
				for _, ids := range seen {
					total += len(ids)
					for _, id := range ids {
						hits[id]++
					}
				}
				if want := plan.Grid.Count(); total != want {
					t.Errorf("invocations = %d, want %d", total, want)
				}
				for id, n := range hits {
					if n != 1 {
						t.Errorf("thread %v ran %d times, want 1", id, n)
					}
					if !plan.Contains(id.X, id.Y, id.Z) {
						t.Errorf("thread %v outside grid %v", id, plan.Grid)
					}
				}
			})
		}
	}
}

func TestEnginesGroupOrderXFastest(t *testing.T) {
	plan := mustPlan(t, 6, 4, 1, 3, 2, 1)

	for _, e := range allEngines(t) {
		t.Run(e.Name(), func(t *testing.T) {
			for g, ids := range record(t, e, plan) {
				sorted := slices.IsSortedFunc(ids, func(a, b dispatch.Int3) int {
					if a.Y != b.Y {
						return a.Y - b.Y
					}
					return a.X - b.X
				})
				if !sorted {
					t.Errorf("group %v ran out of order: %v", g, ids)
				}
			}
		})
	}
}

func TestSerialGroupOrder(t *testing.T) {
	plan := mustPlan(t, 4, 4, 2, 2, 2, 1)

	var groups []dispatch.Int3
	err := Serial{}.Run(context.Background(), plan, func(inv dispatch.Invocation) {
		if inv.GroupIndex() == 0 {
			groups = append(groups, inv.GroupCoord())
		}
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var want []dispatch.Int3
	for z := range 2 {
		for y := range 2 {
			for x := range 2 {
				want = append(want, dispatch.Int3{X: x, Y: y, Z: z})
			}
		}
	}
	if !slices.Equal(groups, want) {
		t.Errorf("groups = %v, want %v", groups, want)
	}
}

func TestEnginesCancelled(t *testing.T) {
	plan := mustPlan(t, 1024, 1, 1, 1, 1, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, e := range allEngines(t) {
		t.Run(e.Name(), func(t *testing.T) {
			calls := 0
			var mu sync.Mutex
			err := e.Run(ctx, plan, func(dispatch.Invocation) {
				mu.Lock()
				calls++
				mu.Unlock()
			})
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Run() error = %v, want context.Canceled", err)
			}
			if calls != 0 {
				t.Errorf("calls = %d, want 0", calls)
			}
		})
	}
}

func TestParallelWorkers(t *testing.T) {
	e := NewParallel(3)
	defer e.Close()

	if e.Workers() != 3 {
		t.Errorf("Workers() = %d, want 3", e.Workers())
	}
	if e.Name() != EngineParallel {
		t.Errorf("Name() = %q, want %q", e.Name(), EngineParallel)
	}
}
