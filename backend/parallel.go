package backend

import (
	"context"
	"sync"

	"github.com/gogpu/compute/dispatch"
	"github.com/gogpu/compute/internal/parallel"
)

var (
	sharedOnce sync.Once
	sharedPool *parallel.Pool
)

func init() {
	Register(EngineParallel, func() Engine { return &Parallel{} })
}

// Parallel runs each group as one work item on a worker pool.
//
// The zero value shares a process-wide pool sized to GOMAXPROCS.
// NewParallel creates an engine with its own pool, which must be
// released with Close.
type Parallel struct {
	pool  *parallel.Pool
	owned bool
}

// NewParallel creates a parallel engine with its own pool of the given
// number of workers. If workers is 0 or negative, GOMAXPROCS is used.
func NewParallel(workers int) *Parallel {
	return &Parallel{pool: parallel.NewPool(workers), owned: true}
}

// Name returns the engine identifier.
func (*Parallel) Name() string { return EngineParallel }

// Workers returns the number of goroutines groups are spread over.
func (e *Parallel) Workers() int { return e.workers().Workers() }

// Run executes plan.
func (e *Parallel) Run(ctx context.Context, plan dispatch.Plan, fn func(dispatch.Invocation)) error {
	pool := e.workers()
	n := plan.Groups.Count()
	slogger().Debug("backend: parallel run",
		"grid", plan.Grid, "group", plan.Group, "groups", n, "workers", pool.Workers())

	return pool.Run(ctx, n, func(i int) {
		plan.Each(plan.GroupAt(i), fn)
	})
}

// Close releases the engine's own pool. It has no effect on the shared pool.
func (e *Parallel) Close() {
	if e.owned && e.pool != nil {
		e.pool.Close()
	}
}

func (e *Parallel) workers() *parallel.Pool {
	if e.pool != nil {
		return e.pool
	}
	sharedOnce.Do(func() {
		sharedPool = parallel.NewPool(0)
		slogger().Info("backend: shared pool started", "workers", sharedPool.Workers())
	})
	return sharedPool
}
