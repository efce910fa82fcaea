package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned by Run after Close.
var ErrClosed = errors.New("parallel: pool closed")

// batch is one Run call. Items of a batch are spread round-robin over the
// worker queues.
type batch struct {
	fn      func(i int)
	pending sync.WaitGroup

	panicOnce sync.Once
	panicVal  any
}

type task struct {
	b *batch
	i int
}

func (t task) run() {
	defer t.b.pending.Done()
	defer func() {
		if r := recover(); r != nil {
			t.b.panicOnce.Do(func() { t.b.panicVal = r })
		}
	}()
	t.b.fn(t.i)
}

// Pool runs indexed work items on a fixed set of goroutines.
//
// Each worker owns a queue and steals from the other queues when its own is
// empty, which balances groups of uneven cost.
//
// Pool is safe for concurrent use.
type Pool struct {
	queues  []chan task
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &Pool{
		queues: make([]chan task, workers),
		done:   make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan task, queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]

	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case t := <-own:
			t.run()
			continue
		default:
		}

		if t, ok := p.steal(id); ok {
			t.run()
			continue
		}

		select {
		case <-p.done:
			p.drain(own)
			return
		case t := <-own:
			t.run()
		}
	}
}

func (p *Pool) drain(q chan task) {
	for {
		select {
		case t := <-q:
			t.run()
		default:
			return
		}
	}
}

func (p *Pool) steal(id int) (task, bool) {
	for i := range p.queues {
		if i == id {
			continue
		}
		select {
		case t := <-p.queues[i]:
			return t, true
		default:
		}
	}
	return task{}, false
}

// Run calls fn(i) for every i in [0, n) on the pool workers and waits for
// all scheduled calls to return.
//
// If ctx is cancelled, no further items are scheduled; items already
// scheduled still run and Run returns ctx.Err(). A panic in fn is re-raised
// in the caller after all scheduled items have returned.
func (p *Pool) Run(ctx context.Context, n int, fn func(i int)) error {
	if !p.running.Load() {
		return ErrClosed
	}
	if n <= 0 {
		return ctx.Err()
	}

	b := &batch{fn: fn}
	var err error

schedule:
	for i := range n {
		if err = ctx.Err(); err != nil {
			break
		}
		b.pending.Add(1)
		select {
		case p.queues[i%len(p.queues)] <- task{b: b, i: i}:
		case <-ctx.Done():
			b.pending.Done()
			err = ctx.Err()
			break schedule
		case <-p.done:
			b.pending.Done()
			err = ErrClosed
			break schedule
		}
	}

	b.pending.Wait()
	if b.panicVal != nil {
		panic(b.panicVal)
	}
	return err
}

// Close stops the workers after the queued items have run.
// Close is safe to call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers.
func (p *Pool) Workers() int {
	return len(p.queues)
}

// IsRunning reports whether the pool accepts work.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}

// Queued returns the approximate number of items waiting in the queues.
func (p *Pool) Queued() int {
	total := 0
	for _, q := range p.queues {
		total += len(q)
	}
	return total
}
