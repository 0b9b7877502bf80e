package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs indexed batches on a fixed set of goroutines.
//
// A batch of n items is cut into one contiguous span per worker, so
// neighboring tiles are processed by the same goroutine. A worker that
// finishes its span claims the remaining indices of the other spans.
// Every index runs exactly once.
//
// Thread safety: WorkerPool is safe for concurrent use. Batches from
// concurrent Run calls execute one after another.
type WorkerPool struct {
	workers int
	start   []chan *batch
	mu      sync.Mutex
	wg      sync.WaitGroup
	running atomic.Bool
}

// span is a half-open index range [next, end) claimed front to back.
type span struct {
	next atomic.Int64
	end  int64
	_    [48]byte // keeps neighboring spans on separate cache lines
}

type batch struct {
	fn    func(int)
	spans []span
	wg    sync.WaitGroup
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		start:   make([]chan *batch, workers),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for id := range workers {
		p.start[id] = make(chan *batch, 1)
		go p.worker(id)
	}

	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	for b := range p.start[id] {
		b.run(id)
	}
}

// run drains the worker's own span first, then the others in order.
func (b *batch) run(id int) {
	defer b.wg.Done()

	n := len(b.spans)
	for k := range n {
		s := &b.spans[(id+k)%n]
		for {
			if s.next.Load() >= s.end {
				break
			}
			i := s.next.Add(1) - 1
			if i >= s.end {
				break
			}
			b.fn(int(i))
		}
	}
}

// Run calls fn(i) for every i in [0, n) and blocks until all calls have
// returned. On a closed pool the calls run on the calling goroutine.
func (p *WorkerPool) Run(n int, fn func(i int)) {
	if n <= 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running.Load() {
		for i := range n {
			fn(i)
		}
		return
	}

	parts := min(p.workers, n)
	b := &batch{fn: fn, spans: make([]span, parts)}
	for k := range parts {
		b.spans[k].next.Store(int64(k * n / parts))
		b.spans[k].end = int64((k + 1) * n / parts)
	}

	b.wg.Add(parts)
	for id := range parts {
		p.start[id] <- b
	}
	b.wg.Wait()
}

// Close stops the workers. A batch in progress finishes first.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}

	p.mu.Lock()
	for _, c := range p.start {
		close(c)
	}
	p.mu.Unlock()

	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still dispatches work to its workers.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
