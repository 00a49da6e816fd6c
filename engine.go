package symcalc

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
)

// ============================================================
// Engine - parallelism policy for differentiation and evaluation
// ============================================================

// Engine carries the dispatch policy used by D, Compile and the linear
// package. Nodes with more children than the threshold are processed on a
// worker pool bounded by the worker count. An Engine is immutable and safe
// for concurrent use.
type Engine struct {
	threshold int
	workers   int
	logger    hclog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithParallelism sets the child count above which work is dispatched to the
// worker pool. It panics if threshold is negative.
func WithParallelism(threshold int) Option {
	if threshold < 0 {
		panic(fmt.Sprintf("symcalc: WithParallelism(%d): threshold must be non-negative", threshold))
	}
	return func(e *Engine) {
		e.threshold = threshold
	}
}

// WithWorkers bounds the number of goroutines of one parallel step.
// It panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("symcalc: WithWorkers(%d): need at least one worker", n))
	}
	return func(e *Engine) {
		e.workers = n
	}
}

// WithLogger sets the logger. A nil logger keeps the null logger.
func WithLogger(l hclog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// DefaultParallelism is twice the current GOMAXPROCS.
func DefaultParallelism() int { return runtime.GOMAXPROCS(0) * 2 }

// NewEngine returns an engine whose threshold and worker count default to
// DefaultParallelism, evaluated once here.
func NewEngine(opts ...Option) *Engine {
	n := DefaultParallelism()
	e := &Engine{threshold: n, workers: n, logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// sequential never dispatches work. Expr.D and the package level Compile
// functions use it.
var sequential = &Engine{threshold: math.MaxInt, workers: 1, logger: hclog.NewNullLogger()}

// Sequential returns the engine that never dispatches work.
func Sequential() *Engine { return sequential }

func (e *Engine) Threshold() int       { return e.threshold }
func (e *Engine) Workers() int         { return e.workers }
func (e *Engine) Logger() hclog.Logger { return e.logger }

// Parallel reports whether n children are processed on the worker pool.
func (e *Engine) Parallel(n int) bool { return n > e.threshold }

// Each calls fn for every i in [0, n), concurrently on the worker pool when
// Parallel(n) holds. fn must only write to slots owned by i. A panic in fn
// is re-raised on the calling goroutine.
func (e *Engine) Each(n int, fn func(i int)) {
	if !e.Parallel(n) {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	var (
		g     errgroup.Group
		once  sync.Once
		fault interface{}
	)
	g.SetLimit(e.workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			defer func() {
				if rec := recover(); rec != nil {
					once.Do(func() { fault = rec })
				}
			}()
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
	if fault != nil {
		panic(fault)
	}
}
