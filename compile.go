package symcalc

import (
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// ============================================================
// Compilation to numeric closures
// ============================================================

// Func evaluates a compiled expression at a point given in domain order.
type Func func(values []float64) float64

// Compile turns x into a closure over dom using the sequential engine.
func Compile(x Expr, dom Domain) (Func, error) { return sequential.Compile(x, dom) }

// Compile1 turns x into a closure of the single variable v using the
// sequential engine.
func Compile1(x Expr, v Symbol) (func(float64) float64, error) { return sequential.Compile1(x, v) }

// Compile turns x into a closure over dom. Every node is compiled once; Sums
// and Products with more children than the threshold evaluate them on the
// worker pool. Symbols outside dom and differentials are reported together.
//
// The returned Func panics if called with len(values) != dom.Dim().
func (e *Engine) Compile(x Expr, dom Domain) (Func, error) {
	c := &compiler{eng: e, index: dom.indexMap(), seen: make(map[string]struct{})}
	f := c.compile(x)
	if err := c.errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("compile %s: %w", x, err)
	}
	dim := dom.Dim()
	e.logger.Debug("compiled expression", "dim", dim, "parallel_nodes", c.parallelNodes, "threshold", e.threshold)
	return func(values []float64) float64 {
		if len(values) != dim {
			panic(fmt.Sprintf("symcalc: %v: got %d values, want %d", ErrDimension, len(values), dim))
		}
		return f(values)
	}, nil
}

func (e *Engine) Compile1(x Expr, v Symbol) (func(float64) float64, error) {
	f, err := e.Compile(x, NewDomain(v))
	if err != nil {
		return nil, err
	}
	return func(t float64) float64 { return f([]float64{t}) }, nil
}

type compiler struct {
	eng           *Engine
	index         map[string]int
	errs          *multierror.Error
	seen          map[string]struct{}
	parallelNodes int
}

func (c *compiler) fail(err error, what string) {
	key := err.Error() + "\x00" + what
	if _, dup := c.seen[key]; dup {
		return
	}
	c.seen[key] = struct{}{}
	c.errs = multierror.Append(c.errs, fmt.Errorf("%w: %s", err, what))
}

func (c *compiler) compile(x Expr) Func {
	switch v := x.(type) {
	case Scalar:
		if !v.IsReal() {
			c.fail(ErrNotEvaluable, v.String())
		}
		k := v.Re()
		return func([]float64) float64 { return k }
	case Symbol:
		i, ok := c.index[v.name]
		if !ok {
			c.fail(ErrUnbound, v.name)
		}
		return func(x []float64) float64 { return x[i] }
	case Differential:
		c.fail(ErrNotEvaluable, v.String())
		return func([]float64) float64 { return math.NaN() }
	case *Sum:
		fs := c.compileAll(v.terms)
		tail := c.real(v.tail)
		if c.eng.Parallel(len(fs)) {
			c.parallelNodes++
			eng := c.eng
			return func(x []float64) float64 { return eng.reduce(fs, x, 0, add) + tail }
		}
		return func(x []float64) float64 {
			acc := 0.0
			for _, f := range fs {
				acc += f(x)
			}
			return acc + tail
		}
	case *Product:
		fs := c.compileAll(v.factors)
		coeff := c.real(v.coeff)
		if c.eng.Parallel(len(fs)) {
			c.parallelNodes++
			eng := c.eng
			return func(x []float64) float64 { return coeff * eng.reduce(fs, x, 1, mul) }
		}
		return func(x []float64) float64 {
			acc := coeff
			for _, f := range fs {
				acc *= f(x)
			}
			return acc
		}
	case *Power:
		f := c.compile(v.base)
		k := c.real(v.exp)
		return func(x []float64) float64 { return math.Pow(f(x), k) }
	case *Exponential:
		f := c.compile(v.exp)
		b := c.real(v.base)
		return func(x []float64) float64 { return math.Pow(b, f(x)) }
	case *Logarithm:
		f := c.compile(v.arg)
		return func(x []float64) float64 { return math.Log(f(x)) }
	}
	panic(unsupported("Compile", x))
}

func (c *compiler) compileAll(xs []Expr) []Func {
	fs := make([]Func, len(xs))
	for i, x := range xs {
		fs[i] = c.compile(x)
	}
	return fs
}

func (c *compiler) real(k Scalar) float64 {
	if !k.IsReal() {
		c.fail(ErrNotEvaluable, k.String())
	}
	return k.Re()
}

func add(a, b float64) float64 { return a + b }
func mul(a, b float64) float64 { return a * b }

// reduce folds fs(x) with op, one goroutine per contiguous chunk.
func (e *Engine) reduce(fs []Func, x []float64, identity float64, op func(a, b float64) float64) float64 {
	chunks := min(e.workers, len(fs))
	size := (len(fs) + chunks - 1) / chunks
	partials := make([]float64, chunks)
	var g errgroup.Group
	for j := range partials {
		partials[j] = identity
		lo, hi := j*size, min((j+1)*size, len(fs))
		if lo >= hi {
			continue
		}
		j := j
		g.Go(func() error {
			acc := identity
			for _, f := range fs[lo:hi] {
				acc = op(acc, f(x))
			}
			partials[j] = acc
			return nil
		})
	}
	_ = g.Wait()
	acc := identity
	for _, p := range partials {
		acc = op(acc, p)
	}
	return acc
}
