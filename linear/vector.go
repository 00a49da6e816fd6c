// Package linear builds vector and matrix structures from symcalc
// expressions: gradients, Hessians and named fields over a Domain, plus their
// compiled numeric forms.
package linear

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/njchilds90/symcalc"
)

// ============================================================
// Vector - ordered expressions
// ============================================================

// Vector is an ordered list of expressions.
type Vector []symcalc.Expr

// VectorFunc evaluates a compiled Vector at a point in domain order. Each
// call returns a fresh slice.
type VectorFunc func(values []float64) []float64

// Length returns the Euclidean norm sqrt(sum v_i^2).
func (v Vector) Length() symcalc.Expr {
	squares := make([]symcalc.Expr, len(v))
	for i, e := range v {
		squares[i] = symcalc.Square(e)
	}
	return symcalc.Sqrt(symcalc.SumOf(squares...))
}

func (v Vector) Dim() int { return len(v) }

func (v Vector) Substitute(from, to symcalc.Expr) Vector {
	out := make(Vector, len(v))
	for i, e := range v {
		out[i] = e.Substitute(from, to)
	}
	return out
}

func (v Vector) SubstituteAll(b *symcalc.Bindings) Vector {
	out := make(Vector, len(v))
	for i, e := range v {
		out[i] = e.SubstituteAll(b)
	}
	return out
}

func (v Vector) Equal(o Vector) bool {
	if len(v) != len(o) {
		return false
	}
	for i, e := range v {
		if !e.Equal(o[i]) {
			return false
		}
	}
	return true
}

// Compile compiles every component over dom. Components are evaluated on
// the engine's worker pool when there are more of them than its threshold.
func (v Vector) Compile(eng *symcalc.Engine, dom symcalc.Domain) (VectorFunc, error) {
	fs, err := compileAll(eng, v, dom)
	if err != nil {
		return nil, err
	}
	return func(values []float64) []float64 {
		out := make([]float64, len(fs))
		eng.Each(len(fs), func(i int) {
			out[i] = fs[i](values)
		})
		return out
	}, nil
}

func compileAll(eng *symcalc.Engine, es []symcalc.Expr, dom symcalc.Domain) ([]symcalc.Func, error) {
	var errs *multierror.Error
	fs := make([]symcalc.Func, len(es))
	for i, e := range es {
		f, err := eng.Compile(e, dom)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("component %d: %w", i, err))
			continue
		}
		fs[i] = f
	}
	return fs, errs.ErrorOrNil()
}

func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
