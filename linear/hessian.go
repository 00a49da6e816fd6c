package linear

import (
	"fmt"
	"strings"

	"github.com/njchilds90/symcalc"
)

// ============================================================
// Hessian - symmetric second-derivative matrix
// ============================================================

// Hessian stores the lower triangle of the symmetric Hessian of a scalar
// field, row by row.
type Hessian struct {
	dom     symcalc.Domain
	entries []symcalc.Expr
}

// MatrixFunc evaluates a compiled Hessian at a point in domain order. Each
// call returns a fresh, fully populated symmetric matrix.
type MatrixFunc func(values []float64) [][]float64

func triangle(r, c int) int {
	if c > r {
		r, c = c, r
	}
	return r*(r+1)/2 + c
}

// HessianFrom extracts the Hessian from the second total differential ddf.
func HessianFrom(ddf symcalc.Expr, dom symcalc.Domain) *Hessian {
	return BuildHessian(symcalc.Sequential(), ddf, dom)
}

// HessianOf returns the Hessian of the scalar field f over dom.
func HessianOf(f symcalc.Expr, dom symcalc.Domain) *Hessian {
	return HessianFrom(f.D().D(), dom)
}

// HessianWith differentiates f twice on eng and builds the Hessian there.
func HessianWith(eng *symcalc.Engine, f symcalc.Expr, dom symcalc.Domain) *Hessian {
	return BuildHessian(eng, eng.D(eng.D(f)), dom)
}

// BuildHessian extracts every lower-triangle entry of ddf on eng's worker pool.
//
// Entry (r, c) is ddf / (dx_r dx_c). Terms whose remaining differentials
// disagree in sign vanish during the product, so only the dx_r dx_c terms
// survive. The coefficient of dx_r dx_c off the diagonal is 2 H_rc and is
// halved.
func BuildHessian(eng *symcalc.Engine, ddf symcalc.Expr, dom symcalc.Domain) *Hessian {
	n := dom.Dim()
	d := make([]symcalc.Expr, n)
	for i, s := range dom.Symbols() {
		d[i] = s.D()
	}
	type cell struct{ r, c int }
	cells := make([]cell, 0, n*(n+1)/2)
	for r := 0; r < n; r++ {
		for c := 0; c <= r; c++ {
			cells = append(cells, cell{r, c})
		}
	}
	entries := make([]symcalc.Expr, len(cells))
	eng.Each(len(cells), func(k int) {
		r, c := cells[k].r, cells[k].c
		inv := symcalc.PowerOf(symcalc.ProductOf(d[r], d[c]), symcalc.NegOne)
		e := symcalc.ProductOf(ddf, inv)
		if r != c {
			e = symcalc.DivScalar(e, symcalc.Real(2))
		}
		entries[k] = e
	})
	return &Hessian{dom: dom, entries: entries}
}

func (h *Hessian) Dim() int               { return h.dom.Dim() }
func (h *Hessian) Domain() symcalc.Domain { return h.dom }

// At returns entry (r, c). At(r, c) and At(c, r) are the same expression.
func (h *Hessian) At(r, c int) symcalc.Expr { return h.entries[triangle(r, c)] }

func (h *Hessian) SubstituteAll(b *symcalc.Bindings) *Hessian {
	out := make([]symcalc.Expr, len(h.entries))
	for i, e := range h.entries {
		out[i] = e.SubstituteAll(b)
	}
	return &Hessian{dom: h.dom, entries: out}
}

// Compile compiles the entries over dom, which may differ from the domain
// the Hessian was built on.
func (h *Hessian) Compile(eng *symcalc.Engine, dom symcalc.Domain) (MatrixFunc, error) {
	fs, err := compileAll(eng, h.entries, dom)
	if err != nil {
		return nil, fmt.Errorf("hessian: %w", err)
	}
	n := h.Dim()
	return func(values []float64) [][]float64 {
		tri := make([]float64, len(fs))
		eng.Each(len(fs), func(i int) {
			tri[i] = fs[i](values)
		})
		out := make([][]float64, n)
		for r := range out {
			out[r] = make([]float64, n)
			for c := range out[r] {
				out[r][c] = tri[triangle(r, c)]
			}
		}
		return out
	}, nil
}

func (h *Hessian) String() string {
	var sb strings.Builder
	n := h.Dim()
	for r := 0; r < n; r++ {
		parts := make([]string, n)
		for c := 0; c < n; c++ {
			parts[c] = h.At(r, c).String()
		}
		sb.WriteString("[" + strings.Join(parts, ", ") + "]")
		if r < n-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
