package linear

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/njchilds90/symcalc"
)

// ============================================================
// Field - expressions named by symbol
// ============================================================

// Field assigns an expression to each symbol, e.g. the current point of an
// iteration (x = 3, y = 4) or a step vector (x = -2 x, y = -2 y). Symbols
// without an entry read as zero. A Field is immutable.
type Field struct {
	entries map[symcalc.Symbol]symcalc.Expr
}

// NewField copies entries, dropping zero expressions.
func NewField(entries map[symcalc.Symbol]symcalc.Expr) Field {
	m := make(map[symcalc.Symbol]symcalc.Expr, len(entries))
	for s, e := range entries {
		if !e.Equal(symcalc.Zero) {
			m[s] = e
		}
	}
	return Field{entries: m}
}

// OrdinaryField maps every symbol of dom to itself.
func OrdinaryField(dom symcalc.Domain) Field {
	m := make(map[symcalc.Symbol]symcalc.Expr, dom.Dim())
	for _, s := range dom.Symbols() {
		m[s] = s
	}
	return Field{entries: m}
}

// Order binds the symbols of dom to values in domain order.
func Order(dom symcalc.Domain, values []float64) (Field, error) {
	if len(values) != dom.Dim() {
		return Field{}, fmt.Errorf("order %s: %w: got %d values", dom, symcalc.ErrDimension, len(values))
	}
	m := make(map[symcalc.Symbol]symcalc.Expr, dom.Dim())
	for i, s := range dom.Symbols() {
		m[s] = symcalc.Real(values[i])
	}
	return NewField(m), nil
}

// Get returns the entry of s, or Zero.
func (f Field) Get(s symcalc.Symbol) symcalc.Expr {
	if e, ok := f.entries[s]; ok {
		return e
	}
	return symcalc.Zero
}

// Domain returns the symbols with an entry.
func (f Field) Domain() symcalc.Domain {
	syms := make([]symcalc.Symbol, 0, len(f.entries))
	for s := range f.entries {
		syms = append(syms, s)
	}
	return symcalc.NewDomain(syms...)
}

func (f Field) Add(o Field) Field { return f.combine(o, symcalc.One) }
func (f Field) Sub(o Field) Field { return f.combine(o, symcalc.NegOne) }

func (f Field) combine(o Field, k symcalc.Scalar) Field {
	m := make(map[symcalc.Symbol]symcalc.Expr, len(f.entries)+len(o.entries))
	for s, e := range f.entries {
		m[s] = e
	}
	for s, e := range o.entries {
		m[s] = symcalc.SumOf(f.Get(s), symcalc.TimesScalar(e, k))
	}
	return NewField(m)
}

func (f Field) Scale(k symcalc.Scalar) Field {
	m := make(map[symcalc.Symbol]symcalc.Expr, len(f.entries))
	for s, e := range f.entries {
		m[s] = symcalc.TimesScalar(e, k)
	}
	return NewField(m)
}

// Bindings binds every symbol to its entry, for SubstituteAll.
func (f Field) Bindings() *symcalc.Bindings {
	b := symcalc.NewBindings()
	for s, e := range f.entries {
		b.Bind(s, e)
	}
	return b
}

func (f Field) Substitute(from, to symcalc.Expr) Field {
	m := make(map[symcalc.Symbol]symcalc.Expr, len(f.entries))
	for s, e := range f.entries {
		m[s] = e.Substitute(from, to)
	}
	return NewField(m)
}

func (f Field) SubstituteAll(b *symcalc.Bindings) Field {
	m := make(map[symcalc.Symbol]symcalc.Expr, len(f.entries))
	for s, e := range f.entries {
		m[s] = e.SubstituteAll(b)
	}
	return NewField(m)
}

// Vector lists the entries in the order of dom.
func (f Field) Vector(dom symcalc.Domain) Vector {
	out := make(Vector, dom.Dim())
	for i, s := range dom.Symbols() {
		out[i] = f.Get(s)
	}
	return out
}

// Values returns the entries in the order of dom as numbers. Every entry
// that is not a real scalar is reported.
func (f Field) Values(dom symcalc.Domain) ([]float64, error) {
	var errs *multierror.Error
	out := make([]float64, dom.Dim())
	for i, s := range dom.Symbols() {
		k, ok := f.Get(s).(symcalc.Scalar)
		if !ok || !k.IsReal() {
			errs = multierror.Append(errs, fmt.Errorf("%s = %s: %w", s, f.Get(s), symcalc.ErrNotEvaluable))
			continue
		}
		out[i] = k.Re()
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

// Length returns the Euclidean norm of the entries.
func (f Field) Length() symcalc.Expr { return f.Vector(f.Domain()).Length() }

func (f Field) String() string {
	parts := make([]string, 0, len(f.entries))
	for s, e := range f.entries {
		parts = append(parts, s.String()+" = "+e.String())
	}
	slices.Sort(parts)
	return "{" + strings.Join(parts, ", ") + "}"
}
