package symcalc

import (
	"fmt"
	"slices"
	"strings"
)

// ============================================================
// Domain - ordered set of symbols
// ============================================================

// Domain is a set of symbols sorted by name. It fixes the component order
// of the value slices taken by compiled functions.
type Domain struct {
	syms []Symbol
}

// XYZ is the domain {x, y, z}.
var XYZ = Vars("x", "y", "z")

func NewDomain(syms ...Symbol) Domain {
	out := slices.Clone(syms)
	slices.SortFunc(out, func(a, b Symbol) int { return strings.Compare(a.name, b.name) })
	return Domain{syms: slices.Compact(out)}
}

// Vars returns the domain of the named symbols.
func Vars(names ...string) Domain {
	syms := make([]Symbol, len(names))
	for i, n := range names {
		syms[i] = Var(n)
	}
	return NewDomain(syms...)
}

// Letters returns the domain of single-letter symbols from..to inclusive.
func Letters(from, to rune) Domain {
	var syms []Symbol
	for r := from; r <= to; r++ {
		syms = append(syms, Var(string(r)))
	}
	return NewDomain(syms...)
}

func (d Domain) Dim() int               { return len(d.syms) }
func (d Domain) Symbols() []Symbol      { return slices.Clone(d.syms) }
func (d Domain) At(i int) Symbol        { return d.syms[i] }
func (d Domain) Contains(s Symbol) bool { return d.Index(s) >= 0 }

// Index returns the position of s, or -1.
func (d Domain) Index(s Symbol) int {
	i, ok := slices.BinarySearchFunc(d.syms, s, func(a, b Symbol) int { return strings.Compare(a.name, b.name) })
	if !ok {
		return -1
	}
	return i
}

func (d Domain) Equal(o Domain) bool { return slices.Equal(d.syms, o.syms) }

func (d Domain) Union(o Domain) Domain {
	return NewDomain(append(slices.Clone(d.syms), o.syms...)...)
}

func (d Domain) Intersect(o Domain) Domain {
	var out []Symbol
	for _, s := range d.syms {
		if o.Contains(s) {
			out = append(out, s)
		}
	}
	return Domain{syms: out}
}

func (d Domain) Difference(o Domain) Domain {
	var out []Symbol
	for _, s := range d.syms {
		if !o.Contains(s) {
			out = append(out, s)
		}
	}
	return Domain{syms: out}
}

func (d Domain) String() string {
	names := make([]string, len(d.syms))
	for i, s := range d.syms {
		names[i] = s.name
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// Bind binds every symbol of d to the value at its index.
func (d Domain) Bind(values []float64) (*Bindings, error) {
	if len(values) != len(d.syms) {
		return nil, fmt.Errorf("bind %s: %w: got %d values, want %d", d, ErrDimension, len(values), len(d.syms))
	}
	b := NewBindings()
	for i, s := range d.syms {
		b.Bind(s, Real(values[i]))
	}
	return b, nil
}

func (d Domain) indexMap() map[string]int {
	m := make(map[string]int, len(d.syms))
	for i, s := range d.syms {
		m[s.name] = i
	}
	return m
}

// FreeSymbols returns the symbols e depends on. A Differential counts as its
// symbol.
func FreeSymbols(e Expr) Domain {
	seen := make(map[string]struct{})
	collectSymbols(e, seen)
	syms := make([]Symbol, 0, len(seen))
	for name := range seen {
		syms = append(syms, Symbol{name: name})
	}
	return NewDomain(syms...)
}

func collectSymbols(e Expr, seen map[string]struct{}) {
	switch v := e.(type) {
	case Scalar:
	case Symbol:
		seen[v.name] = struct{}{}
	case Differential:
		seen[v.v.name] = struct{}{}
	case *Sum:
		for _, t := range v.terms {
			collectSymbols(t, seen)
		}
	case *Product:
		for _, f := range v.factors {
			collectSymbols(f, seen)
		}
	case *Power:
		collectSymbols(v.base, seen)
	case *Exponential:
		collectSymbols(v.exp, seen)
	case *Logarithm:
		collectSymbols(v.arg, seen)
	default:
		panic(unsupported("FreeSymbols", e))
	}
}
