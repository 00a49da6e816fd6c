package symcalc

import (
	"cmp"
	"encoding/binary"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ============================================================
// Core Interface
// ============================================================

// Expr is an immutable, canonical, differentiable expression.
//
// Equal and Hash are structural. Two expressions built by different paths
// for the same mathematical object are Equal.
type Expr interface {
	// D returns the total differential, e.g. d(x^2) = 2 x dx.
	D() Expr
	Substitute(from, to Expr) Expr
	SubstituteAll(b *Bindings) Expr
	Equal(other Expr) bool
	Hash() uint64
	String() string
	TeX() string
	exprType() string
	toJSON() map[string]interface{}
}

const (
	tagScalar byte = iota + 1
	tagSymbol
	tagDifferential
	tagSum
	tagProduct
	tagPower
	tagExponential
	tagLogarithm
)

func hashString(tag byte, s string) uint64 {
	d := xxhash.New()
	_, _ = d.Write([]byte{tag})
	_, _ = d.WriteString(s)
	return d.Sum64()
}

func hashParts(tag byte, parts ...uint64) uint64 {
	var buf [8]byte
	d := xxhash.New()
	_, _ = d.Write([]byte{tag})
	for _, p := range parts {
		binary.LittleEndian.PutUint64(buf[:], p)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// isFactor reports whether e can stand as a factor of a Product.
func isFactor(e Expr) bool {
	switch e.(type) {
	case Symbol, Differential, *Power, *Exponential, *Logarithm:
		return true
	}
	return false
}

// isDifferentialFactor reports whether e is dv or dv^n.
func isDifferentialFactor(e Expr) bool {
	switch v := e.(type) {
	case Differential:
		return true
	case *Power:
		_, ok := v.base.(Differential)
		return ok
	}
	return false
}

// baseExp splits a factor into its base and exponent.
func baseExp(f Expr) (Expr, Scalar) {
	if p, ok := f.(*Power); ok {
		return p.base, p.exp
	}
	return f, One
}

// factorsOf splits a term into its factor list and coefficient.
func factorsOf(t Expr) ([]Expr, Scalar) {
	if p, ok := t.(*Product); ok {
		return p.factors, p.coeff
	}
	return []Expr{t}, One
}

// ============================================================
// Ordering
// ============================================================

func rank(e Expr) int {
	switch e.(type) {
	case Scalar:
		return 0
	case Symbol:
		return 1
	case *Logarithm:
		return 2
	case *Exponential:
		return 3
	case *Sum:
		return 4
	case *Power:
		return 5
	case *Product:
		return 6
	case Differential:
		return 7
	}
	panic(unsupported("rank", e))
}

// compare is a total order over canonical expressions, consistent with Equal.
func compare(a, b Expr) int {
	if ra, rb := rank(a), rank(b); ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch x := a.(type) {
	case Scalar:
		return x.Cmp(b.(Scalar))
	case Symbol:
		return strings.Compare(x.name, b.(Symbol).name)
	case Differential:
		return strings.Compare(x.v.name, b.(Differential).v.name)
	case *Logarithm:
		return compare(x.arg, b.(*Logarithm).arg)
	case *Exponential:
		y := b.(*Exponential)
		if c := x.base.Cmp(y.base); c != 0 {
			return c
		}
		return compare(x.exp, y.exp)
	case *Power:
		y := b.(*Power)
		if c := compare(x.base, y.base); c != 0 {
			return c
		}
		return x.exp.Cmp(y.exp)
	case *Product:
		y := b.(*Product)
		if c := compareFactorLists(x.factors, y.factors); c != 0 {
			return c
		}
		return x.coeff.Cmp(y.coeff)
	case *Sum:
		y := b.(*Sum)
		for i := 0; i < len(x.terms) && i < len(y.terms); i++ {
			if c := compareTerm(x.terms[i], y.terms[i]); c != 0 {
				return c
			}
		}
		if c := cmp.Compare(len(x.terms), len(y.terms)); c != 0 {
			return c
		}
		return x.tail.Cmp(y.tail)
	}
	panic(unsupported("compare", a))
}

// compareFactor puts differential factors last, then orders by base and
// exponent, so x^2 y dx renders in that order.
func compareFactor(a, b Expr) int {
	if da, db := isDifferentialFactor(a), isDifferentialFactor(b); da != db {
		if da {
			return 1
		}
		return -1
	}
	ba, ea := baseExp(a)
	bb, eb := baseExp(b)
	if c := compare(ba, bb); c != 0 {
		return c
	}
	return ea.Cmp(eb)
}

func compareFactorLists(a, b []Expr) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareFactor(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

// compareTerm orders the terms of a Sum by factor list, then coefficient.
func compareTerm(a, b Expr) int {
	fa, ca := factorsOf(a)
	fb, cb := factorsOf(b)
	if c := compareFactorLists(fa, fb); c != 0 {
		return c
	}
	return ca.Cmp(cb)
}
