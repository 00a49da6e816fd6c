package symcalc

import (
	"cmp"
	"math"
	"math/cmplx"
	"strconv"
)

// ============================================================
// Scalar - immutable complex coefficient
// ============================================================

// Scalar is a constant complex value. The zero value is Zero.
type Scalar struct{ v complex128 }

var (
	Zero   = Scalar{}
	One    = Scalar{v: 1}
	NegOne = Scalar{v: -1}
	E      = Scalar{v: complex(math.E, 0)}
	NaN    = Scalar{v: complex(math.NaN(), 0)}
)

func Real(f float64) Scalar         { return scalarOf(complex(f, 0)) }
func Complex(re, im float64) Scalar { return scalarOf(complex(re, im)) }

// scalarOf folds every NaN into the canonical NaN and drops negative zeros.
func scalarOf(v complex128) Scalar {
	re, im := real(v), imag(v)
	if math.IsNaN(re) || math.IsNaN(im) {
		return NaN
	}
	return Scalar{v: complex(re+0, im+0)}
}

func (s Scalar) Re() float64            { return real(s.v) }
func (s Scalar) Im() float64            { return imag(s.v) }
func (s Scalar) Complex128() complex128 { return s.v }
func (s Scalar) IsZero() bool           { return s.v == 0 }
func (s Scalar) IsOne() bool            { return s.v == 1 }
func (s Scalar) IsReal() bool           { return imag(s.v) == 0 }
func (s Scalar) IsNaN() bool            { return math.IsNaN(real(s.v)) }

// IsInteger reports whether s is a finite real integer.
func (s Scalar) IsInteger() bool {
	re := real(s.v)
	return s.IsReal() && !math.IsInf(re, 0) && re == math.Trunc(re)
}

// Sign returns the sign of the real part, or of the imaginary part when the
// real part is zero.
func (s Scalar) Sign() int {
	switch re, im := real(s.v), imag(s.v); {
	case re > 0:
		return 1
	case re < 0:
		return -1
	case im > 0:
		return 1
	case im < 0:
		return -1
	}
	return 0
}

// Cmp orders scalars by real part, then imaginary part. NaN sorts first.
func (s Scalar) Cmp(o Scalar) int {
	if c := cmp.Compare(real(s.v), real(o.v)); c != 0 {
		return c
	}
	return cmp.Compare(imag(s.v), imag(o.v))
}

func (s Scalar) Add(o Scalar) Scalar { return scalarOf(s.v + o.v) }
func (s Scalar) Sub(o Scalar) Scalar { return scalarOf(s.v - o.v) }
func (s Scalar) Neg() Scalar         { return scalarOf(-s.v) }

func (s Scalar) Mul(o Scalar) Scalar {
	if s.IsReal() && o.IsReal() {
		return Real(real(s.v) * real(o.v))
	}
	return scalarOf(s.v * o.v)
}

// Div divides s by o. Division by exact zero is NaN.
func (s Scalar) Div(o Scalar) Scalar {
	if o.IsZero() {
		return NaN
	}
	if s.IsReal() && o.IsReal() {
		return Real(real(s.v) / real(o.v))
	}
	return scalarOf(s.v / o.v)
}

func (s Scalar) Pow(o Scalar) Scalar {
	if s.IsReal() && o.IsReal() {
		return Real(math.Pow(real(s.v), real(o.v)))
	}
	return scalarOf(cmplx.Pow(s.v, o.v))
}

func (s Scalar) Ln() Scalar {
	switch {
	case s.v == E.v:
		return One
	case s.IsReal():
		return Real(math.Log(real(s.v)))
	}
	return scalarOf(cmplx.Log(s.v))
}

func (s Scalar) Abs() Scalar {
	if s.IsReal() {
		return Real(math.Abs(real(s.v)))
	}
	return Real(cmplx.Abs(s.v))
}

func (s Scalar) D() Expr { return Zero }

func (s Scalar) Substitute(from, to Expr) Expr {
	if s.Equal(from) {
		return to
	}
	return s
}

func (s Scalar) SubstituteAll(b *Bindings) Expr {
	if r, ok := b.Lookup(s); ok {
		return r
	}
	return s
}

func (s Scalar) Equal(other Expr) bool {
	o, ok := other.(Scalar)
	return ok && (s.v == o.v || s.IsNaN() && o.IsNaN())
}

func (s Scalar) Hash() uint64 {
	if s.IsNaN() {
		return hashParts(tagScalar, math.Float64bits(math.NaN()))
	}
	return hashParts(tagScalar, math.Float64bits(real(s.v)), math.Float64bits(imag(s.v)))
}

func (s Scalar) String() string {
	switch {
	case s.IsNaN():
		return "NaN"
	case s.v == E.v:
		return "e"
	case s.IsReal():
		return strconv.FormatFloat(real(s.v), 'g', -1, 64)
	}
	return strconv.FormatComplex(s.v, 'g', -1, 128)
}

func (s Scalar) TeX() string {
	if s.IsReal() || s.IsNaN() {
		return s.String()
	}
	re := strconv.FormatFloat(real(s.v), 'g', -1, 64)
	im := strconv.FormatFloat(math.Abs(imag(s.v)), 'g', -1, 64)
	if imag(s.v) < 0 {
		return "(" + re + " - " + im + "i)"
	}
	return "(" + re + " + " + im + "i)"
}

func (s Scalar) exprType() string { return "scalar" }

func (s Scalar) toJSON() map[string]interface{} {
	return map[string]interface{}{
		"type": "scalar",
		"re":   strconv.FormatFloat(real(s.v), 'g', -1, 64),
		"im":   strconv.FormatFloat(imag(s.v), 'g', -1, 64),
	}
}
