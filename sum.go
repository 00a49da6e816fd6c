package symcalc

import (
	"slices"
	"strings"
)

// ============================================================
// Sum - canonical polynomial-style term set
// ============================================================

// Sum is a set of distinct terms with nonzero coefficients plus a scalar tail.
// It always holds at least two parts: two terms, or one term and a nonzero tail.
type Sum struct {
	terms []Expr
	tail  Scalar
	hash  uint64
}

// newSum sorts terms in place and wraps them without merging.
func newSum(terms []Expr, tail Scalar) *Sum {
	slices.SortFunc(terms, compareTerm)
	parts := make([]uint64, 0, len(terms)+1)
	for _, t := range terms {
		parts = append(parts, t.Hash())
	}
	parts = append(parts, tail.Hash())
	return &Sum{terms: terms, tail: tail, hash: hashParts(tagSum, parts...)}
}

// Terms returns the non-constant terms in canonical order.
func (s *Sum) Terms() []Expr { return slices.Clone(s.terms) }

// Tail returns the constant term.
func (s *Sum) Tail() Scalar { return s.tail }

func (s *Sum) Hash() uint64     { return s.hash }
func (s *Sum) exprType() string { return "sum" }
func (s *Sum) D() Expr          { return sequential.D(s) }

func (s *Sum) Equal(other Expr) bool {
	o, ok := other.(*Sum)
	if !ok {
		return false
	}
	if s == o {
		return true
	}
	if s.hash != o.hash || len(s.terms) != len(o.terms) || !s.tail.Equal(o.tail) {
		return false
	}
	for i, t := range s.terms {
		if !t.Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

// SumOf returns the canonical sum of terms: like terms are merged by
// coefficient, zero terms vanish and nested sums are flattened.
func SumOf(terms ...Expr) Expr {
	switch len(terms) {
	case 0:
		return Zero
	case 1:
		return terms[0]
	}
	c := newSumCollector(len(terms))
	for _, t := range terms {
		c.add(t)
	}
	return c.build()
}

type sumCollector struct {
	coeffs *exprMap[Scalar]
	tail   Scalar
}

func newSumCollector(capacity int) *sumCollector {
	return &sumCollector{coeffs: newExprMap[Scalar](capacity)}
}

func (c *sumCollector) merge(base Expr, k Scalar) {
	c.coeffs.compute(base, func(old Scalar, _ bool) (Scalar, bool) {
		v := old.Add(k)
		return v, !v.IsZero()
	})
}

func (c *sumCollector) add(e Expr) {
	switch v := e.(type) {
	case Scalar:
		c.tail = c.tail.Add(v)
	case Symbol, Differential, *Power, *Exponential, *Logarithm:
		c.merge(v, One)
	case *Product:
		c.merge(v.withCoeff(One), v.coeff)
	case *Sum:
		for _, t := range v.terms {
			c.add(t)
		}
		c.tail = c.tail.Add(v.tail)
	default:
		panic(unsupported("SumOf", e))
	}
}

func (c *sumCollector) build() Expr {
	terms := make([]Expr, 0, c.coeffs.len())
	c.coeffs.each(func(base Expr, k Scalar) {
		terms = append(terms, scaleTerm(base, k))
	})
	switch {
	case len(terms) == 0:
		return c.tail
	case len(terms) == 1 && c.tail.IsZero():
		return terms[0]
	}
	return newSum(terms, c.tail)
}

// scaleTerm multiplies a coefficient-free term by k.
func scaleTerm(base Expr, k Scalar) Expr {
	if k.IsOne() {
		return base
	}
	factors, _ := factorsOf(base)
	return newProduct(slices.Clone(factors), k)
}

func (s *Sum) Substitute(from, to Expr) Expr {
	if s.Equal(from) {
		return to
	}
	out := make([]Expr, 0, len(s.terms)+1)
	for _, t := range s.terms {
		out = append(out, t.Substitute(from, to))
	}
	return SumOf(append(out, s.tail)...)
}

func (s *Sum) SubstituteAll(b *Bindings) Expr {
	if r, ok := b.Lookup(s); ok {
		return r
	}
	out := make([]Expr, 0, len(s.terms)+1)
	for _, t := range s.terms {
		out = append(out, t.SubstituteAll(b))
	}
	return SumOf(append(out, s.tail)...)
}

func (s *Sum) String() string { return s.render(Expr.String, Scalar.String) }
func (s *Sum) TeX() string    { return s.render(Expr.TeX, Scalar.TeX) }

func (s *Sum) render(term func(Expr) string, scalar func(Scalar) string) string {
	var sb strings.Builder
	for i, t := range s.terms {
		p, isProduct := t.(*Product)
		switch {
		case i == 0:
			sb.WriteString(term(t))
		case isProduct && p.coeff.IsReal() && p.coeff.Sign() < 0:
			sb.WriteString(" - ")
			sb.WriteString(term(p.withCoeff(p.coeff.Neg())))
		default:
			sb.WriteString(" + ")
			sb.WriteString(term(t))
		}
	}
	switch {
	case s.tail.IsZero():
	case s.tail.IsReal() && s.tail.Sign() < 0:
		sb.WriteString(" - ")
		sb.WriteString(scalar(s.tail.Neg()))
	default:
		sb.WriteString(" + ")
		sb.WriteString(scalar(s.tail))
	}
	return sb.String()
}

func (s *Sum) toJSON() map[string]interface{} {
	terms := make([]interface{}, len(s.terms))
	for i, t := range s.terms {
		terms[i] = t.toJSON()
	}
	return map[string]interface{}{"type": "sum", "terms": terms, "tail": s.tail.toJSON()}
}
