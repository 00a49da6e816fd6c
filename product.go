package symcalc

import (
	"maps"
	"slices"
	"strings"
)

// ============================================================
// Product - canonical factor set with a scalar coefficient
// ============================================================

// Product is a set of factors with distinct bases and a nonzero coefficient.
// Factors are Symbols, Differentials, Powers, Exponentials or Logarithms.
type Product struct {
	factors []Expr
	coeff   Scalar
	hash    uint64
}

// newProduct sorts factors in place and wraps them without merging.
func newProduct(factors []Expr, coeff Scalar) *Product {
	slices.SortFunc(factors, compareFactor)
	return &Product{factors: factors, coeff: coeff, hash: productHash(factors, coeff)}
}

func productHash(factors []Expr, coeff Scalar) uint64 {
	parts := make([]uint64, 0, len(factors)+1)
	for _, f := range factors {
		parts = append(parts, f.Hash())
	}
	return hashParts(tagProduct, append(parts, coeff.Hash())...)
}

// Factors returns the factors in canonical order, differentials last.
func (p *Product) Factors() []Expr { return slices.Clone(p.factors) }

// Coeff returns the scalar coefficient.
func (p *Product) Coeff() Scalar { return p.coeff }

func (p *Product) Hash() uint64     { return p.hash }
func (p *Product) exprType() string { return "product" }
func (p *Product) D() Expr          { return sequential.D(p) }

// withCoeff returns the same factors scaled by k instead of the current
// coefficient, degenerating to the bare factor when k is one.
func (p *Product) withCoeff(k Scalar) Expr {
	switch {
	case k.IsZero():
		return Zero
	case k.IsOne() && len(p.factors) == 1:
		return p.factors[0]
	case k.Equal(p.coeff):
		return p
	}
	return &Product{factors: p.factors, coeff: k, hash: productHash(p.factors, k)}
}

func (p *Product) Equal(other Expr) bool {
	o, ok := other.(*Product)
	if !ok {
		return false
	}
	if p == o {
		return true
	}
	if p.hash != o.hash || len(p.factors) != len(o.factors) || !p.coeff.Equal(o.coeff) {
		return false
	}
	for i, f := range p.factors {
		if !f.Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

// ProductOf returns the canonical product of factors. Exponents of equal
// bases are merged, scalars fold into the coefficient and sums are expanded.
// A zero factor makes the result Zero without inspecting the rest.
func ProductOf(factors ...Expr) Expr {
	switch len(factors) {
	case 0:
		return One
	case 1:
		return factors[0]
	}
	for _, f := range factors {
		if s, ok := f.(Scalar); ok && s.IsZero() {
			return Zero
		}
	}
	partials := []*productCollector{newProductCollector(len(factors))}
	for _, f := range factors {
		switch v := f.(type) {
		case Scalar:
			if v.IsOne() {
				continue
			}
			for _, c := range partials {
				c.coeff = c.coeff.Mul(v)
			}
		case Symbol, Differential, *Power, *Exponential, *Logarithm:
			for _, c := range partials {
				c.mulFactor(v)
			}
		case *Product:
			for _, c := range partials {
				c.mul(v)
			}
		case *Sum:
			partials = expand(partials, v)
		default:
			panic(unsupported("ProductOf", f))
		}
		partials = slices.DeleteFunc(partials, func(c *productCollector) bool { return c.coeff.IsZero() })
		if len(partials) == 0 {
			return Zero
		}
	}
	if len(partials) == 1 {
		return partials[0].build()
	}
	terms := make([]Expr, len(partials))
	for i, c := range partials {
		terms[i] = c.build()
	}
	return SumOf(terms...)
}

// expand distributes every partial product across the terms and tail of s.
func expand(partials []*productCollector, s *Sum) []*productCollector {
	out := make([]*productCollector, 0, len(partials)*(len(s.terms)+1))
	for _, c := range partials {
		for _, t := range s.terms {
			n := c.clone()
			if p, ok := t.(*Product); ok {
				n.mul(p)
			} else {
				n.mulFactor(t)
			}
			out = append(out, n)
		}
		if !s.tail.IsZero() {
			n := c.clone()
			n.coeff = n.coeff.Mul(s.tail)
			out = append(out, n)
		}
	}
	return out
}

// productCollector accumulates one partial product.
type productCollector struct {
	coeff  Scalar
	powers *exprMap[Scalar]
	// related holds the names of the differentials accepted so far; their
	// exponents all share one sign.
	related map[string]struct{}
}

func newProductCollector(capacity int) *productCollector {
	return &productCollector{coeff: One, powers: newExprMap[Scalar](capacity)}
}

func (c *productCollector) clone() *productCollector {
	return &productCollector{coeff: c.coeff, powers: c.powers.clone(), related: maps.Clone(c.related)}
}

func (c *productCollector) merge(base Expr, k Scalar) {
	c.powers.compute(base, func(old Scalar, _ bool) (Scalar, bool) {
		v := old.Add(k)
		return v, !v.IsZero()
	})
}

func (c *productCollector) mulFactor(f Expr) {
	switch v := f.(type) {
	case Differential:
		c.merge(v, One)
		c.check(v)
	case Symbol, *Exponential, *Logarithm:
		c.merge(v, One)
	case *Power:
		c.merge(v.base, v.exp)
		if dv, ok := v.base.(Differential); ok {
			c.check(dv)
		}
	default:
		panic(unsupported("ProductOf", f))
	}
}

func (c *productCollector) mul(p *Product) {
	for _, f := range p.factors {
		c.mulFactor(f)
		if c.coeff.IsZero() {
			return
		}
	}
	c.coeff = c.coeff.Mul(p.coeff)
}

// check applies the differential consistency rule after dv was merged: a
// partial product whose differentials disagree in exponent sign vanishes.
func (c *productCollector) check(dv Differential) {
	k, ok := c.powers.get(dv)
	if !ok {
		delete(c.related, dv.v.name)
		return
	}
	for name := range c.related {
		if name == dv.v.name {
			continue
		}
		other, _ := c.powers.get(Differential{v: Symbol{name: name}})
		if other.Sign() != k.Sign() {
			c.coeff = Zero
			return
		}
	}
	if c.related == nil {
		c.related = make(map[string]struct{})
	}
	c.related[dv.v.name] = struct{}{}
}

func (c *productCollector) build() Expr {
	factors := make([]Expr, 0, c.powers.len())
	var others []Expr
	c.powers.each(func(base Expr, k Scalar) {
		f := PowerOf(base, k)
		_, folded := base.(*Exponential)
		if folded && !k.IsOne() || !isFactor(f) {
			others = append(others, f)
			return
		}
		factors = append(factors, f)
	})
	var product Expr
	switch {
	case len(factors) == 0:
		product = c.coeff
	case len(factors) == 1 && c.coeff.IsOne():
		product = factors[0]
	default:
		product = newProduct(factors, c.coeff)
	}
	if len(others) > 0 {
		return ProductOf(append(others, product)...)
	}
	return product
}

func (p *Product) Substitute(from, to Expr) Expr {
	if p.Equal(from) {
		return to
	}
	out := make([]Expr, 0, len(p.factors)+1)
	for _, f := range p.factors {
		out = append(out, f.Substitute(from, to))
	}
	return ProductOf(append(out, p.coeff)...)
}

func (p *Product) SubstituteAll(b *Bindings) Expr {
	if r, ok := b.Lookup(p); ok {
		return r
	}
	out := make([]Expr, 0, len(p.factors)+1)
	for _, f := range p.factors {
		out = append(out, f.SubstituteAll(b))
	}
	return ProductOf(append(out, p.coeff)...)
}

func (p *Product) String() string { return p.render(Expr.String, Scalar.String) }
func (p *Product) TeX() string    { return p.render(Expr.TeX, Scalar.TeX) }

func (p *Product) render(factor func(Expr) string, scalar func(Scalar) string) string {
	var sb strings.Builder
	switch {
	case p.coeff.IsOne():
	case p.coeff.Equal(NegOne):
		sb.WriteString("-")
	default:
		sb.WriteString(scalar(p.coeff))
		sb.WriteString(" ")
	}
	for i, f := range p.factors {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(factor(f))
	}
	return sb.String()
}

func (p *Product) toJSON() map[string]interface{} {
	factors := make([]interface{}, len(p.factors))
	for i, f := range p.factors {
		factors[i] = f.toJSON()
	}
	return map[string]interface{}{"type": "product", "factors": factors, "coeff": p.coeff.toJSON()}
}
