package symcalc

// ============================================================
// Differentiation
// ============================================================

// D returns the total differential of x. The terms of a Sum and the factors
// of a Product are differentiated on the worker pool when their count
// exceeds the threshold. The result equals x.D().
func (e *Engine) D(x Expr) Expr {
	switch v := x.(type) {
	case Scalar, Symbol, Differential:
		return v.D()
	case *Sum:
		ds := make([]Expr, len(v.terms))
		e.Each(len(v.terms), func(i int) {
			ds[i] = e.D(v.terms[i])
		})
		return SumOf(ds...)
	case *Product:
		// product rule: replace one factor at a time by its differential
		ds := make([]Expr, len(v.factors))
		e.Each(len(v.factors), func(i int) {
			rest := make([]Expr, 0, len(v.factors))
			rest = append(rest, v.factors[:i]...)
			rest = append(rest, v.factors[i+1:]...)
			ds[i] = ProductOf(append(rest, e.D(v.factors[i]))...)
		})
		return TimesScalar(SumOf(ds...), v.coeff)
	case *Power:
		df := ProductOf(PowerOf(v.base, v.exp.Sub(One)), v.exp)
		return ProductOf(df, e.D(v.base))
	case *Exponential:
		return ProductOf(v, v.base.Ln(), e.D(v.exp))
	case *Logarithm:
		return ProductOf(PowerOf(v.arg, NegOne), e.D(v.arg))
	}
	panic(unsupported("D", x))
}

// Derivative returns the partial derivative of x with respect to v.
func (e *Engine) Derivative(x Expr, v Symbol) Expr { return Partial(e.D(x), v) }

// Derivative returns the partial derivative of x with respect to v.
func Derivative(x Expr, v Symbol) Expr { return Partial(x.D(), v) }

// Partial divides a total differential by dv: every term loses one factor of
// dv, terms without dv and the constant tail are dropped.
//
//	Partial(2x dx + 2y dy, x) = 2x
//	Partial(2 dx dy, x)      = 2 dy
func Partial(total Expr, v Symbol) Expr {
	dv := Differential{v: v}
	switch t := total.(type) {
	case Scalar:
		return Zero
	case *Sum:
		out := make([]Expr, 0, len(t.terms))
		for _, term := range t.terms {
			if r, ok := stripDifferential(term, dv); ok {
				out = append(out, r)
			}
		}
		return SumOf(out...)
	}
	if r, ok := stripDifferential(total, dv); ok {
		return r
	}
	return Zero
}

// stripDifferential removes one positive power of dv from term.
func stripDifferential(term Expr, dv Differential) (Expr, bool) {
	factors, coeff := factorsOf(term)
	for i, f := range factors {
		base, k := baseExp(f)
		if k.Sign() <= 0 || !base.Equal(dv) {
			continue
		}
		rest := make([]Expr, 0, len(factors)+1)
		rest = append(rest, factors[:i]...)
		rest = append(rest, factors[i+1:]...)
		return ProductOf(append(rest, PowerOf(dv, k.Sub(One)), coeff)...), true
	}
	return nil, false
}
