package symcalc

// ============================================================
// Calculation helpers
// ============================================================

func Add(terms ...Expr) Expr   { return SumOf(terms...) }
func Mul(factors ...Expr) Expr { return ProductOf(factors...) }
func Neg(e Expr) Expr          { return TimesScalar(e, NegOne) }
func Sub(a, b Expr) Expr       { return SumOf(a, Neg(b)) }
func Square(e Expr) Expr       { return Pow(e, Real(2)) }
func Sqrt(e Expr) Expr         { return Pow(e, Real(0.5)) }
func Exp(e Expr) Expr          { return ExponentialOf(E, e) }
func Ln(e Expr) Expr           { return LnOf(e) }

// Div returns a / b. Division by the scalar zero is NaN.
func Div(a, b Expr) Expr {
	if k, ok := b.(Scalar); ok {
		return DivScalar(a, k)
	}
	return ProductOf(a, PowerOf(b, NegOne))
}

// Pow returns base^exp for arbitrary expressions. A symbolic base with a
// symbolic exponent is rewritten as e^(exp ln(base)).
func Pow(base, exp Expr) Expr {
	if k, ok := exp.(Scalar); ok {
		return PowerOf(base, k)
	}
	if b, ok := base.(Scalar); ok {
		return ExponentialOf(b, exp)
	}
	return Exp(ProductOf(exp, LnOf(base)))
}

func PlusScalar(e Expr, k Scalar) Expr  { return SumOf(e, k) }
func MinusScalar(e Expr, k Scalar) Expr { return SumOf(e, k.Neg()) }

// TimesScalar returns k e, folding k = 0 and k = 1.
func TimesScalar(e Expr, k Scalar) Expr {
	switch {
	case k.IsZero():
		return Zero
	case k.IsOne():
		return e
	}
	if s, ok := e.(Scalar); ok {
		return s.Mul(k)
	}
	return ProductOf(k, e)
}

// DivScalar returns e / k. Dividing by zero is NaN.
func DivScalar(e Expr, k Scalar) Expr {
	switch {
	case k.IsZero():
		return NaN
	case k.IsOne():
		return e
	}
	return TimesScalar(e, One.Div(k))
}
