package symcalc

// ============================================================
// Power - base^k with a constant exponent
// ============================================================

// Power is base^exp. The base is a Symbol, Differential, Sum or Logarithm;
// a Differential base always carries an integer exponent.
type Power struct {
	base Expr
	exp  Scalar
	hash uint64
}

func newPower(base Expr, exp Scalar) *Power {
	return &Power{base: base, exp: exp, hash: hashParts(tagPower, base.Hash(), exp.Hash())}
}

func (p *Power) Base() Expr       { return p.base }
func (p *Power) Exponent() Scalar { return p.exp }
func (p *Power) Hash() uint64     { return p.hash }
func (p *Power) exprType() string { return "pow" }
func (p *Power) D() Expr          { return sequential.D(p) }

func (p *Power) Equal(other Expr) bool {
	o, ok := other.(*Power)
	return ok && (p == o || p.hash == o.hash && p.exp.Equal(o.exp) && p.base.Equal(o.base))
}

// PowerOf returns base^exp in canonical form.
//
// Powers of powers multiply their exponents, powers of exponentials scale the
// exponent and powers of products distribute over the factors. Raising a
// Differential to a non-integer exponent panics with a *DomainError.
func PowerOf(base Expr, exp Scalar) Expr {
	switch {
	case exp.IsZero():
		return One
	case exp.IsOne():
		return base
	}
	switch b := base.(type) {
	case Scalar:
		return b.Pow(exp)
	case Symbol, *Sum, *Logarithm:
		return newPower(b, exp)
	case Differential:
		if !exp.IsInteger() {
			domainPanic("PowerOf", b.String()+"^"+exp.String(), "differential order must be an integer")
		}
		return newPower(b, exp)
	case *Power:
		return PowerOf(b.base, b.exp.Mul(exp))
	case *Exponential:
		return ExponentialOf(b.base, TimesScalar(b.exp, exp))
	case *Product:
		out := make([]Expr, 0, len(b.factors)+1)
		for _, f := range b.factors {
			out = append(out, PowerOf(f, exp))
		}
		return ProductOf(append(out, b.coeff.Pow(exp))...)
	}
	panic(unsupported("PowerOf", base))
}

func (p *Power) Substitute(from, to Expr) Expr {
	if p.Equal(from) {
		return to
	}
	return PowerOf(p.base.Substitute(from, to), p.exp)
}

func (p *Power) SubstituteAll(b *Bindings) Expr {
	if r, ok := b.Lookup(p); ok {
		return r
	}
	return PowerOf(p.base.SubstituteAll(b), p.exp)
}

func (p *Power) String() string {
	if isBasic(p.base) {
		return p.base.String() + "^" + p.exp.String()
	}
	return "(" + p.base.String() + ")^" + p.exp.String()
}

func (p *Power) TeX() string {
	switch {
	case p.exp.Equal(Real(0.5)):
		return `\sqrt{` + p.base.TeX() + `}`
	case p.exp.Equal(Real(-0.5)):
		return `\frac{1}{\sqrt{` + p.base.TeX() + `}}`
	}
	return "{" + texParam(p.base) + "}^{" + p.exp.TeX() + "}"
}

func (p *Power) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "pow", "base": p.base.toJSON(), "exp": p.exp.toJSON()}
}

// ============================================================
// Exponential - k^expr with a constant base
// ============================================================

// Exponential is base^exp for a positive real base other than 1.
type Exponential struct {
	base Scalar
	exp  Expr
	hash uint64
}

func newExponential(base Scalar, exp Expr) *Exponential {
	return &Exponential{base: base, exp: exp, hash: hashParts(tagExponential, base.Hash(), exp.Hash())}
}

func (e *Exponential) Base() Scalar     { return e.base }
func (e *Exponential) Exponent() Expr   { return e.exp }
func (e *Exponential) Hash() uint64     { return e.hash }
func (e *Exponential) exprType() string { return "exp" }
func (e *Exponential) D() Expr          { return sequential.D(e) }

func (e *Exponential) Equal(other Expr) bool {
	o, ok := other.(*Exponential)
	return ok && (e == o || e.hash == o.hash && e.base.Equal(o.base) && e.exp.Equal(o.exp))
}

// ExponentialOf returns base^exp in canonical form.
//
// A sum in the exponent splits into a product of exponentials, a logarithm
// collapses into a power, and the coefficient of a product moves into the
// base. A negative or complex base with a symbolic exponent panics with a
// *DomainError.
func ExponentialOf(base Scalar, exp Expr) Expr {
	switch {
	case base.IsNaN():
		return NaN
	case base.IsZero():
		return Zero
	case base.IsOne():
		return One
	}
	if k, ok := exp.(Scalar); ok {
		return base.Pow(k)
	}
	if !base.IsReal() || base.Sign() < 0 {
		domainPanic("ExponentialOf", base.String(), "base of a symbolic exponent must be a positive real")
	}
	switch m := exp.(type) {
	case Symbol, *Power, *Exponential:
		return newExponential(base, m)
	case *Product:
		b := base.Pow(m.coeff)
		core := m.withCoeff(One)
		if _, ok := core.(*Product); !ok {
			return ExponentialOf(b, core)
		}
		switch {
		case b.IsNaN():
			return NaN
		case b.IsZero():
			return Zero
		case b.IsOne():
			return One
		}
		return newExponential(b, core)
	case *Logarithm:
		return PowerOf(m.arg, base.Ln())
	case *Sum:
		out := make([]Expr, 0, len(m.terms)+1)
		for _, t := range m.terms {
			out = append(out, ExponentialOf(base, t))
		}
		return ProductOf(append(out, base.Pow(m.tail))...)
	}
	panic(unsupported("ExponentialOf", exp))
}

func (e *Exponential) Substitute(from, to Expr) Expr {
	if e.Equal(from) {
		return to
	}
	return Pow(e.base.Substitute(from, to), e.exp.Substitute(from, to))
}

func (e *Exponential) SubstituteAll(b *Bindings) Expr {
	if r, ok := b.Lookup(e); ok {
		return r
	}
	return Pow(e.base.SubstituteAll(b), e.exp.SubstituteAll(b))
}

func (e *Exponential) String() string {
	if isBasic(e.exp) {
		return e.base.String() + "^" + e.exp.String()
	}
	return e.base.String() + "^(" + e.exp.String() + ")"
}

func (e *Exponential) TeX() string {
	return "{" + e.base.TeX() + "}^{" + e.exp.TeX() + "}"
}

func (e *Exponential) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "exp", "base": e.base.toJSON(), "exp": e.exp.toJSON()}
}

// ============================================================
// Logarithm - natural logarithm
// ============================================================

// Logarithm is ln(arg). Positivity of arg is the caller's responsibility.
type Logarithm struct {
	arg  Expr
	hash uint64
}

func newLogarithm(arg Expr) *Logarithm {
	return &Logarithm{arg: arg, hash: hashParts(tagLogarithm, arg.Hash())}
}

func (l *Logarithm) Arg() Expr        { return l.arg }
func (l *Logarithm) Hash() uint64     { return l.hash }
func (l *Logarithm) exprType() string { return "ln" }
func (l *Logarithm) D() Expr          { return sequential.D(l) }

func (l *Logarithm) Equal(other Expr) bool {
	o, ok := other.(*Logarithm)
	return ok && (l == o || l.hash == o.hash && l.arg.Equal(o.arg))
}

// LnOf returns the natural logarithm of arg in canonical form.
//
//	ln(b^k)    = k ln(b)
//	ln(a^m)    = m ln(a)
//	ln(k x y)  = ln(k) + ln(x) + ln(y)   for k > 0
func LnOf(arg Expr) Expr {
	switch a := arg.(type) {
	case Scalar:
		return a.Ln()
	case Symbol, *Sum, *Logarithm:
		return newLogarithm(a)
	case *Power:
		return TimesScalar(LnOf(a.base), a.exp)
	case *Exponential:
		return TimesScalar(a.exp, a.base.Ln())
	case *Product:
		return lnProduct(a)
	}
	panic(unsupported("LnOf", arg))
}

// lnProduct splits ln over the factors of p. With a negative coefficient the
// non-exponential factors keep the sign inside a single logarithm.
func lnProduct(p *Product) Expr {
	terms := make([]Expr, 0, len(p.factors)+1)
	var rest []Expr
	for _, f := range p.factors {
		if e, ok := f.(*Exponential); ok {
			terms = append(terms, TimesScalar(e.exp, e.base.Ln()))
			continue
		}
		rest = append(rest, f)
	}
	sign := One
	if p.coeff.IsReal() && p.coeff.Sign() < 0 {
		sign = NegOne
	}
	switch {
	case sign.IsOne():
		for _, f := range rest {
			terms = append(terms, LnOf(f))
		}
	case len(rest) == 0:
		terms = append(terms, NegOne.Ln())
	default:
		terms = append(terms, newLogarithm(ProductOf(append(rest, NegOne)...)))
	}
	terms = append(terms, p.coeff.Mul(sign).Ln())
	return SumOf(terms...)
}

// Log returns the logarithm of arg in the given base.
func Log(base Scalar, arg Expr) (Expr, error) {
	if base.IsNaN() || !base.IsReal() || base.Sign() <= 0 || base.IsOne() {
		return nil, &DomainError{Op: "Log", Value: base.String(), Reason: "base must be a positive real other than 1"}
	}
	return DivScalar(LnOf(arg), base.Ln()), nil
}

func (l *Logarithm) Substitute(from, to Expr) Expr {
	if l.Equal(from) {
		return to
	}
	return LnOf(l.arg.Substitute(from, to))
}

func (l *Logarithm) SubstituteAll(b *Bindings) Expr {
	if r, ok := b.Lookup(l); ok {
		return r
	}
	return LnOf(l.arg.SubstituteAll(b))
}

func (l *Logarithm) String() string { return "ln(" + l.arg.String() + ")" }

func (l *Logarithm) TeX() string {
	if isBasic(l.arg) {
		return `\ln ` + l.arg.TeX()
	}
	return `\ln\left(` + l.arg.TeX() + `\right)`
}

func (l *Logarithm) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "ln", "arg": l.arg.toJSON()}
}
