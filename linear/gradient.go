package linear

import "github.com/njchilds90/symcalc"

// Gradient returns the partial derivatives held by the first total
// differential df, one per symbol of dom.
func Gradient(df symcalc.Expr, dom symcalc.Domain) Vector {
	out := make(Vector, dom.Dim())
	for i, s := range dom.Symbols() {
		out[i] = symcalc.Partial(df, s)
	}
	return out
}

// GradientOf returns the gradient of the scalar field f over dom.
func GradientOf(f symcalc.Expr, dom symcalc.Domain) Vector { return Gradient(f.D(), dom) }

// GradientWith differentiates f on eng.
func GradientWith(eng *symcalc.Engine, f symcalc.Expr, dom symcalc.Domain) Vector {
	return Gradient(eng.D(f), dom)
}
