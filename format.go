package symcalc

// isBasic reports whether e renders without parentheses as a base or argument.
func isBasic(e Expr) bool {
	switch v := e.(type) {
	case Symbol, Differential:
		return true
	case Scalar:
		return v.IsReal() && v.Sign() >= 0
	}
	return false
}

// texParam renders e for use as the base of a superscript.
func texParam(e Expr) string {
	if isBasic(e) {
		return e.TeX()
	}
	return `\left(` + e.TeX() + `\right)`
}
