package symcalc

// ============================================================
// Symbol - named variable
// ============================================================

type Symbol struct{ name string }

// Var returns the symbol called name. It panics on an empty name.
func Var(name string) Symbol {
	if name == "" {
		panic("symcalc: symbol name is empty")
	}
	return Symbol{name: name}
}

func (s Symbol) Name() string                { return s.name }
func (s Symbol) String() string              { return s.name }
func (s Symbol) TeX() string                 { return s.name }
func (s Symbol) Hash() uint64                { return hashString(tagSymbol, s.name) }
func (s Symbol) exprType() string            { return "sym" }
func (s Symbol) Differential() Differential  { return Differential{v: s} }
func (s Symbol) D() Expr                     { return Differential{v: s} }
func (s Symbol) Equal(other Expr) bool       { o, ok := other.(Symbol); return ok && o.name == s.name }
func (s Symbol) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "sym", "name": s.name}
}

func (s Symbol) Substitute(from, to Expr) Expr {
	if s.Equal(from) {
		return to
	}
	return s
}

func (s Symbol) SubstituteAll(b *Bindings) Expr {
	if r, ok := b.Lookup(s); ok {
		return r
	}
	return s
}

// ============================================================
// Differential - infinitesimal increment of one symbol
// ============================================================

// Differential is the basis leaf dv of a total differential. Raised to an
// integer power it denotes the order of the increment.
type Differential struct{ v Symbol }

func DifferentialOf(s Symbol) Differential { return Differential{v: s} }

func (d Differential) Symbol() Symbol        { return d.v }
func (d Differential) String() string        { return "d" + d.v.name }
func (d Differential) TeX() string           { return `\mathrm{d}` + d.v.name }
func (d Differential) Hash() uint64          { return hashString(tagDifferential, d.v.name) }
func (d Differential) exprType() string      { return "diff" }
func (d Differential) D() Expr               { return Zero }
func (d Differential) Equal(other Expr) bool { o, ok := other.(Differential); return ok && o.v == d.v }
func (d Differential) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "diff", "name": d.v.name}
}

func (d Differential) Substitute(from, to Expr) Expr {
	if d.Equal(from) {
		return to
	}
	return d
}

func (d Differential) SubstituteAll(b *Bindings) Expr {
	if r, ok := b.Lookup(d); ok {
		return r
	}
	return d
}
