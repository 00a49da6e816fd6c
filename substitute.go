package symcalc

import (
	"slices"
	"strings"
)

// ============================================================
// Bindings - structural replacement table
// ============================================================

// Bindings maps expressions to their replacements for SubstituteAll. Keys
// are matched structurally, so binding x+1 replaces every occurrence of the
// canonical x+1, not only the node it was built from.
type Bindings struct {
	m *exprMap[Expr]
}

func NewBindings() *Bindings {
	return &Bindings{m: newExprMap[Expr](8)}
}

// Bind adds from -> to and returns b for chaining. A repeated key replaces
// the earlier binding.
func (b *Bindings) Bind(from, to Expr) *Bindings {
	b.m.put(from, to)
	return b
}

// Lookup returns the replacement bound to e. A nil *Bindings binds nothing.
func (b *Bindings) Lookup(e Expr) (Expr, bool) {
	if b == nil {
		return nil, false
	}
	return b.m.get(e)
}

func (b *Bindings) Len() int {
	if b == nil {
		return 0
	}
	return b.m.len()
}

// Each calls fn for every binding in unspecified order.
func (b *Bindings) Each(fn func(from, to Expr)) {
	if b == nil {
		return
	}
	b.m.each(fn)
}

func (b *Bindings) String() string {
	parts := make([]string, 0, b.Len())
	b.Each(func(from, to Expr) {
		parts = append(parts, from.String()+" = "+to.String())
	})
	slices.Sort(parts)
	return "{" + strings.Join(parts, ", ") + "}"
}

// Substitute replaces every occurrence of from in e by to.
func Substitute(e, from, to Expr) Expr { return e.Substitute(from, to) }

// SubstituteAll applies every binding of b to e in one pass.
func SubstituteAll(e Expr, b *Bindings) Expr { return e.SubstituteAll(b) }
