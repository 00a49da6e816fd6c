package linear_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symcalc"
	"github.com/njchilds90/symcalc/linear"
)

var (
	x  = symcalc.Var("x")
	y  = symcalc.Var("y")
	xy = symcalc.Vars("x", "y")
)

func n(f float64) symcalc.Scalar { return symcalc.Real(f) }

// ============================================================
// Vector and Gradient tests
// ============================================================

func TestGradientOf_Paraboloid(t *testing.T) {
	f := symcalc.SumOf(symcalc.Square(x), symcalc.Square(y))
	g := linear.GradientOf(f, xy)
	require.Equal(t, 2, g.Dim())
	assert.True(t, g.Equal(linear.Vector{symcalc.ProductOf(n(2), x), symcalc.ProductOf(n(2), y)}), "got %s", g)

	gf, err := g.Compile(symcalc.Sequential(), xy)
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 8}, gf([]float64{3, 4}))

	length, err := symcalc.Compile(g.Length(), xy)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, length([]float64{3, 4}), 1e-12)
}

func TestGradientWith_MatchesSequential(t *testing.T) {
	f := symcalc.ProductOf(symcalc.Square(x), symcalc.LnOf(y), symcalc.Exp(symcalc.ProductOf(x, y)))
	eng := symcalc.NewEngine(symcalc.WithParallelism(0), symcalc.WithWorkers(2))
	assert.True(t, linear.GradientWith(eng, f, xy).Equal(linear.GradientOf(f, xy)))
}

func TestGradient_MissingSymbolIsZero(t *testing.T) {
	g := linear.GradientOf(symcalc.Square(x), xy)
	assert.True(t, g[1].Equal(symcalc.Zero))
}

func TestVector_Substitute(t *testing.T) {
	v := linear.Vector{x, symcalc.SumOf(x, y)}
	got := v.Substitute(x, n(1))
	assert.True(t, got.Equal(linear.Vector{n(1), symcalc.SumOf(y, n(1))}))
	assert.Equal(t, "[1, y + 1]", got.String())

	b := symcalc.NewBindings().Bind(y, n(2))
	assert.True(t, got.SubstituteAll(b).Equal(linear.Vector{n(1), n(3)}))
	assert.False(t, v.Equal(linear.Vector{x}))
}

func TestVector_CompileReportsComponents(t *testing.T) {
	v := linear.Vector{x, symcalc.Var("w"), x.D()}
	_, err := v.Compile(symcalc.Sequential(), xy)
	require.Error(t, err)
	assert.True(t, errors.Is(err, symcalc.ErrUnbound))
	assert.True(t, errors.Is(err, symcalc.ErrNotEvaluable))
}

// ============================================================
// Hessian tests
// ============================================================

func TestHessianOf_Paraboloid(t *testing.T) {
	h := linear.HessianOf(symcalc.SumOf(symcalc.Square(x), symcalc.Square(y)), xy)
	require.Equal(t, 2, h.Dim())
	assert.True(t, h.At(0, 0).Equal(n(2)), "H_xx = %s", h.At(0, 0))
	assert.True(t, h.At(1, 1).Equal(n(2)), "H_yy = %s", h.At(1, 1))
	assert.True(t, h.At(0, 1).Equal(symcalc.Zero), "H_xy = %s", h.At(0, 1))
	assert.Equal(t, "[2, 0]\n[0, 2]", h.String())
}

func TestHessianOf_Bilinear(t *testing.T) {
	h := linear.HessianOf(symcalc.ProductOf(x, y), xy)
	mf, err := h.Compile(symcalc.Sequential(), xy)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 1}, {1, 0}}, mf([]float64{5, 7}))
}

func TestHessianOf_MatchesRepeatedPartials(t *testing.T) {
	fs := []symcalc.Expr{
		symcalc.ProductOf(symcalc.Square(x), y),
		symcalc.SumOf(symcalc.PowerOf(x, n(3)), symcalc.ProductOf(n(3), x, symcalc.Square(y)), y),
		symcalc.ProductOf(x, symcalc.LnOf(y)),
	}
	for _, f := range fs {
		h := linear.HessianOf(f, xy)
		for r, vr := range xy.Symbols() {
			for c, vc := range xy.Symbols() {
				want := symcalc.Derivative(symcalc.Derivative(f, vr), vc)
				assert.True(t, h.At(r, c).Equal(want), "f = %s: H[%d][%d] = %s, want %s", f, r, c, h.At(r, c), want)
			}
		}
	}
}

func TestHessianWith_Parallel(t *testing.T) {
	dom := symcalc.Vars("x", "y", "z")
	z := symcalc.Var("z")
	f := symcalc.SumOf(symcalc.ProductOf(x, y, z), symcalc.ProductOf(symcalc.Square(x), z), symcalc.Exp(y))
	eng := symcalc.NewEngine(symcalc.WithParallelism(1), symcalc.WithWorkers(3))

	seq := linear.HessianOf(f, dom)
	par := linear.HessianWith(eng, f, dom)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			assert.True(t, par.At(r, c).Equal(seq.At(r, c)), "[%d][%d]", r, c)
			assert.True(t, par.At(c, r).Equal(par.At(r, c)))
		}
	}

	sf, err := seq.Compile(symcalc.Sequential(), dom)
	require.NoError(t, err)
	pf, err := par.Compile(eng, dom)
	require.NoError(t, err)
	p := []float64{0.5, -1, 2}
	if diff := cmp.Diff(sf(p), pf(p), cmpopts.EquateApprox(1e-12, 0)); diff != "" {
		t.Errorf("hessian mismatch (-seq +par):\n%s", diff)
	}
}

func TestHessian_SubstituteAll(t *testing.T) {
	h := linear.HessianOf(symcalc.ProductOf(symcalc.Square(x), y), xy)
	at := h.SubstituteAll(symcalc.NewBindings().Bind(x, n(3)).Bind(y, n(1)))
	assert.True(t, at.At(0, 0).Equal(n(2)))
	assert.True(t, at.At(0, 1).Equal(n(6)))
	assert.True(t, at.At(1, 1).Equal(symcalc.Zero))
}

// ============================================================
// Field tests
// ============================================================

func TestOrder(t *testing.T) {
	f, err := linear.Order(xy, []float64{3, 4})
	require.NoError(t, err)
	assert.Equal(t, "{x = 3, y = 4}", f.String())
	assert.True(t, f.Length().Equal(n(5)))

	_, err = linear.Order(xy, []float64{1})
	assert.True(t, errors.Is(err, symcalc.ErrDimension))
}

func TestField_Arithmetic(t *testing.T) {
	a := linear.NewField(map[symcalc.Symbol]symcalc.Expr{x: n(1), y: n(2)})
	b := linear.NewField(map[symcalc.Symbol]symcalc.Expr{y: n(2), symcalc.Var("z"): x})

	sum := a.Add(b)
	assert.True(t, sum.Get(y).Equal(n(4)))
	assert.True(t, sum.Get(symcalc.Var("z")).Equal(x))

	diff := a.Sub(b)
	assert.Equal(t, 2, diff.Domain().Dim(), "y cancels: %s", diff)
	assert.True(t, diff.Get(y).Equal(symcalc.Zero))

	assert.Equal(t, 0, a.Sub(a).Domain().Dim())
	assert.True(t, a.Scale(n(3)).Get(y).Equal(n(6)))
}

func TestField_GradientStep(t *testing.T) {
	// one descent step on x^2 + y^2 from (3, 4) with rate 0.25 halves the point
	f := symcalc.SumOf(symcalc.Square(x), symcalc.Square(y))
	point, err := linear.Order(xy, []float64{3, 4})
	require.NoError(t, err)

	grad := linear.GradientOf(f, xy).SubstituteAll(point.Bindings())
	step := linear.NewField(map[symcalc.Symbol]symcalc.Expr{x: grad[0], y: grad[1]}).Scale(n(0.25))
	next, err := point.Sub(step).Values(xy)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2}, next)
}

func TestField_OrdinaryAndValues(t *testing.T) {
	o := linear.OrdinaryField(xy)
	assert.True(t, o.Vector(xy).Equal(linear.Vector{x, y}))

	_, err := o.Values(xy)
	assert.True(t, errors.Is(err, symcalc.ErrNotEvaluable))

	at := o.SubstituteAll(symcalc.NewBindings().Bind(x, n(1)).Bind(y, n(2)))
	vals, err := at.Values(xy)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, vals)
	assert.True(t, o.Substitute(x, y).Get(x).Equal(y))
}
