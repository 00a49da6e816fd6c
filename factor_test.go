package symcalc_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symcalc"
)

// ============================================================
// PowerOf tests
// ============================================================

func TestPowerOf_TrivialExponents(t *testing.T) {
	s := symcalc.SumOf(x, y)
	assert.True(t, symcalc.PowerOf(s, symcalc.Zero).Equal(symcalc.One))
	assert.True(t, symcalc.PowerOf(s, symcalc.One).Equal(s))
}

func TestPowerOf_Scalar(t *testing.T) {
	assert.True(t, symcalc.PowerOf(n(2), n(10)).Equal(n(1024)))
	assert.True(t, symcalc.PowerOf(symcalc.Zero, n(3)).Equal(symcalc.Zero))
}

func TestPowerOf_NestedMultiplies(t *testing.T) {
	got := symcalc.PowerOf(symcalc.PowerOf(x, n(2)), n(3))
	assert.True(t, got.Equal(symcalc.PowerOf(x, n(6))))

	p, ok := got.(*symcalc.Power)
	require.True(t, ok)
	assert.True(t, p.Base().Equal(x))
	assert.True(t, p.Exponent().Equal(n(6)))
}

func TestPowerOf_Exponential(t *testing.T) {
	got := symcalc.PowerOf(symcalc.ExponentialOf(n(2), x), n(3))
	want := symcalc.ExponentialOf(n(2), symcalc.ProductOf(n(3), x))
	assert.True(t, got.Equal(want), "got %s", got)
}

func TestPowerOf_ProductDistributes(t *testing.T) {
	got := symcalc.PowerOf(symcalc.ProductOf(n(3), x, symcalc.Square(y)), n(2))
	want := symcalc.ProductOf(n(9), symcalc.Square(x), symcalc.PowerOf(y, n(4)))
	assert.True(t, got.Equal(want), "got %s", got)
}

func TestPowerOf_SumStays(t *testing.T) {
	s := symcalc.SumOf(x, n(1))
	p, ok := symcalc.PowerOf(s, n(2)).(*symcalc.Power)
	require.True(t, ok)
	assert.True(t, p.Base().Equal(s))
}

func TestPowerOf_DifferentialFractional_DomainError(t *testing.T) {
	_, err := symcalc.Try(func() symcalc.Expr { return symcalc.PowerOf(x.D(), n(0.5)) })
	require.Error(t, err)
	assert.True(t, errors.Is(err, symcalc.ErrDomain))

	var de *symcalc.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "PowerOf", de.Op)

	got, err := symcalc.Try(func() symcalc.Expr { return symcalc.PowerOf(x.D(), n(2)) })
	require.NoError(t, err)
	assert.Equal(t, "dx^2", got.String())
}

func TestTry_PropagatesOtherPanics(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = symcalc.Try(func() symcalc.Expr { panic("boom") })
	})
}

// ============================================================
// ExponentialOf tests
// ============================================================

func TestExponentialOf_TrivialBases(t *testing.T) {
	assert.True(t, symcalc.ExponentialOf(symcalc.Zero, x).Equal(symcalc.Zero))
	assert.True(t, symcalc.ExponentialOf(symcalc.One, x).Equal(symcalc.One))
	assert.True(t, symcalc.ExponentialOf(n(2), n(3)).Equal(n(8)))
}

func TestExponentialOf_Logarithm(t *testing.T) {
	assert.True(t, symcalc.Exp(symcalc.Ln(x)).Equal(x))

	got := symcalc.ExponentialOf(n(4), symcalc.Ln(x))
	want := symcalc.PowerOf(x, n(4).Ln())
	assert.True(t, got.Equal(want))
}

func TestExponentialOf_SumSplits(t *testing.T) {
	got := symcalc.Exp(symcalc.SumOf(x, y, n(2)))
	want := symcalc.ProductOf(symcalc.E.Pow(n(2)), symcalc.Exp(x), symcalc.Exp(y))
	assert.True(t, got.Equal(want), "got %s", got)
}

func TestExponentialOf_ProductCoefficientMovesToBase(t *testing.T) {
	got := symcalc.ExponentialOf(n(2), symcalc.ProductOf(n(3), x, y))
	e, ok := got.(*symcalc.Exponential)
	require.True(t, ok)
	assert.True(t, e.Base().Equal(n(8)))
	assert.True(t, e.Exponent().Equal(symcalc.ProductOf(x, y)))

	single := symcalc.ExponentialOf(n(2), symcalc.ProductOf(n(3), x))
	assert.True(t, single.Equal(symcalc.ExponentialOf(n(8), x)))
}

func TestExponentialOf_NegativeBase_DomainError(t *testing.T) {
	_, err := symcalc.Try(func() symcalc.Expr { return symcalc.ExponentialOf(n(-2), x) })
	assert.True(t, errors.Is(err, symcalc.ErrDomain))

	// a scalar exponent folds numerically
	assert.True(t, symcalc.ExponentialOf(n(-2), n(2)).Equal(n(4)))
}

// ============================================================
// LnOf tests
// ============================================================

func TestLnOf_Scalar(t *testing.T) {
	assert.True(t, symcalc.LnOf(symcalc.One).Equal(symcalc.Zero))
	assert.True(t, symcalc.LnOf(symcalc.E).Equal(symcalc.One))
}

func TestLnOf_ProductSplits(t *testing.T) {
	got := symcalc.LnOf(symcalc.ProductOf(x, y))
	want := symcalc.SumOf(symcalc.LnOf(x), symcalc.LnOf(y))
	assert.True(t, got.Equal(want), "got %s", got)
}

func TestLnOf_FoldsPowersAndExponentials(t *testing.T) {
	assert.True(t, symcalc.LnOf(symcalc.PowerOf(x, n(3))).Equal(symcalc.ProductOf(n(3), symcalc.LnOf(x))))
	assert.True(t, symcalc.LnOf(symcalc.Exp(x)).Equal(x))

	got := symcalc.LnOf(symcalc.ProductOf(symcalc.Exp(y), symcalc.Square(x), n(2)))
	want := symcalc.SumOf(y, symcalc.ProductOf(n(2), symcalc.LnOf(x)), n(2).Ln())
	assert.True(t, got.Equal(want), "got %s", got)
}

func TestLnOf_NegativeCoefficientKeepsSignInside(t *testing.T) {
	got := symcalc.LnOf(symcalc.ProductOf(n(-3), x))
	want := symcalc.SumOf(n(3).Ln(), symcalc.LnOf(symcalc.Neg(x)))
	assert.True(t, got.Equal(want), "got %s", got)
}

func TestLnOf_Differential_Unsupported(t *testing.T) {
	defer func() {
		rec := recover()
		require.NotNil(t, rec)
		err, ok := rec.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, symcalc.ErrUnsupportedVariant))
	}()
	symcalc.LnOf(x.D())
}

func TestLog_Base(t *testing.T) {
	got, err := symcalc.Log(n(2), n(8))
	require.NoError(t, err)
	k, ok := got.(symcalc.Scalar)
	require.True(t, ok)
	assert.InDelta(t, 3.0, k.Re(), 1e-12)

	for _, bad := range []symcalc.Scalar{symcalc.One, symcalc.Zero, n(-2), symcalc.NaN, symcalc.Complex(1, 1)} {
		_, err := symcalc.Log(bad, x)
		assert.True(t, errors.Is(err, symcalc.ErrDomain), "base %s", bad)
	}
}
