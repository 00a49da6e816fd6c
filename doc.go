// Package symcalc provides a canonicalizing symbolic algebra kernel for Go.
//
// Design goals:
//   - Every constructor returns a canonical expression: two construction paths
//     for the same mathematical object yield structurally equal, hash-equal nodes
//   - Expressions are immutable and freely shared across goroutines
//   - Total differentials with explicit Differential leaves (dx, dy, ...)
//   - Structural substitution that re-canonicalizes on the way back up
//   - Compilation into reusable numeric closures over a named Domain, with a
//     threshold-based parallel evaluation path for large sums and products
//
// Expressions are built only through the constructors: SumOf, ProductOf,
// PowerOf, ExponentialOf, LnOf, and the helpers in calc.go. The closed set of
// node types is Scalar, Symbol, Differential, *Sum, *Product, *Power,
// *Exponential and *Logarithm; any other Expr implementation is rejected with
// a panic wrapping ErrUnsupportedVariant.
package symcalc
