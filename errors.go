package symcalc

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedVariant marks a structural contract violation: an operation
	// received an expression outside the closed algebra it is defined on.
	// Always delivered through a panic.
	ErrUnsupportedVariant = errors.New("symcalc: unsupported expression variant")

	// ErrDomain is the sentinel behind every *DomainError.
	ErrDomain = errors.New("symcalc: domain error")

	// ErrUnbound is returned by Compile when the expression depends on a
	// symbol the domain does not contain.
	ErrUnbound = errors.New("symcalc: symbol not in domain")

	// ErrNotEvaluable is returned by Compile for nodes with no numeric value,
	// such as Differential leaves.
	ErrNotEvaluable = errors.New("symcalc: expression has no numeric value")

	// ErrDimension signals a value slice whose length does not match a domain.
	ErrDimension = errors.New("symcalc: dimension mismatch")
)

// DomainError reports an argument outside the mathematical domain of an
// operation, e.g. a logarithm base of 1 or a fractional power of a differential.
type DomainError struct {
	Op     string
	Value  string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("symcalc: %s(%s): %s", e.Op, e.Value, e.Reason)
}

func (e *DomainError) Unwrap() error { return ErrDomain }

func domainPanic(op, value, reason string) {
	panic(&DomainError{Op: op, Value: value, Reason: reason})
}

func unsupported(op string, e Expr) error {
	return fmt.Errorf("%s: %w: %T", op, ErrUnsupportedVariant, e)
}

// Try runs build and converts a *DomainError panic into an error.
// Any other panic is propagated unchanged.
func Try(build func() Expr) (result Expr, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			de, ok := rec.(*DomainError)
			if !ok {
				panic(rec)
			}
			result, err = nil, de
		}
	}()
	return build(), nil
}
