package symcalc

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ============================================================
// JSON Serialization
// ============================================================

func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

// ToJSONValue returns the object ToJSON encodes, for embedding in larger
// documents.
func ToJSONValue(e Expr) map[string]interface{} { return e.toJSON() }

// FromJSON rebuilds an expression through the canonical constructors, so
// the result is canonical even when the input is not. Domain errors and
// unsupported combinations such as ln(dx) are returned, not panicked.
func FromJSON(data map[string]interface{}) (result Expr, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			e, ok := rec.(error)
			if !ok || !errors.Is(e, ErrDomain) && !errors.Is(e, ErrUnsupportedVariant) {
				panic(rec)
			}
			result, err = nil, e
		}
	}()
	return fromJSON(data)
}

func fromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, fmt.Errorf("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	sub := func(field string) (Expr, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		e, err := fromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", typ, field, err)
		}
		return e, nil
	}

	// optional scalar fields default to def
	subScalar := func(field string, def Scalar) (Scalar, error) {
		if _, ok := data[field]; !ok {
			return def, nil
		}
		e, err := sub(field)
		if err != nil {
			return Zero, err
		}
		k, ok := e.(Scalar)
		if !ok {
			return Zero, fmt.Errorf("%s: %q must be a scalar", typ, field)
		}
		return k, nil
	}

	subArray := func(field string) ([]Expr, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an array", typ, field)
		}
		out := make([]Expr, len(raw))
		for i, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%s: %q[%d] must be an object", typ, field, i)
			}
			e, err := fromJSON(m)
			if err != nil {
				return nil, fmt.Errorf("%s: %s[%d]: %w", typ, field, i, err)
			}
			out[i] = e
		}
		return out, nil
	}

	subString := func(field string) (string, error) {
		v, ok := data[field]
		if !ok {
			return "", fmt.Errorf("%s: missing %q", typ, field)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	// numbers may be given as JSON numbers or as strings, which also carry
	// NaN and the infinities
	subFloat := func(field string) (float64, error) {
		switch v := data[field].(type) {
		case nil:
			return 0, nil
		case float64:
			return v, nil
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return 0, fmt.Errorf("%s: %q: %w", typ, field, err)
			}
			return f, nil
		}
		return 0, fmt.Errorf("%s: %q must be a number or a numeric string", typ, field)
	}

	switch typ {
	case "scalar":
		re, err := subFloat("re")
		if err != nil {
			return nil, err
		}
		im, err := subFloat("im")
		if err != nil {
			return nil, err
		}
		return Complex(re, im), nil

	case "sym":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		return Var(name), nil

	case "diff":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		return Var(name).D(), nil

	case "sum":
		terms, err := subArray("terms")
		if err != nil {
			return nil, err
		}
		tail, err := subScalar("tail", Zero)
		if err != nil {
			return nil, err
		}
		return SumOf(append(terms, tail)...), nil

	case "product":
		factors, err := subArray("factors")
		if err != nil {
			return nil, err
		}
		coeff, err := subScalar("coeff", One)
		if err != nil {
			return nil, err
		}
		return ProductOf(append(factors, coeff)...), nil

	case "pow", "exp":
		base, err := sub("base")
		if err != nil {
			return nil, err
		}
		exp, err := sub("exp")
		if err != nil {
			return nil, err
		}
		return Pow(base, exp), nil

	case "ln":
		arg, err := sub("arg")
		if err != nil {
			return nil, err
		}
		return LnOf(arg), nil
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}
