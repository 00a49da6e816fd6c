// Package mcp exposes symcalc as JSON tool calls for agent frameworks.
// Expressions travel in the encoding of symcalc.ToJSON.
package mcp

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/njchilds90/symcalc"
	"github.com/njchilds90/symcalc/linear"
)

// ============================================================
// Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Server answers tool calls on one engine.
type Server struct {
	eng    *symcalc.Engine
	logger hclog.Logger
}

// NewServer returns a server that differentiates and compiles on eng and
// logs through the engine's logger.
func NewServer(eng *symcalc.Engine) *Server {
	return &Server{eng: eng, logger: eng.Logger().Named("mcp")}
}

// HandleToolCall runs one tool. Failures, including domain errors raised
// while building expressions, are reported in ToolResponse.Error.
func (s *Server) HandleToolCall(req ToolRequest) (resp ToolResponse) {
	s.logger.Debug("tool call", "tool", req.Tool)
	defer func() {
		if rec := recover(); rec != nil {
			err, ok := rec.(error)
			if !ok || !errors.Is(err, symcalc.ErrDomain) && !errors.Is(err, symcalc.ErrUnsupportedVariant) {
				panic(rec)
			}
			s.logger.Warn("tool failed", "tool", req.Tool, "error", err)
			resp = ToolResponse{Error: err.Error()}
		}
	}()

	getExpr := func(key string) (symcalc.Expr, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		val, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid type for param %s", key)
		}
		return symcalc.FromJSON(val)
	}
	getVar := func(key string) (symcalc.Symbol, error) {
		v, ok := req.Params[key]
		if !ok {
			return symcalc.Symbol{}, fmt.Errorf("missing param: %s", key)
		}
		name, ok := v.(string)
		if !ok || name == "" {
			return symcalc.Symbol{}, fmt.Errorf("param %s must be a non-empty string", key)
		}
		return symcalc.Var(name), nil
	}
	getDomain := func(key string) (symcalc.Domain, error) {
		v, ok := req.Params[key]
		if !ok {
			return symcalc.Domain{}, fmt.Errorf("missing param: %s", key)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return symcalc.Domain{}, fmt.Errorf("param %s must be array", key)
		}
		names := make([]string, len(raw))
		for i, r := range raw {
			name, ok := r.(string)
			if !ok || name == "" {
				return symcalc.Domain{}, fmt.Errorf("param %s[%d] must be a non-empty string", key, i)
			}
			names[i] = name
		}
		return symcalc.Vars(names...), nil
	}
	getNumbers := func(key string) ([]float64, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("param %s must be array", key)
		}
		out := make([]float64, len(raw))
		for i, r := range raw {
			f, ok := r.(float64)
			if !ok {
				return nil, fmt.Errorf("param %s[%d] must be a number", key, i)
			}
			out[i] = f
		}
		return out, nil
	}
	respond := func(e symcalc.Expr) ToolResponse {
		return ToolResponse{Result: symcalc.ToJSONValue(e), LaTeX: e.TeX(), String: e.String()}
	}
	respondVector := func(v linear.Vector) ToolResponse {
		items := make([]interface{}, len(v))
		tex := make([]string, len(v))
		for i, e := range v {
			items[i] = symcalc.ToJSONValue(e)
			tex[i] = e.TeX()
		}
		return ToolResponse{
			Result: items,
			LaTeX:  `\begin{bmatrix}` + strings.Join(tex, `\\`) + `\end{bmatrix}`,
			String: v.String(),
		}
	}
	respondHessian := func(h *linear.Hessian) ToolResponse {
		n := h.Dim()
		rows := make([]interface{}, n)
		texRows := make([]string, n)
		for r := 0; r < n; r++ {
			row := make([]interface{}, n)
			tex := make([]string, n)
			for c := 0; c < n; c++ {
				row[c] = symcalc.ToJSONValue(h.At(r, c))
				tex[c] = h.At(r, c).TeX()
			}
			rows[r] = row
			texRows[r] = strings.Join(tex, " & ")
		}
		return ToolResponse{
			Result: rows,
			LaTeX:  `\begin{bmatrix}` + strings.Join(texRows, `\\`) + `\end{bmatrix}`,
			String: h.String(),
		}
	}

	switch req.Tool {
	case "simplify":
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(e)

	case "diff":
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		if _, ok := req.Params["var"]; !ok {
			return respond(s.eng.D(e))
		}
		v, err := getVar("var")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(s.eng.Derivative(e, v))

	case "partial":
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		v, err := getVar("var")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(symcalc.Partial(e, v))

	case "gradient":
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		dom, err := getDomain("vars")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respondVector(linear.GradientWith(s.eng, e, dom))

	case "hessian":
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		dom, err := getDomain("vars")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respondHessian(linear.HessianWith(s.eng, e, dom))

	case "substitute":
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		v, err := getVar("var")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		val, err := getExpr("value")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(e.Substitute(v, val))

	case "evaluate":
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		dom, err := getDomain("vars")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		values, err := getNumbers("values")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		if len(values) != dom.Dim() {
			return ToolResponse{Error: fmt.Sprintf("%v: %d vars, %d values", symcalc.ErrDimension, dom.Dim(), len(values))}
		}
		f, err := s.eng.Compile(e, dom)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		y := f(values)
		return ToolResponse{Result: number(y), String: fmt.Sprint(y)}

	case "free_symbols":
		e, err := getExpr("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		syms := symcalc.FreeSymbols(e).Symbols()
		names := make([]string, len(syms))
		for i, sym := range syms {
			names[i] = sym.Name()
		}
		return ToolResponse{Result: names, String: strings.Join(names, ", ")}

	case "tool_spec":
		return ToolResponse{Result: ToolSpec(), String: "tool specification"}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// number keeps NaN and the infinities encodable.
func number(f float64) interface{} {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return f
}
