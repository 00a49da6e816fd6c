package mcp

import "encoding/json"

// ToolSpec returns the JSON schema of every tool, for agent registration.
func ToolSpec() string {
	tools := []map[string]interface{}{
		ts("simplify", "Rebuild an expression in canonical form", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("diff", "Total differential; with var, the partial derivative", []string{"expr"}, map[string]string{"expr": "object", "var": "string"}),
		ts("partial", "Divide a total differential by d(var)", []string{"expr", "var"}, map[string]string{"expr": "object", "var": "string"}),
		ts("gradient", "Gradient vector over vars (string[])", []string{"expr", "vars"}, map[string]string{"expr": "object", "vars": "array"}),
		ts("hessian", "Hessian matrix over vars (string[])", []string{"expr", "vars"}, map[string]string{"expr": "object", "vars": "array"}),
		ts("substitute", "Substitute var with value", []string{"expr", "var", "value"}, map[string]string{"expr": "object", "var": "string", "value": "object"}),
		ts("evaluate", "Evaluate at values (number[]) given in the sorted order of vars", []string{"expr", "vars", "values"}, map[string]string{"expr": "object", "vars": "array", "values": "array"}),
		ts("free_symbols", "Return free symbol names", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
