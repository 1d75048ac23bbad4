package llm

// BuildContactJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a generic map.
// We embed it in the scan prompt as an output constraint and also use it locally to
// sanity-check what came back.
func BuildContactJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name":        map[string]any{"type": "string", "minLength": 1},
			"phones":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"email":       map[string]any{"type": "string"},
			"address":     map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
		},
		"required": []string{"name"},
	}
}
