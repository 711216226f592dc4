package server

// downloadJSONSchema constrains the /api/download payload: a record list that
// round-trips what /api/extract produced, plus the output format. Validated
// before rendering so a malformed client payload fails fast with a 400.
func downloadJSONSchema() map[string]any {
	record := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"reference": map[string]any{"type": "string"},
			"tracking":  map[string]any{"type": "string", "minLength": 18, "maxLength": 18},
			"status":    map[string]any{"type": "string", "enum": []string{"Active", "Void"}},
		},
		"required": []string{"tracking", "status"},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"records": map[string]any{"type": "array", "items": record},
			"format":  map[string]any{"type": "string", "enum": []string{"csv", "xlsx"}},
		},
		"required": []string{"records"},
	}
}
