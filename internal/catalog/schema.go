package catalog

import (
	"encoding/json"
)

// ParamSchema renders the spec's declared parameters as a JSON Schema
// (draft-7) object. Extra properties stay allowed: several tools accept
// free-form payloads beyond the declared set (transform components, UI
// property maps).
func (t ToolSpec) ParamSchema() []byte {
	properties := map[string]any{}
	var required []string
	for _, p := range t.Params {
		prop := map[string]any{
			"type":        string(p.Type),
			"description": p.Description,
		}
		if p.Default != nil {
			prop["default"] = p.Default
		}
		properties[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}

	schema := map[string]any{
		"$schema":    "http://json-schema.org/draft-07/schema#",
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}

	// Only static catalog data reaches the marshaler, so this cannot fail.
	out, err := json.Marshal(schema)
	if err != nil {
		panic("catalog: marshaling param schema: " + err.Error())
	}
	return out
}
