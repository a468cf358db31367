package registry

import (
	"encoding/json"
	"slices"

	"github.com/google/jsonschema-go/jsonschema"
)

// isObjectSchema reports whether schema declares "type": "object". Raw
// handlers receive unvalidated arguments, so the SDK insists on this.
func isObjectSchema(schema any) bool {
	switch s := schema.(type) {
	case nil:
		return false
	case *jsonschema.Schema:
		return s != nil && (s.Type == "object" || slices.Contains(s.Types, "object"))
	case map[string]any:
		t, _ := s["type"].(string)
		return t == "object"
	}

	raw, err := json.Marshal(schema)
	if err != nil {
		return false
	}
	var decoded jsonschema.Schema
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return false
	}
	return isObjectSchema(&decoded)
}
