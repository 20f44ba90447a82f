// internal/api/schema.go
package api

import (
	"sort"

	"github.com/xeipuuv/gojsonschema"
)

// generateRequestSchema is the wire contract of POST /api/generate.
const generateRequestSchema = `{
	"type": "object",
	"required": ["businessName", "websiteUrl", "industry", "location"],
	"properties": {
		"businessName":      {"type": "string", "minLength": 1},
		"websiteUrl":        {"type": "string", "minLength": 1},
		"industry":          {"type": "string", "minLength": 1},
		"location":          {"type": "string", "minLength": 1},
		"customGoal":        {"type": "string"},
		"networkingKeyword": {"type": "string"}
	}
}`

var generateSchema = gojsonschema.NewStringLoader(generateRequestSchema)

// validateGenerateRequest checks the raw request body against the
// schema and returns the fields that are missing or blank.
func validateGenerateRequest(body []byte) ([]string, error) {
	result, err := gojsonschema.Validate(generateSchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, err
	}
	if result.Valid() {
		return nil, nil
	}

	seen := make(map[string]bool)
	var fields []string
	for _, resultErr := range result.Errors() {
		field := resultErr.Field()
		if resultErr.Type() == "required" {
			if property, ok := resultErr.Details()["property"].(string); ok {
				field = property
			}
		}
		if field == "" || field == "(root)" || seen[field] {
			continue
		}
		seen[field] = true
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields, nil
}
