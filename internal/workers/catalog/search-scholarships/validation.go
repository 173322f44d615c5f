// internal/workers/catalog/search-scholarships/validation.go
package searchscholarships

import "scholarship-workers/internal/common/validation"

var inputSchema = validation.MustCompile(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"query": {Type: "string", MinLength: validation.Int(1), MaxLength: validation.Int(200)},
		"limit": {Type: "integer", Minimum: validation.Float(0)},
	},
	Required:             []string{"query"},
	AdditionalProperties: true,
})

func validateInput(raw []byte) *validation.ValidationResult {
	return inputSchema.ValidateJSON(raw)
}
