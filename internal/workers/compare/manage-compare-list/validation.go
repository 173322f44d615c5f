// internal/workers/compare/manage-compare-list/validation.go
package managecomparelist

import (
	"scholarship-workers/internal/common/validation"
	"scholarship-workers/internal/compare"
)

var inputSchema = validation.MustCompile(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"sessionId": {Type: "string", Pattern: `^[A-Za-z0-9_-]{1,64}$`},
		"action": {Type: "string", Enum: []string{
			string(compare.ActionAdd),
			string(compare.ActionRemove),
			string(compare.ActionClear),
			string(compare.ActionList),
		}},
		"slug": {Type: "string", MaxLength: validation.Int(64)},
	},
	Required:             []string{"sessionId", "action"},
	AdditionalProperties: true,
})

func validateInput(raw []byte) *validation.ValidationResult {
	return inputSchema.ValidateJSON(raw)
}
