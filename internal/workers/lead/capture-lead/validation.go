// internal/workers/lead/capture-lead/validation.go
package capturelead

import "scholarship-workers/internal/common/validation"

// Only types are checked here; field rules live in lead.Form.Validate so the
// API and the worker report the same messages.
var inputSchema = validation.MustCompile(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"name":     {Type: "string", MaxLength: validation.Int(200)},
		"phone":    {Type: "string", MaxLength: validation.Int(32)},
		"province": {Type: "string", MaxLength: validation.Int(100)},
		"campus":   {Type: "string", MaxLength: validation.Int(100)},
		"major":    {Type: "string", MaxLength: validation.Int(100)},
		"score":    {Type: "string", MaxLength: validation.Int(32)},
	},
	Required:             []string{"name", "phone"},
	AdditionalProperties: true,
})

func validateInput(raw []byte) *validation.ValidationResult {
	return inputSchema.ValidateJSON(raw)
}
