// internal/workers/finder/simulate-what-if/validation.go
package simulatewhatif

import (
	"scholarship-workers/internal/common/validation"
	"scholarship-workers/internal/finder"
)

var inputSchema = validation.MustCompile(buildSchema())

func buildSchema() validation.JSONSchema {
	props := finder.InputProperties()
	props["shareQuery"] = validation.Property{Type: "string", MaxLength: validation.Int(512)}
	props["bonusTn"] = validation.Property{Type: "number", Minimum: validation.Float(0)}
	props["bonusDgnl"] = validation.Property{Type: "number", Minimum: validation.Float(0)}
	return validation.JSONSchema{
		Type:                 "object",
		Properties:           props,
		AdditionalProperties: true,
	}
}

func validateInput(raw []byte) *validation.ValidationResult {
	return inputSchema.ValidateJSON(raw)
}
