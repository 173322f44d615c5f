package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// JSONSchema is the subset of JSON Schema draft 7 used to describe job
// variables and request bodies.
type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties"`
}

type Property struct {
	Type        string
	Nullable    bool
	Description string
	Minimum     *float64
	Maximum     *float64
	Enum        []string
	Pattern     string
	MinLength   *int
	MaxLength   *int
	Items       *Property
	Properties  map[string]Property
	Required    []string
}

// MarshalJSON renders Nullable as the ["<type>", "null"] type union.
func (p Property) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{}
	switch {
	case p.Type == "":
	case p.Nullable:
		out["type"] = []string{p.Type, "null"}
	default:
		out["type"] = p.Type
	}
	if p.Description != "" {
		out["description"] = p.Description
	}
	if p.Minimum != nil {
		out["minimum"] = *p.Minimum
	}
	if p.Maximum != nil {
		out["maximum"] = *p.Maximum
	}
	if len(p.Enum) > 0 {
		enum := make([]interface{}, 0, len(p.Enum)+1)
		for _, e := range p.Enum {
			enum = append(enum, e)
		}
		if p.Nullable {
			enum = append(enum, nil)
		}
		out["enum"] = enum
	}
	if p.Pattern != "" {
		out["pattern"] = p.Pattern
	}
	if p.MinLength != nil {
		out["minLength"] = *p.MinLength
	}
	if p.MaxLength != nil {
		out["maxLength"] = *p.MaxLength
	}
	if p.Items != nil {
		out["items"] = p.Items
	}
	if len(p.Properties) > 0 {
		out["properties"] = p.Properties
	}
	if len(p.Required) > 0 {
		out["required"] = p.Required
	}
	return json.Marshal(out)
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Summary joins the errors as "field: message; ...".
func (r *ValidationResult) Summary() string {
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

// Schema is a compiled JSON schema, safe for concurrent use.
type Schema struct {
	schema *gojsonschema.Schema
}

// Compile builds a gojsonschema schema from s
func Compile(s JSONSchema) (*Schema, error) {
	return compile(gojsonschema.NewGoLoader(s))
}

// CompileJSON builds a schema from a raw JSON document
func CompileJSON(raw []byte) (*Schema, error) {
	return compile(gojsonschema.NewBytesLoader(raw))
}

// MustCompile is Compile that panics on an invalid schema
func MustCompile(s JSONSchema) *Schema {
	compiled, err := Compile(s)
	if err != nil {
		panic(err)
	}
	return compiled
}

func compile(loader gojsonschema.JSONLoader) (*Schema, error) {
	schema, err := gojsonschema.NewSchema(loader)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Schema{schema: schema}, nil
}

// Validate checks a decoded document (maps, slices, structs).
func (s *Schema) Validate(document interface{}) *ValidationResult {
	return s.validate(gojsonschema.NewGoLoader(document))
}

// ValidateJSON checks a raw JSON document, e.g. job variables.
func (s *Schema) ValidateJSON(raw []byte) *ValidationResult {
	return s.validate(gojsonschema.NewBytesLoader(raw))
}

func (s *Schema) validate(loader gojsonschema.JSONLoader) *ValidationResult {
	result, err := s.schema.Validate(loader)
	if err != nil {
		return &ValidationResult{Errors: []ValidationError{{
			Field:   "(root)",
			Message: err.Error(),
			Code:    "invalid_document",
		}}}
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if desc.Type() == "required" {
			if prop, ok := desc.Details()["property"].(string); ok {
				field = prop
			}
		}
		out.Errors = append(out.Errors, ValidationError{
			Field:   field,
			Message: desc.Description(),
			Code:    desc.Type(),
		})
	}
	return out
}

func Float(v float64) *float64 {
	return &v
}

func Int(v int) *int {
	return &v
}
