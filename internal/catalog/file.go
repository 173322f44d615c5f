package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/common/validation"
	"scholarship-workers/internal/models"
)

// DocumentSchema describes a catalog file: an array of scholarship
// definitions.
var DocumentSchema = []byte(`{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["slug", "name", "highlight_benefit", "eligibility", "external_link"],
		"properties": {
			"slug": {"type": "string", "pattern": "^[a-z0-9][a-z0-9-]*$"},
			"name": {"type": "string", "minLength": 1},
			"highlight_benefit": {"type": "string"},
			"quota_label": {"type": ["string", "null"]},
			"eligibility": {"type": "array", "items": {"type": "string"}},
			"external_link": {"type": "string"}
		}
	}
}`)

var documentSchema *validation.Schema

func init() {
	s, err := validation.CompileJSON(DocumentSchema)
	if err != nil {
		panic(err)
	}
	documentSchema = s
}

// FileSource reads a JSON or YAML catalog file, picked by extension.
type FileSource struct {
	Path string
}

func (f FileSource) Name() string {
	return "file:" + f.Path
}

func (f FileSource) Load(_ context.Context) ([]models.Scholarship, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, errors.NewCatalogLoadFailedError(f.Name(), err)
	}
	return Parse(data, filepath.Ext(f.Path))
}

// Parse decodes and validates a catalog document. ext selects the format
// (".yaml"/".yml" or JSON for anything else).
func Parse(data []byte, ext string) ([]models.Scholarship, error) {
	var doc interface{}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.NewCatalogInvalidError(fmt.Sprintf("parse yaml: %v", err))
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.NewCatalogInvalidError(fmt.Sprintf("parse json: %v", err))
		}
	}

	if result := documentSchema.Validate(doc); !result.Valid {
		return nil, errors.NewCatalogInvalidError(result.Summary())
	}

	// Round-trip through JSON so YAML and JSON share the same field mapping.
	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.NewCatalogInvalidError(err.Error())
	}
	var defs []models.Scholarship
	if err := json.Unmarshal(normalized, &defs); err != nil {
		return nil, errors.NewCatalogInvalidError(err.Error())
	}
	return defs, nil
}
