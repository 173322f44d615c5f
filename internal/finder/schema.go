package finder

import "scholarship-workers/internal/common/validation"

// InputProperties describes the JSON form of Input. Enumerations are loose
// strings because unknown values fall back to defaults.
func InputProperties() map[string]validation.Property {
	return map[string]validation.Property{
		"scoreTn": {
			Type:        "number",
			Nullable:    true,
			Description: "graduation exam average, 0-10",
			Minimum:     validation.Float(0),
			Maximum:     validation.Float(10),
		},
		"scoreDgnl": {
			Type:        "number",
			Nullable:    true,
			Description: "aptitude assessment percentile, 0-100",
			Minimum:     validation.Float(0),
			Maximum:     validation.Float(100),
		},
		"hsgqg":           {Type: "string", MaxLength: validation.Int(32)},
		"gender":          {Type: "string", MaxLength: validation.Int(16)},
		"major":           {Type: "string", MaxLength: validation.Int(32)},
		"top10SchoolRank": {Type: "boolean"},
		"priorityRegion1": {Type: "boolean"},
	}
}
