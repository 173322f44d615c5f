// internal/models/scholarship.go
package models

// Scholarship is one offer of the scholarship catalog. Definitions are read-only
// once loaded.
type Scholarship struct {
	Slug             string   `json:"slug" yaml:"slug"`
	Name             string   `json:"name" yaml:"name"`
	HighlightBenefit string   `json:"highlight_benefit" yaml:"highlight_benefit"`
	QuotaLabel       string   `json:"quota_label,omitempty" yaml:"quota_label,omitempty"`
	Eligibility      []string `json:"eligibility" yaml:"eligibility"`
	ExternalLink     string   `json:"external_link" yaml:"external_link"`
}

type CompareItem struct {
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	AddedAt string `json:"addedAt"`
}

type CompareRow struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Benefit     string   `json:"benefit"`
	Eligibility []string `json:"eligibility"`
	Quota       string   `json:"quota"`
	Link        string   `json:"link"`
}
