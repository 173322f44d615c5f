// internal/workers/catalog/search-scholarships/models.go
package searchscholarships

type Input struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type Output struct {
	Results []Result `json:"results"`
	Total   int      `json:"total"`
}

type Result struct {
	Slug             string `json:"slug"`
	Name             string `json:"name"`
	HighlightBenefit string `json:"highlightBenefit"`
	QuotaLabel       string `json:"quotaLabel,omitempty"`
	ExternalLink     string `json:"externalLink,omitempty"`
}
