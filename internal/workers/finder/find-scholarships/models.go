// internal/workers/finder/find-scholarships/models.go
package findscholarships

import "scholarship-workers/internal/finder"

// Input carries either the visitor fields or a share query. A non-empty
// shareQuery wins over the fields.
type Input struct {
	finder.Input
	ShareQuery string `json:"shareQuery,omitempty"`
}

type Output struct {
	Outcome    finder.Outcome   `json:"outcome"`
	Matches    []finder.Match   `json:"matches"`
	MatchCount int              `json:"matchCount"`
	Guidance   *finder.Guidance `json:"guidance,omitempty"`
	ShareQuery string           `json:"shareQuery,omitempty"`
	ShareURL   string           `json:"shareUrl,omitempty"`
}
