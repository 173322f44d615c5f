// internal/workers/compare/manage-compare-list/models.go
package managecomparelist

import "scholarship-workers/internal/models"

type Input struct {
	SessionID string `json:"sessionId"`
	Action    string `json:"action"`
	Slug      string `json:"slug,omitempty"`
}

type Output struct {
	Items []models.CompareItem `json:"items"`
	Table []models.CompareRow  `json:"table"`
	Count int                  `json:"count"`
}
