package catalog

import (
	"context"
	"strings"

	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/models"
)

// Searcher answers free text catalog queries.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]models.Scholarship, int, error)
}

// LocalSearch matches every query term case-insensitively against name,
// benefit and eligibility. It serves when no search index is configured.
type LocalSearch struct {
	Store *Store
}

func (l LocalSearch) Search(_ context.Context, query string, limit int) ([]models.Scholarship, int, error) {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil, 0, errors.NewSearchQueryInvalidError("query is empty")
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	var matched []models.Scholarship
	for _, def := range l.Store.All() {
		text := strings.ToLower(def.Name + " " + def.HighlightBenefit + " " + strings.Join(def.Eligibility, " "))
		if containsAll(text, terms) {
			matched = append(matched, def)
		}
	}

	total := len(matched)
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func containsAll(text string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}
