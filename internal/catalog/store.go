package catalog

import (
	"fmt"
	"strings"

	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/models"
)

// Store is an immutable, ordered catalog snapshot. It is safe for concurrent
// reads.
type Store struct {
	items  []models.Scholarship
	bySlug map[string]int
}

// NewStore validates defs and keeps their order. Slugs must be non-empty and
// unique, names non-empty.
func NewStore(defs []models.Scholarship) (*Store, error) {
	s := &Store{
		items:  make([]models.Scholarship, 0, len(defs)),
		bySlug: make(map[string]int, len(defs)),
	}

	for i, def := range defs {
		def.Slug = strings.TrimSpace(def.Slug)
		if def.Slug == "" {
			return nil, errors.NewCatalogInvalidError(fmt.Sprintf("entry %d has no slug", i))
		}
		if strings.TrimSpace(def.Name) == "" {
			return nil, errors.NewCatalogInvalidError(fmt.Sprintf("scholarship %q has no name", def.Slug))
		}
		if _, dup := s.bySlug[def.Slug]; dup {
			return nil, errors.NewCatalogInvalidError(fmt.Sprintf("duplicate slug %q", def.Slug))
		}
		def.Eligibility = append([]string(nil), def.Eligibility...)
		s.bySlug[def.Slug] = len(s.items)
		s.items = append(s.items, def)
	}

	return s, nil
}

func (s *Store) Lookup(slug string) (models.Scholarship, bool) {
	i, ok := s.bySlug[slug]
	if !ok {
		return models.Scholarship{}, false
	}
	return clone(s.items[i]), true
}

// All returns a copy of the catalog in its original order.
func (s *Store) All() []models.Scholarship {
	out := make([]models.Scholarship, len(s.items))
	for i, item := range s.items {
		out[i] = clone(item)
	}
	return out
}

func (s *Store) Len() int {
	return len(s.items)
}

func clone(def models.Scholarship) models.Scholarship {
	def.Eligibility = append([]string(nil), def.Eligibility...)
	return def
}
