package compare

import (
	"context"
	"regexp"
	"time"

	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/models"
)

const (
	DefaultMaxItems = 3
	QuotaFallback   = "N/A"
)

type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
	ActionClear  Action = "clear"
	ActionList   Action = "list"
)

var sessionPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Catalog resolves scholarships by slug.
type Catalog interface {
	Lookup(slug string) (models.Scholarship, bool)
}

type Service struct {
	store    Store
	catalog  Catalog
	maxItems int
	now      func() time.Time
}

func NewService(store Store, catalog Catalog) *Service {
	return &Service{
		store:    store,
		catalog:  catalog,
		maxItems: DefaultMaxItems,
		now:      time.Now,
	}
}

// Add puts slug at the front of the session's list.
func (s *Service) Add(ctx context.Context, session, slug string) ([]models.CompareItem, error) {
	if err := validSession(session); err != nil {
		return nil, err
	}
	def, ok := s.catalog.Lookup(slug)
	if !ok {
		return nil, errors.NewScholarshipNotFoundError(slug)
	}

	items, err := s.load(ctx, session)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.Slug == slug {
			return nil, errors.NewCompareDuplicateError(slug)
		}
	}
	if len(items) >= s.maxItems {
		return nil, errors.NewCompareListFullError(s.maxItems)
	}

	item := models.CompareItem{
		Slug:    def.Slug,
		Name:    def.Name,
		AddedAt: s.now().UTC().Format(time.RFC3339),
	}
	items = append([]models.CompareItem{item}, items...)

	if err := s.save(ctx, session, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Remove drops slug from the list. Removing an absent slug is not an error.
func (s *Service) Remove(ctx context.Context, session, slug string) ([]models.CompareItem, error) {
	if err := validSession(session); err != nil {
		return nil, err
	}
	items, err := s.load(ctx, session)
	if err != nil {
		return nil, err
	}

	kept := make([]models.CompareItem, 0, len(items))
	for _, item := range items {
		if item.Slug != slug {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return items, nil
	}

	if err := s.save(ctx, session, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (s *Service) Clear(ctx context.Context, session string) error {
	if err := validSession(session); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, session); err != nil {
		return errors.NewCompareStoreFailedError(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, session string) ([]models.CompareItem, error) {
	if err := validSession(session); err != nil {
		return nil, err
	}
	return s.load(ctx, session)
}

// Table joins the listed items with the catalog. Items whose slug has left
// the catalog are skipped.
func (s *Service) Table(items []models.CompareItem) []models.CompareRow {
	rows := make([]models.CompareRow, 0, len(items))
	for _, item := range items {
		def, ok := s.catalog.Lookup(item.Slug)
		if !ok {
			continue
		}
		quota := def.QuotaLabel
		if quota == "" {
			quota = QuotaFallback
		}
		rows = append(rows, models.CompareRow{
			Slug:        def.Slug,
			Name:        def.Name,
			Benefit:     def.HighlightBenefit,
			Eligibility: def.Eligibility,
			Quota:       quota,
			Link:        def.ExternalLink,
		})
	}
	return rows
}

// Apply dispatches one of the list actions.
func (s *Service) Apply(ctx context.Context, session string, action Action, slug string) ([]models.CompareItem, error) {
	switch action {
	case ActionAdd:
		return s.Add(ctx, session, slug)
	case ActionRemove:
		return s.Remove(ctx, session, slug)
	case ActionClear:
		if err := s.Clear(ctx, session); err != nil {
			return nil, err
		}
		return []models.CompareItem{}, nil
	case ActionList:
		return s.List(ctx, session)
	default:
		return nil, errors.NewCompareInvalidError("unknown action " + string(action))
	}
}

func (s *Service) load(ctx context.Context, session string) ([]models.CompareItem, error) {
	items, err := s.store.Load(ctx, session)
	if err != nil {
		return nil, errors.NewCompareStoreFailedError(err)
	}
	return items, nil
}

func (s *Service) save(ctx context.Context, session string, items []models.CompareItem) error {
	if err := s.store.Save(ctx, session, items); err != nil {
		return errors.NewCompareStoreFailedError(err)
	}
	return nil
}

func validSession(session string) error {
	if !sessionPattern.MatchString(session) {
		return errors.NewCompareInvalidError("session id must be 1-64 letters, digits, '-' or '_'")
	}
	return nil
}
