package catalog

import (
	"context"
	"fmt"

	"scholarship-workers/internal/models"
)

// Source supplies the catalog definitions.
type Source interface {
	Load(ctx context.Context) ([]models.Scholarship, error)
	Name() string
}

// LoadStore loads src and builds a Store from it.
func LoadStore(ctx context.Context, src Source) (*Store, error) {
	defs, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", src.Name(), err)
	}
	return NewStore(defs)
}
