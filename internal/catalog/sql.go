package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/models"
)

const listScholarshipsQuery = `
	SELECT slug, name, highlight_benefit, quota_label, eligibility, external_link
	FROM scholarships
	WHERE active = true
	ORDER BY position ASC, slug ASC
`

// SQLSource reads the catalog from the scholarships table. eligibility is a
// JSON array column.
type SQLSource struct {
	DB *sql.DB
}

func (s SQLSource) Name() string {
	return "postgres"
}

func (s SQLSource) Load(ctx context.Context) ([]models.Scholarship, error) {
	rows, err := s.DB.QueryContext(ctx, listScholarshipsQuery)
	if err != nil {
		return nil, errors.NewDatabaseQueryFailedError("list scholarships", err)
	}
	defer rows.Close()

	var defs []models.Scholarship
	for rows.Next() {
		var (
			def         models.Scholarship
			quota       sql.NullString
			eligibility []byte
		)
		if err := rows.Scan(&def.Slug, &def.Name, &def.HighlightBenefit, &quota, &eligibility, &def.ExternalLink); err != nil {
			return nil, errors.NewDatabaseQueryFailedError("scan scholarship", err)
		}
		if quota.Valid {
			def.QuotaLabel = quota.String
		}
		if len(eligibility) > 0 {
			if err := json.Unmarshal(eligibility, &def.Eligibility); err != nil {
				return nil, errors.NewCatalogInvalidError(fmt.Sprintf("scholarship %q: eligibility: %v", def.Slug, err))
			}
		}
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDatabaseQueryFailedError("iterate scholarships", err)
	}

	return defs, nil
}
