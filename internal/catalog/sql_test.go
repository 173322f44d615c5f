package catalog

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarship-workers/internal/common/errors"
)

var scholarshipColumns = []string{"slug", "name", "highlight_benefit", "quota_label", "eligibility", "external_link"}

func TestSQLSource_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT slug, name, highlight_benefit").
		WillReturnRows(sqlmock.NewRows(scholarshipColumns).
			AddRow("full-scholarship", "Full scholarship", "100% tuition", "50 places", []byte(`["first place"]`), "https://example.edu/full").
			AddRow("one-year", "One-year scholarship", "One year", nil, nil, "https://example.edu/one"))

	defs, err := SQLSource{DB: db}.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, defs, 2)

	assert.Equal(t, "50 places", defs[0].QuotaLabel)
	assert.Equal(t, []string{"first place"}, defs[0].Eligibility)
	assert.Empty(t, defs[1].QuotaLabel)
	assert.Nil(t, defs[1].Eligibility)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSource_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT slug").WillReturnError(sql.ErrConnDone)

	_, err = SQLSource{DB: db}.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDatabaseQueryFailed, errors.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSource_BadEligibility(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT slug").
		WillReturnRows(sqlmock.NewRows(scholarshipColumns).
			AddRow("one-year", "One-year scholarship", "One year", nil, []byte(`{"bad":`), ""))

	_, err = SQLSource{DB: db}.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCatalogInvalid, errors.CodeOf(err))
}
