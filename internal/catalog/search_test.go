package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarship-workers/internal/common/errors"
)

type fakeES struct {
	mu      sync.Mutex
	indexed []string
	queries []string
	status  int
	body    string

	refreshStatus int
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case strings.Contains(r.URL.Path, "/_doc/"):
		f.indexed = append(f.indexed, r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:])
		_, _ = w.Write([]byte(`{"result":"created"}`))
	case strings.HasSuffix(r.URL.Path, "/_refresh"):
		if f.refreshStatus != 0 {
			w.WriteHeader(f.refreshStatus)
		}
		_, _ = w.Write([]byte(`{}`))
	case strings.HasSuffix(r.URL.Path, "/_search"):
		raw, _ := io.ReadAll(r.Body)
		f.queries = append(f.queries, string(raw))
		if f.status != 0 {
			w.WriteHeader(f.status)
		}
		_, _ = w.Write([]byte(f.body))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newSearchIndex(t *testing.T, fake *fakeES) *SearchIndex {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	store, err := NewStore(testDefs())
	require.NoError(t, err)

	return NewSearchIndex(client, "scholarships", store)
}

func TestSearchIndex_Index(t *testing.T) {
	fake := &fakeES{}
	idx := newSearchIndex(t, fake)

	require.NoError(t, idx.Index(context.Background()))
	assert.Equal(t, []string{"full-scholarship", "one-year"}, fake.indexed)
}

func TestSearchIndex_IndexRefreshFailure(t *testing.T) {
	idx := newSearchIndex(t, &fakeES{refreshStatus: http.StatusServiceUnavailable})

	err := idx.Index(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSearchFailed, errors.CodeOf(err))
}

func TestSearchIndex_Search(t *testing.T) {
	fake := &fakeES{body: `{
		"hits": {
			"total": {"value": 3},
			"hits": [
				{"_id": "one-year", "_source": {"slug": "one-year"}},
				{"_id": "retired", "_source": {"slug": "retired"}},
				{"_id": "full-scholarship", "_source": {}}
			]
		}
	}`}
	idx := newSearchIndex(t, fake)

	results, total, err := idx.Search(context.Background(), "tuition", 5)
	require.NoError(t, err)

	assert.Equal(t, 3, total)
	require.Len(t, results, 2)
	assert.Equal(t, "one-year", results[0].Slug)
	assert.Equal(t, "full-scholarship", results[1].Slug)

	require.Len(t, fake.queries, 1)
	var q map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(fake.queries[0]), &q))
	assert.EqualValues(t, 5, q["size"])
	mm := q["query"].(map[string]interface{})["multi_match"].(map[string]interface{})
	assert.Equal(t, "tuition", mm["query"])
}

func TestSearchIndex_Errors(t *testing.T) {
	idx := newSearchIndex(t, &fakeES{})
	_, _, err := idx.Search(context.Background(), "   ", 0)
	assert.Equal(t, errors.ErrCodeSearchQueryInvalid, errors.CodeOf(err))

	idx = newSearchIndex(t, &fakeES{status: http.StatusNotFound, body: `{"error":{"type":"index_not_found_exception"}}`})
	_, _, err = idx.Search(context.Background(), "tuition", 0)
	assert.Equal(t, errors.ErrCodeSearchIndexNotFound, errors.CodeOf(err))

	idx = newSearchIndex(t, &fakeES{status: http.StatusBadRequest, body: `{"error":{"type":"parsing_exception"}}`})
	_, _, err = idx.Search(context.Background(), "tuition", 0)
	assert.Equal(t, errors.ErrCodeSearchFailed, errors.CodeOf(err))
}
