package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/models"
)

const DefaultSearchLimit = 10

// SearchIndex mirrors a Store into an Elasticsearch index and answers full
// text queries against it. Hits are resolved through the Store so results
// always carry the current catalog definition.
type SearchIndex struct {
	client *elasticsearch.Client
	index  string
	store  *Store
}

func NewSearchIndex(client *elasticsearch.Client, index string, store *Store) *SearchIndex {
	return &SearchIndex{client: client, index: index, store: store}
}

// Index writes every catalog definition, keyed by slug.
func (s *SearchIndex) Index(ctx context.Context) error {
	for _, def := range s.store.All() {
		body, err := json.Marshal(def)
		if err != nil {
			return errors.NewInternalError(err)
		}

		req := esapi.IndexRequest{
			Index:      s.index,
			DocumentID: def.Slug,
			Body:       bytes.NewReader(body),
			Refresh:    "false",
		}
		res, err := req.Do(ctx, s.client)
		if err != nil {
			return s.transportError(ctx, err)
		}
		res.Body.Close()
		if res.IsError() {
			return errors.NewSearchFailedError(fmt.Errorf("index %s: %s", def.Slug, res.Status()))
		}
	}

	refresh := esapi.IndicesRefreshRequest{Index: []string{s.index}}
	res, err := refresh.Do(ctx, s.client)
	if err != nil {
		return s.transportError(ctx, err)
	}
	res.Body.Close()
	if res.IsError() {
		return errors.NewSearchFailedError(fmt.Errorf("refresh %s: %s", s.index, res.Status()))
	}
	return nil
}

// Search runs a multi_match query over name, benefit and eligibility and
// returns the matching scholarships in relevance order together with the
// total hit count reported by the index.
func (s *SearchIndex) Search(ctx context.Context, query string, limit int) ([]models.Scholarship, int, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, 0, errors.NewSearchQueryInvalidError("query is empty")
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	body, err := json.Marshal(map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^3", "highlight_benefit^2", "eligibility"},
				"fuzziness": "AUTO",
			},
		},
	})
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, 0, s.transportError(ctx, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, 0, errors.NewSearchIndexNotFoundError(s.index)
	}
	if res.IsError() {
		return nil, 0, errors.NewSearchFailedError(fmt.Errorf("search: %s", res.Status()))
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, 0, errors.NewSearchFailedError(fmt.Errorf("decode response: %w", err))
	}

	out := make([]models.Scholarship, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		slug := hit.Source.Slug
		if slug == "" {
			slug = hit.ID
		}
		if def, ok := s.store.Lookup(slug); ok {
			out = append(out, def)
		}
	}

	return out, r.Hits.Total.Value, nil
}

func (s *SearchIndex) transportError(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return errors.NewSearchTimeoutError(s.index)
	}
	return errors.NewSearchFailedError(err)
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string `json:"_id"`
			Source struct {
				Slug string `json:"slug"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}
