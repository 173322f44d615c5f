package http

import (
	nethttp "net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"scholarship-workers/internal/catalog"
	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/models"
)

const maxSearchLimit = 50

type scholarshipList struct {
	Items []models.Scholarship `json:"items"`
	Total int                  `json:"total"`
}

// listScholarshipsHandler returns the whole catalog, or the search hits for q.
func listScholarshipsHandler(store *catalog.Store, search catalog.Searcher) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		if q == "" {
			items := store.All()
			writeJSON(w, nethttp.StatusOK, scholarshipList{Items: items, Total: len(items)})
			return
		}

		limit := catalog.DefaultSearchLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				writeError(w, errors.NewSearchQueryInvalidError("limit must be a non-negative integer"))
				return
			}
			if n > 0 {
				limit = n
			}
		}
		if limit > maxSearchLimit {
			limit = maxSearchLimit
		}

		items, total, err := search.Search(r.Context(), q, limit)
		if err != nil {
			writeError(w, err)
			return
		}
		if items == nil {
			items = []models.Scholarship{}
		}
		writeJSON(w, nethttp.StatusOK, scholarshipList{Items: items, Total: total})
	}
}

func getScholarshipHandler(store *catalog.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		slug := chi.URLParam(r, "slug")
		def, ok := store.Lookup(slug)
		if !ok {
			writeError(w, errors.NewScholarshipNotFoundError(slug))
			return
		}
		writeJSON(w, nethttp.StatusOK, def)
	}
}
