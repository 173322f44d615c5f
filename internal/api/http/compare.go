package http

import (
	nethttp "net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/common/metrics"
	"scholarship-workers/internal/compare"
	"scholarship-workers/internal/models"
)

type compareView struct {
	Items []models.CompareItem `json:"items"`
	Table []models.CompareRow  `json:"table"`
	Count int                  `json:"count"`
}

func newCompareView(svc *compare.Service, items []models.CompareItem) compareView {
	if items == nil {
		items = []models.CompareItem{}
	}
	return compareView{Items: items, Table: svc.Table(items), Count: len(items)}
}

// respondCompare runs one compare action and renders the resulting list.
func respondCompare(w nethttp.ResponseWriter, r *nethttp.Request, svc *compare.Service, action compare.Action, slug string) {
	items, err := svc.Apply(r.Context(), chi.URLParam(r, "session"), action, slug)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.CompareOperations.WithLabelValues(string(action), status).Inc()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, newCompareView(svc, items))
}

func listCompareHandler(svc *compare.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		respondCompare(w, r, svc, compare.ActionList, "")
	}
}

func clearCompareHandler(svc *compare.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		respondCompare(w, r, svc, compare.ActionClear, "")
	}
}

func addCompareHandler(svc *compare.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var body struct {
			Slug string `json:"slug"`
		}
		if err := decodeJSON(r, &body); err != nil {
			writeError(w, err)
			return
		}
		slug := strings.TrimSpace(body.Slug)
		if slug == "" {
			writeError(w, errors.NewCompareInvalidError("slug is required"))
			return
		}
		respondCompare(w, r, svc, compare.ActionAdd, slug)
	}
}

func removeCompareHandler(svc *compare.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		respondCompare(w, r, svc, compare.ActionRemove, chi.URLParam(r, "slug"))
	}
}
