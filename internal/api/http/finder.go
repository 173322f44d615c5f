package http

import (
	nethttp "net/http"
	"strings"

	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/common/metrics"
	"scholarship-workers/internal/finder"
)

type findResponse struct {
	finder.Report
	ShareURL string `json:"shareUrl,omitempty"`
}

// findHandler evaluates the visitor encoded in the query string. The query
// uses the same keys as a shared link, so a shared link can be replayed
// against this endpoint unchanged.
func findHandler(engine *finder.Engine, shareBase string) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		in := finder.DecodeShare(r.URL.RawQuery)
		report := finder.NewReport(in, engine.Evaluate(in))

		metrics.FinderEvaluations.WithLabelValues(string(report.Outcome)).Inc()
		for _, m := range report.Matches {
			metrics.FinderMatchesTotal.WithLabelValues(m.Slug, m.TierKey).Inc()
		}

		resp := findResponse{Report: report}
		if shareBase != "" {
			resp.ShareURL = finder.ShareURL(shareBase, in)
		}
		writeJSON(w, nethttp.StatusOK, resp)
	}
}

type whatIfRequest struct {
	ShareQuery string        `json:"shareQuery"`
	Input      *finder.Input `json:"input"`
	BonusTN    float64       `json:"bonusTn"`
	BonusDGNL  float64       `json:"bonusDgnl"`
}

type whatIfResponse struct {
	Baseline finder.Report       `json:"baseline"`
	Options  finder.BonusOptions `json:"options"`
	finder.SimulationReport
}

func whatIfHandler(engine *finder.Engine, limits finder.BonusLimits) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req whatIfRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		bonus := finder.Bonus{TN: req.BonusTN, DGNL: req.BonusDGNL}
		if err := limits.Check(bonus); err != nil {
			writeError(w, err)
			return
		}

		var in finder.Input
		switch {
		case strings.TrimSpace(req.ShareQuery) != "":
			in = finder.DecodeShare(strings.TrimSpace(req.ShareQuery))
		case req.Input != nil:
			in = req.Input.Normalize()
		default:
			writeError(w, errors.NewFinderInputInvalidError("input or shareQuery is required"))
			return
		}

		baseline := engine.Evaluate(in)
		sim := engine.SimulateFrom(baseline, in, bonus)
		report := finder.NewSimulationReport(sim)

		result := "changed"
		if report.NoChange {
			result = "unchanged"
		}
		metrics.WhatIfSimulations.WithLabelValues(result).Inc()

		writeJSON(w, nethttp.StatusOK, whatIfResponse{
			Baseline:         finder.NewReport(in, baseline),
			Options:          limits.Options(),
			SimulationReport: report,
		})
	}
}
