package http

import (
	nethttp "net/http"

	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/common/metrics"
	"scholarship-workers/internal/lead"
	"scholarship-workers/internal/models"
)

type leadResponse struct {
	LeadID        string                `json:"leadId"`
	CreatedAt     string                `json:"createdAt"`
	Notified      []string              `json:"notified"`
	Notifications []models.Notification `json:"notifications"`
}

func captureLeadHandler(svc *lead.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var form lead.Form
		if err := decodeJSON(r, &form); err != nil {
			writeError(w, err)
			return
		}
		res, err := svc.Capture(r.Context(), form)
		if err != nil {
			metrics.LeadsCaptured.WithLabelValues(string(errors.CodeOf(err))).Inc()
			writeError(w, err)
			return
		}
		metrics.LeadsCaptured.WithLabelValues("captured").Inc()
		for _, n := range res.Notifications {
			metrics.NotificationsSent.WithLabelValues(n.Channel, n.Status).Inc()
		}

		writeJSON(w, nethttp.StatusCreated, leadResponse{
			LeadID:        res.Lead.ID,
			CreatedAt:     res.Lead.CreatedAt,
			Notified:      res.Notified(),
			Notifications: res.Notifications,
		})
	}
}
