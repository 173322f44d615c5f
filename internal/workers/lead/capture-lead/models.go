// internal/workers/lead/capture-lead/models.go
package capturelead

import (
	"scholarship-workers/internal/lead"
	"scholarship-workers/internal/models"
)

type Input struct {
	lead.Form
}

type Output struct {
	LeadID        string                `json:"leadId"`
	CreatedAt     string                `json:"createdAt"`
	Notified      []string              `json:"notified"`
	Notifications []models.Notification `json:"notifications"`
}
