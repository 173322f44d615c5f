// internal/models/notification.go
package models

type Lead struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Province  string `json:"province,omitempty"`
	Campus    string `json:"campus,omitempty"`
	Major     string `json:"major,omitempty"`
	Score     string `json:"score,omitempty"`
	CreatedAt string `json:"createdAt"`
}

type Notification struct {
	ID        string `json:"id"`
	LeadID    string `json:"leadId"`
	Channel   string `json:"channel"` // "email", "sms"
	Recipient string `json:"recipient"`
	Status    string `json:"status"` // "sent", "failed", "disabled"
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
	SentAt    string `json:"sentAt,omitempty"`
}
