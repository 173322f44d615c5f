package lead

import (
	"context"
	"time"

	"github.com/google/uuid"

	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/models"
)

// Result is the outcome of one capture. Notifications lists every channel,
// including disabled and failed ones.
type Result struct {
	Lead          models.Lead           `json:"lead"`
	Notifications []models.Notification `json:"notifications"`
}

// Notified returns the channels that were actually delivered.
func (r Result) Notified() []string {
	out := make([]string, 0, len(r.Notifications))
	for _, n := range r.Notifications {
		if n.Status == StatusSent {
			out = append(out, n.Channel)
		}
	}
	return out
}

type Service struct {
	intake   Intake
	notifier *Notifier
	logger   logger.Logger
	now      func() time.Time
	newID    func() string
}

func NewService(intake Intake, notifier *Notifier, log logger.Logger) *Service {
	return &Service{
		intake:   intake,
		notifier: notifier,
		logger:   log,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// Capture validates the form, buffers the lead and notifies. Once the lead is
// buffered notification failures are only logged.
func (s *Service) Capture(ctx context.Context, form Form) (Result, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return Result{}, validationError(errs)
	}

	l := form.toLead(s.newID(), s.now().UTC().Format(time.RFC3339))
	if err := s.intake.Push(ctx, l); err != nil {
		return Result{}, errors.NewLeadStoreFailedError(err)
	}

	s.logger.Info("Lead captured", map[string]interface{}{
		"leadId":   l.ID,
		"campus":   l.Campus,
		"province": l.Province,
	})

	res := Result{Lead: l}
	if s.notifier != nil {
		res.Notifications = s.notifier.Notify(ctx, l)
		for _, n := range res.Notifications {
			if n.Status == StatusFailed {
				s.logger.Warn("Lead notification failed", map[string]interface{}{
					"leadId":  l.ID,
					"channel": n.Channel,
					"error":   n.Error,
				})
			}
		}
	}

	return res, nil
}
