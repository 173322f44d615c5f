// internal/workers/lead/capture-lead/handler.go
package capturelead

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/common/metrics"
	"scholarship-workers/internal/lead"
)

const TaskType = "capture-lead"

type Handler struct {
	config       *Config
	service      *lead.Service
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, service *lead.Service, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		service:      service,
		logger:       log,
		errorHandler: errors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.process(ctx, job.Variables)
	if err != nil {
		code := h.errorHandler.HandleJobError(ctx, client, job, err)
		metrics.ObserveJob(TaskType, start, string(code))
		return
	}

	if err := h.completeJob(ctx, client, job, output); err != nil {
		metrics.ObserveJob(TaskType, start, "COMPLETE_FAILED")
		return
	}
	metrics.ObserveJob(TaskType, start, "")
}

func (h *Handler) process(ctx context.Context, variables string) (*Output, error) {
	if result := validateInput([]byte(variables)); !result.Valid {
		return nil, errors.NewLeadValidationFailedError(result.Summary())
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, errors.NewLeadValidationFailedError(err.Error())
	}
	return h.Execute(ctx, &input)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewLeadValidationFailedError("input cannot be nil")
	}

	res, err := h.service.Capture(ctx, input.Form)
	if err != nil {
		metrics.LeadsCaptured.WithLabelValues(string(errors.CodeOf(err))).Inc()
		return nil, err
	}
	metrics.LeadsCaptured.WithLabelValues("captured").Inc()
	for _, n := range res.Notifications {
		metrics.NotificationsSent.WithLabelValues(n.Channel, n.Status).Inc()
	}

	return &Output{
		LeadID:        res.Lead.ID,
		CreatedAt:     res.Lead.CreatedAt,
		Notified:      res.Notified(),
		Notifications: res.Notifications,
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return err
	}
	if _, err = cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return err
	}
	return nil
}
