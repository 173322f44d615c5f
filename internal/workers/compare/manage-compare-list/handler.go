// internal/workers/compare/manage-compare-list/handler.go
package managecomparelist

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/common/metrics"
	"scholarship-workers/internal/compare"
)

const TaskType = "manage-compare-list"

type Handler struct {
	config       *Config
	service      *compare.Service
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, service *compare.Service, log logger.Logger) *Handler {
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
		return nil, errors.NewCompareInvalidError(result.Summary())
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, errors.NewCompareInvalidError(err.Error())
	}
	return h.Execute(ctx, &input)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewCompareInvalidError("input cannot be nil")
	}

	action := compare.Action(input.Action)
	if (action == compare.ActionAdd || action == compare.ActionRemove) && input.Slug == "" {
		return nil, errors.NewCompareInvalidError("slug is required for " + input.Action)
	}

	items, err := h.service.Apply(ctx, input.SessionID, action, input.Slug)
	if err != nil {
		metrics.CompareOperations.WithLabelValues(input.Action, string(errors.CodeOf(err))).Inc()
		return nil, err
	}
	metrics.CompareOperations.WithLabelValues(input.Action, "ok").Inc()

	return &Output{
		Items: items,
		Table: h.service.Table(items),
		Count: len(items),
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
