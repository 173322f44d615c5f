// internal/workers/catalog/search-scholarships/handler.go
package searchscholarships

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"scholarship-workers/internal/catalog"
	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/common/metrics"
)

const TaskType = "search-scholarships"

type Handler struct {
	config       *Config
	searcher     catalog.Searcher
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, searcher catalog.Searcher, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		searcher:     searcher,
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
		return nil, errors.NewSearchQueryInvalidError(result.Summary())
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, errors.NewSearchQueryInvalidError(err.Error())
	}
	return h.Execute(ctx, &input)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewSearchQueryInvalidError("input cannot be nil")
	}

	limit := input.Limit
	if h.config.MaxLimit > 0 && limit > h.config.MaxLimit {
		limit = h.config.MaxLimit
	}

	defs, total, err := h.searcher.Search(ctx, input.Query, limit)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewSearchTimeoutError(TaskType)
		}
		return nil, err
	}

	out := &Output{Results: make([]Result, 0, len(defs)), Total: total}
	for _, def := range defs {
		out.Results = append(out.Results, Result{
			Slug:             def.Slug,
			Name:             def.Name,
			HighlightBenefit: def.HighlightBenefit,
			QuotaLabel:       def.QuotaLabel,
			ExternalLink:     def.ExternalLink,
		})
	}
	return out, nil
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
