// internal/workers/finder/find-scholarships/handler.go
package findscholarships

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/common/metrics"
	"scholarship-workers/internal/finder"
)

const TaskType = "find-scholarships"

type Handler struct {
	config       *Config
	engine       *finder.Engine
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, engine *finder.Engine, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		engine:       engine,
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

	input, err := h.parseInput(job.Variables)
	if err != nil {
		code := h.errorHandler.HandleJobError(ctx, client, job, err)
		metrics.ObserveJob(TaskType, start, string(code))
		return
	}

	output, err := h.Execute(ctx, input)
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

func (h *Handler) parseInput(variables string) (*Input, error) {
	if result := validateInput([]byte(variables)); !result.Valid {
		return nil, errors.NewFinderInputInvalidError(result.Summary())
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, errors.NewFinderInputInvalidError(err.Error())
	}
	return &input, nil
}

// Execute evaluates the visitor and renders the ranked report.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewFinderInputInvalidError("input cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.NewTimeoutError(TaskType, err)
	}

	in := input.Input.Normalize()
	if q := strings.TrimSpace(input.ShareQuery); q != "" {
		in = finder.DecodeShare(q)
	}

	result := h.engine.Evaluate(in)
	report := finder.NewReport(in, result)

	metrics.FinderEvaluations.WithLabelValues(string(report.Outcome)).Inc()
	for _, m := range report.Matches {
		metrics.FinderMatchesTotal.WithLabelValues(m.Slug, m.TierKey).Inc()
	}

	out := &Output{
		Outcome:    report.Outcome,
		Matches:    report.Matches,
		MatchCount: len(report.Matches),
		Guidance:   report.Guidance,
		ShareQuery: report.Query,
	}
	if h.config.ShareBaseURL != "" {
		out.ShareURL = finder.ShareURL(h.config.ShareBaseURL, in)
	}

	h.logger.Debug("finder evaluated", map[string]interface{}{
		"outcome": out.Outcome,
		"matches": out.MatchCount,
	})
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
