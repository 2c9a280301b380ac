package pricingintelquery

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"math"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	awsalerts "pricing-intel/internal/common/aws"
	"pricing-intel/internal/common/errors"
	"pricing-intel/internal/common/logger"
	"pricing-intel/internal/common/metrics"
	"pricing-intel/internal/common/observability"
	"pricing-intel/internal/common/validation"
	"pricing-intel/internal/models"
	"pricing-intel/internal/pricing/insights"
	"pricing-intel/internal/pricing/intent"
	"pricing-intel/internal/pricing/queries"
	"pricing-intel/internal/pricing/summary"
	"pricing-intel/internal/pricing/thresholds"
	"pricing-intel/internal/pricing/warehouse"
)

const (
	TaskType = "pricing-intel-query"
)

// AlertPublisher fans alerts out after a successful query.
type AlertPublisher interface {
	PublishAlerts(ctx context.Context, msg awsalerts.AlertMessage) (string, error)
}

// ExecutionError is a failed request together with the category it had
// resolved to, if any.
type ExecutionError struct {
	QueryType string
	RequestID string
	Err       *errors.StandardError
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s: %s", e.QueryType, e.Err.Error())
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

type Handler struct {
	config      *Config
	registry    *queries.Registry
	executor    warehouse.Executor
	synthesizer *insights.Synthesizer
	calculator  *summary.Calculator
	validator   *validation.Validator
	publisher   AlertPublisher
	obs         *observability.Observability
	logger      logger.Logger
	newID       func() string
}

type Option func(*Handler)

// WithAlertPublisher enables alert fan-out.
func WithAlertPublisher(p AlertPublisher) Option {
	return func(h *Handler) { h.publisher = p }
}

// WithObservability enables spans and OTel metrics.
func WithObservability(o *observability.Observability) Option {
	return func(h *Handler) { h.obs = o }
}

func NewHandler(cfg *Config, t thresholds.Set, executor warehouse.Executor, log logger.Logger, opts ...Option) (*Handler, error) {
	validator, err := validation.NewPricingRequestValidator()
	if err != nil {
		return nil, err
	}

	h := &Handler{
		config:      cfg,
		registry:    queries.NewRegistry(cfg.Dataset, t),
		executor:    executor,
		synthesizer: insights.NewSynthesizer(t),
		calculator:  summary.NewCalculator(t),
		validator:   validator,
		logger:      log.WithFields(map[string]interface{}{"taskType": TaskType}),
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// ParseRequest decodes a raw body. Malformed JSON is treated as an empty
// request; well formed JSON with wrongly typed fields is rejected.
func (h *Handler) ParseRequest(raw []byte) (*Request, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		return &Request{}, nil
	}

	result, err := h.validator.Validate(doc)
	if err != nil {
		return nil, errors.NewInvalidRequestError(err.Error())
	}
	if !result.Valid {
		return nil, errors.NewInvalidRequestError(result.Error())
	}

	req := &Request{}
	if s, ok := doc["question"].(string); ok {
		req.Question = s
	}
	if s, ok := doc["query_type"].(string); ok {
		req.QueryType = s
	}
	if f, ok := doc["limit"].(float64); ok {
		// bound in the float domain; int(f) is undefined outside the int range
		if f > float64(h.config.MaxLimit) {
			f = float64(h.config.MaxLimit)
		}
		if f < math.MinInt32 {
			f = math.MinInt32
		}
		limit := int(f)
		req.Limit = &limit
	}
	return req, nil
}

// Execute runs one request end to end.
func (h *Handler) Execute(ctx context.Context, req *Request) (*ResponseEnvelope, error) {
	if req == nil {
		req = &Request{}
	}
	start := time.Now()
	requestID := h.newID()

	ctx, span := h.obs.StartSpan(ctx, "pricing.execute", attribute.String("request_id", requestID))
	defer span.End()

	category, source := intent.Resolve(req.QueryType, req.Question)
	limit := h.config.ClampLimit(req.Limit)
	span.SetAttributes(
		attribute.String("query_type", string(category)),
		attribute.String("resolved_by", string(source)),
		attribute.Int("limit", limit),
	)

	log := h.logger.WithFields(map[string]interface{}{
		"requestId": requestID,
		"queryType": string(category),
	})
	log.Info("processing pricing intel query", map[string]interface{}{
		"resolvedBy":     string(source),
		"requestedType":  req.QueryType,
		"effectiveLimit": limit,
	})

	fail := func(stdErr *errors.StandardError) (*ResponseEnvelope, error) {
		span.RecordError(stdErr)
		span.SetStatus(codes.Error, string(stdErr.Code))
		metrics.ObserveQuery(string(category), metrics.StatusFailure, time.Since(start).Seconds(), 0, 0)
		h.obs.RecordQuery(ctx, string(category), metrics.StatusFailure, time.Since(start), 0)
		log.Error("pricing intel query failed", map[string]interface{}{
			"errorCode": string(stdErr.Code),
			"details":   stdErr.Details,
		})
		return nil, &ExecutionError{QueryType: string(category), RequestID: requestID, Err: stdErr}
	}

	builder, err := h.registry.Get(category)
	if err != nil {
		return fail(errors.NewInternalError(err))
	}
	q := builder.Build().Bind(h.config.Window, limit)

	qctx, qspan := h.obs.StartSpan(ctx, "warehouse.execute")
	result, err := h.executor.Execute(qctx, q, warehouse.ExecOptions{
		ByteBudget: h.config.ByteBudget,
		Labels: map[string]string{
			"agent":      Agent,
			"query_type": string(category),
		},
	})
	qspan.End()
	if err != nil {
		return fail(errors.FromError(string(category), err))
	}

	set, err := builder.Decode(result.Records)
	if err != nil {
		return fail(errors.NewRecordDecodeFailedError(string(category), err))
	}

	analysis := h.synthesizer.Synthesize(set)
	if analysis.Degraded() {
		h.reportDegraded(log, "insights", category, analysis.Causes)
	}
	stats := h.calculator.Summarize(set)
	if stats.Degraded() {
		h.reportDegraded(log, "summary", category, stats.Causes)
	}

	env := &ResponseEnvelope{
		Success:         true,
		RequestID:       requestID,
		Agent:           Agent,
		QueryType:       string(category),
		Parameters:      Parameters{Limit: limit},
		Summary:         stats.Value,
		Insights:        analysis.Value.Insights,
		Recommendations: analysis.Value.Recommendations,
		Alerts:          analysis.Value.Alerts,
		RowCount:        set.Len(),
		Rows:            set.Rows(),
		Metadata: Metadata{
			BytesProcessed: result.BytesProcessed,
			BytesBilled:    result.BytesBilled,
			CacheHit:       result.CacheHit,
			Dataset:        h.config.Dataset,
			Location:       h.config.Location,
			Window: Window{
				Start: h.config.Window.StartDate(),
				End:   h.config.Window.EndDate(),
			},
		},
	}

	h.publishAlerts(ctx, log, env)

	elapsed := time.Since(start)
	metrics.ObserveQuery(string(category), metrics.StatusSuccess, elapsed.Seconds(), result.BytesProcessed, result.BytesBilled)
	h.obs.RecordQuery(ctx, string(category), metrics.StatusSuccess, elapsed, env.RowCount)
	span.SetAttributes(attribute.Int("row_count", env.RowCount))

	log.Info("pricing intel query completed", map[string]interface{}{
		"rowCount":       env.RowCount,
		"bytesProcessed": result.BytesProcessed,
		"bytesBilled":    result.BytesBilled,
		"durationMs":     elapsed.Milliseconds(),
	})

	return env, nil
}

func (h *Handler) reportDegraded(log logger.Logger, component string, category models.Category, causes []error) {
	metrics.DegradedOutcomes.WithLabelValues(component, string(category)).Inc()
	msgs := make([]string, len(causes))
	for i, c := range causes {
		msgs[i] = c.Error()
	}
	log.Warn("analysis completed with faults", map[string]interface{}{
		"component": component,
		"causes":    msgs,
	})
}

// publishAlerts never fails the request.
func (h *Handler) publishAlerts(ctx context.Context, log logger.Logger, env *ResponseEnvelope) {
	if h.publisher == nil || len(env.Alerts) == 0 {
		return
	}

	ctx, span := h.obs.StartSpan(ctx, "alerts.publish")
	defer span.End()

	msgID, err := h.publisher.PublishAlerts(ctx, awsalerts.AlertMessage{
		RequestID: env.RequestID,
		QueryType: env.QueryType,
		Dataset:   env.Metadata.Dataset,
		Alerts:    env.Alerts,
		RowCount:  env.RowCount,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		stdErr := errors.NewAlertPublishFailedError("sns", err)
		span.RecordError(stdErr)
		metrics.AlertsPublished.WithLabelValues(env.QueryType, metrics.StatusFailure).Inc()
		log.Warn("alert publish failed", map[string]interface{}{
			"errorCode": string(stdErr.Code),
			"details":   stdErr.Details,
		})
		return
	}

	metrics.AlertsPublished.WithLabelValues(env.QueryType, metrics.StatusSuccess).Inc()
	log.Debug("alerts published", map[string]interface{}{
		"messageId":  msgID,
		"alertCount": len(env.Alerts),
	})
}

// NewErrorEnvelope renders any error from ParseRequest or Execute.
func NewErrorEnvelope(err error) *ErrorEnvelope {
	env := &ErrorEnvelope{
		Success:   false,
		Agent:     Agent,
		QueryType: UnknownQueryType,
	}

	var execErr *ExecutionError
	if stderrors.As(err, &execErr) {
		env.QueryType = execErr.QueryType
		env.RequestID = execErr.RequestID
	}

	stdErr := errors.FromError(env.QueryType, err)
	env.ErrorType = string(stdErr.Code)
	env.Error = stdErr.Message
	if stdErr.Details != "" {
		env.Error = fmt.Sprintf("%s: %s", stdErr.Message, stdErr.Details)
	}
	return env
}

// ==========================
// Zeebe job transport
// ==========================

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	errHandler := errors.NewErrorHandler(h.logger)

	req, err := h.ParseRequest([]byte(job.Variables))
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.ErrCodeInvalidRequest)).Inc()
		errHandler.HandleJobError(ctx, client, job, err)
		return
	}

	env, err := h.Execute(ctx, req)
	if err != nil {
		stdErr := errors.FromError(UnknownQueryType, err)
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
		errHandler.HandleJobError(ctx, client, job, stdErr)
		return
	}

	h.completeJob(ctx, client, job, env)
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, env *ResponseEnvelope) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(env)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}
