// internal/common/errors/handler.go
package errors

import (
	"context"
	stderrors "errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// ErrorHandler reports a failed pricing job back to the engine. Retryable
// errors fail the job with one retry fewer than it arrived with; everything
// else, and the last attempt, is thrown as a BPMN error the process can catch.
type ErrorHandler struct {
	logger Logger
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := asStandard(err)
	bpmnErr := ConvertToBPMNError(stdErr)
	remaining := RemainingRetries(job.Retries, stdErr)

	h.logger.Error("pricing job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"workflowInstance": job.ProcessInstanceKey,
		"errorCode":        string(stdErr.Code),
		"errorCategory":    GetErrorCategory(stdErr.Code),
		"details":          stdErr.Details,
		"retryable":        stdErr.Retryable,
		"jobRetries":       job.Retries,
		"remainingRetries": remaining,
		"queryType":        stdErr.Metadata["queryType"],
	})

	if remaining > 0 {
		h.fail(ctx, client, job, bpmnErr, remaining)
		return
	}
	h.throw(ctx, client, job, bpmnErr)
}

// RemainingRetries is the retry count to hand back to the engine. It always
// decreases, is capped by the code's retry budget, and is zero for errors
// that cannot succeed on a second attempt.
func RemainingRetries(jobRetries int32, stdErr *StandardError) int32 {
	if !stdErr.Retryable {
		return 0
	}
	remaining := jobRetries - 1
	if budget := int32(GetRetryCount(stdErr.Code)); remaining > budget {
		remaining = budget
	}
	if remaining < 0 {
		return 0
	}
	return remaining
}

func asStandard(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

func (h *ErrorHandler) fail(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError, retries int32) {
	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(retries).
		ErrorMessage(bpmnErr.Message)

	withVars, err := cmd.VariablesFromMap(bpmnErr.ToErrorVariables())
	if err != nil {
		// variables are best effort; the error itself must reach the engine
		_, err = cmd.Send(ctx)
	} else {
		_, err = withVars.Send(ctx)
	}
	if err != nil {
		h.logSendFailure(job, "fail", err)
	}
}

func (h *ErrorHandler) throw(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	withVars, err := cmd.VariablesFromMap(bpmnErr.ToErrorVariables())
	if err != nil {
		// variables are best effort; the error itself must reach the engine
		_, err = cmd.Send(ctx)
	} else {
		_, err = withVars.Send(ctx)
	}
	if err != nil {
		h.logSendFailure(job, "throw error", err)
	}
}

func (h *ErrorHandler) logSendFailure(job entities.Job, command string, err error) {
	h.logger.Error("failed to send job command", map[string]interface{}{
		"jobKey":  job.Key,
		"command": command,
		"error":   err.Error(),
	})
}
