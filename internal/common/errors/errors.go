// Package errors provides standardized error handling for the pricing query
// engine and its BPMN workflow integration.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeWarehouseConnectionFailed ErrorCode = "WAREHOUSE_CONNECTION_FAILED"
	ErrCodeWarehouseQueryFailed      ErrorCode = "WAREHOUSE_QUERY_FAILED"
	ErrCodeQueryTimeout              ErrorCode = "QUERY_TIMEOUT"
	ErrCodeByteBudgetExceeded        ErrorCode = "BYTE_BUDGET_EXCEEDED"

	ErrCodeRecordDecodeFailed ErrorCode = "RECORD_DECODE_FAILED"
	ErrCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"

	ErrCodeAlertPublishFailed ErrorCode = "ALERT_PUBLISH_FAILED"

	ErrCodeWorkflowEngineFailed ErrorCode = "WORKFLOW_ENGINE_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewWarehouseConnectionFailedError creates a retryable connection error.
func NewWarehouseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWarehouseConnectionFailed,
		Message:   "Warehouse connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewWarehouseQueryFailedError creates a retryable query execution error.
func NewWarehouseQueryFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWarehouseQueryFailed,
		Message:   "Warehouse query execution error",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: true,
		Metadata:  map[string]interface{}{"queryType": queryType},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewWarehouseQueryRejectedError is a query the warehouse refused on its
// own terms (bad data, bad syntax, bad parameters). Same code, never retried.
func NewWarehouseQueryRejectedError(queryType string, err error) *StandardError {
	stdErr := NewWarehouseQueryFailedError(queryType, err)
	stdErr.Message = "Warehouse rejected the query"
	stdErr.Retryable = false
	return stdErr
}

// NewQueryTimeoutError creates a retryable query timeout error.
func NewQueryTimeoutError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Warehouse query timeout",
		Details:   fmt.Sprintf("queryType: %s", queryType),
		Retryable: true,
		Metadata:  map[string]interface{}{"queryType": queryType},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewByteBudgetExceededError is raised before execution when the estimated
// scan is larger than the configured budget. Retrying cannot help.
func NewByteBudgetExceededError(queryType string, estimated, budget int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeByteBudgetExceeded,
		Message:   "Query would exceed the byte budget",
		Details:   fmt.Sprintf("queryType: %s, estimated: %d, budget: %d", queryType, estimated, budget),
		Retryable: false,
		Metadata: map[string]interface{}{
			"queryType":      queryType,
			"estimatedBytes": estimated,
			"byteBudget":     budget,
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewRecordDecodeFailedError creates a non-retryable decode error.
func NewRecordDecodeFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordDecodeFailed,
		Message:   "Warehouse rows do not match the record schema",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: false,
		Metadata:  map[string]interface{}{"queryType": queryType},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInvalidRequestError creates a non-retryable request validation error.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAlertPublishFailedError creates a retryable notification error.
func NewAlertPublishFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAlertPublishFailed,
		Message:   "Alert delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewWorkflowEngineError reports a failed call to the Zeebe gateway.
func NewWorkflowEngineError(operation string, retryable bool, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWorkflowEngineFailed,
		Message:   fmt.Sprintf("Workflow engine operation '%s' failed", operation),
		Details:   err.Error(),
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInternalError wraps anything that is not already a StandardError.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// FromError returns err as a StandardError. Context deadlines become query
// timeouts; anything else unknown becomes INTERNAL_ERROR.
func FromError(queryType string, err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return NewQueryTimeoutError(queryType, err)
	}
	return NewInternalError(err)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeWarehouseConnectionFailed: "WAREHOUSE_CONNECTION_FAILED",
	ErrCodeWarehouseQueryFailed:      "WAREHOUSE_QUERY_FAILED",
	ErrCodeQueryTimeout:              "QUERY_TIMEOUT",
	ErrCodeByteBudgetExceeded:        "BYTE_BUDGET_EXCEEDED",
	ErrCodeRecordDecodeFailed:        "RECORD_DECODE_FAILED",
	ErrCodeInvalidRequest:            "INVALID_REQUEST",
	ErrCodeAlertPublishFailed:        "ALERT_PUBLISH_FAILED",
	ErrCodeWorkflowEngineFailed:      "WORKFLOW_ENGINE_FAILED",
	ErrCodeInternal:                  "INTERNAL_ERROR",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeWarehouseConnectionFailed,
		ErrCodeWarehouseQueryFailed,
		ErrCodeAlertPublishFailed,
		ErrCodeWorkflowEngineFailed:
		return 3

	case ErrCodeQueryTimeout:
		return 2

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "WAREHOUSE") || strings.Contains(codeStr, "QUERY") || strings.Contains(codeStr, "BUDGET"):
		return "WAREHOUSE"
	case strings.Contains(codeStr, "DECODE"):
		return "DATA"
	case strings.Contains(codeStr, "ALERT"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "WORKFLOW"):
		return "WORKFLOW"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
