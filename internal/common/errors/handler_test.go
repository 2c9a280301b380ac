package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricing-intel/internal/common/camunda/camundatest"
)

// ==========================
// Test Doubles
// ==========================

type recordingLogger struct {
	messages []string
	fields   []map[string]interface{}
}

func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.messages = append(l.messages, msg)
	l.fields = append(l.fields, fields)
}

func job(retries int32) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                42,
		Type:               "pricing-intel-query",
		ProcessInstanceKey: 7,
		Retries:            retries,
	}}
}

// ==========================
// Retry Accounting
// ==========================

func TestRemainingRetries(t *testing.T) {
	queryFailed := NewWarehouseQueryFailedError("price_elasticity", stderrors.New("io"))
	timeout := NewQueryTimeoutError("price_elasticity", context.DeadlineExceeded)
	rejected := NewWarehouseQueryRejectedError("price_elasticity", stderrors.New("LIMIT must not be negative"))

	tests := []struct {
		name       string
		jobRetries int32
		err        *StandardError
		want       int32
	}{
		{"decrements", 3, queryFailed, 2},
		{"decrements to zero", 1, queryFailed, 0},
		{"already exhausted", 0, queryFailed, 0},
		{"capped by code budget", 10, timeout, 2},
		{"below budget", 2, timeout, 1},
		{"rejection never retries", 3, rejected, 0},
		{"business error never retries", 3, NewInvalidRequestError("limit"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemainingRetries(tt.jobRetries, tt.err))
		})
	}
}

// Three activations of a failing job must end in a thrown error, not loop.
func TestHandleJobError_RetriesRunOut(t *testing.T) {
	client := camundatest.NewJobClient()
	h := NewErrorHandler(&recordingLogger{})
	err := NewWarehouseQueryFailedError("competitor_tracking", stderrors.New("io"))

	retries := int32(3)
	for attempt := 0; attempt < 3; attempt++ {
		h.HandleJobError(context.Background(), client, job(retries), err)
		if failed := client.Failed(); len(failed) == attempt+1 {
			retries = failed[attempt].Retries
		}
	}

	failed := client.Failed()
	require.Len(t, failed, 2)
	assert.Equal(t, int32(2), failed[0].Retries)
	assert.Equal(t, int32(1), failed[1].Retries)

	thrown := client.Thrown()
	require.Len(t, thrown, 1)
	assert.Equal(t, "WAREHOUSE_QUERY_FAILED", thrown[0].ErrorCode)
}

// ==========================
// Command Content
// ==========================

func TestHandleJobError_FailCarriesVariables(t *testing.T) {
	client := camundatest.NewJobClient()
	h := NewErrorHandler(&recordingLogger{})

	h.HandleJobError(context.Background(), client, job(3), NewWarehouseConnectionFailedError(stderrors.New("refused")))

	failed := client.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, int64(42), failed[0].JobKey)
	assert.Equal(t, "Warehouse connection error", failed[0].ErrorMessage)

	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(failed[0].Variables), &vars))
	assert.Equal(t, "WAREHOUSE_CONNECTION_FAILED", vars["errorCode"])
	assert.Equal(t, true, vars["retryable"])
	assert.Empty(t, client.Thrown())
}

func TestHandleJobError_NonRetryableThrows(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"byte budget", NewByteBudgetExceededError("competitor_tracking", 10, 5), "BYTE_BUDGET_EXCEEDED"},
		{"rejected query", NewWarehouseQueryRejectedError("campaign_performance", stderrors.New("syntax")), "WAREHOUSE_QUERY_FAILED"},
		{"plain error", stderrors.New("boom"), "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := camundatest.NewJobClient()
			NewErrorHandler(&recordingLogger{}).HandleJobError(context.Background(), client, job(3), tt.err)

			assert.Empty(t, client.Failed())
			thrown := client.Thrown()
			require.Len(t, thrown, 1)
			assert.Equal(t, tt.code, thrown[0].ErrorCode)
			assert.Contains(t, thrown[0].Variables, "originalErrorCode")
		})
	}
}

func TestHandleJobError_LogsSendFailure(t *testing.T) {
	client := camundatest.NewJobClient()
	client.SendErr = stderrors.New("gateway unavailable")
	log := &recordingLogger{}

	NewErrorHandler(log).HandleJobError(context.Background(), client, job(3), NewInvalidRequestError("limit"))

	require.Len(t, log.messages, 2)
	assert.Equal(t, "pricing job failed", log.messages[0])
	assert.Equal(t, "failed to send job command", log.messages[1])
	assert.Equal(t, "gateway unavailable", log.fields[1]["error"])
}
