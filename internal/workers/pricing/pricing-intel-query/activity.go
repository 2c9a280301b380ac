// internal/workers/pricing/pricing-intel-query/activity.go
package pricingintelquery

import (
	"encoding/json"
	"fmt"

	"pricing-intel/internal/common/errors"
	"pricing-intel/internal/common/validation"
	"pricing-intel/pkg/registry"
)

const activityVersion = "1.0.0"

var outputSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"success", "agent", "query_type"},
	"properties": map[string]interface{}{
		"success":         map[string]interface{}{"type": "boolean"},
		"request_id":      map[string]interface{}{"type": "string"},
		"agent":           map[string]interface{}{"type": "string"},
		"query_type":      map[string]interface{}{"type": "string"},
		"parameters":      map[string]interface{}{"type": "object"},
		"summary":         map[string]interface{}{"type": "object"},
		"insights":        map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		"recommendations": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		"alerts":          map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		"row_count":       map[string]interface{}{"type": "integer"},
		"rows":            map[string]interface{}{"type": "array"},
		"metadata":        map[string]interface{}{"type": "object"},
	},
}

// Activity describes the job type for the activity registry.
func Activity(cfg *Config, maxRetries int) (registry.Activity, error) {
	var input map[string]interface{}
	if err := json.Unmarshal([]byte(validation.PricingRequestSchema), &input); err != nil {
		return registry.Activity{}, fmt.Errorf("decode request schema: %w", err)
	}

	return registry.Activity{
		ID:                   TaskType,
		DisplayName:          "Pricing Intel Query",
		Description:          "Resolves a pricing question to one analysis, runs it on the warehouse and returns summary, insights, recommendations and alerts",
		Category:             "pricing",
		Version:              activityVersion,
		TaskType:             TaskType,
		ImplementationStatus: "completed",
		InputSchema:          input,
		OutputSchema:         outputSchema,
		ErrorCodes: []string{
			string(errors.ErrCodeInvalidRequest),
			string(errors.ErrCodeWarehouseConnectionFailed),
			string(errors.ErrCodeWarehouseQueryFailed),
			string(errors.ErrCodeQueryTimeout),
			string(errors.ErrCodeByteBudgetExceeded),
			string(errors.ErrCodeRecordDecodeFailed),
			string(errors.ErrCodeInternal),
		},
		Timeout:   cfg.Timeout.String(),
		Retries:   maxRetries,
		Workflows: []string{"pricing-intelligence"},
		Tags:      []string{"pricing", "warehouse", Agent},
	}, nil
}
