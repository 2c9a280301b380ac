// internal/workers/pricing/pricing-intel-query/models.go
package pricingintelquery

import "pricing-intel/internal/models"

const (
	Agent = "pricing_intel"

	// UnknownQueryType is reported when a request fails before its category
	// was resolved.
	UnknownQueryType = "unknown"
)

// Request is the inbound query. Every field is optional.
type Request struct {
	Question  string `json:"question,omitempty"`
	QueryType string `json:"query_type,omitempty"`
	Limit     *int   `json:"limit,omitempty"`
}

type Parameters struct {
	Limit int `json:"limit"`
}

type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Metadata struct {
	BytesProcessed int64  `json:"bytes_processed"`
	BytesBilled    int64  `json:"bytes_billed"`
	CacheHit       bool   `json:"cache_hit"`
	Dataset        string `json:"dataset"`
	Location       string `json:"location"`
	Window         Window `json:"window"`
}

// ResponseEnvelope is the success body.
type ResponseEnvelope struct {
	Success         bool                `json:"success"`
	RequestID       string              `json:"request_id"`
	Agent           string              `json:"agent"`
	QueryType       string              `json:"query_type"`
	Parameters      Parameters          `json:"parameters"`
	Summary         models.SummaryStats `json:"summary"`
	Insights        []string            `json:"insights"`
	Recommendations []string            `json:"recommendations"`
	Alerts          []string            `json:"alerts"`
	RowCount        int                 `json:"row_count"`
	Rows            interface{}         `json:"rows"`
	Metadata        Metadata            `json:"metadata"`
}

// ErrorEnvelope is the failure body.
type ErrorEnvelope struct {
	Success   bool   `json:"success"`
	RequestID string `json:"request_id,omitempty"`
	Error     string `json:"error"`
	ErrorType string `json:"error_type"`
	Agent     string `json:"agent"`
	QueryType string `json:"query_type"`
}
