// internal/models/analysis.go
package models

const (
	MaxInsights        = 10
	MaxRecommendations = 5
	MaxAlerts          = 5
)

// AnalysisResult carries the rule-derived messages for one record set.
type AnalysisResult struct {
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
	Alerts          []string `json:"alerts"`
}

// Truncate caps every list at its maximum by keeping the prefix.
func (r AnalysisResult) Truncate() AnalysisResult {
	return AnalysisResult{
		Insights:        prefix(r.Insights, MaxInsights),
		Recommendations: prefix(r.Recommendations, MaxRecommendations),
		Alerts:          prefix(r.Alerts, MaxAlerts),
	}
}

func prefix(items []string, n int) []string {
	if items == nil {
		return []string{}
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}

// SummaryStats maps metric names to numeric or string values.
type SummaryStats map[string]interface{}

// Outcome is a computed value plus the causes that degraded it. An outcome
// without causes is complete.
type Outcome[T any] struct {
	Value  T
	Causes []error
}

// Degraded reports whether any step failed while computing Value.
func (o Outcome[T]) Degraded() bool {
	return len(o.Causes) > 0
}
