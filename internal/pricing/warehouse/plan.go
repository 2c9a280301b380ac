// internal/pricing/warehouse/plan.go
package warehouse

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const explainPrefix = "EXPLAIN (FORMAT JSON) "

type planNode struct {
	NodeType  string     `json:"Node Type"`
	PlanRows  float64    `json:"Plan Rows"`
	PlanWidth float64    `json:"Plan Width"`
	Plans     []planNode `json:"Plans"`
}

type explainOutput []struct {
	Plan planNode `json:"Plan"`
}

// EstimateScanBytes sums rows times width over every scan node of an
// EXPLAIN (FORMAT JSON) plan.
func EstimateScanBytes(raw []byte) (int64, error) {
	var out explainOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return 0, fmt.Errorf("parse plan: %w", err)
	}
	if len(out) == 0 {
		return 0, fmt.Errorf("parse plan: empty plan")
	}

	var total float64
	for _, p := range out {
		total += scanBytes(p.Plan)
	}
	return int64(total), nil
}

func scanBytes(n planNode) float64 {
	var total float64
	if strings.HasSuffix(n.NodeType, "Scan") {
		total += n.PlanRows * n.PlanWidth
	}
	for _, child := range n.Plans {
		total += scanBytes(child)
	}
	return total
}

var labelUnsafe = regexp.MustCompile(`[^a-z0-9_\-]`)

// labelComment renders labels as a leading SQL comment so they show up in
// pg_stat_activity and the warehouse query log.
func labelComment(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}

	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, sanitizeLabel(k)+"="+sanitizeLabel(labels[k]))
	}
	return "/* " + strings.Join(parts, " ") + " */ "
}

func sanitizeLabel(s string) string {
	return labelUnsafe.ReplaceAllString(strings.ToLower(s), "_")
}
