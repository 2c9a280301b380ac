// internal/pricing/summary/summary.go
package summary

import (
	"errors"
	"fmt"
	"math"
	"time"

	"pricing-intel/internal/models"
	"pricing-intel/internal/pricing/thresholds"
)

var (
	ErrPanic           = errors.New("summary calculation panicked")
	ErrUnknownCategory = errors.New("no summary schema for category")
)

const (
	KeyTotalRecords = "total_records"
	KeyQueryType    = "query_type"
	KeyTimestamp    = "timestamp"
)

// Calculator computes the per-category rollups of a record set.
type Calculator struct {
	thresholds thresholds.Set
	now        func() time.Time
	schemas    map[models.Category]func(models.RecordSet) models.SummaryStats
}

func NewCalculator(t thresholds.Set) *Calculator {
	c := &Calculator{thresholds: t, now: time.Now}
	c.schemas = map[models.Category]func(models.RecordSet) models.SummaryStats{
		models.CategoryCompetitorTracking:  func(s models.RecordSet) models.SummaryStats { return c.competitor(s.Competitor) },
		models.CategoryCampaignPerformance: func(s models.RecordSet) models.SummaryStats { return campaign(s.Campaign) },
		models.CategoryPriceElasticity:     func(s models.RecordSet) models.SummaryStats { return elasticity(s.Elasticity) },
		models.CategoryPromotionalCalendar: func(s models.RecordSet) models.SummaryStats { return promotion(s.Promotion) },
	}
	return c
}

// Summarize always reports total_records. When the category fields cannot be
// computed the outcome is degraded and carries only the common fields.
func (c *Calculator) Summarize(set models.RecordSet) (out models.Outcome[models.SummaryStats]) {
	total := set.Len()
	if total == 0 {
		return models.Outcome[models.SummaryStats]{Value: models.SummaryStats{KeyTotalRecords: 0}}
	}

	stats := models.SummaryStats{
		KeyTotalRecords: total,
		KeyQueryType:    string(set.Category),
		KeyTimestamp:    c.now().UTC().Format(time.RFC3339),
	}
	out.Value = stats

	defer func() {
		if p := recover(); p != nil {
			out.Causes = append(out.Causes, fmt.Errorf("%w: %v", ErrPanic, p))
		}
	}()

	schema, ok := c.schemas[set.Category]
	if !ok {
		out.Causes = append(out.Causes, fmt.Errorf("%w: %s", ErrUnknownCategory, set.Category))
		return out
	}
	for k, v := range schema(set) {
		stats[k] = v
	}
	return out
}

func (c *Calculator) competitor(rows []models.CompetitorRecord) models.SummaryStats {
	competitors := make(map[string]struct{})
	markets := make(map[string]struct{})
	var gapSum float64
	advantages := 0
	for _, r := range rows {
		competitors[r.Competitor] = struct{}{}
		markets[r.Market] = struct{}{}
		g := 0.0
		if r.PriceGapPct != nil {
			g = *r.PriceGapPct
		}
		gapSum += g
		if g <= c.thresholds.PriceAdvantage {
			advantages++
		}
	}
	return models.SummaryStats{
		"unique_competitors":     len(competitors),
		"unique_markets":         len(markets),
		"avg_price_gap":          round2(mean(gapSum, len(rows))),
		"competitive_advantages": advantages,
	}
}

func campaign(rows []models.CampaignRecord) models.SummaryStats {
	names := make(map[string]struct{})
	var revenue, cost, roi float64
	for _, r := range rows {
		names[r.CampaignName] = struct{}{}
		revenue += r.RevenueGenerated
		cost += r.CampaignCost
		roi += r.ROIPct
	}
	return models.SummaryStats{
		"unique_campaigns": len(names),
		"total_revenue":    round2(revenue),
		"total_cost":       round2(cost),
		"avg_roi":          round2(mean(roi, len(rows))),
	}
}

func elasticity(rows []models.ElasticityRecord) models.SummaryStats {
	markets := make(map[string]struct{})
	var sum float64
	increases := 0
	for _, r := range rows {
		markets[r.Market] = struct{}{}
		sum += r.ElasticityCoefficient
		if r.Recommendation == models.RecommendationIncreasePrice {
			increases++
		}
	}
	return models.SummaryStats{
		"price_points_analyzed":        len(rows),
		"unique_markets":               len(markets),
		"avg_elasticity":               round2(mean(sum, len(rows))),
		"price_increase_opportunities": increases,
	}
}

func promotion(rows []models.PromotionRecord) models.SummaryStats {
	markets := make(map[string]struct{})
	var budget, uplift float64
	for _, r := range rows {
		markets[r.TargetMarket] = struct{}{}
		budget += r.BudgetUSD
		uplift += r.ExpectedUpliftPct
	}
	return models.SummaryStats{
		"planned_campaigns":   len(rows),
		"total_budget":        round2(budget),
		"avg_expected_uplift": round2(mean(uplift, len(rows))),
		"unique_markets":      len(markets),
	}
}

func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
