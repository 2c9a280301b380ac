package summary

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricing-intel/internal/models"
	"pricing-intel/internal/pricing/thresholds"
)

var fixedNow = time.Date(2024, 12, 15, 9, 30, 0, 0, time.FixedZone("TRT", 3*3600))

func newTestCalculator() *Calculator {
	c := NewCalculator(thresholds.Default())
	c.now = func() time.Time { return fixedNow }
	return c
}

func gap(v float64) *float64 { return &v }

func TestSummarize_Empty(t *testing.T) {
	c := newTestCalculator()
	for _, cat := range models.Categories {
		out := c.Summarize(models.RecordSet{Category: cat})
		assert.False(t, out.Degraded())
		assert.Equal(t, models.SummaryStats{"total_records": 0}, out.Value)
	}
}

func TestSummarize_Competitor(t *testing.T) {
	out := newTestCalculator().Summarize(models.RecordSet{
		Category: models.CategoryCompetitorTracking,
		Competitor: []models.CompetitorRecord{
			{Competitor: "A", Market: "Turkey", PriceGapPct: gap(-20)},
			{Competitor: "B", Market: "Turkey", PriceGapPct: gap(-15)},
			{Competitor: "A", Market: "Germany", PriceGapPct: gap(10)},
			{Competitor: "C", Market: "Germany", PriceGapPct: nil},
		},
	})

	require.False(t, out.Degraded())
	assert.Equal(t, 4, out.Value["total_records"])
	assert.Equal(t, "competitor_tracking", out.Value["query_type"])
	assert.Equal(t, "2024-12-15T06:30:00Z", out.Value["timestamp"])
	assert.Equal(t, 3, out.Value["unique_competitors"])
	assert.Equal(t, 2, out.Value["unique_markets"])
	assert.Equal(t, -6.25, out.Value["avg_price_gap"])
	assert.Equal(t, 2, out.Value["competitive_advantages"])
}

func TestSummarize_Campaign(t *testing.T) {
	out := newTestCalculator().Summarize(models.RecordSet{
		Category: models.CategoryCampaignPerformance,
		Campaign: []models.CampaignRecord{
			{CampaignName: "Winter", RevenueGenerated: 1000.111, CampaignCost: 100, ROIPct: 500},
			{CampaignName: "Winter", RevenueGenerated: 500, CampaignCost: 50.556, ROIPct: 250},
			{CampaignName: "Flash", RevenueGenerated: 0, CampaignCost: 0, ROIPct: 0},
		},
	})

	assert.Equal(t, 2, out.Value["unique_campaigns"])
	assert.Equal(t, 1500.11, out.Value["total_revenue"])
	assert.Equal(t, 150.56, out.Value["total_cost"])
	assert.Equal(t, 250.0, out.Value["avg_roi"])
}

func TestSummarize_Elasticity(t *testing.T) {
	out := newTestCalculator().Summarize(models.RecordSet{
		Category: models.CategoryPriceElasticity,
		Elasticity: []models.ElasticityRecord{
			{Market: "Turkey", ElasticityCoefficient: 1.5, Recommendation: "Increase Price"},
			{Market: "Russia", ElasticityCoefficient: 2.25, Recommendation: "Maintain Price"},
			{Market: "Russia", ElasticityCoefficient: 0.5, Recommendation: "Increase Price"},
		},
	})

	assert.Equal(t, 3, out.Value["price_points_analyzed"])
	assert.Equal(t, 2, out.Value["unique_markets"])
	assert.Equal(t, 1.42, out.Value["avg_elasticity"])
	assert.Equal(t, 2, out.Value["price_increase_opportunities"])
}

func TestSummarize_Promotion(t *testing.T) {
	out := newTestCalculator().Summarize(models.RecordSet{
		Category: models.CategoryPromotionalCalendar,
		Promotion: []models.PromotionRecord{
			{TargetMarket: "Turkey", BudgetUSD: 15000, ExpectedUpliftPct: 40},
			{TargetMarket: "Kazakhstan", BudgetUSD: 30000.5, ExpectedUpliftPct: 25},
		},
	})

	assert.Equal(t, 2, out.Value["planned_campaigns"])
	assert.Equal(t, 45000.5, out.Value["total_budget"])
	assert.Equal(t, 32.5, out.Value["avg_expected_uplift"])
	assert.Equal(t, 2, out.Value["unique_markets"])
}

func TestSummarize_UnknownCategoryDegrades(t *testing.T) {
	c := newTestCalculator()
	delete(c.schemas, models.CategoryCompetitorTracking)

	out := c.Summarize(models.RecordSet{
		Category:   models.CategoryCompetitorTracking,
		Competitor: []models.CompetitorRecord{{}},
	})
	require.True(t, out.Degraded())
	assert.True(t, errors.Is(out.Causes[0], ErrUnknownCategory))
	assert.Equal(t, 1, out.Value["total_records"])
}

func TestSummarize_PanicKeepsCommonFields(t *testing.T) {
	c := newTestCalculator()
	c.schemas[models.CategoryPromotionalCalendar] = func(s models.RecordSet) models.SummaryStats {
		_ = s.Promotion[5]
		return nil
	}

	out := c.Summarize(models.RecordSet{
		Category:  models.CategoryPromotionalCalendar,
		Promotion: []models.PromotionRecord{{BudgetUSD: 10}},
	})
	require.True(t, out.Degraded())
	assert.True(t, errors.Is(out.Causes[0], ErrPanic))
	assert.Equal(t, models.SummaryStats{
		"total_records": 1,
		"query_type":    "promotional_calendar",
		"timestamp":     "2024-12-15T06:30:00Z",
	}, out.Value)
}

func TestSummarize_JSONRoundTrip(t *testing.T) {
	out := newTestCalculator().Summarize(models.RecordSet{
		Category: models.CategoryCampaignPerformance,
		Campaign: []models.CampaignRecord{
			{CampaignName: "A", RevenueGenerated: 1234.5678, CampaignCost: 99.991, ROIPct: 333.333},
			{CampaignName: "B", RevenueGenerated: 10.005, CampaignCost: 1, ROIPct: 100.1},
		},
	})

	raw, err := json.Marshal(out.Value)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	for key, want := range out.Value {
		switch v := want.(type) {
		case float64:
			assert.InDelta(t, v, decoded[key], 0.005, key)
		case int:
			assert.InDelta(t, float64(v), decoded[key], 0, key)
		case string:
			assert.Equal(t, v, decoded[key], key)
		}
	}
}

func TestMeanAndRound(t *testing.T) {
	assert.Equal(t, 0.0, mean(10, 0))
	assert.Equal(t, 2.5, mean(5, 2))
	assert.Equal(t, 1.24, round2(1.2351))
	assert.Equal(t, 0.0, round2(0))
}
