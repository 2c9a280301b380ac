// internal/pricing/queries/promotional.go
package queries

import (
	"fmt"

	"pricing-intel/internal/models"
	"pricing-intel/internal/pricing/thresholds"
)

// Promotions are selected from the window start onwards; the window end does
// not apply to planned campaigns.
const promotionalCalendarSQL = `
WITH promotional_pipeline AS (
    SELECT
        pc.promo_id,
        pc.start_date,
        pc.end_date,
        pc.campaign_name,
        pc.target_market,
        pc.product_category,
        pc.discount_type,
        pc.discount_value,
        pc.min_purchase_usd,
        pc.target_audience,
        pc.expected_uplift_pct,
        pc.budget_usd,
        pc.channel,
        pc.seasonality_factor,
        pc.competitive_response,
        to_date(pc.end_date::text, 'YYYY-MM-DD') - to_date(pc.start_date::text, 'YYYY-MM-DD') AS campaign_duration_days
    FROM %[1]s pc
    WHERE to_date(pc.start_date::text, 'YYYY-MM-DD') >= $1::date
),
calendar_insights AS (
    SELECT
        target_market,
        product_category,
        COUNT(*) AS planned_campaigns,
        SUM(budget_usd) AS total_market_budget,
        AVG(expected_uplift_pct) AS avg_expected_uplift,
        AVG(discount_value) AS avg_discount_value,
        AVG(campaign_duration_days) AS avg_campaign_duration,
        COUNT(CASE WHEN competitive_response = '%[2]s' THEN 1 END) AS high_competition_campaigns,
        COUNT(CASE WHEN expected_uplift_pct >= %[3]s THEN 1 END) AS high_impact_campaigns,
        COUNT(DISTINCT channel) AS channels_utilized,
        COUNT(DISTINCT target_audience) AS audience_segments,
        MAX(expected_uplift_pct) AS max_expected_uplift,
        MIN(budget_usd) AS min_campaign_budget,
        MAX(budget_usd) AS max_campaign_budget
    FROM promotional_pipeline
    GROUP BY target_market, product_category
),
promo_rankings AS (
    SELECT
        pp.*,
        ci.planned_campaigns,
        ROUND(ci.total_market_budget::numeric, 2) AS market_total_budget,
        ROUND(ci.avg_expected_uplift::numeric, 1) AS market_avg_expected_uplift,
        ROUND(ci.avg_discount_value::numeric, 1) AS market_avg_discount,
        ROUND(ci.avg_campaign_duration::numeric, 0) AS market_avg_duration_days,
        ci.high_competition_campaigns,
        ci.high_impact_campaigns,
        ci.channels_utilized,
        ci.audience_segments,
        ROUND(ci.max_expected_uplift::numeric, 1) AS market_max_uplift,
        ROUND(ci.min_campaign_budget::numeric, 2) AS market_min_budget,
        ROUND(ci.max_campaign_budget::numeric, 2) AS market_max_budget,
        RANK() OVER (ORDER BY pp.expected_uplift_pct DESC, pp.budget_usd ASC) AS impact_efficiency_rank,
        RANK() OVER (PARTITION BY pp.target_market ORDER BY pp.expected_uplift_pct DESC) AS market_priority_rank
    FROM promotional_pipeline pp
    JOIN calendar_insights ci ON pp.target_market = ci.target_market AND pp.product_category = ci.product_category
)
SELECT
    promo_id,
    start_date,
    end_date,
    campaign_name,
    target_market,
    product_category,
    discount_type,
    discount_value,
    min_purchase_usd,
    target_audience,
    expected_uplift_pct,
    budget_usd,
    channel,
    seasonality_factor,
    competitive_response,
    campaign_duration_days,
    planned_campaigns,
    market_total_budget,
    market_avg_expected_uplift,
    market_avg_discount,
    market_avg_duration_days,
    high_competition_campaigns,
    high_impact_campaigns,
    channels_utilized,
    audience_segments,
    market_max_uplift,
    market_min_budget,
    market_max_budget,
    impact_efficiency_rank,
    market_priority_rank
FROM promo_rankings
ORDER BY to_date(promo_rankings.start_date::text, 'YYYY-MM-DD'), promo_rankings.expected_uplift_pct DESC NULLS LAST
LIMIT $2`

// PromotionalCalendar plans upcoming promotions per target market and
// product category.
type PromotionalCalendar struct {
	sql        string
	thresholds thresholds.Set
}

func NewPromotionalCalendar(dataset string, t thresholds.Set) *PromotionalCalendar {
	return &PromotionalCalendar{
		sql: fmt.Sprintf(promotionalCalendarSQL,
			tableName(dataset, string(models.CategoryPromotionalCalendar)),
			responseHigh, num(t.UpliftExcellent),
		),
		thresholds: t,
	}
}

func (b *PromotionalCalendar) Category() models.Category {
	return models.CategoryPromotionalCalendar
}

func (b *PromotionalCalendar) Build() Query {
	return Query{
		Name:   string(models.CategoryPromotionalCalendar),
		SQL:    b.sql,
		Params: windowParams(false),
	}
}

func (b *PromotionalCalendar) Decode(records []map[string]interface{}) (models.RecordSet, error) {
	rows, err := decodeRecords(records, b.label)
	if err != nil {
		return models.RecordSet{}, err
	}
	return models.RecordSet{Category: models.CategoryPromotionalCalendar, Promotion: rows}, nil
}

func (b *PromotionalCalendar) label(r *models.PromotionRecord) {
	r.PriorityTier = priorityTier(b.thresholds, r.ExpectedUpliftPct, r.BudgetUSD)
	r.CompetitiveIntensity = competitiveIntensity(b.thresholds, r.CompetitiveResponse, r.ExpectedUpliftPct)
	r.DiscountStrategy = discountStrategy(b.thresholds, r.DiscountType, r.DiscountValue)
	r.BudgetScale = budgetScale(b.thresholds, r.BudgetUSD)
	r.DurationStrategy = durationStrategy(b.thresholds, r.CampaignDurationDays)
}
