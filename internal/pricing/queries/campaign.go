// internal/pricing/queries/campaign.go
package queries

import (
	"fmt"

	"pricing-intel/internal/models"
	"pricing-intel/internal/pricing/thresholds"
)

// segment_cost_per_acquisition keeps the reference definition: new customers
// per 1000 USD of campaign cost.
const campaignPerformanceSQL = `
WITH campaign_metrics AS (
    SELECT
        cp.campaign_date,
        cp.campaign_name,
        cp.campaign_type,
        cp.target_audience,
        cp.discount_pct,
        cp.original_price_usd,
        cp.campaign_price_usd,
        cp.units_sold,
        cp.revenue_generated,
        cp.campaign_cost,
        cp.roi_pct,
        cp.customer_acquisition,
        cp.repeat_purchase_rate,
        cp.market_segment
    FROM %[1]s cp
    WHERE cp.campaign_date BETWEEN $1::date AND $2::date
),
campaign_analysis AS (
    SELECT
        campaign_type,
        target_audience,
        market_segment,
        COUNT(*) AS campaigns_executed,
        AVG(roi_pct) AS avg_roi_pct,
        AVG(discount_pct) AS avg_discount_pct,
        SUM(revenue_generated) AS total_revenue_generated,
        SUM(campaign_cost) AS total_campaign_cost,
        SUM(customer_acquisition) AS total_new_customers,
        AVG(repeat_purchase_rate) AS avg_repeat_purchase_rate,
        SUM(units_sold) AS total_units_sold,
        SUM(revenue_generated)::numeric / NULLIF(SUM(campaign_cost), 0) AS revenue_cost_ratio,
        SUM(customer_acquisition)::numeric / NULLIF(SUM(campaign_cost), 0) * 1000 AS cost_per_acquisition_usd
    FROM campaign_metrics
    GROUP BY campaign_type, target_audience, market_segment
),
campaign_rankings AS (
    SELECT
        cm.*,
        ca.campaigns_executed,
        ROUND(ca.avg_roi_pct::numeric, 1) AS segment_avg_roi,
        ROUND(ca.avg_discount_pct::numeric, 1) AS segment_avg_discount,
        ROUND(ca.total_revenue_generated::numeric, 2) AS segment_total_revenue,
        ROUND(ca.total_campaign_cost::numeric, 2) AS segment_total_cost,
        ca.total_new_customers,
        ROUND(ca.avg_repeat_purchase_rate::numeric, 1) AS segment_avg_repeat_rate,
        ca.total_units_sold,
        ROUND(ca.revenue_cost_ratio::numeric, 2) AS segment_revenue_cost_ratio,
        ROUND(ca.cost_per_acquisition_usd::numeric, 2) AS segment_cost_per_acquisition,
        RANK() OVER (ORDER BY ca.avg_roi_pct DESC) AS roi_rank,
        RANK() OVER (ORDER BY ca.total_revenue_generated DESC) AS revenue_rank,
        RANK() OVER (ORDER BY ca.cost_per_acquisition_usd ASC) AS efficiency_rank
    FROM campaign_metrics cm
    JOIN campaign_analysis ca ON cm.campaign_type = ca.campaign_type
        AND cm.target_audience = ca.target_audience
        AND cm.market_segment = ca.market_segment
)
SELECT
    campaign_date,
    campaign_name,
    campaign_type,
    target_audience,
    market_segment,
    discount_pct,
    original_price_usd,
    campaign_price_usd,
    units_sold,
    ROUND(revenue_generated::numeric, 2) AS revenue_generated,
    ROUND(campaign_cost::numeric, 2) AS campaign_cost,
    ROUND(roi_pct::numeric, 1) AS roi_pct,
    roi_pct AS raw_roi_pct,
    customer_acquisition,
    ROUND(repeat_purchase_rate::numeric, 1) AS repeat_purchase_rate,
    repeat_purchase_rate AS raw_repeat_purchase_rate,
    campaigns_executed,
    segment_avg_roi,
    segment_avg_discount,
    segment_total_revenue,
    segment_total_cost,
    total_new_customers,
    segment_avg_repeat_rate,
    total_units_sold,
    segment_revenue_cost_ratio,
    segment_cost_per_acquisition,
    roi_rank,
    revenue_rank,
    efficiency_rank
FROM campaign_rankings
ORDER BY campaign_rankings.roi_pct DESC NULLS LAST, campaign_rankings.revenue_generated DESC NULLS LAST
LIMIT $3`

// CampaignPerformance ranks marketing campaigns by ROI within their
// type, audience and segment.
type CampaignPerformance struct {
	sql        string
	thresholds thresholds.Set
}

func NewCampaignPerformance(dataset string, t thresholds.Set) *CampaignPerformance {
	return &CampaignPerformance{
		sql:        fmt.Sprintf(campaignPerformanceSQL, tableName(dataset, string(models.CategoryCampaignPerformance))),
		thresholds: t,
	}
}

func (b *CampaignPerformance) Category() models.Category {
	return models.CategoryCampaignPerformance
}

func (b *CampaignPerformance) Build() Query {
	return Query{
		Name:   string(models.CategoryCampaignPerformance),
		SQL:    b.sql,
		Params: windowParams(true),
	}
}

func (b *CampaignPerformance) Decode(records []map[string]interface{}) (models.RecordSet, error) {
	rows, err := decodeRecords(records, b.label)
	if err != nil {
		return models.RecordSet{}, err
	}
	return models.RecordSet{Category: models.CategoryCampaignPerformance, Campaign: rows}, nil
}

func (b *CampaignPerformance) label(r *models.CampaignRecord) {
	roi := pick(r.RawROIPct, r.ROIPct)
	r.PerformanceTier = performanceTier(b.thresholds, roi)
	r.DiscountEfficiency = discountEfficiency(b.thresholds, r.DiscountPct, roi)
	r.RetentionPerformance = retentionPerformance(b.thresholds, pick(r.RawRepeatPurchaseRate, r.RepeatPurchaseRate))
	r.AcquisitionEffectiveness = acquisitionEffectiveness(b.thresholds, r.CustomerAcquisition, r.SegmentCostPerAcquisition)
}
