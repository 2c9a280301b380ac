// internal/pricing/queries/elasticity.go
package queries

import (
	"fmt"

	"pricing-intel/internal/models"
	"pricing-intel/internal/pricing/thresholds"
)

const priceElasticitySQL = `
WITH elasticity_analysis AS (
    SELECT
        pe.analysis_date,
        pe.product_category,
        pe.market,
        pe.price_point_usd,
        pe.demand_quantity,
        pe.elasticity_coefficient,
        pe.customer_segment,
        pe.sensitivity_level,
        pe.optimal_price_usd,
        pe.revenue_impact_pct,
        pe.margin_impact_pct,
        pe.recommendation
    FROM %[1]s pe
    WHERE pe.analysis_date BETWEEN $1::date AND $2::date
),
optimization_insights AS (
    SELECT
        market,
        product_category,
        customer_segment,
        AVG(elasticity_coefficient) AS avg_elasticity_coefficient,
        COUNT(*) AS price_points_tested,
        AVG(revenue_impact_pct) AS avg_revenue_impact_pct,
        AVG(margin_impact_pct) AS avg_margin_impact_pct,
        COUNT(CASE WHEN recommendation = '%[2]s' THEN 1 END) AS price_increase_recommendations,
        COUNT(CASE WHEN recommendation = '%[3]s' THEN 1 END) AS price_decrease_recommendations,
        COUNT(CASE WHEN recommendation = '%[4]s' THEN 1 END) AS maintain_price_recommendations,
        AVG(optimal_price_usd) AS avg_optimal_price,
        MAX(revenue_impact_pct) AS max_revenue_impact,
        MIN(revenue_impact_pct) AS min_revenue_impact
    FROM elasticity_analysis
    GROUP BY market, product_category, customer_segment
),
price_rankings AS (
    SELECT
        ea.*,
        oi.avg_elasticity_coefficient,
        oi.price_points_tested,
        ROUND(oi.avg_revenue_impact_pct::numeric, 1) AS segment_avg_revenue_impact,
        ROUND(oi.avg_margin_impact_pct::numeric, 1) AS segment_avg_margin_impact,
        oi.price_increase_recommendations,
        oi.price_decrease_recommendations,
        oi.maintain_price_recommendations,
        ROUND(oi.avg_optimal_price::numeric, 2) AS segment_avg_optimal_price,
        ROUND(oi.max_revenue_impact::numeric, 1) AS segment_max_revenue_impact,
        ROUND(oi.min_revenue_impact::numeric, 1) AS segment_min_revenue_impact,
        RANK() OVER (ORDER BY ABS(ea.revenue_impact_pct) DESC) AS revenue_impact_rank,
        RANK() OVER (PARTITION BY ea.market ORDER BY ea.elasticity_coefficient DESC) AS market_sensitivity_rank
    FROM elasticity_analysis ea
    JOIN optimization_insights oi ON ea.market = oi.market
        AND ea.product_category = oi.product_category
        AND ea.customer_segment = oi.customer_segment
)
SELECT
    analysis_date,
    product_category,
    market,
    customer_segment,
    price_point_usd,
    demand_quantity,
    ROUND(elasticity_coefficient::numeric, 2) AS elasticity_coefficient,
    elasticity_coefficient AS raw_elasticity_coefficient,
    sensitivity_level,
    optimal_price_usd,
    ROUND(revenue_impact_pct::numeric, 1) AS revenue_impact_pct,
    revenue_impact_pct AS raw_revenue_impact_pct,
    ROUND(margin_impact_pct::numeric, 1) AS margin_impact_pct,
    recommendation,
    ROUND(avg_elasticity_coefficient::numeric, 2) AS segment_avg_elasticity,
    price_points_tested,
    segment_avg_revenue_impact,
    segment_avg_margin_impact,
    price_increase_recommendations,
    price_decrease_recommendations,
    maintain_price_recommendations,
    segment_avg_optimal_price,
    segment_max_revenue_impact,
    segment_min_revenue_impact,
    revenue_impact_rank,
    market_sensitivity_rank
FROM price_rankings
ORDER BY ABS(price_rankings.revenue_impact_pct) DESC NULLS LAST, price_rankings.elasticity_coefficient DESC NULLS LAST
LIMIT $3`

// PriceElasticity reports demand sensitivity and optimal price points per
// market, category and customer segment.
type PriceElasticity struct {
	sql        string
	thresholds thresholds.Set
}

func NewPriceElasticity(dataset string, t thresholds.Set) *PriceElasticity {
	return &PriceElasticity{
		sql: fmt.Sprintf(priceElasticitySQL,
			tableName(dataset, string(models.CategoryPriceElasticity)),
			recIncrease, recDecrease, recMaintain,
		),
		thresholds: t,
	}
}

func (b *PriceElasticity) Category() models.Category {
	return models.CategoryPriceElasticity
}

func (b *PriceElasticity) Build() Query {
	return Query{
		Name:   string(models.CategoryPriceElasticity),
		SQL:    b.sql,
		Params: windowParams(true),
	}
}

func (b *PriceElasticity) Decode(records []map[string]interface{}) (models.RecordSet, error) {
	rows, err := decodeRecords(records, b.label)
	if err != nil {
		return models.RecordSet{}, err
	}
	return models.RecordSet{Category: models.CategoryPriceElasticity, Elasticity: rows}, nil
}

func (b *PriceElasticity) label(r *models.ElasticityRecord) {
	impact := pick(r.RawRevenueImpactPct, r.RevenueImpactPct)
	r.SensitivityClass = sensitivityClass(b.thresholds, pick(r.RawElasticityCoefficient, r.ElasticityCoefficient))
	r.PricingStrategy = pricingStrategy(b.thresholds, r.Recommendation, impact)
	r.RevenueOpportunity = revenueOpportunity(b.thresholds, impact)
	r.PriceOptimizationStatus = priceOptimizationStatus(b.thresholds, r.OptimalPriceUSD, r.PricePointUSD)
}
