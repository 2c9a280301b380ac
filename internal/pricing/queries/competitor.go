// internal/pricing/queries/competitor.go
package queries

import (
	"fmt"

	"pricing-intel/internal/models"
	"pricing-intel/internal/pricing/thresholds"
)

const competitorTrackingSQL = `
WITH competitor_insights AS (
    SELECT
        ct.tracking_date,
        ct.competitor,
        ct.product_category,
        ct.market,
        ct.suvari_price_usd,
        ct.competitor_price_usd,
        ct.price_gap_pct,
        UPPER(ct.promotion_flag::text) IN ('TRUE', 'T') AS promotion_flag,
        ct.quality_comparison,
        ct.brand_positioning,
        ct.market_share_impact
    FROM %[1]s ct
    WHERE ct.tracking_date BETWEEN $1::date AND $2::date
),
market_position AS (
    SELECT
        market,
        product_category,
        COUNT(DISTINCT competitor) AS competitors_tracked,
        AVG(price_gap_pct) AS avg_price_gap_pct,
        COUNT(CASE WHEN market_share_impact IN ('%[2]s', '%[3]s') THEN 1 END) AS positive_positioning_count,
        COUNT(CASE WHEN promotion_flag THEN 1 END) AS competitor_promotions_active,
        COUNT(CASE WHEN price_gap_pct <= %[4]s THEN 1 END) AS price_advantages,
        COUNT(CASE WHEN price_gap_pct >= %[5]s THEN 1 END) AS price_disadvantages,
        AVG(suvari_price_usd) AS avg_suvari_price,
        AVG(competitor_price_usd) AS avg_competitor_price
    FROM competitor_insights
    GROUP BY market, product_category
),
competitive_rankings AS (
    SELECT
        ci.*,
        mp.competitors_tracked,
        mp.avg_price_gap_pct,
        mp.positive_positioning_count,
        mp.competitor_promotions_active,
        mp.price_advantages,
        mp.price_disadvantages,
        ROUND(mp.avg_suvari_price::numeric, 2) AS market_avg_suvari_price,
        ROUND(mp.avg_competitor_price::numeric, 2) AS market_avg_competitor_price,
        RANK() OVER (PARTITION BY ci.market ORDER BY ci.price_gap_pct ASC) AS price_competitiveness_rank,
        RANK() OVER (ORDER BY ABS(ci.price_gap_pct)) AS overall_competitiveness_rank
    FROM competitor_insights ci
    JOIN market_position mp ON ci.market = mp.market AND ci.product_category = mp.product_category
)
SELECT
    tracking_date,
    competitor,
    product_category,
    market,
    suvari_price_usd,
    competitor_price_usd,
    ROUND(price_gap_pct::numeric, 1) AS price_gap_pct,
    price_gap_pct AS raw_price_gap_pct,
    promotion_flag,
    quality_comparison,
    brand_positioning,
    market_share_impact,
    competitors_tracked,
    ROUND(avg_price_gap_pct::numeric, 1) AS market_avg_price_gap,
    positive_positioning_count,
    competitor_promotions_active,
    price_advantages,
    price_disadvantages,
    market_avg_suvari_price,
    market_avg_competitor_price,
    price_competitiveness_rank,
    overall_competitiveness_rank
FROM competitive_rankings
ORDER BY tracking_date DESC, ABS(competitive_rankings.price_gap_pct) DESC NULLS LAST
LIMIT $3`

// CompetitorTracking compares own prices with tracked competitors per market
// and product category.
type CompetitorTracking struct {
	sql        string
	thresholds thresholds.Set
}

func NewCompetitorTracking(dataset string, t thresholds.Set) *CompetitorTracking {
	return &CompetitorTracking{
		sql: fmt.Sprintf(competitorTrackingSQL,
			tableName(dataset, string(models.CategoryCompetitorTracking)),
			impactPositive, impactVeryPositive,
			num(t.PriceAdvantage), num(t.PriceDisadvantage),
		),
		thresholds: t,
	}
}

func (b *CompetitorTracking) Category() models.Category {
	return models.CategoryCompetitorTracking
}

func (b *CompetitorTracking) Build() Query {
	return Query{
		Name:   string(models.CategoryCompetitorTracking),
		SQL:    b.sql,
		Params: windowParams(true),
	}
}

func (b *CompetitorTracking) Decode(records []map[string]interface{}) (models.RecordSet, error) {
	rows, err := decodeRecords(records, b.label)
	if err != nil {
		return models.RecordSet{}, err
	}
	return models.RecordSet{Category: models.CategoryCompetitorTracking, Competitor: rows}, nil
}

func (b *CompetitorTracking) label(r *models.CompetitorRecord) {
	gap := r.RawPriceGapPct
	if gap == nil {
		gap = r.PriceGapPct
	}
	r.CompetitivePosition = competitivePosition(b.thresholds, gap, r.MarketShareImpact)
	r.PromotionalEnvironment = promotionalEnvironment(r.PromotionFlag, gap)
	r.ValueProposition = valueProposition(r.QualityComparison, gap)
	r.BrandPositionStrength = brandPositionStrength(r.BrandPositioning, r.MarketShareImpact)
}
