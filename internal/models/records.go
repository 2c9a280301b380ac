// internal/models/records.go
package models

// Record fields are decoded from warehouse columns via the mapstructure tag; the
// json tag keeps the column name in API responses.

// CompetitorRecord is one row of the competitor tracking query.
type CompetitorRecord struct {
	TrackingDate      string   `mapstructure:"tracking_date" json:"tracking_date"`
	Competitor        string   `mapstructure:"competitor" json:"competitor"`
	ProductCategory   string   `mapstructure:"product_category" json:"product_category"`
	Market            string   `mapstructure:"market" json:"market"`
	BrandPriceUSD     float64  `mapstructure:"suvari_price_usd" json:"suvari_price_usd"`
	CompetitorPrice   float64  `mapstructure:"competitor_price_usd" json:"competitor_price_usd"`
	PriceGapPct       *float64 `mapstructure:"price_gap_pct" json:"price_gap_pct"`
	PromotionFlag     bool     `mapstructure:"promotion_flag" json:"promotion_flag"`
	QualityComparison string   `mapstructure:"quality_comparison" json:"quality_comparison"`
	BrandPositioning  string   `mapstructure:"brand_positioning" json:"brand_positioning"`
	MarketShareImpact string   `mapstructure:"market_share_impact" json:"market_share_impact"`

	CompetitorsTracked         int64   `mapstructure:"competitors_tracked" json:"competitors_tracked"`
	MarketAvgPriceGap          float64 `mapstructure:"market_avg_price_gap" json:"market_avg_price_gap"`
	PositivePositioningCount   int64   `mapstructure:"positive_positioning_count" json:"positive_positioning_count"`
	CompetitorPromotionsActive int64   `mapstructure:"competitor_promotions_active" json:"competitor_promotions_active"`
	PriceAdvantages            int64   `mapstructure:"price_advantages" json:"price_advantages"`
	PriceDisadvantages         int64   `mapstructure:"price_disadvantages" json:"price_disadvantages"`
	MarketAvgBrandPrice        float64 `mapstructure:"market_avg_suvari_price" json:"market_avg_suvari_price"`
	MarketAvgCompetitorPrice   float64 `mapstructure:"market_avg_competitor_price" json:"market_avg_competitor_price"`
	PriceCompetitivenessRank   int64   `mapstructure:"price_competitiveness_rank" json:"price_competitiveness_rank"`
	OverallCompetitivenessRank int64   `mapstructure:"overall_competitiveness_rank" json:"overall_competitiveness_rank"`

	// Unrounded inputs for labeling. Nil falls back to the rounded column.
	RawPriceGapPct *float64 `mapstructure:"raw_price_gap_pct" json:"-"`

	CompetitivePosition    CompetitivePosition    `mapstructure:"-" json:"competitive_position"`
	PromotionalEnvironment PromotionalEnvironment `mapstructure:"-" json:"promotional_environment"`
	ValueProposition       ValueProposition       `mapstructure:"-" json:"value_proposition"`
	BrandPositionStrength  BrandPositionStrength  `mapstructure:"-" json:"brand_position_strength"`
}

// CampaignRecord is one row of the campaign performance query.
type CampaignRecord struct {
	CampaignDate        string  `mapstructure:"campaign_date" json:"campaign_date"`
	CampaignName        string  `mapstructure:"campaign_name" json:"campaign_name"`
	CampaignType        string  `mapstructure:"campaign_type" json:"campaign_type"`
	TargetAudience      string  `mapstructure:"target_audience" json:"target_audience"`
	MarketSegment       string  `mapstructure:"market_segment" json:"market_segment"`
	DiscountPct         float64 `mapstructure:"discount_pct" json:"discount_pct"`
	OriginalPriceUSD    float64 `mapstructure:"original_price_usd" json:"original_price_usd"`
	CampaignPriceUSD    float64 `mapstructure:"campaign_price_usd" json:"campaign_price_usd"`
	UnitsSold           int64   `mapstructure:"units_sold" json:"units_sold"`
	RevenueGenerated    float64 `mapstructure:"revenue_generated" json:"revenue_generated"`
	CampaignCost        float64 `mapstructure:"campaign_cost" json:"campaign_cost"`
	ROIPct              float64 `mapstructure:"roi_pct" json:"roi_pct"`
	CustomerAcquisition int64   `mapstructure:"customer_acquisition" json:"customer_acquisition"`
	RepeatPurchaseRate  float64 `mapstructure:"repeat_purchase_rate" json:"repeat_purchase_rate"`

	CampaignsExecuted         int64    `mapstructure:"campaigns_executed" json:"campaigns_executed"`
	SegmentAvgROI             float64  `mapstructure:"segment_avg_roi" json:"segment_avg_roi"`
	SegmentAvgDiscount        float64  `mapstructure:"segment_avg_discount" json:"segment_avg_discount"`
	SegmentTotalRevenue       float64  `mapstructure:"segment_total_revenue" json:"segment_total_revenue"`
	SegmentTotalCost          float64  `mapstructure:"segment_total_cost" json:"segment_total_cost"`
	TotalNewCustomers         int64    `mapstructure:"total_new_customers" json:"total_new_customers"`
	SegmentAvgRepeatRate      float64  `mapstructure:"segment_avg_repeat_rate" json:"segment_avg_repeat_rate"`
	TotalUnitsSold            int64    `mapstructure:"total_units_sold" json:"total_units_sold"`
	SegmentRevenueCostRatio   *float64 `mapstructure:"segment_revenue_cost_ratio" json:"segment_revenue_cost_ratio"`
	SegmentCostPerAcquisition *float64 `mapstructure:"segment_cost_per_acquisition" json:"segment_cost_per_acquisition"`
	ROIRank                   int64    `mapstructure:"roi_rank" json:"roi_rank"`
	RevenueRank               int64    `mapstructure:"revenue_rank" json:"revenue_rank"`
	EfficiencyRank            int64    `mapstructure:"efficiency_rank" json:"efficiency_rank"`

	RawROIPct             *float64 `mapstructure:"raw_roi_pct" json:"-"`
	RawRepeatPurchaseRate *float64 `mapstructure:"raw_repeat_purchase_rate" json:"-"`

	PerformanceTier          PerformanceTier          `mapstructure:"-" json:"campaign_performance_tier"`
	DiscountEfficiency       DiscountEfficiency       `mapstructure:"-" json:"discount_efficiency"`
	RetentionPerformance     RetentionPerformance     `mapstructure:"-" json:"retention_performance"`
	AcquisitionEffectiveness AcquisitionEffectiveness `mapstructure:"-" json:"acquisition_effectiveness"`
}

// ElasticityRecord is one row of the price elasticity query.
type ElasticityRecord struct {
	AnalysisDate          string   `mapstructure:"analysis_date" json:"analysis_date"`
	ProductCategory       string   `mapstructure:"product_category" json:"product_category"`
	Market                string   `mapstructure:"market" json:"market"`
	CustomerSegment       string   `mapstructure:"customer_segment" json:"customer_segment"`
	PricePointUSD         *float64 `mapstructure:"price_point_usd" json:"price_point_usd"`
	DemandQuantity        int64    `mapstructure:"demand_quantity" json:"demand_quantity"`
	ElasticityCoefficient float64  `mapstructure:"elasticity_coefficient" json:"elasticity_coefficient"`
	SensitivityLevel      string   `mapstructure:"sensitivity_level" json:"sensitivity_level"`
	OptimalPriceUSD       *float64 `mapstructure:"optimal_price_usd" json:"optimal_price_usd"`
	RevenueImpactPct      float64  `mapstructure:"revenue_impact_pct" json:"revenue_impact_pct"`
	MarginImpactPct       float64  `mapstructure:"margin_impact_pct" json:"margin_impact_pct"`
	Recommendation        string   `mapstructure:"recommendation" json:"recommendation"`

	SegmentAvgElasticity         float64 `mapstructure:"segment_avg_elasticity" json:"segment_avg_elasticity"`
	PricePointsTested            int64   `mapstructure:"price_points_tested" json:"price_points_tested"`
	SegmentAvgRevenueImpact      float64 `mapstructure:"segment_avg_revenue_impact" json:"segment_avg_revenue_impact"`
	SegmentAvgMarginImpact       float64 `mapstructure:"segment_avg_margin_impact" json:"segment_avg_margin_impact"`
	PriceIncreaseRecommendations int64   `mapstructure:"price_increase_recommendations" json:"price_increase_recommendations"`
	PriceDecreaseRecommendations int64   `mapstructure:"price_decrease_recommendations" json:"price_decrease_recommendations"`
	MaintainPriceRecommendations int64   `mapstructure:"maintain_price_recommendations" json:"maintain_price_recommendations"`
	SegmentAvgOptimalPrice       float64 `mapstructure:"segment_avg_optimal_price" json:"segment_avg_optimal_price"`
	SegmentMaxRevenueImpact      float64 `mapstructure:"segment_max_revenue_impact" json:"segment_max_revenue_impact"`
	SegmentMinRevenueImpact      float64 `mapstructure:"segment_min_revenue_impact" json:"segment_min_revenue_impact"`
	RevenueImpactRank            int64   `mapstructure:"revenue_impact_rank" json:"revenue_impact_rank"`
	MarketSensitivityRank        int64   `mapstructure:"market_sensitivity_rank" json:"market_sensitivity_rank"`

	RawElasticityCoefficient *float64 `mapstructure:"raw_elasticity_coefficient" json:"-"`
	RawRevenueImpactPct      *float64 `mapstructure:"raw_revenue_impact_pct" json:"-"`

	SensitivityClass        SensitivityClass        `mapstructure:"-" json:"sensitivity_classification"`
	PricingStrategy         PricingStrategy         `mapstructure:"-" json:"pricing_strategy"`
	RevenueOpportunity      RevenueOpportunity      `mapstructure:"-" json:"revenue_opportunity_level"`
	PriceOptimizationStatus PriceOptimizationStatus `mapstructure:"-" json:"price_optimization_status"`
}

// PromotionRecord is one row of the promotional calendar query.
type PromotionRecord struct {
	PromoID              string  `mapstructure:"promo_id" json:"promo_id"`
	StartDate            string  `mapstructure:"start_date" json:"start_date"`
	EndDate              string  `mapstructure:"end_date" json:"end_date"`
	CampaignName         string  `mapstructure:"campaign_name" json:"campaign_name"`
	TargetMarket         string  `mapstructure:"target_market" json:"target_market"`
	ProductCategory      string  `mapstructure:"product_category" json:"product_category"`
	DiscountType         string  `mapstructure:"discount_type" json:"discount_type"`
	DiscountValue        float64 `mapstructure:"discount_value" json:"discount_value"`
	MinPurchaseUSD       float64 `mapstructure:"min_purchase_usd" json:"min_purchase_usd"`
	TargetAudience       string  `mapstructure:"target_audience" json:"target_audience"`
	ExpectedUpliftPct    float64 `mapstructure:"expected_uplift_pct" json:"expected_uplift_pct"`
	BudgetUSD            float64 `mapstructure:"budget_usd" json:"budget_usd"`
	Channel              string  `mapstructure:"channel" json:"channel"`
	SeasonalityFactor    float64 `mapstructure:"seasonality_factor" json:"seasonality_factor"`
	CompetitiveResponse  string  `mapstructure:"competitive_response" json:"competitive_response"`
	CampaignDurationDays int64   `mapstructure:"campaign_duration_days" json:"campaign_duration_days"`

	PlannedCampaigns         int64   `mapstructure:"planned_campaigns" json:"planned_campaigns"`
	MarketTotalBudget        float64 `mapstructure:"market_total_budget" json:"market_total_budget"`
	MarketAvgExpectedUplift  float64 `mapstructure:"market_avg_expected_uplift" json:"market_avg_expected_uplift"`
	MarketAvgDiscount        float64 `mapstructure:"market_avg_discount" json:"market_avg_discount"`
	MarketAvgDurationDays    float64 `mapstructure:"market_avg_duration_days" json:"market_avg_duration_days"`
	HighCompetitionCampaigns int64   `mapstructure:"high_competition_campaigns" json:"high_competition_campaigns"`
	HighImpactCampaigns      int64   `mapstructure:"high_impact_campaigns" json:"high_impact_campaigns"`
	ChannelsUtilized         int64   `mapstructure:"channels_utilized" json:"channels_utilized"`
	AudienceSegments         int64   `mapstructure:"audience_segments" json:"audience_segments"`
	MarketMaxUplift          float64 `mapstructure:"market_max_uplift" json:"market_max_uplift"`
	MarketMinBudget          float64 `mapstructure:"market_min_budget" json:"market_min_budget"`
	MarketMaxBudget          float64 `mapstructure:"market_max_budget" json:"market_max_budget"`
	ImpactEfficiencyRank     int64   `mapstructure:"impact_efficiency_rank" json:"impact_efficiency_rank"`
	MarketPriorityRank       int64   `mapstructure:"market_priority_rank" json:"market_priority_rank"`

	PriorityTier         PriorityTier         `mapstructure:"-" json:"campaign_priority_tier"`
	CompetitiveIntensity CompetitiveIntensity `mapstructure:"-" json:"competitive_intensity"`
	DiscountStrategy     DiscountStrategy     `mapstructure:"-" json:"discount_strategy"`
	BudgetScale          BudgetScale          `mapstructure:"-" json:"budget_scale"`
	DurationStrategy     DurationStrategy     `mapstructure:"-" json:"duration_strategy"`
}

// RecordSet holds the decoded rows of one query. Only the slice matching
// Category is populated.
type RecordSet struct {
	Category   Category
	Competitor []CompetitorRecord
	Campaign   []CampaignRecord
	Elasticity []ElasticityRecord
	Promotion  []PromotionRecord
}

// Len returns the number of decoded rows.
func (s RecordSet) Len() int {
	switch s.Category {
	case CategoryCompetitorTracking:
		return len(s.Competitor)
	case CategoryCampaignPerformance:
		return len(s.Campaign)
	case CategoryPriceElasticity:
		return len(s.Elasticity)
	case CategoryPromotionalCalendar:
		return len(s.Promotion)
	}
	return 0
}

// Rows returns the populated slice for serialization. It never returns nil so
// an empty result encodes as [].
func (s RecordSet) Rows() interface{} {
	switch s.Category {
	case CategoryCompetitorTracking:
		if s.Competitor != nil {
			return s.Competitor
		}
	case CategoryCampaignPerformance:
		if s.Campaign != nil {
			return s.Campaign
		}
	case CategoryPriceElasticity:
		if s.Elasticity != nil {
			return s.Elasticity
		}
	case CategoryPromotionalCalendar:
		if s.Promotion != nil {
			return s.Promotion
		}
	}
	return []interface{}{}
}

// Recommendation values stored in the price elasticity table.
const (
	RecommendationIncreasePrice = "Increase Price"
	RecommendationDecreasePrice = "Decrease Price"
	RecommendationMaintainPrice = "Maintain Price"
)
