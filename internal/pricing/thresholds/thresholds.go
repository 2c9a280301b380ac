// internal/pricing/thresholds/thresholds.go
package thresholds

import "fmt"

// Set holds the business cutoffs behind every label and insight rule. A Set is
// built once at startup and passed by value; nothing mutates it afterwards.
type Set struct {
	// Campaign ROI tiers, in percent.
	ROIExcellent float64 `mapstructure:"roi_excellent"`
	ROIGood      float64 `mapstructure:"roi_good"`
	ROIAverage   float64 `mapstructure:"roi_average"`

	// Elasticity coefficient bands.
	ElasticityHigh float64 `mapstructure:"elasticity_high"`
	ElasticityLow  float64 `mapstructure:"elasticity_low"`

	// Price gap against competitors, in percent. Negative means cheaper.
	PriceAdvantage    float64 `mapstructure:"price_advantage"`
	PriceDisadvantage float64 `mapstructure:"price_disadvantage"`
	DominantGap       float64 `mapstructure:"dominant_gap"`
	ParityBand        float64 `mapstructure:"parity_band"`

	// Insight thresholds on the mean price gap.
	AvgGapAdvantage    float64 `mapstructure:"avg_gap_advantage"`
	AvgGapDisadvantage float64 `mapstructure:"avg_gap_disadvantage"`

	// Promotion expected uplift, in percent.
	UpliftExcellent    float64 `mapstructure:"uplift_excellent"`
	UpliftGood         float64 `mapstructure:"uplift_good"`
	UpliftModerate     float64 `mapstructure:"uplift_moderate"`
	UpliftBattleground float64 `mapstructure:"uplift_battleground"`
	LowCostBudget      float64 `mapstructure:"low_cost_budget"`

	DiscountHigh float64 `mapstructure:"discount_high"`

	// Repeat purchase rate, in percent.
	RetentionExcellent float64 `mapstructure:"retention_excellent"`
	RetentionGood      float64 `mapstructure:"retention_good"`
	RetentionStandard  float64 `mapstructure:"retention_standard"`

	// New customers per campaign.
	AcquisitionEfficient     int64   `mapstructure:"acquisition_efficient"`
	AcquisitionGood          int64   `mapstructure:"acquisition_good"`
	AcquisitionStandard      int64   `mapstructure:"acquisition_standard"`
	AcquisitionCostEfficient float64 `mapstructure:"acquisition_cost_efficient"`

	// Recommended price change impact, in percent.
	StrongIncreaseImpact    float64 `mapstructure:"strong_increase_impact"`
	StrategicDecreaseImpact float64 `mapstructure:"strategic_decrease_impact"`

	// Absolute revenue impact bands, in percent.
	RevenueImpactHigh        float64 `mapstructure:"revenue_impact_high"`
	RevenueImpactSignificant float64 `mapstructure:"revenue_impact_significant"`
	RevenueImpactModerate    float64 `mapstructure:"revenue_impact_moderate"`

	// Optimal price ratio against the current price point.
	UnderPricedRatio float64 `mapstructure:"under_priced_ratio"`
	OverPricedRatio  float64 `mapstructure:"over_priced_ratio"`

	DeepDiscountPct   float64 `mapstructure:"deep_discount_pct"`
	HighValueDiscount float64 `mapstructure:"high_value_discount"`
	StandardDiscount  float64 `mapstructure:"standard_discount"`
	BudgetMajor       float64 `mapstructure:"budget_major"`
	BudgetSignificant float64 `mapstructure:"budget_significant"`
	BudgetStandard    float64 `mapstructure:"budget_standard"`
	DurationExtended  int64   `mapstructure:"duration_extended"`
	DurationStandard  int64   `mapstructure:"duration_standard"`
	DurationShort     int64   `mapstructure:"duration_short"`
}

// Default returns the reference thresholds.
func Default() Set {
	return Set{
		ROIExcellent: 500,
		ROIGood:      300,
		ROIAverage:   200,

		ElasticityHigh: 2.0,
		ElasticityLow:  1.0,

		PriceAdvantage:    -15,
		PriceDisadvantage: 10,
		DominantGap:       -30,
		ParityBand:        15,

		AvgGapAdvantage:    -10,
		AvgGapDisadvantage: 10,

		UpliftExcellent:    40,
		UpliftGood:         30,
		UpliftModerate:     20,
		UpliftBattleground: 35,
		LowCostBudget:      20000,

		DiscountHigh: 25,

		RetentionExcellent: 60,
		RetentionGood:      40,
		RetentionStandard:  25,

		AcquisitionEfficient:     100,
		AcquisitionGood:          50,
		AcquisitionStandard:      20,
		AcquisitionCostEfficient: 50,

		StrongIncreaseImpact:    5,
		StrategicDecreaseImpact: 10,

		RevenueImpactHigh:        15,
		RevenueImpactSignificant: 10,
		RevenueImpactModerate:    5,

		UnderPricedRatio: 1.1,
		OverPricedRatio:  0.9,

		DeepDiscountPct:   30,
		HighValueDiscount: 200,
		StandardDiscount:  20,
		BudgetMajor:       50000,
		BudgetSignificant: 25000,
		BudgetStandard:    10000,
		DurationExtended:  30,
		DurationStandard:  14,
		DurationShort:     7,
	}
}

// Validate checks that every tiered cutoff is ordered.
func (s Set) Validate() error {
	checks := []struct {
		name   string
		higher float64
		lower  float64
	}{
		{"roi", s.ROIExcellent, s.ROIGood},
		{"roi", s.ROIGood, s.ROIAverage},
		{"elasticity", s.ElasticityHigh, s.ElasticityLow},
		{"uplift", s.UpliftExcellent, s.UpliftGood},
		{"uplift", s.UpliftGood, s.UpliftModerate},
		{"retention", s.RetentionExcellent, s.RetentionGood},
		{"retention", s.RetentionGood, s.RetentionStandard},
		{"revenue_impact", s.RevenueImpactHigh, s.RevenueImpactSignificant},
		{"revenue_impact", s.RevenueImpactSignificant, s.RevenueImpactModerate},
		{"price_ratio", s.UnderPricedRatio, s.OverPricedRatio},
		{"budget", s.BudgetMajor, s.BudgetSignificant},
		{"budget", s.BudgetSignificant, s.BudgetStandard},
		{"price_gap", s.PriceDisadvantage, s.PriceAdvantage},
		{"price_gap", s.PriceAdvantage, s.DominantGap},
	}
	for _, c := range checks {
		if c.higher < c.lower {
			return fmt.Errorf("%s thresholds out of order: %v < %v", c.name, c.higher, c.lower)
		}
	}
	if s.AcquisitionEfficient < s.AcquisitionGood || s.AcquisitionGood < s.AcquisitionStandard {
		return fmt.Errorf("acquisition thresholds out of order")
	}
	if s.DurationExtended < s.DurationStandard || s.DurationStandard < s.DurationShort {
		return fmt.Errorf("duration thresholds out of order")
	}
	if s.ParityBand < 0 {
		return fmt.Errorf("parity band must be non-negative")
	}
	return nil
}
