// internal/pricing/queries/labels.go
package queries

import (
	"math"

	"pricing-intel/internal/models"
	"pricing-intel/internal/pricing/thresholds"
)

// Every label function below is an ordered rule list: the first matching
// branch wins. A nil input never satisfies a comparison.

const (
	impactPositive     = "Positive"
	impactVeryPositive = "Very Positive"
	qualitySuperior    = "Superior"
	qualityComparable  = "Comparable"
	positioningPremium = "Premium"
	positioningMidTier = "Mid-tier"
	recIncrease        = models.RecommendationIncreasePrice
	recDecrease        = models.RecommendationDecreasePrice
	recMaintain        = models.RecommendationMaintainPrice
	responseHigh       = "High"
	responseMedium     = "Medium"
	discountPercentage = "Percentage"
	discountFixed      = "Fixed Amount"
)

func competitivePosition(t thresholds.Set, gap *float64, impact string) models.CompetitivePosition {
	if gap == nil {
		return models.PositionNeutral
	}
	g := *gap
	switch {
	case g <= t.DominantGap && impact == impactVeryPositive:
		return models.PositionDominant
	case g <= t.PriceAdvantage && (impact == impactPositive || impact == impactVeryPositive):
		return models.PositionStrongAdvantage
	case g >= -t.ParityBand && g <= t.ParityBand:
		return models.PositionParity
	case g >= t.PriceDisadvantage:
		return models.PositionDisadvantage
	}
	return models.PositionNeutral
}

func promotionalEnvironment(promo bool, gap *float64) models.PromotionalEnvironment {
	switch {
	case promo && gap != nil && *gap >= 0:
		return models.PromoPressure
	case promo:
		return models.PromoActivity
	}
	return models.PromoStandard
}

func valueProposition(quality string, gap *float64) models.ValueProposition {
	switch {
	case quality == qualitySuperior && gap != nil && *gap <= 0:
		return models.ValuePremium
	case quality == qualitySuperior:
		return models.ValueQualityAdvantage
	case quality == qualityComparable:
		return models.ValueQualityParity
	}
	return models.ValueImprovementNeeded
}

func brandPositionStrength(positioning, impact string) models.BrandPositionStrength {
	switch {
	case positioning == positioningPremium && impact == impactVeryPositive:
		return models.BrandPremiumLeader
	case positioning == positioningPremium:
		return models.BrandPremium
	case positioning == positioningMidTier:
		return models.BrandMidTier
	}
	return models.BrandDeveloping
}

func performanceTier(t thresholds.Set, roi float64) models.PerformanceTier {
	switch {
	case roi >= t.ROIExcellent:
		return models.TierExcellentROI
	case roi >= t.ROIGood:
		return models.TierGood
	case roi >= t.ROIAverage:
		return models.TierAverage
	}
	return models.TierPoor
}

func discountEfficiency(t thresholds.Set, discount, roi float64) models.DiscountEfficiency {
	switch {
	case discount >= t.DiscountHigh && roi >= t.ROIGood:
		return models.DiscountHighReturn
	case discount >= t.DiscountHigh:
		return models.DiscountLowReturn
	case roi >= t.ROIGood:
		return models.DiscountEfficient
	}
	return models.DiscountStandard
}

func retentionPerformance(t thresholds.Set, rate float64) models.RetentionPerformance {
	switch {
	case rate >= t.RetentionExcellent:
		return models.RetentionExcellent
	case rate >= t.RetentionGood:
		return models.RetentionGood
	case rate >= t.RetentionStandard:
		return models.RetentionStandard
	}
	return models.RetentionLow
}

func acquisitionEffectiveness(t thresholds.Set, acquired int64, costPerAcq *float64) models.AcquisitionEffectiveness {
	switch {
	case acquired >= t.AcquisitionEfficient && costPerAcq != nil && *costPerAcq <= t.AcquisitionCostEfficient:
		return models.AcquisitionEfficient
	case acquired >= t.AcquisitionGood:
		return models.AcquisitionGood
	case acquired >= t.AcquisitionStandard:
		return models.AcquisitionStandard
	}
	return models.AcquisitionLow
}

func sensitivityClass(t thresholds.Set, elasticity float64) models.SensitivityClass {
	switch {
	case elasticity >= t.ElasticityHigh:
		return models.SensitivityHigh
	case elasticity >= t.ElasticityLow:
		return models.SensitivityModerate
	}
	return models.SensitivityLow
}

func pricingStrategy(t thresholds.Set, recommendation string, revenueImpact float64) models.PricingStrategy {
	switch {
	case recommendation == recIncrease && revenueImpact > t.StrongIncreaseImpact:
		return models.StrategyStrongIncrease
	case recommendation == recIncrease:
		return models.StrategyIncrease
	case recommendation == recDecrease && revenueImpact > t.StrategicDecreaseImpact:
		return models.StrategyStrategicDecrease
	case recommendation == recDecrease:
		return models.StrategyReduce
	}
	return models.StrategyMaintain
}

func revenueOpportunity(t thresholds.Set, revenueImpact float64) models.RevenueOpportunity {
	abs := math.Abs(revenueImpact)
	switch {
	case abs >= t.RevenueImpactHigh:
		return models.RevenueHigh
	case abs >= t.RevenueImpactSignificant:
		return models.RevenueSignificant
	case abs >= t.RevenueImpactModerate:
		return models.RevenueModerate
	}
	return models.RevenueMinimal
}

func priceOptimizationStatus(t thresholds.Set, optimal, price *float64) models.PriceOptimizationStatus {
	if optimal == nil || price == nil {
		return models.PriceOptimal
	}
	switch {
	case *optimal > *price*t.UnderPricedRatio:
		return models.PriceUnderPriced
	case *optimal < *price*t.OverPricedRatio:
		return models.PriceOverPriced
	}
	return models.PriceOptimal
}

func priorityTier(t thresholds.Set, uplift, budget float64) models.PriorityTier {
	switch {
	case uplift >= t.UpliftExcellent && budget <= t.LowCostBudget:
		return models.PriorityHighImpactLowCost
	case uplift >= t.UpliftExcellent:
		return models.PriorityHighImpact
	case uplift >= t.UpliftGood:
		return models.PriorityGood
	case uplift >= t.UpliftModerate:
		return models.PriorityModerate
	}
	return models.PriorityLow
}

func competitiveIntensity(t thresholds.Set, response string, uplift float64) models.CompetitiveIntensity {
	switch {
	case response == responseHigh && uplift >= t.UpliftBattleground:
		return models.IntensityBattleground
	case response == responseHigh:
		return models.IntensityHigh
	case response == responseMedium:
		return models.IntensityModerate
	}
	return models.IntensityLow
}

func discountStrategy(t thresholds.Set, discountType string, value float64) models.DiscountStrategy {
	switch {
	case discountType == discountPercentage && value >= t.DeepDiscountPct:
		return models.StrategyDeepDiscount
	case discountType == discountFixed && value >= t.HighValueDiscount:
		return models.StrategyHighValue
	case value >= t.StandardDiscount:
		return models.StrategyStandardDiscount
	}
	return models.StrategyPremiumPricing
}

func budgetScale(t thresholds.Set, budget float64) models.BudgetScale {
	switch {
	case budget >= t.BudgetMajor:
		return models.BudgetMajor
	case budget >= t.BudgetSignificant:
		return models.BudgetSignificant
	case budget >= t.BudgetStandard:
		return models.BudgetStandard
	}
	return models.BudgetLimited
}

func durationStrategy(t thresholds.Set, days int64) models.DurationStrategy {
	switch {
	case days >= t.DurationExtended:
		return models.DurationExtended
	case days >= t.DurationStandard:
		return models.DurationStandard
	case days >= t.DurationShort:
		return models.DurationShort
	}
	return models.DurationFlash
}
