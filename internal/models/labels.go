// internal/models/labels.go
package models

// Each label axis is a closed set of human-readable phrases attached to a record
// by its query builder and matched by the insight rules.

// Competitor tracking axes.

type CompetitivePosition string

const (
	PositionDominant        CompetitivePosition = "Dominant Market Position"
	PositionStrongAdvantage CompetitivePosition = "Strong Price Advantage"
	PositionParity          CompetitivePosition = "Competitive Parity"
	PositionDisadvantage    CompetitivePosition = "Price Disadvantage"
	PositionNeutral         CompetitivePosition = "Neutral Position"
)

type PromotionalEnvironment string

const (
	PromoPressure PromotionalEnvironment = "Competitor Promotional Pressure"
	PromoActivity PromotionalEnvironment = "Competitor Promo Activity"
	PromoStandard PromotionalEnvironment = "Standard Competitive Environment"
)

type ValueProposition string

const (
	ValuePremium           ValueProposition = "Premium Value Proposition"
	ValueQualityAdvantage  ValueProposition = "Quality Advantage"
	ValueQualityParity     ValueProposition = "Quality Parity"
	ValueImprovementNeeded ValueProposition = "Quality Improvement Opportunity"
)

type BrandPositionStrength string

const (
	BrandPremiumLeader BrandPositionStrength = "Premium Brand Leader"
	BrandPremium       BrandPositionStrength = "Premium Positioning"
	BrandMidTier       BrandPositionStrength = "Mid-tier Positioning"
	BrandDeveloping    BrandPositionStrength = "Market Position Development"
)

// Campaign performance axes.

type PerformanceTier string

const (
	TierExcellentROI PerformanceTier = "Excellent Campaign ROI"
	TierGood         PerformanceTier = "Good Campaign Performance"
	TierAverage      PerformanceTier = "Average Campaign Performance"
	TierPoor         PerformanceTier = "Poor Campaign Performance"
)

type DiscountEfficiency string

const (
	DiscountHighReturn DiscountEfficiency = "High Discount High Return"
	DiscountLowReturn  DiscountEfficiency = "High Discount Low Return"
	DiscountEfficient  DiscountEfficiency = "Efficient Campaign"
	DiscountStandard   DiscountEfficiency = "Standard Campaign"
)

type RetentionPerformance string

const (
	RetentionExcellent RetentionPerformance = "Excellent Customer Retention"
	RetentionGood      RetentionPerformance = "Good Customer Retention"
	RetentionStandard  RetentionPerformance = "Standard Customer Retention"
	RetentionLow       RetentionPerformance = "Low Customer Retention"
)

type AcquisitionEffectiveness string

const (
	AcquisitionEfficient AcquisitionEffectiveness = "Efficient Customer Acquisition"
	AcquisitionGood      AcquisitionEffectiveness = "Good Customer Acquisition"
	AcquisitionStandard  AcquisitionEffectiveness = "Standard Acquisition"
	AcquisitionLow       AcquisitionEffectiveness = "Low Acquisition Campaign"
)

// Price elasticity axes.

type SensitivityClass string

const (
	SensitivityHigh     SensitivityClass = "Highly Price Sensitive"
	SensitivityModerate SensitivityClass = "Moderately Price Sensitive"
	SensitivityLow      SensitivityClass = "Low Price Sensitivity"
)

type PricingStrategy string

const (
	StrategyStrongIncrease    PricingStrategy = "Strong Price Increase Opportunity"
	StrategyIncrease          PricingStrategy = "Price Increase Opportunity"
	StrategyStrategicDecrease PricingStrategy = "Strategic Price Decrease"
	StrategyReduce            PricingStrategy = "Price Reduction Recommended"
	StrategyMaintain          PricingStrategy = "Maintain Current Pricing"
)

type RevenueOpportunity string

const (
	RevenueHigh        RevenueOpportunity = "High Revenue Impact Potential"
	RevenueSignificant RevenueOpportunity = "Significant Revenue Impact"
	RevenueModerate    RevenueOpportunity = "Moderate Revenue Impact"
	RevenueMinimal     RevenueOpportunity = "Minimal Revenue Impact"
)

type PriceOptimizationStatus string

const (
	PriceUnderPriced PriceOptimizationStatus = "Under-priced Product"
	PriceOverPriced  PriceOptimizationStatus = "Over-priced Product"
	PriceOptimal     PriceOptimizationStatus = "Optimally Priced"
)

// Promotional calendar axes.

type PriorityTier string

const (
	PriorityHighImpactLowCost PriorityTier = "High Impact Low Cost"
	PriorityHighImpact        PriorityTier = "High Impact Campaign"
	PriorityGood              PriorityTier = "Good Impact Campaign"
	PriorityModerate          PriorityTier = "Moderate Impact Campaign"
	PriorityLow               PriorityTier = "Low Impact Campaign"
)

type CompetitiveIntensity string

const (
	IntensityBattleground CompetitiveIntensity = "Competitive Battleground"
	IntensityHigh         CompetitiveIntensity = "High Competitive Response Expected"
	IntensityModerate     CompetitiveIntensity = "Moderate Competition"
	IntensityLow          CompetitiveIntensity = "Low Competitive Pressure"
)

type DiscountStrategy string

const (
	StrategyDeepDiscount     DiscountStrategy = "Deep Discount Strategy"
	StrategyHighValue        DiscountStrategy = "High Value Discount"
	StrategyStandardDiscount DiscountStrategy = "Standard Discount"
	StrategyPremiumPricing   DiscountStrategy = "Premium Pricing Strategy"
)

type BudgetScale string

const (
	BudgetMajor       BudgetScale = "Major Campaign Investment"
	BudgetSignificant BudgetScale = "Significant Campaign Budget"
	BudgetStandard    BudgetScale = "Standard Campaign Budget"
	BudgetLimited     BudgetScale = "Limited Budget Campaign"
)

type DurationStrategy string

const (
	DurationExtended DurationStrategy = "Extended Campaign Period"
	DurationStandard DurationStrategy = "Standard Campaign Period"
	DurationShort    DurationStrategy = "Short Campaign Period"
	DurationFlash    DurationStrategy = "Flash Campaign"
)
