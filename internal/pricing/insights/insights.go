// internal/pricing/insights/insights.go
package insights

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"pricing-intel/internal/models"
	"pricing-intel/internal/pricing/thresholds"
)

var (
	ErrRulePanic       = errors.New("insight rule panicked")
	ErrUnknownCategory = errors.New("no insight rules for category")
)

const (
	NoDataInsight        = "Belirtilen kriterlere uygun pricing verisi bulunamadı"
	NoDataRecommendation = "Tarih aralığını veya kriterleri genişletin"
)

// collector accumulates rule output in evaluation order.
type collector struct {
	insights        []string
	recommendations []string
	alerts          []string
}

func (c *collector) insight(format string, args ...interface{}) {
	c.insights = append(c.insights, fmt.Sprintf(format, args...))
}

func (c *collector) recommend(msg string) {
	c.recommendations = append(c.recommendations, msg)
}

func (c *collector) alert(format string, args ...interface{}) {
	c.alerts = append(c.alerts, fmt.Sprintf(format, args...))
}

type rule struct {
	name string
	fn   func(models.RecordSet, *collector)
}

// Synthesizer derives insights, recommendations and alerts from labeled
// records.
type Synthesizer struct {
	thresholds thresholds.Set
	rules      map[models.Category][]rule
	printer    *message.Printer
}

func NewSynthesizer(t thresholds.Set) *Synthesizer {
	s := &Synthesizer{
		thresholds: t,
		printer:    message.NewPrinter(language.English),
	}
	s.rules = map[models.Category][]rule{
		models.CategoryCompetitorTracking:  s.competitorRules(),
		models.CategoryCampaignPerformance: s.campaignRules(),
		models.CategoryPriceElasticity:     s.elasticityRules(),
		models.CategoryPromotionalCalendar: s.promotionRules(),
	}
	return s
}

// Synthesize runs every rule for the set's category in order. A failing rule
// is skipped and reported as a cause; the remaining rules still run.
func (s *Synthesizer) Synthesize(set models.RecordSet) models.Outcome[models.AnalysisResult] {
	if set.Len() == 0 {
		return models.Outcome[models.AnalysisResult]{
			Value: models.AnalysisResult{
				Insights:        []string{NoDataInsight},
				Recommendations: []string{NoDataRecommendation},
				Alerts:          []string{},
			},
		}
	}

	var out collector
	var causes []error

	rules, ok := s.rules[set.Category]
	if !ok {
		causes = append(causes, fmt.Errorf("%w: %s", ErrUnknownCategory, set.Category))
	}
	for _, r := range rules {
		if err := run(r, set, &out); err != nil {
			causes = append(causes, err)
		}
	}

	result := models.AnalysisResult{
		Insights:        out.insights,
		Recommendations: out.recommendations,
		Alerts:          out.alerts,
	}
	return models.Outcome[models.AnalysisResult]{Value: result.Truncate(), Causes: causes}
}

func run(r rule, set models.RecordSet, out *collector) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %s: %v", ErrRulePanic, r.name, p)
		}
	}()
	r.fn(set, out)
	return nil
}

// ============================================================================
// Competitor tracking
// ============================================================================

func (s *Synthesizer) competitorRules() []rule {
	return []rule{
		{"strong_advantage", func(set models.RecordSet, c *collector) {
			if n := countCompetitor(set, func(r models.CompetitorRecord) bool {
				return r.CompetitivePosition == models.PositionStrongAdvantage
			}); n > 0 {
				c.insight("💰 %d kategoride güçlü fiyat avantajımız var", n)
			}
		}},
		{"price_disadvantage", func(set models.RecordSet, c *collector) {
			if n := countCompetitor(set, func(r models.CompetitorRecord) bool {
				return r.CompetitivePosition == models.PositionDisadvantage
			}); n > 0 {
				c.alert("🔴 %d kategoride fiyat dezavantajımız bulunuyor", n)
				c.recommend("Fiyat dezavantajı olan kategorilerde strateji revizyonu yapın")
			}
		}},
		{"premium_value", func(set models.RecordSet, c *collector) {
			if n := countCompetitor(set, func(r models.CompetitorRecord) bool {
				return r.ValueProposition == models.ValuePremium
			}); n > 0 {
				c.insight("💎 %d kategoride premium değer önerisi sunuyoruz", n)
			}
		}},
		{"promotional_pressure", func(set models.RecordSet, c *collector) {
			if n := countCompetitor(set, func(r models.CompetitorRecord) bool {
				return r.PromotionalEnvironment == models.PromoPressure
			}); n > 0 {
				c.alert("⚠️ %d kategoride rakip promosyon baskısı var", n)
				c.recommend("Rakip promosyonlarına karşı hızlı response stratejileri geliştirin")
			}
		}},
		{"average_price_gap", func(set models.RecordSet, c *collector) {
			var sum float64
			var n int
			for _, r := range set.Competitor {
				if r.PriceGapPct != nil {
					sum += *r.PriceGapPct
					n++
				}
			}
			if n == 0 {
				return
			}
			avg := sum / float64(n)
			switch {
			case avg < s.thresholds.AvgGapAdvantage:
				c.insight("📊 Ortalama fiyat avantajımız: %%%.1f rakiplerden düşük", math.Abs(avg))
			case avg > s.thresholds.AvgGapDisadvantage:
				c.insight("📊 Ortalama fiyat dezavantajımız: %%%.1f rakiplerden yüksek", avg)
			default:
				c.insight("⚖️ Rakiplerle ortalama fiyat paritesi: %%%.1f", avg)
			}
		}},
	}
}

func countCompetitor(set models.RecordSet, match func(models.CompetitorRecord) bool) int {
	n := 0
	for _, r := range set.Competitor {
		if match(r) {
			n++
		}
	}
	return n
}

// ============================================================================
// Campaign performance
// ============================================================================

func (s *Synthesizer) campaignRules() []rule {
	return []rule{
		{"top_campaign", func(set models.RecordSet, c *collector) {
			var top *models.CampaignRecord
			for i := range set.Campaign {
				r := &set.Campaign[i]
				if r.PerformanceTier != models.TierExcellentROI {
					continue
				}
				if top == nil || r.ROIPct > top.ROIPct {
					top = r
				}
			}
			if top != nil {
				c.insight("🏆 En başarılı kampanya: %s (ROI: %%%s)", top.CampaignName, formatDecimal(top.ROIPct))
			}
		}},
		{"poor_performance", func(set models.RecordSet, c *collector) {
			if n := countCampaign(set, func(r models.CampaignRecord) bool {
				return r.PerformanceTier == models.TierPoor
			}); n > 0 {
				c.alert("📉 %d kampanya düşük performans gösteriyor", n)
				c.recommend("Düşük ROI'li kampanya tiplerini analiz edin ve optimize edin")
			}
		}},
		{"efficient_acquisition", func(set models.RecordSet, c *collector) {
			if n := countCampaign(set, func(r models.CampaignRecord) bool {
				return r.AcquisitionEffectiveness == models.AcquisitionEfficient
			}); n > 0 {
				c.insight("🎯 %d kampanya verimli müşteri kazanımı sağlıyor", n)
			}
		}},
		{"excellent_retention", func(set models.RecordSet, c *collector) {
			if n := countCampaign(set, func(r models.CampaignRecord) bool {
				return r.RetentionPerformance == models.RetentionExcellent
			}); n > 0 {
				c.insight("🔁 %d kampanya mükemmel müşteri tutma oranı gösteriyor", n)
			}
		}},
		{"overall_roi", func(set models.RecordSet, c *collector) {
			var revenue, cost float64
			for _, r := range set.Campaign {
				revenue += r.RevenueGenerated
				cost += r.CampaignCost
			}
			if cost > 0 {
				c.insight("📊 Toplam kampanya ROI: %%%.1f", (revenue/cost-1)*100)
			}
		}},
	}
}

func countCampaign(set models.RecordSet, match func(models.CampaignRecord) bool) int {
	n := 0
	for _, r := range set.Campaign {
		if match(r) {
			n++
		}
	}
	return n
}

// ============================================================================
// Price elasticity
// ============================================================================

func (s *Synthesizer) elasticityRules() []rule {
	return []rule{
		{"strong_increase", func(set models.RecordSet, c *collector) {
			if n := countElasticity(set, func(r models.ElasticityRecord) bool {
				return r.PricingStrategy == models.StrategyStrongIncrease
			}); n > 0 {
				c.insight("📈 %d kategoride güçlü fiyat artırım fırsatı", n)
				c.recommend("Fiyat artırım fırsatlarını değerlendirin ve pilot testler yapın")
			}
		}},
		{"under_priced", func(set models.RecordSet, c *collector) {
			if n := countElasticity(set, func(r models.ElasticityRecord) bool {
				return r.PriceOptimizationStatus == models.PriceUnderPriced
			}); n > 0 {
				c.insight("💰 %d ürün kategori optimal fiyatın altında", n)
				c.recommend("Under-priced kategorilerde fiyat optimizasyonu yapın")
			}
		}},
		{"high_revenue_impact", func(set models.RecordSet, c *collector) {
			if n := countElasticity(set, func(r models.ElasticityRecord) bool {
				return r.RevenueOpportunity == models.RevenueHigh
			}); n > 0 {
				c.insight("🚀 %d kategori yüksek gelir etkisi potansiyeli taşıyor", n)
				c.recommend("Yüksek etki potansiyelli kategorilerde A/B testleri başlatın")
			}
		}},
		{"low_sensitivity", func(set models.RecordSet, c *collector) {
			if n := countElasticity(set, func(r models.ElasticityRecord) bool {
				return r.SensitivityClass == models.SensitivityLow
			}); n > 0 {
				c.insight("💎 %d kategori düşük fiyat hassasiyeti gösteriyor (premium fırsat)", n)
				c.recommend("Düşük hassasiyetli kategorilerde premium pricing stratejileri değerlendirin")
			}
		}},
	}
}

func countElasticity(set models.RecordSet, match func(models.ElasticityRecord) bool) int {
	n := 0
	for _, r := range set.Elasticity {
		if match(r) {
			n++
		}
	}
	return n
}

// ============================================================================
// Promotional calendar
// ============================================================================

func (s *Synthesizer) promotionRules() []rule {
	return []rule{
		{"high_impact_low_cost", func(set models.RecordSet, c *collector) {
			if n := countPromotion(set, func(r models.PromotionRecord) bool {
				return r.PriorityTier == models.PriorityHighImpactLowCost
			}); n > 0 {
				c.insight("🚀 %d kampanya yüksek etki düşük maliyet kategorisinde", n)
				c.recommend("High impact low cost kampanyaları öncelikle execute edin")
			}
		}},
		{"high_impact_total", func(set models.RecordSet, c *collector) {
			n := countPromotion(set, func(r models.PromotionRecord) bool {
				return r.PriorityTier == models.PriorityHighImpact || r.PriorityTier == models.PriorityHighImpactLowCost
			})
			c.insight("⭐ Toplam %d yüksek etkili kampanya planlandı", n)
		}},
		{"battleground", func(set models.RecordSet, c *collector) {
			if n := countPromotion(set, func(r models.PromotionRecord) bool {
				return r.CompetitiveIntensity == models.IntensityBattleground
			}); n > 0 {
				c.alert("⚔️ %d kampanya yoğun rekabetli ortamda", n)
				c.recommend("Yoğun rekabetli kampanyalar için diferansiyasyon stratejileri geliştirin")
			}
		}},
		{"total_budget", func(set models.RecordSet, c *collector) {
			var total float64
			for _, r := range set.Promotion {
				total += r.BudgetUSD
			}
			c.insight("💰 Toplam planlanan kampanya bütçesi: $%s", s.printer.Sprintf("%.0f", total))
		}},
		{"major_investment", func(set models.RecordSet, c *collector) {
			if n := countPromotion(set, func(r models.PromotionRecord) bool {
				return r.BudgetScale == models.BudgetMajor
			}); n > 0 {
				c.insight("💰 %d major investment kampanyası planlandı", n)
			}
		}},
		{"flash_campaigns", func(set models.RecordSet, c *collector) {
			if n := countPromotion(set, func(r models.PromotionRecord) bool {
				return r.DurationStrategy == models.DurationFlash
			}); n > 0 {
				c.insight("🚀 %d flash kampanya planlandı", n)
			}
		}},
		{"extended_campaigns", func(set models.RecordSet, c *collector) {
			if n := countPromotion(set, func(r models.PromotionRecord) bool {
				return r.DurationStrategy == models.DurationExtended
			}); n > 0 {
				c.insight("📅 %d uzun dönemli kampanya planlandı", n)
			}
		}},
	}
}

func countPromotion(set models.RecordSet, match func(models.PromotionRecord) bool) int {
	n := 0
	for _, r := range set.Promotion {
		if match(r) {
			n++
		}
	}
	return n
}

// formatDecimal prints v with at least one fractional digit, e.g. 500.0.
func formatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		s += ".0"
	}
	return s
}
