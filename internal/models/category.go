// internal/models/category.go
package models

// Category selects the warehouse table, thresholds and insight rules for one request.
type Category string

const (
	CategoryCompetitorTracking  Category = "competitor_tracking"
	CategoryCampaignPerformance Category = "campaign_performance"
	CategoryPriceElasticity     Category = "price_elasticity"
	CategoryPromotionalCalendar Category = "promotional_calendar"
)

// DefaultCategory is used when neither an alias nor the question selects one.
const DefaultCategory = CategoryCompetitorTracking

// Categories lists every category in classification priority order.
var Categories = []Category{
	CategoryCompetitorTracking,
	CategoryCampaignPerformance,
	CategoryPriceElasticity,
	CategoryPromotionalCalendar,
}

// categoryAliases maps the accepted query_type values onto categories.
var categoryAliases = map[string]Category{
	"competitor_tracking":  CategoryCompetitorTracking,
	"competitor_analysis":  CategoryCompetitorTracking,
	"campaign_performance": CategoryCampaignPerformance,
	"campaign_analysis":    CategoryCampaignPerformance,
	"price_elasticity":     CategoryPriceElasticity,
	"price_optimization":   CategoryPriceElasticity,
	"promotional_calendar": CategoryPromotionalCalendar,
	"promotional_planning": CategoryPromotionalCalendar,
}

// CategoryFromAlias resolves a query_type alias. Unknown values report false.
func CategoryFromAlias(alias string) (Category, bool) {
	c, ok := categoryAliases[alias]
	return c, ok
}

// Aliases returns the query_type values accepted for c.
func Aliases(c Category) []string {
	var out []string
	for alias, target := range categoryAliases {
		if target == c {
			out = append(out, alias)
		}
	}
	return out
}

func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is one of the four categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryCompetitorTracking, CategoryCampaignPerformance,
		CategoryPriceElasticity, CategoryPromotionalCalendar:
		return true
	}
	return false
}
