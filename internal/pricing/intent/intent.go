// internal/pricing/intent/intent.go
package intent

import (
	"strings"

	"pricing-intel/internal/models"
)

// Source records how a category was chosen.
type Source string

const (
	SourceAlias      Source = "alias"
	SourceClassifier Source = "classifier"
)

type rule struct {
	category models.Category
	groups   [][]string
}

// Rules are checked in order and the first category with any matching group
// wins. A single generic term such as "price" is enough to select competitor
// tracking.
var rules = []rule{
	{
		category: models.CategoryCompetitorTracking,
		groups: [][]string{
			{"competitor", "rakip", "competition"},
			{"price", "fiyat", "pricing"},
			{"market", "pazar"},
			{"positioning", "konum"},
			{"comparison", "karşılaştırma"},
			{"advantage", "avantaj"},
		},
	},
	{
		category: models.CategoryCampaignPerformance,
		groups: [][]string{
			{"campaign", "kampanya", "promotion"},
			{"roi", "kar", "return"},
			{"marketing", "pazarlama"},
			{"discount", "indirim"},
			{"performance", "başarı"},
			{"effectiveness", "etkinlik"},
		},
	},
	{
		category: models.CategoryPriceElasticity,
		groups: [][]string{
			{"elasticity", "elastikiyet", "optimization"},
			{"optimal", "optimum"},
			{"demand", "talep"},
			{"sensitivity", "hassasiyet"},
			{"revenue", "gelir"},
			{"margin", "kar"},
		},
	},
	{
		category: models.CategoryPromotionalCalendar,
		groups: [][]string{
			{"calendar", "takvim", "schedule"},
			{"planning", "planlama"},
			{"future", "gelecek"},
			{"budget", "bütçe"},
			{"timeline", "zaman"},
			{"seasonal", "mevsimsel"},
		},
	},
}

// Classify maps a free-text question to a category. It never fails; questions
// matching no keyword fall back to models.DefaultCategory.
func Classify(question string) models.Category {
	q := strings.ToLower(question)
	if q == "" {
		return models.DefaultCategory
	}
	for _, r := range rules {
		for _, group := range r.groups {
			for _, term := range group {
				if strings.Contains(q, term) {
					return r.category
				}
			}
		}
	}
	return models.DefaultCategory
}

// Resolve picks the category for a request. A recognised query type alias
// wins; anything else, including an unknown alias, defers to Classify.
func Resolve(queryType, question string) (models.Category, Source) {
	if c, ok := models.CategoryFromAlias(queryType); ok {
		return c, SourceAlias
	}
	return Classify(question), SourceClassifier
}

// Keywords returns the keyword groups for a category, for diagnostics.
func Keywords(c models.Category) [][]string {
	for _, r := range rules {
		if r.category == c {
			out := make([][]string, len(r.groups))
			for i, g := range r.groups {
				out[i] = append([]string(nil), g...)
			}
			return out
		}
	}
	return nil
}
