package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricing-intel/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     models.Category
	}{
		{"empty", "", models.CategoryCompetitorTracking},
		{"no keywords", "hello there", models.CategoryCompetitorTracking},
		{"competitor english", "Which competitor undercuts us?", models.CategoryCompetitorTracking},
		{"competitor turkish", "Rakip analizi", models.CategoryCompetitorTracking},
		{"price wins first", "what is the optimal price", models.CategoryCompetitorTracking},
		{"campaign", "Show campaign results", models.CategoryCampaignPerformance},
		{"roi", "ROI by segment", models.CategoryCampaignPerformance},
		{"turkish campaign", "kampanya başarı oranı", models.CategoryCampaignPerformance},
		{"kar matches campaign before elasticity", "kar marjı", models.CategoryCampaignPerformance},
		{"elasticity", "elasticity of shoes", models.CategoryPriceElasticity},
		{"demand", "DEMAND curve", models.CategoryPriceElasticity},
		{"revenue", "revenue upside", models.CategoryPriceElasticity},
		{"calendar", "promo calendar next month", models.CategoryPromotionalCalendar},
		{"budget", "bütçe dağılımı", models.CategoryPromotionalCalendar},
		{"seasonal", "seasonal plans", models.CategoryPromotionalCalendar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.question))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	q := "campaign budget calendar"
	first := Classify(q)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(q))
	}
}

func TestResolve_Aliases(t *testing.T) {
	pairs := [][2]string{
		{"competitor_tracking", "competitor_analysis"},
		{"campaign_performance", "campaign_analysis"},
		{"price_elasticity", "price_optimization"},
		{"promotional_calendar", "promotional_planning"},
	}

	for _, p := range pairs {
		t.Run(p[1], func(t *testing.T) {
			a, srcA := Resolve(p[0], "budget calendar")
			b, srcB := Resolve(p[1], "budget calendar")
			assert.Equal(t, a, b)
			assert.Equal(t, models.Category(p[0]), a)
			assert.Equal(t, SourceAlias, srcA)
			assert.Equal(t, SourceAlias, srcB)
		})
	}
}

func TestResolve_UnknownAliasFallsBackToClassifier(t *testing.T) {
	c, src := Resolve("bogus", "seasonal calendar")
	assert.Equal(t, models.CategoryPromotionalCalendar, c)
	assert.Equal(t, SourceClassifier, src)

	c, src = Resolve("", "")
	assert.Equal(t, models.DefaultCategory, c)
	assert.Equal(t, SourceClassifier, src)
}

func TestKeywords(t *testing.T) {
	groups := Keywords(models.CategoryPriceElasticity)
	require.Len(t, groups, 6)
	assert.Contains(t, groups[0], "elasticity")

	groups[0][0] = "mutated"
	assert.Equal(t, "elasticity", Keywords(models.CategoryPriceElasticity)[0][0])

	assert.Nil(t, Keywords(models.Category("nope")))
}
