// internal/pricing/queries/registry.go
package queries

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/lib/pq"

	"pricing-intel/internal/models"
	"pricing-intel/internal/pricing/thresholds"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrDecode          = errors.New("record decode failed")
)

// Builder owns the query template for one category and turns the rows it
// returns into labeled records.
type Builder interface {
	Category() models.Category
	Build() Query
	Decode(records []map[string]interface{}) (models.RecordSet, error)
}

// Registry maps each category to its builder.
type Registry struct {
	builders map[models.Category]Builder
}

// NewRegistry builds all four category builders against tables in dataset.
func NewRegistry(dataset string, t thresholds.Set) *Registry {
	return &Registry{
		builders: map[models.Category]Builder{
			models.CategoryCompetitorTracking:  NewCompetitorTracking(dataset, t),
			models.CategoryCampaignPerformance: NewCampaignPerformance(dataset, t),
			models.CategoryPriceElasticity:     NewPriceElasticity(dataset, t),
			models.CategoryPromotionalCalendar: NewPromotionalCalendar(dataset, t),
		},
	}
}

func (r *Registry) Get(c models.Category) (Builder, error) {
	b, ok := r.builders[c]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, c)
	}
	return b, nil
}

func tableName(dataset, table string) string {
	if dataset == "" {
		return pq.QuoteIdentifier(table)
	}
	return pq.QuoteIdentifier(dataset) + "." + pq.QuoteIdentifier(table)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func windowParams(withEnd bool) []Parameter {
	params := []Parameter{{Name: ParamWindowStart, Type: TypeDate}}
	if withEnd {
		params = append(params, Parameter{Name: ParamWindowEnd, Type: TypeDate})
	}
	return append(params, Parameter{Name: ParamLimit, Type: TypeInt64})
}
