package generate

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/cre-datagen/internal/model"
)

// Dataset generates a batch of kind k and flattens it to records. For
// KindNOI, count is the number of years the series covers.
func (g *Generator) Dataset(k model.Kind, count int, cat model.PropertyCategory) ([]model.Record, error) {
	switch k {
	case model.KindRentRoll:
		return flatten(g.RentRoll(count, cat))
	case model.KindComparables:
		return flatten(g.Comparables(count, cat))
	case model.KindOperatingExpenses:
		return flatten(g.OperatingExpenses(count, cat))
	case model.KindTenantRoster:
		return flatten(g.TenantRoster(count, cat))
	case model.KindNOI:
		return flatten(g.NOISeries(count, cat))
	case model.KindMarketAnalysis:
		return flatten(g.MarketAnalysis(count, cat))
	}
	return nil, eris.Errorf("generate: unknown dataset kind %q", k)
}

func flatten[T model.Flattener](items []T, err error) ([]model.Record, error) {
	if err != nil {
		return nil, err
	}
	return model.Flatten(items), nil
}
