package generate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sells-group/cre-datagen/internal/model"
	"github.com/sells-group/cre-datagen/internal/synth"
)

var (
	propertyNamePrefixes = []string{"The", "Grand", "Royal", "Elite", "Premier"}
	propertyNameSuffixes = []string{"Towers", "Plaza", "Court", "Manor", "Gardens"}
)

// Comparables generates count comparable sales for category cat.
//
// The sale price is built from a sampled price per unit (residential) or per
// square foot (everything else). The reported per-sqft and per-unit prices
// are then recomputed from the sale price so they always agree with it.
func (g *Generator) Comparables(count int, cat model.PropertyCategory) ([]model.ComparableProperty, error) {
	p, err := paramsFor(cat)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		return []model.ComparableProperty{}, nil
	}

	s := g.src
	comps := make([]model.ComparableProperty, 0, count)
	for i := 0; i < count; i++ {
		place := s.Place()
		c := model.ComparableProperty{
			PropertyName: fmt.Sprintf("%s %s", synth.Pick(s, propertyNamePrefixes), synth.Pick(s, propertyNameSuffixes)),
			Address:      s.StreetAddress(),
			City:         place.City,
			State:        place.State,
			ZipCode:      s.Zip(),
			PropertyType: cat,
			YearBuilt:    s.IntRange(1950, g.today.Year()),
		}
		c.TotalUnits = s.IntRange(p.compUnits.Min, p.compUnits.Max)
		c.TotalSqft = c.TotalUnits * s.IntRange(p.compSqftPerUnit.Min, p.compSqftPerUnit.Max)
		c.SaleDate = s.Date(g.today.AddDate(0, 0, -1095), g.today)

		if cat.Residential() {
			perUnit := s.Money(p.compPricePerUnit.Min, p.compPricePerUnit.Max)
			c.SalePrice = perUnit.Mul(decimal.NewFromInt(int64(c.TotalUnits)))
		} else {
			perSqft := s.Money(p.compPricePerSqft.Min, p.compPricePerSqft.Max)
			c.SalePrice = perSqft.Mul(decimal.NewFromInt(int64(c.TotalSqft)))
		}
		c.PricePerSqft = ratio(c.SalePrice, c.TotalSqft)
		c.PricePerUnit = ratio(c.SalePrice, c.TotalUnits)

		c.CapRate = s.Money(p.compCapRate.Min, p.compCapRate.Max)
		c.NOI = CapRateNOI(c.SalePrice, c.CapRate)
		c.OccupancyRate = s.Money(85.0, 98.0)
		c.AvgRentPerSqft = s.Money(p.rentPerSqft.Min, p.rentPerSqft.Max)
		c.Amenities = synth.Sample(s, synth.Amenities, s.IntRange(3, 8))
		c.PropertyID = s.ID("PROP", 10000, 99999)
		c.Notes = g.note(0.2, "Comparable property %d", i+1)

		comps = append(comps, c)
	}
	return comps, nil
}

// ratio returns amount/denom rounded half-up to cents, or nil when denom is
// not positive.
func ratio(amount decimal.Decimal, denom int) *decimal.Decimal {
	if denom <= 0 {
		return nil
	}
	v := synth.RoundHalfUp(amount.Div(decimal.NewFromInt(int64(denom))), 2)
	return &v
}

// CapRateNOI derives net operating income from a price and a cap rate
// expressed as a percent, rounded half-up to cents.
func CapRateNOI(price, capRate decimal.Decimal) decimal.Decimal {
	return synth.RoundHalfUp(price.Mul(capRate).Shift(-2), 2)
}
