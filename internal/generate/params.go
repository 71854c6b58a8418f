package generate

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/sells-group/cre-datagen/internal/model"
	"github.com/sells-group/cre-datagen/internal/synth"
)

// span is an inclusive numeric range.
type span[T int | float64] struct {
	Min, Max T
}

// categoryParams holds every category-conditioned constant the generators
// use. Adding a category is a new row in categoryTable.
type categoryParams struct {
	// rent roll
	unitLabel   func(s *synth.Source) string
	floors      span[int]
	bedrooms    []int // nil: non-residential, bedrooms left null
	bathrooms   []string
	unitSqft    span[int]
	rentPerSqft span[float64]
	parking     bool

	// comparables
	compUnits        span[int]
	compSqftPerUnit  span[int]
	compPricePerUnit span[float64] // used when residential
	compPricePerSqft span[float64] // used otherwise
	compCapRate      span[float64]

	// tenant roster
	tenantRent    span[float64]
	tenantType    model.TenantCategory
	householdSize span[int]
	petDeposits   bool

	// NOI series: residential properties bill per unit, others per square foot
	noiRentPerUnit span[float64]
	noiUnits       span[int]
	noiSqft        span[int]

	// market analysis
	mktSalePrice    span[float64]
	mktPricePerSqft span[float64]
	mktPricePerUnit *span[float64] // nil for non-residential
	mktCapRate      span[float64]
	mktOccupancy    span[float64]
}

var categoryTable = map[model.PropertyCategory]categoryParams{
	model.CategoryMultifamily: {
		unitLabel: func(s *synth.Source) string {
			return fmt.Sprintf("%d%s", s.IntRange(1, 20), synth.Pick(s, []string{"A", "B", "C", "D"}))
		},
		floors:      span[int]{1, 5},
		bedrooms:    []int{1, 2, 3, 4},
		bathrooms:   []string{"1.0", "1.5", "2.0", "2.5", "3.0"},
		unitSqft:    span[int]{600, 2000},
		rentPerSqft: span[float64]{1.5, 4.0},
		parking:     true,

		compUnits:        span[int]{20, 500},
		compSqftPerUnit:  span[int]{600, 2000},
		compPricePerUnit: span[float64]{150000, 500000},
		compCapRate:      span[float64]{4.0, 8.0},

		tenantRent:    span[float64]{800, 4000},
		tenantType:    model.TenantResidential,
		householdSize: span[int]{1, 6},
		petDeposits:   true,

		noiRentPerUnit: span[float64]{1200, 3000},
		noiUnits:       span[int]{50, 200},

		mktSalePrice:    span[float64]{200000, 800000},
		mktPricePerSqft: span[float64]{150, 400},
		mktPricePerUnit: &span[float64]{150000, 500000},
		mktCapRate:      span[float64]{4.0, 7.0},
		mktOccupancy:    span[float64]{88.0, 96.0},
	},
	model.CategoryOffice: {
		unitLabel: func(s *synth.Source) string {
			return fmt.Sprintf("Suite %d", s.IntRange(100, 999))
		},
		floors:      span[int]{1, 20},
		bathrooms:   []string{"1.0", "2.0"},
		unitSqft:    span[int]{500, 5000},
		rentPerSqft: span[float64]{2.0, 6.0},

		compUnits:        span[int]{10, 100},
		compSqftPerUnit:  span[int]{1000, 5000},
		compPricePerSqft: span[float64]{200, 800},
		compCapRate:      span[float64]{4.0, 8.0},

		tenantRent:    span[float64]{2000, 15000},
		tenantType:    model.TenantOffice,
		householdSize: span[int]{1, 3},

		noiSqft: span[int]{50000, 200000},

		mktSalePrice:    span[float64]{500000, 2000000},
		mktPricePerSqft: span[float64]{200, 800},
		mktCapRate:      span[float64]{5.0, 8.0},
		mktOccupancy:    span[float64]{85.0, 95.0},
	},
	model.CategoryRetail: {
		unitLabel: func(s *synth.Source) string {
			return fmt.Sprintf("Unit %d", s.IntRange(1, 50))
		},
		floors:      span[int]{1, 3},
		bathrooms:   []string{"1.0", "2.0"},
		unitSqft:    span[int]{1000, 10000},
		rentPerSqft: span[float64]{1.0, 8.0},

		compUnits:        span[int]{5, 50},
		compSqftPerUnit:  span[int]{2000, 10000},
		compPricePerSqft: span[float64]{100, 600},
		compCapRate:      span[float64]{4.0, 8.0},

		tenantRent:    span[float64]{3000, 25000},
		tenantType:    model.TenantRetail,
		householdSize: span[int]{1, 3},

		noiSqft: span[int]{30000, 150000},

		mktSalePrice:    span[float64]{300000, 1500000},
		mktPricePerSqft: span[float64]{100, 600},
		mktCapRate:      span[float64]{6.0, 9.0},
		mktOccupancy:    span[float64]{80.0, 95.0},
	},
	model.CategoryIndustrial: {
		unitLabel: func(s *synth.Source) string {
			return fmt.Sprintf("Bay %d", s.IntRange(1, 40))
		},
		floors:      span[int]{1, 1},
		bathrooms:   []string{"1.0", "2.0"},
		unitSqft:    span[int]{5000, 50000},
		rentPerSqft: span[float64]{0.5, 1.5},

		compUnits:        span[int]{2, 20},
		compSqftPerUnit:  span[int]{10000, 50000},
		compPricePerSqft: span[float64]{80, 250},
		compCapRate:      span[float64]{5.0, 8.5},

		tenantRent:    span[float64]{5000, 40000},
		tenantType:    model.TenantCommercial,
		householdSize: span[int]{1, 3},

		noiSqft: span[int]{100000, 500000},

		mktSalePrice:    span[float64]{1000000, 10000000},
		mktPricePerSqft: span[float64]{80, 250},
		mktCapRate:      span[float64]{5.5, 8.5},
		mktOccupancy:    span[float64]{90.0, 98.0},
	},
	model.CategoryMixedUse: {
		unitLabel: func(s *synth.Source) string {
			return fmt.Sprintf("MU-%d%02d", s.IntRange(1, 8), s.IntRange(1, 30))
		},
		floors:      span[int]{1, 8},
		bathrooms:   []string{"1.0", "1.5", "2.0"},
		unitSqft:    span[int]{600, 4000},
		rentPerSqft: span[float64]{1.5, 5.0},
		parking:     true,

		compUnits:        span[int]{10, 150},
		compSqftPerUnit:  span[int]{800, 3000},
		compPricePerSqft: span[float64]{150, 500},
		compCapRate:      span[float64]{4.5, 7.5},

		tenantRent:    span[float64]{1500, 12000},
		tenantType:    model.TenantCommercial,
		householdSize: span[int]{1, 4},
		petDeposits:   true,

		noiSqft: span[int]{40000, 150000},

		mktSalePrice:    span[float64]{400000, 3000000},
		mktPricePerSqft: span[float64]{150, 500},
		mktCapRate:      span[float64]{5.0, 7.5},
		mktOccupancy:    span[float64]{85.0, 95.0},
	},
}

// paramsFor looks up the parameter row for cat. Unknown categories are
// rejected rather than mapped to a default row.
func paramsFor(cat model.PropertyCategory) (categoryParams, error) {
	p, ok := categoryTable[cat]
	if !ok {
		return categoryParams{}, eris.Wrapf(model.ErrUnsupportedCategory, "generate: category %q", cat)
	}
	return p, nil
}
