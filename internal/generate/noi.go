package generate

import (
	"github.com/shopspring/decimal"

	"github.com/sells-group/cre-datagen/internal/model"
	"github.com/sells-group/cre-datagen/internal/synth"
)

// NOISeries generates one data point per 30-day period from
// today - years*365 up to today. Periods are sampled independently; there is
// no smoothing between them.
//
// Every amount is rounded to cents before it is combined, so
// net_operating_income == total_income - operating_expenses holds exactly.
func (g *Generator) NOISeries(years int, cat model.PropertyCategory) ([]model.NOIDataPoint, error) {
	p, err := paramsFor(cat)
	if err != nil {
		return nil, err
	}
	if years <= 0 {
		return []model.NOIDataPoint{}, nil
	}

	s := g.src
	start := g.today.AddDate(0, 0, -years*365)
	var out []model.NOIDataPoint
	for cur := start; cur.Before(g.today); cur = cur.AddDate(0, 0, periodDays) {
		pt := model.NOIDataPoint{
			PeriodStart: cur,
			PeriodEnd:   cur.AddDate(0, 0, periodDays),
		}

		var gross decimal.Decimal
		if cat.Residential() {
			perUnit := s.Money(p.noiRentPerUnit.Min, p.noiRentPerUnit.Max)
			gross = perUnit.Mul(decimal.NewFromInt(int64(s.IntRange(p.noiUnits.Min, p.noiUnits.Max))))
		} else {
			perSqft := s.Money(p.rentPerSqft.Min, p.rentPerSqft.Max)
			gross = perSqft.Mul(decimal.NewFromInt(int64(s.IntRange(p.noiSqft.Min, p.noiSqft.Max))))
		}
		variation := s.Decimal(0.95, 1.05, 2)
		pt.GrossRentalIncome = synth.RoundHalfUp(gross.Mul(variation), 2)

		pt.OtherIncome = s.MoneyBetween(pt.GrossRentalIncome.Mul(pct5), pt.GrossRentalIncome.Mul(pct15))
		pt.TotalIncome = pt.GrossRentalIncome.Add(pt.OtherIncome)

		expenseRatio := s.Decimal(0.30, 0.50, 2)
		pt.OperatingExpenses = synth.RoundHalfUp(pt.GrossRentalIncome.Mul(expenseRatio), 2)
		pt.NetOperatingIncome = pt.TotalIncome.Sub(pt.OperatingExpenses)

		pt.OccupancyRate = s.Money(85.0, 98.0)
		pt.AvgRentPerSqft = s.Money(p.rentPerSqft.Min, p.rentPerSqft.Max)
		pt.Notes = g.note(0.1, "Monthly NOI data for %s", cur.Format("2006-01"))

		out = append(out, pt)
	}
	return out, nil
}
