package generate

import (
	"fmt"

	"github.com/sells-group/cre-datagen/internal/model"
	"github.com/sells-group/cre-datagen/internal/synth"
)

var marketTrendOptions = []string{
	"Rising rental rates", "Increasing occupancy", "New development",
	"Market stabilization", "Growing demand", "Supply constraints",
	"Economic growth", "Population increase", "Job market expansion",
	"Infrastructure improvements", "Gentrification", "Tech sector growth",
}

// MarketAnalysis generates count market summaries for category cat. The
// average price per unit is only reported for residential markets.
func (g *Generator) MarketAnalysis(count int, cat model.PropertyCategory) ([]model.MarketAnalysisData, error) {
	p, err := paramsFor(cat)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		return []model.MarketAnalysisData{}, nil
	}

	s := g.src
	out := make([]model.MarketAnalysisData, 0, count)
	for i := 0; i < count; i++ {
		area := s.Place()
		m := model.MarketAnalysisData{
			MarketName:     fmt.Sprintf("%s %s Market", s.City(), cat.Title()),
			GeographicArea: fmt.Sprintf("%s, %s", area.City, area.State),
			AnalysisDate:   s.Date(g.today.AddDate(0, 0, -90), g.today),
			PropertyType:   cat,
		}

		m.AvgSalePrice = s.Money(p.mktSalePrice.Min, p.mktSalePrice.Max)
		m.AvgPricePerSqft = s.Money(p.mktPricePerSqft.Min, p.mktPricePerSqft.Max)
		if p.mktPricePerUnit != nil {
			m.AvgPricePerUnit = ptr(s.Money(p.mktPricePerUnit.Min, p.mktPricePerUnit.Max))
		}
		m.AvgCapRate = s.Money(p.mktCapRate.Min, p.mktCapRate.Max)
		m.AvgOccupancyRate = s.Money(p.mktOccupancy.Min, p.mktOccupancy.Max)
		m.AvgRentPerSqft = s.Money(p.rentPerSqft.Min, p.rentPerSqft.Max)

		m.MarketTrends = synth.Sample(s, marketTrendOptions, s.IntRange(3, 6))
		m.EconomicIndicators = model.EconomicIndicators{
			UnemploymentRate:      oneDecimal(s, 3.0, 8.0),
			GDPGrowth:             oneDecimal(s, 1.0, 5.0),
			PopulationGrowth:      oneDecimal(s, 0.5, 3.0),
			MedianHouseholdIncome: s.IntRange(45000, 120000),
			JobGrowthRate:         oneDecimal(s, 1.0, 4.0),
		}
		m.Demographics = model.Demographics{
			MedianAge:              s.IntRange(28, 45),
			CollegeEducatedPercent: oneDecimal(s, 25.0, 65.0),
			HouseholdSizeAvg:       oneDecimal(s, 2.0, 3.5),
			HomeownershipRate:      oneDecimal(s, 45.0, 75.0),
		}

		competition := []string{
			fmt.Sprintf("%d new properties under construction", s.IntRange(5, 20)),
			fmt.Sprintf("%d properties for sale", s.IntRange(10, 50)),
			fmt.Sprintf("%d major developments planned", s.IntRange(2, 8)),
			"Strong institutional investor presence",
			"Limited land availability",
			"High construction costs",
			"Zoning restrictions",
			"Traffic and accessibility concerns",
		}
		m.CompetitionAnalysis = synth.Sample(s, competition, s.IntRange(3, 5))

		m.MarketID = s.ID("MARKET", 10000, 99999)
		m.Notes = g.note(0.2, "Market analysis for %s", m.MarketName)

		out = append(out, m)
	}
	return out, nil
}

func oneDecimal(s *synth.Source, lo, hi float64) float64 {
	return s.Decimal(lo, hi, 1).InexactFloat64()
}
