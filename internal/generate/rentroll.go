package generate

import (
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/sells-group/cre-datagen/internal/model"
	"github.com/sells-group/cre-datagen/internal/synth"
)

var (
	leaseStatuses = []model.LeaseStatus{
		model.LeaseOccupied, model.LeaseVacant, model.LeasePending, model.LeaseNotAvailable,
	}
	leaseStatusWeights = []float64{0.85, 0.08, 0.05, 0.02}
)

// RentRoll generates count rent-roll units for a property of category cat.
// The tenant name is set exactly when the unit is occupied.
func (g *Generator) RentRoll(count int, cat model.PropertyCategory) ([]model.RentRollUnit, error) {
	p, err := paramsFor(cat)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		return []model.RentRollUnit{}, nil
	}

	s := g.src
	ids := s.NewIDPool("UNIT", 1000, 9999)
	if count > ids.Size() {
		return nil, eris.Wrapf(synth.ErrIDsExhausted, "generate: %d rent-roll units requested, at most %d unique unit ids", count, ids.Size())
	}
	units := make([]model.RentRollUnit, 0, count)
	for i := 0; i < count; i++ {
		u := model.RentRollUnit{
			UnitNumber: p.unitLabel(s),
			Floor:      s.IntRange(p.floors.Min, p.floors.Max),
		}
		if p.bedrooms != nil {
			u.Bedrooms = ptr(synth.Pick(s, p.bedrooms))
		}
		u.Bathrooms = ptr(decimal.RequireFromString(synth.Pick(s, p.bathrooms)))
		u.SquareFootage = s.IntRange(p.unitSqft.Min, p.unitSqft.Max)

		rentPerSqft := s.Money(p.rentPerSqft.Min, p.rentPerSqft.Max)
		base := rentPerSqft.Mul(decimal.NewFromInt(int64(u.SquareFootage)))
		u.RentAmount = s.MoneyBetween(base.Mul(low80), base.Mul(high120))

		u.LeaseStartDate, u.LeaseEndDate = g.leaseWindow(365)
		u.LeaseStatus = synth.Weighted(s, leaseStatuses, leaseStatusWeights)
		if u.LeaseStatus == model.LeaseOccupied {
			u.TenantName = ptr(s.Name())
		}

		u.SecurityDeposit = g.depositFor(u.RentAmount)
		if s.Bernoulli(0.3) {
			u.PetDeposit = ptr(s.Money(200, 1000))
		}
		if p.parking {
			u.ParkingSpaces = ptr(s.IntRange(0, 2))
		}
		u.Amenities = synth.Sample(s, synth.Amenities, s.IntRange(0, 5))
		if u.UnitID, err = ids.Next(); err != nil {
			return nil, err
		}
		u.Notes = g.note(0.1, "Generated unit %d", i+1)

		units = append(units, u)
	}
	return units, nil
}

// OccupiedUnitIDs returns the identifiers of occupied units, in order.
func OccupiedUnitIDs(units []model.RentRollUnit) []string {
	var ids []string
	for _, u := range units {
		if u.LeaseStatus == model.LeaseOccupied {
			ids = append(ids, u.UnitID)
		}
	}
	return ids
}
