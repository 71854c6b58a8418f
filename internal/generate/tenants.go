package generate

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sells-group/cre-datagen/internal/model"
	"github.com/sells-group/cre-datagen/internal/synth"
)

var (
	ageRanges         = []string{"18-25", "26-35", "36-45", "46-55", "56-65", "65+"}
	incomeRanges      = []string{"Under $30k", "$30k-$50k", "$50k-$75k", "$75k-$100k", "$100k-$150k", "$150k+"}
	employmentStatus  = []string{"Employed", "Self-Employed", "Student", "Retired", "Unemployed"}
	creditScoreRanges = []string{"Poor (300-579)", "Fair (580-669)", "Good (670-739)", "Very Good (740-799)", "Excellent (800-850)"}
	contactRelations  = []string{"Parent", "Spouse", "Sibling", "Friend"}
	paymentStatuses   = []model.PaymentStatus{model.PaymentOnTime, model.PaymentLate, model.PaymentPartial}
)

// TenantRoster generates count tenants for category cat with random unit
// identifiers.
func (g *Generator) TenantRoster(count int, cat model.PropertyCategory) ([]model.TenantInfo, error) {
	return g.TenantRosterForUnits(count, cat, nil)
}

// TenantRosterForUnits generates count tenants whose unit identifiers are
// drawn from unitIDs, so the roster joins against a rent roll by value. An
// empty unitIDs falls back to random identifiers.
func (g *Generator) TenantRosterForUnits(count int, cat model.PropertyCategory, unitIDs []string) ([]model.TenantInfo, error) {
	p, err := paramsFor(cat)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		return []model.TenantInfo{}, nil
	}

	s := g.src
	out := make([]model.TenantInfo, 0, count)
	for i := 0; i < count; i++ {
		t := model.TenantInfo{TenantName: s.Name()}
		if len(unitIDs) > 0 {
			t.UnitID = synth.Pick(s, unitIDs)
		} else {
			t.UnitID = s.ID("UNIT", 1000, 9999)
		}
		t.LeaseStartDate, t.LeaseEndDate = g.leaseWindow(1095)

		t.MonthlyRent = s.Money(p.tenantRent.Min, p.tenantRent.Max)
		t.TenantType = p.tenantType
		t.SecurityDeposit = g.depositFor(t.MonthlyRent)
		if p.petDeposits && s.Bernoulli(0.3) {
			t.PetDeposit = ptr(s.Money(200, 1000))
		}

		t.AgeRange = synth.Pick(s, ageRanges)
		t.HouseholdSize = s.IntRange(p.householdSize.Min, p.householdSize.Max)
		t.IncomeRange = synth.Pick(s, incomeRanges)
		t.EmploymentStatus = synth.Pick(s, employmentStatus)
		t.CreditScoreRange = synth.Pick(s, creditScoreRanges)

		t.MoveInDate = t.LeaseStartDate.AddDate(0, 0, s.IntRange(0, 30))
		if s.Bernoulli(0.1) {
			t.MoveOutDate = ptr(s.Date(t.LeaseStartDate, t.LeaseEndDate))
		}
		t.LeaseRenewals = s.IntRange(0, 3)
		t.PaymentHistory = g.paymentHistory(t.LeaseStartDate, t.LeaseEndDate, t.MonthlyRent)
		t.EmergencyContact = fmt.Sprintf("%s - %s", s.Name(), synth.Pick(s, contactRelations))
		t.TenantID = s.ID("TENANT", 10000, 99999)
		t.Notes = g.note(0.1, "Generated tenant %d", i+1)

		out = append(out, t)
	}
	return out, nil
}

// paymentHistory walks 30-day steps from start through min(end, today).
// Each step draws its status independently; partial payments are a fraction
// in [0.5, 1.0] of rent. A lease starting after today has no history.
func (g *Generator) paymentHistory(start, end time.Time, rent decimal.Decimal) []model.Payment {
	s := g.src
	stop := minTime(end, g.today)
	var history []model.Payment
	for cur := start; !cur.After(stop); cur = cur.AddDate(0, 0, periodDays) {
		status := synth.Pick(s, paymentStatuses)
		amount := rent
		if status == model.PaymentPartial {
			amount = synth.RoundHalfUp(rent.Mul(s.Decimal(0.5, 1.0, 2)), 2)
		}
		history = append(history, model.Payment{Date: cur, Amount: amount, Status: status})
	}
	return history
}
