package generate

import (
	"fmt"

	"github.com/sells-group/cre-datagen/internal/model"
	"github.com/sells-group/cre-datagen/internal/synth"
)

var expenseKinds = []string{"Service", "Repair", "Maintenance", "Supply", "Fee"}

// expenseAmountRanges maps an expense category to its amount range.
// Categories not listed use defaultExpenseRange.
var expenseAmountRanges = map[string]span[float64]{
	"Maintenance":          {100, 5000},
	"Repairs":              {100, 5000},
	"Utilities":            {500, 3000},
	"Insurance":            {2000, 15000},
	"Property Management":  {1000, 8000},
	"Legal & Professional": {500, 3000},
	"Marketing":            {500, 3000},
}

var defaultExpenseRange = span[float64]{50, 2000}

// OperatingExpenses generates count expense line items. Expense amounts are
// conditioned on the expense category, not the property category; cat is
// still validated so every generator rejects the same inputs.
func (g *Generator) OperatingExpenses(count int, cat model.PropertyCategory) ([]model.OperatingExpense, error) {
	if _, err := paramsFor(cat); err != nil {
		return nil, err
	}
	if count <= 0 {
		return []model.OperatingExpense{}, nil
	}

	s := g.src
	out := make([]model.OperatingExpense, 0, count)
	for i := 0; i < count; i++ {
		category := synth.Pick(s, synth.ExpenseCategories)
		sub := synth.Pick(s, synth.ExpenseSubcategories[category])

		r, ok := expenseAmountRanges[category]
		if !ok {
			r = defaultExpenseRange
		}

		e := model.OperatingExpense{
			Category:    category,
			Subcategory: sub,
			Description: fmt.Sprintf("%s - %s - %s", category, sub, synth.Pick(s, expenseKinds)),
			Amount:      s.Money(r.Min, r.Max),
		}
		e.PeriodStart = s.Date(g.expenseFrom, g.expenseTo)
		e.PeriodEnd = e.PeriodStart.AddDate(0, 0, s.IntRange(1, 90))
		e.Vendor = synth.Pick(s, synth.Vendors)
		e.InvoiceNumber = fmt.Sprintf("INV-%d", s.IntRange(10000, 99999))
		e.PaymentDate = e.PeriodStart.AddDate(0, 0, s.IntRange(1, 30))
		e.PaymentMethod = synth.Pick(s, synth.PaymentMethods)
		e.Recurring = s.Bernoulli(0.3)
		e.ExpenseID = s.ID("EXP", 10000, 99999)
		e.Notes = g.note(0.1, "Generated expense %d", i+1)

		out = append(out, e)
	}
	return out, nil
}
