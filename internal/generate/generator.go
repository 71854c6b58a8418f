// Package generate produces internally consistent synthetic records for each
// dataset kind, conditioned on property category.
package generate

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sells-group/cre-datagen/internal/synth"
)

// periodDays is the length of one rent or NOI period.
const periodDays = 30

var (
	pct5    = decimal.RequireFromString("0.05")
	pct15   = decimal.RequireFromString("0.15")
	half    = decimal.RequireFromString("0.5")
	oneHalf = decimal.RequireFromString("1.5")
	low80   = decimal.RequireFromString("0.8")
	high120 = decimal.RequireFromString("1.2")
)

// Generator draws every record from one random stream. It holds no other
// mutable state; a Generator is not safe for concurrent use because its
// Source is not.
type Generator struct {
	src         *synth.Source
	today       time.Time
	expenseFrom time.Time
	expenseTo   time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithToday fixes the reference date used for lease windows, payment
// histories and the NOI series. Reproducible output needs a fixed date.
func WithToday(d time.Time) Option {
	return func(g *Generator) { g.today = synth.Day(d) }
}

// WithExpenseWindow sets the window operating-expense periods start in. A
// zero bound keeps its default: to is today and from is a year before to.
// Reversed bounds are swapped.
func WithExpenseWindow(from, to time.Time) Option {
	return func(g *Generator) {
		if !from.IsZero() {
			g.expenseFrom = synth.Day(from)
		}
		if !to.IsZero() {
			g.expenseTo = synth.Day(to)
		}
	}
}

// New creates a Generator drawing from src.
func New(src *synth.Source, opts ...Option) *Generator {
	g := &Generator{src: src, today: synth.Day(time.Now())}
	for _, o := range opts {
		o(g)
	}
	if g.expenseTo.IsZero() {
		g.expenseTo = g.today
	}
	if g.expenseFrom.IsZero() {
		g.expenseFrom = g.expenseTo.AddDate(0, 0, -365)
	}
	if g.expenseFrom.After(g.expenseTo) {
		g.expenseFrom, g.expenseTo = g.expenseTo, g.expenseFrom
	}
	return g
}

// Today returns the generator's reference date.
func (g *Generator) Today() time.Time { return g.today }

// Source returns the random stream the generator draws from.
func (g *Generator) Source() *synth.Source { return g.src }

// note returns a free-text note with probability p.
func (g *Generator) note(p float64, format string, args ...any) *string {
	if !g.src.Bernoulli(p) {
		return nil
	}
	s := fmt.Sprintf(format, args...)
	return &s
}

// depositFor samples a security deposit between 0.5x and 1.5x of rent.
func (g *Generator) depositFor(rent decimal.Decimal) decimal.Decimal {
	return g.src.MoneyBetween(rent.Mul(half), rent.Mul(oneHalf))
}

// leaseWindow samples a lease start in [today-back, today+30] and an end
// 1 to 3 years later, so end is always after start.
func (g *Generator) leaseWindow(backDays int) (time.Time, time.Time) {
	start := g.src.Date(g.today.AddDate(0, 0, -backDays), g.today.AddDate(0, 0, 30))
	end := start.AddDate(0, 0, g.src.IntRange(365, 1095))
	return start, end
}

func ptr[T any](v T) *T { return &v }

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
