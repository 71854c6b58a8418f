// Package synth provides the seedable random stream and the primitive value
// generators (identifiers, names, addresses, bounded decimals, dates and
// weighted choices) that the record generators build on.
package synth

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
)

// streamSalt separates the PCG stream from the seed so that seed 0 is usable.
const streamSalt = 0x9e3779b97f4a7c15

// Source is a single seedable random stream. Every generator call draws
// from the Source it is handed; nothing reads a process-wide generator.
// A Source is not safe for concurrent use.
type Source struct {
	r    *rand.Rand
	seed uint64
}

// New returns a Source seeded with seed. Two Sources with the same seed
// produce the same sequence of draws.
func New(seed uint64) *Source {
	return &Source{
		r:    rand.New(rand.NewPCG(seed, seed^streamSalt)),
		seed: seed,
	}
}

// NewUnseeded returns a Source with a random seed. The seed is still
// available through Seed so the run can be replayed.
func NewUnseeded() *Source {
	return New(rand.Uint64())
}

// Seed returns the seed the Source was created with.
func (s *Source) Seed() uint64 { return s.seed }

// IntRange returns a uniform integer in [lo, hi].
func (s *Source) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.IntN(hi-lo+1)
}

// Float returns a uniform float in [0, 1).
func (s *Source) Float() float64 {
	return s.r.Float64()
}

// Uniform returns a uniform float in [lo, hi].
func (s *Source) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.r.Float64()
}

// Bernoulli returns true with probability p.
func (s *Source) Bernoulli(p float64) bool {
	return s.r.Float64() < p
}

// Decimal samples uniformly from [lo, hi] and rounds half-up to places
// decimal places.
func (s *Source) Decimal(lo, hi float64, places int32) decimal.Decimal {
	return RoundHalfUp(decimal.NewFromFloat(s.Uniform(lo, hi)), places)
}

// Money samples a two-decimal amount from [lo, hi].
func (s *Source) Money(lo, hi float64) decimal.Decimal {
	return s.Decimal(lo, hi, 2)
}

// MoneyBetween samples a two-decimal amount between two decimal bounds.
func (s *Source) MoneyBetween(lo, hi decimal.Decimal) decimal.Decimal {
	return s.Money(lo.InexactFloat64(), hi.InexactFloat64())
}

// Date returns a day uniformly distributed over [start, end], inclusive.
// end before start is a caller error and panics.
func (s *Source) Date(start, end time.Time) time.Time {
	days := DaysBetween(start, end)
	if days < 0 {
		panic(fmt.Sprintf("synth: date range end %s before start %s", end.Format(time.DateOnly), start.Format(time.DateOnly)))
	}
	return start.AddDate(0, 0, s.r.IntN(days+1))
}

// ID returns an identifier of the form PREFIX_N with N uniform in [lo, hi].
// Successive calls may repeat; use an IDPool where identifiers must be
// unique within a batch.
func (s *Source) ID(prefix string, lo, hi int) string {
	return fmt.Sprintf("%s_%d", prefix, s.IntRange(lo, hi))
}

// ErrIDsExhausted is returned when an IDPool has handed out every
// identifier in its range.
var ErrIDsExhausted = eris.New("synth: identifier range exhausted")

// IDPool draws random PREFIX_N identifiers from [lo, hi] without repeats.
// A draw that hits a used number is redrawn from the same Source, so the
// sequence stays deterministic for a seed.
type IDPool struct {
	src    *Source
	prefix string
	lo, hi int
	used   map[int]struct{}
}

// NewIDPool returns an empty pool over [lo, hi].
func (s *Source) NewIDPool(prefix string, lo, hi int) *IDPool {
	return &IDPool{src: s, prefix: prefix, lo: lo, hi: hi, used: make(map[int]struct{})}
}

// Size returns how many identifiers the pool can hand out in total.
func (p *IDPool) Size() int { return p.hi - p.lo + 1 }

// Next returns an identifier not returned before by this pool.
func (p *IDPool) Next() (string, error) {
	if len(p.used) >= p.Size() {
		return "", eris.Wrapf(ErrIDsExhausted, "synth: %s ids in [%d, %d]", p.prefix, p.lo, p.hi)
	}
	for {
		n := p.src.IntRange(p.lo, p.hi)
		if _, dup := p.used[n]; dup {
			continue
		}
		p.used[n] = struct{}{}
		return fmt.Sprintf("%s_%d", p.prefix, n), nil
	}
}

// RoundHalfUp rounds d to places decimal places with ties away from zero.
func RoundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// DaysBetween returns the whole days from start to end.
func DaysBetween(start, end time.Time) int {
	return int(Day(end).Sub(Day(start)).Hours() / 24)
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Pick returns one element of options chosen uniformly. options must not be
// empty.
func Pick[T any](s *Source, options []T) T {
	return options[s.r.IntN(len(options))]
}

// Weighted returns one element of options chosen with the given relative
// weights. len(weights) must equal len(options) and the weights must sum to
// a positive value.
func Weighted[T any](s *Source, options []T, weights []float64) T {
	var total float64
	for _, w := range weights {
		total += w
	}
	x := s.r.Float64() * total
	var acc float64
	for i, w := range weights {
		acc += w
		if x < acc {
			return options[i]
		}
	}
	return options[len(options)-1]
}

// Sample returns k distinct elements of pool in random order. k is clamped
// to [0, len(pool)]; pool is not modified.
func Sample[T any](s *Source, pool []T, k int) []T {
	if k > len(pool) {
		k = len(pool)
	}
	if k <= 0 {
		return nil
	}
	tmp := make([]T, len(pool))
	copy(tmp, pool)
	for i := 0; i < k; i++ {
		j := i + s.r.IntN(len(tmp)-i)
		tmp[i], tmp[j] = tmp[j], tmp[i]
	}
	return tmp[:k]
}
