// Package inject derives boundary-value copies and deliberately invalid
// batches from clean generated records.
package inject

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sells-group/cre-datagen/internal/model"
	"github.com/sells-group/cre-datagen/internal/synth"
)

// DefaultProbability is the share of records that receive an edge-case copy.
const DefaultProbability = 0.1

// fieldShare is the chance each qualifying field is touched by a per-field
// mutation.
const fieldShare = 0.3

var (
	specialChars  = []rune(`!@#$%^&*()_+-=[]{}|;':",./<>?`)
	nonASCIIChars = []rune("αβγδεζηθικλμνξοπρστυφχψω")
)

// Mutation is one kind of boundary-value rewrite.
type Mutation int

// Mutation kinds.
const (
	EmptyField Mutation = iota
	SpecialCharacters
	OversizedNumber
	NegativeNumber
	ZeroValue
	OversizedString
	NonASCII
)

// AllMutations lists every mutation kind.
func AllMutations() []Mutation {
	return []Mutation{EmptyField, SpecialCharacters, OversizedNumber, NegativeNumber, ZeroValue, OversizedString, NonASCII}
}

func (m Mutation) String() string {
	switch m {
	case EmptyField:
		return "empty_field"
	case SpecialCharacters:
		return "special_characters"
	case OversizedNumber:
		return "oversized_number"
	case NegativeNumber:
		return "negative_number"
	case ZeroValue:
		return "zero_value"
	case OversizedString:
		return "oversized_string"
	case NonASCII:
		return "non_ascii"
	}
	return "unknown"
}

// changes reports whether applying m to v would alter it.
func (m Mutation) changes(v any) bool {
	switch m {
	case EmptyField, OversizedString:
		s, ok := v.(string)
		return ok && s != ""
	case SpecialCharacters, NonASCII:
		_, ok := v.(string)
		return ok
	case OversizedNumber, ZeroValue:
		return model.IsNumeric(v) && sign(v) != 0
	case NegativeNumber:
		return model.IsNumeric(v) && sign(v) > 0
	}
	return false
}

// Injector applies mutations using one random stream.
type Injector struct {
	src *synth.Source
}

// NewInjector creates an Injector drawing from src.
func NewInjector(src *synth.Source) *Injector {
	return &Injector{src: src}
}

// EdgeCases returns mutated copies of a random subset of batch. Each record is
// selected independently with probability p and receives exactly one mutation
// kind, chosen uniformly among the kinds that can alter it. The input is never
// modified; callers append the result to the clean batch.
//
// Every returned copy differs from its source in at least one field, except
// for records holding no string or numeric value at all, which are copied
// unchanged.
func (in *Injector) EdgeCases(batch []model.Record, p float64) []model.Record {
	out := make([]model.Record, 0)
	for _, rec := range batch {
		if !in.src.Bernoulli(p) {
			continue
		}
		out = append(out, in.mutate(rec))
	}
	return out
}

func (in *Injector) mutate(rec model.Record) model.Record {
	c := rec.Clone()

	var applicable []Mutation
	for _, m := range AllMutations() {
		if len(qualifying(c, m)) > 0 {
			applicable = append(applicable, m)
		}
	}
	if len(applicable) == 0 {
		return c
	}
	in.Apply(&c, synth.Pick(in.src, applicable))
	return c
}

// Apply rewrites r in place with mutation m and returns the names of the
// fields it touched.
func (in *Injector) Apply(r *model.Record, m Mutation) []string {
	keys := qualifying(*r, m)
	if len(keys) == 0 {
		return nil
	}

	var touched []string
	if m == EmptyField {
		touched = synth.Sample(in.src, keys, in.src.IntRange(1, 3))
	} else {
		for _, k := range keys {
			if in.src.Bernoulli(fieldShare) {
				touched = append(touched, k)
			}
		}
		if len(touched) == 0 {
			touched = []string{synth.Pick(in.src, keys)}
		}
	}

	for _, k := range touched {
		r.Set(k, in.rewrite(m, r.Value(k)))
	}
	return touched
}

func (in *Injector) rewrite(m Mutation, v any) any {
	switch m {
	case EmptyField:
		return ""
	case SpecialCharacters:
		return v.(string) + string(synth.Pick(in.src, specialChars))
	case NonASCII:
		return v.(string) + string(synth.Pick(in.src, nonASCIIChars))
	case OversizedString:
		return strings.Repeat(v.(string), in.src.IntRange(10, 50))
	case OversizedNumber:
		return scale(v, in.src.IntRange(1000, 10000))
	case NegativeNumber:
		return negAbs(v)
	case ZeroValue:
		return zeroOf(v)
	}
	return v
}

func qualifying(r model.Record, m Mutation) []string {
	var keys []string
	for _, k := range r.Keys() {
		if m.changes(r.Value(k)) {
			keys = append(keys, k)
		}
	}
	return keys
}

func sign(v any) int {
	switch n := v.(type) {
	case int:
		return cmpZero(n)
	case int64:
		return cmpZero(n)
	case float64:
		return cmpZero(n)
	case decimal.Decimal:
		return n.Sign()
	}
	return 0
}

func cmpZero[T int | int64 | float64](n T) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

func scale(v any, factor int) any {
	switch n := v.(type) {
	case int:
		return n * factor
	case int64:
		return n * int64(factor)
	case float64:
		return n * float64(factor)
	case decimal.Decimal:
		return n.Mul(decimal.NewFromInt(int64(factor)))
	}
	return v
}

func negAbs(v any) any {
	switch n := v.(type) {
	case int:
		if n > 0 {
			return -n
		}
	case int64:
		if n > 0 {
			return -n
		}
	case float64:
		if n > 0 {
			return -n
		}
	case decimal.Decimal:
		return n.Abs().Neg()
	}
	return v
}

// zeroOf keeps the value's type and, for decimals, its scale.
func zeroOf(v any) any {
	switch n := v.(type) {
	case int:
		return 0
	case int64:
		return int64(0)
	case float64:
		return 0.0
	case decimal.Decimal:
		return decimal.New(0, n.Exponent())
	}
	return v
}
