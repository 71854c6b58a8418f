package model

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
)

// DateLayout is the rendering used for every date in a flat record.
const DateLayout = "2006-01-02"

// Record is a flat, insertion-ordered mapping from field name to a scalar
// value. Values are nil, string, int, float64, bool or decimal.Decimal.
// Field order is significant: exporters write columns in this order and the
// error synthesizer drops fields by position.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord returns an empty record with room for n fields.
func NewRecord(n int) Record {
	return Record{
		keys:   make([]string, 0, n),
		values: make(map[string]any, n),
	}
}

// Set assigns a value. New keys are appended; existing keys keep their position.
func (r *Record) Set(key string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value for key and whether the key is present.
func (r Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Value returns the value for key, or nil when absent.
func (r Record) Value(key string) any {
	return r.values[key]
}

// Delete removes key, preserving the order of the remaining keys.
func (r *Record) Delete(key string) {
	if _, ok := r.values[key]; !ok {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i:i], r.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the field names in insertion order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.keys) }

// Clone returns an independent copy. Values are scalars so a shallow copy of
// the map is sufficient.
func (r Record) Clone() Record {
	c := NewRecord(len(r.keys))
	for _, k := range r.keys {
		c.Set(k, r.values[k])
	}
	return c
}

// Equal reports whether both records hold the same keys in the same order
// with equal values.
func (r Record) Equal(o Record) bool {
	if len(r.keys) != len(o.keys) {
		return false
	}
	for i, k := range r.keys {
		if o.keys[i] != k {
			return false
		}
		if !valuesEqual(r.values[k], o.values[k]) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	da, aok := a.(decimal.Decimal)
	db, bok := b.(decimal.Decimal)
	if aok && bok {
		return da.Equal(db) && da.Exponent() == db.Exponent()
	}
	if aok != bok {
		return false
	}
	return a == b
}

// MarshalJSON writes the record as a JSON object with keys in insertion order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, eris.Wrapf(err, "record: marshal key %q", k)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := marshalValue(r.values[k])
		if err != nil {
			return nil, eris.Wrapf(err, "record: marshal field %q", k)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Decimals are written as JSON numbers so consumers see numeric columns.
func marshalValue(v any) ([]byte, error) {
	switch t := v.(type) {
	case decimal.Decimal:
		return []byte(FormatDecimal(t)), nil
	case time.Time:
		return json.Marshal(t.Format(DateLayout))
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		return bytes.TrimRight(buf.Bytes(), "\n"), nil
	}
}

// IsNumeric reports whether v is a numeric record value. Booleans are not
// numeric.
func IsNumeric(v any) bool {
	switch v.(type) {
	case int, int64, float64, decimal.Decimal:
		return true
	}
	return false
}

// FormatDecimal renders d at its own scale, keeping trailing zeros, so a
// two-place amount prints as "1500.00".
func FormatDecimal(d decimal.Decimal) string {
	places := -d.Exponent()
	if places < 0 {
		places = 0
	}
	return d.StringFixed(places)
}
