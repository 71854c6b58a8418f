package inject

import "github.com/sells-group/cre-datagen/internal/model"

// InvalidNumber replaces numeric values in the invalid-type variant.
const InvalidNumber = "invalid_number"

// errorSampleSize is how many leading records each record-based variant uses.
const errorSampleSize = 10

// droppedFieldCount is how many leading fields the missing-fields variant
// removes from each record.
const droppedFieldCount = 3

// MalformedCSV is a fixed delimited-text fragment with unbalanced quoting and
// embedded delimiters. It does not depend on the batch it accompanies.
const MalformedCSV = `field1,field2,field3
"value1","value2","value3"
"value1,with,commas","value2","value3"
"value1","value2"with"quotes","value3"
"value1","value2","value3"
`

// ErrorVariants holds the invalid batches derived from one clean batch.
type ErrorVariants struct {
	MissingFields []model.Record
	InvalidTypes  []model.Record
	Malformed     string
}

// SynthesizeErrors builds the negative-path variants for batch. It never
// fails and never modifies batch.
func SynthesizeErrors(batch []model.Record) ErrorVariants {
	n := min(errorSampleSize, len(batch))
	v := ErrorVariants{
		MissingFields: make([]model.Record, 0, n),
		InvalidTypes:  make([]model.Record, 0, n),
		Malformed:     MalformedCSV,
	}

	for _, rec := range batch[:n] {
		missing := rec.Clone()
		keys := missing.Keys()
		for _, k := range keys[:min(droppedFieldCount, len(keys))] {
			missing.Delete(k)
		}
		v.MissingFields = append(v.MissingFields, missing)

		invalid := rec.Clone()
		for _, k := range keys {
			if model.IsNumeric(invalid.Value(k)) {
				invalid.Set(k, InvalidNumber)
			}
		}
		v.InvalidTypes = append(v.InvalidTypes, invalid)
	}
	return v
}
