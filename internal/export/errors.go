package export

import (
	"errors"

	"github.com/sells-group/cre-datagen/internal/inject"
	"github.com/sells-group/cre-datagen/internal/model"
)

// Error-file variant names, used as file suffixes.
const (
	VariantMissingFields = "missing_fields"
	VariantInvalidTypes  = "invalid_types"
	VariantMalformed     = "malformed"
)

// ErrorFiles writes the three negative-path files for prefix:
// <prefix>_missing_fields.csv, <prefix>_invalid_types.csv and
// <prefix>_malformed.csv. Record variants that are empty are skipped.
func (e *Exporter) ErrorFiles(prefix string, v inject.ErrorVariants) ([]Artifact, error) {
	var out []Artifact

	for _, part := range []struct {
		variant string
		records []model.Record
	}{
		{VariantMissingFields, v.MissingFields},
		{VariantInvalidTypes, v.InvalidTypes},
	} {
		a, err := e.CSV(prefix+"_"+part.variant+".csv", part.records, UTF8)
		if errors.Is(err, ErrNoRecords) {
			continue
		}
		if err != nil {
			return out, err
		}
		a.Variant = part.variant
		out = append(out, a)
	}

	a, err := e.Raw(prefix+"_"+VariantMalformed+".csv", v.Malformed, FormatCSV)
	if err != nil {
		return out, err
	}
	a.Encoding = UTF8
	a.Variant = VariantMalformed
	out = append(out, a)
	return out, nil
}
