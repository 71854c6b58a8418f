package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/cre-datagen/internal/model"
)

// CSVName returns the conventional file name for a dataset CSV.
func CSVName(k model.Kind, cat model.PropertyCategory, enc Encoding) string {
	return fmt.Sprintf("%s_%s_%s.csv", k, cat, enc)
}

// CSV writes records to name in encoding enc. The header is the first
// record's field order.
func (e *Exporter) CSV(name string, records []model.Record, enc Encoding) (Artifact, error) {
	if len(records) == 0 {
		return Artifact{}, eris.Wrapf(ErrNoRecords, "export: csv %s", name)
	}

	a := Artifact{Name: name, Path: e.path(name), Format: FormatCSV, Encoding: enc, Rows: len(records)}
	f, err := os.Create(a.Path)
	if err != nil {
		return a, eris.Wrapf(err, "export: create %s", name)
	}
	defer f.Close()

	w, err := NewWriter(f, enc)
	if err != nil {
		return a, err
	}
	if err := writeCSV(w, records); err != nil {
		return a, eris.Wrapf(err, "export: write %s", name)
	}
	if err := w.Close(); err != nil {
		return a, eris.Wrapf(err, "export: flush %s", name)
	}
	if err := f.Close(); err != nil {
		return a, eris.Wrapf(err, "export: close %s", name)
	}
	return e.finish(a)
}

func writeCSV(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)
	cols := header(records)
	if err := cw.Write(cols); err != nil {
		return err
	}
	for _, rec := range records {
		if err := cw.Write(row(rec, cols)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Raw writes text verbatim to name.
func (e *Exporter) Raw(name, text string, format Format) (Artifact, error) {
	a := Artifact{Name: name, Path: e.path(name), Format: format}
	if err := os.WriteFile(a.Path, []byte(text), 0o644); err != nil {
		return a, eris.Wrapf(err, "export: write %s", name)
	}
	return e.finish(a)
}
