package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/cre-datagen/internal/model"
)

// JSONName returns the conventional file name for a dataset JSON file.
func JSONName(k model.Kind, cat model.PropertyCategory) string {
	return fmt.Sprintf("%s_%s.json", k, cat)
}

// JSON writes records as an indented array, keeping field order and
// non-ASCII text as-is.
func (e *Exporter) JSON(name string, records []model.Record) (Artifact, error) {
	if len(records) == 0 {
		return Artifact{}, eris.Wrapf(ErrNoRecords, "export: json %s", name)
	}
	a := Artifact{Name: name, Path: e.path(name), Format: FormatJSON, Rows: len(records)}
	if err := e.writeJSON(a.Path, records); err != nil {
		return a, eris.Wrapf(err, "export: write %s", name)
	}
	return e.finish(a)
}

func (e *Exporter) writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}
