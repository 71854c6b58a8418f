// Package export writes generated records to CSV, XLSX, JSON and YAML files
// and produces the per-run summary.
package export

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/sells-group/cre-datagen/internal/model"
)

// ErrNoRecords is returned when a record writer is given an empty batch.
var ErrNoRecords = eris.New("export: no records to write")

// Format identifies the file format of an artifact.
type Format string

// Artifact formats.
const (
	FormatCSV      Format = "csv"
	FormatXLSX     Format = "xlsx"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "md"
)

// Artifact describes one written file.
type Artifact struct {
	Name     string                 `json:"name"`
	Path     string                 `json:"path"`
	Format   Format                 `json:"format"`
	Kind     model.Kind             `json:"kind,omitempty"`
	Category model.PropertyCategory `json:"category,omitempty"`
	Encoding Encoding               `json:"encoding,omitempty"`
	Variant  string                 `json:"variant,omitempty"`
	Rows     int                    `json:"rows"`
	Bytes    int64                  `json:"bytes"`
}

// Exporter writes files into one output directory. Its methods are safe for
// concurrent use as long as each call targets a different file name.
type Exporter struct {
	dir string
}

// NewExporter creates dir if needed and returns an Exporter writing into it.
func NewExporter(dir string) (*Exporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "export: create output dir %s", dir)
	}
	return &Exporter{dir: dir}, nil
}

// Dir returns the output directory.
func (e *Exporter) Dir() string { return e.dir }

func (e *Exporter) path(name string) string {
	return filepath.Join(e.dir, name)
}

// finish stats the written file and fills in its size.
func (e *Exporter) finish(a Artifact) (Artifact, error) {
	fi, err := os.Stat(a.Path)
	if err != nil {
		return a, eris.Wrapf(err, "export: stat %s", a.Name)
	}
	a.Bytes = fi.Size()
	return a, nil
}

// FormatValue renders a record value as cell text.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "True"
		}
		return "False"
	case decimal.Decimal:
		return model.FormatDecimal(t)
	}
	return ""
}

// header returns the column order for a batch: the first record's keys.
func header(records []model.Record) []string {
	return records[0].Keys()
}

// row renders rec in column order; absent fields become empty cells.
func row(rec model.Record, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = FormatValue(rec.Value(c))
	}
	return out
}
