package readback

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/cre-datagen/internal/export"
)

// ErrMismatch is returned when a file does not match its artifact record.
var ErrMismatch = eris.New("readback: artifact mismatch")

// Verify re-reads a written artifact and checks that it parses, that tabular
// files carry a usable header, and that the data row count matches a.Rows.
// Malformed error files are expected not to parse and are skipped, as are
// formats without rows.
func Verify(a export.Artifact) error {
	if a.Variant == export.VariantMalformed {
		return nil
	}

	var (
		got int
		err error
	)
	switch a.Format {
	case export.FormatCSV:
		got, err = verifyTable(OpenCSV(a.Path, string(a.Encoding)))
	case export.FormatXLSX:
		sheet := ""
		if a.Kind != "" {
			sheet = export.SheetName(a.Kind)
		}
		got, err = verifyTable(OpenWorkbook(a.Path, sheet))
	case export.FormatJSON:
		// The run summary is a single object, recorded with no rows.
		if a.Rows == 0 {
			return nil
		}
		var recs []map[string]any
		recs, err = OpenJSON(a.Path)
		got = len(recs)
	default:
		return nil
	}
	if err != nil {
		return eris.Wrapf(err, "readback: %s", a.Name)
	}

	if got != a.Rows {
		return eris.Wrapf(ErrMismatch, "readback: %s has %d rows, want %d", a.Name, got, a.Rows)
	}
	return nil
}

func verifyTable(t Table, err error) (int, error) {
	if err != nil {
		return 0, err
	}
	if t.Len() > 0 {
		if err := t.checkHeader(); err != nil {
			return 0, err
		}
	}
	return t.Len(), nil
}

// VerifyAll checks every artifact in order and returns the first failure.
// It stops early when ctx is done.
func VerifyAll(ctx context.Context, artifacts []export.Artifact) error {
	for _, a := range artifacts {
		if err := ctx.Err(); err != nil {
			return eris.Wrap(err, "readback: verify cancelled")
		}
		if err := Verify(a); err != nil {
			return err
		}
	}
	return nil
}
