package readback

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"
)

// ReadCSV decodes r from charset and parses it as a header plus data rows.
// Ragged rows are accepted; quoting errors are not.
func ReadCSV(r io.Reader, charset string) (Table, error) {
	if charset == "" {
		charset = "utf-8"
	}
	dr, err := DecodeReader(r, charset)
	if err != nil {
		return Table{}, err
	}

	cr := csv.NewReader(dr)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return Table{}, eris.Wrap(err, "readback: parse csv")
	}
	return splitHeader(rows), nil
}

// OpenCSV reads the CSV file at path. See ReadCSV.
func OpenCSV(path, charset string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, eris.Wrapf(err, "readback: open %s", path)
	}
	defer f.Close()
	return ReadCSV(f, charset)
}
