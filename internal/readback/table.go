package readback

import "github.com/rotisserie/eris"

// Table is a decoded tabular artifact: a header row followed by data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// Len returns the number of data rows.
func (t Table) Len() int { return len(t.Rows) }

// Column returns every value in the named column. Short rows yield "".
func (t Table) Column(name string) ([]string, bool) {
	idx := -1
	for i, h := range t.Header {
		if h == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out, true
}

// checkHeader rejects blank or repeated column names.
func (t Table) checkHeader() error {
	seen := make(map[string]bool, len(t.Header))
	for i, h := range t.Header {
		if h == "" {
			return eris.Wrapf(ErrMismatch, "readback: column %d has no name", i+1)
		}
		if seen[h] {
			return eris.Wrapf(ErrMismatch, "readback: column %q repeated", h)
		}
		seen[h] = true
	}
	return nil
}

// splitHeader turns raw rows into a Table, treating the first row as header.
func splitHeader(rows [][]string) Table {
	if len(rows) == 0 {
		return Table{}
	}
	return Table{Header: rows[0], Rows: rows[1:]}
}
