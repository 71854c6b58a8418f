package readback

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// OpenWorkbook reads one worksheet of the workbook at path. An empty sheet
// name selects the first sheet. Trailing rows with no text are dropped.
func OpenWorkbook(path, sheet string) (Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return Table{}, eris.Wrapf(err, "readback: open workbook %s", path)
	}
	if len(f.Sheets) == 0 {
		return Table{}, eris.Errorf("readback: workbook %s has no sheets", path)
	}

	sh := f.Sheets[0]
	if sheet != "" {
		var ok bool
		if sh, ok = f.Sheet[sheet]; !ok {
			return Table{}, eris.Errorf("readback: workbook %s has no sheet %q", path, sheet)
		}
	}

	rows := make([][]string, 0, len(sh.Rows))
	for _, row := range sh.Rows {
		vals := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			vals[i] = c.String()
		}
		rows = append(rows, vals)
	}
	for len(rows) > 0 && blank(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return splitHeader(rows), nil
}

func blank(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
