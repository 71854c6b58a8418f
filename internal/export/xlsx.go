package export

import (
	"fmt"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/cre-datagen/internal/model"
)

const (
	headerFill     = "FF366092"
	headerFont     = "FFFFFFFF"
	maxColumnWidth = 50
	maxSheetName   = 31
	moneyFormat    = "#,##0.00"
)

// XLSXName returns the conventional file name for a dataset workbook.
func XLSXName(k model.Kind, cat model.PropertyCategory) string {
	return fmt.Sprintf("%s_%s.xlsx", k, cat)
}

// SheetName returns the worksheet title for a dataset, e.g. "Rent Roll".
func SheetName(k model.Kind) string {
	name := k.Title()
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	return name
}

func headerStyle() *xlsx.Style {
	s := xlsx.NewStyle()
	s.Font.Bold = true
	s.Font.Color = headerFont
	s.Fill = *xlsx.NewFill("solid", headerFill, headerFill)
	s.Alignment.Horizontal = "center"
	s.ApplyFont = true
	s.ApplyFill = true
	s.ApplyAlignment = true
	return s
}

// XLSX writes records to a single-sheet workbook. When formatted is true the
// header row is styled, numbers are stored as numeric cells and columns are
// sized to their longest value, capped at 50 characters.
func (e *Exporter) XLSX(name, sheet string, records []model.Record, formatted bool) (Artifact, error) {
	if len(records) == 0 {
		return Artifact{}, eris.Wrapf(ErrNoRecords, "export: xlsx %s", name)
	}
	a := Artifact{Name: name, Path: e.path(name), Format: FormatXLSX, Rows: len(records)}

	f := xlsx.NewFile()
	sh, err := f.AddSheet(sheet)
	if err != nil {
		return a, eris.Wrapf(err, "export: add sheet %q", sheet)
	}

	cols := header(records)
	widths := make([]int, len(cols))

	style := headerStyle()
	hr := sh.AddRow()
	for i, c := range cols {
		cell := hr.AddCell()
		cell.SetString(c)
		if formatted {
			cell.SetStyle(style)
		}
		widths[i] = utf8.RuneCountInString(c)
	}

	for _, rec := range records {
		r := sh.AddRow()
		for i, c := range cols {
			v := rec.Value(c)
			setCell(r.AddCell(), v, formatted)
			if n := utf8.RuneCountInString(FormatValue(v)); n > widths[i] {
				widths[i] = n
			}
		}
	}

	if formatted {
		// Column numbers are 1-based.
		for i, w := range widths {
			sh.SetColWidth(i+1, i+1, float64(min(w+2, maxColumnWidth)))
		}
	}

	if err := f.Save(a.Path); err != nil {
		return a, eris.Wrapf(err, "export: save %s", name)
	}
	return e.finish(a)
}

func setCell(cell *xlsx.Cell, v any, typed bool) {
	if !typed {
		cell.SetString(FormatValue(v))
		return
	}
	switch t := v.(type) {
	case int:
		cell.SetInt(t)
	case int64:
		cell.SetInt64(t)
	case float64:
		cell.SetFloat(t)
	case bool:
		cell.SetBool(t)
	case decimal.Decimal:
		cell.SetFloatWithFormat(t.InexactFloat64(), moneyFormat)
	default:
		cell.SetString(FormatValue(v))
	}
}
