package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
	"golang.org/x/text/encoding/unicode"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/cre-datagen/internal/generate"
	"github.com/sells-group/cre-datagen/internal/inject"
	"github.com/sells-group/cre-datagen/internal/model"
	"github.com/sells-group/cre-datagen/internal/synth"
)

func newTestExporter(t *testing.T) *Exporter {
	t.Helper()
	e, err := NewExporter(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	return e
}

func sampleRecords() []model.Record {
	a := model.NewRecord(4)
	a.Set("name", "Café Δelta")
	a.Set("units", 12)
	a.Set("rent", decimal.RequireFromString("1500.00"))
	a.Set("recurring", true)

	b := model.NewRecord(4)
	b.Set("name", "Plain, \"quoted\"")
	b.Set("units", 3)
	b.Set("rent", nil)
	b.Set("recurring", false)
	return []model.Record{a, b}
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{42, "42"},
		{int64(-7), "-7"},
		{4.5, "4.5"},
		{true, "True"},
		{false, "False"},
		{decimal.RequireFromString("10.50"), "10.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in))
	}
}

func TestCSVUTF8(t *testing.T) {
	t.Parallel()

	e := newTestExporter(t)
	a, err := e.CSV("sample_utf-8.csv", sampleRecords(), UTF8)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Rows)
	assert.Equal(t, FormatCSV, a.Format)
	assert.Positive(t, a.Bytes)

	f, err := os.Open(a.Path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"name", "units", "rent", "recurring"}, rows[0])
	assert.Equal(t, []string{"Café Δelta", "12", "1500.00", "True"}, rows[1])
	assert.Equal(t, []string{"Plain, \"quoted\"", "3", "", "False"}, rows[2])
}

func TestCSVASCII(t *testing.T) {
	t.Parallel()

	e := newTestExporter(t)
	a, err := e.CSV("sample_ascii.csv", sampleRecords(), ASCII)
	require.NoError(t, err)

	b, err := os.ReadFile(a.Path)
	require.NoError(t, err)
	for _, c := range b {
		require.Less(t, c, byte(0x80))
	}
	assert.Contains(t, string(b), "Caf? ?elta")
}

func TestCSVUTF16(t *testing.T) {
	t.Parallel()

	e := newTestExporter(t)
	a, err := e.CSV("sample_utf-16.csv", sampleRecords(), UTF16)
	require.NoError(t, err)

	b, err := os.ReadFile(a.Path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(b), 2)
	assert.Equal(t, []byte{0xFF, 0xFE}, b[:2])

	dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
	text, err := dec.Bytes(b)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(text), "name,units,rent,recurring\n"))
	assert.Contains(t, string(text), "Café Δelta")
}

func TestCSVMissingFieldsRenderEmpty(t *testing.T) {
	t.Parallel()

	recs := sampleRecords()
	recs[1].Delete("units")

	e := newTestExporter(t)
	a, err := e.CSV("gaps.csv", recs, UTF8)
	require.NoError(t, err)
	b, err := os.ReadFile(a.Path)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "", rows[2][1])
}

func TestCSVEmpty(t *testing.T) {
	t.Parallel()

	_, err := newTestExporter(t).CSV("empty.csv", nil, UTF8)
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestCSVDeterministic(t *testing.T) {
	t.Parallel()

	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	write := func() []byte {
		g := generate.New(synth.New(99), generate.WithToday(today))
		recs, err := g.Dataset(model.KindTenantRoster, 30, model.CategoryOffice)
		require.NoError(t, err)
		a, err := newTestExporter(t).CSV("t.csv", recs, UTF8)
		require.NoError(t, err)
		b, err := os.ReadFile(a.Path)
		require.NoError(t, err)
		return b
	}
	assert.Equal(t, write(), write())
}

func TestParseEncoding(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Encoding{"UTF-8": UTF8, "utf8": UTF8, "ascii": ASCII, " utf-16 ": UTF16} {
		got, err := ParseEncoding(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseEncoding("latin-1")
	assert.Error(t, err)

	encs, err := ParseEncodings([]string{"utf-8", "ascii"})
	require.NoError(t, err)
	assert.Equal(t, []Encoding{UTF8, ASCII}, encs)
}

func TestXLSX(t *testing.T) {
	t.Parallel()

	e := newTestExporter(t)
	a, err := e.XLSX("sample.xlsx", SheetName(model.KindRentRoll), sampleRecords(), true)
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, a.Format)

	f, err := xlsx.OpenFile(a.Path)
	require.NoError(t, err)
	sh, ok := f.Sheet["Rent Roll"]
	require.True(t, ok)
	require.Len(t, sh.Rows, 3)

	hdr := sh.Rows[0].Cells
	require.Len(t, hdr, 4)
	assert.Equal(t, "name", hdr[0].String())

	assert.Equal(t, "Café Δelta", sh.Rows[1].Cells[0].String())
	n, err := sh.Rows[1].Cells[1].Int()
	require.NoError(t, err)
	assert.Equal(t, 12, n)
}

func TestXLSXColumnWidths(t *testing.T) {
	t.Parallel()

	a, err := newTestExporter(t).XLSX("widths.xlsx", "Sheet", sampleRecords(), true)
	require.NoError(t, err)

	f, err := xlsx.OpenFile(a.Path)
	require.NoError(t, err)
	cols := f.Sheets[0].Cols

	// name: longest value is 15 runes, units: header of 5 beats "12".
	name := cols.FindColByIndex(1)
	require.NotNil(t, name)
	assert.InDelta(t, 17, name.Width, 0.001)
	units := cols.FindColByIndex(2)
	require.NotNil(t, units)
	assert.InDelta(t, 7, units.Width, 0.001)
}

func TestHeaderStyle(t *testing.T) {
	t.Parallel()

	st := headerStyle()
	assert.True(t, st.Font.Bold)
	assert.Equal(t, "FFFFFFFF", st.Font.Color)
	assert.Equal(t, "FF366092", st.Fill.FgColor)
	assert.Equal(t, "center", st.Alignment.Horizontal)
}

func TestXLSXEmpty(t *testing.T) {
	t.Parallel()

	_, err := newTestExporter(t).XLSX("empty.xlsx", "Sheet", nil, true)
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestSheetName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Operating Expenses", SheetName(model.KindOperatingExpenses))
	assert.LessOrEqual(t, len(SheetName(model.Kind(strings.Repeat("x", 40)))), maxSheetName)
}

func TestJSON(t *testing.T) {
	t.Parallel()

	e := newTestExporter(t)
	a, err := e.JSON("sample.json", sampleRecords())
	require.NoError(t, err)

	b, err := os.ReadFile(a.Path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Café Δelta")
	assert.Less(t, strings.Index(string(b), `"name"`), strings.Index(string(b), `"units"`))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	require.Len(t, got, 2)
	assert.Equal(t, 1500.0, got[0]["rent"])
}

func TestDictionaryFiles(t *testing.T) {
	t.Parallel()

	e := newTestExporter(t)
	a, err := e.Dictionary(DictionaryName(model.KindNOI), model.Dictionary(model.KindNOI))
	require.NoError(t, err)
	assert.Equal(t, "noi_data_fields.csv", a.Name)

	f, err := os.Open(a.Path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"field_name", "description"}, rows[0])
	assert.Len(t, rows, len(model.NOIFields)+1)

	y, err := e.DictionaryYAML(DictionaryYAMLName, model.AllKinds())
	require.NoError(t, err)
	b, err := os.ReadFile(y.Path)
	require.NoError(t, err)

	var doc []kindDictionary
	require.NoError(t, yaml.Unmarshal(b, &doc))
	require.Len(t, doc, len(model.AllKinds()))
	assert.Equal(t, model.KindRentRoll, doc[0].Kind)
	assert.Equal(t, model.RentRollFields, doc[0].Fields)
}

func TestErrorFiles(t *testing.T) {
	t.Parallel()

	e := newTestExporter(t)
	recs := sampleRecords()
	arts, err := e.ErrorFiles("rent_roll_errors", inject.SynthesizeErrors(recs))
	require.NoError(t, err)
	require.Len(t, arts, 3)

	names := []string{arts[0].Name, arts[1].Name, arts[2].Name}
	assert.Equal(t, []string{
		"rent_roll_errors_missing_fields.csv",
		"rent_roll_errors_invalid_types.csv",
		"rent_roll_errors_malformed.csv",
	}, names)

	b, err := os.ReadFile(arts[2].Path)
	require.NoError(t, err)
	assert.Equal(t, inject.MalformedCSV, string(b))

	inv, err := os.ReadFile(arts[1].Path)
	require.NoError(t, err)
	assert.Contains(t, string(inv), inject.InvalidNumber)
}

func TestErrorFilesEmptyBatch(t *testing.T) {
	t.Parallel()

	arts, err := newTestExporter(t).ErrorFiles("x_errors", inject.SynthesizeErrors(nil))
	require.NoError(t, err)
	require.Len(t, arts, 1)
	assert.Equal(t, VariantMalformed, arts[0].Variant)
}

func TestSummary(t *testing.T) {
	t.Parallel()

	files := []Artifact{
		{Name: "rent_roll_multifamily_utf-8.csv", Format: FormatCSV, Kind: model.KindRentRoll, Category: model.CategoryMultifamily, Encoding: UTF8},
		{Name: "rent_roll_multifamily_ascii.csv", Format: FormatCSV, Kind: model.KindRentRoll, Category: model.CategoryMultifamily, Encoding: ASCII},
		{Name: "noi_data_office.xlsx", Format: FormatXLSX, Kind: model.KindNOI, Category: model.CategoryOffice},
		{Name: "rent_roll_fields.csv", Format: FormatCSV, Kind: model.KindRentRoll, Encoding: UTF8},
	}
	s := NewSummary(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), "run-1", 7, files)
	assert.Equal(t, "2025-06-15", s.GenerationDate)
	assert.Equal(t, 4, s.TotalFilesGenerated)
	assert.Equal(t, map[string]int{"rent_roll": 3, "noi_data": 1}, s.FilesByType)
	assert.Equal(t, map[string]int{"multifamily": 2, "office": 1}, s.FilesByPropertyType)
	assert.Equal(t, map[string]int{"utf-8": 2, "ascii": 1}, s.FilesByEncoding)
	assert.Equal(t, map[string]int{"csv": 3, "xlsx": 1}, s.FilesByFormat)
	assert.Equal(t, "noi_data_office.xlsx", s.Files[0])

	e := newTestExporter(t)
	arts, err := e.WriteSummary(s)
	require.NoError(t, err)
	require.Len(t, arts, 2)

	md, err := os.ReadFile(filepath.Join(e.Dir(), ReadmeName))
	require.NoError(t, err)
	assert.Contains(t, string(md), "- **Rent Roll**: 3 files")
	assert.Contains(t, string(md), "- **UTF-8**: 2 files")
	assert.Contains(t, string(md), "- **Run ID**: run-1")

	js, err := os.ReadFile(filepath.Join(e.Dir(), SummaryJSONName))
	require.NoError(t, err)
	var back Summary
	require.NoError(t, json.Unmarshal(js, &back))
	assert.Equal(t, s, back)
}
