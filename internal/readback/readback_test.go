package readback

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/cre-datagen/internal/export"
	"github.com/sells-group/cre-datagen/internal/generate"
	"github.com/sells-group/cre-datagen/internal/inject"
	"github.com/sells-group/cre-datagen/internal/model"
	"github.com/sells-group/cre-datagen/internal/synth"
)

func testRecords(t *testing.T) []model.Record {
	t.Helper()
	g := generate.New(synth.New(5), generate.WithToday(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))
	recs, err := g.Dataset(model.KindRentRoll, 25, model.CategoryMultifamily)
	require.NoError(t, err)
	return recs
}

func TestReadCSV(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("name,age\nAlice,30\nBob\n"), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age"}, tbl.Header)
	assert.Equal(t, 2, tbl.Len())

	ages, ok := tbl.Column("age")
	require.True(t, ok)
	assert.Equal(t, []string{"30", ""}, ages)

	_, ok = tbl.Column("missing")
	assert.False(t, ok)
}

func TestReadCSV_Empty(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(""), "utf-8")
	require.NoError(t, err)
	assert.Nil(t, tbl.Header)
	assert.Zero(t, tbl.Len())
}

func TestReadCSV_Malformed(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(inject.MalformedCSV), "utf-8")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "readback: parse csv")
}

func TestReadCSV_UnknownCharset(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a\n"), "klingon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported charset")
}

func TestOpenCSV_MissingFile(t *testing.T) {
	_, err := OpenCSV(filepath.Join(t.TempDir(), "nope.csv"), "utf-8")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "readback: open")
}

func TestRoundTripEncodings(t *testing.T) {
	t.Parallel()

	recs := testRecords(t)
	e, err := export.NewExporter(t.TempDir())
	require.NoError(t, err)

	for _, enc := range export.AllEncodings() {
		a, err := e.CSV(export.CSVName(model.KindRentRoll, model.CategoryMultifamily, enc), recs, enc)
		require.NoError(t, err)

		tbl, err := OpenCSV(a.Path, string(enc))
		require.NoError(t, err, enc)
		assert.Equal(t, recs[0].Keys(), tbl.Header, enc)
		require.Equal(t, len(recs), tbl.Len(), enc)

		ids, ok := tbl.Column("unit_id")
		require.True(t, ok, enc)
		assert.Equal(t, recs[0].Value("unit_id"), ids[0], enc)
		require.NoError(t, Verify(a))
	}
}

func TestOpenWorkbook(t *testing.T) {
	recs := testRecords(t)
	e, err := export.NewExporter(t.TempDir())
	require.NoError(t, err)

	for _, formatted := range []bool{false, true} {
		x, err := e.XLSX("rr.xlsx", export.SheetName(model.KindRentRoll), recs, formatted)
		require.NoError(t, err)

		tbl, err := OpenWorkbook(x.Path, "Rent Roll")
		require.NoError(t, err)
		assert.Equal(t, recs[0].Keys(), tbl.Header)
		assert.Equal(t, len(recs), tbl.Len())

		first, err := OpenWorkbook(x.Path, "")
		require.NoError(t, err)
		assert.Equal(t, tbl.Header, first.Header)
	}
}

func TestOpenWorkbook_Errors(t *testing.T) {
	recs := testRecords(t)
	e, err := export.NewExporter(t.TempDir())
	require.NoError(t, err)
	x, err := e.XLSX("rr.xlsx", "Rent Roll", recs, false)
	require.NoError(t, err)

	_, err = OpenWorkbook(x.Path, "Missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no sheet "Missing"`)

	path := filepath.Join(t.TempDir(), "bad.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("this is not an xlsx file"), 0o644))
	_, err = OpenWorkbook(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "readback: open workbook")
}

func TestReadJSONRecords(t *testing.T) {
	recs, err := ReadJSONRecords(strings.NewReader(`[{"rent":"1250.50","units":3},{"rent":null}]`))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "1250.50", recs[0]["rent"])
	assert.Equal(t, json.Number("3"), recs[0]["units"])
	assert.Nil(t, recs[1]["rent"])
}

func TestReadJSONRecords_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"object", `{"a":1}`, "want an array"},
		{"scalar element", `[1]`, "json record 1"},
		{"unterminated", `[{"a":1}`, "readback:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSONRecords(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	recs, err := ReadJSONRecords(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestCheckHeader(t *testing.T) {
	assert.NoError(t, Table{Header: []string{"a", "b"}}.checkHeader())
	assert.ErrorIs(t, Table{Header: []string{"a", ""}}.checkHeader(), ErrMismatch)
	assert.ErrorIs(t, Table{Header: []string{"a", "a"}}.checkHeader(), ErrMismatch)
}

func TestVerifyArtifacts(t *testing.T) {
	t.Parallel()

	recs := testRecords(t)
	e, err := export.NewExporter(t.TempDir())
	require.NoError(t, err)

	x, err := e.XLSX("rr.xlsx", export.SheetName(model.KindRentRoll), recs, true)
	require.NoError(t, err)
	x.Kind = model.KindRentRoll
	j, err := e.JSON("rr.json", recs)
	require.NoError(t, err)
	errs, err := e.ErrorFiles("rr_errors", inject.SynthesizeErrors(recs))
	require.NoError(t, err)

	all := append([]export.Artifact{x, j}, errs...)
	require.NoError(t, VerifyAll(context.Background(), all))

	bad := j
	bad.Rows = len(recs) + 1
	assert.ErrorIs(t, Verify(bad), ErrMismatch)

	wrongSheet := x
	wrongSheet.Kind = model.KindNOI
	assert.Error(t, Verify(wrongSheet))
}

func TestVerifyAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := VerifyAll(ctx, []export.Artifact{{Name: "x.csv", Format: export.FormatCSV}})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
