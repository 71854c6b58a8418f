package inject

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/cre-datagen/internal/model"
)

func TestSynthesizeErrors(t *testing.T) {
	t.Parallel()

	batch := generatedBatch(t, model.KindComparables, 25)
	before := cloneAll(batch)
	v := SynthesizeErrors(batch)

	require.Len(t, v.MissingFields, 10)
	require.Len(t, v.InvalidTypes, 10)
	for i := 0; i < 10; i++ {
		keys := batch[i].Keys()
		assert.Equal(t, keys[3:], v.MissingFields[i].Keys())
		for _, k := range keys[:3] {
			_, ok := v.MissingFields[i].Get(k)
			assert.False(t, ok, k)
		}

		for _, k := range keys {
			got := v.InvalidTypes[i].Value(k)
			if model.IsNumeric(batch[i].Value(k)) {
				assert.Equal(t, InvalidNumber, got, k)
			} else {
				assert.Equal(t, batch[i].Value(k), got, k)
			}
		}
	}
	for i := range batch {
		assert.True(t, batch[i].Equal(before[i]))
	}
	assert.Equal(t, MalformedCSV, v.Malformed)
}

func TestSynthesizeErrorsShortBatch(t *testing.T) {
	t.Parallel()

	r := model.NewRecord(2)
	r.Set("a", 1)
	r.Set("b", "x")
	v := SynthesizeErrors([]model.Record{r})
	require.Len(t, v.MissingFields, 1)
	assert.Equal(t, 0, v.MissingFields[0].Len())
	assert.Equal(t, InvalidNumber, v.InvalidTypes[0].Value("a"))

	empty := SynthesizeErrors(nil)
	assert.NotNil(t, empty.MissingFields)
	assert.Empty(t, empty.MissingFields)
	assert.Empty(t, empty.InvalidTypes)
	assert.Equal(t, MalformedCSV, empty.Malformed)
}

func TestMalformedCSVDoesNotParse(t *testing.T) {
	t.Parallel()

	_, err := csv.NewReader(strings.NewReader(MalformedCSV)).ReadAll()
	assert.Error(t, err)
	assert.Len(t, strings.Split(strings.TrimSuffix(MalformedCSV, "\n"), "\n"), 5)
}
