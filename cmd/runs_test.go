package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/cre-datagen/internal/ledger"
)

func TestFormatRunsList(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	runs := []ledger.Run{
		{
			ID:        "abc12345-6789-0000-0000-000000000000",
			Spec:      ledger.RunSpec{Seed: 42, Today: "2025-06-15", Categories: []string{"multifamily", "office"}},
			Status:    ledger.RunStatusComplete,
			Files:     57,
			Records:   4210,
			CreatedAt: now,
			UpdatedAt: now.Add(2 * time.Minute),
		},
		{
			ID:        "def12345-6789-0000-0000-000000000000",
			Spec:      ledger.RunSpec{Seed: 7, Categories: []string{"retail"}},
			Status:    ledger.RunStatusRunning,
			CreatedAt: now.Add(-1 * time.Hour),
			UpdatedAt: now.Add(-30 * time.Minute),
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)

	output := buf.String()
	assert.Contains(t, output, "RUN")
	assert.Contains(t, output, "SEED")
	assert.Contains(t, output, "AS OF")
	assert.Contains(t, output, "2025-06-15  multifamily,office")
	assert.Contains(t, output, "STATUS")
	assert.Contains(t, output, "multifamily,office")
	assert.Contains(t, output, "complete")
	assert.Contains(t, output, "4210")
	assert.Contains(t, output, "running")
	assert.Contains(t, output, "2025-06-15 10:30")
	assert.Contains(t, output, "2m0s")
	assert.Contains(t, output, "abc12345")
	assert.NotContains(t, output, "abc12345-6789")
}

func TestFormatRunsList_LongCategories(t *testing.T) {
	runs := []ledger.Run{{
		ID:     "x",
		Spec:   ledger.RunSpec{Categories: []string{"multifamily", "office", "retail", "industrial"}},
		Status: ledger.RunStatusFailed,
	}}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)
	assert.Contains(t, buf.String(), "multifamily,office,retail,i...")
}

func TestRunsStats(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	runs := []ledger.Run{
		{ID: "1", Status: ledger.RunStatusComplete, Files: 10, Records: 100, Spec: ledger.RunSpec{Categories: []string{"office"}}, CreatedAt: now, UpdatedAt: now.Add(10 * time.Second)},
		{ID: "2", Status: ledger.RunStatusComplete, Files: 20, Records: 300, Spec: ledger.RunSpec{Categories: []string{"office", "retail"}}, CreatedAt: now, UpdatedAt: now.Add(30 * time.Second)},
		{ID: "5", Status: ledger.RunStatusFailed, Spec: ledger.RunSpec{Categories: []string{"industrial"}}, CreatedAt: now, UpdatedAt: now},
		{ID: "3", Status: ledger.RunStatusFailed, CreatedAt: now, UpdatedAt: now.Add(5 * time.Second)},
		{ID: "4", Status: ledger.RunStatusRunning, CreatedAt: now, UpdatedAt: now},
	}

	s := computeRunStats(runs)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 2, s.Complete)
	assert.Equal(t, 2, s.Failed)
	assert.Equal(t, 1, s.Running)
	assert.Equal(t, 30, s.Files)
	assert.Equal(t, 400, s.Records)
	assert.InDelta(t, 20.0, s.AvgDurSecs, 0.01)
	assert.Equal(t, map[string]int{"office": 2, "retail": 1}, s.Categories)
}

func TestRunsStats_Empty(t *testing.T) {
	s := computeRunStats(nil)
	assert.Equal(t, 0, s.Total)
	assert.Zero(t, s.AvgDurSecs)
	assert.Empty(t, s.Categories)
}

func TestFormatRunStats(t *testing.T) {
	var buf bytes.Buffer
	formatRunStats(&buf, runStats{
		Total: 3, Complete: 2, Failed: 1, Files: 12, Records: 90, AvgDurSecs: 4.3,
		Categories: map[string]int{"retail": 1, "office": 2},
	})

	output := buf.String()
	assert.Contains(t, output, "3 (2 complete, 1 failed, 0 running)")
	assert.Less(t, strings.Index(output, "office:"), strings.Index(output, "retail:"))
	assert.Contains(t, output, "Records written:")
	assert.Contains(t, output, "90")
	assert.Contains(t, output, "4.3s")
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "abc12345", truncateID("abc12345-6789"))
	assert.Equal(t, "short", truncateID("short"))
}
