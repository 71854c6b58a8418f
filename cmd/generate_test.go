package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/cre-datagen/internal/config"
)

// newGenerateFlagsCmd returns a fresh command carrying the generate flags so
// tests do not share flag state.
func newGenerateFlagsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "generate"}
	registerGenerateFlags(cmd.Flags())
	return cmd
}

func baseConfig() *config.Config {
	return &config.Config{
		Generate: config.GenerateConfig{
			OutputDir:       "test-data",
			Categories:      []string{"multifamily", "office", "retail"},
			EdgeCases:       true,
			EdgeProbability: 0.1,
			Errors:          true,
			Verify:          true,
			Concurrency:     4,
		},
		Export: config.ExportConfig{Encodings: []string{"utf-8"}},
	}
}

func TestApplyGenerateFlags(t *testing.T) {
	cmd := newGenerateFlagsCmd()
	require.NoError(t, cmd.Flags().Parse([]string{
		"-o", "out", "-s", "99", "--today", "2025-01-31",
		"--expense-from", "2024-02-01", "--expense-to", "2024-12-31",
		"--categories", " Office ,industrial", "--kinds", "rent_roll",
		"--encodings", "utf-16", "--concurrency", "2", "--edge-probability", "0.25",
		"--no-edge-cases", "--no-errors", "--no-verify", "--json", "--load",
	}))

	c := baseConfig()
	require.NoError(t, applyGenerateFlags(cmd, c))

	assert.Equal(t, "out", c.Generate.OutputDir)
	assert.Equal(t, uint64(99), c.Generate.Seed)
	assert.Equal(t, "2025-01-31", c.Generate.Today)
	assert.Equal(t, "2024-02-01", c.Generate.ExpenseFrom)
	assert.Equal(t, "2024-12-31", c.Generate.ExpenseTo)
	assert.Equal(t, []string{"office", "industrial"}, c.Generate.Categories)
	assert.Equal(t, []string{"rent_roll"}, c.Generate.Kinds)
	assert.Equal(t, []string{"utf-16"}, c.Export.Encodings)
	assert.Equal(t, 2, c.Generate.Concurrency)
	assert.InDelta(t, 0.25, c.Generate.EdgeProbability, 1e-9)
	assert.False(t, c.Generate.EdgeCases)
	assert.False(t, c.Generate.Errors)
	assert.False(t, c.Generate.Verify)
	assert.True(t, c.Export.JSON)
	assert.True(t, c.Postgres.Load)
}

func TestApplyGenerateFlags_KeepsConfigWhenUnset(t *testing.T) {
	cmd := newGenerateFlagsCmd()
	require.NoError(t, cmd.Flags().Parse(nil))

	c := baseConfig()
	require.NoError(t, applyGenerateFlags(cmd, c))
	assert.Equal(t, baseConfig(), c)
}

func TestApplyGenerateFlags_EmptyOutputDir(t *testing.T) {
	cmd := newGenerateFlagsCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--output-dir", ""}))

	err := applyGenerateFlags(cmd, baseConfig())
	assert.Error(t, err)
}
