package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"generate", "dictionary", "runs", "serve", "verify"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "cre-datagen", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestGenerateCommand_Flags(t *testing.T) {
	for _, name := range []string{
		"output-dir", "seed", "today", "categories", "kinds", "encodings",
		"concurrency", "edge-probability", "no-edge-cases", "no-errors",
		"no-verify", "json", "load",
	} {
		assert.NotNil(t, generateCmd.Flags().Lookup(name), "generate should have --%s", name)
	}

	assert.Equal(t, "o", generateCmd.Flags().Lookup("output-dir").Shorthand)
	assert.Equal(t, "s", generateCmd.Flags().Lookup("seed").Shorthand)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestRunsCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range runsCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"list", "show", "stats"} {
		assert.True(t, names[name], "expected runs subcommand %q", name)
	}
}

func TestVerifyCommand_Args(t *testing.T) {
	assert.Error(t, verifyCmd.Args(verifyCmd, nil))
	assert.NoError(t, verifyCmd.Args(verifyCmd, []string{"run-1"}))
}

func TestRunsCommand_Flags(t *testing.T) {
	for _, name := range []string{"status", "limit", "json"} {
		assert.NotNil(t, runsListCmd.Flags().Lookup(name), "runs list should have --%s", name)
	}
	since := runsStatsCmd.Flags().Lookup("since")
	require.NotNil(t, since)
	assert.Equal(t, "168h0m0s", since.DefValue)
}
