package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/sells-group/cre-datagen/internal/config"
	"github.com/sells-group/cre-datagen/internal/db"
	"github.com/sells-group/cre-datagen/internal/export"
	"github.com/sells-group/cre-datagen/internal/pipeline"
	"github.com/sells-group/cre-datagen/internal/resilience"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the full test data set",
	Long:  "Generates every dataset for each property category, writes CSV in each encoding plus XLSX, JSON, error variants, data dictionaries and a run summary.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := applyGenerateFlags(cmd, cfg); err != nil {
			return err
		}
		if err := cfg.Validate("generate"); err != nil {
			return err
		}

		exporter, err := export.NewExporter(cfg.Generate.OutputDir)
		if err != nil {
			return err
		}

		l, err := openLedger(ctx)
		if err != nil {
			return err
		}
		defer l.Close() //nolint:errcheck

		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		var loader pipeline.Loader
		if pool != nil {
			defer pool.Close()
			retry := resilience.DefaultRetryConfig().WithMaxAttempts(cfg.Postgres.MaxAttempts)
			loader = db.NewLoader(pool, cfg.Postgres.Schema, db.WithRetry(retry))
		}

		res, err := pipeline.New(cfg, exporter, l, loader).Run(ctx)
		if err != nil {
			return eris.Wrap(err, "generate")
		}

		zap.L().Info("generation complete",
			zap.String("run_id", res.RunID),
			zap.String("output_dir", exporter.Dir()),
		)
		fmt.Fprintf(os.Stdout, "Generated %d files (%d records) in %s\n", len(res.Artifacts), res.Records, exporter.Dir())
		fmt.Fprintf(os.Stdout, "Run %s, seed %d\n", res.RunID, res.Seed)
		return nil
	},
}

// applyGenerateFlags copies explicitly set flags over the loaded config.
func applyGenerateFlags(cmd *cobra.Command, c *config.Config) error {
	f := cmd.Flags()
	if f.Changed("output-dir") {
		c.Generate.OutputDir, _ = f.GetString("output-dir")
	}
	if f.Changed("seed") {
		c.Generate.Seed, _ = f.GetUint64("seed")
	}
	if f.Changed("today") {
		c.Generate.Today, _ = f.GetString("today")
	}
	if f.Changed("expense-from") {
		c.Generate.ExpenseFrom, _ = f.GetString("expense-from")
	}
	if f.Changed("expense-to") {
		c.Generate.ExpenseTo, _ = f.GetString("expense-to")
	}
	if f.Changed("categories") {
		c.Generate.Categories, _ = f.GetStringSlice("categories")
	}
	if f.Changed("kinds") {
		c.Generate.Kinds, _ = f.GetStringSlice("kinds")
	}
	if f.Changed("encodings") {
		c.Export.Encodings, _ = f.GetStringSlice("encodings")
	}
	if f.Changed("concurrency") {
		c.Generate.Concurrency, _ = f.GetInt("concurrency")
	}
	if f.Changed("edge-probability") {
		c.Generate.EdgeProbability, _ = f.GetFloat64("edge-probability")
	}
	if noEdge, _ := f.GetBool("no-edge-cases"); noEdge {
		c.Generate.EdgeCases = false
	}
	if noErr, _ := f.GetBool("no-errors"); noErr {
		c.Generate.Errors = false
	}
	if noVerify, _ := f.GetBool("no-verify"); noVerify {
		c.Generate.Verify = false
	}
	if j, _ := f.GetBool("json"); j {
		c.Export.JSON = true
	}
	if load, _ := f.GetBool("load"); load {
		c.Postgres.Load = true
	}

	for i, name := range c.Generate.Categories {
		c.Generate.Categories[i] = strings.ToLower(strings.TrimSpace(name))
	}
	if c.Generate.OutputDir == "" {
		return eris.New("generate: --output-dir must not be empty")
	}
	return nil
}

func registerGenerateFlags(f *pflag.FlagSet) {
	f.StringP("output-dir", "o", "", "output directory (default from config)")
	f.Uint64P("seed", "s", 0, "random seed; 0 picks one and reports it")
	f.String("today", "", "reference date YYYY-MM-DD (default: current date)")
	f.String("expense-from", "", "earliest operating-expense period start YYYY-MM-DD (default: a year before --expense-to)")
	f.String("expense-to", "", "latest operating-expense period start YYYY-MM-DD (default: --today)")
	f.StringSlice("categories", nil, "property categories (multifamily, office, retail, industrial, mixed_use)")
	f.StringSlice("kinds", nil, "dataset kinds to generate (default: all)")
	f.StringSlice("encodings", nil, "CSV encodings (utf-8, ascii, utf-16)")
	f.Int("concurrency", 0, "parallel file writers (default from config)")
	f.Float64("edge-probability", 0, "share of records copied as edge cases")
	f.Bool("no-edge-cases", false, "skip edge-case injection")
	f.Bool("no-errors", false, "skip error-variant files")
	f.Bool("no-verify", false, "skip reading files back after writing")
	f.Bool("json", false, "also write JSON arrays")
	f.Bool("load", false, "bulk load batches into Postgres")
}

func init() {
	registerGenerateFlags(generateCmd.Flags())
	rootCmd.AddCommand(generateCmd)
}
