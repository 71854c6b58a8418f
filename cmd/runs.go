package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/cre-datagen/internal/ledger"
)

const maxCategoriesWidth = 30

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect generation run history",
	Long:  "Commands for listing, viewing, and summarizing generation runs recorded in the local ledger.",
}

// withLedger adapts fn into a RunE that validates config and opens the run
// ledger for the duration of the call.
func withLedger(fn func(ctx context.Context, l ledger.Ledger, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("runs"); err != nil {
			return err
		}
		ctx := cmd.Context()
		l, err := openLedger(ctx)
		if err != nil {
			return err
		}
		defer l.Close() //nolint:errcheck
		return fn(ctx, l, cmd, args)
	}
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generation runs, newest first",
	RunE: withLedger(func(ctx context.Context, l ledger.Ledger, cmd *cobra.Command, _ []string) error {
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		runs, err := l.ListRuns(ctx, ledger.RunFilter{Status: ledger.RunStatus(status), Limit: limit})
		if err != nil {
			return eris.Wrap(err, "runs list")
		}
		if asJSON {
			return writeIndented(os.Stdout, runs)
		}
		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "No runs recorded.")
			return nil
		}
		formatRunsList(os.Stdout, runs)
		return nil
	}),
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a run and the files it wrote",
	Args:  cobra.ExactArgs(1),
	RunE: withLedger(func(ctx context.Context, l ledger.Ledger, _ *cobra.Command, args []string) error {
		run, err := l.GetRun(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "runs show")
		}
		arts, err := l.ListArtifacts(ctx, run.ID)
		if err != nil {
			return eris.Wrap(err, "runs show")
		}
		return writeIndented(os.Stdout, struct {
			*ledger.Run
			Artifacts []ledger.Artifact `json:"artifacts"`
		}{run, arts})
	}),
}

var runsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize recent runs",
	RunE: withLedger(func(ctx context.Context, l ledger.Ledger, cmd *cobra.Command, _ []string) error {
		since, _ := cmd.Flags().GetDuration("since")
		runs, err := l.ListRuns(ctx, ledger.RunFilter{Limit: 10000})
		if err != nil {
			return eris.Wrap(err, "runs stats")
		}
		if since > 0 {
			cutoff := time.Now().Add(-since)
			runs = slices.DeleteFunc(runs, func(r ledger.Run) bool { return !r.CreatedAt.After(cutoff) })
		}
		formatRunStats(os.Stdout, computeRunStats(runs))
		return nil
	}),
}

func init() {
	runsListCmd.Flags().String("status", "", "only runs in this state (running, complete, failed)")
	runsListCmd.Flags().Int("limit", 50, "maximum number of runs to list")
	runsListCmd.Flags().Bool("json", false, "print runs as JSON")

	runsStatsCmd.Flags().Duration("since", 7*24*time.Hour, "only runs started within this window (0 for all)")

	runsCmd.AddCommand(runsListCmd, runsShowCmd, runsStatsCmd)
	rootCmd.AddCommand(runsCmd)
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// runStats aggregates a window of runs. Volume and timing only count
// completed runs.
type runStats struct {
	Total      int
	Complete   int
	Failed     int
	Running    int
	Files      int
	Records    int
	AvgDurSecs float64
	// Categories counts completed runs that generated each category.
	Categories map[string]int
}

func computeRunStats(runs []ledger.Run) runStats {
	s := runStats{Total: len(runs), Categories: map[string]int{}}

	var took time.Duration
	for _, r := range runs {
		switch r.Status {
		case ledger.RunStatusComplete:
			s.Complete++
			s.Files += r.Files
			s.Records += r.Records
			took += r.UpdatedAt.Sub(r.CreatedAt)
			for _, c := range r.Spec.Categories {
				s.Categories[c]++
			}
		case ledger.RunStatusFailed:
			s.Failed++
		default:
			s.Running++
		}
	}
	if s.Complete > 0 {
		s.AvgDurSecs = took.Seconds() / float64(s.Complete)
	}
	return s
}

func formatRunsList(out io.Writer, runs []ledger.Run) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "RUN\tSTATUS\tSEED\tAS OF\tCATEGORIES\tFILES\tRECORDS\tSTARTED\tTOOK")

	for _, r := range runs {
		today := r.Spec.Today
		if today == "" {
			today = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%d\t%d\t%s\t%s\n",
			truncateID(r.ID),
			r.Status,
			r.Spec.Seed,
			today,
			categoriesColumn(r.Spec.Categories),
			r.Files,
			r.Records,
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.UpdatedAt.Sub(r.CreatedAt).Round(time.Second),
		)
	}
	_ = w.Flush()
}

func categoriesColumn(cats []string) string {
	s := strings.Join(cats, ",")
	if len(s) > maxCategoriesWidth {
		s = s[:maxCategoriesWidth-3] + "..."
	}
	return s
}

func formatRunStats(out io.Writer, s runStats) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Runs:\t%d (%d complete, %d failed, %d running)\n", s.Total, s.Complete, s.Failed, s.Running)
	_, _ = fmt.Fprintf(w, "Files written:\t%d\n", s.Files)
	_, _ = fmt.Fprintf(w, "Records written:\t%d\n", s.Records)
	if s.AvgDurSecs > 0 {
		_, _ = fmt.Fprintf(w, "Avg duration:\t%.1fs\n", s.AvgDurSecs)
	}

	cats := make([]string, 0, len(s.Categories))
	for c := range s.Categories {
		cats = append(cats, c)
	}
	slices.Sort(cats)
	for _, c := range cats {
		_, _ = fmt.Fprintf(w, "  %s:\t%d\n", c, s.Categories[c])
	}
	_ = w.Flush()
}

// truncateID shortens a run UUID to its first 8 characters.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
