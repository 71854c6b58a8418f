package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/cre-datagen/internal/export"
	"github.com/sells-group/cre-datagen/internal/readback"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <run-id>",
	Short: "Re-read the files of a recorded run and check their row counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := cfg.Validate("runs"); err != nil {
			return err
		}

		l, err := openLedger(ctx)
		if err != nil {
			return err
		}
		defer l.Close() //nolint:errcheck

		run, err := l.GetRun(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "verify")
		}
		arts, err := l.ListArtifacts(ctx, run.ID)
		if err != nil {
			return eris.Wrap(err, "verify")
		}

		files := make([]export.Artifact, 0, len(arts))
		for _, a := range arts {
			files = append(files, a.Artifact)
		}
		if err := readback.VerifyAll(ctx, files); err != nil {
			return eris.Wrap(err, "verify")
		}

		fmt.Fprintf(os.Stdout, "Verified %d files of run %s\n", len(files), run.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
