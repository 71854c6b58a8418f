package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/cre-datagen/internal/export"
	"github.com/sells-group/cre-datagen/internal/model"
)

var dictionaryCmd = &cobra.Command{
	Use:   "dictionary",
	Short: "Write the data dictionaries for every dataset kind",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("dictionary"); err != nil {
			return err
		}

		dir, _ := cmd.Flags().GetString("output-dir")
		if dir == "" {
			dir = cfg.Generate.OutputDir
		}
		exporter, err := export.NewExporter(dir)
		if err != nil {
			return err
		}

		kinds := model.AllKinds()
		for _, k := range kinds {
			a, err := exporter.Dictionary(export.DictionaryName(k), model.Dictionary(k))
			if err != nil {
				return eris.Wrapf(err, "dictionary %s", k)
			}
			fmt.Fprintln(os.Stdout, a.Path)
		}
		a, err := exporter.DictionaryYAML(export.DictionaryYAMLName, kinds)
		if err != nil {
			return eris.Wrap(err, "dictionary yaml")
		}
		fmt.Fprintln(os.Stdout, a.Path)
		return nil
	},
}

func init() {
	dictionaryCmd.Flags().StringP("output-dir", "o", "", "output directory (default from config)")
	rootCmd.AddCommand(dictionaryCmd)
}
