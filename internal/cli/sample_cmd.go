package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/studycal/internal/importer"
	"github.com/spf13/cobra"
)

func newSampleCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a sample lesson spreadsheet to fill in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := importer.SampleSpreadsheet()
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("writing sample: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\nColumns: Module | Title | Notes | Duration | Done (x)\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "sample_spreadsheet.xlsx", "Output file")
	return cmd
}
