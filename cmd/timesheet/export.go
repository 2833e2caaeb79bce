package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"timesheet/internal/export"
)

func newExportCmd(g *globalFlags) *cobra.Command {
	var (
		user     string
		from     string
		to       string
		formulas bool
		out      string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a monthly xlsx timesheet for a user",
		Example: `  timesheet export --user alice --from 2024-01 --to 2024-03 --out q1.xlsx
  timesheet export --user alice --from 2024-02 --formulas > feb.xlsx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if user == "" {
				return fmt.Errorf("--user is required")
			}
			application, _, _, err := g.app(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer application.Close()

			wb, err := application.Timesheet().ExportMonths(cmd.Context(), user, user, from, to)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return export.WriteXLSX(w, wb, export.Options{Formulas: formulas})
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "User id to export")
	cmd.Flags().StringVar(&from, "from", "", "First month, YYYY-MM")
	cmd.Flags().StringVar(&to, "to", "", "Last month, YYYY-MM (default: --from)")
	cmd.Flags().BoolVar(&formulas, "formulas", false, "Write live formulas instead of computed values")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: stdout)")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}
