package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/studycal/internal/cli/formatter"
	"github.com/alexanderramin/studycal/internal/export"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage saved plans",
	}

	cmd.AddCommand(
		newPlanListCmd(app),
		newPlanShowCmd(app),
		newPlanViewCmd(app),
		newPlanExportCmd(app),
		newPlanRemoveCmd(app),
	)

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved plans, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.Plans.List(context.Background(), limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlanList(plans, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Show at most this many plans (0 for all)")
	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Print a saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Plans.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanDetail(p, app.now()))
			return nil
		},
	}
}

func newPlanViewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "view ID",
		Short: "Browse a saved plan in a scrollable pager",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Plans.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			content := formatter.FormatPlanDetail(p, app.now())
			if !app.interactive() {
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}
			return runPager(cmd.InOrStdin(), cmd.OutOrStdout(), p.Name, content)
		},
	}
}

func newPlanExportCmd(app *App) *cobra.Command {
	var out, place string
	var groupByDay bool

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Export a saved plan to .ics or .xlsx",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Plans.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			if err := writePlanFile(out, p, export.PlanOptions{GroupByDay: groupByDay, Place: place}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d sessions)\n", out, len(p.Sessions))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (.ics or .xlsx)")
	cmd.Flags().StringVar(&place, "place", "", "Calendar event location")
	cmd.Flags().BoolVar(&groupByDay, "group-by-day", false, "One calendar event per day with a lesson checklist")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newPlanRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete a saved plan",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Plans.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed plan %s\n", args[0])
			return nil
		},
	}
}
