package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/studybuddy/internal/cli/formatter"
	"github.com/alexanderramin/studybuddy/internal/service"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "plan",
		Aliases: []string{"plans"},
		Short:   "Generate and review study plans",
	}

	cmd.AddCommand(
		newPlanGenerateCmd(app),
		newPlanListCmd(app),
		newPlanShowCmd(app),
		newPlanRemoveCmd(app),
	)

	return cmd
}

func newPlanGenerateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Draft a 7-day study plan from pending assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := currentUser(cmd)
			if err != nil {
				return err
			}
			if !app.Plans.Configured() {
				return fmt.Errorf("plan generation is unavailable: configure an LLM provider first")
			}
			plan, err := app.Plans.Generate(cmd.Context(), owner)
			if errors.Is(err, service.ErrNoPendingWork) {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing pending. Add an assignment first.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStudyPlan(plan))
			return nil
		},
	}
}

func newPlanListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recent study plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := currentUser(cmd)
			if err != nil {
				return err
			}
			plans, err := app.Plans.ListRecent(cmd.Context(), owner, limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStudyPlanList(plans))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", service.DefaultPlanListLimit, "How many plans to show")

	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a study plan with its sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := currentUser(cmd)
			if err != nil {
				return err
			}
			id, err := resolvePlanID(cmd.Context(), app, owner, args[0])
			if err != nil {
				return err
			}
			plan, err := app.Plans.GetByID(cmd.Context(), owner, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStudyPlan(plan))
			return nil
		},
	}
}

func newPlanRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a study plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := currentUser(cmd)
			if err != nil {
				return err
			}
			id, err := resolvePlanID(cmd.Context(), app, owner, args[0])
			if err != nil {
				return err
			}
			ok, err := app.confirmDelete(yes, fmt.Sprintf("Delete study plan %s?", formatter.TruncIDPlain(id)))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Kept.")
				return nil
			}
			if err := app.Plans.Delete(cmd.Context(), owner, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted study plan %s\n", formatter.TruncIDPlain(id))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
