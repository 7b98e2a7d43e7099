package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/studybuddy/internal/cli/formatter"
	"github.com/alexanderramin/studybuddy/internal/domain"
	"github.com/alexanderramin/studybuddy/internal/repository"
	"github.com/alexanderramin/studybuddy/internal/scheduler"
	"github.com/spf13/cobra"
)

func newAssignmentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assignment",
		Aliases: []string{"assignments", "hw"},
		Short:   "Manage assignments",
	}

	cmd.AddCommand(
		newAssignmentAddCmd(app),
		newAssignmentListCmd(app),
		newAssignmentProgressCmd(app),
		newAssignmentRiskCmd(app),
		newAssignmentRemoveCmd(app),
	)

	return cmd
}

func newAssignmentAddCmd(app *App) *cobra.Command {
	var subject, title, description, typ, priority, due string
	var hours float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := currentUser(cmd)
			if err != nil {
				return err
			}
			dueDate, err := time.Parse("2006-01-02", due)
			if err != nil {
				return fmt.Errorf("invalid due date %q: %w", due, err)
			}
			subjectID, err := resolveSubjectID(cmd.Context(), app, owner, subject)
			if err != nil {
				return err
			}

			a := &domain.Assignment{
				OwnerID:        owner,
				SubjectID:      subjectID,
				Title:          title,
				Description:    description,
				Type:           domain.AssignmentType(typ),
				Priority:       domain.Priority(priority),
				DueDate:        dueDate,
				EstimatedHours: hours,
			}
			if err := app.Assignments.Create(cmd.Context(), a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created assignment %s (%s) for %s\n",
				a.Title, formatter.TruncIDPlain(a.ID), a.SubjectName())
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject ID, code or name")
	cmd.Flags().StringVar(&title, "title", "", "Assignment title")
	cmd.Flags().StringVar(&description, "description", "", "Longer description")
	cmd.Flags().StringVar(&typ, "type", "", "homework|project|exam|quiz|presentation|other")
	cmd.Flags().StringVar(&priority, "priority", "", "low|medium|high")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Estimated hours (default 2)")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("due")

	return cmd
}

func newAssignmentListCmd(app *App) *cobra.Command {
	var status, subject string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List assignments by due date",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := currentUser(cmd)
			if err != nil {
				return err
			}
			filter := repository.AssignmentFilter{}
			if status != "all" {
				filter.Status = domain.AssignmentStatus(status)
			}
			if subject != "" {
				filter.SubjectID, err = resolveSubjectID(cmd.Context(), app, owner, subject)
				if err != nil {
					return err
				}
			}
			assignments, err := app.Assignments.List(cmd.Context(), owner, filter)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAssignmentList(assignments, time.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "all", "all|pending|completed")
	cmd.Flags().StringVar(&subject, "subject", "", "Only assignments for this subject")

	return cmd
}

func newAssignmentProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress ID|TITLE PERCENT",
		Short: "Record progress; 100 marks the assignment complete",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := currentUser(cmd)
			if err != nil {
				return err
			}
			progress, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid progress %q: %w", args[1], err)
			}
			id, err := resolveAssignmentID(cmd.Context(), app, owner, args[0])
			if err != nil {
				return err
			}
			a, err := app.Assignments.UpdateProgress(cmd.Context(), owner, id, progress)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", a.Title, formatter.RenderProgress(a.Progress, 20))
			if a.IsCompleted {
				fmt.Fprintln(out, formatter.CompletionPill(a))
			}
			return nil
		},
	}
}

func newAssignmentRiskCmd(app *App) *cobra.Command {
	var dailyHours float64

	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Rank pending assignments by deadline risk",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := currentUser(cmd)
			if err != nil {
				return err
			}
			if dailyHours <= 0 || dailyHours > 24 {
				return fmt.Errorf("--daily-hours must be between 0 and 24, got %g", dailyHours)
			}
			pending, err := app.Assignments.List(cmd.Context(), owner,
				repository.AssignmentFilter{Status: domain.StatusPending})
			if err != nil {
				return err
			}
			now := time.Now()
			capacity := dailyHours * 60
			items := scheduler.AssessWorkload(pending, now, capacity)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWorkload(items, capacity, now))
			return nil
		},
	}

	cmd.Flags().Float64Var(&dailyHours, "daily-hours", 2, "Study hours available per day")

	return cmd
}

func newAssignmentRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID|TITLE",
		Short: "Delete an assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := currentUser(cmd)
			if err != nil {
				return err
			}
			id, err := resolveAssignmentID(cmd.Context(), app, owner, args[0])
			if err != nil {
				return err
			}
			if err := app.Assignments.Delete(cmd.Context(), owner, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted assignment %s\n", formatter.TruncIDPlain(id))
			return nil
		},
	}
}
