package cli

import (
	"fmt"

	"github.com/alexanderramin/studybuddy/internal/cli/formatter"
	"github.com/alexanderramin/studybuddy/internal/domain"
	"github.com/spf13/cobra"
)

func newSubjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subject",
		Aliases: []string{"subjects"},
		Short:   "Manage subjects",
	}

	cmd.AddCommand(
		newSubjectAddCmd(app),
		newSubjectListCmd(app),
		newSubjectRemoveCmd(app),
	)

	return cmd
}

func newSubjectAddCmd(app *App) *cobra.Command {
	var name, code, instructor, color string
	var credits int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a subject",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := currentUser(cmd)
			if err != nil {
				return err
			}
			s := &domain.Subject{
				OwnerID:    owner,
				Name:       name,
				Code:       code,
				Instructor: instructor,
				Credits:    credits,
				Color:      color,
			}
			if err := app.Subjects.Create(cmd.Context(), s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created subject %s (%s)\n", s.Name, formatter.TruncIDPlain(s.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Subject name")
	cmd.Flags().StringVar(&code, "code", "", "Course code, e.g. ENG101")
	cmd.Flags().StringVar(&instructor, "instructor", "", "Instructor name")
	cmd.Flags().StringVar(&color, "color", "", "Hex color (default "+domain.DefaultSubjectColor+")")
	cmd.Flags().IntVar(&credits, "credits", 0, "Credit hours (0-10)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newSubjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List subjects",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := currentUser(cmd)
			if err != nil {
				return err
			}
			subjects, err := app.Subjects.List(cmd.Context(), owner)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSubjectList(subjects))
			return nil
		},
	}
}

func newSubjectRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm ID|CODE|NAME",
		Short: "Delete a subject and its assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := currentUser(cmd)
			if err != nil {
				return err
			}
			id, err := resolveSubjectID(cmd.Context(), app, owner, args[0])
			if err != nil {
				return err
			}
			subject, err := app.Subjects.GetByID(cmd.Context(), owner, id)
			if err != nil {
				return err
			}
			ok, err := app.confirmDelete(yes, fmt.Sprintf("Delete subject %s and all of its assignments?", subject.Name))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Kept.")
				return nil
			}
			removed, err := app.Subjects.Delete(cmd.Context(), owner, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted subject %s and %d assignment(s)\n", formatter.TruncIDPlain(id), removed)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
