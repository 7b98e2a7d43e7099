package cli

import (
	"fmt"

	"github.com/alexanderramin/studybuddy/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a term's subjects and assignments from JSON",
		Long: `Import a term's subjects and assignments from a JSON file:

  {"subjects": [{"name": "English", "code": "EN101",
    "assignments": [{"title": "Essay", "due_date": "2025-03-20"}]}]}

The whole file is validated first and written in one transaction.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := currentUser(cmd)
			if err != nil {
				return err
			}
			if app.Import == nil {
				return fmt.Errorf("import is not wired")
			}
			result, err := app.Import.ImportFile(cmd.Context(), owner, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d subject(s) and %d assignment(s)\n", len(result.Subjects), result.AssignmentCount)
			fmt.Fprint(out, formatter.FormatSubjectList(result.Subjects))
			return nil
		},
	}
}
