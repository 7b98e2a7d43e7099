package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/studybuddy/internal/auth"
	"github.com/alexanderramin/studybuddy/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to the services and hooks used by CLI commands.
type App struct {
	Subjects    service.SubjectService
	Assignments service.AssignmentService
	Plans       service.StudyPlanService
	Import      service.ImportService

	// Tokens is nil when no JWT secret is configured.
	Tokens *auth.TokenIssuer

	// Serve runs the HTTP API until ctx is cancelled.
	Serve func(ctx context.Context) error

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	// Confirm asks a yes/no question. Defaults to a huh prompt.
	Confirm func(title string) (bool, error)
}

// NewRootCmd creates the top-level "studybuddy" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "studybuddy",
		Short:         "Subjects, assignments and AI-generated study plans",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("user", os.Getenv("STUDYBUDDY_USER"), "Owner ID to act as (env STUDYBUDDY_USER)")

	root.AddCommand(
		newServeCmd(app),
		newTokenCmd(app),
		newSubjectCmd(app),
		newAssignmentCmd(app),
		newPlanCmd(app),
		newImportCmd(app),
	)

	return root
}

// currentUser returns the --user value, which every record command needs.
func currentUser(cmd *cobra.Command) (string, error) {
	user, _ := cmd.Flags().GetString("user")
	if user == "" {
		return "", fmt.Errorf("--user is required (or set STUDYBUDDY_USER)")
	}
	return user, nil
}

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Serve == nil {
				return fmt.Errorf("server is not wired")
			}
			return app.Serve(cmd.Context())
		},
	}
}

func newTokenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token for --user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Tokens == nil {
				return fmt.Errorf("STUDYBUDDY_JWT_SECRET is not set")
			}
			user, err := currentUser(cmd)
			if err != nil {
				return err
			}
			token, err := app.Tokens.Issue(user)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}
