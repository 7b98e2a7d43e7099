package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/studybuddy/internal/repository"
	"github.com/alexanderramin/studybuddy/internal/service"
)

// candidate is one record a user-typed reference may point at. Aliases
// match case-insensitively.
type candidate struct {
	id      string
	aliases []string
}

// resolveRef matches input against exact IDs, then aliases, then unique ID
// prefixes.
func resolveRef(kind, input string, cands []candidate) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}

	for _, c := range cands {
		if c.id == input {
			return c.id, nil
		}
	}

	var matches []string
	for _, c := range cands {
		for _, alias := range c.aliases {
			if alias != "" && strings.EqualFold(alias, input) {
				matches = append(matches, c.id)
				break
			}
		}
	}
	if len(matches) == 0 {
		for _, c := range cands {
			if strings.HasPrefix(c.id, input) {
				matches = append(matches, c.id)
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s reference %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func resolveSubjectID(ctx context.Context, app *App, owner, input string) (string, error) {
	subjects, err := app.Subjects.List(ctx, owner)
	if err != nil {
		return "", err
	}
	cands := make([]candidate, 0, len(subjects))
	for _, s := range subjects {
		cands = append(cands, candidate{id: s.ID, aliases: []string{s.Code, s.Name}})
	}
	return resolveRef("subject", input, cands)
}

func resolveAssignmentID(ctx context.Context, app *App, owner, input string) (string, error) {
	assignments, err := app.Assignments.List(ctx, owner, repository.AssignmentFilter{})
	if err != nil {
		return "", err
	}
	cands := make([]candidate, 0, len(assignments))
	for _, a := range assignments {
		cands = append(cands, candidate{id: a.ID, aliases: []string{a.Title}})
	}
	return resolveRef("assignment", input, cands)
}

// resolvePlanID looks a full ID up directly, since older plans fall outside
// the recent window that titles and prefixes are matched against.
func resolvePlanID(ctx context.Context, app *App, owner, input string) (string, error) {
	if input != "" {
		p, err := app.Plans.GetByID(ctx, owner, input)
		switch {
		case err == nil:
			return p.ID, nil
		case !errors.Is(err, service.ErrNotFound):
			return "", err
		}
	}
	plans, err := app.Plans.ListRecent(ctx, owner, service.MaxPlanListLimit)
	if err != nil {
		return "", err
	}
	cands := make([]candidate, 0, len(plans))
	for _, p := range plans {
		cands = append(cands, candidate{id: p.ID, aliases: []string{p.Title}})
	}
	return resolveRef("study plan", input, cands)
}
