package formatter

import (
	"time"

	"github.com/alexanderramin/studybuddy/internal/domain"
)

// FormatAssignmentList renders assignments in due-date order with progress
// bars, relative due dates and priority pills.
func FormatAssignmentList(assignments []*domain.Assignment, now time.Time) string {
	headers := []string{"ID", "TITLE", "SUBJECT", "TYPE", "DUE", "PRIORITY", "PROGRESS", "STATUS"}
	rows := make([][]string, 0, len(assignments))
	for _, a := range assignments {
		subject := Dim("--")
		if a.Subject != nil {
			subject = SubjectSwatch(a.Subject.Name, a.Subject.Color)
		}
		title := Bold(a.Title)
		if a.IsCompleted {
			title = Dim(a.Title)
		}
		rows = append(rows, []string{
			TruncID(a.ID),
			title,
			subject,
			string(a.Type),
			DueStyled(a, now),
			PriorityPill(a.Priority),
			RenderProgress(a.Progress, 10),
			CompletionPill(a),
		})
	}
	return RenderBox("Assignments", RenderTable(headers, rows))
}
