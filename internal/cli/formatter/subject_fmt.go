package formatter

import (
	"fmt"

	"github.com/alexanderramin/studybuddy/internal/domain"
)

// FormatSubjectList renders the subject catalog inside a bordered box.
func FormatSubjectList(subjects []*domain.Subject) string {
	headers := []string{"ID", "NAME", "CODE", "INSTRUCTOR", "CREDITS"}
	rows := make([][]string, 0, len(subjects))
	for _, s := range subjects {
		code := s.Code
		if code == "" {
			code = Dim("--")
		}
		instructor := s.Instructor
		if instructor == "" {
			instructor = Dim("--")
		}
		rows = append(rows, []string{
			TruncID(s.ID),
			SubjectSwatch(s.Name, s.Color),
			code,
			instructor,
			fmt.Sprintf("%d", s.Credits),
		})
	}
	return RenderBox("Subjects", RenderTable(headers, rows))
}
