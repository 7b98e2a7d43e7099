package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studybuddy/internal/domain"
)

// FormatStudyPlanList renders a summary row per plan, newest first.
func FormatStudyPlanList(plans []*domain.StudyPlan) string {
	headers := []string{"ID", "TITLE", "FROM", "TO", "SESSIONS", "TOTAL", "CREATED"}
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Title),
			p.StartDate.Format("Jan 2"),
			p.EndDate.Format("Jan 2"),
			fmt.Sprintf("%d (%d linked)", len(p.Sessions), p.LinkedCount()),
			FormatMinutes(p.TotalMinutes()),
			Dim(p.CreatedAt.Local().Format("2006-01-02 15:04")),
		})
	}
	return RenderBox("Study Plans", RenderTable(headers, rows))
}

// FormatStudyPlan renders one plan with its sessions grouped by day and the
// generated insights underneath.
func FormatStudyPlan(p *domain.StudyPlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(p.Title), Dim(TruncIDPlain(p.ID)))
	fmt.Fprintf(&b, "%s → %s  ·  %d sessions  ·  %s scheduled\n",
		p.StartDate.Format("Mon Jan 2"), p.EndDate.Format("Mon Jan 2"),
		len(p.Sessions), FormatMinutes(p.TotalMinutes()))

	day := ""
	for i := range p.Sessions {
		s := &p.Sessions[i]
		if d := s.Date.Format("Mon Jan 2"); d != day {
			day = d
			b.WriteString("\n" + Header(day) + "\n")
		}
		b.WriteString(formatSession(s) + "\n")
	}

	if in := p.Insights; in != nil {
		b.WriteString("\n" + Header("Insights") + "\n")
		if in.Summary != "" {
			b.WriteString(in.Summary + "\n")
		}
		if in.PriorityFocus != "" {
			fmt.Fprintf(&b, "%s %s\n", Dim("Focus:"), StyleYellow.Render(in.PriorityFocus))
		}
		if in.EstimatedTotalHours > 0 {
			fmt.Fprintf(&b, "%s %s\n", Dim("Estimated total:"), FormatHours(in.EstimatedTotalHours))
		}
		for _, r := range in.Recommendations {
			fmt.Fprintf(&b, "  %s %s\n", StyleGreen.Render("•"), r)
		}
	}
	return RenderBox("Study Plan", strings.TrimRight(b.String(), "\n"))
}

func formatSession(s *domain.StudySession) string {
	slot := Dim("anytime")
	if s.StartTime != "" && s.EndTime != "" {
		slot = s.StartTime + "–" + s.EndTime
	}

	target := StyleDim.Render("(unlinked)")
	if s.Assignment != nil {
		target = Bold(s.Assignment.Title)
		if s.Subject != nil {
			target += " " + SubjectSwatch(s.Subject.Name, s.Subject.Color)
		}
	}

	line := fmt.Sprintf("  %s  %s  %s", slot, StyleBlue.Render(FormatMinutes(s.DurationMin)), target)
	if s.Topic != "" {
		line += "  " + s.Topic
	}
	if s.IsCompleted {
		line += "  " + StyleDim.Render("done")
	}
	for _, tip := range s.Tips {
		line += "\n      " + Dim("tip: "+tip)
	}
	return line
}
