package formatter

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/studybuddy/internal/scheduler"
)

// RiskPill returns a colored deadline-risk indicator.
func RiskPill(r scheduler.RiskLevel) string {
	switch r {
	case scheduler.RiskCritical:
		return StyleRed.Render("✖ CRITICAL")
	case scheduler.RiskAtRisk:
		return StyleYellow.Render("⚠ AT RISK")
	default:
		return StyleGreen.Render("✔ ON TRACK")
	}
}

// FormatWorkload renders assessed assignments most urgent first, with the
// daily study time each deadline needs against the budget.
func FormatWorkload(items []scheduler.Assessment, dailyCapacityMin float64, now time.Time) string {
	if len(items) == 0 {
		return RenderBox("Workload", Dim("Nothing pending."))
	}

	headers := []string{"RISK", "TITLE", "SUBJECT", "DUE", "LEFT", "NEEDED/DAY"}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		a := it.Assignment
		subject := Dim("--")
		if a.Subject != nil {
			subject = SubjectSwatch(a.Subject.Name, a.Subject.Color)
		}
		rows = append(rows, []string{
			RiskPill(it.Risk.Level),
			Bold(a.Title),
			subject,
			DueStyled(a, now),
			FormatMinutes(it.RemainingMin),
			FormatMinutes(int(math.Round(it.Risk.RequiredDailyMin))),
		})
	}

	footer := Dim(fmt.Sprintf("Budget: %s/day", FormatMinutes(int(dailyCapacityMin))))
	return RenderBox("Workload", RenderTable(headers, rows)+"\n"+footer)
}
