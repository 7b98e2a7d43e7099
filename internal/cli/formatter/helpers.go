package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/studybuddy/internal/domain"
)

// RenderBox frames content in a rounded border, with title upper-cased on
// top when given.
func RenderBox(title, content string) string {
	if title == "" {
		return boxStyle.Render(content)
	}
	return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// daysUntil rounds the distance from now to t to whole days.
func daysUntil(t, now time.Time) int {
	return int(math.Round(t.Sub(now).Hours() / 24))
}

// RelativeDueFrom describes a due date relative to now: "Today", "In 3d",
// "In 2w", "4d overdue" and so on.
func RelativeDueFrom(t, now time.Time) string {
	d := daysUntil(t, now)
	switch {
	case d == 0:
		return "Today"
	case d == 1:
		return "Tomorrow"
	case d == -1:
		return "Yesterday"
	case d >= 60:
		return fmt.Sprintf("In %dmo", d/30)
	case d >= 14:
		return fmt.Sprintf("In %dw", d/7)
	case d > 0:
		return fmt.Sprintf("In %dd", d)
	case d > -14:
		return fmt.Sprintf("%dd overdue", -d)
	default:
		return fmt.Sprintf("%dw overdue", -d/7)
	}
}

// DueStyled colors RelativeDueFrom by urgency: red within two days, yellow
// within a week. Completed work is dimmed.
func DueStyled(a *domain.Assignment, now time.Time) string {
	text := RelativeDueFrom(a.DueDate, now)
	if a.IsCompleted {
		return Dim(text)
	}
	switch d := daysUntil(a.DueDate, now); {
	case d <= 2:
		return StyleRed.Render(text)
	case d <= 7:
		return StyleYellow.Render(text)
	}
	return StyleFg.Render(text)
}

// CompletionPill shows whether an assignment is done, started or untouched.
func CompletionPill(a *domain.Assignment) string {
	switch {
	case a.IsCompleted:
		return Dim("✔ Done")
	case a.Progress > 0:
		return StyleGreen.Render("● In Progress")
	}
	return StyleBlue.Render("○ Todo")
}

const shortIDLen = 8

// TruncIDPlain shortens an ID to its first eight characters.
func TruncIDPlain(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// TruncID is TruncIDPlain, dimmed.
func TruncID(id string) string { return Dim(TruncIDPlain(id)) }

// FormatMinutes renders a duration as "1h 30m", "2h" or "45m".
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h, m := min/60, min%60
	var parts []string
	if h > 0 {
		parts = append(parts, strconv.Itoa(h)+"h")
	}
	if m > 0 {
		parts = append(parts, strconv.Itoa(m)+"m")
	}
	return strings.Join(parts, " ")
}

// FormatHours renders an hour estimate to two decimals without trailing
// zeros.
func FormatHours(h float64) string {
	return strconv.FormatFloat(math.Round(h*100)/100, 'f', -1, 64) + "h"
}
