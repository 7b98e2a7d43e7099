package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studybuddy/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Palette shared by every renderer and the confirm prompt.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

var (
	StyleGreen  = fg(ColorGreen)
	StyleYellow = fg(ColorYellow)
	StyleRed    = fg(ColorRed)
	StyleBlue   = fg(ColorBlue)
	StyleDim    = fg(ColorDim)
	StyleFg     = fg(ColorFg)
	StyleHeader = fg(ColorHeader).Bold(true)
	StyleBold   = fg(ColorFg).Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim).
			Padding(1, 2)
)

// pill pairs a glyph label with the style it renders in.
type pill struct {
	label string
	style lipgloss.Style
}

func (p pill) String() string { return p.style.Render(p.label) }

var priorityPills = map[domain.Priority]pill{
	domain.PriorityHigh:   {"▲ HIGH", StyleRed},
	domain.PriorityMedium: {"● MEDIUM", StyleYellow},
	domain.PriorityLow:    {"▽ LOW", StyleGreen},
}

// PriorityPill renders a priority as a colored label such as "▲ HIGH".
// Unknown values are shown dimmed as-is.
func PriorityPill(p domain.Priority) string {
	if pl, ok := priorityPills[p]; ok {
		return pl.String()
	}
	return Dim(string(p))
}

// SubjectSwatch renders name in the subject's own hex color.
func SubjectSwatch(name, color string) string {
	switch {
	case name == "":
		return Dim("--")
	case color == "":
		return fg(ColorPurple).Render(name)
	default:
		return fg(lipgloss.Color(color)).Render(name)
	}
}

// Header renders an upper-cased section title over a rule of equal width.
func Header(text string) string {
	title := strings.ToUpper(text)
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(title), Dim(strings.Repeat("─", lipgloss.Width(title))))
}

func Dim(text string) string  { return StyleDim.Render(text) }
func Bold(text string) string { return StyleBold.Render(text) }
