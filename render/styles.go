package render

import "github.com/charmbracelet/lipgloss"

// Color definitions
var (
	Primary   = lipgloss.Color("205") // Pink
	Secondary = lipgloss.Color("63")  // Purple
	Subtle    = lipgloss.Color("240") // Gray
	Success   = lipgloss.Color("42")  // Green
	Error     = lipgloss.Color("196") // Red
)

// styles is the set of styles a Formatter renders with
type styles struct {
	title lipgloss.Style
	label lipgloss.Style
	value lipgloss.Style
	muted lipgloss.Style
	up    lipgloss.Style
	down  lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{title: plain, label: plain, value: plain, muted: plain, up: plain, down: plain}
	}

	return styles{
		title: lipgloss.NewStyle().Bold(true).Foreground(Primary),
		label: lipgloss.NewStyle().Foreground(Secondary),
		value: lipgloss.NewStyle(),
		muted: lipgloss.NewStyle().Foreground(Subtle),
		up:    lipgloss.NewStyle().Foreground(Success),
		down:  lipgloss.NewStyle().Foreground(Error),
	}
}
