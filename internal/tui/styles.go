package tui

import (
	"github.com/charmbracelet/lipgloss"

	"taskgenie/internal/service"
)

// Styles holds the lipgloss styles of the UI.
type Styles struct {
	Title     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Row       lipgloss.Style
	Selected  lipgloss.Style
	Muted     lipgloss.Style
	Page      lipgloss.Style
	PageOn    lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Modal     lipgloss.Style
	Label     lipgloss.Style
	Focused   lipgloss.Style
	Help      lipgloss.Style
	status    map[service.Status]lipgloss.Style
}

// NewStyles returns the default palette.
func NewStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7")).MarginBottom(1),
		Tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#565f89")),
		ActiveTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(lipgloss.Color("#c0caf5")),
		Row:       lipgloss.NewStyle().PaddingLeft(2),
		Selected:  lipgloss.NewStyle().PaddingLeft(1).Bold(true).Foreground(lipgloss.Color("#bb9af7")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89")),
		Page:      lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#565f89")),
		PageOn:    lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#1a1b26")).Background(lipgloss.Color("#7aa2f7")),
		Success:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9ece6a")),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f7768e")),
		Modal:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#7aa2f7")).Padding(1, 2),
		Label:     lipgloss.NewStyle().Width(12).Foreground(lipgloss.Color("#565f89")),
		Focused:   lipgloss.NewStyle().Width(12).Bold(true).Foreground(lipgloss.Color("#bb9af7")),
		Help:      lipgloss.NewStyle().MarginTop(1).Foreground(lipgloss.Color("#565f89")),
		status: map[service.Status]lipgloss.Style{
			service.StatusToDo:       lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68")),
			service.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("#7dcfff")),
			service.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")),
		},
	}
}

// Status renders a status badge.
func (s Styles) Status(st service.Status) string {
	style, ok := s.status[st]
	if !ok {
		style = s.Muted
	}
	return style.Render(st.Label())
}
