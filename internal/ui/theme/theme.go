package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/tackle/internal/model"
)

// Theme defines the color scheme and styles for the UI
type Theme struct {
	Name string

	// Base colors
	Background lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Highlight  lipgloss.Color
	Border     lipgloss.Color

	// Semantic colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Info      lipgloss.Color

	// Priority colors
	PriorityToday     lipgloss.Color
	PriorityThisWeek  lipgloss.Color
	PriorityLater     lipgloss.Color
	PriorityRecurring lipgloss.Color
	PrioritySomeday   lipgloss.Color

	// Status colors
	StatusToSolve lipgloss.Color
	StatusSolving lipgloss.Color
	StatusBlocked lipgloss.Color
	StatusOngoing lipgloss.Color
	StatusSolved  lipgloss.Color

	// Pomodoro phase colors
	PhaseWork  lipgloss.Color
	PhaseBreak lipgloss.Color
}

// PriorityColor returns the color of a priority
func (t Theme) PriorityColor(p model.Priority) lipgloss.Color {
	switch p {
	case model.PriorityToday:
		return t.PriorityToday
	case model.PriorityThisWeek:
		return t.PriorityThisWeek
	case model.PriorityRecurring:
		return t.PriorityRecurring
	case model.PrioritySomeday:
		return t.PrioritySomeday
	default:
		return t.PriorityLater
	}
}

// StatusColor returns the color of a status
func (t Theme) StatusColor(s model.Status) lipgloss.Color {
	switch s {
	case model.StatusSolving:
		return t.StatusSolving
	case model.StatusBlocked:
		return t.StatusBlocked
	case model.StatusOngoing:
		return t.StatusOngoing
	case model.StatusSolved:
		return t.StatusSolved
	default:
		return t.StatusToSolve
	}
}

// Styles holds pre-computed lipgloss styles based on theme
type Styles struct {
	Header lipgloss.Style
	Footer lipgloss.Style

	// Problem rows
	Problem  lipgloss.Style
	Ancestor lipgloss.Style
	Done     lipgloss.Style
	Overdue  lipgloss.Style

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Label      lipgloss.Style
	Badge      lipgloss.Style
	DueDate    lipgloss.Style
	Breadcrumb lipgloss.Style

	// Focus screen
	Clock      lipgloss.Style
	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	StatusBar  lipgloss.Style
	Error      lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
}

// NewStyles creates styles from a theme
func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),

		Problem: lipgloss.NewStyle().
			Foreground(t.Foreground),

		// Rows shown only as the path to a match
		Ancestor: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Faint(true),

		Done: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Strikethrough(true),

		Overdue: lipgloss.NewStyle().
			Foreground(t.Error),

		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Italic(true),

		Label: lipgloss.NewStyle().
			Foreground(t.Subtle),

		Badge: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Secondary).
			Padding(0, 1),

		DueDate: lipgloss.NewStyle().
			Foreground(t.Warning),

		Breadcrumb: lipgloss.NewStyle().
			Foreground(t.Subtle),

		Clock: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Bold(true).
			Padding(1, 4),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(1, 2),

		PanelTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Background(t.Highlight).
			Foreground(t.Foreground).
			Padding(0, 1),

		Error: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.Subtle),
	}
}

// Current holds the current active theme and styles
var Current = struct {
	Theme  Theme
	Styles Styles
}{
	Theme:  Nord,
	Styles: NewStyles(Nord),
}

// SetTheme changes the current theme
func SetTheme(t Theme) {
	Current.Theme = t
	Current.Styles = NewStyles(t)
}

// Available returns all available themes
func Available() []Theme {
	return []Theme{
		Nord,
		Dracula,
		Gruvbox,
		Catppuccin,
	}
}

// ByName returns a theme by its name
func ByName(name string) (Theme, bool) {
	for _, t := range Available() {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}
