package theme

import "github.com/charmbracelet/lipgloss"

// Nord theme, the arctic north-bluish palette
// https://www.nordtheme.com/
var Nord = Theme{
	Name: "nord",

	Background: lipgloss.Color("#2E3440"),
	Foreground: lipgloss.Color("#ECEFF4"),
	Subtle:     lipgloss.Color("#4C566A"),
	Highlight:  lipgloss.Color("#3B4252"),
	Border:     lipgloss.Color("#4C566A"),

	Primary:   lipgloss.Color("#88C0D0"), // Nord8
	Secondary: lipgloss.Color("#81A1C1"), // Nord9
	Info:      lipgloss.Color("#5E81AC"), // Nord10
	Success:   lipgloss.Color("#A3BE8C"), // Nord14
	Warning:   lipgloss.Color("#EBCB8B"), // Nord13
	Error:     lipgloss.Color("#BF616A"), // Nord11

	PriorityToday:     lipgloss.Color("#BF616A"),
	PriorityThisWeek:  lipgloss.Color("#D08770"),
	PriorityLater:     lipgloss.Color("#EBCB8B"),
	PriorityRecurring: lipgloss.Color("#B48EAD"),
	PrioritySomeday:   lipgloss.Color("#4C566A"),

	StatusToSolve: lipgloss.Color("#ECEFF4"),
	StatusSolving: lipgloss.Color("#88C0D0"),
	StatusBlocked: lipgloss.Color("#BF616A"),
	StatusOngoing: lipgloss.Color("#B48EAD"),
	StatusSolved:  lipgloss.Color("#A3BE8C"),

	PhaseWork:  lipgloss.Color("#BF616A"),
	PhaseBreak: lipgloss.Color("#A3BE8C"),
}
