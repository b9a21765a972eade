package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/tackle/internal/focus"
	"github.com/dori/tackle/internal/model"
	"github.com/dori/tackle/internal/store"
	"github.com/dori/tackle/internal/ui/theme"
	"github.com/dori/tackle/internal/views"
)

// FocusModel is the full-screen focus session for one problem
type FocusModel struct {
	ctx         context.Context
	session     *focus.Session
	states      <-chan *model.AppState
	unsubscribe func()

	// entry is refreshed from every store snapshot
	entry views.Entry

	keys   KeyMap
	help   help.Model
	width  int
	height int

	statusMsg string
	errorMsg  string
	quitting  bool
}

// NewFocusModel creates the focus screen for entry. The model subscribes to
// st so edits made elsewhere show up while the session runs.
func NewFocusModel(ctx context.Context, st *store.Store, entry views.Entry, sess *focus.Session) FocusModel {
	states, unsubscribe := st.Subscribe()
	keys := DefaultKeyMap()
	keys.selecting(true)

	return FocusModel{
		ctx:         ctx,
		session:     sess,
		states:      states,
		unsubscribe: unsubscribe,
		entry:       entry,
		keys:        keys,
		help:        help.New(),
	}
}

// Init starts the ticker and the store subscription
func (m FocusModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(), waitForState(m.states))
}

// Update handles messages
func (m FocusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		if err := m.session.Tick(m.ctx, m.session.Now()); err != nil {
			m.errorMsg = err.Error()
		}
		return m, tickCmd()

	case stateMsg:
		if e, ok := views.Locate(msg.state.Lists, m.entry.Problem.ID); ok {
			m.entry = e
		} else {
			m.errorMsg = "This problem was deleted"
		}
		return m, waitForState(m.states)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m FocusModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errorMsg = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit(m.session.Exit(m.ctx))

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.FiveMinute):
		m.selectMode(focus.ModeFiveMinute)
	case key.Matches(msg, m.keys.Pomodoro):
		m.selectMode(focus.ModePomodoro)
	case key.Matches(msg, m.keys.Stopwatch):
		m.selectMode(focus.ModeStopwatch)

	case key.Matches(msg, m.keys.Toggle):
		if err := m.session.Toggle(m.ctx); err != nil {
			m.errorMsg = err.Error()
		}

	case key.Matches(msg, m.keys.Reset):
		if err := m.session.Reset(m.ctx); err != nil {
			m.errorMsg = err.Error()
		}
		m.keys.selecting(true)
		m.statusMsg = "Choose a mode"

	case key.Matches(msg, m.keys.Solve):
		if err := m.session.MarkSolved(m.ctx); err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		return m.quit(m.session.Exit(m.ctx))
	}

	return m, nil
}

func (m *FocusModel) selectMode(mode focus.Mode) {
	if err := m.session.SelectMode(mode); err != nil {
		m.errorMsg = err.Error()
		return
	}
	m.keys.selecting(false)
	m.statusMsg = mode.String() + " selected, press space to start"
}

func (m FocusModel) quit(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.errorMsg = err.Error()
	}
	m.quitting = true
	m.unsubscribe()
	return m, tea.Quit
}

// View renders the focus screen
func (m FocusModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	styles := theme.Current.Styles
	t := theme.Current.Theme
	r := m.session.Read(m.session.Now())
	p := m.entry.Problem

	containerWidth := min(80, m.width-4)
	center := lipgloss.NewStyle().Width(containerWidth).Align(lipgloss.Center)

	var sections []string
	sections = append(sections, center.Render(styles.Breadcrumb.Render(m.entry.Breadcrumb())))
	sections = append(sections, center.Render(styles.Title.Render(p.Name)))
	sections = append(sections, center.Render(m.renderBadges(p)))
	sections = append(sections, "")

	if r.Mode == focus.ModeUnselected {
		sections = append(sections, center.Render(m.renderModePicker()))
	} else {
		sections = append(sections, center.Render(m.renderTimer(r)))
	}
	sections = append(sections, "")

	total := p.TotalTime + r.Segment
	meta := styles.Label.Render("Total time: ") + styles.Problem.Render(views.FormatDuration(total))
	if p.EstimatedDuration != nil {
		meta += styles.Label.Render("  Estimate: ") + styles.Problem.Render(fmt.Sprintf("%dm", *p.EstimatedDuration))
	}
	if p.DueDate != nil {
		today := model.DateOf(m.session.Now())
		meta += styles.Label.Render("  Due: ") + styles.DueDate.Render(views.FormatDueDate(*p.DueDate, today))
	}
	sections = append(sections, center.Render(meta))

	if p.Notes != "" {
		sections = append(sections, "", styles.Panel.Width(containerWidth).Render(p.Notes))
	}
	if len(p.Subproblems) > 0 {
		sections = append(sections, "", m.renderSubproblems(p, containerWidth))
	}

	if m.errorMsg != "" {
		sections = append(sections, "", center.Render(styles.Error.Render(m.errorMsg)))
	} else if m.statusMsg != "" {
		sections = append(sections, "", center.Render(lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)))
	}

	content := strings.Join(sections, "\n")
	body := lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, content)
	return body + "\n" + styles.Footer.Render(m.help.View(m.keys))
}

func (m FocusModel) renderBadges(p *model.Problem) string {
	t := theme.Current.Theme
	badge := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(t.Background)

	status := badge.Background(t.StatusColor(p.Status)).Render(strings.ToUpper(strings.ReplaceAll(string(p.Status), "_", " ")))
	priority := badge.Background(t.PriorityColor(p.Priority)).Render(strings.ToUpper(strings.ReplaceAll(string(p.Priority), "_", " ")))
	return status + "  " + priority
}

func (m FocusModel) renderModePicker() string {
	styles := theme.Current.Styles
	lines := []string{
		styles.PanelTitle.Render("How do you want to work?"),
		"",
		styles.HelpKey.Render("1") + " " + styles.HelpDesc.Render("five minutes, just get started"),
		styles.HelpKey.Render("2") + " " + styles.HelpDesc.Render("pomodoro, 25/5 with a long break every 4"),
		styles.HelpKey.Render("3") + " " + styles.HelpDesc.Render("stopwatch, open ended"),
	}
	return styles.Panel.Render(strings.Join(lines, "\n"))
}

func (m FocusModel) renderTimer(r focus.Reading) string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	var color lipgloss.Color
	var stateLabel string
	switch r.State {
	case focus.Running:
		color = t.Success
		stateLabel = "RUNNING"
	case focus.Paused:
		color = t.Warning
		stateLabel = "PAUSED"
	default:
		color = t.Subtle
		stateLabel = "READY"
	}

	label := r.Mode.String()
	if r.Mode == focus.ModePomodoro {
		phaseColor := t.PhaseWork
		if r.Phase != focus.PhaseWork {
			phaseColor = t.PhaseBreak
		}
		color = phaseColor
		label = fmt.Sprintf("%s · %s · cycle %d", label, r.Phase, r.Cycles)
	}

	clock := styles.Clock.
		Foreground(color).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Render(views.FormatClock(r.Clock))

	return lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(color).Bold(true).Render(stateLabel),
		clock,
		styles.Subtitle.Render(label),
	)
}

func (m FocusModel) renderSubproblems(p *model.Problem, width int) string {
	styles := theme.Current.Styles

	done := 0
	for _, sp := range p.Subproblems {
		if sp.Completed {
			done++
		}
	}

	lines := []string{styles.PanelTitle.Render(fmt.Sprintf("Subproblems (%d/%d)", done, len(p.Subproblems)))}
	for _, sp := range p.Subproblems {
		if sp.Completed {
			lines = append(lines, "[x] "+styles.Done.Render(sp.Name))
			continue
		}
		lines = append(lines, "[ ] "+styles.Problem.Render(sp.Name))
	}
	return styles.Panel.Width(width).Render(strings.Join(lines, "\n"))
}

// RunFocus runs the focus screen until the user leaves it. The session is
// always exited on return so an open segment reaches the store even when
// the program fails.
func RunFocus(ctx context.Context, st *store.Store, entry views.Entry, sess *focus.Session) error {
	m := NewFocusModel(ctx, st, entry, sess)
	defer m.unsubscribe()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, runErr := p.Run()

	exitErr := sess.Exit(context.WithoutCancel(ctx))
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("focus screen: %w", runErr)
	}
	return exitErr
}
