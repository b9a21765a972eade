package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dori/tackle/internal/focus"
	"github.com/dori/tackle/internal/model"
)

// tickMsg drives the timer once per second
type tickMsg time.Time

// stateMsg carries a new store snapshot
type stateMsg struct {
	state *model.AppState
}

func tickCmd() tea.Cmd {
	return tea.Tick(focus.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForState blocks until the store publishes a new snapshot
func waitForState(states <-chan *model.AppState) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-states
		if !ok {
			return nil
		}
		return stateMsg{state: st}
	}
}
