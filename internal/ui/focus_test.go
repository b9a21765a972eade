package ui

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dori/tackle/internal/focus"
	"github.com/dori/tackle/internal/model"
	"github.com/dori/tackle/internal/store"
	"github.com/dori/tackle/internal/views"
)

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

func newTestModel(t *testing.T) (FocusModel, *store.Store, *testClock) {
	t.Helper()
	ctx := context.Background()
	discard := log.New(io.Discard, "", 0)
	clock := &testClock{t: time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)}

	st := store.Open(ctx, store.NewMemoryBackend(), store.WithLogger(discard), store.WithClock(clock.now))
	p, err := st.AddProblem(ctx, model.InboxID, "", store.NewProblem{Name: "Write report"})
	if err != nil {
		t.Fatal(err)
	}
	entry, ok := views.Locate(st.Snapshot().Lists, p.ID)
	if !ok {
		t.Fatal("problem not found after add")
	}

	sess := focus.NewSession(p, st, focus.WithClock(clock.now), focus.WithLogger(discard))
	m := NewFocusModel(ctx, st, entry, sess)
	t.Cleanup(m.unsubscribe)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(FocusModel), st, clock
}

func press(t *testing.T, m FocusModel, keys string) (FocusModel, tea.Cmd) {
	t.Helper()
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	if keys == " " {
		msg = tea.KeyMsg{Type: tea.KeySpace}
	}
	updated, cmd := m.Update(msg)
	return updated.(FocusModel), cmd
}

func TestFocusModelShowsModePicker(t *testing.T) {
	m, _, _ := newTestModel(t)

	out := m.View()
	for _, want := range []string{"Write report", "Inbox", "How do you want to work?", "Total time"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestFocusModelQuitCommitsStopwatch(t *testing.T) {
	m, st, clock := newTestModel(t)
	id := m.entry.Problem.ID

	m, _ = press(t, m, "3")
	m, _ = press(t, m, " ")
	if r := m.session.Read(clock.now()); r.Mode != focus.ModeStopwatch || r.State != focus.Running {
		t.Fatalf("after 3 and space: mode %s state %s", r.Mode, r.State)
	}

	clock.t = clock.t.Add(45 * time.Second)
	if !strings.Contains(m.View(), "0:45") {
		t.Errorf("clock not shown in view:\n%s", m.View())
	}

	m, cmd := press(t, m, "q")
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("quit did not return tea.Quit")
	}
	if !m.quitting {
		t.Error("model not marked as quitting")
	}

	e, _ := views.Locate(st.Snapshot().Lists, id)
	if e.Problem.TotalTime != 45*time.Second {
		t.Errorf("TotalTime = %v, want 45s", e.Problem.TotalTime)
	}
	if e.Problem.Status != model.StatusSolving {
		t.Errorf("Status = %s, want solving", e.Problem.Status)
	}
}

func TestFocusModelModeKeysLockedUntilReset(t *testing.T) {
	m, _, clock := newTestModel(t)

	m, _ = press(t, m, "2")
	m, _ = press(t, m, "3")
	if r := m.session.Read(clock.now()); r.Mode != focus.ModePomodoro {
		t.Fatalf("mode = %s, want pomodoro", r.Mode)
	}

	m, _ = press(t, m, "r")
	m, _ = press(t, m, "3")
	if r := m.session.Read(clock.now()); r.Mode != focus.ModeStopwatch {
		t.Fatalf("mode after reset = %s, want stopwatch", r.Mode)
	}
}

func TestFocusModelSolveQuits(t *testing.T) {
	m, st, clock := newTestModel(t)
	id := m.entry.Problem.ID

	m, _ = press(t, m, "1")
	m, _ = press(t, m, " ")
	clock.t = clock.t.Add(2 * time.Minute)

	_, cmd := press(t, m, "d")
	if cmd == nil {
		t.Fatal("solve returned no command")
	}

	e, _ := views.Locate(st.Snapshot().Lists, id)
	if !e.Problem.Completed || e.Problem.TotalTime != 2*time.Minute {
		t.Errorf("after solve: completed %v total %v", e.Problem.Completed, e.Problem.TotalTime)
	}
}

func TestFocusModelFollowsStore(t *testing.T) {
	m, st, _ := newTestModel(t)
	ctx := context.Background()

	name := "Write final report"
	if err := st.UpdateProblemByID(ctx, m.entry.Problem.ID, store.ProblemPatch{Name: &name}); err != nil {
		t.Fatal(err)
	}

	updated, cmd := m.Update(stateMsg{state: st.Snapshot()})
	m = updated.(FocusModel)
	if cmd == nil {
		t.Error("state message did not resubscribe")
	}
	if !strings.Contains(m.View(), name) {
		t.Errorf("view does not show renamed problem")
	}

	if err := st.DeleteProblem(ctx, model.InboxID, m.entry.Problem.ID); err != nil {
		t.Fatal(err)
	}
	updated, _ = m.Update(stateMsg{state: st.Snapshot()})
	if got := updated.(FocusModel).errorMsg; got == "" {
		t.Error("deleting the problem left no error message")
	}
}
