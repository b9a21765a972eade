package focus

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/dori/tackle/internal/model"
	"github.com/dori/tackle/internal/store"
	"github.com/dori/tackle/internal/tree"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type recordingNotifier struct {
	work      []int
	longBreak []bool
	breaks    int
	countdown int
}

func (n *recordingNotifier) SendWorkComplete(_ string, cycle int, long bool) error {
	n.work = append(n.work, cycle)
	n.longBreak = append(n.longBreak, long)
	return nil
}

func (n *recordingNotifier) SendBreakComplete(string) error {
	n.breaks++
	return nil
}

func (n *recordingNotifier) SendCountdownComplete(string, time.Duration) error {
	n.countdown++
	return nil
}

type fixture struct {
	store    *store.Store
	clock    *fakeClock
	notifier *recordingNotifier
	session  *Session
	problem  model.Problem
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	discard := log.New(io.Discard, "", 0)
	clock := &fakeClock{t: time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)}

	s := store.Open(ctx, store.NewMemoryBackend(), store.WithLogger(discard), store.WithClock(clock.now))
	p, err := s.AddProblem(ctx, model.InboxID, "", store.NewProblem{Name: "Write report"})
	if err != nil {
		t.Fatal(err)
	}
	n := &recordingNotifier{}
	return &fixture{
		store:    s,
		clock:    clock,
		notifier: n,
		problem:  p,
		session:  NewSession(p, s, WithClock(clock.now), WithNotifier(n), WithLogger(discard)),
	}
}

func (f *fixture) current(t *testing.T) model.Problem {
	t.Helper()
	l, _, _ := f.store.Snapshot().FindList(model.InboxID)
	p, ok := tree.Find(l.Problems, f.problem.ID)
	if !ok {
		t.Fatal("problem vanished")
	}
	return p
}

func (f *fixture) tick(t *testing.T, d time.Duration) {
	t.Helper()
	for step := time.Duration(0); step < d; step += time.Second {
		f.clock.advance(time.Second)
		if err := f.session.Tick(context.Background(), f.clock.t); err != nil {
			t.Fatal(err)
		}
	}
}

func TestStopwatchCommitsOnExit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.session.SelectMode(ModeStopwatch); err != nil {
		t.Fatal(err)
	}
	if err := f.session.Toggle(ctx); err != nil {
		t.Fatal(err)
	}
	start := f.clock.t
	f.tick(t, 90*time.Second)

	if got := f.session.Read(f.clock.t).Clock; got != 90*time.Second {
		t.Fatalf("stopwatch reads %v", got)
	}
	if err := f.session.Exit(ctx); err != nil {
		t.Fatal(err)
	}

	p := f.current(t)
	if len(p.Sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(p.Sessions))
	}
	rec := p.Sessions[0]
	if rec.Duration != 90*time.Second || !rec.StartTime.Equal(start) || !rec.EndTime.Equal(f.clock.t) {
		t.Fatalf("record = %+v", rec)
	}
	if p.TotalTime != 90*time.Second {
		t.Fatalf("total time = %v", p.TotalTime)
	}
	if p.Status != model.StatusSolving {
		t.Fatalf("status = %q, want solving", p.Status)
	}

	// Exit is idempotent and the session refuses further work.
	if err := f.session.Exit(ctx); err != nil {
		t.Fatal(err)
	}
	if err := f.session.Toggle(ctx); !errors.Is(err, ErrClosed) {
		t.Fatalf("toggle after exit = %v", err)
	}
	if n := len(f.current(t).Sessions); n != 1 {
		t.Fatalf("sessions after second exit = %d", n)
	}
}

func TestPauseCommitsSegment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_ = f.session.SelectMode(ModeStopwatch)
	_ = f.session.Toggle(ctx)
	f.tick(t, 10*time.Second)
	_ = f.session.Toggle(ctx) // pause
	f.tick(t, 30*time.Second)
	_ = f.session.Toggle(ctx) // resume
	f.tick(t, 5*time.Second)
	if err := f.session.Exit(ctx); err != nil {
		t.Fatal(err)
	}

	p := f.current(t)
	if len(p.Sessions) != 2 || p.TotalTime != 15*time.Second {
		t.Fatalf("sessions = %+v total = %v", p.Sessions, p.TotalTime)
	}
}

func TestModeLockedUntilReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.session.Toggle(ctx); !errors.Is(err, ErrNoMode) {
		t.Fatalf("toggle without mode = %v", err)
	}
	_ = f.session.SelectMode(ModeFiveMinute)
	if err := f.session.SelectMode(ModePomodoro); !errors.Is(err, ErrModeLocked) {
		t.Fatalf("second SelectMode = %v", err)
	}

	_ = f.session.Toggle(ctx)
	f.tick(t, 20*time.Second)
	if err := f.session.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if got := f.current(t).TotalTime; got != 20*time.Second {
		t.Fatalf("reset did not commit: %v", got)
	}
	if err := f.session.SelectMode(ModePomodoro); err != nil {
		t.Fatalf("SelectMode after reset = %v", err)
	}
}

func TestFiveMinuteCountdownStopsAccumulation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_ = f.session.SelectMode(ModeFiveMinute)
	_ = f.session.Toggle(ctx)
	f.tick(t, 6*time.Minute)

	r := f.session.Read(f.clock.t)
	if r.State != Idle || r.Clock != 0 || r.Accumulating {
		t.Fatalf("reading after countdown = %+v", r)
	}
	if got := f.current(t).TotalTime; got != FiveMinute {
		t.Fatalf("total time = %v, want %v", got, FiveMinute)
	}
	if f.notifier.countdown != 1 {
		t.Fatalf("countdown notifications = %d", f.notifier.countdown)
	}

	// Exiting later adds nothing.
	_ = f.session.Exit(ctx)
	if n := len(f.current(t).Sessions); n != 1 {
		t.Fatalf("sessions = %d", n)
	}
}

func TestPomodoroCycling(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_ = f.session.SelectMode(ModePomodoro)
	if r := f.session.Read(f.clock.t); r.Accumulating || r.Clock != WorkDuration {
		t.Fatalf("pomodoro must start paused: %+v", r)
	}

	var phases []Phase
	for i := 0; i < 8; i++ {
		if err := f.session.Toggle(ctx); err != nil {
			t.Fatal(err)
		}
		r := f.session.Read(f.clock.t)
		f.tick(t, r.Clock)

		r = f.session.Read(f.clock.t)
		if r.State != Paused || !r.Accumulating {
			t.Fatalf("after phase %d: %+v", i, r)
		}
		phases = append(phases, r.Phase)
	}

	want := []Phase{
		PhaseBreak, PhaseWork, PhaseBreak, PhaseWork,
		PhaseBreak, PhaseWork, PhaseLongBreak, PhaseWork,
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Fatalf("phases = %v, want %v", phases, want)
		}
	}
	if len(f.notifier.work) != 4 || !f.notifier.longBreak[3] || f.notifier.longBreak[2] || f.notifier.breaks != 4 {
		t.Fatalf("notifications = %+v", f.notifier)
	}

	// Nothing was committed across the automatic pauses.
	if n := len(f.current(t).Sessions); n != 0 {
		t.Fatalf("sessions before exit = %d", n)
	}
	total := 4*WorkDuration + 3*BreakDuration + LongBreakDuration
	if err := f.session.Exit(ctx); err != nil {
		t.Fatal(err)
	}
	if got := f.current(t).TotalTime; got != total {
		t.Fatalf("total time = %v, want %v", got, total)
	}
}

func TestPomodoroUserPauseStopsAccumulation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_ = f.session.SelectMode(ModePomodoro)
	_ = f.session.Toggle(ctx)
	f.tick(t, time.Minute)
	_ = f.session.Toggle(ctx)

	r := f.session.Read(f.clock.t)
	if r.Accumulating || r.Clock != WorkDuration-time.Minute {
		t.Fatalf("reading = %+v", r)
	}
	if got := f.current(t).TotalTime; got != time.Minute {
		t.Fatalf("total = %v", got)
	}
}

func TestMarkSolved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_ = f.session.SelectMode(ModeStopwatch)
	_ = f.session.Toggle(ctx)
	f.tick(t, 42*time.Second)
	if err := f.session.MarkSolved(ctx); err != nil {
		t.Fatal(err)
	}

	p := f.current(t)
	if !p.Completed || p.Status != model.StatusSolved || p.CompletedAt == nil {
		t.Fatalf("problem = %+v", p)
	}
	if p.TotalTime != 42*time.Second {
		t.Fatalf("total = %v", p.TotalTime)
	}
	r := f.session.Read(f.clock.t)
	if r.State != Idle || r.Accumulating {
		t.Fatalf("reading = %+v", r)
	}
}

func TestStatusLeftAloneWhenAlreadyStarted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	blocked := model.StatusBlocked
	if err := f.store.UpdateProblemByID(ctx, f.problem.ID, store.ProblemPatch{Status: &blocked}); err != nil {
		t.Fatal(err)
	}
	s := NewSession(f.current(t), f.store, WithClock(f.clock.now))
	_ = s.SelectMode(ModeStopwatch)
	_ = s.Toggle(ctx)
	if got := f.current(t).Status; got != model.StatusBlocked {
		t.Fatalf("status = %q", got)
	}
}

func TestRunCommitsOnCancel(t *testing.T) {
	f := newFixture(t)
	_ = f.session.SelectMode(ModeStopwatch)
	_ = f.session.Toggle(context.Background())
	f.clock.advance(3 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := f.session.Run(ctx, nil); err != nil {
		t.Fatal(err)
	}
	if got := f.current(t).TotalTime; got != 3*time.Second {
		t.Fatalf("total = %v", got)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"5min":      ModeFiveMinute,
		"pomodoro":  ModePomodoro,
		"stopwatch": ModeStopwatch,
	} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("hourglass"); err == nil {
		t.Error("expected error")
	}
}
