// Package focus runs timed work sessions on a single problem and commits the
// time spent back into the store.
package focus

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dori/tackle/internal/model"
	"github.com/dori/tackle/internal/store"
)

// Timer durations
const (
	FiveMinute        = 5 * time.Minute
	WorkDuration      = 25 * time.Minute
	BreakDuration     = 5 * time.Minute
	LongBreakDuration = 15 * time.Minute

	// LongBreakEvery routes every n-th finished work cycle to a long break
	LongBreakEvery = 4
)

var (
	ErrModeLocked = errors.New("mode already selected, reset first")
	ErrNoMode     = errors.New("no mode selected")
	ErrClosed     = errors.New("session closed")
)

// Mode is the kind of timer driving a session
type Mode int

const (
	ModeUnselected Mode = iota
	ModeFiveMinute
	ModePomodoro
	ModeStopwatch
)

func (m Mode) String() string {
	switch m {
	case ModeFiveMinute:
		return "five-minute"
	case ModePomodoro:
		return "pomodoro"
	case ModeStopwatch:
		return "stopwatch"
	default:
		return "unselected"
	}
}

// ParseMode accepts the names printed by String plus a few short forms
func ParseMode(s string) (Mode, error) {
	switch s {
	case "five-minute", "5min", "5m", "5":
		return ModeFiveMinute, nil
	case "pomodoro", "pomo":
		return ModePomodoro, nil
	case "stopwatch", "sw":
		return ModeStopwatch, nil
	}
	return ModeUnselected, fmt.Errorf("unknown focus mode %q", s)
}

func (m Mode) countdown() bool {
	return m == ModeFiveMinute || m == ModePomodoro
}

// TimerState represents the timer state
type TimerState int

const (
	Idle TimerState = iota
	Running
	Paused
)

func (s TimerState) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

// Phase is a pomodoro phase
type Phase int

const (
	PhaseWork Phase = iota
	PhaseBreak
	PhaseLongBreak
)

func (p Phase) String() string {
	switch p {
	case PhaseBreak:
		return "break"
	case PhaseLongBreak:
		return "long break"
	default:
		return "work"
	}
}

// Duration returns the countdown length of the phase
func (p Phase) Duration() time.Duration {
	switch p {
	case PhaseBreak:
		return BreakDuration
	case PhaseLongBreak:
		return LongBreakDuration
	default:
		return WorkDuration
	}
}

// Updater is the single store operation a session needs
type Updater interface {
	UpdateProblemByID(ctx context.Context, problemID string, patch store.ProblemPatch) error
}

// Notifier is told when a countdown runs out
type Notifier interface {
	SendWorkComplete(problem string, cycle int, longBreak bool) error
	SendBreakComplete(problem string) error
	SendCountdownComplete(problem string, d time.Duration) error
}

// Session is the timer state of one problem. It is safe for use by a ticker
// goroutine and a UI goroutine at the same time.
type Session struct {
	mu sync.Mutex

	problemID string
	name      string
	status    model.Status

	updater  Updater
	notifier Notifier
	logger   *log.Logger
	now      func() time.Time

	mode   Mode
	state  TimerState
	phase  Phase
	cycles int

	remaining time.Duration
	deadline  time.Time
	elapsed   time.Duration
	startedAt time.Time

	accumulating bool
	anchor       time.Time
	committed    time.Duration
	closed       bool
}

// Option configures a Session
type Option func(*Session)

// WithNotifier reports finished countdowns to n
func WithNotifier(n Notifier) Option {
	return func(s *Session) { s.notifier = n }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithLogger sets the logger used by Run
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession starts a session on p with no mode selected
func NewSession(p model.Problem, u Updater, opts ...Option) *Session {
	s := &Session{
		problemID: p.ID,
		name:      p.Name,
		status:    p.Status,
		updater:   u,
		logger:    log.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SelectMode picks the timer for the session. The mode stays fixed until
// Reset.
func (s *Session) SelectMode(m Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.mode != ModeUnselected {
		return ErrModeLocked
	}
	switch m {
	case ModeFiveMinute:
		s.remaining = FiveMinute
	case ModePomodoro:
		s.phase = PhaseWork
		s.remaining = WorkDuration
	case ModeStopwatch:
		s.elapsed = 0
	default:
		return fmt.Errorf("cannot select mode %s", m)
	}
	s.mode = m
	s.state = Idle
	return nil
}

// Toggle starts or pauses the timer. Pausing a running timer also stops
// accumulation and commits the open segment.
func (s *Session) Toggle(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.mode == ModeUnselected {
		return ErrNoMode
	}
	now := s.now()

	if s.state == Running {
		s.stop(now)
		s.state = Paused
		return s.commit(ctx, now)
	}

	if s.mode.countdown() {
		if s.remaining <= 0 {
			s.remaining = s.fullCountdown()
		}
		s.deadline = now.Add(s.remaining)
	} else {
		s.startedAt = now
	}
	s.state = Running
	return s.startAccumulating(ctx, now)
}

// Tick advances the timer to now. A countdown reaching zero finishes the
// five-minute timer or moves a pomodoro to its next phase.
func (s *Session) Tick(ctx context.Context, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state != Running || !s.mode.countdown() {
		return nil
	}
	if now.Before(s.deadline) {
		s.remaining = s.deadline.Sub(now)
		return nil
	}

	end := s.deadline
	s.remaining = 0

	if s.mode == ModeFiveMinute {
		s.state = Idle
		err := s.commit(ctx, end)
		s.notify(func(n Notifier) error { return n.SendCountdownComplete(s.name, FiveMinute) })
		return err
	}

	// Pomodoro: the countdown pauses on every phase change but the clock on
	// the problem keeps running.
	finished := s.phase
	if finished == PhaseWork {
		s.cycles++
		if s.cycles%LongBreakEvery == 0 {
			s.phase = PhaseLongBreak
		} else {
			s.phase = PhaseBreak
		}
		cycle, long := s.cycles, s.phase == PhaseLongBreak
		s.notify(func(n Notifier) error { return n.SendWorkComplete(s.name, cycle, long) })
	} else {
		s.phase = PhaseWork
		s.notify(func(n Notifier) error { return n.SendBreakComplete(s.name) })
	}
	s.remaining = s.phase.Duration()
	s.state = Paused
	return nil
}

// Reset commits the open segment and returns to mode selection
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	err := s.commit(ctx, s.now())
	s.mode = ModeUnselected
	s.state = Idle
	s.phase = PhaseWork
	s.cycles = 0
	s.remaining = 0
	s.elapsed = 0
	return err
}

// MarkSolved commits the open segment, stops the timer and completes the
// problem.
func (s *Session) MarkSolved(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	now := s.now()
	if s.state == Running {
		s.stop(now)
	}
	s.state = Idle
	if err := s.commit(ctx, now); err != nil {
		return err
	}

	done := true
	if err := s.updater.UpdateProblemByID(ctx, s.problemID, store.ProblemPatch{Completed: &done}); err != nil {
		return err
	}
	s.status = model.StatusSolved
	return nil
}

// Exit commits the open segment and closes the session. Calling it again
// is a no-op.
func (s *Session) Exit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	now := s.now()
	if s.state == Running {
		s.stop(now)
	}
	s.closed = true
	s.state = Idle
	return s.commit(ctx, now)
}

// stop freezes the running clock at now. It must be called with mu held.
func (s *Session) stop(now time.Time) {
	if s.mode.countdown() {
		s.remaining = max(s.deadline.Sub(now), 0)
		return
	}
	s.elapsed += now.Sub(s.startedAt)
}

func (s *Session) fullCountdown() time.Duration {
	if s.mode == ModePomodoro {
		return s.phase.Duration()
	}
	return FiveMinute
}

// startAccumulating must be called with mu held
func (s *Session) startAccumulating(ctx context.Context, now time.Time) error {
	if s.accumulating {
		return nil
	}
	s.accumulating = true
	s.anchor = now

	if s.status != "" && s.status != model.StatusToSolve {
		return nil
	}
	solving := model.StatusSolving
	if err := s.updater.UpdateProblemByID(ctx, s.problemID, store.ProblemPatch{Status: &solving}); err != nil {
		return fmt.Errorf("failed to start problem: %w", err)
	}
	s.status = solving
	return nil
}

// commit must be called with mu held
func (s *Session) commit(ctx context.Context, end time.Time) error {
	if !s.accumulating {
		return nil
	}
	s.accumulating = false
	if !end.After(s.anchor) {
		return nil
	}

	rec := model.NewSessionRecord(s.anchor, end)
	patch := store.ProblemPatch{AppendSessions: []model.SessionRecord{rec}}
	if err := s.updater.UpdateProblemByID(ctx, s.problemID, patch); err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}
	s.committed += rec.Duration
	return nil
}

func (s *Session) notify(fn func(Notifier) error) {
	if s.notifier == nil {
		return
	}
	if err := fn(s.notifier); err != nil {
		s.logger.Printf("notification failed: %v", err)
	}
}
