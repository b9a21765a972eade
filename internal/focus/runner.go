package focus

import (
	"context"
	"time"
)

// TickInterval is how often Run advances the timer
const TickInterval = time.Second

// Reading is what a display needs to draw a session at one instant
type Reading struct {
	ProblemID string
	Name      string
	Mode      Mode
	State     TimerState
	Phase     Phase
	Cycles    int

	// Clock is the countdown remaining, or the stopwatch elapsed time
	Clock time.Duration

	Accumulating bool
	// Segment is the length of the open, not yet committed segment
	Segment time.Duration
	// Tracked is the time committed by this session plus Segment
	Tracked time.Duration
	Closed  bool
}

// Read returns the session as of now
func (s *Session) Read(now time.Time) Reading {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := Reading{
		ProblemID:    s.problemID,
		Name:         s.name,
		Mode:         s.mode,
		State:        s.state,
		Phase:        s.phase,
		Cycles:       s.cycles,
		Accumulating: s.accumulating,
		Tracked:      s.committed,
		Closed:       s.closed,
	}
	if s.accumulating && now.After(s.anchor) {
		r.Segment = now.Sub(s.anchor)
		r.Tracked += r.Segment
	}

	switch {
	case s.mode == ModeStopwatch:
		r.Clock = s.elapsed
		if s.state == Running {
			r.Clock += now.Sub(s.startedAt)
		}
	case s.state == Running:
		r.Clock = max(s.deadline.Sub(now), 0)
	default:
		r.Clock = s.remaining
	}
	return r
}

// Now returns the session's clock reading
func (s *Session) Now() time.Time {
	return s.now()
}

// Run ticks the session every TickInterval until ctx is done, then exits the
// session so the open segment is committed. fn, if set, is called after
// every tick. Run also returns once the session is exited elsewhere.
func (s *Session) Run(ctx context.Context, fn func(Reading)) error {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// The caller's context is already cancelled; the final commit
			// still has to reach the store.
			return s.Exit(context.WithoutCancel(ctx))
		case <-ticker.C:
			now := s.now()
			if err := s.Tick(ctx, now); err != nil {
				s.logger.Printf("focus tick: %v", err)
			}
			r := s.Read(now)
			if fn != nil {
				fn(r)
			}
			if r.Closed {
				return nil
			}
		}
	}
}
