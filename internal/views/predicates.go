// Package views derives the task pages from a state snapshot. Everything here
// is a pure function of the snapshot and the instant of the render pass.
package views

import (
	"time"

	"github.com/dori/tackle/internal/model"
)

// Predicate classifies a single problem
type Predicate func(p *model.Problem) bool

// Week is the Monday–Sunday window containing a date
type Week struct {
	Start model.Date
	End   model.Date
}

// WeekOf returns the week containing d. Weeks start on Monday, so for a
// Sunday the window starts six days earlier.
func WeekOf(d model.Date) Week {
	offset := (int(d.Weekday()) + 6) % 7
	start := d.AddDays(-offset)
	return Week{Start: start, End: start.AddDays(6)}
}

// Contains reports whether d falls inside the week
func (w Week) Contains(d model.Date) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// Clock pins "today" and "this week" for one render pass
type Clock struct {
	Now   time.Time
	Today model.Date
	Week  Week
}

// NewClock derives the calendar values of now in now's location
func NewClock(now time.Time) Clock {
	today := model.DateOf(now)
	return Clock{Now: now, Today: today, Week: WeekOf(today)}
}

// IsOverdue returns true if an open problem was due before today
func (c Clock) IsOverdue(p *model.Problem) bool {
	return !p.Completed && p.DueDate != nil && p.DueDate.Before(c.Today)
}

// IsDueToday returns true if an open problem is due today
func (c Clock) IsDueToday(p *model.Problem) bool {
	return !p.Completed && p.DueDate != nil && p.DueDate.Equal(c.Today)
}

// IsDoToday returns true if an open problem is prioritized for today
func (c Clock) IsDoToday(p *model.Problem) bool {
	return !p.Completed && p.Priority == model.PriorityToday
}

// IsToday matches any of the three Today sections
func (c Clock) IsToday(p *model.Problem) bool {
	return c.IsOverdue(p) || c.IsDueToday(p) || c.IsDoToday(p)
}

// IsThisWeek matches open problems prioritized for today or this week, or
// due within the current week
func (c Clock) IsThisWeek(p *model.Problem) bool {
	if p.Completed {
		return false
	}
	if p.Priority == model.PriorityToday || p.Priority == model.PriorityThisWeek {
		return true
	}
	return p.DueDate != nil && c.Week.Contains(*p.DueDate)
}

// IsUpcoming matches open problems due strictly after today
func (c Clock) IsUpcoming(p *model.Problem) bool {
	return !p.Completed && p.DueDate != nil && p.DueDate.After(c.Today)
}

// IsSolvedThisWeek matches problems completed during the current week
func (c Clock) IsSolvedThisWeek(p *model.Problem) bool {
	if !p.Completed || p.CompletedAt == nil {
		return false
	}
	return c.Week.Contains(model.DateOf(p.CompletedAt.In(c.Now.Location())))
}

// IsNextAction matches open problems none of whose direct children are
// still open
func IsNextAction(p *model.Problem) bool {
	return !p.Completed && !p.HasIncompleteChildren()
}

// IsUnfinished matches open problems that were started or are blocked
func IsUnfinished(p *model.Problem) bool {
	return !p.Completed && (p.Status == model.StatusSolving || p.Status == model.StatusBlocked)
}

// IsOpen matches every problem that is not completed
func IsOpen(p *model.Problem) bool {
	return !p.Completed
}
