package model

import (
	"time"
)

// Status is a workflow label on a problem
type Status string

const (
	StatusToSolve Status = "to_solve"
	StatusSolving Status = "solving"
	StatusBlocked Status = "blocked"
	StatusOngoing Status = "ongoing"
	StatusSolved  Status = "solved"
)

// Statuses lists every status in display order
var Statuses = []Status{StatusToSolve, StatusSolving, StatusBlocked, StatusOngoing, StatusSolved}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Priority is a coarse scheduling hint, independent of the due date
type Priority string

const (
	PriorityToday     Priority = "today"
	PriorityThisWeek  Priority = "this_week"
	PriorityLater     Priority = "later"
	PriorityRecurring Priority = "recurring"
	PrioritySomeday   Priority = "someday"
)

// Priorities lists every priority in display order
var Priorities = []Priority{PriorityToday, PriorityThisWeek, PriorityLater, PriorityRecurring, PrioritySomeday}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	for _, v := range Priorities {
		if p == v {
			return true
		}
	}
	return false
}

// Problem is a task node. Subproblems nest to any depth.
type Problem struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Notes             string          `json:"notes,omitempty"`
	DueDate           *Date           `json:"dueDate"`
	Subproblems       []Problem       `json:"subproblems"`
	Completed         bool            `json:"completed"`
	Status            Status          `json:"status"`
	Priority          Priority        `json:"priority"`
	EstimatedDuration *int            `json:"estimatedDuration,omitempty"` // Minutes
	TotalTime         time.Duration   `json:"totalTime,omitempty"`
	Sessions          []SessionRecord `json:"sessions,omitempty"`
	CompletedAt       *time.Time      `json:"completedAt,omitempty"`
}

// NodeID, NodeChildren and WithChildren let the tree package walk problems.

func (p Problem) NodeID() string {
	return p.ID
}

func (p Problem) NodeChildren() []Problem {
	return p.Subproblems
}

func (p Problem) WithChildren(children []Problem) Problem {
	p.Subproblems = children
	return p
}

// SetCompleted flips the completion flag and keeps Status and CompletedAt in
// step with it. Setting the current value again changes nothing.
func (p *Problem) SetCompleted(completed bool, now time.Time) {
	if p.Completed == completed {
		return
	}
	p.Completed = completed
	if completed {
		p.Status = StatusSolved
		at := now
		p.CompletedAt = &at
		return
	}
	p.Status = StatusToSolve
	p.CompletedAt = nil
}

// HasIncompleteChildren returns true if any direct subproblem is not completed
func (p *Problem) HasIncompleteChildren() bool {
	for i := range p.Subproblems {
		if !p.Subproblems[i].Completed {
			return true
		}
	}
	return false
}

// TrackedTime returns the sum of all recorded session durations. It can be
// lower than TotalTime when time was logged before sessions were recorded.
func (p *Problem) TrackedTime() time.Duration {
	var total time.Duration
	for _, s := range p.Sessions {
		total += s.Duration
	}
	return total
}
