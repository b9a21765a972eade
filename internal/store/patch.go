package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/dori/tackle/internal/model"
)

// NewList holds the caller-supplied fields of a list being created
type NewList struct {
	Name        string
	Emoji       string
	Description string
}

// NewProblem holds the caller-supplied fields of a problem being created.
// Zero values fall back to status to_solve and priority later.
type NewProblem struct {
	Name              string
	Notes             string
	Status            model.Status
	Priority          model.Priority
	DueDate           *model.Date
	EstimatedDuration *int
}

func (n NewProblem) validate() error {
	if strings.TrimSpace(n.Name) == "" {
		return ErrEmptyName
	}
	if n.Status != "" && !n.Status.Valid() {
		return fmt.Errorf("status %q: %w", n.Status, ErrInvalidValue)
	}
	if n.Priority != "" && !n.Priority.Valid() {
		return fmt.Errorf("priority %q: %w", n.Priority, ErrInvalidValue)
	}
	return nil
}

func (n NewProblem) build(id string) model.Problem {
	p := model.Problem{
		ID:          id,
		Name:        strings.TrimSpace(n.Name),
		Notes:       n.Notes,
		Subproblems: []model.Problem{},
		Status:      n.Status,
		Priority:    n.Priority,
	}
	if n.DueDate != nil {
		d := *n.DueDate
		p.DueDate = &d
	}
	if n.EstimatedDuration != nil {
		e := *n.EstimatedDuration
		p.EstimatedDuration = &e
	}
	if p.Status == "" {
		p.Status = model.StatusToSolve
	}
	if p.Priority == "" {
		p.Priority = model.PriorityLater
	}
	return p
}

// ProblemPatch lists the fields to change on a problem. Nil fields are left
// alone.
type ProblemPatch struct {
	Name              *string
	Notes             *string
	DueDate           *model.Date
	ClearDueDate      bool
	Completed         *bool
	Status            *model.Status
	Priority          *model.Priority
	EstimatedDuration *int
	TotalTime         *time.Duration

	// AppendSessions are added to the session log and their durations to
	// TotalTime.
	AppendSessions []model.SessionRecord
}

func (pp ProblemPatch) validate() error {
	if pp.Name != nil && strings.TrimSpace(*pp.Name) == "" {
		return ErrEmptyName
	}
	if pp.Status != nil && !pp.Status.Valid() {
		return fmt.Errorf("status %q: %w", *pp.Status, ErrInvalidValue)
	}
	if pp.Priority != nil && !pp.Priority.Valid() {
		return fmt.Errorf("priority %q: %w", *pp.Priority, ErrInvalidValue)
	}
	return nil
}

func (pp ProblemPatch) apply(p model.Problem, now time.Time) model.Problem {
	if pp.Name != nil {
		p.Name = strings.TrimSpace(*pp.Name)
	}
	if pp.Notes != nil {
		p.Notes = *pp.Notes
	}
	if pp.ClearDueDate {
		p.DueDate = nil
	}
	if pp.DueDate != nil {
		d := *pp.DueDate
		p.DueDate = &d
	}
	if pp.Status != nil {
		p.Status = *pp.Status
	}
	if pp.Priority != nil {
		p.Priority = *pp.Priority
	}
	if pp.EstimatedDuration != nil {
		e := *pp.EstimatedDuration
		p.EstimatedDuration = &e
	}
	if pp.TotalTime != nil {
		p.TotalTime = *pp.TotalTime
	}
	if len(pp.AppendSessions) > 0 {
		sessions := make([]model.SessionRecord, 0, len(p.Sessions)+len(pp.AppendSessions))
		sessions = append(sessions, p.Sessions...)
		for _, s := range pp.AppendSessions {
			sessions = append(sessions, s)
			p.TotalTime += s.Duration
		}
		p.Sessions = sessions
	}
	// Completion goes last so a solved problem always reads as solved.
	// Reopening keeps an explicit status instead of falling back to to_solve.
	if pp.Completed != nil {
		p.SetCompleted(*pp.Completed, now)
		if !*pp.Completed && pp.Status != nil {
			p.Status = *pp.Status
		}
	}
	return p
}

// ListPatch lists the list fields to change. Problems are never touched.
type ListPatch struct {
	Name        *string
	Description *string
	Emoji       *string
}

func (lp ListPatch) validate() error {
	if lp.Name != nil && strings.TrimSpace(*lp.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (lp ListPatch) apply(l model.List) model.List {
	if lp.Name != nil {
		l.Name = strings.TrimSpace(*lp.Name)
	}
	if lp.Description != nil {
		l.Description = *lp.Description
	}
	if lp.Emoji != nil {
		l.Emoji = *lp.Emoji
	}
	return l
}

// SettingsPatch lists the settings to change
type SettingsPatch struct {
	Layout      *model.Layout
	DefaultView *model.View
}

func (sp SettingsPatch) validate() error {
	if sp.Layout != nil && *sp.Layout != model.LayoutSingleColumn && *sp.Layout != model.LayoutTwoColumns {
		return fmt.Errorf("layout %q: %w", *sp.Layout, ErrInvalidValue)
	}
	if sp.DefaultView != nil && !sp.DefaultView.Valid() {
		return fmt.Errorf("view %q: %w", *sp.DefaultView, ErrInvalidValue)
	}
	return nil
}

func (sp SettingsPatch) apply(s model.Settings) model.Settings {
	if sp.Layout != nil {
		s.Layout = *sp.Layout
	}
	if sp.DefaultView != nil {
		s.DefaultView = *sp.DefaultView
	}
	return s
}
