package views

import (
	"time"

	"github.com/dori/tackle/internal/model"
)

// Pass derives every page from one snapshot at one instant, so that badges
// and page bodies rendered together always agree. Build a new Pass for
// every render; never keep one around while time moves on.
type Pass struct {
	State *model.AppState
	Clock Clock
}

// At starts a render pass
func At(st *model.AppState, now time.Time) Pass {
	return Pass{State: st, Clock: NewClock(now)}
}

// TodayPage holds the three independent sections of the today page. A
// problem can appear in more than one section.
type TodayPage struct {
	Overdue  TreeView
	DueToday TreeView
	DoToday  TreeView
}

// Today derives the today page
func (p Pass) Today() TodayPage {
	return TodayPage{
		Overdue:  Filter(p.State.Lists, p.Clock.IsOverdue),
		DueToday: Filter(p.State.Lists, p.Clock.IsDueToday),
		DoToday:  Filter(p.State.Lists, p.Clock.IsDoToday),
	}
}

// ThisWeek derives the this-week page
func (p Pass) ThisWeek() TreeView {
	return Filter(p.State.Lists, p.Clock.IsThisWeek)
}

// NextActions derives the next-actions page
func (p Pass) NextActions() TreeView {
	return Filter(p.State.Lists, IsNextAction)
}

// Unfinished derives the unfinished page
func (p Pass) Unfinished() TreeView {
	return Filter(p.State.Lists, IsUnfinished)
}

// Upcoming derives the upcoming page, grouped by due date
func (p Pass) Upcoming() []DateGroup {
	return GroupByDueDate(Flatten(p.State.Lists, p.Clock.IsUpcoming))
}

// SolvedThisWeek lists problems completed this week, latest first
func (p Pass) SolvedThisWeek() []Entry {
	entries := Flatten(p.State.Lists, p.Clock.IsSolvedThisWeek)
	SortByCompletion(entries)
	return entries
}

// Badges are the counters shown next to each page in navigation
type Badges struct {
	Inbox       int
	Today       int
	ThisWeek    int
	Upcoming    int
	NextActions int
	Unfinished  int
	Lists       map[string]int
}

// Badges counts every page. The counts agree with the Count of the
// corresponding page in the same pass.
func (p Pass) Badges() Badges {
	lists := p.State.Lists
	count := func(pred Predicate) int {
		n := 0
		for _, l := range lists {
			n += CountMatching(l.Problems, pred)
		}
		return n
	}
	return Badges{
		Inbox:       InboxCount(p.State),
		Today:       count(p.Clock.IsToday),
		ThisWeek:    count(p.Clock.IsThisWeek),
		Upcoming:    count(p.Clock.IsUpcoming),
		NextActions: count(IsNextAction),
		Unfinished:  count(IsUnfinished),
		Lists:       ListCounts(p.State),
	}
}

// Count returns the badge value for a view
func (b Badges) Count(v model.View) int {
	switch v {
	case model.ViewInbox:
		return b.Inbox
	case model.ViewToday:
		return b.Today
	case model.ViewThisWeek:
		return b.ThisWeek
	case model.ViewUpcoming:
		return b.Upcoming
	case model.ViewNextActions:
		return b.NextActions
	case model.ViewUnfinished:
		return b.Unfinished
	default:
		return 0
	}
}
