package views

import (
	"sort"
	"strings"

	"github.com/dori/tackle/internal/model"
)

const breadcrumbSeparator = " › "

// Entry is a problem pulled out of its tree together with where it lives
type Entry struct {
	List      *model.List
	Ancestors []*model.Problem
	Problem   *model.Problem
}

// Breadcrumb returns "list › ancestor › … › problem"
func (e Entry) Breadcrumb() string {
	parts := make([]string, 0, len(e.Ancestors)+2)
	parts = append(parts, e.List.Title())
	for _, a := range e.Ancestors {
		parts = append(parts, a.Name)
	}
	parts = append(parts, e.Problem.Name)
	return strings.Join(parts, breadcrumbSeparator)
}

// Flatten returns every problem matching pred, in tree order, with its
// breadcrumb.
func Flatten(lists []model.List, pred Predicate) []Entry {
	var out []Entry
	for i := range lists {
		l := &lists[i]
		var walk func(ps []model.Problem, ancestors []*model.Problem)
		walk = func(ps []model.Problem, ancestors []*model.Problem) {
			for j := range ps {
				p := &ps[j]
				if pred(p) {
					out = append(out, Entry{
						List:      l,
						Ancestors: append([]*model.Problem(nil), ancestors...),
						Problem:   p,
					})
				}
				walk(p.Subproblems, append(ancestors, p))
			}
		}
		walk(l.Problems, nil)
	}
	return out
}

// Locate returns the entry for a problem id anywhere in the forest
func Locate(lists []model.List, id string) (Entry, bool) {
	found := Flatten(lists, func(p *model.Problem) bool { return p.ID == id })
	if len(found) == 0 {
		return Entry{}, false
	}
	return found[0], true
}

// DateGroup is one heading of the upcoming page
type DateGroup struct {
	Date    model.Date
	Heading string
	Entries []Entry
}

// GroupByDueDate groups entries by due date, earliest first. Entries within
// a group keep their tree order. Entries without a due date are dropped.
func GroupByDueDate(entries []Entry) []DateGroup {
	byDate := map[model.Date][]Entry{}
	var dates []model.Date
	for _, e := range entries {
		if e.Problem.DueDate == nil {
			continue
		}
		d := *e.Problem.DueDate
		if _, ok := byDate[d]; !ok {
			dates = append(dates, d)
		}
		byDate[d] = append(byDate[d], e)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	groups := make([]DateGroup, 0, len(dates))
	for _, d := range dates {
		groups = append(groups, DateGroup{Date: d, Heading: DateHeading(d), Entries: byDate[d]})
	}
	return groups
}

// SortByCompletion orders entries most recently completed first
func SortByCompletion(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Problem.CompletedAt, entries[j].Problem.CompletedAt
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.After(*b)
	})
}
