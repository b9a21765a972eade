package views

import (
	"github.com/dori/tackle/internal/model"
)

// CountMatching counts problems matching pred at every depth. A match under
// a completed ancestor still counts.
func CountMatching(ps []model.Problem, pred Predicate) int {
	n := 0
	for i := range ps {
		if pred(&ps[i]) {
			n++
		}
		n += CountMatching(ps[i].Subproblems, pred)
	}
	return n
}

// CountIncomplete counts open problems at every depth
func CountIncomplete(ps []model.Problem) int {
	return CountMatching(ps, IsOpen)
}

// ListCounts returns the open problem count of every list by id
func ListCounts(st *model.AppState) map[string]int {
	out := make(map[string]int, len(st.Lists))
	for _, l := range st.Lists {
		out[l.ID] = CountIncomplete(l.Problems)
	}
	return out
}

// InboxCount returns the open problem count of the inbox
func InboxCount(st *model.AppState) int {
	l, _, ok := st.FindList(model.InboxID)
	if !ok {
		return 0
	}
	return CountIncomplete(l.Problems)
}

// Progress is the completion tally of a list
type Progress struct {
	Completed int
	Total     int
}

// Percent returns the completed share rounded down, 0 for an empty list
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return p.Completed * 100 / p.Total
}

// ListProgress returns the completion tally of a list's whole tree
func ListProgress(l *model.List) Progress {
	total := CountMatching(l.Problems, func(*model.Problem) bool { return true })
	open := CountIncomplete(l.Problems)
	return Progress{Completed: total - open, Total: total}
}
