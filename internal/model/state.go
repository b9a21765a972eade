package model

// Layout selects how list pages are arranged
type Layout string

const (
	LayoutSingleColumn Layout = "single-column"
	LayoutTwoColumns   Layout = "two-columns"
)

// View names a derived page
type View string

const (
	ViewInbox       View = "inbox"
	ViewToday       View = "today"
	ViewThisWeek    View = "this-week"
	ViewUpcoming    View = "upcoming"
	ViewNextActions View = "next-actions"
	ViewUnfinished  View = "unfinished"
)

// Views lists every view a user can pick as default
var Views = []View{ViewInbox, ViewToday, ViewThisWeek, ViewUpcoming, ViewNextActions, ViewUnfinished}

// Valid reports whether v is a known view
func (v View) Valid() bool {
	for _, x := range Views {
		if v == x {
			return true
		}
	}
	return false
}

// Settings holds user preferences persisted with the state
type Settings struct {
	Layout      Layout `json:"layout"`
	DefaultView View   `json:"defaultView"`
}

// AppState is the whole persisted forest plus settings.
//
// A snapshot handed out by the store is shared with other readers and must
// not be modified; use Clone to get a private copy.
type AppState struct {
	Lists    []List   `json:"lists"`
	Settings Settings `json:"settings"`
}

// DefaultSettings returns the settings of a fresh install
func DefaultSettings() Settings {
	return Settings{
		Layout:      LayoutSingleColumn,
		DefaultView: ViewInbox,
	}
}

// DefaultState returns a state holding only the empty inbox
func DefaultState() *AppState {
	return &AppState{
		Lists: []List{{
			ID:       InboxID,
			Name:     "Inbox",
			Problems: []Problem{},
		}},
		Settings: DefaultSettings(),
	}
}

// FindList returns the list with the given id
func (s *AppState) FindList(id string) (*List, int, bool) {
	for i := range s.Lists {
		if s.Lists[i].ID == id {
			return &s.Lists[i], i, true
		}
	}
	return nil, -1, false
}

// Clone returns a deep copy of the state
func (s *AppState) Clone() *AppState {
	out := &AppState{
		Lists:    make([]List, len(s.Lists)),
		Settings: s.Settings,
	}
	for i, l := range s.Lists {
		l.Problems = cloneProblems(l.Problems)
		out.Lists[i] = l
	}
	return out
}

func cloneProblems(in []Problem) []Problem {
	if in == nil {
		return nil
	}
	out := make([]Problem, len(in))
	for i, p := range in {
		p.Subproblems = cloneProblems(p.Subproblems)
		if p.Sessions != nil {
			p.Sessions = append([]SessionRecord(nil), p.Sessions...)
		}
		if p.DueDate != nil {
			d := *p.DueDate
			p.DueDate = &d
		}
		if p.EstimatedDuration != nil {
			e := *p.EstimatedDuration
			p.EstimatedDuration = &e
		}
		if p.CompletedAt != nil {
			c := *p.CompletedAt
			p.CompletedAt = &c
		}
		out[i] = p
	}
	return out
}
