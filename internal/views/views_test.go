package views

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/dori/tackle/internal/model"
	"github.com/dori/tackle/internal/store"
)

// Wednesday, June 12 2024, mid-afternoon.
var now = time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)

func date(y int, m time.Month, d int) *model.Date {
	v := model.NewDate(y, m, d)
	return &v
}

func TestWeekOf(t *testing.T) {
	tests := []struct {
		name  string
		day   model.Date
		start model.Date
	}{
		{"wednesday", model.NewDate(2024, 6, 12), model.NewDate(2024, 6, 10)},
		{"monday", model.NewDate(2024, 6, 10), model.NewDate(2024, 6, 10)},
		{"sunday starts six days back", model.NewDate(2024, 6, 16), model.NewDate(2024, 6, 10)},
		{"across months", model.NewDate(2024, 3, 2), model.NewDate(2024, 2, 26)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := WeekOf(tt.day)
			if w.Start != tt.start || w.End != tt.start.AddDays(6) {
				t.Fatalf("WeekOf(%s) = %s..%s", tt.day, w.Start, w.End)
			}
			if !w.Contains(tt.day) {
				t.Fatal("week does not contain its own day")
			}
		})
	}
}

func TestTodayAndUpcomingBoundary(t *testing.T) {
	st := model.DefaultState()
	st.Lists[0].Problems = []model.Problem{
		{ID: "today", Name: "due today", DueDate: date(2024, 6, 12), Priority: model.PriorityLater},
		{ID: "tomorrow", Name: "due tomorrow", DueDate: date(2024, 6, 13), Priority: model.PriorityLater},
		{ID: "late", Name: "overdue", DueDate: date(2024, 6, 1), Priority: model.PriorityToday},
	}
	pass := At(st, now)
	today := pass.Today()

	if got := ids(today.DueToday.Matches()); got != "today" {
		t.Fatalf("due today = %q", got)
	}
	if got := ids(today.Overdue.Matches()); got != "late" {
		t.Fatalf("overdue = %q", got)
	}
	// Overdue and do-today sections are independent.
	if got := ids(today.DoToday.Matches()); got != "late" {
		t.Fatalf("do today = %q", got)
	}

	upcoming := pass.Upcoming()
	if len(upcoming) != 1 || len(upcoming[0].Entries) != 1 || upcoming[0].Entries[0].Problem.ID != "tomorrow" {
		t.Fatalf("upcoming = %+v", upcoming)
	}
	if upcoming[0].Heading != "Thursday, June 13" {
		t.Fatalf("heading = %q", upcoming[0].Heading)
	}

	for _, p := range []*model.Problem{&st.Lists[0].Problems[1]} {
		if pass.Clock.IsToday(p) {
			t.Fatalf("%s must not be on the today page", p.ID)
		}
	}
}

func TestUpcomingGroupsSortedByDate(t *testing.T) {
	st := model.DefaultState()
	st.Lists[0].Problems = []model.Problem{
		{ID: "c", Name: "c", DueDate: date(2024, 7, 1)},
		{ID: "a", Name: "a", DueDate: date(2024, 6, 14), Subproblems: []model.Problem{
			{ID: "a1", Name: "a1", DueDate: date(2024, 6, 14)},
		}},
		{ID: "done", Name: "done", DueDate: date(2024, 6, 14), Completed: true},
		{ID: "b", Name: "b", DueDate: date(2024, 6, 20)},
	}
	groups := At(st, now).Upcoming()
	var got []string
	for _, g := range groups {
		got = append(got, g.Date.String()+":"+idsOf(g.Entries))
	}
	want := []string{"2024-06-14:a a1", "2024-06-20:b", "2024-07-01:c"}
	if len(got) != len(want) {
		t.Fatalf("groups = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("groups = %v, want %v", got, want)
		}
	}
	if crumb := groups[0].Entries[1].Breadcrumb(); crumb != "Inbox › a › a1" {
		t.Fatalf("breadcrumb = %q", crumb)
	}
}

func TestThisWeek(t *testing.T) {
	st := model.DefaultState()
	st.Lists[0].Problems = []model.Problem{
		{ID: "prio", Priority: model.PriorityThisWeek},
		{ID: "sunday", Priority: model.PrioritySomeday, DueDate: date(2024, 6, 16)},
		{ID: "monday", Priority: model.PrioritySomeday, DueDate: date(2024, 6, 10)},
		{ID: "nextweek", Priority: model.PriorityLater, DueDate: date(2024, 6, 17)},
		{ID: "closed", Priority: model.PriorityToday, Completed: true},
	}
	if got := ids(At(st, now).ThisWeek().Matches()); got != "prio sunday monday" {
		t.Fatalf("this week = %q", got)
	}
}

func TestNextActions(t *testing.T) {
	st := model.DefaultState()
	st.Lists[0].Problems = []model.Problem{{
		ID: "parent",
		Subproblems: []model.Problem{
			{ID: "open1"},
			{ID: "open2"},
			{ID: "closed", Completed: true},
		},
	}}

	view := At(st, now).NextActions()
	if got := ids(view.Matches()); got != "open1 open2" {
		t.Fatalf("next actions = %q", got)
	}
	// The parent is still shown as a path row, but not counted.
	root := view.Lists[0].Nodes[0]
	if root.Problem.ID != "parent" || root.Match || view.Count != 2 {
		t.Fatalf("root row = %+v, count = %d", root, view.Count)
	}

	st.Lists[0].Problems[0].Subproblems[0].Completed = true
	st.Lists[0].Problems[0].Subproblems[1].Completed = true
	if got := ids(At(st, now).NextActions().Matches()); got != "parent" {
		t.Fatalf("next actions after closing children = %q", got)
	}
}

func TestFilterKeepsPathToDeepMatches(t *testing.T) {
	st := model.DefaultState()
	st.Lists = append(st.Lists, model.List{ID: "empty", Name: "Empty", Problems: []model.Problem{{ID: "x", Status: model.StatusToSolve}}})
	st.Lists[0].Problems = []model.Problem{{
		ID:        "a",
		Completed: true,
		Subproblems: []model.Problem{{
			ID: "b",
			Subproblems: []model.Problem{
				{ID: "c", Status: model.StatusBlocked},
				{ID: "d", Status: model.StatusToSolve},
			},
		}},
	}}

	view := At(st, now).Unfinished()
	if len(view.Lists) != 1 || view.Count != 1 {
		t.Fatalf("lists=%d count=%d", len(view.Lists), view.Count)
	}
	a := view.Lists[0].Nodes[0]
	if a.Match || len(a.Children) != 1 {
		t.Fatalf("a = %+v", a)
	}
	b := a.Children[0]
	if b.Match || len(b.Children) != 1 || b.Children[0].Problem.ID != "c" || !b.Children[0].Match {
		t.Fatalf("b = %+v", b)
	}
}

func TestCountsIgnoreAncestorCompletion(t *testing.T) {
	st := model.DefaultState()
	st.Lists[0].Problems = []model.Problem{{
		ID:        "done",
		Completed: true,
		Subproblems: []model.Problem{
			{ID: "open"},
			{ID: "also open", Subproblems: []model.Problem{{ID: "deep"}}},
		},
	}}
	if n := InboxCount(st); n != 3 {
		t.Fatalf("inbox count = %d, want 3", n)
	}
	if p := ListProgress(&st.Lists[0]); p.Completed != 1 || p.Total != 4 || p.Percent() != 25 {
		t.Fatalf("progress = %+v", p)
	}
}

func TestSolvedThisWeek(t *testing.T) {
	at := func(d int) *time.Time {
		v := time.Date(2024, 6, d, 9, 0, 0, 0, time.UTC)
		return &v
	}
	st := model.DefaultState()
	st.Lists[0].Problems = []model.Problem{
		{ID: "mon", Completed: true, CompletedAt: at(10)},
		{ID: "wed", Completed: true, CompletedAt: at(12)},
		{ID: "lastweek", Completed: true, CompletedAt: at(9)},
		{ID: "open", CompletedAt: at(11)},
	}
	if got := idsOf(At(st, now).SolvedThisWeek()); got != "wed mon" {
		t.Fatalf("solved this week = %q", got)
	}
}

func TestFormatDueDate(t *testing.T) {
	today := model.NewDate(2024, 6, 12)
	tests := []struct {
		d    model.Date
		want string
	}{
		{today, "Today"},
		{today.AddDays(1), "Tomorrow"},
		{today.AddDays(-1), "Yesterday"},
		{today.AddDays(3), "Saturday"},
		{today.AddDays(-3), "Jun 9"},
		{model.NewDate(2025, 1, 3), "Jan 3, 2025"},
	}
	for _, tt := range tests {
		if got := FormatDueDate(tt.d, today); got != tt.want {
			t.Errorf("FormatDueDate(%s) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatClockAndDuration(t *testing.T) {
	if got := FormatClock(25 * time.Minute); got != "25:00" {
		t.Errorf("FormatClock = %q", got)
	}
	if got := FormatClock(time.Hour + 2*time.Minute + 3*time.Second); got != "1:02:03" {
		t.Errorf("FormatClock = %q", got)
	}
	if got := FormatDuration(65 * time.Minute); got != "1h 05m" {
		t.Errorf("FormatDuration = %q", got)
	}
	if got := FormatDuration(40 * time.Second); got != "40s" {
		t.Errorf("FormatDuration = %q", got)
	}
}

func TestInboxScenario(t *testing.T) {
	ctx := context.Background()
	s := store.Open(ctx, store.NewMemoryBackend(), store.WithLogger(log.New(io.Discard, "", 0)))

	_, err := s.AddProblem(ctx, model.InboxID, "", store.NewProblem{Name: "Buy milk", Priority: model.PriorityToday})
	if err != nil {
		t.Fatal(err)
	}

	pass := At(s.Snapshot(), now)
	rows := pass.Today().DoToday.Matches()
	if len(rows) != 1 || rows[0].Name != "Buy milk" {
		t.Fatalf("do today rows = %+v", rows)
	}
	badges := pass.Badges()
	if badges.Inbox != 1 || badges.Today != 1 || badges.Count(model.ViewInbox) != 1 {
		t.Fatalf("badges = %+v", badges)
	}
}

func ids(ps []*model.Problem) string {
	out := ""
	for i, p := range ps {
		if i > 0 {
			out += " "
		}
		out += p.ID
	}
	return out
}

func idsOf(entries []Entry) string {
	ps := make([]*model.Problem, len(entries))
	for i, e := range entries {
		ps[i] = e.Problem
	}
	return ids(ps)
}
