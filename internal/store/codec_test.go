package store

import (
	"strings"
	"testing"
	"time"

	"github.com/dori/tackle/internal/model"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	due := model.NewDate(2024, 2, 29)
	start := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	st := model.DefaultState()
	st.Lists[0].Problems = []model.Problem{{
		ID:          "p1",
		Name:        "Tax return",
		DueDate:     &due,
		Status:      model.StatusSolving,
		Priority:    model.PriorityThisWeek,
		Subproblems: []model.Problem{},
		TotalTime:   25 * time.Minute,
		Sessions:    []model.SessionRecord{model.NewSessionRecord(start, start.Add(25*time.Minute))},
	}}

	b, err := Encode(st)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"dueDate":"2024-02-29"`) {
		t.Fatalf("due date not encoded as a calendar date: %s", b)
	}

	got, err := Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	p := got.Lists[0].Problems[0]
	if *p.DueDate != due || p.TotalTime != 25*time.Minute || len(p.Sessions) != 1 || !p.Sessions[0].StartTime.Equal(start) {
		t.Fatalf("decoded problem = %+v", p)
	}
}

func TestDecodeBareLegacyState(t *testing.T) {
	legacy := `{"lists":[{"id":"work","name":"Work","problems":[{"id":"a","name":"A","completed":true,"subproblems":null}]}]}`
	st, err := Decode([]byte(legacy))
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Lists) != 2 || st.Lists[0].ID != model.InboxID {
		t.Fatalf("inbox not restored: %+v", st.Lists)
	}
	a := st.Lists[1].Problems[0]
	if a.Status != model.StatusSolved || a.Subproblems == nil {
		t.Fatalf("legacy problem not normalized: %+v", a)
	}
	if st.Settings != model.DefaultSettings() {
		t.Fatalf("settings = %+v", st.Settings)
	}
}

func TestDecodeBareLegacyStateMilliseconds(t *testing.T) {
	legacy := `{"lists":[{"id":"inbox","name":"Inbox","problems":[{"id":"a","name":"A","totalTime":90000,` +
		`"sessions":[{"startTime":"2024-06-03T09:00:00Z","endTime":"2024-06-03T09:01:00Z","duration":60000}],` +
		`"subproblems":[{"id":"b","name":"B","totalTime":1500,"subproblems":[]}]}]}]}`
	st, err := Decode([]byte(legacy))
	if err != nil {
		t.Fatal(err)
	}
	a := st.Lists[0].Problems[0]
	if a.TotalTime != 90*time.Second {
		t.Errorf("totalTime = %v, want 1m30s", a.TotalTime)
	}
	if len(a.Sessions) != 1 || a.Sessions[0].Duration != time.Minute {
		t.Errorf("sessions = %+v, want one 1m session", a.Sessions)
	}
	if b := a.Subproblems[0]; b.TotalTime != 1500*time.Millisecond {
		t.Errorf("subproblem totalTime = %v, want 1.5s", b.TotalTime)
	}
}

func TestDecodeEnvelopeKeepsDurations(t *testing.T) {
	doc := `{"version":1,"state":{"lists":[{"id":"inbox","name":"Inbox","problems":[{"id":"a","name":"A","totalTime":90000,"subproblems":[]}]}]}}`
	st, err := Decode([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if got := st.Lists[0].Problems[0].TotalTime; got != 90*time.Microsecond {
		t.Fatalf("totalTime = %v, want 90µs", got)
	}
}

func TestDecodeRejectsNewerVersion(t *testing.T) {
	if _, err := Decode([]byte(`{"version":99,"state":{"lists":[]}}`)); err == nil {
		t.Fatal("expected error for a future snapshot version")
	}
}
