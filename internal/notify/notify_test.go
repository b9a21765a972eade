package notify

import (
	"strings"
	"testing"
	"time"
)

type call struct {
	name string
	args []string
}

func newTestNotifier(calls *[]call) *Notifier {
	n := NewNotifier()
	n.run = func(name string, args ...string) error {
		*calls = append(*calls, call{name: name, args: args})
		return nil
	}
	return n
}

func TestSendBuildsArguments(t *testing.T) {
	var calls []call
	n := newTestNotifier(&calls)

	if err := n.SendWorkComplete("Write report", 4, true); err != nil {
		t.Fatal(err)
	}
	if len(calls) != 1 || calls[0].name != "notify-send" {
		t.Fatalf("calls = %+v", calls)
	}
	got := strings.Join(calls[0].args, "|")
	want := "-u|normal|-t|10000|-i|alarm-symbolic|-a|tackle|Pomodoro Complete: Write report|Pomodoro #4 done. Time for a long break."
	if got != want {
		t.Fatalf("args = %s\nwant  %s", got, want)
	}
}

func TestDisabledNotifierIsSilent(t *testing.T) {
	var calls []call
	n := newTestNotifier(&calls)
	n.SetEnabled(false)

	_ = n.SendBreakComplete("x")
	_ = n.SendCountdownComplete("x", 5*time.Minute)
	if len(calls) != 0 {
		t.Fatalf("disabled notifier ran %d commands", len(calls))
	}
}

func TestSendOverdue(t *testing.T) {
	var calls []call
	n := newTestNotifier(&calls)

	if err := n.SendOverdue(nil); err != nil || len(calls) != 0 {
		t.Fatalf("empty overdue list sent %d notifications", len(calls))
	}
	_ = n.SendOverdue([]string{"Taxes", "Dentist"})
	args := calls[0].args
	if args[1] != "critical" || args[len(args)-2] != "2 problems are overdue" {
		t.Fatalf("args = %v", args)
	}
}
