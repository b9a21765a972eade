package notify

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Urgency levels for notifications
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification represents a desktop notification
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string // Optional icon name
}

// Notifier handles sending desktop notifications
type Notifier struct {
	enabled bool
	command string
	run     func(name string, args ...string) error
}

// NewNotifier creates a new notifier
func NewNotifier() *Notifier {
	return &Notifier{
		enabled: true,
		command: "notify-send",
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// SetEnabled enables or disables notifications
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// IsEnabled returns whether notifications are enabled
func (n *Notifier) IsEnabled() bool {
	return n.enabled
}

// Send sends a desktop notification using notify-send
func (n *Notifier) Send(notification Notification) error {
	if !n.enabled {
		return nil
	}

	args := []string{}

	switch notification.Urgency {
	case UrgencyLow:
		args = append(args, "-u", "low")
	case UrgencyCritical:
		args = append(args, "-u", "critical")
	default:
		args = append(args, "-u", "normal")
	}

	// milliseconds
	if notification.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(int(notification.Timeout.Milliseconds())))
	}

	if notification.Icon != "" {
		args = append(args, "-i", notification.Icon)
	}

	args = append(args, "-a", "tackle")

	args = append(args, notification.Title)
	if notification.Body != "" {
		args = append(args, notification.Body)
	}

	return n.run(n.command, args...)
}

// SendWorkComplete reports the end of a pomodoro work phase
func (n *Notifier) SendWorkComplete(problem string, cycle int, longBreak bool) error {
	body := fmt.Sprintf("Pomodoro #%d done. Take a short break.", cycle)
	if longBreak {
		body = fmt.Sprintf("Pomodoro #%d done. Time for a long break.", cycle)
	}
	return n.Send(Notification{
		Title:   titleFor(problem, "Pomodoro Complete"),
		Body:    body,
		Urgency: UrgencyNormal,
		Timeout: 10 * time.Second,
		Icon:    "alarm-symbolic",
	})
}

// SendBreakComplete reports the end of a pomodoro break
func (n *Notifier) SendBreakComplete(problem string) error {
	return n.Send(Notification{
		Title:   titleFor(problem, "Break Over"),
		Body:    "Time to get back to work!",
		Urgency: UrgencyNormal,
		Timeout: 10 * time.Second,
		Icon:    "appointment-soon-symbolic",
	})
}

// SendCountdownComplete reports the end of a plain countdown
func (n *Notifier) SendCountdownComplete(problem string, d time.Duration) error {
	return n.Send(Notification{
		Title:   titleFor(problem, "Time's Up"),
		Body:    fmt.Sprintf("%d minutes are over.", int(d.Minutes())),
		Urgency: UrgencyNormal,
		Timeout: 10 * time.Second,
		Icon:    "alarm-symbolic",
	})
}

// SendOverdue warns about open problems whose due date has passed
func (n *Notifier) SendOverdue(names []string) error {
	if len(names) == 0 {
		return nil
	}
	title := names[0] + " is overdue"
	if len(names) > 1 {
		title = fmt.Sprintf("%d problems are overdue", len(names))
	}
	return n.Send(Notification{
		Title:   title,
		Body:    strings.Join(names, "\n"),
		Urgency: UrgencyCritical,
		Timeout: 15 * time.Second,
		Icon:    "emblem-important-symbolic",
	})
}

func titleFor(problem, fallback string) string {
	if problem == "" {
		return fallback
	}
	return fallback + ": " + problem
}
