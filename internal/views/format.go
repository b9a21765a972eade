package views

import (
	"fmt"
	"time"

	"github.com/dori/tackle/internal/model"
)

// FormatDueDate renders a due date relative to today
func FormatDueDate(d, today model.Date) string {
	diff := daysBetween(today, d)
	switch {
	case diff == 0:
		return "Today"
	case diff == 1:
		return "Tomorrow"
	case diff == -1:
		return "Yesterday"
	case diff > 1 && diff < 7:
		return d.Weekday().String()
	case d.Year == today.Year:
		return d.In(time.UTC).Format("Jan 2")
	default:
		return d.In(time.UTC).Format("Jan 2, 2006")
	}
}

// DateHeading renders a section heading such as "Monday, January 2"
func DateHeading(d model.Date) string {
	return d.In(time.UTC).Format("Monday, January 2")
}

// FormatDuration renders tracked time as "1h 05m", "12m" or "40s"
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %02dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// FormatClock renders a countdown or stopwatch reading as MM:SS, or
// H:MM:SS past an hour
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	h, m, s := total/3600, (total/60)%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

func daysBetween(from, to model.Date) int {
	return int(to.In(time.UTC).Sub(from.In(time.UTC)).Hours() / 24)
}
