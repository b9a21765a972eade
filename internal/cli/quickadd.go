package cli

import (
	"strings"
	"time"

	"github.com/dori/tackle/internal/model"
	"github.com/dori/tackle/internal/store"
)

// quickAdd is a problem parsed from one line of quick-add text
type quickAdd struct {
	store.NewProblem
	// Parent is the id, or id prefix, given with ^
	Parent string
}

// parseQuickAdd reads "Call bob !today due:fri ^3f2a". Tokens that do not
// parse stay in the name.
func parseQuickAdd(text string, today model.Date) quickAdd {
	var q quickAdd
	var nameParts []string

	for _, word := range strings.Fields(text) {
		lower := strings.ToLower(word)
		switch {
		// Priority (!today, !week, etc.)
		case strings.HasPrefix(word, "!"):
			if p, ok := parsePriority(strings.TrimPrefix(lower, "!")); ok {
				q.Priority = p
			} else {
				nameParts = append(nameParts, word)
			}

		// Due date (due:tomorrow, due:friday, due:2024-01-15)
		case strings.HasPrefix(lower, "due:"):
			if d, ok := parseNaturalDate(strings.TrimPrefix(lower, "due:"), today); ok {
				q.DueDate = &d
			} else {
				nameParts = append(nameParts, word)
			}

		// Parent problem (^3f2a)
		case strings.HasPrefix(word, "^") && len(word) > 1:
			q.Parent = strings.TrimPrefix(word, "^")

		default:
			nameParts = append(nameParts, word)
		}
	}

	q.Name = strings.Join(nameParts, " ")
	return q
}

func parsePriority(s string) (model.Priority, bool) {
	switch s {
	case "today", "t":
		return model.PriorityToday, true
	case "week", "this_week", "thisweek", "w":
		return model.PriorityThisWeek, true
	case "later", "l":
		return model.PriorityLater, true
	case "recurring", "r":
		return model.PriorityRecurring, true
	case "someday", "s":
		return model.PrioritySomeday, true
	}
	return "", false
}

var weekdays = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday,
}

// parseNaturalDate accepts today, tomorrow, weekday names, nextweek and a
// few absolute formats. A weekday always means the next one, never today.
func parseNaturalDate(s string, today model.Date) (model.Date, bool) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch s {
	case "today":
		return today, true
	case "tomorrow", "tom":
		return today.AddDays(1), true
	case "nextweek":
		return today.AddDays(7), true
	}
	if day, ok := weekdays[s]; ok {
		return nextWeekday(today, day), true
	}

	// Try parsing as date
	formats := []string{
		"2006-01-02",
		"01/02/2006",
		"01-02-2006",
		"Jan 2, 2006",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return model.DateOf(t), true
		}
	}
	// No year: use the current one
	if t, err := time.Parse("Jan 2", s); err == nil {
		return model.NewDate(today.Year, t.Month(), t.Day()), true
	}
	return model.Date{}, false
}

func nextWeekday(today model.Date, day time.Weekday) model.Date {
	daysUntil := int(day - today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDays(daysUntil)
}
