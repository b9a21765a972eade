package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dori/tackle/internal/model"
	"github.com/dori/tackle/internal/ui/theme"
	"github.com/dori/tackle/internal/views"
)

const (
	indent      = "  "
	columnGap   = "    "
	emptyNotice = "Nothing here."
)

// renderView writes one derived page
func renderView(w io.Writer, st *model.AppState, v model.View, now time.Time) error {
	pass := views.At(st, now)
	today := pass.Clock.Today
	badges := pass.Badges()
	layout := st.Settings.Layout

	var sections []string
	switch v {
	case model.ViewInbox:
		_, idx, _ := st.FindList(model.InboxID)
		sections = treeSections(views.Filter(st.Lists[idx:idx+1], views.IsOpen), today)
	case model.ViewToday:
		page := pass.Today()
		sections = []string{
			todaySection("Overdue", page.Overdue, today),
			todaySection("Due today", page.DueToday, today),
			todaySection("Do today", page.DoToday, today),
		}
	case model.ViewThisWeek:
		sections = treeSections(pass.ThisWeek(), today)
	case model.ViewUpcoming:
		sections = upcomingSections(pass.Upcoming(), today)
	case model.ViewNextActions:
		sections = treeSections(pass.NextActions(), today)
	case model.ViewUnfinished:
		sections = treeSections(pass.Unfinished(), today)
	default:
		return fmt.Errorf("unknown view %q", v)
	}

	_, err := fmt.Fprintln(w, pageHeader(viewTitle(v), badges.Count(v))+"\n\n"+arrange(layout, sections))
	return err
}

func viewTitle(v model.View) string {
	switch v {
	case model.ViewInbox:
		return "Inbox"
	case model.ViewToday:
		return "Today"
	case model.ViewThisWeek:
		return "This Week"
	case model.ViewUpcoming:
		return "Upcoming"
	case model.ViewNextActions:
		return "Next Actions"
	case model.ViewUnfinished:
		return "Unfinished"
	}
	return string(v)
}

func pageHeader(title string, count int) string {
	styles := theme.Current.Styles
	return styles.Title.Render(title) + " " + styles.Badge.Render(fmt.Sprint(count))
}

// arrange lays sections out one below the other, or side by side in pairs
func arrange(layout model.Layout, sections []string) string {
	var kept []string
	for _, s := range sections {
		if s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return theme.Current.Styles.Label.Render(emptyNotice)
	}
	if layout != model.LayoutTwoColumns {
		return strings.Join(kept, "\n\n")
	}

	var rows []string
	for i := 0; i < len(kept); i += 2 {
		if i+1 == len(kept) {
			rows = append(rows, kept[i])
			continue
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, kept[i], columnGap, kept[i+1]))
	}
	return strings.Join(rows, "\n\n")
}

func todaySection(title string, tv views.TreeView, today model.Date) string {
	if tv.Count == 0 {
		return ""
	}
	styles := theme.Current.Styles
	head := styles.Subtitle.Render(title) + " " + styles.Label.Render(fmt.Sprintf("(%d)", tv.Count))
	return head + "\n" + strings.Join(treeSections(tv, today), "\n")
}

// treeSections renders each list of a tree view as its own section
func treeSections(tv views.TreeView, today model.Date) []string {
	styles := theme.Current.Styles
	out := make([]string, 0, len(tv.Lists))
	for _, lt := range tv.Lists {
		var b strings.Builder
		b.WriteString(styles.Header.Render(lt.List.Title()))
		b.WriteString(" " + styles.Label.Render(fmt.Sprintf("(%d)", lt.Count)))
		writeNodes(&b, lt.Nodes, 1, today)
		out = append(out, b.String())
	}
	return out
}

func writeNodes(b *strings.Builder, nodes []views.Node, depth int, today model.Date) {
	for _, n := range nodes {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(indent, depth))
		b.WriteString(problemRow(n.Problem, n.Match, today))
		writeNodes(b, n.Children, depth+1, today)
	}
}

// problemRow renders "[ ] 3f2a9c1d  Name  due Tomorrow  !today". Rows that
// only lead to a match are dimmed.
func problemRow(p *model.Problem, match bool, today model.Date) string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	box := "[ ]"
	if p.Completed {
		box = "[x]"
	}

	name := styles.Problem.Render(p.Name)
	switch {
	case !match:
		name = styles.Ancestor.Render(p.Name)
	case p.Completed:
		name = styles.Done.Render(p.Name)
	}

	parts := []string{box, styles.Label.Render(shortID(p.ID)), name}
	if !match {
		return strings.Join(parts, " ")
	}

	if p.DueDate != nil {
		due := views.FormatDueDate(*p.DueDate, today)
		if !p.Completed && p.DueDate.Before(today) {
			parts = append(parts, styles.Overdue.Render("due "+due))
		} else {
			parts = append(parts, styles.DueDate.Render("due "+due))
		}
	}
	parts = append(parts, lipgloss.NewStyle().Foreground(t.PriorityColor(p.Priority)).Render("!"+string(p.Priority)))
	if p.Status != model.StatusToSolve && !p.Completed {
		parts = append(parts, lipgloss.NewStyle().Foreground(t.StatusColor(p.Status)).Render(string(p.Status)))
	}
	return strings.Join(parts, " ")
}

func upcomingSections(groups []views.DateGroup, today model.Date) []string {
	styles := theme.Current.Styles
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		var b strings.Builder
		b.WriteString(styles.Header.Render(g.Heading))
		b.WriteString(" " + styles.Label.Render(views.FormatDueDate(g.Date, today)))
		for _, e := range g.Entries {
			b.WriteString("\n" + indent)
			b.WriteString(entryRow(e))
		}
		out = append(out, b.String())
	}
	return out
}

// entryRow renders a flattened problem with its breadcrumb
func entryRow(e views.Entry) string {
	styles := theme.Current.Styles
	box := "[ ]"
	if e.Problem.Completed {
		box = "[x]"
	}
	return strings.Join([]string{
		box,
		styles.Label.Render(shortID(e.Problem.ID)),
		styles.Problem.Render(e.Problem.Name),
		styles.Breadcrumb.Render(e.Breadcrumb()),
	}, " ")
}
