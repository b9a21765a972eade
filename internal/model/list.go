package model

// InboxID is the id of the reserved capture list
const InboxID = "inbox"

// List is a named top-level container of problems
type List struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Emoji       string    `json:"emoji,omitempty"`
	Problems    []Problem `json:"problems"`
}

// IsInbox returns true if this is the reserved inbox list
func (l *List) IsInbox() bool {
	return l.ID == InboxID
}

// Title returns the list name prefixed by its emoji, if any
func (l *List) Title() string {
	if l.Emoji == "" {
		return l.Name
	}
	return l.Emoji + " " + l.Name
}
