package cli

import (
	"fmt"
	"strings"

	"github.com/dori/tackle/internal/model"
	"github.com/dori/tackle/internal/store"
	"github.com/dori/tackle/internal/views"
)

// shortIDLen is how much of a problem id tables print
const shortIDLen = 8

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// findList resolves a list by id, then by case-insensitive name
func findList(st *model.AppState, arg string) (*model.List, error) {
	if l, _, ok := st.FindList(arg); ok {
		return l, nil
	}

	var found *model.List
	for i := range st.Lists {
		if !strings.EqualFold(st.Lists[i].Name, arg) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("list name %q is ambiguous, use the id", arg)
		}
		found = &st.Lists[i]
	}
	if found == nil {
		return nil, &store.NotFoundError{Kind: "list", ID: arg}
	}
	return found, nil
}

// findProblem resolves a problem by full id or unique id prefix
func findProblem(st *model.AppState, arg string) (views.Entry, error) {
	if e, ok := views.Locate(st.Lists, arg); ok {
		return e, nil
	}

	matches := views.Flatten(st.Lists, func(p *model.Problem) bool {
		return strings.HasPrefix(p.ID, arg)
	})
	switch len(matches) {
	case 0:
		return views.Entry{}, &store.NotFoundError{Kind: "problem", ID: arg}
	case 1:
		return matches[0], nil
	default:
		return views.Entry{}, fmt.Errorf("id prefix %q matches %d problems", arg, len(matches))
	}
}
