package views

import (
	"github.com/dori/tackle/internal/model"
)

// Node is one row of a filtered tree. Rows with Match false are ancestors
// kept only to give a path to matching descendants.
type Node struct {
	Problem  *model.Problem
	Match    bool
	Children []Node
}

// ListTree is the filtered tree of one list
type ListTree struct {
	List  *model.List
	Nodes []Node
	Count int
}

// TreeView is a page made of filtered list trees. Count tallies matching
// rows only.
type TreeView struct {
	Lists []ListTree
	Count int
}

// Filter keeps every problem that matches pred or has a matching
// descendant. Lists without any kept problem are dropped.
func Filter(lists []model.List, pred Predicate) TreeView {
	var view TreeView
	for i := range lists {
		nodes, count := filterProblems(lists[i].Problems, pred)
		if len(nodes) == 0 {
			continue
		}
		view.Lists = append(view.Lists, ListTree{List: &lists[i], Nodes: nodes, Count: count})
		view.Count += count
	}
	return view
}

func filterProblems(ps []model.Problem, pred Predicate) ([]Node, int) {
	var nodes []Node
	count := 0
	for i := range ps {
		p := &ps[i]
		children, n := filterProblems(p.Subproblems, pred)
		match := pred(p)
		if !match && len(children) == 0 {
			continue
		}
		if match {
			n++
		}
		nodes = append(nodes, Node{Problem: p, Match: match, Children: children})
		count += n
	}
	return nodes, count
}

// Matches returns the matching problems of a tree view in display order
func (v TreeView) Matches() []*model.Problem {
	var out []*model.Problem
	var walk func([]Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			if n.Match {
				out = append(out, n.Problem)
			}
			walk(n.Children)
		}
	}
	for _, l := range v.Lists {
		walk(l.Nodes)
	}
	return out
}
