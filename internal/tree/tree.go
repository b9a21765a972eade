// Package tree implements lookups and functional updates over nested node
// collections. Every update rebuilds only the path from the root to the
// touched node; untouched subtrees are shared with the input and are never
// written to.
//
// Ids are expected to be unique across the whole forest. When they are not,
// every operation acts on the first match in depth-first pre-order.
package tree

import (
	"errors"
)

var (
	// ErrNotFound is returned when a parent id does not match any node.
	ErrNotFound = errors.New("node not found")
	// ErrNotPermutation is returned when a new order is not exactly a
	// permutation of the current children.
	ErrNotPermutation = errors.New("order is not a permutation of the children")
)

// Node is a value with an id and an ordered list of children of its own type.
type Node[T any] interface {
	NodeID() string
	NodeChildren() []T
	WithChildren(children []T) T
}

// Find returns the first node with the given id.
func Find[T Node[T]](roots []T, id string) (T, bool) {
	for _, n := range roots {
		if n.NodeID() == id {
			return n, true
		}
		if found, ok := Find(n.NodeChildren(), id); ok {
			return found, true
		}
	}
	var zero T
	return zero, false
}

// Path returns the ancestors of the node with the given id, root first,
// ending with the node itself.
func Path[T Node[T]](roots []T, id string) ([]T, bool) {
	for _, n := range roots {
		if n.NodeID() == id {
			return []T{n}, true
		}
		if rest, ok := Path(n.NodeChildren(), id); ok {
			return append([]T{n}, rest...), true
		}
	}
	return nil, false
}

// Insert appends node to the children of parentID, or to roots when parentID
// is empty. It reports false, and returns roots unchanged, when the parent
// does not exist.
func Insert[T Node[T]](roots []T, parentID string, node T) ([]T, bool) {
	if parentID == "" {
		out := make([]T, len(roots), len(roots)+1)
		copy(out, roots)
		return append(out, node), true
	}
	return Replace(roots, parentID, func(parent T) T {
		children := parent.NodeChildren()
		next := make([]T, len(children), len(children)+1)
		copy(next, children)
		return parent.WithChildren(append(next, node))
	})
}

// Replace applies fn to the first node with the given id.
func Replace[T Node[T]](roots []T, id string, fn func(T) T) ([]T, bool) {
	for i, n := range roots {
		var next T
		switch {
		case n.NodeID() == id:
			next = fn(n)
		default:
			children, ok := Replace(n.NodeChildren(), id, fn)
			if !ok {
				continue
			}
			next = n.WithChildren(children)
		}
		out := make([]T, len(roots))
		copy(out, roots)
		out[i] = next
		return out, true
	}
	return roots, false
}

// Delete removes the first node with the given id together with its
// subtree and returns the removed node.
func Delete[T Node[T]](roots []T, id string) ([]T, T, bool) {
	for i, n := range roots {
		if n.NodeID() == id {
			out := make([]T, 0, len(roots)-1)
			out = append(out, roots[:i]...)
			out = append(out, roots[i+1:]...)
			return out, n, true
		}
		children, removed, ok := Delete(n.NodeChildren(), id)
		if !ok {
			continue
		}
		out := make([]T, len(roots))
		copy(out, roots)
		out[i] = n.WithChildren(children)
		return out, removed, true
	}
	var zero T
	return roots, zero, false
}

// Reorder replaces one level of children with the same nodes in the given
// order. An empty parentID addresses roots.
func Reorder[T Node[T]](roots []T, parentID string, order []string) ([]T, error) {
	if parentID == "" {
		return permute(roots, order)
	}
	var permErr error
	out, ok := Replace(roots, parentID, func(parent T) T {
		children, err := permute(parent.NodeChildren(), order)
		if err != nil {
			permErr = err
			return parent
		}
		return parent.WithChildren(children)
	})
	if !ok {
		return roots, ErrNotFound
	}
	if permErr != nil {
		return roots, permErr
	}
	return out, nil
}

func permute[T Node[T]](nodes []T, order []string) ([]T, error) {
	if len(order) != len(nodes) {
		return nodes, ErrNotPermutation
	}
	byID := make(map[string]T, len(nodes))
	for _, n := range nodes {
		byID[n.NodeID()] = n
	}
	out := make([]T, 0, len(order))
	for _, id := range order {
		n, ok := byID[id]
		if !ok {
			return nodes, ErrNotPermutation
		}
		delete(byID, id)
		out = append(out, n)
	}
	return out, nil
}

// Walk visits every node in pre-order. Returning false from fn stops the
// walk.
func Walk[T Node[T]](roots []T, fn func(n T, depth int) bool) {
	walk(roots, 0, fn)
}

func walk[T Node[T]](nodes []T, depth int, fn func(T, int) bool) bool {
	for _, n := range nodes {
		if !fn(n, depth) {
			return false
		}
		if !walk(n.NodeChildren(), depth+1, fn) {
			return false
		}
	}
	return true
}

// Count returns the number of nodes for which pred holds, at every depth.
func Count[T Node[T]](roots []T, pred func(T) bool) int {
	n := 0
	Walk(roots, func(node T, _ int) bool {
		if pred(node) {
			n++
		}
		return true
	})
	return n
}

// DuplicateIDs returns every id that appears more than once, in first-seen
// order.
func DuplicateIDs[T Node[T]](roots []T) []string {
	seen := map[string]int{}
	var dups []string
	Walk(roots, func(n T, _ int) bool {
		seen[n.NodeID()]++
		if seen[n.NodeID()] == 2 {
			dups = append(dups, n.NodeID())
		}
		return true
	})
	return dups
}
