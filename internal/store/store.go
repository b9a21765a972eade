// Package store owns the canonical application state. Every mutation builds
// the next state without touching the current one, writes it to the backend
// and only then makes it visible to readers and subscribers.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dori/tackle/internal/model"
	"github.com/dori/tackle/internal/tree"
	"github.com/google/uuid"
)

// Store is the single writer of the application state
type Store struct {
	mu      sync.Mutex
	backend Backend
	state   atomic.Pointer[model.AppState]

	subs    map[int]chan *model.AppState
	nextSub int

	logger   *log.Logger
	now      func() time.Time
	newID    func() string
	checkIDs bool
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for load failures
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock sets the clock used to stamp completion times
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the uuid generator
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithIDCheck rejects any transition that leaves two nodes sharing an id
func WithIDCheck(enabled bool) Option {
	return func(s *Store) { s.checkIDs = enabled }
}

// Open loads the last snapshot from backend. A missing or unreadable
// snapshot leaves the store with the default state.
func Open(ctx context.Context, backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		subs:    make(map[int]chan *model.AppState),
		logger:  log.Default(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	st, err := s.load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoSnapshot) {
			s.logger.Printf("failed to load state, starting with an empty inbox: %v", err)
		}
		st = model.DefaultState()
	}
	s.state.Store(st)
	return s
}

func (s *Store) load(ctx context.Context) (*model.AppState, error) {
	b, err := s.backend.Read(ctx, StateKey)
	if err != nil {
		return nil, err
	}
	return Decode(b)
}

// Snapshot returns the current state. It must not be modified.
func (s *Store) Snapshot() *model.AppState {
	return s.state.Load()
}

// Subscribe returns a channel that receives every new state. A subscriber
// that falls behind only sees the most recent state. Call the returned
// function to unsubscribe.
func (s *Store) Subscribe() (<-chan *model.AppState, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan *model.AppState, 1)
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

// publish must be called with mu held
func (s *Store) publish(st *model.AppState) {
	for _, ch := range s.subs {
		select {
		case ch <- st:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- st
		}
	}
}

// update runs fn against the current state and commits what it returns.
// fn must not modify its argument.
func (s *Store) update(ctx context.Context, fn func(cur *model.AppState) (*model.AppState, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	next, err := fn(s.state.Load())
	if err != nil {
		return err
	}
	if s.checkIDs {
		if dups := duplicateIDs(next); len(dups) > 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateID, strings.Join(dups, ", "))
		}
	}

	b, err := Encode(next)
	if err != nil {
		return err
	}
	if err := s.backend.Write(ctx, StateKey, b); err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}

	s.state.Store(next)
	s.publish(next)
	return nil
}

// AddList appends a new empty list
func (s *Store) AddList(ctx context.Context, in NewList) (model.List, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.List{}, ErrEmptyName
	}
	l := model.List{
		ID:          s.newID(),
		Name:        name,
		Description: in.Description,
		Emoji:       in.Emoji,
		Problems:    []model.Problem{},
	}

	err := s.update(ctx, func(cur *model.AppState) (*model.AppState, error) {
		lists := make([]model.List, len(cur.Lists), len(cur.Lists)+1)
		copy(lists, cur.Lists)
		return withLists(cur, append(lists, l)), nil
	})
	if err != nil {
		return model.List{}, err
	}
	return l, nil
}

// AddProblem creates a problem in listID, at the top level when parentID is
// empty or under the problem parentID anywhere in that list otherwise.
func (s *Store) AddProblem(ctx context.Context, listID, parentID string, in NewProblem) (model.Problem, error) {
	if err := in.validate(); err != nil {
		return model.Problem{}, err
	}
	p := in.build(s.newID())

	err := s.updateList(ctx, listID, func(l model.List) (model.List, error) {
		roots, ok := tree.Insert(l.Problems, parentID, p)
		if !ok {
			return l, problemNotFound(parentID)
		}
		l.Problems = roots
		return l, nil
	})
	if err != nil {
		return model.Problem{}, err
	}
	return p, nil
}

// UpdateProblem merges patch into the problem problemID of list listID
func (s *Store) UpdateProblem(ctx context.Context, listID, problemID string, patch ProblemPatch) error {
	if err := patch.validate(); err != nil {
		return err
	}
	now := s.now()
	return s.updateList(ctx, listID, func(l model.List) (model.List, error) {
		roots, ok := tree.Replace(l.Problems, problemID, func(p model.Problem) model.Problem {
			return patch.apply(p, now)
		})
		if !ok {
			return l, problemNotFound(problemID)
		}
		l.Problems = roots
		return l, nil
	})
}

// UpdateProblemByID merges patch into the first problem with the given id in
// any list.
func (s *Store) UpdateProblemByID(ctx context.Context, problemID string, patch ProblemPatch) error {
	if err := patch.validate(); err != nil {
		return err
	}
	now := s.now()
	return s.update(ctx, func(cur *model.AppState) (*model.AppState, error) {
		for i, l := range cur.Lists {
			roots, ok := tree.Replace(l.Problems, problemID, func(p model.Problem) model.Problem {
				return patch.apply(p, now)
			})
			if ok {
				l.Problems = roots
				return replaceList(cur, i, l), nil
			}
		}
		return nil, problemNotFound(problemID)
	})
}

// UpdateList merges patch into the list record
func (s *Store) UpdateList(ctx context.Context, listID string, patch ListPatch) error {
	if err := patch.validate(); err != nil {
		return err
	}
	return s.updateList(ctx, listID, func(l model.List) (model.List, error) {
		return patch.apply(l), nil
	})
}

// DeleteList removes a list and everything in it. The inbox cannot be
// deleted.
func (s *Store) DeleteList(ctx context.Context, listID string) error {
	if listID == model.InboxID {
		return ErrReservedList
	}
	return s.update(ctx, func(cur *model.AppState) (*model.AppState, error) {
		_, idx, ok := cur.FindList(listID)
		if !ok {
			return nil, listNotFound(listID)
		}
		lists := make([]model.List, 0, len(cur.Lists)-1)
		lists = append(lists, cur.Lists[:idx]...)
		lists = append(lists, cur.Lists[idx+1:]...)
		return withLists(cur, lists), nil
	})
}

// DeleteProblem removes a problem and its whole subtree
func (s *Store) DeleteProblem(ctx context.Context, listID, problemID string) error {
	return s.updateList(ctx, listID, func(l model.List) (model.List, error) {
		roots, _, ok := tree.Delete(l.Problems, problemID)
		if !ok {
			return l, problemNotFound(problemID)
		}
		l.Problems = roots
		return l, nil
	})
}

// MoveProblemToList detaches a problem, with its subtree, from fromListID and
// appends it to the top level of toListID.
func (s *Store) MoveProblemToList(ctx context.Context, problemID, fromListID, toListID string) error {
	return s.update(ctx, func(cur *model.AppState) (*model.AppState, error) {
		from, fromIdx, ok := cur.FindList(fromListID)
		if !ok {
			return nil, listNotFound(fromListID)
		}
		if _, _, ok := cur.FindList(toListID); !ok {
			return nil, listNotFound(toListID)
		}

		remaining, moved, ok := tree.Delete(from.Problems, problemID)
		if !ok {
			return nil, problemNotFound(problemID)
		}
		src := *from
		src.Problems = remaining
		next := replaceList(cur, fromIdx, src)

		// Look the destination up again: it may be the source list.
		dst, dstIdx, _ := next.FindList(toListID)
		roots, _ := tree.Insert(dst.Problems, "", moved)
		out := *dst
		out.Problems = roots
		return replaceList(next, dstIdx, out), nil
	})
}

// ReorderLists puts the lists in the order of ids, which must name every
// list exactly once.
func (s *Store) ReorderLists(ctx context.Context, ids []string) error {
	return s.update(ctx, func(cur *model.AppState) (*model.AppState, error) {
		if len(ids) != len(cur.Lists) {
			return nil, ErrNotPermutation
		}
		byID := make(map[string]model.List, len(cur.Lists))
		for _, l := range cur.Lists {
			byID[l.ID] = l
		}
		lists := make([]model.List, 0, len(ids))
		for _, id := range ids {
			l, ok := byID[id]
			if !ok {
				return nil, ErrNotPermutation
			}
			delete(byID, id)
			lists = append(lists, l)
		}
		return withLists(cur, lists), nil
	})
}

// ReorderProblems puts one level of problems in the order of ids: the top
// level of listID when parentID is empty, the children of parentID otherwise.
func (s *Store) ReorderProblems(ctx context.Context, listID, parentID string, ids []string) error {
	return s.updateList(ctx, listID, func(l model.List) (model.List, error) {
		roots, err := tree.Reorder(l.Problems, parentID, ids)
		switch {
		case errors.Is(err, tree.ErrNotFound):
			return l, problemNotFound(parentID)
		case errors.Is(err, tree.ErrNotPermutation):
			return l, ErrNotPermutation
		case err != nil:
			return l, err
		}
		l.Problems = roots
		return l, nil
	})
}

// UpdateSettings merges patch into the settings
func (s *Store) UpdateSettings(ctx context.Context, patch SettingsPatch) error {
	if err := patch.validate(); err != nil {
		return err
	}
	return s.update(ctx, func(cur *model.AppState) (*model.AppState, error) {
		return &model.AppState{
			Lists:    cur.Lists,
			Settings: patch.apply(cur.Settings),
		}, nil
	})
}

// updateList runs fn on a copy of one list and commits the result
func (s *Store) updateList(ctx context.Context, listID string, fn func(model.List) (model.List, error)) error {
	return s.update(ctx, func(cur *model.AppState) (*model.AppState, error) {
		l, idx, ok := cur.FindList(listID)
		if !ok {
			return nil, listNotFound(listID)
		}
		next, err := fn(*l)
		if err != nil {
			return nil, err
		}
		return replaceList(cur, idx, next), nil
	})
}

func withLists(cur *model.AppState, lists []model.List) *model.AppState {
	return &model.AppState{Lists: lists, Settings: cur.Settings}
}

func replaceList(cur *model.AppState, idx int, l model.List) *model.AppState {
	lists := make([]model.List, len(cur.Lists))
	copy(lists, cur.Lists)
	lists[idx] = l
	return withLists(cur, lists)
}

func duplicateIDs(st *model.AppState) []string {
	var all []model.Problem
	for _, l := range st.Lists {
		all = append(all, l.Problems...)
	}
	return tree.DuplicateIDs(all)
}
