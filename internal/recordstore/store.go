// Package recordstore keeps a local copy of a remote record collection and
// reconciles it with the server on every create, update and delete.
package recordstore

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/punchamoorthee/catalogops/internal/domain"
	"go.uber.org/zap"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrNotViewing = errors.New("no record selected")
)

// Collection is the remote side of a store.
type Collection[R any, F any] interface {
	List(ctx context.Context) ([]R, error)
	Create(ctx context.Context, form F) (R, error)
	Update(ctx context.Context, id int64, form F) (R, error)
	Delete(ctx context.Context, id int64) error
}

// Store holds the loaded records, the order they were loaded in, and the
// view state. Failed remote calls leave all three untouched.
//
// The lock is never held across a remote call.
type Store[R domain.Record[F], F any] struct {
	remote Collection[R, F]
	log    *zap.Logger

	mu       sync.Mutex
	items    []R
	original []R
	view     View[R]
}

func New[R domain.Record[F], F any](remote Collection[R, F], log *zap.Logger) *Store[R, F] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store[R, F]{
		remote:   remote,
		log:      log,
		items:    []R{},
		original: []R{},
		view:     listing[R](),
	}
}

// Load replaces the list and the original order with the server's
// collection.
func (s *Store[R, F]) Load(ctx context.Context) error {
	list, err := s.remote.List(ctx)
	if err != nil {
		s.log.Error("failed to load records", zap.Error(err))
		return fmt.Errorf("load: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = slices.Clone(list)
	s.original = slices.Clone(list)
	s.log.Debug("records loaded", zap.Int("count", len(list)))
	return nil
}

// SortByRank orders the list by rank, highest first. Equal ranks keep their
// relative order.
func (s *Store[R, F]) SortByRank() {
	s.mu.Lock()
	defer s.mu.Unlock()
	slices.SortStableFunc(s.items, func(a, b R) int {
		return cmp.Compare(b.Rank(), a.Rank())
	})
}

// ResetOrder restores the list to the order it was loaded in.
func (s *Store[R, F]) ResetOrder() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = slices.Clone(s.original)
}

// Select shows a record.
func (s *Store[R, F]) Select(r R) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = viewing(r)
}

// SelectByID shows the listed record with the given id.
func (s *Store[R, F]) SelectByID(id int64) (R, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		var zero R
		return zero, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	s.view = viewing(s.items[i])
	return s.items[i], nil
}

// Back clears the current record and returns to the list.
func (s *Store[R, F]) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = listing[R]()
}

// BeginAdd enters editing for a new record and returns a blank form.
func (s *Store[R, F]) BeginAdd() F {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = adding[R]()
	var form F
	return form
}

// BeginEdit enters editing for the record being viewed and returns its form.
func (s *Store[R, F]) BeginEdit() (F, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.view.HasRecord {
		var zero F
		return zero, ErrNotViewing
	}
	s.view = editing(s.view.Record)
	return s.view.Record.Form(), nil
}

// Save updates the current record, or creates a new one when there is none,
// and puts the server's copy into the list. On success the view returns to
// Listing; on failure it stays where it was.
func (s *Store[R, F]) Save(ctx context.Context, form F) (R, error) {
	s.mu.Lock()
	target, update := s.view.Record, s.view.HasRecord
	s.mu.Unlock()

	if update {
		id := target.Key()
		saved, err := s.remote.Update(ctx, id, form)
		if err != nil {
			s.log.Error("failed to update record", zap.Int64("id", id), zap.Error(err))
			return saved, fmt.Errorf("update %d: %w", id, err)
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		s.items = replace(s.items, id, saved)
		s.original = replace(s.original, id, saved)
		s.view = listing[R]()
		s.log.Debug("record updated", zap.Int64("id", id))
		return saved, nil
	}

	saved, err := s.remote.Create(ctx, form)
	if err != nil {
		s.log.Error("failed to create record", zap.Error(err))
		return saved, fmt.Errorf("create: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, saved)
	s.original = append(s.original, saved)
	s.view = listing[R]()
	s.log.Debug("record created", zap.Int64("id", saved.Key()))
	return saved, nil
}

// Delete removes a record on the server and then locally. Deleting the
// current record returns the view to Listing.
func (s *Store[R, F]) Delete(ctx context.Context, id int64) error {
	if err := s.remote.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete record", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("delete %d: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = remove(s.items, id)
	s.original = remove(s.original, id)
	if s.view.HasRecord && s.view.Record.Key() == id {
		s.view = listing[R]()
	}
	s.log.Debug("record deleted", zap.Int64("id", id))
	return nil
}

// Items returns a copy of the list in its current order.
func (s *Store[R, F]) Items() []R {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Original returns a copy of the list in load order.
func (s *Store[R, F]) Original() []R {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.original)
}

func (s *Store[R, F]) View() View[R] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Current returns the record being viewed or edited.
func (s *Store[R, F]) Current() (R, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.Record, s.view.HasRecord
}

func (s *Store[R, F]) indexOf(id int64) int {
	return slices.IndexFunc(s.items, func(r R) bool { return r.Key() == id })
}

type keyed interface{ Key() int64 }

func replace[R keyed](list []R, id int64, r R) []R {
	out := slices.Clone(list)
	for i := range out {
		if out[i].Key() == id {
			out[i] = r
		}
	}
	return out
}

func remove[R keyed](list []R, id int64) []R {
	return slices.DeleteFunc(slices.Clone(list), func(r R) bool { return r.Key() == id })
}
