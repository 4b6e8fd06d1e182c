// Package store owns the expense collection and mirrors it to a key-value
// medium after every mutation.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"expensetracker/internal/core"
	"expensetracker/internal/kv"
	applog "expensetracker/internal/log"
)

// Store is the in-memory expense collection. The whole collection is
// serialized under kv.KeyExpenses on each change.
type Store struct {
	mu     sync.Mutex
	kv     kv.Store
	items  []core.Expense
	lastID int64
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Store)

// WithClock sets the time source used for new identifiers.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger replaces the default logger. It is used as given, so it should
// already carry its component.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New loads the collection from kv. Missing or unparseable data starts an
// empty collection; only a failing read is an error.
func New(ctx context.Context, medium kv.Store, opts ...Option) (*Store, error) {
	s := &Store{
		kv:     medium,
		now:    time.Now,
		logger: slog.Default().With(applog.FieldComponent, applog.ComponentExpense),
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, ok, err := medium.Get(ctx, kv.KeyExpenses)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	if ok {
		items, err := core.DecodeExpenses(raw)
		if err != nil {
			s.logger.WarnContext(ctx, "Stored expenses unreadable, starting empty", "error", err, "bytes", len(raw))
		} else {
			s.items = items
		}
	}
	for _, e := range s.items {
		if e.ID > s.lastID {
			s.lastID = e.ID
		}
	}

	s.logger.InfoContext(ctx, "Expenses loaded", "count", len(s.items))
	return s, nil
}

// Create appends a record and persists. Input is stored as given.
func (s *Store) Create(ctx context.Context, date, item string, amount float64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.create(ctx, date, item, amount)
}

// Delete removes the record with id. Unknown ids are a no-op, but the
// collection is still written.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delete(ctx, id)
}

// Edit replaces a record by deleting it and creating a new one. The new
// record gets a fresh id; the old id is gone.
func (s *Store) Edit(ctx context.Context, id int64, date, item string, amount float64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.delete(ctx, id); err != nil {
		return 0, err
	}
	return s.create(ctx, date, item, amount)
}

// Find looks a record up by id.
func (s *Store) Find(id int64) (core.Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.items {
		if e.ID == id {
			return e, true
		}
	}
	return core.Expense{}, false
}

// All returns a copy of every record in storage order.
func (s *Store) All() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) create(ctx context.Context, date, item string, amount float64) (int64, error) {
	e := core.Expense{
		ID:     s.nextID(),
		Date:   date,
		Item:   item,
		Amount: amount,
	}
	s.items = append(s.items, e)

	if err := s.persist(ctx); err != nil {
		return e.ID, err
	}
	s.logger.InfoContext(ctx, "Expense created", "operation", "create", "id", e.ID, "date", e.Date, "amount", e.Amount)
	return e.ID, nil
}

func (s *Store) delete(ctx context.Context, id int64) error {
	kept := s.items[:0]
	removed := 0
	for _, e := range s.items {
		if e.ID == id {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.items = kept

	if err := s.persist(ctx); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Expense deleted", "operation", "delete", "id", id, "removed", removed)
	return nil
}

// nextID derives the id from the clock in milliseconds, bumped past the last
// issued id when the clock has not moved on.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) persist(ctx context.Context) error {
	data, err := core.EncodeExpenses(s.items)
	if err != nil {
		return fmt.Errorf("encode expenses: %w", err)
	}
	if err := s.kv.Set(ctx, kv.KeyExpenses, data); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist expenses", "error", err, "count", len(s.items))
		return fmt.Errorf("persist expenses: %w", err)
	}
	return nil
}
