package store

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/debtbook/internal/transaction"
)

// Store is the in-memory ledger. Transactions are kept newest first and live
// for as long as the Store does.
type Store struct {
	mu    sync.RWMutex
	txs   []*transaction.Transaction
	index map[uuid.UUID]*transaction.Transaction
	now   func() time.Time
}

type Option func(*Store)

// WithClock overrides the clock used for CreatedAt/UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		index: make(map[uuid.UUID]*transaction.Transaction),
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CreateTransaction assigns a fresh ID, marks tx pending and prepends it.
// tx is updated in place with the assigned fields.
func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	for _, taken := s.index[id]; taken; _, taken = s.index[id] {
		id = uuid.New()
	}

	tx.ID = id
	tx.Status = transaction.StatusPending
	tx.CreatedAt = s.now()
	tx.UpdatedAt = nil

	stored := tx.Clone()
	s.index[id] = stored
	s.txs = append([]*transaction.Transaction{stored}, s.txs...)

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.index[id]
	if !ok {
		return nil, transaction.ErrNotFound
	}

	return tx.Clone(), nil
}

// UpdateTransaction merges patch onto the stored transaction atomically.
func (s *Store) UpdateTransaction(ctx context.Context, id uuid.UUID, patch transaction.Patch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.index[id]
	if !ok {
		return transaction.ErrNotFound
	}

	// Apply to a copy so a rejected patch leaves no trace.
	updated := stored.Clone()
	if err := patch.Apply(updated); err != nil {
		return err
	}

	// A patch that changes nothing, such as paying a paid transaction, is not an update.
	if reflect.DeepEqual(updated, stored) {
		return nil
	}

	now := s.now()
	updated.UpdatedAt = &now
	*stored = *updated

	return nil
}

// ListTransactions returns copies of the matching transactions, newest first.
func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	txs := make([]*transaction.Transaction, 0, len(s.txs))

	for _, tx := range s.txs {
		if !filter.Matches(tx) {
			continue
		}

		txs = append(txs, tx.Clone())
	}

	return txs, nil
}

// Len returns the number of transactions in the ledger.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.txs)
}
