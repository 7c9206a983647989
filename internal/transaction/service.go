package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	UpdateTransaction(ctx context.Context, id uuid.UUID, patch Patch) error
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Draft is a transaction as entered by the user, before the ledger assigns
// an ID and status.
type Draft struct {
	Type        Type
	Amount      int64
	Person      string
	Date        time.Time
	Description *string
	DueDate     *time.Time
}

func (d Draft) Validate() error {
	if !d.Type.Valid() {
		return ErrInvalidType
	}

	if d.Amount <= 0 {
		return ErrInvalidAmount
	}

	if strings.TrimSpace(d.Person) == "" {
		return ErrEmptyPerson
	}

	if d.Date.IsZero() {
		return ErrMissingDate
	}

	return nil
}

type ListFilter struct {
	Status    *Status
	Type      *Type
	Person    *string
	StartDate *time.Time
	EndDate   *time.Time
}

// Matches reports whether tx passes every set criterion of the filter.
func (f ListFilter) Matches(tx *Transaction) bool {
	if f.Status != nil && tx.Status != *f.Status {
		return false
	}

	if f.Type != nil && tx.Type != *f.Type {
		return false
	}

	if f.Person != nil && tx.Person != *f.Person {
		return false
	}

	if f.StartDate != nil && tx.Date.Before(*f.StartDate) {
		return false
	}

	if f.EndDate != nil && tx.Date.After(*f.EndDate) {
		return false
	}

	return true
}

// Add validates the draft and records it as a new pending transaction at the
// head of the ledger.
func (s *Service) Add(ctx context.Context, d Draft) (*Transaction, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	tx := &Transaction{
		Type:        d.Type,
		Amount:      d.Amount,
		Person:      strings.TrimSpace(d.Person),
		Date:        DateOnly(d.Date),
		Description: trimOptional(d.Description),
	}

	if d.DueDate != nil {
		due := DateOnly(*d.DueDate)
		tx.DueDate = &due
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

// UpdatePartial merges patch onto the transaction with the given id.
// Unknown ids yield ErrNotFound, unknown statuses ErrInvalidStatus and
// attempts to reopen a paid transaction ErrStatusReverted; in each case the
// ledger is unchanged. A blank description clears it.
func (s *Service) UpdatePartial(ctx context.Context, id uuid.UUID, patch Patch) error {
	if patch.Amount != nil && *patch.Amount <= 0 {
		return ErrInvalidAmount
	}

	if patch.Status != nil && !patch.Status.Valid() {
		return ErrInvalidStatus
	}

	if patch.Person != nil {
		person := strings.TrimSpace(*patch.Person)
		if person == "" {
			return ErrEmptyPerson
		}

		patch.Person = &person
	}

	if patch.Description != nil {
		desc := strings.TrimSpace(*patch.Description)
		patch.Description = &desc
	}

	if patch.Date != nil {
		date := DateOnly(*patch.Date)
		patch.Date = &date
	}

	if patch.DueDate != nil {
		due := DateOnly(*patch.DueDate)
		patch.DueDate = &due
	}

	if err := s.repo.UpdateTransaction(ctx, id, patch); err != nil {
		return fmt.Errorf("updating transaction %s: %w", id, err)
	}

	return nil
}

// MarkPaid settles the transaction. Settling an already paid transaction is a no-op.
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID) error {
	paid := StatusPaid
	return s.UpdatePartial(ctx, id, Patch{Status: &paid})
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) ListPending(ctx context.Context) ([]*Transaction, error) {
	status := StatusPending
	return s.repo.ListTransactions(ctx, ListFilter{Status: &status})
}

func (s *Service) ListCompleted(ctx context.Context) ([]*Transaction, error) {
	status := StatusPaid
	return s.repo.ListTransactions(ctx, ListFilter{Status: &status})
}

// TotalOutstanding returns the sum in cents of pending transactions of type typ.
func (s *Service) TotalOutstanding(ctx context.Context, typ Type) (int64, error) {
	txs, err := s.repo.ListTransactions(ctx, ListFilter{})
	if err != nil {
		return 0, fmt.Errorf("listing transactions: %w", err)
	}

	return TotalOutstanding(txs, typ), nil
}

// DistinctPeopleCount counts distinct person names across the whole ledger,
// regardless of status.
func (s *Service) DistinctPeopleCount(ctx context.Context) (int, error) {
	people, err := s.People(ctx)
	if err != nil {
		return 0, err
	}

	return len(people), nil
}

// People lists every distinct person in the ledger, most recent first.
func (s *Service) People(ctx context.Context) ([]string, error) {
	txs, err := s.repo.ListTransactions(ctx, ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	return DistinctPeople(txs), nil
}

func (s *Service) Summary(ctx context.Context, now time.Time) (Summary, error) {
	txs, err := s.repo.ListTransactions(ctx, ListFilter{})
	if err != nil {
		return Summary{}, fmt.Errorf("listing transactions: %w", err)
	}

	return Summarize(txs, now), nil
}

// Seed loads seeds into the ledger so that the first seed ends up first,
// settling the ones marked paid. It returns how many seeds were added.
func (s *Service) Seed(ctx context.Context, seeds []Seed) (int, error) {
	added := 0

	for i := len(seeds) - 1; i >= 0; i-- {
		tx, err := s.Add(ctx, seeds[i].Draft)
		if err != nil {
			return added, fmt.Errorf("seed %d: %w", i+1, err)
		}

		added++

		if seeds[i].Status != StatusPaid {
			continue
		}

		if err := s.MarkPaid(ctx, tx.ID); err != nil {
			return added, fmt.Errorf("seed %d: %w", i+1, err)
		}
	}

	return added, nil
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}

// Seed is a transaction to preload into a fresh ledger. Status lets a seed
// start out already paid.
type Seed struct {
	Draft  Draft
	Status Status
}
