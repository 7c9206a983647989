package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Type represents the direction of a transaction (money lent or borrowed).
type Type string

const (
	TypeLent     Type = "lent"
	TypeBorrowed Type = "borrowed"
)

// Valid reports whether t is one of the known transaction types.
func (t Type) Valid() bool {
	return t == TypeLent || t == TypeBorrowed
}

// Status represents the lifecycle state of a transaction.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusPaid
}

var (
	ErrNotFound       = errors.New("transaction not found")
	ErrStatusReverted = errors.New("paid transaction cannot return to pending")
	ErrInvalidAmount  = errors.New("amount must be positive")
	ErrEmptyPerson    = errors.New("person can't be empty")
	ErrMissingDate    = errors.New("date is required")
	ErrInvalidType    = errors.New("type must be lent or borrowed")
	ErrInvalidStatus  = errors.New("status must be pending or paid")
)

// Transaction represents money lent to or borrowed from a person.
type Transaction struct {
	ID          uuid.UUID
	Type        Type
	Amount      int64 // Amount in cents
	Person      string
	Date        time.Time
	Status      Status
	Description *string
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// IsOverdue reports whether the transaction is still pending after its due date.
func (t *Transaction) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status != StatusPending {
		return false
	}

	return now.After(*t.DueDate)
}

// Clone returns a deep copy so callers can't reach into ledger state.
func (t *Transaction) Clone() *Transaction {
	c := *t

	if t.Description != nil {
		desc := *t.Description
		c.Description = &desc
	}

	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}

	if t.UpdatedAt != nil {
		upd := *t.UpdatedAt
		c.UpdatedAt = &upd
	}

	return &c
}

// Patch holds optional field overrides. Nil fields are left untouched.
type Patch struct {
	Amount      *int64
	Person      *string
	Date        *time.Time
	Status      *Status
	Description *string
	DueDate     *time.Time
}

// Apply merges the patch onto tx. An unknown status, or one moving a paid
// transaction back to pending, is rejected and leaves tx unchanged.
// An empty Description clears the description.
func (p Patch) Apply(tx *Transaction) error {
	if p.Status != nil {
		if !p.Status.Valid() {
			return ErrInvalidStatus
		}

		if tx.Status == StatusPaid && *p.Status != StatusPaid {
			return ErrStatusReverted
		}
	}

	if p.Amount != nil {
		tx.Amount = *p.Amount
	}

	if p.Person != nil {
		tx.Person = *p.Person
	}

	if p.Date != nil {
		tx.Date = *p.Date
	}

	if p.Status != nil {
		tx.Status = *p.Status
	}

	if p.Description != nil {
		tx.Description = nil

		if desc := *p.Description; desc != "" {
			tx.Description = &desc
		}
	}

	if p.DueDate != nil {
		due := *p.DueDate
		tx.DueDate = &due
	}

	return nil
}
