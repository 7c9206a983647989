package view

import (
	"context"
	"time"

	"github.com/MrJamesThe3rd/debtbook/internal/money"
)

const ledgerTimeout = 5 * time.Second

// FormatAmount formats an amount stored as cents, e.g. "$150" or "$12.50".
func FormatAmount(cents int64, symbol string) string {
	return money.Format(cents, symbol)
}

// FormatDate formats a date the way cards show it, e.g. "Jan 15, 2024".
func FormatDate(t time.Time) string {
	return t.Format("Jan 02, 2006")
}

// LedgerCtx returns a context with a standard timeout for ledger operations.
func LedgerCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), ledgerTimeout)
}
