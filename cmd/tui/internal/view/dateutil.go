package view

import (
	"errors"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/debtbook/internal/transaction"
)

const dateLayout = time.DateOnly

var errDueInPast = errors.New("due date can't be in the past")

// parseDate parses a YYYY-MM-DD form value into a UTC date.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, errors.New("use YYYY-MM-DD")
	}

	return t, nil
}

// parseDueDate parses an optional due date. Blank means no due date; a date
// before today is rejected.
func parseDueDate(s string, now time.Time) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	due, err := parseDate(s)
	if err != nil {
		return nil, err
	}

	if due.Before(transaction.DateOnly(now)) {
		return nil, errDueInPast
	}

	return &due, nil
}

func today(now time.Time) string {
	return now.Format(dateLayout)
}
