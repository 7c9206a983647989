package importer

import (
	"time"

	"github.com/MrJamesThe3rd/debtbook/internal/transaction"
)

// Demo returns the sample ledger a fresh session starts with, newest first.
func Demo() []transaction.Seed {
	return []transaction.Seed{
		{
			Draft: transaction.Draft{
				Type:        transaction.TypeLent,
				Amount:      15000,
				Person:      "Sarah Johnson",
				Date:        date(2024, time.January, 15),
				Description: text("Dinner payment"),
				DueDate:     datePtr(2024, time.February, 15),
			},
			Status: transaction.StatusPending,
		},
		{
			Draft: transaction.Draft{
				Type:        transaction.TypeBorrowed,
				Amount:      8000,
				Person:      "Mike Chen",
				Date:        date(2024, time.January, 10),
				Description: text("Movie tickets"),
				DueDate:     datePtr(2024, time.February, 10),
			},
			Status: transaction.StatusPending,
		},
		{
			Draft: transaction.Draft{
				Type:        transaction.TypeLent,
				Amount:      20000,
				Person:      "Alex Rivera",
				Date:        date(2024, time.January, 5),
				Description: text("Lunch bill"),
			},
			Status: transaction.StatusPaid,
		},
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func text(s string) *string {
	return &s
}
