package transaction

import "time"

// TotalOutstanding sums the amounts of pending transactions of the given type.
func TotalOutstanding(txs []*Transaction, typ Type) int64 {
	var total int64

	for _, tx := range txs {
		if tx.Status == StatusPending && tx.Type == typ {
			total += tx.Amount
		}
	}

	return total
}

// DistinctPeople returns each person once, in order of first appearance.
// Names are compared exactly, so "Sam" and "sam" are two people.
func DistinctPeople(txs []*Transaction) []string {
	seen := make(map[string]struct{}, len(txs))

	var people []string

	for _, tx := range txs {
		if _, ok := seen[tx.Person]; ok {
			continue
		}

		seen[tx.Person] = struct{}{}
		people = append(people, tx.Person)
	}

	return people
}

// Partition splits txs by status, keeping the input order within each group.
func Partition(txs []*Transaction) (pending, paid []*Transaction) {
	for _, tx := range txs {
		switch tx.Status {
		case StatusPending:
			pending = append(pending, tx)
		case StatusPaid:
			paid = append(paid, tx)
		}
	}

	return pending, paid
}

// CountOverdue returns how many transactions are overdue at now.
func CountOverdue(txs []*Transaction, now time.Time) int {
	n := 0

	for _, tx := range txs {
		if tx.IsOverdue(now) {
			n++
		}
	}

	return n
}

// Summary is the set of figures shown on the dashboard cards.
type Summary struct {
	TotalLent     int64
	TotalBorrowed int64
	People        int
	Pending       int
	Completed     int
	Overdue       int
}

// Summarize computes a Summary over txs as of now.
func Summarize(txs []*Transaction, now time.Time) Summary {
	pending, paid := Partition(txs)

	return Summary{
		TotalLent:     TotalOutstanding(txs, TypeLent),
		TotalBorrowed: TotalOutstanding(txs, TypeBorrowed),
		People:        len(DistinctPeople(txs)),
		Pending:       len(pending),
		Completed:     len(paid),
		Overdue:       CountOverdue(pending, now),
	}
}
