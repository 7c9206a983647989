package transaction_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/debtbook/internal/transaction"
)

func TestTransaction_IsOverdue(t *testing.T) {
	due := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	before := due.Add(-time.Hour)
	after := due.Add(time.Hour)

	type testCase struct {
		name string
		tx   transaction.Transaction
		now  time.Time
		want bool
	}

	tests := []testCase{
		{
			name: "PendingPastDue",
			tx:   transaction.Transaction{Status: transaction.StatusPending, DueDate: &due},
			now:  after,
			want: true,
		},
		{
			name: "PendingBeforeDue",
			tx:   transaction.Transaction{Status: transaction.StatusPending, DueDate: &due},
			now:  before,
			want: false,
		},
		{
			name: "PendingExactlyAtDue",
			tx:   transaction.Transaction{Status: transaction.StatusPending, DueDate: &due},
			now:  due,
			want: false,
		},
		{
			name: "PaidPastDue",
			tx:   transaction.Transaction{Status: transaction.StatusPaid, DueDate: &due},
			now:  after,
			want: false,
		},
		{
			name: "NoDueDate",
			tx:   transaction.Transaction{Status: transaction.StatusPending},
			now:  time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tx.IsOverdue(tt.now))
		})
	}
}

func TestPatch_Apply(t *testing.T) {
	pending := transaction.StatusPending
	paid := transaction.StatusPaid

	t.Run("MergesOnlySetFields", func(t *testing.T) {
		desc := "Lunch"
		tx := transaction.Transaction{
			Type:        transaction.TypeLent,
			Amount:      100,
			Person:      "Sam",
			Status:      transaction.StatusPending,
			Description: &desc,
		}

		amount := int64(250)
		require.NoError(t, transaction.Patch{Amount: &amount}.Apply(&tx))

		assert.Equal(t, int64(250), tx.Amount)
		assert.Equal(t, "Sam", tx.Person)
		assert.Equal(t, transaction.TypeLent, tx.Type)
		assert.Equal(t, transaction.StatusPending, tx.Status)
		require.NotNil(t, tx.Description)
		assert.Equal(t, "Lunch", *tx.Description)
	})

	t.Run("PaidIsTerminal", func(t *testing.T) {
		tx := transaction.Transaction{Amount: 100, Status: transaction.StatusPaid}

		amount := int64(999)
		err := transaction.Patch{Status: &pending, Amount: &amount}.Apply(&tx)

		assert.ErrorIs(t, err, transaction.ErrStatusReverted)
		assert.Equal(t, transaction.StatusPaid, tx.Status)
		assert.Equal(t, int64(100), tx.Amount)
	})

	t.Run("UnknownStatusRejected", func(t *testing.T) {
		tx := transaction.Transaction{Amount: 100, Status: transaction.StatusPending}

		bogus := transaction.Status("bogus")
		amount := int64(999)
		err := transaction.Patch{Status: &bogus, Amount: &amount}.Apply(&tx)

		assert.ErrorIs(t, err, transaction.ErrInvalidStatus)
		assert.Equal(t, transaction.StatusPending, tx.Status)
		assert.Equal(t, int64(100), tx.Amount)
	})

	t.Run("EmptyDescriptionClears", func(t *testing.T) {
		desc := "Lunch"
		tx := transaction.Transaction{Status: transaction.StatusPending, Description: &desc}

		require.NoError(t, transaction.Patch{Description: strPtr("")}.Apply(&tx))
		assert.Nil(t, tx.Description)
	})

	t.Run("PaidTwiceIsIdempotent", func(t *testing.T) {
		tx := transaction.Transaction{Status: transaction.StatusPending}

		require.NoError(t, transaction.Patch{Status: &paid}.Apply(&tx))
		once := tx

		require.NoError(t, transaction.Patch{Status: &paid}.Apply(&tx))
		assert.Equal(t, once, tx)
	})
}

func TestTransaction_Clone(t *testing.T) {
	desc := "Movie tickets"
	due := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	tx := &transaction.Transaction{Person: "Mike Chen", Description: &desc, DueDate: &due}

	c := tx.Clone()
	*c.Description = "changed"
	*c.DueDate = due.AddDate(1, 0, 0)

	assert.Equal(t, "Movie tickets", *tx.Description)
	assert.True(t, tx.DueDate.Equal(due))
}

func TestDistinctPeople_StableUnderReordering(t *testing.T) {
	names := []string{"Sarah Johnson", "sarah johnson", "Mike Chen", "Sarah Johnson", "Alex Rivera", "Mike Chen"}

	txs := make([]*transaction.Transaction, len(names))
	for i, n := range names {
		txs[i] = &transaction.Transaction{Person: n}
	}

	assert.Len(t, transaction.DistinctPeople(txs), 4)

	r := rand.New(rand.NewSource(42))
	for range 20 {
		r.Shuffle(len(txs), func(i, j int) { txs[i], txs[j] = txs[j], txs[i] })
		assert.Len(t, transaction.DistinctPeople(txs), 4)
	}
}

func TestTotalOutstanding_PartitionsPendingByType(t *testing.T) {
	txs := []*transaction.Transaction{
		{Type: transaction.TypeLent, Amount: 15000, Status: transaction.StatusPending},
		{Type: transaction.TypeBorrowed, Amount: 8000, Status: transaction.StatusPending},
		{Type: transaction.TypeLent, Amount: 20000, Status: transaction.StatusPaid},
		{Type: transaction.TypeBorrowed, Amount: 1250, Status: transaction.StatusPending},
		{Type: transaction.TypeBorrowed, Amount: 700, Status: transaction.StatusPaid},
	}

	pending, paid := transaction.Partition(txs)
	require.Len(t, pending, 3)
	require.Len(t, paid, 2)

	var pendingSum int64
	for _, tx := range pending {
		pendingSum += tx.Amount
	}

	lent := transaction.TotalOutstanding(txs, transaction.TypeLent)
	borrowed := transaction.TotalOutstanding(txs, transaction.TypeBorrowed)

	assert.Equal(t, int64(15000), lent)
	assert.Equal(t, int64(9250), borrowed)
	assert.Equal(t, pendingSum, lent+borrowed)
	assert.Zero(t, transaction.TotalOutstanding(nil, transaction.TypeLent))
}

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	pastDue := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	futureDue := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	txs := []*transaction.Transaction{
		{Type: transaction.TypeLent, Amount: 15000, Person: "Sarah Johnson", Status: transaction.StatusPending, DueDate: &pastDue},
		{Type: transaction.TypeBorrowed, Amount: 8000, Person: "Mike Chen", Status: transaction.StatusPending, DueDate: &futureDue},
		{Type: transaction.TypeLent, Amount: 20000, Person: "Alex Rivera", Status: transaction.StatusPaid, DueDate: &pastDue},
	}

	got := transaction.Summarize(txs, now)

	assert.Equal(t, transaction.Summary{
		TotalLent:     15000,
		TotalBorrowed: 8000,
		People:        3,
		Pending:       2,
		Completed:     1,
		Overdue:       1,
	}, got)
}

func TestListFilter_Matches(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	tx := &transaction.Transaction{Type: transaction.TypeLent, Person: "Sam", Status: transaction.StatusPending, Date: date}

	lent := transaction.TypeLent
	borrowed := transaction.TypeBorrowed
	paid := transaction.StatusPaid
	person := "Sam"
	start := date.AddDate(0, 0, -1)
	end := date.AddDate(0, 0, 1)
	late := date.AddDate(0, 0, 1)

	assert.True(t, transaction.ListFilter{}.Matches(tx))
	assert.True(t, transaction.ListFilter{Type: &lent, Person: &person, StartDate: &start, EndDate: &end}.Matches(tx))
	assert.True(t, transaction.ListFilter{StartDate: &date, EndDate: &date}.Matches(tx))
	assert.False(t, transaction.ListFilter{Type: &borrowed}.Matches(tx))
	assert.False(t, transaction.ListFilter{Status: &paid}.Matches(tx))
	assert.False(t, transaction.ListFilter{StartDate: &late}.Matches(tx))
}
