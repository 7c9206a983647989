package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/debtbook/internal/transaction"
)

func strPtr(s string) *string { return &s }

func TestService_Add(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	due := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	type args struct {
		draft transaction.Draft
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *transaction.MockRepository)
		verify    func(t *testing.T, tx *transaction.Transaction)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				draft: transaction.Draft{
					Type:        transaction.TypeLent,
					Amount:      15000,
					Person:      "  Sarah Johnson ",
					Date:        date,
					Description: strPtr(" Dinner payment "),
					DueDate:     &due,
				},
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						tx.ID = uuid.New()
						tx.Status = transaction.StatusPending
						return nil
					})
			},
			verify: func(t *testing.T, tx *transaction.Transaction) {
				assert.NotEqual(t, uuid.Nil, tx.ID)
				assert.Equal(t, "Sarah Johnson", tx.Person)
				require.NotNil(t, tx.Description)
				assert.Equal(t, "Dinner payment", *tx.Description)
				require.NotNil(t, tx.DueDate)
				assert.True(t, tx.DueDate.Equal(due))
				assert.Equal(t, transaction.StatusPending, tx.Status)
			},
		},
		{
			name: "BlankDescriptionIsAbsent",
			args: args{
				draft: transaction.Draft{
					Type:        transaction.TypeBorrowed,
					Amount:      8000,
					Person:      "Mike Chen",
					Date:        date,
					Description: strPtr("   "),
				},
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
			},
			verify: func(t *testing.T, tx *transaction.Transaction) {
				assert.Nil(t, tx.Description)
				assert.Nil(t, tx.DueDate)
			},
		},
		{
			name: "ZeroAmount",
			args: args{
				draft: transaction.Draft{Type: transaction.TypeLent, Person: "Sam", Date: date},
			},
			wantErr: transaction.ErrInvalidAmount,
		},
		{
			name: "EmptyPerson",
			args: args{
				draft: transaction.Draft{Type: transaction.TypeLent, Amount: 100, Person: " ", Date: date},
			},
			wantErr: transaction.ErrEmptyPerson,
		},
		{
			name: "UnknownType",
			args: args{
				draft: transaction.Draft{Type: "gift", Amount: 100, Person: "Sam", Date: date},
			},
			wantErr: transaction.ErrInvalidType,
		},
		{
			name: "MissingDate",
			args: args{
				draft: transaction.Draft{Type: transaction.TypeLent, Amount: 100, Person: "Sam"},
			},
			wantErr: transaction.ErrMissingDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.Add(context.Background(), tt.args.draft)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)

			if tt.verify != nil {
				tt.verify(t, got)
			}
		})
	}
}

func TestService_Add_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(context.Canceled)

	svc := transaction.NewService(repo)
	got, err := svc.Add(context.Background(), transaction.Draft{
		Type:   transaction.TypeLent,
		Amount: 100,
		Person: "Sam",
		Date:   time.Now(),
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, got)
}

func TestService_UpdatePartial(t *testing.T) {
	id := uuid.New()
	paid := transaction.StatusPaid

	type testCase struct {
		name      string
		patch     transaction.Patch
		setupMock func(m *transaction.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:  "MarkPaid",
			patch: transaction.Patch{Status: &paid},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().UpdateTransaction(gomock.Any(), id, transaction.Patch{Status: &paid}).Return(nil)
			},
		},
		{
			name:  "TrimsPerson",
			patch: transaction.Patch{Person: strPtr(" Alex ")},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().UpdateTransaction(gomock.Any(), id, transaction.Patch{Person: strPtr("Alex")}).Return(nil)
			},
		},
		{
			name:  "NotFound",
			patch: transaction.Patch{Status: &paid},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().UpdateTransaction(gomock.Any(), id, gomock.Any()).Return(transaction.ErrNotFound)
			},
			wantErr: transaction.ErrNotFound,
		},
		{
			name:  "BlankDescriptionClears",
			patch: transaction.Patch{Description: strPtr("   ")},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().UpdateTransaction(gomock.Any(), id, transaction.Patch{Description: strPtr("")}).Return(nil)
			},
		},
		{
			name: "RejectsUnknownStatus",
			patch: func() transaction.Patch {
				bogus := transaction.Status("bogus")
				return transaction.Patch{Status: &bogus}
			}(),
			wantErr: transaction.ErrInvalidStatus,
		},
		{
			name:    "RejectsEmptyPerson",
			patch:   transaction.Patch{Person: strPtr("")},
			wantErr: transaction.ErrEmptyPerson,
		},
		{
			name: "RejectsNegativeAmount",
			patch: func() transaction.Patch {
				amount := int64(-5)
				return transaction.Patch{Amount: &amount}
			}(),
			wantErr: transaction.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			err := svc.UpdatePartial(context.Background(), id, tt.patch)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_MarkPaid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	paid := transaction.StatusPaid

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().UpdateTransaction(gomock.Any(), id, transaction.Patch{Status: &paid}).Return(nil)

	svc := transaction.NewService(repo)
	require.NoError(t, svc.MarkPaid(context.Background(), id))
}

func TestService_Aggregates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txs := []*transaction.Transaction{
		{ID: uuid.New(), Type: transaction.TypeLent, Amount: 15000, Person: "Sarah Johnson", Status: transaction.StatusPending},
		{ID: uuid.New(), Type: transaction.TypeBorrowed, Amount: 8000, Person: "Mike Chen", Status: transaction.StatusPending},
		{ID: uuid.New(), Type: transaction.TypeLent, Amount: 20000, Person: "Alex Rivera", Status: transaction.StatusPaid},
		{ID: uuid.New(), Type: transaction.TypeLent, Amount: 500, Person: "sarah johnson", Status: transaction.StatusPending},
	}

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().ListTransactions(gomock.Any(), transaction.ListFilter{}).Return(txs, nil).Times(3)

	svc := transaction.NewService(repo)
	ctx := context.Background()

	lent, err := svc.TotalOutstanding(ctx, transaction.TypeLent)
	require.NoError(t, err)
	assert.Equal(t, int64(15500), lent)

	borrowed, err := svc.TotalOutstanding(ctx, transaction.TypeBorrowed)
	require.NoError(t, err)
	assert.Equal(t, int64(8000), borrowed)

	people, err := svc.DistinctPeopleCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, people)
}

func TestService_ListPendingAndCompleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pending := transaction.StatusPending
	paid := transaction.StatusPaid

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		ListTransactions(gomock.Any(), transaction.ListFilter{Status: &pending}).
		Return([]*transaction.Transaction{{ID: uuid.New()}, {ID: uuid.New()}}, nil)
	repo.EXPECT().
		ListTransactions(gomock.Any(), transaction.ListFilter{Status: &paid}).
		Return([]*transaction.Transaction{{ID: uuid.New()}}, nil)

	svc := transaction.NewService(repo)

	got, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.ListCompleted(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestService_Summary_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return(nil, errors.New("list error"))

	svc := transaction.NewService(repo)
	_, err := svc.Summary(context.Background(), time.Now())
	assert.Error(t, err)
}

func TestService_Seed_StopsOnInvalidSeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	svc := transaction.NewService(repo)
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	// Seeds are added last to first, so the invalid one is hit second.
	added, err := svc.Seed(context.Background(), []transaction.Seed{
		{Draft: transaction.Draft{Type: transaction.TypeLent, Amount: 0, Person: "Sam", Date: date}},
		{Draft: transaction.Draft{Type: transaction.TypeLent, Amount: 100, Person: "Sam", Date: date}},
	})

	assert.ErrorIs(t, err, transaction.ErrInvalidAmount)
	assert.Equal(t, 1, added)
}
