package session_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/core/session"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionStore ---
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListAllTransactions(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockStore) GetBalance(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockStore) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockStore) UpdateTransaction(ctx context.Context, id string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

var _ session.TransactionStore = (*MockStore)(nil)

func tx(id string, typ domain.TransactionType, amount int64, desc string, day int) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		Type:          typ,
		Amount:        decimal.NewFromInt(amount),
		Description:   desc,
		CreatedAt:     domain.NewDate(2024, time.March, day),
	}
}

// stored is newest first, as the store returns it.
func stored() []domain.Transaction {
	return []domain.Transaction{
		tx("3", domain.Debit, 20, "Coffee", 3),
		tx("2", domain.Debit, 50, "Rent", 2),
		tx("1", domain.Credit, 100, "Salary", 1),
	}
}

type SessionTestSuite struct {
	suite.Suite
	store *MockStore
	sess  *session.Session
	ctx   context.Context
}

func (suite *SessionTestSuite) SetupTest() {
	suite.store = new(MockStore)
	suite.sess = session.New(suite.store, session.WithPageSize(2))
	suite.ctx = context.Background()
}

func (suite *SessionTestSuite) load() {
	suite.store.On("ListAllTransactions", mock.Anything).Return(stored(), nil).Once()
	suite.store.On("GetBalance", mock.Anything).Return(decimal.NewFromInt(30), nil).Once()
	suite.Require().NoError(suite.sess.Refresh(suite.ctx))
}

func (suite *SessionTestSuite) TestRefresh_LoadsSnapshot() {
	suite.load()

	snap := suite.sess.Snapshot()
	suite.Len(snap.Transactions, 3)
	suite.True(snap.Balance.Equal(decimal.NewFromInt(30)))
	suite.NoError(suite.sess.LastError())

	st := suite.sess.Statement()
	suite.Equal(2, st.Page.TotalPages)
	suite.Require().Len(st.Rows, 2)
	suite.Equal("1", st.Rows[0].TransactionID)
	suite.True(st.Rows[1].RunningBalance.Equal(decimal.NewFromInt(50)))
	suite.True(st.HeadlineBalance.Equal(decimal.NewFromInt(30)))
	suite.True(st.Totals.TotalDebit.Equal(decimal.NewFromInt(70)))
}

func (suite *SessionTestSuite) TestRefresh_FailureIsRetained() {
	netErr := errors.New("connection refused")
	suite.store.On("ListAllTransactions", mock.Anything).Return(nil, netErr).Once()
	suite.store.On("GetBalance", mock.Anything).Return(decimal.Zero, nil).Once()

	err := suite.sess.Refresh(suite.ctx)

	suite.ErrorIs(err, netErr)
	suite.ErrorIs(suite.sess.LastError(), netErr)
	suite.Empty(suite.sess.Snapshot().Transactions)

	suite.load()
	suite.NoError(suite.sess.LastError())
}

func (suite *SessionTestSuite) TestRefresh_SupersededResultIsDiscarded() {
	entered := make(chan struct{})
	release := make(chan struct{})
	stale := []domain.Transaction{tx("old", domain.Credit, 1, "Old", 1)}

	suite.store.On("ListAllTransactions", mock.Anything).Run(func(mock.Arguments) {
		close(entered)
		<-release
	}).Return(stale, nil).Once()
	suite.store.On("ListAllTransactions", mock.Anything).Return(stored(), nil).Once()
	suite.store.On("GetBalance", mock.Anything).Return(decimal.NewFromInt(30), nil)

	firstDone := make(chan error, 1)
	go func() { firstDone <- suite.sess.Refresh(suite.ctx) }()
	<-entered

	suite.Require().NoError(suite.sess.Refresh(suite.ctx))
	close(release)
	suite.NoError(<-firstDone)

	snap := suite.sess.Snapshot()
	suite.Len(snap.Transactions, 3)
	suite.Equal("3", snap.Transactions[0].TransactionID)
}

func (suite *SessionTestSuite) TestAdd_RejectsInvalidAmountWithoutNetworkCall() {
	for _, amount := range []string{"", "abc", "0", "-5", "1.23456"} {
		_, err := suite.sess.Add(suite.ctx, session.Input{Type: "debit", Amount: amount})
		suite.ErrorIs(err, apperrors.ErrValidation, amount)
	}
	_, err := suite.sess.Add(suite.ctx, session.Input{Type: "refund", Amount: "5"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.store.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything)
}

func (suite *SessionTestSuite) TestAdd_MergesCreatedRecord() {
	suite.load()
	created := tx("4", domain.Debit, 5, "Snack", 2)
	suite.store.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
		return req.Type == domain.Debit && req.Amount.Equal(decimal.NewFromInt(5)) &&
			req.CreatedAt != nil && req.CreatedAt.String() == "2024-03-02"
	})).Return(&created, nil).Once()

	got, err := suite.sess.Add(suite.ctx, session.Input{Type: "Debit", Amount: " 5 ", Description: "Snack", Date: "2024-03-02"})

	suite.Require().NoError(err)
	suite.Equal("4", got.TransactionID)
	snap := suite.sess.Snapshot()
	suite.Len(snap.Transactions, 4)
	suite.Equal([]string{"3", "4", "2", "1"}, idsOf(snap.Transactions))
	suite.True(snap.Balance.Equal(decimal.NewFromInt(25)))
	suite.store.AssertNumberOfCalls(suite.T(), "ListAllTransactions", 1)
}

func (suite *SessionTestSuite) TestSaveEdit_MergesByID() {
	suite.load()
	input, ok := suite.sess.StartEdit("2")
	suite.Require().True(ok)
	suite.Equal(session.Input{Type: "debit", Amount: "50.00", Description: "Rent", Date: "2024-03-02"}, input)
	suite.Equal("2", suite.sess.View().EditingID)

	updated := tx("2", domain.Debit, 40, "Rent", 2)
	suite.store.On("UpdateTransaction", mock.Anything, "2", mock.Anything).Return(&updated, nil).Once()

	input.Amount = "40"
	_, err := suite.sess.SaveEdit(suite.ctx, "2", input)

	suite.Require().NoError(err)
	snap := suite.sess.Snapshot()
	suite.True(snap.Transactions[1].Amount.Equal(decimal.NewFromInt(40)))
	suite.True(snap.Balance.Equal(decimal.NewFromInt(40)))
	suite.Empty(suite.sess.View().EditingID)
}

func (suite *SessionTestSuite) TestSaveEdit_FailureFallsBackToRefresh() {
	suite.load()
	storeErr := fmt.Errorf("PUT /transactions/2: status 500")
	suite.store.On("UpdateTransaction", mock.Anything, "2", mock.Anything).Return(nil, storeErr).Once()
	suite.store.On("ListAllTransactions", mock.Anything).Return(stored(), nil).Once()
	suite.store.On("GetBalance", mock.Anything).Return(decimal.NewFromInt(30), nil).Once()

	_, err := suite.sess.SaveEdit(suite.ctx, "2", session.Input{Type: "debit", Amount: "40"})

	suite.ErrorIs(err, storeErr)
	suite.ErrorIs(suite.sess.LastError(), storeErr)
	suite.store.AssertNumberOfCalls(suite.T(), "ListAllTransactions", 2)
	suite.True(suite.sess.Snapshot().Balance.Equal(decimal.NewFromInt(30)))
}

func (suite *SessionTestSuite) TestChartsAndPagingFollowTheFilter() {
	suite.load()

	suite.sess.UpdateView(func(v domain.ViewState) domain.ViewState { return v.WithDescriptionFilter("r") })
	charts := suite.sess.Charts()
	suite.Require().Len(charts.CreditDebit, 2)
	suite.True(charts.CreditDebit[0].Value.Equal(decimal.NewFromInt(100)))
	suite.True(charts.CreditDebit[1].Value.Equal(decimal.NewFromInt(50)))

	// "Rent" and "Salary" match: one page of two rows.
	suite.Equal(1, suite.sess.NextPage().Page)

	suite.sess.UpdateView(domain.ViewState.ClearFilters)
	suite.Equal(2, suite.sess.NextPage().Page)
	suite.Equal(2, suite.sess.NextPage().Page)
	suite.Equal(1, suite.sess.PrevPage().Page)
}

func (suite *SessionTestSuite) TestSuggestions() {
	suite.load()
	suite.Equal([]string{"Coffee"}, suite.sess.Suggestions("cof"))
	suite.Empty(suite.sess.Suggestions(""))
}

func idsOf(txns []domain.Transaction) []string {
	out := make([]string, len(txns))
	for i, t := range txns {
		out[i] = t.TransactionID
	}
	return out
}

func TestSession(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}
