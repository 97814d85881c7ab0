package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type TransactionRepositoryTestSuite struct {
	suite.Suite
	ctx  context.Context
	repo portsrepo.TransactionRepositoryFacade
}

func (s *TransactionRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	db, err := database.NewSQLiteDB(s.ctx, database.MemoryPath)
	s.Require().NoError(err)
	s.T().Cleanup(func() { db.Close() })
	s.Require().NoError(database.RunSQLiteMigrations(db))

	s.repo = NewRepositoryProvider(db).TransactionRepo
}

func TestTransactionRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionRepositoryTestSuite))
}

func (s *TransactionRepositoryTestSuite) save(id string, typ domain.TransactionType, amount, desc string, date domain.Date, recorded time.Time) {
	err := s.repo.SaveTransaction(s.ctx, domain.Transaction{
		TransactionID: id,
		Type:          typ,
		Amount:        decimal.RequireFromString(amount),
		Description:   desc,
		CreatedAt:     date,
		RecordedAt:    recorded,
		LastUpdatedAt: recorded,
	})
	s.Require().NoError(err)
}

func (s *TransactionRepositoryTestSuite) seed() {
	base := time.Date(2024, time.January, 20, 9, 0, 0, 0, time.UTC)
	s.save("t1", domain.Credit, "100", "Salary", domain.NewDate(2024, time.January, 1), base)
	s.save("t2", domain.Debit, "30.10", "Groceries", domain.NewDate(2024, time.January, 5), base.Add(time.Second))
	s.save("t3", domain.Credit, "20", "", domain.NewDate(2024, time.January, 10), base.Add(2*time.Second))
	s.save("t4", domain.Debit, "0.10", "Groceries", domain.NewDate(2024, time.January, 10), base.Add(3*time.Second))
}

func (s *TransactionRepositoryTestSuite) TestFindTransactionByID() {
	s.seed()

	tx, err := s.repo.FindTransactionByID(s.ctx, "t2")
	s.Require().NoError(err)
	s.Equal(domain.Debit, tx.Type)
	s.Equal("30.1", tx.Amount.String())
	s.Equal("Groceries", tx.Description)
	s.Equal("2024-01-05", tx.CreatedAt.String())

	_, err = s.repo.FindTransactionByID(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *TransactionRepositoryTestSuite) TestListTransactions_NewestFirst() {
	s.seed()

	all, err := s.repo.ListAllTransactions(s.ctx)
	s.Require().NoError(err)
	ids := make([]string, len(all))
	for i, tx := range all {
		ids[i] = tx.TransactionID
	}
	// Same-day rows fall back to the most recently recorded first.
	s.Equal([]string{"t4", "t3", "t2", "t1"}, ids)

	window, err := s.repo.ListTransactions(s.ctx, 2, 1)
	s.Require().NoError(err)
	s.Require().Len(window, 2)
	s.Equal("t3", window[0].TransactionID)
	s.Equal("t2", window[1].TransactionID)
}

func (s *TransactionRepositoryTestSuite) TestListDistinctDescriptions() {
	s.seed()

	descriptions, err := s.repo.ListDistinctDescriptions(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"Groceries", "Salary"}, descriptions)
}

func (s *TransactionRepositoryTestSuite) TestComputeBalance() {
	balance, err := s.repo.ComputeBalance(s.ctx)
	s.Require().NoError(err)
	s.True(balance.IsZero())

	s.seed()
	balance, err = s.repo.ComputeBalance(s.ctx)
	s.Require().NoError(err)
	s.Equal("89.80", balance.StringFixed(2))
}

func (s *TransactionRepositoryTestSuite) TestSaveTransaction_DuplicateID() {
	s.seed()

	err := s.repo.SaveTransaction(s.ctx, domain.Transaction{
		TransactionID: "t1",
		Type:          domain.Debit,
		Amount:        decimal.NewFromInt(5),
		CreatedAt:     domain.NewDate(2024, time.March, 1),
		RecordedAt:    time.Now(),
		LastUpdatedAt: time.Now(),
	})

	s.ErrorIs(err, apperrors.ErrDuplicate)
	tx, err := s.repo.FindTransactionByID(s.ctx, "t1")
	s.Require().NoError(err)
	s.Equal("Salary", tx.Description)
}

func (s *TransactionRepositoryTestSuite) TestUpdateTransaction() {
	s.seed()

	tx, err := s.repo.FindTransactionByID(s.ctx, "t3")
	s.Require().NoError(err)
	tx.Type = domain.Debit
	tx.Amount = decimal.RequireFromString("12.34")
	tx.Description = "Refund reversed"
	tx.CreatedAt = domain.NewDate(2024, time.February, 2)
	tx.LastUpdatedAt = time.Now()
	s.Require().NoError(s.repo.UpdateTransaction(s.ctx, *tx))

	got, err := s.repo.FindTransactionByID(s.ctx, "t3")
	s.Require().NoError(err)
	s.Equal(domain.Debit, got.Type)
	s.True(got.Amount.Equal(decimal.RequireFromString("12.34")))
	s.Equal("Refund reversed", got.Description)
	s.Equal("2024-02-02", got.CreatedAt.String())
	s.Equal(tx.RecordedAt.UTC(), got.RecordedAt.UTC())

	tx.TransactionID = "missing"
	s.ErrorIs(s.repo.UpdateTransaction(s.ctx, *tx), apperrors.ErrNotFound)
}

func TestTimestampRoundTrip(t *testing.T) {
	ts := time.Date(2024, time.March, 1, 12, 30, 15, 123456789, time.FixedZone("CET", 3600))
	parsed, err := parseTimestamp(formatTimestamp(ts))
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsed))
}
