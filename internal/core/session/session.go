// Package session keeps a client-side snapshot of the transaction store and
// the view state of the statement and transaction screens.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/utils/accounting"
	"github.com/SscSPs/expense_tracker/internal/utils/aggregation"
	"github.com/SscSPs/expense_tracker/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// TransactionStore is the remote store a Session reads from and writes to.
type TransactionStore interface {
	ListAllTransactions(ctx context.Context) ([]domain.Transaction, error)
	GetBalance(ctx context.Context) (decimal.Decimal, error)
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
}

// Snapshot is the last known content of the store.
type Snapshot struct {
	Transactions []domain.Transaction // newest first
	Balance      decimal.Decimal      // store-reported headline balance
	FetchedAt    time.Time
}

// Session is safe for concurrent use.
type Session struct {
	store    TransactionStore
	logger   *slog.Logger
	pageSize int
	now      func() time.Time

	mu         sync.Mutex
	snapshot   Snapshot
	view       domain.ViewState
	generation uint64
	lastErr    error
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for refresh and fallback diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPageSize sets the number of rows per statement and list page.
func WithPageSize(size int) Option {
	return func(s *Session) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithClock overrides the time recorded on snapshots.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New creates an empty session over store. Call Refresh to load it.
func New(store TransactionStore, options ...Option) *Session {
	s := &Session{
		store:    store,
		logger:   slog.Default(),
		pageSize: pagination.DefaultPageSize,
		now:      time.Now,
		snapshot: Snapshot{Transactions: []domain.Transaction{}, Balance: decimal.Zero},
		view:     domain.NewViewState(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Refresh fetches every transaction and the headline balance in parallel
// and replaces the snapshot. If another Refresh or a write lands while this
// one is in flight, this result is discarded.
func (s *Session) Refresh(ctx context.Context) error {
	gen := s.nextGeneration()

	var (
		txns    []domain.Transaction
		balance decimal.Decimal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txns, err = s.store.ListAllTransactions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		balance, err = s.store.GetBalance(gctx)
		return err
	})
	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.logger.Debug("Discarding superseded refresh", slog.Uint64("generation", gen), slog.Uint64("current", s.generation))
		return nil
	}
	if err != nil {
		s.lastErr = err
		s.logger.Warn("Refresh failed", slog.String("error", err.Error()))
		return fmt.Errorf("refresh: %w", err)
	}

	if txns == nil {
		txns = []domain.Transaction{}
	}
	s.snapshot = Snapshot{Transactions: txns, Balance: balance, FetchedAt: s.now()}
	s.lastErr = nil
	return nil
}

// Add validates input locally and creates the transaction. Invalid input is
// rejected without contacting the store. The created record is merged into
// the snapshot and the headline balance adjusted by its signed amount.
func (s *Session) Add(ctx context.Context, input Input) (*domain.Transaction, error) {
	fields, err := input.parse()
	if err != nil {
		return nil, err
	}

	created, err := s.store.CreateTransaction(ctx, dto.CreateTransactionRequest{
		Type:        fields.Type,
		Amount:      fields.Amount,
		Description: fields.Description,
		CreatedAt:   fields.Date,
	})
	if err != nil {
		s.setLastErr(err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	merged := make([]domain.Transaction, 0, len(s.snapshot.Transactions)+1)
	merged = append(merged, *created)
	merged = append(merged, s.snapshot.Transactions...)
	s.snapshot.Transactions = accounting.SortByDateDesc(merged)
	s.snapshot.Balance = s.snapshot.Balance.Add(created.SignedAmount())
	s.lastErr = nil
	return created, nil
}

// SaveEdit validates input locally and replaces transaction id. On success
// the record is merged into the snapshot by id and edit mode is left. When
// the store rejects the update the session falls back to a full Refresh and
// the original error is returned.
func (s *Session) SaveEdit(ctx context.Context, id string, input Input) (*domain.Transaction, error) {
	fields, err := input.parse()
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateTransaction(ctx, id, dto.UpdateTransactionRequest{
		Type:        fields.Type,
		Amount:      fields.Amount,
		Description: fields.Description,
		CreatedAt:   fields.Date,
	})
	if err != nil {
		s.setLastErr(err)
		if rerr := s.Refresh(ctx); rerr != nil {
			s.logger.Warn("Refresh after failed edit also failed", slog.String("error", rerr.Error()))
		}
		s.setLastErr(err)
		return nil, err
	}

	s.mu.Lock()
	idx := indexOf(s.snapshot.Transactions, id)
	if idx < 0 {
		s.view = s.view.CancelEdit()
		s.mu.Unlock()
		// The record was not in our snapshot, so the balance delta is unknown.
		if rerr := s.Refresh(ctx); rerr != nil {
			return updated, rerr
		}
		return updated, nil
	}
	defer s.mu.Unlock()

	s.generation++
	old := s.snapshot.Transactions[idx]
	merged := make([]domain.Transaction, len(s.snapshot.Transactions))
	copy(merged, s.snapshot.Transactions)
	merged[idx] = *updated
	s.snapshot.Transactions = accounting.SortByDateDesc(merged)
	s.snapshot.Balance = s.snapshot.Balance.Sub(old.SignedAmount()).Add(updated.SignedAmount())
	s.view = s.view.CancelEdit()
	s.lastErr = nil
	return updated, nil
}

// StartEdit enters edit mode for id and returns its current values as form
// input. It returns false when id is not in the snapshot.
func (s *Session) StartEdit(id string) (Input, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := indexOf(s.snapshot.Transactions, id)
	if idx < 0 {
		return Input{}, false
	}
	s.view = s.view.StartEdit(id)
	return InputFrom(s.snapshot.Transactions[idx]), true
}

// CancelEdit leaves edit mode without saving.
func (s *Session) CancelEdit() {
	s.UpdateView(domain.ViewState.CancelEdit)
}

// Statement derives the statement for the current view from the snapshot.
func (s *Session) Statement() domain.Statement {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := aggregation.BuildStatement(s.snapshot.Transactions, s.view, s.pageSize)
	st.HeadlineBalance = s.snapshot.Balance
	return st
}

// Charts derives the chart data for the current filter from the snapshot.
func (s *Session) Charts() domain.ChartData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return aggregation.BuildChartData(aggregation.ApplyFilter(s.snapshot.Transactions, s.view.Filter()))
}

// Suggestions returns previously used descriptions matching input.
func (s *Session) Suggestions(input string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]bool, len(s.snapshot.Transactions))
	var descriptions []string
	for _, tx := range s.snapshot.Transactions {
		if !seen[tx.Description] {
			seen[tx.Description] = true
			descriptions = append(descriptions, tx.Description)
		}
	}
	return aggregation.SuggestDescriptions(descriptions, input)
}

// View returns the current view state.
func (s *Session) View() domain.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// UpdateView applies a view transition, e.g.
//
//	sess.UpdateView(func(v domain.ViewState) domain.ViewState { return v.WithMonth(m) })
func (s *Session) UpdateView(fn func(domain.ViewState) domain.ViewState) domain.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = fn(s.view)
	return s.view
}

// NextPage advances the statement one page, stopping at the last page of
// the filtered ledger.
func (s *Session) NextPage() domain.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(aggregation.ApplyFilter(s.snapshot.Transactions, s.view.Filter()))
	s.view = s.view.NextPage(pagination.TotalPages(n, s.pageSize))
	return s.view
}

// PrevPage moves the statement back one page.
func (s *Session) PrevPage() domain.ViewState {
	return s.UpdateView(domain.ViewState.PrevPage)
}

// Snapshot returns a copy of the current snapshot.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot
	snap.Transactions = append([]domain.Transaction(nil), s.snapshot.Transactions...)
	return snap
}

// LastError returns the most recent store failure, or nil once a later
// call succeeded. Callers offer a retry when it is non-nil.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Session) nextGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

func (s *Session) setLastErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

func indexOf(txns []domain.Transaction, id string) int {
	for i := range txns {
		if txns[i].TransactionID == id {
			return i
		}
	}
	return -1
}
