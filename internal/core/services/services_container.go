package services

import (
	"github.com/SscSPs/expense_tracker/internal/core/ports"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, renderer ports.StatementRenderer, publisher ports.EventPublisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		WithEventPublisher(publisher),
	)

	container.Statement = NewStatementService(
		repos.TransactionRepo,
		renderer,
		WithStatementTitle(cfg.StatementTitle),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.StatementService     = (*statementService)(nil)
)
