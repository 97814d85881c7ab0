// Package sqlite implements the repositories on an embedded SQLite database.
package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the SQLite implementations of every repository.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: newSQLiteTransactionRepository(db),
	}
}
