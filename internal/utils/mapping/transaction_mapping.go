package mapping

import (
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	var desc *string
	if d.Description != "" {
		s := d.Description
		desc = &s
	}
	return models.Transaction{
		TransactionID: d.TransactionID,
		Type:          models.TransactionType(d.Type),
		Amount:        d.Amount,
		Description:   desc,
		CreatedAt:     d.CreatedAt.Time,
		AuditFields: models.AuditFields{
			RecordedAt:    d.RecordedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID: m.TransactionID,
		Type:          domain.TransactionType(m.Type),
		Amount:        m.Amount,
		CreatedAt:     domain.DateOf(m.CreatedAt),
		RecordedAt:    m.RecordedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
	if m.Description != nil {
		d.Description = *m.Description
	}
	return d
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
