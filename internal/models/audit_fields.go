package models

import "time"

// AuditFields holds the bookkeeping timestamps of a stored row.
type AuditFields struct {
	RecordedAt    time.Time `db:"recorded_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
