package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostingStatus indicates the state of a posting group.
type PostingStatus string

const (
	Posted   PostingStatus = "POSTED"
	Reversed PostingStatus = "REVERSED"
)

// PostingGroup represents a single, balanced financial event composed of
// multiple entries.
type PostingGroup struct {
	GroupID          string          `db:"group_id"`
	GroupDate        time.Time       `db:"group_date"`
	Description      string          `db:"description"`
	Status           PostingStatus   `db:"status"`
	IdempotencyKey   *string         `db:"idempotency_key"` // Nullable, unique when present
	EntryHash        string          `db:"entry_hash"`
	Amount           decimal.Decimal `db:"amount"` // Total of the debit side
	OriginalGroupID  *string         `db:"original_group_id"`
	ReversingGroupID *string         `db:"reversing_group_id"`
	AuditFields
}
