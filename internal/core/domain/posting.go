package domain

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

// PostingGroup is the unit of atomicity: a balanced set of two or more
// entries representing one business event. Either all its entries exist or
// none do.
type PostingGroup struct {
	GroupID        string          `json:"groupID"`        // Primary Key (UUID)
	GroupDate      time.Time       `json:"groupDate"`      // Date the event occurred
	Description    string          `json:"description"`    // Nullable user description
	Status         PostingStatus   `json:"status"`         // Default: Posted
	IdempotencyKey *string         `json:"idempotencyKey"` // Caller-supplied, unique when present
	EntryHash      string          `json:"-"`              // Fingerprint of the entry set, for idempotency comparison
	Amount         decimal.Decimal `json:"amount"`         // Total of the debit side
	// Reversal linkage
	OriginalGroupID  *string `json:"originalGroupID,omitempty"`  // Set on reversing groups
	ReversingGroupID *string `json:"reversingGroupID,omitempty"` // Set on reversed groups
	AuditFields
	Entries []Entry `json:"entries,omitempty"` // Often loaded separately
}
