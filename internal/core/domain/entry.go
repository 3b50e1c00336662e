package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryDirection indicates whether an entry is a Debit or a Credit.
type EntryDirection string

const (
	Debit  EntryDirection = "DEBIT"
	Credit EntryDirection = "CREDIT"
)

// Entry represents a single movement of value against one account.
// Entries are immutable once persisted; corrections are new reversing
// entries, never in-place edits.
type Entry struct {
	EntryID        string          `json:"entryID"`   // Primary Key (UUID)
	GroupID        string          `json:"groupID"`   // FK -> PostingGroup.GroupID (Not Null)
	AccountID      string          `json:"accountID"` // FK -> Account.AccountID (Not Null)
	Amount         decimal.Decimal `json:"amount"`    // Positive magnitude
	Direction      EntryDirection  `json:"direction"` // DEBIT or CREDIT (Not Null)
	EntryDate      time.Time       `json:"entryDate"` // Effective ledger date
	Notes          string          `json:"notes"`     // Nullable
	AuditFields
	RunningBalance decimal.Decimal `json:"runningBalance"` // Account balance after this entry
}
