package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryDirection indicates whether an entry line is a Debit or a Credit.
type EntryDirection string

const (
	Debit  EntryDirection = "DEBIT"
	Credit EntryDirection = "CREDIT"
)

// Entry represents a single ledger line within a posting group, affecting one
// account. Amount uses a precise decimal type; rows are insert-only.
type Entry struct {
	EntryID        string          `db:"entry_id"`
	GroupID        string          `db:"group_id"`
	AccountID      string          `db:"account_id"`
	Amount         decimal.Decimal `db:"amount"` // Positive magnitude
	Direction      EntryDirection  `db:"direction"`
	EntryDate      time.Time       `db:"entry_date"`
	Notes          string          `db:"notes"`
	AuditFields
	RunningBalance decimal.Decimal `db:"running_balance"` // Balance after this entry

	// Joined from posting_groups for account history listings.
	GroupDate        time.Time `db:"group_date"`
	GroupDescription string    `db:"group_description"`
}
