package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// ValidAccountType reports whether t is one of the five recognized kinds.
func ValidAccountType(t AccountType) bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// Account represents a financial account within the core domain.
// AccountType is immutable after creation; changing it would invalidate
// historical reports. Accounts with history are deactivated, never deleted.
type Account struct {
	AccountID   string          `json:"accountID"`   // Primary Key (UUID)
	Code        string          `json:"code"`        // Chart-of-accounts code, drives report ordering
	Name        string          `json:"name"`        // User-defined name
	AccountType AccountType     `json:"accountType"` // ASSET, LIABILITY, etc.
	Description string          `json:"description"` // Nullable user description
	IsActive    bool            `json:"isActive"`    // Soft delete flag
	AuditFields                 // Embed CreatedAt, CreatedBy, etc.
	Balance     decimal.Decimal `json:"balance"` // Persisted running balance, mutated only by the posting engine
}
