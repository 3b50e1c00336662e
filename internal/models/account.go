package models

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

// Account represents a financial account row as stored in the ledger.
type Account struct {
	AccountID   string          `db:"account_id"`
	Code        string          `db:"code"` // Chart-of-accounts code, unique
	Name        string          `db:"name"`
	AccountType AccountType     `db:"account_type"`
	Description string          `db:"description"`
	IsActive    bool            `db:"is_active"`
	AuditFields                 // Embed common audit fields
	Balance     decimal.Decimal `db:"balance"` // Persisted running balance
}
