package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportLine is one account row in a financial report, carrying the account's
// net balance under its own sign convention.
type ReportLine struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
}

// BalanceSheet is a point-in-time view derived entirely from accounts and
// entry history. It is a pure function of ledger state as of AsOf: the same
// inputs must reproduce it byte for byte.
type BalanceSheet struct {
	AsOf                      time.Time       `json:"asOfDate"`
	Assets                    []ReportLine    `json:"assets"`
	Liabilities               []ReportLine    `json:"liabilities"`
	Equity                    []ReportLine    `json:"equity"`
	NetIncome                 decimal.Decimal `json:"netIncome"` // Cumulative income minus expense through AsOf
	TotalAssets               decimal.Decimal `json:"totalAssets"`
	TotalLiabilities          decimal.Decimal `json:"totalLiabilities"`
	TotalEquity               decimal.Decimal `json:"totalEquity"` // Includes NetIncome
	TotalLiabilitiesAndEquity decimal.Decimal `json:"totalLiabilitiesAndEquity"`
	Balanced                  bool            `json:"balanced"`
}

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// PAndLReport represents a profit and loss report for a period.
type PAndLReport struct {
	From      time.Time       `json:"fromDate"`
	To        time.Time       `json:"toDate"`
	Income    []ReportLine    `json:"income"`
	Expenses  []ReportLine    `json:"expenses"`
	NetProfit decimal.Decimal `json:"netProfit"` // Total income minus total expenses
}
