package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines read-only operations for financial report data.
// All methods read from a single consistent snapshot of the entry history: a
// concurrently committing posting group is observed either fully or not at
// all.
type ReportingRepository interface {
	// GetBalanceAsOf computes one account's signed balance from entries dated
	// on or before asOf.
	GetBalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error)

	// GetBalancesAsOf computes signed balances for many accounts from one
	// snapshot. Accounts with no entries map to zero.
	GetBalancesAsOf(ctx context.Context, accountIDs []string, asOf time.Time) (map[string]decimal.Decimal, error)

	// GetNetIncomeAsOf computes cumulative income minus expense through asOf.
	GetNetIncomeAsOf(ctx context.Context, asOf time.Time) (decimal.Decimal, error)

	// GetBalanceSheetData computes signed balances for every account plus the
	// cumulative net income through asOf, all from one snapshot so the
	// accounting equation check is consistent.
	GetBalanceSheetData(ctx context.Context, asOf time.Time) (map[string]decimal.Decimal, decimal.Decimal, error)

	// GetTrialBalanceData retrieves per-account debit and credit totals as of a specific date.
	GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetProfitAndLossData retrieves income and expense lines for a period.
	GetProfitAndLossData(ctx context.Context, from, to time.Time) ([]domain.ReportLine, []domain.ReportLine, error)
}
