package services

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// ReportingSvcFacade defines the report generation operations. Reports are
// pure functions of ledger state as of a date and never partially fail.
type ReportingSvcFacade interface {
	// BalanceSheet assembles the grouped balance sheet as of a date.
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error)

	// BalanceSheetCSV renders the flat export encoding of the balance sheet.
	// The byte structure is fixed; downstream consumers parse it verbatim.
	BalanceSheetCSV(ctx context.Context, asOf time.Time) ([]byte, error)

	// TrialBalance generates per-account debit/credit totals as of a date.
	TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// ProfitAndLoss generates an income vs expense report for a period.
	ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.PAndLReport, error)
}
