package services

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade defines the balance aggregation operations: point-in-time
// and historical balance queries over the entry history.
type LedgerSvcFacade interface {
	// BalanceAsOf computes an account's signed balance from entries dated on
	// or before asOf. For the current date it agrees with the account's
	// cached running balance.
	BalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error)

	// BalancesAsOf is the batch form, computed from one consistent view of
	// the entry history.
	BalancesAsOf(ctx context.Context, accountIDs []string, asOf time.Time) (map[string]decimal.Decimal, error)

	// ListEntriesByAccount retrieves the paginated entry history of one
	// account, newest first.
	ListEntriesByAccount(ctx context.Context, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}
