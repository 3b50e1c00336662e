package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
)

// ledgerService implements balance aggregation: point-in-time balance queries
// recomputed from the entry history rather than read from the cached running
// balance.
type ledgerService struct {
	BaseService
	accountSvc    portssvc.AccountSvcFacade
	postingRepo   portsrepo.PostingReader
	reportingRepo portsrepo.ReportingRepository
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(reportingRepo portsrepo.ReportingRepository, postingRepo portsrepo.PostingReader, accountSvc portssvc.AccountSvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountSvc:    accountSvc,
		postingRepo:   postingRepo,
		reportingRepo: reportingRepo,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// BalanceAsOf computes an account's signed balance from entries dated on or
// before asOf. The account must exist; unknown accounts are an error, not a
// zero balance.
func (s *ledgerService) BalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, accountID); err != nil {
		return decimal.Zero, err
	}

	balance, err := s.reportingRepo.GetBalanceAsOf(ctx, accountID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute balance as of date")
		return decimal.Zero, fmt.Errorf("failed to compute balance for account %s: %w", accountID, err)
	}
	return balance, nil
}

// BalancesAsOf is the batch form of BalanceAsOf, computed from one consistent
// snapshot of the entry history.
func (s *ledgerService) BalancesAsOf(ctx context.Context, accountIDs []string, asOf time.Time) (map[string]decimal.Decimal, error) {
	if len(accountIDs) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	accountsMap, err := s.accountSvc.GetAccountByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range accountIDs {
		if _, found := accountsMap[id]; !found {
			return nil, fmt.Errorf("%w: account ID %s", apperrors.ErrNotFound, id)
		}
	}

	balances, err := s.reportingRepo.GetBalancesAsOf(ctx, accountIDs, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute balances as of date")
		return nil, fmt.Errorf("failed to compute balances: %w", err)
	}

	// Accounts with no entries still appear, with a zero balance.
	for _, id := range accountIDs {
		if _, ok := balances[id]; !ok {
			balances[id] = decimal.Zero
		}
	}
	return balances, nil
}

// ListEntriesByAccount retrieves the paginated entry history of one account,
// newest first.
func (s *ledgerService) ListEntriesByAccount(ctx context.Context, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	entries, nextToken, err := s.postingRepo.ListEntriesByAccountID(ctx, accountID, params.Limit, params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to list entries for account")
		}
		return nil, fmt.Errorf("failed to retrieve entries for account %s: %w", accountID, err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}
