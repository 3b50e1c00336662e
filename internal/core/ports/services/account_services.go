package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/dto"
)

// AccountSvcFacade defines the account registry operations exposed to
// handlers and to the posting engine.
type AccountSvcFacade interface {
	// CreateAccount validates and persists a new chart-of-accounts entry,
	// assigning a code from the type's numeric block when none is supplied.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetAccountByID retrieves a single account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByIDs retrieves multiple accounts keyed by ID.
	GetAccountByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts ordered by code, optionally filtered by type.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error)

	// DeactivateAccount marks an account inactive. Accounts with a non-zero
	// balance cannot be deactivated.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}
