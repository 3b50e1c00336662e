package repositories

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingReader defines read operations for posting groups and entries.
type PostingReader interface {
	// FindGroupByID retrieves a specific posting group by its unique identifier.
	FindGroupByID(ctx context.Context, groupID string) (*domain.PostingGroup, error)

	// FindGroupByIdempotencyKey retrieves the posting group recorded under an
	// idempotency key, or ErrNotFound when the key has not been used.
	FindGroupByIdempotencyKey(ctx context.Context, key string) (*domain.PostingGroup, error)

	// FindEntriesByGroupID retrieves all entries of a posting group in
	// deterministic order.
	FindEntriesByGroupID(ctx context.Context, groupID string) ([]domain.Entry, error)

	// ListGroups retrieves a paginated list of posting groups using
	// token-based pagination, newest first.
	ListGroups(ctx context.Context, limit int, nextToken *string, includeReversals bool) ([]domain.PostingGroup, *string, error)

	// ListEntriesByAccountID retrieves a paginated list of entries for one
	// account, newest first, with running balances.
	ListEntriesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Entry, *string, error)
}

// PostingWriter defines write operations for posting groups.
type PostingWriter interface {
	// SaveGroup persists a posting group and its entries and applies the
	// account balance deltas within one database transaction. Either the
	// whole group commits or nothing does.
	SaveGroup(ctx context.Context, group domain.PostingGroup, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) error

	// SaveReversalGroup persists a reversing group (carrying the original's
	// ID in OriginalGroupID) and marks the original REVERSED in the same
	// transaction. Neither side is ever visible without the other. Returns
	// ErrConflict when the original is no longer POSTED, for instance after
	// losing a race with a concurrent reversal.
	SaveReversalGroup(ctx context.Context, reversing domain.PostingGroup, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) error
}

// PostingRepositoryFacade combines all posting-related repository interfaces.
type PostingRepositoryFacade interface {
	PostingReader
	PostingWriter
}

// PostingRepositoryWithTx extends PostingRepositoryFacade with transaction
// capabilities.
type PostingRepositoryWithTx interface {
	PostingRepositoryFacade
	TransactionManager
}
