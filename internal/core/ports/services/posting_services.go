package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/dto"
)

// PostingSvcFacade defines the posting engine operations.
type PostingSvcFacade interface {
	// Post validates a business event's entries (>=2 legs, positive amounts,
	// known active accounts, zero signed sum) and persists them atomically as
	// one posting group, updating running balances in the same transaction.
	Post(ctx context.Context, req dto.CreatePostingRequest, creatorUserID string) (*domain.PostingGroup, error)

	// GetPostingGroup retrieves a posting group with its entries.
	GetPostingGroup(ctx context.Context, groupID string) (*domain.PostingGroup, error)

	// ListPostingGroups retrieves a paginated list of posting groups.
	ListPostingGroups(ctx context.Context, params dto.ListPostingGroupsParams) (*dto.ListPostingGroupsResponse, error)

	// ReversePostingGroup creates a new group that mirrors an existing one
	// with flipped directions and marks the original as reversed.
	ReversePostingGroup(ctx context.Context, groupID string, userID string) (*domain.PostingGroup, error)
}
