package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingEntryRequest is one leg of a posting request.
type PostingEntryRequest struct {
	AccountID string                `json:"accountId" binding:"required"`
	Amount    decimal.Decimal       `json:"amount" binding:"required"`
	Direction domain.EntryDirection `json:"direction" binding:"required,oneof=DEBIT CREDIT"`
	Notes     string                `json:"notes"`
}

// CreatePostingRequest defines the body of POST /transactions. Entries must
// balance to zero; the caller supplies pre-computed legs.
type CreatePostingRequest struct {
	Date           time.Time             `json:"date" binding:"required"`
	Description    string                `json:"description" binding:"required"`
	Entries        []PostingEntryRequest `json:"entries" binding:"required,min=2,dive"`
	IdempotencyKey *string               `json:"idempotencyKey"`
}

// EntryResponse defines the data returned for a single entry.
type EntryResponse struct {
	EntryID        string          `json:"entryID"`
	AccountID      string          `json:"accountID"`
	Amount         decimal.Decimal `json:"amount"`
	Direction      string          `json:"direction"`
	EntryDate      time.Time       `json:"entryDate"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// PostingGroupResponse defines the data returned for a posting group.
type PostingGroupResponse struct {
	GroupID         string          `json:"groupID"`
	Date            time.Time       `json:"date"`
	Description     string          `json:"description"`
	Status          string          `json:"status"`
	Amount          decimal.Decimal `json:"amount"`
	OriginalGroupID *string         `json:"originalGroupID,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
	Entries         []EntryResponse `json:"entries,omitempty"`
}

// ToEntryResponse converts a domain.Entry to an EntryResponse DTO.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	return EntryResponse{
		EntryID:        e.EntryID,
		AccountID:      e.AccountID,
		Amount:         e.Amount,
		Direction:      string(e.Direction),
		EntryDate:      e.EntryDate,
		RunningBalance: e.RunningBalance,
	}
}

// ToEntryResponses converts a slice of domain.Entry to response DTOs.
func ToEntryResponses(entries []domain.Entry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToEntryResponse(&e)
	}
	return responses
}

// ToPostingGroupResponse converts a domain.PostingGroup to its response DTO.
func ToPostingGroupResponse(g *domain.PostingGroup) PostingGroupResponse {
	resp := PostingGroupResponse{
		GroupID:         g.GroupID,
		Date:            g.GroupDate,
		Description:     g.Description,
		Status:          string(g.Status),
		Amount:          g.Amount,
		OriginalGroupID: g.OriginalGroupID,
		CreatedAt:       g.CreatedAt,
		CreatedBy:       g.CreatedBy,
	}
	if len(g.Entries) > 0 {
		resp.Entries = ToEntryResponses(g.Entries)
	}
	return resp
}

// ListPostingGroupsParams defines query parameters for listing posting groups.
type ListPostingGroupsParams struct {
	Limit            int     `form:"limit,default=20"`
	NextToken        *string `form:"nextToken"`
	IncludeReversals bool    `form:"includeReversals"`
}

// ListPostingGroupsResponse wraps a page of posting groups.
type ListPostingGroupsResponse struct {
	Groups    []PostingGroupResponse `json:"groups"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ListEntriesParams defines query parameters for listing account entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of entries for one account.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
