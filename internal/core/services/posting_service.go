package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/utils/accounting"
)

var (
	ErrPostingMinEntries  = fmt.Errorf("%w: posting must have at least two entries", apperrors.ErrValidation)
	ErrPostingMinAccounts = fmt.Errorf("%w: posting must affect at least two different accounts", apperrors.ErrValidation)
	ErrAccountNotFound    = fmt.Errorf("%w: account", apperrors.ErrNotFound)
	ErrDescriptionMissing = fmt.Errorf("%w: posting description is required", apperrors.ErrValidation)
)

// postingService implements the posting engine: it turns validated business
// events into atomic, balanced posting groups.
type postingService struct {
	BaseService
	accountSvc  portssvc.AccountSvcFacade
	postingRepo portsrepo.PostingRepositoryWithTx
}

// NewPostingService creates a new PostingService.
func NewPostingService(postingRepo portsrepo.PostingRepositoryWithTx, accountSvc portssvc.AccountSvcFacade) portssvc.PostingSvcFacade {
	return &postingService{
		accountSvc:  accountSvc,
		postingRepo: postingRepo,
	}
}

// Ensure postingService implements the portssvc.PostingSvcFacade interface
var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// Post validates and persists a business event as one balanced posting group.
// Validation and balance errors are rejected before any persistence attempt;
// storage failures roll back the whole group and are retried once.
func (s *postingService) Post(ctx context.Context, req dto.CreatePostingRequest, creatorUserID string) (*domain.PostingGroup, error) {
	logger := s.GetLogger(ctx)

	// --- Basic validation, all before touching storage ---
	if len(req.Entries) < 2 {
		return nil, ErrPostingMinEntries
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionMissing
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: posting date is required", apperrors.ErrValidation)
	}

	accountSet := make(map[string]bool)
	for _, e := range req.Entries {
		accountSet[e.AccountID] = true
	}
	if len(accountSet) < 2 {
		return nil, ErrPostingMinAccounts
	}

	now := time.Now().UTC()
	groupID := uuid.NewString()

	domainEntries := make([]domain.Entry, len(req.Entries))
	accountIDs := make([]string, 0, len(req.Entries))
	for i, entryReq := range req.Entries {
		domainEntries[i] = domain.Entry{
			EntryID:   uuid.NewString(),
			GroupID:   groupID,
			AccountID: entryReq.AccountID,
			Amount:    accounting.RoundMinor(entryReq.Amount),
			Direction: entryReq.Direction,
			EntryDate: req.Date,
			Notes:     entryReq.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
			// RunningBalance is calculated and set by the repository
		}
		accountIDs = append(accountIDs, entryReq.AccountID)
	}

	// The fundamental double-entry rule: debits equal credits.
	if err := accounting.ValidatePostingBalance(domainEntries); err != nil {
		return nil, err
	}

	entryHash := accounting.EntrySetHash(req.Date.Format("2006-01-02"), req.Description, domainEntries)

	// --- Idempotency lookup before persisting anything ---
	if req.IdempotencyKey != nil && *req.IdempotencyKey != "" {
		existing, err := s.findByIdempotencyKey(ctx, *req.IdempotencyKey, entryHash)
		if err != nil || existing != nil {
			return existing, err
		}
	}

	// --- Resolve accounts and validate further ---
	uniqueAccountIDs := uniqueStrings(accountIDs)
	accountsMap, err := s.accountSvc.GetAccountByIDs(ctx, uniqueAccountIDs)
	if err != nil {
		logger.Error("Failed to fetch accounts for posting", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	accountTypes := make(map[string]domain.AccountType)
	for _, id := range uniqueAccountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
		accountTypes[id] = acc.AccountType
	}

	// --- Net signed balance change per account ---
	balanceChanges := make(map[string]decimal.Decimal)
	for _, e := range domainEntries {
		signedAmount, err := accounting.SignedAmount(e, accountTypes[e.AccountID])
		if err != nil {
			logger.Error("Error calculating signed amount", slog.String("error", err.Error()), slog.String("entry_id", e.EntryID))
			return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
		}
		balanceChanges[e.AccountID] = balanceChanges[e.AccountID].Add(signedAmount)
	}

	// --- Persistence ---
	group := domain.PostingGroup{
		GroupID:        groupID,
		GroupDate:      req.Date,
		Description:    req.Description,
		Status:         domain.Posted,
		IdempotencyKey: req.IdempotencyKey,
		EntryHash:      entryHash,
		Amount:         accounting.DebitTotal(domainEntries),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.saveGroupWithRetry(ctx, group, domainEntries, balanceChanges); err != nil {
		// A duplicate idempotency key lost a race with a concurrent post
		// using the same key; resolve it the same way as the fast path.
		if errors.Is(err, apperrors.ErrDuplicate) && req.IdempotencyKey != nil {
			return s.findByIdempotencyKey(ctx, *req.IdempotencyKey, entryHash)
		}
		logger.Error("Failed to save posting group", slog.String("error", err.Error()), slog.String("group_id", groupID))
		return nil, err
	}

	logger.Info("Posting group created successfully",
		slog.String("group_id", group.GroupID),
		slog.Int("entry_count", len(domainEntries)))
	group.Entries = nil // Entries are fetched separately, as in GetPostingGroup
	return &group, nil
}

// saveGroupWithRetry persists the group, retrying exactly once on a storage
// failure. The repository guarantees nothing is visible after a failed save,
// so a single retry cannot duplicate entries.
func (s *postingService) saveGroupWithRetry(ctx context.Context, group domain.PostingGroup, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) error {
	err := s.postingRepo.SaveGroup(ctx, group, entries, balanceChanges)
	if err == nil || !errors.Is(err, apperrors.ErrStorage) {
		return err
	}
	s.GetLogger(ctx).Warn("Storage failure saving posting group, retrying once",
		slog.String("group_id", group.GroupID), slog.String("error", err.Error()))
	return s.postingRepo.SaveGroup(ctx, group, entries, balanceChanges)
}

// saveReversalWithRetry persists a reversing group with the same
// single-retry policy as saveGroupWithRetry. The repository flips the
// original's status in the same transaction, so a retry after failure starts
// from a clean slate.
func (s *postingService) saveReversalWithRetry(ctx context.Context, reversing domain.PostingGroup, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) error {
	err := s.postingRepo.SaveReversalGroup(ctx, reversing, entries, balanceChanges)
	if err == nil || !errors.Is(err, apperrors.ErrStorage) {
		return err
	}
	s.GetLogger(ctx).Warn("Storage failure saving reversing group, retrying once",
		slog.String("group_id", reversing.GroupID), slog.String("error", err.Error()))
	return s.postingRepo.SaveReversalGroup(ctx, reversing, entries, balanceChanges)
}

// findByIdempotencyKey returns the posting group recorded under key when its
// entry set matches hash, an IdempotencyConflict error when it does not, and
// (nil, nil) when the key is unused.
func (s *postingService) findByIdempotencyKey(ctx context.Context, key string, entryHash string) (*domain.PostingGroup, error) {
	existing, err := s.postingRepo.FindGroupByIdempotencyKey(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check idempotency key: %w", err)
	}
	if existing.EntryHash != entryHash {
		return nil, fmt.Errorf("%w: key %q", apperrors.ErrIdempotencyConflict, key)
	}
	s.LogInfo(ctx, "Idempotent replay of posting group",
		slog.String("group_id", existing.GroupID), slog.String("idempotency_key", key))
	return existing, nil
}

// GetPostingGroup retrieves a posting group together with its entries.
func (s *postingService) GetPostingGroup(ctx context.Context, groupID string) (*domain.PostingGroup, error) {
	logger := s.GetLogger(ctx)

	group, err := s.postingRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find posting group", slog.String("error", err.Error()), slog.String("group_id", groupID))
		}
		return nil, fmt.Errorf("failed to find posting group %s: %w", groupID, err)
	}

	entries, err := s.postingRepo.FindEntriesByGroupID(ctx, groupID)
	if err != nil {
		logger.Error("Failed to fetch entries for posting group", slog.String("error", err.Error()), slog.String("group_id", groupID))
		return nil, fmt.Errorf("failed to retrieve entries for group %s: %w", groupID, err)
	}
	group.Entries = entries

	return group, nil
}

// ListPostingGroups retrieves a paginated list of posting groups.
func (s *postingService) ListPostingGroups(ctx context.Context, params dto.ListPostingGroupsParams) (*dto.ListPostingGroupsResponse, error) {
	groups, nextToken, err := s.postingRepo.ListGroups(ctx, params.Limit, params.NextToken, params.IncludeReversals)
	if err != nil {
		s.LogError(ctx, err, "Failed to list posting groups")
		return nil, fmt.Errorf("failed to retrieve posting groups: %w", err)
	}

	responses := make([]dto.PostingGroupResponse, len(groups))
	for i, g := range groups {
		responses[i] = dto.ToPostingGroupResponse(&g)
	}

	return &dto.ListPostingGroupsResponse{
		Groups:    responses,
		NextToken: nextToken,
	}, nil
}

// ReversePostingGroup creates a new posting group that mirrors an existing
// one with flipped directions, and marks the original as reversed.
// Corrections are always new reversing entries, never in-place edits.
func (s *postingService) ReversePostingGroup(ctx context.Context, groupID string, userID string) (*domain.PostingGroup, error) {
	logger := s.GetLogger(ctx)

	original, err := s.postingRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		logger.Error("Failed to fetch posting group for reversal", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve original posting group: %w", err)
	}

	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: posting group status is %s, expected POSTED", apperrors.ErrConflict, original.Status)
	}
	if original.OriginalGroupID != nil {
		return nil, fmt.Errorf("%w: cannot reverse a posting group that is already a reversal", apperrors.ErrConflict)
	}

	originalEntries, err := s.postingRepo.FindEntriesByGroupID(ctx, groupID)
	if err != nil {
		logger.Error("Failed to fetch entries for reversal", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve original entries: %w", err)
	}

	now := time.Now().UTC()
	newGroupID := uuid.NewString()

	reversingEntries := make([]domain.Entry, len(originalEntries))
	accountIDs := make([]string, 0, len(originalEntries))
	for i, orig := range originalEntries {
		accountIDs = append(accountIDs, orig.AccountID)
		newDirection := domain.Credit
		if orig.Direction == domain.Credit {
			newDirection = domain.Debit
		}
		reversingEntries[i] = domain.Entry{
			EntryID:   uuid.NewString(),
			GroupID:   newGroupID,
			AccountID: orig.AccountID,
			Amount:    orig.Amount,
			Direction: newDirection,
			EntryDate: orig.EntryDate,
			Notes:     orig.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	accountsMap, err := s.accountSvc.GetAccountByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		logger.Error("Failed to fetch accounts for reversal balance calculation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get account details for reversal: %w", err)
	}

	balanceChanges := make(map[string]decimal.Decimal)
	for _, revEntry := range reversingEntries {
		acc, ok := accountsMap[revEntry.AccountID]
		if !ok {
			return nil, fmt.Errorf("internal error: account %s not found during balance calculation", revEntry.AccountID)
		}
		signedAmount, err := accounting.SignedAmount(revEntry, acc.AccountType)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate signed amount for reversal: %w", err)
		}
		balanceChanges[revEntry.AccountID] = balanceChanges[revEntry.AccountID].Add(signedAmount)
	}

	reversingGroup := domain.PostingGroup{
		GroupID:         newGroupID,
		GroupDate:       original.GroupDate,
		Description:     fmt.Sprintf("Reversal of: %s", original.Description),
		Status:          domain.Posted,
		EntryHash:       accounting.EntrySetHash(original.GroupDate.Format("2006-01-02"), "reversal of "+original.GroupID, reversingEntries),
		Amount:          original.Amount,
		OriginalGroupID: &original.GroupID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// The reversing group and the original's status flip land in one
	// repository transaction; a failure here leaves the original POSTED and
	// the reversal fully absent, so the caller can safely try again.
	if err := s.saveReversalWithRetry(ctx, reversingGroup, reversingEntries, balanceChanges); err != nil {
		logger.Error("Failed to save reversing posting group",
			slog.String("original_group_id", original.GroupID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save reversing posting group: %w", err)
	}

	logger.Info("Posting group reversed successfully",
		slog.String("original_group_id", original.GroupID),
		slog.String("reversing_group_id", newGroupID))
	return &reversingGroup, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
