package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	"github.com/finbooks/finbooks_backend/internal/models"
	"github.com/finbooks/finbooks_backend/internal/utils/accounting"
	"github.com/finbooks/finbooks_backend/internal/utils/mapping"
	"github.com/finbooks/finbooks_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxPostingRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountTransactionSupport
}

// newPgxPostingRepository creates a new repository for posting groups and entries.
func newPgxPostingRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountTransactionSupport) portsrepo.PostingRepositoryWithTx {
	return &PgxPostingRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxPostingRepository implements portsrepo.PostingRepositoryWithTx
var _ portsrepo.PostingRepositoryWithTx = (*PgxPostingRepository)(nil)

const groupColumns = `group_id, group_date, description, status, idempotency_key, entry_hash, amount,
		       original_group_id, reversing_group_id,
		       created_at, created_by, last_updated_at, last_updated_by`

func scanGroup(row pgx.Row) (models.PostingGroup, error) {
	var m models.PostingGroup
	err := row.Scan(
		&m.GroupID,
		&m.GroupDate,
		&m.Description,
		&m.Status,
		&m.IdempotencyKey,
		&m.EntryHash,
		&m.Amount,
		&m.OriginalGroupID,
		&m.ReversingGroupID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveGroup persists a posting group, its entries, and the account balance
// deltas in a single database transaction. Accounts are locked FOR UPDATE
// before the balance writes; per-entry running balances are computed from the
// locked balances. Either everything commits or nothing does.
func (r *PgxPostingRepository) SaveGroup(ctx context.Context, group domain.PostingGroup, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	if err := r.saveGroupInTx(ctx, tx, group, entries, balanceChanges); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveReversalGroup persists a reversing group and flips the original to
// REVERSED within one transaction, so a reversal can never half-apply. The
// status flip guards on the original still being POSTED; zero rows means a
// concurrent reversal won the race.
func (r *PgxPostingRepository) SaveReversalGroup(ctx context.Context, reversing domain.PostingGroup, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) error {
	if reversing.OriginalGroupID == nil {
		return apperrors.NewAppError(500, "internal error: reversing group "+reversing.GroupID+" has no original group", nil)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	if err := r.saveGroupInTx(ctx, tx, reversing, entries, balanceChanges); err != nil {
		return err
	}

	markQuery := `
		UPDATE posting_groups
		SET status = 'REVERSED',
		    reversing_group_id = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE group_id = $1 AND status = 'POSTED';
	`
	cmdTag, err := tx.Exec(ctx, markQuery, *reversing.OriginalGroupID, reversing.GroupID, reversing.LastUpdatedAt, reversing.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark posting group "+*reversing.OriginalGroupID+" as reversed", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: posting group %s is no longer POSTED", apperrors.ErrConflict, *reversing.OriginalGroupID)
	}

	return r.Commit(ctx, tx)
}

// saveGroupInTx writes the group row, locks the affected accounts, applies
// the balance deltas, and inserts the entries with computed running balances,
// all on the caller's transaction.
func (r *PgxPostingRepository) saveGroupInTx(ctx context.Context, tx pgx.Tx, group domain.PostingGroup, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) error {
	now := group.CreatedAt
	userID := group.CreatedBy

	// 1. Insert the group row
	modelGroup := mapping.ToModelPostingGroup(group)
	groupQuery := `
		INSERT INTO posting_groups (` + groupColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, groupQuery,
		modelGroup.GroupID,
		modelGroup.GroupDate,
		modelGroup.Description,
		modelGroup.Status,
		modelGroup.IdempotencyKey,
		modelGroup.EntryHash,
		modelGroup.Amount,
		modelGroup.OriginalGroupID,
		modelGroup.ReversingGroupID,
		modelGroup.CreatedAt,
		modelGroup.CreatedBy,
		modelGroup.LastUpdatedAt,
		modelGroup.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: posting group %s", apperrors.ErrDuplicate, modelGroup.GroupID)
		}
		return apperrors.NewAppError(500, "failed to insert posting group "+modelGroup.GroupID, err)
	}

	// 2. Lock the affected accounts and read their pre-posting balances
	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}
	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}

	// 3. Apply the balance deltas
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}

	// 4. Insert entries with running balances computed from the locked state
	currentRunningBalances := make(map[string]decimal.Decimal, len(lockedAccounts))
	for accID, lockedAcc := range lockedAccounts {
		currentRunningBalances[accID] = lockedAcc.Balance
	}

	// Deterministic entry order so running balances are reproducible
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].EntryID < entries[j].EntryID
	})

	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO entries (entry_id, group_id, account_id, amount, direction, entry_date, notes, created_at, created_by, last_updated_at, last_updated_by, running_balance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, e := range entries {
		modelEntry := mapping.ToModelEntry(e)
		modelEntry.CreatedAt = now
		modelEntry.LastUpdatedAt = now
		modelEntry.CreatedBy = userID
		modelEntry.LastUpdatedBy = userID

		lockedAccount, ok := lockedAccounts[e.AccountID]
		if !ok {
			return apperrors.NewAppError(500, "internal error: locked account "+e.AccountID+" not found during entry processing", nil)
		}
		signedAmount, err := accounting.SignedAmount(e, lockedAccount.AccountType)
		if err != nil {
			return apperrors.NewAppError(500, "failed to calculate signed amount for entry "+e.EntryID, err)
		}
		newRunningBalance := currentRunningBalances[e.AccountID].Add(signedAmount)
		modelEntry.RunningBalance = newRunningBalance
		currentRunningBalances[e.AccountID] = newRunningBalance

		batch.Queue(entryQuery,
			modelEntry.EntryID,
			modelEntry.GroupID,
			modelEntry.AccountID,
			modelEntry.Amount,
			modelEntry.Direction,
			modelEntry.EntryDate,
			modelEntry.Notes,
			modelEntry.CreatedAt,
			modelEntry.CreatedBy,
			modelEntry.LastUpdatedAt,
			modelEntry.LastUpdatedBy,
			modelEntry.RunningBalance,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute entry batch for posting group "+modelGroup.GroupID, err)
	}

	return nil
}

// FindGroupByID retrieves a posting group by its ID, without entries.
func (r *PgxPostingRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.PostingGroup, error) {
	query := `
		SELECT ` + groupColumns + `
		FROM posting_groups
		WHERE group_id = $1;
	`
	m, err := scanGroup(r.Pool.QueryRow(ctx, query, groupID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find posting group by ID "+groupID, err)
	}

	group := mapping.ToDomainPostingGroup(m)
	return &group, nil
}

// FindGroupByIdempotencyKey retrieves the posting group recorded under an
// idempotency key, or ErrNotFound when the key has not been used.
func (r *PgxPostingRepository) FindGroupByIdempotencyKey(ctx context.Context, key string) (*domain.PostingGroup, error) {
	query := `
		SELECT ` + groupColumns + `
		FROM posting_groups
		WHERE idempotency_key = $1;
	`
	m, err := scanGroup(r.Pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find posting group by idempotency key", err)
	}

	group := mapping.ToDomainPostingGroup(m)
	return &group, nil
}

const entryColumns = `entry_id, group_id, account_id, amount, direction, entry_date, notes,
		       created_at, created_by, last_updated_at, last_updated_by, running_balance`

func scanEntry(row pgx.Row) (models.Entry, error) {
	var m models.Entry
	err := row.Scan(
		&m.EntryID,
		&m.GroupID,
		&m.AccountID,
		&m.Amount,
		&m.Direction,
		&m.EntryDate,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.RunningBalance,
	)
	return m, err
}

// FindEntriesByGroupID retrieves all entries of a posting group in
// deterministic entry ID order, matching the order running balances were
// assigned in.
func (r *PgxPostingRepository) FindEntriesByGroupID(ctx context.Context, groupID string) ([]domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE group_id = $1
		ORDER BY entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for posting group "+groupID, err)
	}
	defer rows.Close()

	modelEntries := []models.Entry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row for posting group "+groupID, err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows for posting group "+groupID, err)
	}

	return mapping.ToDomainEntrySlice(modelEntries), nil
}

// ListGroups retrieves a paginated list of posting groups using token-based
// pagination, newest first. Reversed groups and their reversing counterparts
// are filtered out unless includeReversals is set.
func (r *PgxPostingRepository) ListGroups(ctx context.Context, limit int, nextToken *string, includeReversals bool) ([]domain.PostingGroup, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row decides whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + groupColumns + `
		FROM posting_groups
	`
	filterClause := `WHERE TRUE`
	if !includeReversals {
		filterClause += ` AND status != 'REVERSED' AND original_group_id IS NULL`
	}
	// group_id is the tie-breaker: groups created in the same instant share
	// (group_date, created_at), and a strict two-column cursor would skip the
	// rest of them at a page border.
	orderByClause := `ORDER BY group_date DESC, created_at DESC, group_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, lastGroupID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt, lastGroupID)
		cursorClause := ` AND (group_date, created_at, group_id) < ($1, $2, $3)`
		query := baseQuery + " " + filterClause + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query posting groups", err)
	}
	defer rows.Close()

	modelGroups := make([]models.PostingGroup, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanGroup(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan posting group row", scanErr)
		}
		modelGroups = append(modelGroups, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating posting group rows", err)
	}

	var nextTokenVal *string
	results := modelGroups
	if len(modelGroups) > limit {
		lastGroup := modelGroups[limit-1] // Last item actually included in this page
		newToken := pagination.EncodeToken(lastGroup.GroupDate, lastGroup.CreatedAt, lastGroup.GroupID)
		nextTokenVal = &newToken
		results = modelGroups[:limit]
	}

	domainGroups := make([]domain.PostingGroup, len(results))
	for i, m := range results {
		domainGroups[i] = mapping.ToDomainPostingGroup(m)
	}
	return domainGroups, nextTokenVal, nil
}

// ListEntriesByAccountID retrieves a paginated list of entries for one
// account, newest first, joined with their group's date and description.
func (r *PgxPostingRepository) ListEntriesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT e.entry_id, e.group_id, e.account_id, e.amount, e.direction, e.entry_date, e.notes,
		       e.created_at, e.created_by, e.last_updated_at, e.last_updated_by, e.running_balance,
		       g.group_date, g.description
		FROM entries e
		JOIN posting_groups g ON e.group_id = g.group_id
		WHERE e.account_id = $1
	`
	// All entries of a posting group share created_at; entry_id breaks the
	// tie so a page border inside a group does not skip its remaining rows.
	orderByClause := `ORDER BY g.group_date DESC, e.created_at DESC, e.entry_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{accountID}

	if nextToken != nil && *nextToken != "" {
		lastGroupDate, lastCreatedAt, lastEntryID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastGroupDate, lastCreatedAt, lastEntryID)
		cursorClause := `AND (g.group_date, e.created_at, e.entry_id) < ($2, $3, $4)`
		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for account "+accountID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.Entry, 0, fetchLimit)
	for rows.Next() {
		var m models.Entry
		scanErr := rows.Scan(
			&m.EntryID,
			&m.GroupID,
			&m.AccountID,
			&m.Amount,
			&m.Direction,
			&m.EntryDate,
			&m.Notes,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&m.RunningBalance,
			&m.GroupDate,
			&m.GroupDescription,
		)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row for account "+accountID, scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows for account "+accountID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		lastEntry := modelEntries[limit-1]
		token := pagination.EncodeToken(lastEntry.GroupDate, lastEntry.CreatedAt, lastEntry.EntryID)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	return mapping.ToDomainEntrySlice(results), nextTokenVal, nil
}
