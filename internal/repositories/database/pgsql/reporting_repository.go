package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// Ensure reportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// signedSumExpr nets an account's entries under its own sign convention:
// debit-positive for ASSET and EXPENSE, credit-positive for the rest.
const signedSumExpr = `
	SUM(CASE WHEN a.account_type IN ('ASSET', 'EXPENSE')
		THEN CASE WHEN e.direction = 'DEBIT' THEN e.amount ELSE -e.amount END
		ELSE CASE WHEN e.direction = 'CREDIT' THEN e.amount ELSE -e.amount END
	END)`

// beginSnapshot opens a repeatable-read read-only transaction so multi-query
// reports observe concurrently committing posting groups fully or not at all.
func (r *reportingRepository) beginSnapshot(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin report snapshot", err)
	}
	return tx, nil
}

// GetBalanceAsOf computes one account's signed balance from entries dated on
// or before asOf. Reversal entries net out against the entries they reverse,
// so no status filter is needed.
func (r *reportingRepository) GetBalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(` + signedSumExpr + `, 0)
		FROM entries e
		JOIN accounts a ON e.account_id = a.account_id
		WHERE e.account_id = $1 AND e.entry_date <= $2;
	`
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID, asOf).Scan(&balance); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to compute balance for account "+accountID, err)
	}
	return balance, nil
}

// GetBalancesAsOf computes signed balances for many accounts from one
// snapshot. Accounts without entries are absent from the result map.
func (r *reportingRepository) GetBalancesAsOf(ctx context.Context, accountIDs []string, asOf time.Time) (map[string]decimal.Decimal, error) {
	if len(accountIDs) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	query := `
		SELECT e.account_id, ` + signedSumExpr + ` AS balance
		FROM entries e
		JOIN accounts a ON e.account_id = a.account_id
		WHERE e.account_id = ANY($1) AND e.entry_date <= $2
		GROUP BY e.account_id;
	`
	rows, err := r.Pool.Query(ctx, query, accountIDs, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query balances as of date", err)
	}
	defer rows.Close()

	balances := make(map[string]decimal.Decimal, len(accountIDs))
	for rows.Next() {
		var accountID string
		var balance decimal.Decimal
		if err := rows.Scan(&accountID, &balance); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan balance row", err)
		}
		balances[accountID] = balance
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating balance rows", err)
	}

	return balances, nil
}

// GetNetIncomeAsOf computes cumulative income minus expense through asOf.
func (r *reportingRepository) GetNetIncomeAsOf(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	return r.netIncomeAsOf(ctx, r.Pool, asOf)
}

// queryRower is satisfied by both *pgxpool.Pool and pgx.Tx.
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *reportingRepository) netIncomeAsOf(ctx context.Context, q queryRower, asOf time.Time) (decimal.Decimal, error) {
	// Income nets credit-positive and expense debit-positive; net income is
	// the income total minus the expense total.
	incomeQuery := `
		SELECT
			COALESCE(SUM(CASE WHEN a.account_type = 'INCOME'
				THEN CASE WHEN e.direction = 'CREDIT' THEN e.amount ELSE -e.amount END
				ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN a.account_type = 'EXPENSE'
				THEN CASE WHEN e.direction = 'DEBIT' THEN e.amount ELSE -e.amount END
				ELSE 0 END), 0) AS expense
		FROM entries e
		JOIN accounts a ON e.account_id = a.account_id
		WHERE a.account_type IN ('INCOME', 'EXPENSE') AND e.entry_date <= $1;
	`
	var income, expense decimal.Decimal
	if err := q.QueryRow(ctx, incomeQuery, asOf).Scan(&income, &expense); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to compute net income", err)
	}
	return income.Sub(expense), nil
}

// GetBalanceSheetData computes signed balances for every account plus the
// cumulative net income through asOf, from a single repeatable-read snapshot
// so the accounting equation check never observes a half-committed posting.
func (r *reportingRepository) GetBalanceSheetData(ctx context.Context, asOf time.Time) (map[string]decimal.Decimal, decimal.Decimal, error) {
	tx, err := r.beginSnapshot(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}
	defer r.Rollback(ctx, tx)

	balanceQuery := `
		SELECT e.account_id, ` + signedSumExpr + ` AS balance
		FROM entries e
		JOIN accounts a ON e.account_id = a.account_id
		WHERE e.entry_date <= $1
		GROUP BY e.account_id;
	`
	rows, err := tx.Query(ctx, balanceQuery, asOf)
	if err != nil {
		return nil, decimal.Zero, apperrors.NewAppError(500, "failed to query balance sheet balances", err)
	}
	defer rows.Close()

	balances := make(map[string]decimal.Decimal)
	for rows.Next() {
		var accountID string
		var balance decimal.Decimal
		if err := rows.Scan(&accountID, &balance); err != nil {
			return nil, decimal.Zero, apperrors.NewAppError(500, "failed to scan balance sheet row", err)
		}
		balances[accountID] = balance
	}
	if err := rows.Err(); err != nil {
		return nil, decimal.Zero, apperrors.NewAppError(500, "error iterating balance sheet rows", err)
	}
	rows.Close()

	netIncome, err := r.netIncomeAsOf(ctx, tx, asOf)
	if err != nil {
		return nil, decimal.Zero, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, decimal.Zero, err
	}
	return balances, netIncome, nil
}

// GetTrialBalanceData retrieves per-account debit and credit totals as of a
// specific date. Reversed groups and their reversing counterparts are
// excluded so the report shows gross activity of live postings only.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name AS account_name,
			a.account_type,
			SUM(CASE WHEN e.direction = 'DEBIT' THEN e.amount ELSE 0 END) AS total_debit,
			SUM(CASE WHEN e.direction = 'CREDIT' THEN e.amount ELSE 0 END) AS total_credit
		FROM entries e
		JOIN accounts a ON e.account_id = a.account_id
		JOIN posting_groups g ON e.group_id = g.group_id
		WHERE e.entry_date <= $1
			AND g.status = 'POSTED'
			AND g.original_group_id IS NULL
		GROUP BY a.account_id, a.code, a.name, a.account_type
	`
	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string

		if err := rows.Scan(
			&row.AccountID,
			&row.Code,
			&row.AccountName,
			&accountType,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}

		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}

	if len(result) == 0 {
		return []domain.TrialBalanceRow{}, nil
	}
	return result, nil
}

// GetProfitAndLossData retrieves income and expense lines for a period,
// each account netted under its own sign convention.
func (r *reportingRepository) GetProfitAndLossData(ctx context.Context, from, to time.Time) ([]domain.ReportLine, []domain.ReportLine, error) {
	query := `
		SELECT
			a.account_type,
			a.account_id,
			a.code,
			a.name,
			SUM(CASE WHEN e.direction = 'DEBIT' THEN e.amount ELSE -e.amount END) AS net
		FROM entries e
		JOIN accounts a ON e.account_id = a.account_id
		JOIN posting_groups g ON e.group_id = g.group_id
		WHERE e.entry_date BETWEEN $1 AND $2
			AND g.status = 'POSTED'
			AND g.original_group_id IS NULL
			AND a.account_type IN ('INCOME', 'EXPENSE')
		GROUP BY a.account_type, a.account_id, a.code, a.name
		ORDER BY a.code
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying profit and loss data: %w", err)
	}
	defer rows.Close()

	var income []domain.ReportLine
	var expenses []domain.ReportLine
	for rows.Next() {
		var accountType string
		var line domain.ReportLine
		var net decimal.Decimal

		if err := rows.Scan(&accountType, &line.AccountID, &line.Code, &line.Name, &net); err != nil {
			return nil, nil, fmt.Errorf("error scanning profit and loss row: %w", err)
		}

		switch domain.AccountType(accountType) {
		case domain.Income:
			// Credits increase income; the debit-positive net is inverted.
			line.Balance = net.Neg()
			income = append(income, line)
		case domain.Expense:
			// Debits increase expenses; the net sign is already right.
			line.Balance = net
			expenses = append(expenses, line)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating profit and loss rows: %w", err)
	}

	if income == nil {
		income = []domain.ReportLine{}
	}
	if expenses == nil {
		expenses = []domain.ReportLine{}
	}
	return income, expenses, nil
}
