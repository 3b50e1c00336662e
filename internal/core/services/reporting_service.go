package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/utils/accounting"
)

// reportingService assembles financial reports from the account registry and
// the entry history. Reports are pure functions of ledger state as of a date:
// regenerating one without intervening postings reproduces it exactly.
type reportingService struct {
	BaseService
	accountSvc    portssvc.AccountSvcFacade
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountSvc portssvc.AccountSvcFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		accountSvc:    accountSvc,
		reportingRepo: reportingRepo,
	}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// BalanceSheet assembles the grouped balance sheet as of a date. Every active
// account appears in its section, zero balances included, ordered by code.
// Net income is folded into the equity section so that assets always equal
// liabilities plus equity on a consistent ledger.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error) {
	accounts, err := s.accountSvc.ListAccounts(ctx, dto.ListAccountsParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for balance sheet: %w", err)
	}

	// Balances and net income come from one snapshot; fetching them
	// separately could observe a posting group between the two reads and
	// report a transiently unbalanced sheet.
	balances, netIncome, err := s.reportingRepo.GetBalanceSheetData(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute balance sheet data")
		return nil, fmt.Errorf("failed to compute balance sheet data: %w", err)
	}
	netIncome = accounting.RoundMinor(netIncome)

	report := &domain.BalanceSheet{
		AsOf:        asOf,
		Assets:      []domain.ReportLine{},
		Liabilities: []domain.ReportLine{},
		Equity:      []domain.ReportLine{},
		NetIncome:   netIncome,
	}

	// ListAccounts returns accounts ordered by code; section order follows.
	for _, acc := range accounts {
		balance := accounting.RoundMinor(balances[acc.AccountID])
		line := domain.ReportLine{
			AccountID: acc.AccountID,
			Code:      acc.Code,
			Name:      acc.Name,
			Balance:   balance,
		}
		switch acc.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, line)
			report.TotalAssets = report.TotalAssets.Add(balance)
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, line)
			report.TotalLiabilities = report.TotalLiabilities.Add(balance)
		case domain.Equity:
			report.Equity = append(report.Equity, line)
			report.TotalEquity = report.TotalEquity.Add(balance)
		}
		// Income and expense accounts surface only through NetIncome.
	}

	report.TotalEquity = report.TotalEquity.Add(netIncome)
	report.TotalLiabilitiesAndEquity = report.TotalLiabilities.Add(report.TotalEquity)

	// The accounting equation holds within a minor unit on any ledger built
	// solely from balanced posting groups, including the empty one.
	residual := report.TotalAssets.Sub(report.TotalLiabilitiesAndEquity).Abs()
	report.Balanced = residual.LessThanOrEqual(accounting.Epsilon)
	if !report.Balanced {
		s.GetLogger(ctx).Warn("Balance sheet does not balance",
			"as_of", asOf.Format("2006-01-02"),
			"residual", residual.StringFixed(accounting.MinorUnitPlaces))
	}

	return report, nil
}

// BalanceSheetCSV renders the flat export encoding of the balance sheet.
// The row structure is fixed and consumed verbatim downstream: a two-cell
// title row, per-section headers with an Account Code/Account Name/Balance
// column row, subtotal rows labelled in the second column, blank separator
// rows, and a final two-cell Total Liabilities & Equity row. Rows are joined
// with newlines without a trailing one.
func (s *reportingService) BalanceSheetCSV(ctx context.Context, asOf time.Time) ([]byte, error) {
	report, err := s.BalanceSheet(ctx, asOf)
	if err != nil {
		return nil, err
	}

	var rows []string
	addRow := func(cols ...string) {
		rows = append(rows, strings.Join(cols, ","))
	}
	addSection := func(header string, lines []domain.ReportLine) {
		addRow(header)
		addRow("Account Code", "Account Name", "Balance")
		for _, line := range lines {
			addRow(line.Code, csvEscape(line.Name), line.Balance.StringFixed(accounting.MinorUnitPlaces))
		}
	}

	addRow("Balance Sheet", "As of "+asOf.Format("2006-01-02"))
	addRow()

	addSection("ASSETS", report.Assets)
	addRow("", "Total Assets", report.TotalAssets.StringFixed(accounting.MinorUnitPlaces))
	addRow()

	addSection("LIABILITIES", report.Liabilities)
	addRow("", "Total Liabilities", report.TotalLiabilities.StringFixed(accounting.MinorUnitPlaces))
	addRow()

	addSection("EQUITY", report.Equity)
	addRow("", "Net Income", report.NetIncome.StringFixed(accounting.MinorUnitPlaces))
	addRow("", "Total Equity", report.TotalEquity.StringFixed(accounting.MinorUnitPlaces))
	addRow()

	addRow("Total Liabilities & Equity", report.TotalLiabilitiesAndEquity.StringFixed(accounting.MinorUnitPlaces))

	return []byte(strings.Join(rows, "\n")), nil
}

// TrialBalance generates per-account debit and credit totals as of a date,
// ordered by account code. Total debits equal total credits on a consistent
// ledger.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate trial balance")
		return nil, fmt.Errorf("failed to generate trial balance: %w", err)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })
	for i := range rows {
		rows[i].Debit = accounting.RoundMinor(rows[i].Debit)
		rows[i].Credit = accounting.RoundMinor(rows[i].Credit)
	}
	return rows, nil
}

// ProfitAndLoss generates an income versus expense report for a period.
func (s *reportingService) ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.PAndLReport, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("period end %s precedes period start %s", to.Format("2006-01-02"), from.Format("2006-01-02"))
	}

	income, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate profit and loss report")
		return nil, fmt.Errorf("failed to generate profit and loss report: %w", err)
	}

	report := &domain.PAndLReport{
		From:     from,
		To:       to,
		Income:   income,
		Expenses: expenses,
	}
	if report.Income == nil {
		report.Income = []domain.ReportLine{}
	}
	if report.Expenses == nil {
		report.Expenses = []domain.ReportLine{}
	}

	totalIncome := decimal.Zero
	for i := range report.Income {
		report.Income[i].Balance = accounting.RoundMinor(report.Income[i].Balance)
		totalIncome = totalIncome.Add(report.Income[i].Balance)
	}
	totalExpenses := decimal.Zero
	for i := range report.Expenses {
		report.Expenses[i].Balance = accounting.RoundMinor(report.Expenses[i].Balance)
		totalExpenses = totalExpenses.Add(report.Expenses[i].Balance)
	}
	report.NetProfit = totalIncome.Sub(totalExpenses)

	return report, nil
}

// csvEscape quotes a field when it contains a comma, quote or newline.
func csvEscape(field string) string {
	if strings.ContainsAny(field, ",\"\n") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}
