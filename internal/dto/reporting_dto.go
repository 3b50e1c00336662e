package dto

import (
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceSheetItemResponse is one account row in a balance sheet section.
type BalanceSheetItemResponse struct {
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// BalanceSheetSectionResponse groups account rows with their subtotal.
type BalanceSheetSectionResponse struct {
	Items []BalanceSheetItemResponse `json:"items"`
	Total decimal.Decimal            `json:"total"`
}

// BalanceSheetEquityResponse is the equity section; its total folds in net income.
type BalanceSheetEquityResponse struct {
	Items     []BalanceSheetItemResponse `json:"items"`
	NetIncome decimal.Decimal            `json:"netIncome"`
	Total     decimal.Decimal            `json:"total"`
}

// BalanceSheetResponse is the JSON shape of GET /reports/balance-sheet.
type BalanceSheetResponse struct {
	AsOfDate    string                      `json:"asOfDate"`
	Assets      BalanceSheetSectionResponse `json:"assets"`
	Liabilities BalanceSheetSectionResponse `json:"liabilities"`
	Equity      BalanceSheetEquityResponse  `json:"equity"`
	Totals      struct {
		TotalAssets               decimal.Decimal `json:"totalAssets"`
		TotalLiabilitiesAndEquity decimal.Decimal `json:"totalLiabilitiesAndEquity"`
		Balanced                  bool            `json:"balanced"`
	} `json:"totals"`
}

func toBalanceSheetItems(lines []domain.ReportLine) []BalanceSheetItemResponse {
	items := make([]BalanceSheetItemResponse, len(lines))
	for i, l := range lines {
		items[i] = BalanceSheetItemResponse{Code: l.Code, Name: l.Name, Balance: l.Balance}
	}
	return items
}

// ToBalanceSheetResponse converts a domain.BalanceSheet to the wire shape.
func ToBalanceSheetResponse(bs *domain.BalanceSheet) BalanceSheetResponse {
	resp := BalanceSheetResponse{
		AsOfDate: bs.AsOf.Format("2006-01-02"),
		Assets: BalanceSheetSectionResponse{
			Items: toBalanceSheetItems(bs.Assets),
			Total: bs.TotalAssets,
		},
		Liabilities: BalanceSheetSectionResponse{
			Items: toBalanceSheetItems(bs.Liabilities),
			Total: bs.TotalLiabilities,
		},
		Equity: BalanceSheetEquityResponse{
			Items:     toBalanceSheetItems(bs.Equity),
			NetIncome: bs.NetIncome,
			Total:     bs.TotalEquity,
		},
	}
	resp.Totals.TotalAssets = bs.TotalAssets
	resp.Totals.TotalLiabilitiesAndEquity = bs.TotalLiabilitiesAndEquity
	resp.Totals.Balanced = bs.Balanced
	return resp
}

// TrialBalanceRowResponse represents a row in the trial balance response.
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response.
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// ToTrialBalanceResponse converts trial balance rows to the wire shape,
// accumulating the debit and credit totals.
func ToTrialBalanceResponse(asOf string, rows []domain.TrialBalanceRow) TrialBalanceResponse {
	resp := TrialBalanceResponse{AsOf: asOf, Rows: make([]TrialBalanceRowResponse, len(rows))}
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i, r := range rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			AccountID:   r.AccountID,
			Code:        r.Code,
			AccountName: r.AccountName,
			AccountType: string(r.AccountType),
			Debit:       r.Debit,
			Credit:      r.Credit,
		}
		totalDebit = totalDebit.Add(r.Debit)
		totalCredit = totalCredit.Add(r.Credit)
	}
	resp.Totals.Debit = totalDebit
	resp.Totals.Credit = totalCredit
	return resp
}

// ProfitAndLossResponse represents the profit and loss report response.
type ProfitAndLossResponse struct {
	FromDate string                     `json:"fromDate"`
	ToDate   string                     `json:"toDate"`
	Income   []BalanceSheetItemResponse `json:"income"`
	Expenses []BalanceSheetItemResponse `json:"expenses"`
	Summary  struct {
		TotalIncome   decimal.Decimal `json:"totalIncome"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		NetProfit     decimal.Decimal `json:"netProfit"`
	} `json:"summary"`
}

// ToProfitAndLossResponse converts a domain.PAndLReport to the wire shape.
func ToProfitAndLossResponse(report *domain.PAndLReport) ProfitAndLossResponse {
	resp := ProfitAndLossResponse{
		FromDate: report.From.Format("2006-01-02"),
		ToDate:   report.To.Format("2006-01-02"),
		Income:   toBalanceSheetItems(report.Income),
		Expenses: toBalanceSheetItems(report.Expenses),
	}
	totalIncome := decimal.Zero
	for _, l := range report.Income {
		totalIncome = totalIncome.Add(l.Balance)
	}
	totalExpenses := decimal.Zero
	for _, l := range report.Expenses {
		totalExpenses = totalExpenses.Add(l.Balance)
	}
	resp.Summary.TotalIncome = totalIncome
	resp.Summary.TotalExpenses = totalExpenses
	resp.Summary.NetProfit = report.NetProfit
	return resp
}
