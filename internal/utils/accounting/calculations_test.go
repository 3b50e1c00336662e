package accounting_test

import (
	"errors"
	"testing"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(accountID string, amount string, direction domain.EntryDirection) domain.Entry {
	return domain.Entry{
		AccountID: accountID,
		Amount:    decimal.RequireFromString(amount),
		Direction: direction,
	}
}

func TestSignedAmount_Conventions(t *testing.T) {
	testCases := []struct {
		name        string
		accountType domain.AccountType
		direction   domain.EntryDirection
		expected    string
	}{
		{"debit to asset is positive", domain.Asset, domain.Debit, "100"},
		{"credit to asset is negative", domain.Asset, domain.Credit, "-100"},
		{"debit to expense is positive", domain.Expense, domain.Debit, "100"},
		{"credit to liability is positive", domain.Liability, domain.Credit, "100"},
		{"debit to liability is negative", domain.Liability, domain.Debit, "-100"},
		{"credit to equity is positive", domain.Equity, domain.Credit, "100"},
		{"credit to income is positive", domain.Income, domain.Credit, "100"},
		{"debit to income is negative", domain.Income, domain.Debit, "-100"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := entry("acc-1", "100", tc.direction)
			signed, err := accounting.SignedAmount(e, tc.accountType)
			require.NoError(t, err)
			assert.True(t, signed.Equal(decimal.RequireFromString(tc.expected)),
				"expected %s, got %s", tc.expected, signed)
		})
	}
}

func TestSignedAmount_UnknownType(t *testing.T) {
	_, err := accounting.SignedAmount(entry("acc-1", "100", domain.Debit), domain.AccountType("BOGUS"))
	assert.Error(t, err)
}

func TestValidatePostingBalance_Balanced(t *testing.T) {
	entries := []domain.Entry{
		entry("cash", "100.00", domain.Debit),
		entry("sales", "100.00", domain.Credit),
	}
	assert.NoError(t, accounting.ValidatePostingBalance(entries))
}

func TestValidatePostingBalance_SplitLegs(t *testing.T) {
	// One debit funded by two credits still balances.
	entries := []domain.Entry{
		entry("inventory", "150.00", domain.Debit),
		entry("cash", "100.00", domain.Credit),
		entry("payable", "50.00", domain.Credit),
	}
	assert.NoError(t, accounting.ValidatePostingBalance(entries))
}

func TestValidatePostingBalance_UnbalancedCarriesResidual(t *testing.T) {
	entries := []domain.Entry{
		entry("cash", "110.00", domain.Debit),
		entry("sales", "100.00", domain.Credit),
	}
	err := accounting.ValidatePostingBalance(entries)
	require.Error(t, err)

	var unbalanced *apperrors.UnbalancedError
	require.True(t, errors.As(err, &unbalanced))
	assert.True(t, unbalanced.Residual.Equal(decimal.RequireFromString("10.00")),
		"expected residual 10.00, got %s", unbalanced.Residual)
}

func TestValidatePostingBalance_TooFewEntries(t *testing.T) {
	err := accounting.ValidatePostingBalance([]domain.Entry{entry("cash", "100", domain.Debit)})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidatePostingBalance_NonPositiveAmount(t *testing.T) {
	entries := []domain.Entry{
		entry("cash", "0", domain.Debit),
		entry("sales", "0", domain.Credit),
	}
	err := accounting.ValidatePostingBalance(entries)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidatePostingBalance_SubMinorResidualIsZero(t *testing.T) {
	// Residuals below the minor unit round away.
	entries := []domain.Entry{
		entry("cash", "100.001", domain.Debit),
		entry("sales", "100.00", domain.Credit),
	}
	assert.NoError(t, accounting.ValidatePostingBalance(entries))
}

func TestDebitTotal(t *testing.T) {
	entries := []domain.Entry{
		entry("inventory", "150.00", domain.Debit),
		entry("cash", "100.00", domain.Credit),
		entry("payable", "50.00", domain.Credit),
	}
	assert.True(t, accounting.DebitTotal(entries).Equal(decimal.RequireFromString("150.00")))
}

func TestEntrySetHash_OrderIndependent(t *testing.T) {
	a := entry("cash", "100.00", domain.Debit)
	b := entry("sales", "100.00", domain.Credit)

	h1 := accounting.EntrySetHash("2026-01-15", "Invoice 42", []domain.Entry{a, b})
	h2 := accounting.EntrySetHash("2026-01-15", "Invoice 42", []domain.Entry{b, a})
	assert.Equal(t, h1, h2)
}

func TestEntrySetHash_SensitiveToContent(t *testing.T) {
	a := entry("cash", "100.00", domain.Debit)
	b := entry("sales", "100.00", domain.Credit)
	base := accounting.EntrySetHash("2026-01-15", "Invoice 42", []domain.Entry{a, b})

	differentAmount := accounting.EntrySetHash("2026-01-15", "Invoice 42", []domain.Entry{
		entry("cash", "200.00", domain.Debit), b,
	})
	assert.NotEqual(t, base, differentAmount)

	differentDate := accounting.EntrySetHash("2026-01-16", "Invoice 42", []domain.Entry{a, b})
	assert.NotEqual(t, base, differentDate)

	differentDescription := accounting.EntrySetHash("2026-01-15", "Invoice 43", []domain.Entry{a, b})
	assert.NotEqual(t, base, differentDescription)
}

func TestEntrySetHash_NormalizesAmountScale(t *testing.T) {
	h1 := accounting.EntrySetHash("2026-01-15", "x", []domain.Entry{
		entry("cash", "100", domain.Debit),
		entry("sales", "100", domain.Credit),
	})
	h2 := accounting.EntrySetHash("2026-01-15", "x", []domain.Entry{
		entry("cash", "100.00", domain.Debit),
		entry("sales", "100.00", domain.Credit),
	})
	assert.Equal(t, h1, h2)
}

func TestRoundMinor(t *testing.T) {
	assert.Equal(t, "10.01", accounting.RoundMinor(decimal.RequireFromString("10.005")).StringFixed(2))
	assert.Equal(t, "10.00", accounting.RoundMinor(decimal.RequireFromString("10.004")).StringFixed(2))
}
