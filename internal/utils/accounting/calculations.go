package accounting

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MinorUnitPlaces is the ledger's minor-unit precision (currency cents).
const MinorUnitPlaces = 2

// Epsilon is the smallest representable currency unit; balance checks compare
// against it rather than exact zero.
var Epsilon = decimal.New(1, -MinorUnitPlaces) // 0.01

// RoundMinor rounds an amount to the ledger's minor-unit precision.
func RoundMinor(d decimal.Decimal) decimal.Decimal {
	return d.Round(MinorUnitPlaces)
}

// SignedAmount applies the correct sign to an entry amount based on account
// type and direction.
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/INCOME -> Negative (-)
// CREDIT to LIABILITY/EQUITY/INCOME -> Positive (+)
func SignedAmount(e domain.Entry, accountType domain.AccountType) (decimal.Decimal, error) {
	signed := e.Amount
	isDebit := e.Direction == domain.Debit

	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			signed = signed.Neg()
		}
	case domain.Liability, domain.Equity, domain.Income:
		if isDebit {
			signed = signed.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, e.AccountID)
	}
	return signed, nil
}

// ValidatePostingBalance checks that a posting's entries form a valid
// double-entry group: at least two legs, every amount strictly positive, and
// debits equal to credits at minor-unit precision. On imbalance it returns an
// UnbalancedError carrying the residual (debits minus credits).
func ValidatePostingBalance(entries []domain.Entry) error {
	if len(entries) < 2 {
		return fmt.Errorf("%w: posting must have at least two entries", apperrors.ErrValidation)
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, e := range entries {
		if e.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: entry amount must be positive for account %s", apperrors.ErrValidation, e.AccountID)
		}
		switch e.Direction {
		case domain.Debit:
			debits = debits.Add(e.Amount)
		case domain.Credit:
			credits = credits.Add(e.Amount)
		default:
			return fmt.Errorf("%w: unknown entry direction '%s' for account %s", apperrors.ErrValidation, e.Direction, e.AccountID)
		}
	}

	residual := RoundMinor(debits.Sub(credits))
	if !residual.IsZero() {
		return apperrors.NewUnbalancedError(residual)
	}
	return nil
}

// DebitTotal computes the economic value of a balanced posting: the sum of
// its debit legs.
func DebitTotal(entries []domain.Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.Direction == domain.Debit {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// EntrySetHash computes a stable fingerprint of a posting's semantic content:
// date, description and the normalized entry set. Two posts with the same
// idempotency key must produce the same hash to be treated as duplicates.
func EntrySetHash(date string, description string, entries []domain.Entry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%s|%s|%s", e.AccountID, RoundMinor(e.Amount).StringFixed(MinorUnitPlaces), e.Direction)
	}
	sort.Strings(lines) // Entry order is not semantically meaningful
	payload := date + "\n" + description + "\n" + strings.Join(lines, "\n")
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
