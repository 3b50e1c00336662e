package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/core/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockPostingRepo   *MockPostingRepository
	mockAccountSvc    *MockAccountService
	service           portssvc.LedgerSvcFacade
	asOf              time.Time
	cash              domain.Account
	sales             domain.Account
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockPostingRepo = new(MockPostingRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewLedgerService(suite.mockReportingRepo, suite.mockPostingRepo, suite.mockAccountSvc)
	suite.asOf = time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC)

	suite.cash = domain.Account{AccountID: uuid.NewString(), Code: "1000", Name: "Cash", AccountType: domain.Asset, IsActive: true}
	suite.sales = domain.Account{AccountID: uuid.NewString(), Code: "4000", Name: "Sales", AccountType: domain.Income, IsActive: true}
}

// --- Test Cases ---

func (suite *LedgerServiceTestSuite) TestBalanceAsOf_Success() {
	ctx := context.Background()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.cash.AccountID).Return(&suite.cash, nil).Once()
	suite.mockReportingRepo.On("GetBalanceAsOf", ctx, suite.cash.AccountID, suite.asOf).
		Return(decimal.NewFromFloat(250.75), nil).Once()

	balance, err := suite.service.BalanceAsOf(ctx, suite.cash.AccountID, suite.asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromFloat(250.75)))
}

func (suite *LedgerServiceTestSuite) TestBalanceAsOf_UnknownAccountIsError() {
	ctx := context.Background()
	unknownID := uuid.NewString()
	suite.mockAccountSvc.On("GetAccountByID", ctx, unknownID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.BalanceAsOf(ctx, unknownID, suite.asOf)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetBalanceAsOf", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestBalancesAsOf_ZeroFillsAccountsWithoutEntries() {
	ctx := context.Background()
	ids := []string{suite.cash.AccountID, suite.sales.AccountID}
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, ids).
		Return(map[string]domain.Account{suite.cash.AccountID: suite.cash, suite.sales.AccountID: suite.sales}, nil).Once()
	// Only cash has entries.
	suite.mockReportingRepo.On("GetBalancesAsOf", ctx, ids, suite.asOf).
		Return(map[string]decimal.Decimal{suite.cash.AccountID: decimal.NewFromInt(100)}, nil).Once()

	balances, err := suite.service.BalancesAsOf(ctx, ids, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(balances, 2)
	suite.True(balances[suite.cash.AccountID].Equal(decimal.NewFromInt(100)))
	suite.True(balances[suite.sales.AccountID].IsZero())
}

func (suite *LedgerServiceTestSuite) TestBalancesAsOf_MissingAccountIsError() {
	ctx := context.Background()
	unknownID := uuid.NewString()
	ids := []string{suite.cash.AccountID, unknownID}
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, ids).
		Return(map[string]domain.Account{suite.cash.AccountID: suite.cash}, nil).Once()

	_, err := suite.service.BalancesAsOf(ctx, ids, suite.asOf)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetBalancesAsOf", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestBalancesAsOf_EmptyInput() {
	ctx := context.Background()

	balances, err := suite.service.BalancesAsOf(ctx, []string{}, suite.asOf)

	suite.Require().NoError(err)
	suite.Empty(balances)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetAccountByIDs", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestListEntriesByAccount_Success() {
	ctx := context.Background()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.cash.AccountID).Return(&suite.cash, nil).Once()

	entries := []domain.Entry{
		{
			EntryID:   uuid.NewString(),
			GroupID:   uuid.NewString(),
			AccountID: suite.cash.AccountID,
			Amount:    decimal.NewFromInt(100),
			Direction: domain.Debit,
			EntryDate: suite.asOf,
		},
	}
	nextToken := "opaque-cursor"
	suite.mockPostingRepo.On("ListEntriesByAccountID", ctx, suite.cash.AccountID, 25, (*string)(nil)).
		Return(entries, &nextToken, nil).Once()

	resp, err := suite.service.ListEntriesByAccount(ctx, suite.cash.AccountID, dto.ListEntriesParams{Limit: 25})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Entries, 1)
	suite.Equal(entries[0].EntryID, resp.Entries[0].EntryID)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(nextToken, *resp.NextToken)
}

func (suite *LedgerServiceTestSuite) TestListEntriesByAccount_UnknownAccount() {
	ctx := context.Background()
	unknownID := uuid.NewString()
	suite.mockAccountSvc.On("GetAccountByID", ctx, unknownID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListEntriesByAccount(ctx, unknownID, dto.ListEntriesParams{Limit: 25})

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "ListEntriesByAccountID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
