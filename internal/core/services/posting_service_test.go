package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/core/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PostingRepository ---
type MockPostingRepository struct {
	mock.Mock
}

// Ensure MockPostingRepository implements portsrepo.PostingRepositoryWithTx
var _ portsrepo.PostingRepositoryWithTx = (*MockPostingRepository)(nil)

func (m *MockPostingRepository) SaveGroup(ctx context.Context, group domain.PostingGroup, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, group, entries, balanceChanges)
	return args.Error(0)
}

func (m *MockPostingRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.PostingGroup, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingGroup), args.Error(1)
}

func (m *MockPostingRepository) FindGroupByIdempotencyKey(ctx context.Context, key string) (*domain.PostingGroup, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingGroup), args.Error(1)
}

func (m *MockPostingRepository) FindEntriesByGroupID(ctx context.Context, groupID string) ([]domain.Entry, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockPostingRepository) ListGroups(ctx context.Context, limit int, nextToken *string, includeReversals bool) ([]domain.PostingGroup, *string, error) {
	args := m.Called(ctx, limit, nextToken, includeReversals)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		returnedNextToken = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.PostingGroup), returnedNextToken, args.Error(2)
}

func (m *MockPostingRepository) ListEntriesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		returnedNextToken = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Entry), returnedNextToken, args.Error(2)
}

func (m *MockPostingRepository) SaveReversalGroup(ctx context.Context, reversing domain.PostingGroup, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, reversing, entries, balanceChanges)
	return args.Error(0)
}

func (m *MockPostingRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockPostingRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPostingRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type PostingServiceTestSuite struct {
	suite.Suite
	mockPostingRepo *MockPostingRepository
	mockAccountSvc  *MockAccountService
	service         portssvc.PostingSvcFacade
	cashAccount     domain.Account
	salesAccount    domain.Account
	expenseAccount  domain.Account
	inactiveAccount domain.Account
	userID          string
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockPostingRepo = new(MockPostingRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewPostingService(suite.mockPostingRepo, suite.mockAccountSvc)

	suite.userID = uuid.NewString()
	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.salesAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "4000",
		Name:        "Sales",
		AccountType: domain.Income,
		IsActive:    true,
	}
	suite.expenseAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "5000",
		Name:        "Rent",
		AccountType: domain.Expense,
		IsActive:    true,
	}
	suite.inactiveAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1090",
		Name:        "Old Petty Cash",
		AccountType: domain.Asset,
		IsActive:    false,
	}
}

func (suite *PostingServiceTestSuite) simpleRequest() dto.CreatePostingRequest {
	return dto.CreatePostingRequest{
		Date:        time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Description: "Cash sale",
		Entries: []dto.PostingEntryRequest{
			{AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Debit},
			{AccountID: suite.salesAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Credit},
		},
	}
}

func (suite *PostingServiceTestSuite) accountsMap(accounts ...domain.Account) map[string]domain.Account {
	m := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		m[a.AccountID] = a
	}
	return m
}

// --- Test Cases ---

func (suite *PostingServiceTestSuite) TestPost_Success() {
	ctx := context.Background()
	req := suite.simpleRequest()

	suite.mockAccountSvc.On("GetAccountByIDs", ctx, []string{suite.cashAccount.AccountID, suite.salesAccount.AccountID}).
		Return(suite.accountsMap(suite.cashAccount, suite.salesAccount), nil).Once()

	var savedChanges map[string]decimal.Decimal
	suite.mockPostingRepo.On("SaveGroup", ctx, mock.AnythingOfType("domain.PostingGroup"), mock.AnythingOfType("[]domain.Entry"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedChanges = args.Get(3).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()

	group, err := suite.service.Post(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(group)
	suite.NotEmpty(group.GroupID)
	suite.Equal(domain.Posted, group.Status)
	suite.Equal(suite.userID, group.CreatedBy)
	suite.True(group.Amount.Equal(decimal.NewFromInt(100)), "group amount is the debit total")
	suite.NotEmpty(group.EntryHash)

	// Both accounts gain 100 under their own sign conventions.
	suite.Require().NotNil(savedChanges)
	suite.True(savedChanges[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(100)))
	suite.True(savedChanges[suite.salesAccount.AccountID].Equal(decimal.NewFromInt(100)))

	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockPostingRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPost_UnbalancedRejectedWithResidual() {
	ctx := context.Background()
	req := suite.simpleRequest()
	req.Entries[0].Amount = decimal.NewFromInt(110)

	_, err := suite.service.Post(ctx, req, suite.userID)

	suite.Require().Error(err)
	var unbalanced *apperrors.UnbalancedError
	suite.Require().True(errors.As(err, &unbalanced))
	suite.True(unbalanced.Residual.Equal(decimal.NewFromInt(10)), "residual should be 10, got %s", unbalanced.Residual)

	// Nothing was persisted and no accounts were even fetched.
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "SaveGroup", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetAccountByIDs", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_RejectsSingleEntry() {
	ctx := context.Background()
	req := suite.simpleRequest()
	req.Entries = req.Entries[:1]

	_, err := suite.service.Post(ctx, req, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestPost_RejectsSingleAccount() {
	ctx := context.Background()
	req := suite.simpleRequest()
	// Both legs against the same account
	req.Entries[1].AccountID = suite.cashAccount.AccountID

	_, err := suite.service.Post(ctx, req, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestPost_UnknownAccount() {
	ctx := context.Background()
	req := suite.simpleRequest()

	// Sales account is missing from the registry response.
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.accountsMap(suite.cashAccount), nil).Once()

	_, err := suite.service.Post(ctx, req, suite.userID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "SaveGroup", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_InactiveAccount() {
	ctx := context.Background()
	req := suite.simpleRequest()
	req.Entries[0].AccountID = suite.inactiveAccount.AccountID

	suite.mockAccountSvc.On("GetAccountByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.accountsMap(suite.inactiveAccount, suite.salesAccount), nil).Once()

	_, err := suite.service.Post(ctx, req, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestPost_IdempotentReplayReturnsExisting() {
	ctx := context.Background()
	key := "payment-42"
	req := suite.simpleRequest()
	req.IdempotencyKey = &key

	// Compute the entry hash the same way the service does.
	domainEntries := []domain.Entry{
		{AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Debit},
		{AccountID: suite.salesAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Credit},
	}
	existingHash := accounting.EntrySetHash(req.Date.Format("2006-01-02"), req.Description, domainEntries)

	existing := &domain.PostingGroup{
		GroupID:        uuid.NewString(),
		Status:         domain.Posted,
		IdempotencyKey: &key,
		EntryHash:      existingHash,
	}
	suite.mockPostingRepo.On("FindGroupByIdempotencyKey", ctx, key).Return(existing, nil).Once()

	group, err := suite.service.Post(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(existing.GroupID, group.GroupID)
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "SaveGroup", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_IdempotencyKeyReuseWithDifferentEntries() {
	ctx := context.Background()
	key := "payment-42"
	req := suite.simpleRequest()
	req.IdempotencyKey = &key

	existing := &domain.PostingGroup{
		GroupID:        uuid.NewString(),
		IdempotencyKey: &key,
		EntryHash:      "some-other-hash",
	}
	suite.mockPostingRepo.On("FindGroupByIdempotencyKey", ctx, key).Return(existing, nil).Once()

	_, err := suite.service.Post(ctx, req, suite.userID)
	suite.ErrorIs(err, apperrors.ErrIdempotencyConflict)
}

func (suite *PostingServiceTestSuite) TestPost_StorageFailureRetriedOnce() {
	ctx := context.Background()
	req := suite.simpleRequest()

	suite.mockAccountSvc.On("GetAccountByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.accountsMap(suite.cashAccount, suite.salesAccount), nil).Once()

	storageErr := apperrors.NewAppError(500, "failed to commit transaction", errors.New("connection reset"))
	suite.mockPostingRepo.On("SaveGroup", ctx, mock.AnythingOfType("domain.PostingGroup"), mock.AnythingOfType("[]domain.Entry"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Return(storageErr).Once()
	suite.mockPostingRepo.On("SaveGroup", ctx, mock.AnythingOfType("domain.PostingGroup"), mock.AnythingOfType("[]domain.Entry"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Return(nil).Once()

	group, err := suite.service.Post(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(group)
	suite.mockPostingRepo.AssertNumberOfCalls(suite.T(), "SaveGroup", 2)
}

func (suite *PostingServiceTestSuite) TestPost_StorageFailureTwiceFails() {
	ctx := context.Background()
	req := suite.simpleRequest()

	suite.mockAccountSvc.On("GetAccountByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.accountsMap(suite.cashAccount, suite.salesAccount), nil).Once()

	storageErr := apperrors.NewAppError(500, "failed to commit transaction", errors.New("connection reset"))
	suite.mockPostingRepo.On("SaveGroup", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(storageErr).Twice()

	_, err := suite.service.Post(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStorage)
	suite.mockPostingRepo.AssertNumberOfCalls(suite.T(), "SaveGroup", 2)
}

func (suite *PostingServiceTestSuite) TestReverse_Success() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := &domain.PostingGroup{
		GroupID:     originalID,
		GroupDate:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Description: "Cash sale",
		Status:      domain.Posted,
		Amount:      decimal.NewFromInt(100),
	}
	originalEntries := []domain.Entry{
		{EntryID: uuid.NewString(), GroupID: originalID, AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Debit, EntryDate: original.GroupDate},
		{EntryID: uuid.NewString(), GroupID: originalID, AccountID: suite.salesAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Credit, EntryDate: original.GroupDate},
	}

	suite.mockPostingRepo.On("FindGroupByID", ctx, originalID).Return(original, nil).Once()
	suite.mockPostingRepo.On("FindEntriesByGroupID", ctx, originalID).Return(originalEntries, nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.accountsMap(suite.cashAccount, suite.salesAccount), nil).Once()

	var savedGroup domain.PostingGroup
	var savedEntries []domain.Entry
	var savedChanges map[string]decimal.Decimal
	suite.mockPostingRepo.On("SaveReversalGroup", ctx, mock.AnythingOfType("domain.PostingGroup"), mock.AnythingOfType("[]domain.Entry"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedGroup = args.Get(1).(domain.PostingGroup)
			savedEntries = args.Get(2).([]domain.Entry)
			savedChanges = args.Get(3).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()

	reversing, err := suite.service.ReversePostingGroup(ctx, originalID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversing)
	suite.Require().NotNil(reversing.OriginalGroupID)
	suite.Equal(originalID, *reversing.OriginalGroupID)
	suite.Equal(domain.Posted, reversing.Status)

	// The original's linkage travels inside the one atomic save; there is no
	// separate status update that could fail independently.
	suite.Require().NotNil(savedGroup.OriginalGroupID)
	suite.Equal(originalID, *savedGroup.OriginalGroupID)
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "SaveGroup", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// Directions are flipped leg for leg.
	suite.Require().Len(savedEntries, 2)
	for _, e := range savedEntries {
		orig := originalEntries[0]
		if e.AccountID == originalEntries[1].AccountID {
			orig = originalEntries[1]
		}
		suite.NotEqual(orig.Direction, e.Direction)
		suite.True(e.Amount.Equal(orig.Amount))
	}

	// Balance deltas are the exact negation of the original posting.
	suite.True(savedChanges[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(-100)))
	suite.True(savedChanges[suite.salesAccount.AccountID].Equal(decimal.NewFromInt(-100)))

	suite.mockPostingRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestReverse_FailedSaveCanBeRetried() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := &domain.PostingGroup{
		GroupID:     originalID,
		GroupDate:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Description: "Cash sale",
		Status:      domain.Posted,
		Amount:      decimal.NewFromInt(100),
	}
	originalEntries := []domain.Entry{
		{EntryID: uuid.NewString(), GroupID: originalID, AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Debit, EntryDate: original.GroupDate},
		{EntryID: uuid.NewString(), GroupID: originalID, AccountID: suite.salesAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Credit, EntryDate: original.GroupDate},
	}

	// The original stays POSTED as long as the atomic save keeps failing, so
	// every attempt reads the same state.
	suite.mockPostingRepo.On("FindGroupByID", ctx, originalID).Return(original, nil).Twice()
	suite.mockPostingRepo.On("FindEntriesByGroupID", ctx, originalID).Return(originalEntries, nil).Twice()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.accountsMap(suite.cashAccount, suite.salesAccount), nil).Twice()

	storageErr := apperrors.NewAppError(500, "failed to commit transaction", errors.New("connection reset"))
	suite.mockPostingRepo.On("SaveReversalGroup", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(storageErr).Twice()
	suite.mockPostingRepo.On("SaveReversalGroup", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Once()

	_, err := suite.service.ReversePostingGroup(ctx, originalID, suite.userID)
	suite.Require().ErrorIs(err, apperrors.ErrStorage)

	reversing, err := suite.service.ReversePostingGroup(ctx, originalID, suite.userID)
	suite.Require().NoError(err)
	suite.Require().NotNil(reversing.OriginalGroupID)
	suite.Equal(originalID, *reversing.OriginalGroupID)
}

func (suite *PostingServiceTestSuite) TestReverse_ConcurrentReversalSurfacesConflict() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := &domain.PostingGroup{
		GroupID:     originalID,
		GroupDate:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Description: "Cash sale",
		Status:      domain.Posted,
		Amount:      decimal.NewFromInt(100),
	}
	originalEntries := []domain.Entry{
		{EntryID: uuid.NewString(), GroupID: originalID, AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Debit, EntryDate: original.GroupDate},
		{EntryID: uuid.NewString(), GroupID: originalID, AccountID: suite.salesAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Credit, EntryDate: original.GroupDate},
	}

	suite.mockPostingRepo.On("FindGroupByID", ctx, originalID).Return(original, nil).Once()
	suite.mockPostingRepo.On("FindEntriesByGroupID", ctx, originalID).Return(originalEntries, nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.accountsMap(suite.cashAccount, suite.salesAccount), nil).Once()

	// Another reversal committed between our read and our save.
	conflictErr := fmt.Errorf("%w: posting group %s is no longer POSTED", apperrors.ErrConflict, originalID)
	suite.mockPostingRepo.On("SaveReversalGroup", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(conflictErr).Once()

	_, err := suite.service.ReversePostingGroup(ctx, originalID, suite.userID)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PostingServiceTestSuite) TestReverse_AlreadyReversed() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := &domain.PostingGroup{GroupID: originalID, Status: domain.Reversed}

	suite.mockPostingRepo.On("FindGroupByID", ctx, originalID).Return(original, nil).Once()

	_, err := suite.service.ReversePostingGroup(ctx, originalID, suite.userID)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PostingServiceTestSuite) TestReverse_CannotReverseAReversal() {
	ctx := context.Background()
	someOriginal := uuid.NewString()
	reversalID := uuid.NewString()
	reversal := &domain.PostingGroup{
		GroupID:         reversalID,
		Status:          domain.Posted,
		OriginalGroupID: &someOriginal,
	}

	suite.mockPostingRepo.On("FindGroupByID", ctx, reversalID).Return(reversal, nil).Once()

	_, err := suite.service.ReversePostingGroup(ctx, reversalID, suite.userID)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PostingServiceTestSuite) TestReverse_NotFound() {
	ctx := context.Background()
	missingID := uuid.NewString()
	suite.mockPostingRepo.On("FindGroupByID", ctx, missingID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ReversePostingGroup(ctx, missingID, suite.userID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PostingServiceTestSuite) TestGetPostingGroup_IncludesEntries() {
	ctx := context.Background()
	groupID := uuid.NewString()
	group := &domain.PostingGroup{GroupID: groupID, Status: domain.Posted}
	entries := []domain.Entry{
		{EntryID: uuid.NewString(), GroupID: groupID, AccountID: suite.cashAccount.AccountID},
	}

	suite.mockPostingRepo.On("FindGroupByID", ctx, groupID).Return(group, nil).Once()
	suite.mockPostingRepo.On("FindEntriesByGroupID", ctx, groupID).Return(entries, nil).Once()

	result, err := suite.service.GetPostingGroup(ctx, groupID)

	suite.Require().NoError(err)
	suite.Len(result.Entries, 1)
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
