package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/handlers"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

func (m *MockPostingService) Post(ctx context.Context, req dto.CreatePostingRequest, creatorUserID string) (*domain.PostingGroup, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingGroup), args.Error(1)
}
func (m *MockPostingService) GetPostingGroup(ctx context.Context, groupID string) (*domain.PostingGroup, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingGroup), args.Error(1)
}
func (m *MockPostingService) ListPostingGroups(ctx context.Context, params dto.ListPostingGroupsParams) (*dto.ListPostingGroupsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListPostingGroupsResponse), args.Error(1)
}
func (m *MockPostingService) ReversePostingGroup(ctx context.Context, groupID string, userID string) (*domain.PostingGroup, error) {
	args := m.Called(ctx, groupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingGroup), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

// --- Test Suite ---
type PostingHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockPostingService *MockPostingService
}

func (suite *PostingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(middleware.ActorMiddleware())

	suite.mockPostingService = new(MockPostingService)

	services := &portssvc.ServiceContainer{
		Posting: suite.mockPostingService,
	}
	handlers.RegisterRoutes(suite.router, services)
}

func (suite *PostingHandlerTestSuite) postJSON(url string, body any, headers map[string]string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func balancedRequest() dto.CreatePostingRequest {
	return dto.CreatePostingRequest{
		Date:        time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Cash sale",
		Entries: []dto.PostingEntryRequest{
			{AccountID: uuid.NewString(), Amount: decimal.NewFromInt(100), Direction: domain.Debit},
			{AccountID: uuid.NewString(), Amount: decimal.NewFromInt(100), Direction: domain.Credit},
		},
	}
}

// --- Test Cases ---

func (suite *PostingHandlerTestSuite) TestCreatePosting_Success() {
	reqBody := balancedRequest()
	actorID := uuid.NewString()

	group := &domain.PostingGroup{
		GroupID:     uuid.NewString(),
		GroupDate:   reqBody.Date,
		Description: reqBody.Description,
		Status:      domain.Posted,
		Amount:      decimal.NewFromInt(100),
	}
	suite.mockPostingService.On("Post",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreatePostingRequest) bool {
			return r.Description == reqBody.Description && len(r.Entries) == 2
		}),
		actorID,
	).Return(group, nil).Once()

	w := suite.postJSON("/api/v1/transactions", reqBody, map[string]string{"X-Actor-ID": actorID})

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.PostingGroupResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(group.GroupID, resp.GroupID)
	suite.Equal(string(domain.Posted), resp.Status)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *PostingHandlerTestSuite) TestCreatePosting_HeaderIdempotencyKeyWinsOverBody() {
	reqBody := balancedRequest()
	bodyKey := "body-key"
	reqBody.IdempotencyKey = &bodyKey

	group := &domain.PostingGroup{GroupID: uuid.NewString(), Status: domain.Posted}
	suite.mockPostingService.On("Post",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreatePostingRequest) bool {
			return r.IdempotencyKey != nil && *r.IdempotencyKey == "header-key"
		}),
		"system",
	).Return(group, nil).Once()

	w := suite.postJSON("/api/v1/transactions", reqBody, map[string]string{"Idempotency-Key": "header-key"})

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *PostingHandlerTestSuite) TestCreatePosting_UnbalancedReturns400WithResidual() {
	reqBody := balancedRequest()
	residual := decimal.NewFromFloat(10.00)
	suite.mockPostingService.On("Post", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.NewUnbalancedError(residual)).Once()

	w := suite.postJSON("/api/v1/transactions", reqBody, nil)

	suite.Equal(http.StatusBadRequest, w.Code)

	var resp map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp, "residual")
}

func (suite *PostingHandlerTestSuite) TestCreatePosting_IdempotencyConflictReturns409() {
	reqBody := balancedRequest()
	suite.mockPostingService.On("Post", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrIdempotencyConflict).Once()

	w := suite.postJSON("/api/v1/transactions", reqBody, nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *PostingHandlerTestSuite) TestCreatePosting_SingleEntryRejectedByBinding() {
	reqBody := balancedRequest()
	reqBody.Entries = reqBody.Entries[:1]

	w := suite.postJSON("/api/v1/transactions", reqBody, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPostingService.AssertNotCalled(suite.T(), "Post", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingHandlerTestSuite) TestGetPosting_NotFoundReturns404() {
	groupID := uuid.NewString()
	suite.mockPostingService.On("GetPostingGroup", mock.Anything, groupID).
		Return(nil, fmt.Errorf("%w: posting group %s", apperrors.ErrNotFound, groupID)).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions/"+groupID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *PostingHandlerTestSuite) TestReversePosting_AlreadyReversedReturns409() {
	groupID := uuid.NewString()
	suite.mockPostingService.On("ReversePostingGroup", mock.Anything, groupID, "system").
		Return(nil, fmt.Errorf("%w: posting group already reversed", apperrors.ErrConflict)).Once()

	w := suite.postJSON("/api/v1/transactions/"+groupID+"/reverse", nil, nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *PostingHandlerTestSuite) TestReversePosting_Success() {
	groupID := uuid.NewString()
	actorID := uuid.NewString()
	reversing := &domain.PostingGroup{
		GroupID:         uuid.NewString(),
		Status:          domain.Posted,
		OriginalGroupID: &groupID,
	}
	suite.mockPostingService.On("ReversePostingGroup", mock.Anything, groupID, actorID).
		Return(reversing, nil).Once()

	w := suite.postJSON("/api/v1/transactions/"+groupID+"/reverse", nil, map[string]string{"X-Actor-ID": actorID})

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.PostingGroupResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.OriginalGroupID)
	suite.Equal(groupID, *resp.OriginalGroupID)
}

// --- Run Test Suite ---
func TestPostingHandler(t *testing.T) {
	suite.Run(t, new(PostingHandlerTestSuite))
}
