package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// postingHandler handles HTTP requests for posting groups (business events).
type postingHandler struct {
	postingService portssvc.PostingSvcFacade
}

// newPostingHandler creates a new postingHandler.
func newPostingHandler(postingService portssvc.PostingSvcFacade) *postingHandler {
	return &postingHandler{
		postingService: postingService,
	}
}

// createPosting handles POST /transactions. The idempotency key may come from
// the Idempotency-Key header or the request body; the header wins.
func (h *postingHandler) createPosting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPosting", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if headerKey := c.GetHeader("Idempotency-Key"); headerKey != "" {
		req.IdempotencyKey = &headerKey
	}

	creatorUserID := middleware.GetActorFromContext(c)

	group, err := h.postingService.Post(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, err, "Failed to record transaction")
		return
	}

	logger.Info("Transaction recorded", slog.String("group_id", group.GroupID))
	c.JSON(http.StatusCreated, dto.ToPostingGroupResponse(group))
}

// getPosting handles GET /transactions/:groupID
func (h *postingHandler) getPosting(c *gin.Context) {
	groupID := c.Param("groupID")

	group, err := h.postingService.GetPostingGroup(c.Request.Context(), groupID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToPostingGroupResponse(group))
}

// listPostings handles GET /transactions
func (h *postingHandler) listPostings(c *gin.Context) {
	var params dto.ListPostingGroupsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.postingService.ListPostingGroups(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// reversePosting handles POST /transactions/:groupID/reverse
func (h *postingHandler) reversePosting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("groupID")
	userID := middleware.GetActorFromContext(c)

	reversing, err := h.postingService.ReversePostingGroup(c.Request.Context(), groupID, userID)
	if err != nil {
		respondWithError(c, err, "Failed to reverse transaction")
		return
	}

	logger.Info("Transaction reversed",
		slog.String("original_group_id", groupID),
		slog.String("reversing_group_id", reversing.GroupID))
	c.JSON(http.StatusCreated, dto.ToPostingGroupResponse(reversing))
}

// registerPostingRoutes registers transaction specific routes.
func registerPostingRoutes(group *gin.RouterGroup, postingSvc portssvc.PostingSvcFacade) {
	h := newPostingHandler(postingSvc)

	transactions := group.Group("/transactions")
	{
		transactions.POST("", h.createPosting)
		transactions.GET("", h.listPostings)
		transactions.GET("/:groupID", h.getPosting)
		transactions.POST("/:groupID/reverse", h.reversePosting)
	}
}
