package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/investmatch/backend/internal/usecase/quota"
	"github.com/investmatch/backend/internal/usecase/swipe"
)

type SwipeHandler struct {
	swipeUseCase *swipe.SwipeUseCase
	quotaUseCase *quota.UseCase
}

func NewSwipeHandler(swipeUseCase *swipe.SwipeUseCase, quotaUseCase *quota.UseCase) *SwipeHandler {
	return &SwipeHandler{
		swipeUseCase: swipeUseCase,
		quotaUseCase: quotaUseCase,
	}
}

// CreateSwipe handles POST /swipes
// @Summary Record a swipe
// @Description Record a LIKE, DISLIKE or SKIP on a target profile
// @Tags swipes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body swipe.SwipeRequest true "Swipe data"
// @Success 200 {object} swipe.SwipeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /swipes [post]
func (h *SwipeHandler) CreateSwipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req swipe.SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.swipeUseCase.RecordSwipe(c.Request.Context(), userID, &req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UndoLastSkip handles POST /swipes/undo
// @Summary Undo the last skip
// @Description Reverse the most recent SKIP within the undo window, for points
// @Tags swipes
// @Security BearerAuth
// @Produce json
// @Success 200 {object} swipe.UndoResponse
// @Failure 401 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /swipes/undo [post]
func (h *SwipeHandler) UndoLastSkip(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.swipeUseCase.UndoLastSkip(c.Request.Context(), userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetQuotaStatus handles GET /swipes/quota
// @Summary Get quota status
// @Description Current day's quota usage plus the points policy
// @Tags swipes
// @Security BearerAuth
// @Produce json
// @Success 200 {object} quota.StatusResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /swipes/quota [get]
func (h *SwipeHandler) GetQuotaStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	status, err := h.quotaUseCase.Status(c.Request.Context(), userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
