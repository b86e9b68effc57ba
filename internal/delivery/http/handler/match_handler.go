package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/investmatch/backend/internal/usecase/swipe"
)

const defaultMatchLimit = 50

type MatchHandler struct {
	swipeUseCase *swipe.SwipeUseCase
}

func NewMatchHandler(swipeUseCase *swipe.SwipeUseCase) *MatchHandler {
	return &MatchHandler{
		swipeUseCase: swipeUseCase,
	}
}

// GetMatches handles GET /matches
// @Summary Get my matches
// @Description List the current user's matches, newest first
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Max matches to return" default(50)
// @Param offset query int false "Offset for paging" default(0)
// @Success 200 {array} swipe.MatchResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /matches [get]
func (h *MatchHandler) GetMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit := defaultMatchLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	matches, err := h.swipeUseCase.GetMatches(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches": matches,
		"count":   len(matches),
	})
}
