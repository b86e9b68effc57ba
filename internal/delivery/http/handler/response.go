package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/investmatch/backend/internal/domain"
)

// ErrorResponse is the common error envelope
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// currentUserID pulls the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (int, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return 0, false
	}
	return userID.(int), true
}

// respondDomainError maps the engine's error taxonomy onto HTTP statuses.
// Every entry leaves server state untouched, so all of them are safe for
// the client to surface and retry.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrQuotaExceeded):
		c.JSON(http.StatusTooManyRequests, ErrorResponse{
			Error: "daily swipe quota exceeded", Code: "QUOTA_EXCEEDED",
		})
	case errors.Is(err, domain.ErrInsufficientPoints):
		c.JSON(http.StatusPaymentRequired, ErrorResponse{
			Error: "not enough points", Code: "INSUFFICIENT_POINTS",
		})
	case errors.Is(err, domain.ErrInvalidTarget):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid swipe target", Code: "INVALID_TARGET",
		})
	case errors.Is(err, domain.ErrInvalidAction):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid swipe action", Code: "INVALID_ACTION",
		})
	case errors.Is(err, domain.ErrNothingToUndo):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: "no skip to undo", Code: "NOTHING_TO_UNDO",
		})
	case errors.Is(err, domain.ErrUndoWindowExpired):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: "undo window expired", Code: "UNDO_WINDOW_EXPIRED",
		})
	case errors.Is(err, domain.ErrWalletUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: "wallet unavailable, try again", Code: "WALLET_UNAVAILABLE",
		})
	case errors.Is(err, domain.ErrConcurrencyConflict):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: "conflicting update, refresh match state", Code: "CONCURRENCY_CONFLICT",
		})
	case errors.Is(err, domain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "profile not found", Code: "PROFILE_NOT_FOUND",
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "internal error",
		})
	}
}
