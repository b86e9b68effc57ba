package http

import (
	"github.com/gin-gonic/gin"
	"github.com/investmatch/backend/internal/delivery/http/handler"
	"github.com/investmatch/backend/internal/delivery/http/middleware"
)

type Router struct {
	feedHandler    *handler.FeedHandler
	swipeHandler   *handler.SwipeHandler
	matchHandler   *handler.MatchHandler
	authMiddleware *middleware.AuthMiddleware
}

func NewRouter(
	feedHandler *handler.FeedHandler,
	swipeHandler *handler.SwipeHandler,
	matchHandler *handler.MatchHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		feedHandler:    feedHandler,
		swipeHandler:   swipeHandler,
		matchHandler:   matchHandler,
		authMiddleware: authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Feed routes
			feed := protected.Group("/feed")
			{
				feed.GET("/candidates", r.feedHandler.GetCandidates)
			}

			// Swipe routes
			swipes := protected.Group("/swipes")
			{
				swipes.POST("", r.swipeHandler.CreateSwipe)
				swipes.POST("/undo", r.swipeHandler.UndoLastSkip)
				swipes.GET("/quota", r.swipeHandler.GetQuotaStatus)
			}

			// Match routes
			matches := protected.Group("/matches")
			{
				matches.GET("", r.matchHandler.GetMatches)
			}
		}
	}

	return router
}
