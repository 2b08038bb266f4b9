package http

import (
	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

// NewRouter mounts every route under /api.
func NewRouter(portfolioHandler *PortfolioHandler, healthHandler *HealthHandler, log logger.Logger, isProduction bool) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))
	router.Use(ErrorMiddleware(log, isProduction))

	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.Health)

		api.POST("/portfolio", portfolioHandler.SubmitPortfolio)
		api.GET("/portfolio", portfolioHandler.MissingOwnerID)
		api.GET("/portfolio/:ownerId", portfolioHandler.GetPortfolio)
	}
	return router
}
