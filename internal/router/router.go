package router

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/macrochef/backend/internal/api"
	"github.com/macrochef/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	healthHandler *api.HealthHandler,
	generateHandler *api.GenerateHandler,
	recipeHandler *api.RecipeHandler,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()

	router.Use(requestid.New())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	healthHandler.RegisterRoutes(router)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		generateHandler.RegisterRoutes(v1)
		recipeHandler.RegisterRoutes(v1)
	}

	return router
}
