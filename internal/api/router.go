package api

import (
	"net/http"

	"land-valuation/internal/api/handlers"
	"land-valuation/internal/api/middleware"
	"land-valuation/internal/cache"
	"land-valuation/internal/config"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router
func NewRouter(env *config.Env) *gin.Engine {
	if env.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(env.AllowedOrigins))

	projectHandler := handlers.NewProjectHandler(env.ProjectDir)
	valuationHandler := handlers.NewValuationHandler(projectHandler, cache.NewSolveCache(env.SolveCacheTTL))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/evaluate", valuationHandler.Evaluate)
		api.POST("/solve", valuationHandler.Solve)
		api.POST("/residual", valuationHandler.Residual)
		api.POST("/scenarios", valuationHandler.Scenarios)

		api.GET("/projects", projectHandler.ListProjects)
		api.GET("/parameters", handlers.ListParameters)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	return router
}
