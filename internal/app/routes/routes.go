package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	searchController *controllers.SearchController,
	catalogController *controllers.CatalogController,
	healthController *controllers.HealthController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", healthController.Check)

	// Search routes
	v1.GET("/search", searchController.Search)

	// Catalog routes
	subjects := v1.Group("/subjects")
	{
		subjects.GET("", catalogController.GetAllSubjects)
	}

	offerings := v1.Group("/offerings")
	{
		offerings.GET("/:id", catalogController.GetOfferingByID)
	}

	v1.GET("/eval-metrics", catalogController.GetAllEvalMetrics)
}
