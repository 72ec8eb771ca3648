package v1

import (
	"github.com/ber-data/bertron-client/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	queryService entities.EntityQueryService,
	ingestService entities.EntityIngestService) {

	v1 := r.Group(BasePath) // lookup in version file

	entityHandler := NewEntityHandler(queryService, ingestService)
	v1.GET("/health", entityHandler.Health)
	v1.GET("", entityHandler.ListAll)
	v1.POST("", entityHandler.Ingest)
	v1.POST("/find", entityHandler.Find)
	v1.GET("/geo/nearby", entityHandler.FindNearby)
	v1.GET("/geo/bbox", entityHandler.FindInBoundingBox)
	v1.GET("/:id", entityHandler.GetByID)
	v1.DELETE("/:id", entityHandler.DeleteByID)
}
