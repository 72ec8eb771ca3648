package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ber-data/bertron-client/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

// EntityHandler defines the interface for handling entity-related operations
type EntityHandler interface {
	Health(ctx *gin.Context)
	ListAll(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Find(ctx *gin.Context)
	FindNearby(ctx *gin.Context)
	FindInBoundingBox(ctx *gin.Context)
	Ingest(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

// entityHandler struct holds the services
type entityHandler struct {
	queryService  entities.EntityQueryService
	ingestService entities.EntityIngestService
}

// NewEntityHandler creates a new EntityHandler
func NewEntityHandler(queryService entities.EntityQueryService, ingestService entities.EntityIngestService) EntityHandler {
	return &entityHandler{
		queryService:  queryService,
		ingestService: ingestService,
	}
}

// Health reports service liveness
func (handler *entityHandler) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: "bertron-api",
	})
}

// ListAll fetches all entities optionally filtered by query parameters
func (handler *entityHandler) ListAll(ctx *gin.Context) {
	query := entities.NewEntityQuery()

	if source := ctx.Query("source"); len(source) > 0 {
		query.Source = source
	}

	if entityType := ctx.Query("entity_type"); len(entityType) > 0 {
		query.EntityType = entityType
	}

	if name := ctx.Query("name"); len(name) > 0 {
		query.Name = name
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		if parsed, err := strconv.Atoi(limit); err == nil {
			query.Limit = parsed
		}
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		if parsed, err := strconv.Atoi(offset); err == nil {
			query.Offset = parsed
		}
	}

	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}

	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	if err := query.Validate(); err != nil {
		respondError(ctx, http.StatusBadRequest, fmt.Sprintf("validation failed: %v", err))
		return
	}

	list, err := handler.queryService.List(ctx, query)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, fmt.Sprintf("error listing entities: %v", err))
		return
	}

	respondDocuments(ctx, list, nil)
}

// GetByID fetches a single entity by its CURIE identifier
func (handler *entityHandler) GetByID(ctx *gin.Context) {
	entityID := ctx.Param("id")

	entity, err := handler.queryService.GetByID(ctx, entityID)
	if err != nil {
		if errors.Is(err, entities.ErrEntityNotFound) {
			respondError(ctx, http.StatusNotFound, fmt.Sprintf("entity with ID %s not found", entityID))
			return
		}
		respondError(ctx, http.StatusInternalServerError, fmt.Sprintf("error fetching entity: %v", err))
		return
	}

	doc, err := entityToDocument(entity)
	if err != nil {
		respondError(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, doc)
}

// Find evaluates a MongoDB-style query document
func (handler *entityHandler) Find(ctx *gin.Context) {
	query := entities.NewFindQuery()
	if err := ctx.ShouldBindJSON(query); err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid query document")
		return
	}
	if query.Filter == nil {
		query.Filter = map[string]interface{}{}
	}
	if query.Limit == 0 {
		query.Limit = 100
	}

	if err := query.Validate(); err != nil {
		respondError(ctx, http.StatusBadRequest, fmt.Sprintf("validation failed: %v", err))
		return
	}

	list, err := handler.queryService.Find(ctx, query)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, fmt.Sprintf("error finding entities: %v", err))
		return
	}

	respondDocuments(ctx, list, query.Projection)
}

// FindNearby fetches entities within a radius of a geographic point
func (handler *entityHandler) FindNearby(ctx *gin.Context) {
	latitude, err := parseFloatQuery(ctx, "latitude")
	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}
	longitude, err := parseFloatQuery(ctx, "longitude")
	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}
	radiusMeters, err := parseFloatQuery(ctx, "radius_meters")
	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	query := &entities.NearbyQuery{
		Latitude:     latitude,
		Longitude:    longitude,
		RadiusMeters: radiusMeters,
	}
	if err := query.Validate(); err != nil {
		respondError(ctx, http.StatusBadRequest, fmt.Sprintf("validation failed: %v", err))
		return
	}

	list, err := handler.queryService.FindNearby(ctx, query)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, fmt.Sprintf("error finding nearby entities: %v", err))
		return
	}

	respondDocuments(ctx, list, nil)
}

// FindInBoundingBox fetches entities inside a rectangular region
func (handler *entityHandler) FindInBoundingBox(ctx *gin.Context) {
	southwestLat, err := parseFloatQuery(ctx, "southwest_lat")
	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}
	southwestLng, err := parseFloatQuery(ctx, "southwest_lng")
	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}
	northeastLat, err := parseFloatQuery(ctx, "northeast_lat")
	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}
	northeastLng, err := parseFloatQuery(ctx, "northeast_lng")
	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	query := &entities.BoundingBoxQuery{
		SouthwestLat: southwestLat,
		SouthwestLng: southwestLng,
		NortheastLat: northeastLat,
		NortheastLng: northeastLng,
	}
	if err := query.Validate(); err != nil {
		respondError(ctx, http.StatusBadRequest, fmt.Sprintf("validation failed: %v", err))
		return
	}

	list, err := handler.queryService.FindInBoundingBox(ctx, query)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, fmt.Sprintf("error finding entities in bounding box: %v", err))
		return
	}

	respondDocuments(ctx, list, nil)
}

// Ingest persists a new entity document
func (handler *entityHandler) Ingest(ctx *gin.Context) {
	var entity entities.Entity
	if err := ctx.ShouldBindJSON(&entity); err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid entity document")
		return
	}

	created, err := handler.ingestService.Create(ctx, &entity)
	if err != nil {
		if errors.Is(err, entities.ErrDuplicateEntity) {
			respondError(ctx, http.StatusConflict, fmt.Sprintf("entity with ID %s already exists", entity.ID))
			return
		}
		respondError(ctx, http.StatusBadRequest, fmt.Sprintf("error ingesting entity: %v", err))
		return
	}

	doc, err := entityToDocument(created)
	if err != nil {
		respondError(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	ctx.JSON(http.StatusCreated, doc)
}

// DeleteByID removes an entity by its CURIE identifier
func (handler *entityHandler) DeleteByID(ctx *gin.Context) {
	entityID := ctx.Param("id")

	if err := handler.ingestService.DeleteByID(ctx, entityID); err != nil {
		if errors.Is(err, entities.ErrEntityNotFound) {
			respondError(ctx, http.StatusNotFound, fmt.Sprintf("entity with ID %s not found", entityID))
			return
		}
		respondError(ctx, http.StatusInternalServerError, fmt.Sprintf("error deleting entity: %v", err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

func respondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, ErrorResponse{Message: message})
}

func respondDocuments(ctx *gin.Context, list []*entities.Entity, projection map[string]int) {
	response, err := NewQueryResponse(list, projection)
	if err != nil {
		respondError(ctx, http.StatusInternalServerError, err.Error())
		return
	}
	ctx.JSON(http.StatusOK, response)
}

func parseFloatQuery(ctx *gin.Context, name string) (float64, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, fmt.Errorf("missing required query parameter: %s", name)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for query parameter %s", name)
	}
	return value, nil
}
