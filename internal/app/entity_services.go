// Package app contains the application services coordinating entity
// queries and ingestion between the API layer and the entity store.
package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ber-data/bertron-client/internal/domain/entities"
	"github.com/ber-data/bertron-client/internal/pkg/geo"
	"github.com/ber-data/bertron-client/internal/pkg/logger"

	"github.com/google/uuid"
)

// entityQueryService implements the EntityQueryService interface over a repository
type entityQueryService struct {
	entityRepo entities.EntityRepository
	logger     logger.Logger
}

// NewEntityQueryService creates a new instance of EntityQueryService
func NewEntityQueryService(entityRepo entities.EntityRepository, logger logger.Logger) (entities.EntityQueryService, error) {
	return &entityQueryService{
		entityRepo: entityRepo,
		logger:     logger,
	}, nil
}

// List retrieves entities considering a query filter when set.
func (s *entityQueryService) List(ctx context.Context, query *entities.EntityQuery) ([]*entities.Entity, error) {
	list, err := s.entityRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	return list, nil
}

// GetByID retrieves a single entity by its CURIE identifier.
func (s *entityQueryService) GetByID(ctx context.Context, entityID string) (*entities.Entity, error) {
	entity, err := s.entityRepo.GetByID(ctx, entityID)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// Find evaluates a MongoDB-style query document against the store.
func (s *entityQueryService) Find(ctx context.Context, query *entities.FindQuery) ([]*entities.Entity, error) {
	list, err := s.entityRepo.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find entities: %w", err)
	}
	return list, nil
}

// FindNearby retrieves entities within the given radius of a point, sorted
// ascending by great-circle distance. The repository prefilters with a
// bounding box enclosing the circle; the exact haversine cut happens here.
func (s *entityQueryService) FindNearby(ctx context.Context, query *entities.NearbyQuery) ([]*entities.Entity, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	minLat, minLng, maxLat, maxLng := geo.BoundingBoxForRadius(query.Latitude, query.Longitude, query.RadiusMeters)
	box := &entities.BoundingBoxQuery{
		SouthwestLat: minLat,
		SouthwestLng: minLng,
		NortheastLat: maxLat,
		NortheastLng: maxLng,
	}

	candidates, err := s.entityRepo.ListInBoundingBox(ctx, box)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nearby candidates: %w", err)
	}

	type entityDistance struct {
		entity   *entities.Entity
		distance float64
	}

	matches := make([]entityDistance, 0, len(candidates))
	for _, entity := range candidates {
		d := geo.Haversine(query.Latitude, query.Longitude, entity.Coordinates.Latitude, entity.Coordinates.Longitude)
		if d <= query.RadiusMeters {
			matches = append(matches, entityDistance{entity: entity, distance: d})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].distance < matches[j].distance
	})

	result := make([]*entities.Entity, len(matches))
	for i, m := range matches {
		result[i] = m.entity
	}

	s.logger.Info("Found ", len(result), " entities within ", query.RadiusMeters, "m")
	return result, nil
}

// FindInBoundingBox retrieves entities inside a rectangular region.
func (s *entityQueryService) FindInBoundingBox(ctx context.Context, query *entities.BoundingBoxQuery) ([]*entities.Entity, error) {
	list, err := s.entityRepo.ListInBoundingBox(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entities in bounding box: %w", err)
	}
	return list, nil
}

// entityIngestService implements the EntityIngestService interface over a repository
type entityIngestService struct {
	entityRepo entities.EntityRepository
	logger     logger.Logger
}

// NewEntityIngestService creates a new instance of EntityIngestService
func NewEntityIngestService(entityRepo entities.EntityRepository, logger logger.Logger) (entities.EntityIngestService, error) {
	return &entityIngestService{
		entityRepo: entityRepo,
		logger:     logger,
	}, nil
}

// Create persists a new entity, assigning a UUID-based identifier and a
// creation timestamp when the document carries none.
func (s *entityIngestService) Create(ctx context.Context, entity *entities.Entity) (*entities.Entity, error) {
	if entity.ID == "" {
		entity.ID = fmt.Sprintf("bertron:%s", uuid.NewString())
	}
	if entity.DateTimeCreated.IsZero() {
		entity.DateTimeCreated = time.Now().UTC()
	}

	if err := entity.Validate(); err != nil {
		return nil, err
	}

	if err := s.entityRepo.Create(ctx, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

// DeleteByID removes an entity from the store.
func (s *entityIngestService) DeleteByID(ctx context.Context, entityID string) error {
	return s.entityRepo.DeleteByID(ctx, entityID)
}
