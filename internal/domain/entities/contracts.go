package entities

import (
	"context"
)

// EntityQueryService defines read operations over the entity store.
type EntityQueryService interface {
	// List retrieves entities considering a query filter when set.
	List(ctx context.Context, query *EntityQuery) ([]*Entity, error)

	// GetByID retrieves a single entity by its CURIE identifier.
	// It returns ErrEntityNotFound when no entity matches.
	GetByID(ctx context.Context, entityID string) (*Entity, error)

	// Find evaluates a MongoDB-style query document against the store.
	Find(ctx context.Context, query *FindQuery) ([]*Entity, error)

	// FindNearby retrieves entities within the given radius of a point,
	// sorted ascending by great-circle distance.
	FindNearby(ctx context.Context, query *NearbyQuery) ([]*Entity, error)

	// FindInBoundingBox retrieves entities inside a rectangular region.
	FindInBoundingBox(ctx context.Context, query *BoundingBoxQuery) ([]*Entity, error)
}

// EntityIngestService defines write operations over the entity store.
type EntityIngestService interface {
	// Create persists a new entity. When the entity has no ID a UUID-based
	// one is assigned. It returns ErrDuplicateEntity on ID collisions.
	Create(ctx context.Context, entity *Entity) (*Entity, error)

	// DeleteByID removes an entity. It returns ErrEntityNotFound when no
	// entity matches.
	DeleteByID(ctx context.Context, entityID string) error
}

// EntityRepository defines the interface for entity persistence operations
type EntityRepository interface {
	// Create adds a new Entity to the database
	Create(ctx context.Context, entity *Entity) error
	// List lists Entities in the database with optional filter
	List(ctx context.Context, query *EntityQuery) ([]*Entity, error)
	// GetByID retrieves an Entity from the database by ID
	GetByID(ctx context.Context, entityID string) (*Entity, error)
	// Find evaluates a MongoDB-style query document
	Find(ctx context.Context, query *FindQuery) ([]*Entity, error)
	// ListInBoundingBox retrieves entities inside a rectangular region
	ListInBoundingBox(ctx context.Context, box *BoundingBoxQuery) ([]*Entity, error)
	// DeleteByID deletes an Entity in the database by ID
	DeleteByID(ctx context.Context, entityID string) error
}
