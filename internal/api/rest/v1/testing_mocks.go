//go:build unit
// +build unit

package v1

import (
	"context"

	"github.com/ber-data/bertron-client/internal/domain/entities"

	"github.com/stretchr/testify/mock"
)

// MockEntityQueryService is a mock implementation of EntityQueryService
type MockEntityQueryService struct {
	mock.Mock
}

func (m *MockEntityQueryService) List(ctx context.Context, query *entities.EntityQuery) ([]*entities.Entity, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Entity), args.Error(1)
}

func (m *MockEntityQueryService) GetByID(ctx context.Context, entityID string) (*entities.Entity, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Entity), args.Error(1)
}

func (m *MockEntityQueryService) Find(ctx context.Context, query *entities.FindQuery) ([]*entities.Entity, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Entity), args.Error(1)
}

func (m *MockEntityQueryService) FindNearby(ctx context.Context, query *entities.NearbyQuery) ([]*entities.Entity, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Entity), args.Error(1)
}

func (m *MockEntityQueryService) FindInBoundingBox(ctx context.Context, query *entities.BoundingBoxQuery) ([]*entities.Entity, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Entity), args.Error(1)
}

// MockEntityIngestService is a mock implementation of EntityIngestService
type MockEntityIngestService struct {
	mock.Mock
}

func (m *MockEntityIngestService) Create(ctx context.Context, entity *entities.Entity) (*entities.Entity, error) {
	args := m.Called(ctx, entity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Entity), args.Error(1)
}

func (m *MockEntityIngestService) DeleteByID(ctx context.Context, entityID string) error {
	args := m.Called(ctx, entityID)
	return args.Error(0)
}
