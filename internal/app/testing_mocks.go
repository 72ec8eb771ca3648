//go:build unit
// +build unit

package app

import (
	"context"

	"github.com/ber-data/bertron-client/internal/domain/entities"

	"github.com/stretchr/testify/mock"
)

// MockEntityRepository is a mock implementation of EntityRepository
type MockEntityRepository struct {
	mock.Mock
}

func (m *MockEntityRepository) Create(ctx context.Context, entity *entities.Entity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockEntityRepository) List(ctx context.Context, query *entities.EntityQuery) ([]*entities.Entity, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Entity), args.Error(1)
}

func (m *MockEntityRepository) GetByID(ctx context.Context, entityID string) (*entities.Entity, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Entity), args.Error(1)
}

func (m *MockEntityRepository) Find(ctx context.Context, query *entities.FindQuery) ([]*entities.Entity, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Entity), args.Error(1)
}

func (m *MockEntityRepository) ListInBoundingBox(ctx context.Context, box *entities.BoundingBoxQuery) ([]*entities.Entity, error) {
	args := m.Called(ctx, box)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Entity), args.Error(1)
}

func (m *MockEntityRepository) DeleteByID(ctx context.Context, entityID string) error {
	args := m.Called(ctx, entityID)
	return args.Error(0)
}
