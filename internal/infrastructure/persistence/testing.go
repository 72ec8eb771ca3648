//go:build integration
// +build integration

package persistence

import (
	"fmt"
	"testing"
	"time"

	"github.com/ber-data/bertron-client/internal/domain/entities"
	"github.com/ber-data/bertron-client/internal/infrastructure/persistence/models"
	"github.com/ber-data/bertron-client/internal/pkg/config"
	"github.com/ber-data/bertron-client/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB         *gorm.DB
	EntityRepo entities.EntityRepository
}

// SetupTestDB creates an in-memory database with migrated schema and a
// wired entity repository.
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	log := testutil.SetupTestLogger(t)

	settings := config.DatabaseSettings{Type: dbType}
	db, err := NewDBConnection(settings)
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := CloseDB(db); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	err = db.AutoMigrate(&models.EntityModel{})
	require.NoError(t, err)

	repo, err := NewGormEntityRepository(db, log)
	require.NoError(t, err)

	return &TestContext{
		DB:         db,
		EntityRepo: repo,
	}
}

// CreateTestEntity returns a valid entity with a unique CURIE identifier.
func CreateTestEntity(t *testing.T) *entities.Entity {
	t.Helper()
	return CreateTestEntityWithOptions(t, entities.SourceNMDC, entities.TypeSample, 44.42, -110.58)
}

// CreateTestEntityWithOptions returns a valid entity with the given source,
// type and location.
func CreateTestEntityWithOptions(t *testing.T, source, entityType string, lat, lng float64) *entities.Entity {
	t.Helper()

	id := uuid.NewString()
	return &entities.Entity{
		ID:              fmt.Sprintf("test:%s", id),
		Name:            fmt.Sprintf("Test entity %s", id[:8]),
		BerDataSource:   source,
		EntityType:      []string{entityType},
		Coordinates:     &entities.Coordinates{Latitude: lat, Longitude: lng},
		URI:             fmt.Sprintf("https://example.org/records/%s", id),
		DateTimeCreated: time.Now().UTC().Truncate(time.Second),
	}
}
