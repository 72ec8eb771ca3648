package models

import (
	"encoding/json"
	"time"

	"github.com/ber-data/bertron-client/internal/domain/entities"
)

// EntityModel is the GORM database model for entities (infrastructure concern)
type EntityModel struct {
	ID               string    `gorm:"primaryKey;type:varchar(255)"`
	Name             string    `gorm:"not null;type:varchar(512);index"`
	Description      string    `gorm:"type:text"`
	BerDataSource    string    `gorm:"not null;index;type:varchar(50)"`
	EntityTypes      string    `gorm:"column:entity_type;not null"` // JSON-encoded list
	Latitude         float64   `gorm:"not null;index"`
	Longitude        float64   `gorm:"not null;index"`
	URI              string    `gorm:"not null;type:varchar(2048)"`
	AltIDs           string    `gorm:"column:alt_ids"` // JSON-encoded list
	PartOfCollection *string   `gorm:"type:varchar(255)"`
	DateTimeCreated  time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (EntityModel) TableName() string {
	return "entities"
}

// ToDomain converts GORM model to domain entity
func (m *EntityModel) ToDomain() *entities.Entity {
	var entityTypes []string
	_ = json.Unmarshal([]byte(m.EntityTypes), &entityTypes)

	var altIDs []string
	if m.AltIDs != "" {
		_ = json.Unmarshal([]byte(m.AltIDs), &altIDs)
	}

	return &entities.Entity{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		BerDataSource: m.BerDataSource,
		EntityType:    entityTypes,
		Coordinates: &entities.Coordinates{
			Latitude:  m.Latitude,
			Longitude: m.Longitude,
		},
		URI:              m.URI,
		AltIDs:           altIDs,
		PartOfCollection: m.PartOfCollection,
		DateTimeCreated:  m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *EntityModel) FromDomain(e *entities.Entity) {
	entityTypes, _ := json.Marshal(e.EntityType)

	m.ID = e.ID
	m.Name = e.Name
	m.Description = e.Description
	m.BerDataSource = e.BerDataSource
	m.EntityTypes = string(entityTypes)
	if e.Coordinates != nil {
		m.Latitude = e.Coordinates.Latitude
		m.Longitude = e.Coordinates.Longitude
	}
	m.URI = e.URI
	if len(e.AltIDs) > 0 {
		altIDs, _ := json.Marshal(e.AltIDs)
		m.AltIDs = string(altIDs)
	} else {
		m.AltIDs = ""
	}
	m.PartOfCollection = e.PartOfCollection
	m.DateTimeCreated = e.DateTimeCreated
}
