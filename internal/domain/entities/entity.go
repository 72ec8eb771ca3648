package entities

import (
	"errors"
	"fmt"
	"time"

	"github.com/ber-data/bertron-client/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// Coordinates is a geographic point in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// Entity is a cross-BER integration record as defined by bertron-schema.
type Entity struct {
	ID               string       `json:"id" validate:"required,curie"`
	Name             string       `json:"name" validate:"required,min=1,max=512"`
	Description      string       `json:"description,omitempty"`
	BerDataSource    string       `json:"ber_data_source" validate:"required,oneof=EMSL ESS-DIVE JGI NMDC MONET"`
	EntityType       []string     `json:"entity_type" validate:"required,min=1,dive,oneof=biodata sample sequence taxon jgi_biosample"`
	Coordinates      *Coordinates `json:"coordinates" validate:"required"`
	URI              string       `json:"uri" validate:"required,uri"`
	AltIDs           []string     `json:"alt_ids,omitempty"`
	PartOfCollection *string      `json:"part_of_collection,omitempty"`
	DateTimeCreated  time.Time    `json:"date_time_created,omitempty"`
}

// Validate for validating Entity struct
func (e *Entity) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("curie", validators.CurieValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	err := validate.Struct(e)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// HasEntityType reports whether the entity carries the given type.
func (e *Entity) HasEntityType(entityType string) bool {
	for _, t := range e.EntityType {
		if t == entityType {
			return true
		}
	}
	return false
}
