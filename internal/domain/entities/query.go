package entities

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// EntityQuery filters entity listings.
type EntityQuery struct {
	Source     string `validate:"omitempty,oneof=EMSL ESS-DIVE JGI NMDC MONET"`
	EntityType string `validate:"omitempty,oneof=biodata sample sequence taxon jgi_biosample"`
	Name       string `validate:"omitempty,max=512"`
	Limit      int    `validate:"omitempty,min=1,max=1000"`
	Offset     int    `validate:"omitempty,min=0"`
	SortBy     string `validate:"omitempty,oneof=id name ber_data_source date_time_created"`
	SortOrder  string `validate:"omitempty,oneof=asc desc"`
}

// NewEntityQuery creates an EntityQuery with sensible pagination defaults.
func NewEntityQuery() *EntityQuery {
	return &EntityQuery{
		Limit:  100,
		Offset: 0,
	}
}

// Validate checks that all fields in EntityQuery are valid
func (q *EntityQuery) Validate() error {
	validate := validator.New()
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed for EntityQuery: %w", err)
	}
	return nil
}

// FindQuery is a MongoDB-style query document as accepted by the find
// endpoint: filter criteria, optional projection, pagination and sorting.
type FindQuery struct {
	Filter     map[string]interface{} `json:"filter"`
	Projection map[string]int         `json:"projection,omitempty"`
	Skip       int                    `json:"skip"`
	Limit      int                    `json:"limit"`
	Sort       map[string]int         `json:"sort,omitempty"`
}

// NewFindQuery creates a FindQuery with an empty filter and default paging.
func NewFindQuery() *FindQuery {
	return &FindQuery{
		Filter: map[string]interface{}{},
		Skip:   0,
		Limit:  100,
	}
}

// Validate checks pagination bounds, sort directions and projection shape.
func (q *FindQuery) Validate() error {
	if q.Skip < 0 {
		return errors.New("skip must not be negative")
	}
	if q.Limit < 1 || q.Limit > 1000 {
		return errors.New("limit must be between 1 and 1000")
	}

	for field, direction := range q.Sort {
		if direction != 1 && direction != -1 {
			return fmt.Errorf("sort direction for %q must be 1 or -1", field)
		}
	}

	// Mongo projections are either inclusive or exclusive; only the id
	// field may deviate from the projection mode.
	includes, excludes := 0, 0
	for field, mode := range q.Projection {
		switch mode {
		case 1:
			if field != "id" {
				includes++
			}
		case 0:
			if field != "id" {
				excludes++
			}
		default:
			return fmt.Errorf("projection value for %q must be 0 or 1", field)
		}
	}
	if includes > 0 && excludes > 0 {
		return errors.New("projection cannot mix inclusion and exclusion")
	}

	return nil
}

// NearbyQuery describes a radius search around a geographic point.
type NearbyQuery struct {
	Latitude     float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude    float64 `json:"longitude" validate:"gte=-180,lte=180"`
	RadiusMeters float64 `json:"radius_meters" validate:"gt=0"`
}

// Validate checks that all fields in NearbyQuery are valid
func (q *NearbyQuery) Validate() error {
	validate := validator.New()
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed for NearbyQuery: %w", err)
	}
	return nil
}

// BoundingBoxQuery describes a rectangular geographic search region.
// Boxes crossing the antimeridian are expressed with SouthwestLng greater
// than NortheastLng.
type BoundingBoxQuery struct {
	SouthwestLat float64 `json:"southwest_lat" validate:"gte=-90,lte=90"`
	SouthwestLng float64 `json:"southwest_lng" validate:"gte=-180,lte=180"`
	NortheastLat float64 `json:"northeast_lat" validate:"gte=-90,lte=90"`
	NortheastLng float64 `json:"northeast_lng" validate:"gte=-180,lte=180"`
}

// Validate checks that all fields in BoundingBoxQuery are valid
func (q *BoundingBoxQuery) Validate() error {
	validate := validator.New()
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed for BoundingBoxQuery: %w", err)
	}
	if q.SouthwestLat > q.NortheastLat {
		return errors.New("southwest_lat must not exceed northeast_lat")
	}
	return nil
}

// CrossesAntimeridian reports whether the box wraps the 180th meridian.
func (q *BoundingBoxQuery) CrossesAntimeridian() bool {
	return q.SouthwestLng > q.NortheastLng
}

// ContainsLongitude reports whether the given longitude falls inside the
// box, accounting for antimeridian wrapping.
func (q *BoundingBoxQuery) ContainsLongitude(lng float64) bool {
	if q.CrossesAntimeridian() {
		return lng >= q.SouthwestLng || lng <= q.NortheastLng
	}
	return lng >= q.SouthwestLng && lng <= q.NortheastLng
}
