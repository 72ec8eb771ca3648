package client

import (
	"fmt"

	"github.com/ber-data/bertron-client/internal/domain/entities"
)

// Query type constants for QueryResponse.QueryType
const (
	QueryTypeGeospatialNearby      = "geospatial_nearby"
	QueryTypeGeospatialBoundingBox = "geospatial_bounding_box"
)

// QueryResponse represents a response from the BERtron API.
type QueryResponse struct {
	Entities  []*entities.Entity
	Count     int
	QueryType string
	Metadata  map[string]interface{}
}

// HealthStatus is the server liveness report.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// EntitySummary aggregates entity counts per BER data source and per
// entity type.
type EntitySummary struct {
	Total        int
	BySource     map[string]int
	ByEntityType map[string]int
}

// APIError is returned for failed BERtron API requests. A zero
// StatusCode indicates a transport-level failure.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("API request failed: %s", e.Message)
	}
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Message)
}

// Unwrap exposes the underlying transport error when present.
func (e *APIError) Unwrap() error {
	return e.Err
}

// documentsEnvelope is the wire format of collection endpoints.
type documentsEnvelope struct {
	Documents []*entities.Entity `json:"documents"`
	Count     int                `json:"count"`
}

// errorEnvelope is the wire format of error responses.
type errorEnvelope struct {
	Message string `json:"message"`
}
