//go:build unit
// +build unit

package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityQueryValidation(t *testing.T) {
	tests := []struct {
		name          string
		query         *EntityQuery
		expectedError bool
	}{
		{
			name:          "defaults are valid",
			query:         NewEntityQuery(),
			expectedError: false,
		},
		{
			name:          "valid source filter",
			query:         &EntityQuery{Source: SourceEMSL, Limit: 10},
			expectedError: false,
		},
		{
			name:          "unknown source",
			query:         &EntityQuery{Source: "KBASE"},
			expectedError: true,
		},
		{
			name:          "unknown entity type",
			query:         &EntityQuery{EntityType: "organism"},
			expectedError: true,
		},
		{
			name:          "limit too large",
			query:         &EntityQuery{Limit: 10000},
			expectedError: true,
		},
		{
			name:          "unsupported sort column",
			query:         &EntityQuery{SortBy: "uri"},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.expectedError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestFindQueryValidation(t *testing.T) {
	tests := []struct {
		name          string
		query         *FindQuery
		expectedError bool
	}{
		{
			name:          "defaults are valid",
			query:         NewFindQuery(),
			expectedError: false,
		},
		{
			name: "valid sort and projection",
			query: &FindQuery{
				Filter:     map[string]interface{}{"ber_data_source": SourceJGI},
				Sort:       map[string]int{"name": 1},
				Projection: map[string]int{"name": 1, "uri": 1},
				Limit:      50,
			},
			expectedError: false,
		},
		{
			name:          "negative skip",
			query:         &FindQuery{Skip: -1, Limit: 10},
			expectedError: true,
		},
		{
			name:          "zero limit",
			query:         &FindQuery{Limit: 0},
			expectedError: true,
		},
		{
			name: "invalid sort direction",
			query: &FindQuery{
				Limit: 10,
				Sort:  map[string]int{"name": 2},
			},
			expectedError: true,
		},
		{
			name: "mixed projection",
			query: &FindQuery{
				Limit:      10,
				Projection: map[string]int{"name": 1, "uri": 0},
			},
			expectedError: true,
		},
		{
			name: "id exclusion alongside includes",
			query: &FindQuery{
				Limit:      10,
				Projection: map[string]int{"id": 0, "name": 1},
			},
			expectedError: false,
		},
		{
			name: "id-only inclusion",
			query: &FindQuery{
				Limit:      10,
				Projection: map[string]int{"id": 1},
			},
			expectedError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.expectedError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNearbyQueryValidation(t *testing.T) {
	valid := &NearbyQuery{Latitude: 28.1, Longitude: -81.4, RadiusMeters: 100000}
	require.NoError(t, valid.Validate())

	invalid := []*NearbyQuery{
		{Latitude: 91, Longitude: 0, RadiusMeters: 100},
		{Latitude: 0, Longitude: 181, RadiusMeters: 100},
		{Latitude: 0, Longitude: 0, RadiusMeters: 0},
		{Latitude: 0, Longitude: 0, RadiusMeters: -5},
	}
	for _, q := range invalid {
		require.Error(t, q.Validate())
	}
}

func TestBoundingBoxQueryValidation(t *testing.T) {
	valid := &BoundingBoxQuery{SouthwestLat: 44, SouthwestLng: -125, NortheastLat: 49, NortheastLng: -110}
	require.NoError(t, valid.Validate())

	inverted := &BoundingBoxQuery{SouthwestLat: 50, SouthwestLng: -125, NortheastLat: 49, NortheastLng: -110}
	require.Error(t, inverted.Validate())
}

func TestBoundingBoxContainsLongitude(t *testing.T) {
	box := &BoundingBoxQuery{SouthwestLat: -10, SouthwestLng: -125, NortheastLat: 10, NortheastLng: -110}
	assert.True(t, box.ContainsLongitude(-120))
	assert.False(t, box.ContainsLongitude(-130))

	// Box crossing the antimeridian: 170E to 170W
	wrapped := &BoundingBoxQuery{SouthwestLat: -10, SouthwestLng: 170, NortheastLat: 10, NortheastLng: -170}
	assert.True(t, wrapped.CrossesAntimeridian())
	assert.True(t, wrapped.ContainsLongitude(175))
	assert.True(t, wrapped.ContainsLongitude(-175))
	assert.False(t, wrapped.ContainsLongitude(0))
}
