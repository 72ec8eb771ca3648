//go:build unit
// +build unit

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ber-data/bertron-client/internal/domain/entities"
	"github.com/ber-data/bertron-client/internal/pkg/config"
	"github.com/ber-data/bertron-client/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*BertronClient, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	settings := &config.ClientSettings{
		BaseURL:        server.URL,
		TimeoutSeconds: 5,
	}
	c, err := NewBertronClient(settings, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(c.Close)

	return c, server
}

func wireEntity(id, source string) map[string]interface{} {
	return map[string]interface{}{
		"id":              id,
		"name":            "Entity " + id,
		"ber_data_source": source,
		"entity_type":     []string{"sample"},
		"coordinates":     map[string]float64{"latitude": 44.42, "longitude": -110.58},
		"uri":             "https://example.org/records/1",
	}
}

func writeDocuments(t *testing.T, w http.ResponseWriter, docs ...map[string]interface{}) {
	t.Helper()
	err := json.NewEncoder(w).Encode(map[string]interface{}{
		"documents": docs,
		"count":     len(docs),
	})
	require.NoError(t, err)
}

func TestBertronClient_Health(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy", "service": "bertron-api"})
	}))

	status, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "bertron-api", status.Service)
}

func TestBertronClient_GetAllEntities(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		writeDocuments(t, w, wireEntity("emsl:1", "EMSL"), wireEntity("jgi:2", "JGI"))
	}))

	response, err := c.GetAllEntities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, response.Count)
	require.Len(t, response.Entities, 2)
	assert.Equal(t, "emsl:1", response.Entities[0].ID)
	require.NotNil(t, response.Entities[0].Coordinates)
	assert.Equal(t, 44.42, response.Entities[0].Coordinates.Latitude)
}

func TestBertronClient_GetEntityByID(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nmdc:bsm-11-002vgm56", r.URL.Path)
		_ = json.NewEncoder(w).Encode(wireEntity("nmdc:bsm-11-002vgm56", "NMDC"))
	}))

	entity, err := c.GetEntityByID(context.Background(), "nmdc:bsm-11-002vgm56")
	require.NoError(t, err)
	assert.Equal(t, "nmdc:bsm-11-002vgm56", entity.ID)
	assert.Equal(t, entities.SourceNMDC, entity.BerDataSource)
}

func TestBertronClient_GetEntityByID_NotFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "entity with ID nmdc:missing not found"})
	}))

	_, err := c.GetEntityByID(context.Background(), "nmdc:missing")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "not found")
}

func TestBertronClient_FindEntities_SendsQueryDocument(t *testing.T) {
	var received entities.FindQuery

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/find", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		writeDocuments(t, w, wireEntity("emsl:1", "EMSL"))
	}))

	query := entities.NewFindQuery()
	query.Filter = map[string]interface{}{"ber_data_source": "EMSL"}
	query.Sort = map[string]int{"name": -1}
	query.Skip = 10

	response, err := c.FindEntities(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, 1, response.Count)

	assert.Equal(t, map[string]interface{}{"ber_data_source": "EMSL"}, received.Filter)
	assert.Equal(t, map[string]int{"name": -1}, received.Sort)
	assert.Equal(t, 10, received.Skip)
	assert.Equal(t, 100, received.Limit)
}

func TestBertronClient_FindEntitiesBySource(t *testing.T) {
	var received entities.FindQuery

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		writeDocuments(t, w)
	}))

	_, err := c.FindEntitiesBySource(context.Background(), entities.SourceEMSL)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"ber_data_source": "EMSL"}, received.Filter)
}

func TestBertronClient_SearchEntitiesByName_CaseInsensitiveByDefault(t *testing.T) {
	var received entities.FindQuery

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		writeDocuments(t, w)
	}))

	_, err := c.SearchEntitiesByName(context.Background(), "soil", false)
	require.NoError(t, err)

	nameFilter, ok := received.Filter["name"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "soil", nameFilter["$regex"])
	assert.Equal(t, "i", nameFilter["$options"])
}

func TestBertronClient_SearchEntitiesByName_CaseSensitive(t *testing.T) {
	var received entities.FindQuery

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		writeDocuments(t, w)
	}))

	_, err := c.SearchEntitiesByName(context.Background(), "Soil", true)
	require.NoError(t, err)

	nameFilter, ok := received.Filter["name"].(map[string]interface{})
	require.True(t, ok)
	assert.NotContains(t, nameFilter, "$options")
}

func TestBertronClient_FindNearbyEntities(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geo/nearby", r.URL.Path)
		assert.Equal(t, "44.42", r.URL.Query().Get("latitude"))
		assert.Equal(t, "-110.58", r.URL.Query().Get("longitude"))
		assert.Equal(t, "10000", r.URL.Query().Get("radius_meters"))
		writeDocuments(t, w, wireEntity("nmdc:near", "NMDC"))
	}))

	response, err := c.FindNearbyEntities(context.Background(), 44.42, -110.58, 10000)
	require.NoError(t, err)
	assert.Equal(t, 1, response.Count)
	assert.Equal(t, QueryTypeGeospatialNearby, response.QueryType)

	center, ok := response.Metadata["center"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 44.42, center["latitude"])
	assert.Equal(t, 10000.0, response.Metadata["radius_meters"])
}

func TestBertronClient_GetEntitiesInRegion_ConvertsKilometers(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100000", r.URL.Query().Get("radius_meters"))
		writeDocuments(t, w)
	}))

	_, err := c.GetEntitiesInRegion(context.Background(), 28.1, -81.4, 100)
	require.NoError(t, err)
}

func TestBertronClient_FindEntitiesInBoundingBox(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geo/bbox", r.URL.Path)
		assert.Equal(t, "44", r.URL.Query().Get("southwest_lat"))
		assert.Equal(t, "-125", r.URL.Query().Get("southwest_lng"))
		assert.Equal(t, "49", r.URL.Query().Get("northeast_lat"))
		assert.Equal(t, "-110", r.URL.Query().Get("northeast_lng"))
		writeDocuments(t, w, wireEntity("essdive:1", "ESS-DIVE"))
	}))

	response, err := c.FindEntitiesInBoundingBox(context.Background(), 44, -125, 49, -110)
	require.NoError(t, err)
	assert.Equal(t, QueryTypeGeospatialBoundingBox, response.QueryType)

	box, ok := response.Metadata["bounding_box"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, box, "southwest")
	assert.Contains(t, box, "northeast")
}

func TestBertronClient_CreateEntity(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/", r.URL.Path)

		var received entities.Entity
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		received.ID = "bertron:assigned"

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(&received)
	}))

	entity := &entities.Entity{
		Name:          "New sample",
		BerDataSource: entities.SourceMONET,
		EntityType:    []string{entities.TypeSample},
		Coordinates:   &entities.Coordinates{Latitude: 28.1, Longitude: -81.4},
		URI:           "https://example.org/records/new",
	}

	created, err := c.CreateEntity(context.Background(), entity)
	require.NoError(t, err)
	assert.Equal(t, "bertron:assigned", created.ID)
	assert.Equal(t, "New sample", created.Name)
}

func TestBertronClient_DeleteEntity(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/emsl:gone", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	err := c.DeleteEntity(context.Background(), "emsl:gone")
	require.NoError(t, err)
}

func TestBertronClient_Summarize(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		emsl := wireEntity("emsl:1", "EMSL")
		emsl["entity_type"] = []string{"sample", "biodata"}
		writeDocuments(t, w, emsl, wireEntity("jgi:2", "JGI"), wireEntity("jgi:3", "JGI"))
	}))

	summary, err := c.Summarize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, map[string]int{"EMSL": 1, "JGI": 2}, summary.BySource)
	assert.Equal(t, 3, summary.ByEntityType["sample"])
	assert.Equal(t, 1, summary.ByEntityType["biodata"])
}

func TestBertronClient_ServerError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))

	_, err := c.GetAllEntities(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "boom", apiErr.Message)
}

func TestBertronClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // connection refused from here on

	settings := &config.ClientSettings{BaseURL: server.URL, TimeoutSeconds: 1}
	c, err := NewBertronClient(settings, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	_, err = c.GetAllEntities(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.StatusCode)
	assert.NotNil(t, apiErr.Unwrap())
}

func TestNewBertronClient_InvalidSettings(t *testing.T) {
	settings := &config.ClientSettings{BaseURL: ""}
	_, err := NewBertronClient(settings, testutil.SetupTestLogger(t))
	require.Error(t, err)
}
