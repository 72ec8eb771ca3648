//go:build unit
// +build unit

package v1

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ber-data/bertron-client/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testEntity(id string) *entities.Entity {
	return &entities.Entity{
		ID:            id,
		Name:          "Test entity",
		BerDataSource: entities.SourceEMSL,
		EntityType:    []string{entities.TypeSample},
		Coordinates:   &entities.Coordinates{Latitude: 46.28, Longitude: -119.28},
		URI:           "https://example.org/records/1",
	}
}

func newTestContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req, err = http.NewRequest(method, target, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func TestEntityHandler_Health(t *testing.T) {
	handler := NewEntityHandler(new(MockEntityQueryService), new(MockEntityIngestService))

	c, w := newTestContext(t, "GET", "/health", nil)
	handler.Health(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestEntityHandler_ListAll_Success(t *testing.T) {
	mockQueryService := new(MockEntityQueryService)
	handler := NewEntityHandler(mockQueryService, new(MockEntityIngestService))

	mockQueryService.On("List", mock.Anything, mock.Anything).
		Return([]*entities.Entity{testEntity("emsl:123")}, nil)

	c, w := newTestContext(t, "GET", "/bertron", nil)
	handler.ListAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "emsl:123")
	assert.Contains(t, w.Body.String(), `"count":1`)
	mockQueryService.AssertExpectations(t)
}

func TestEntityHandler_ListAll_InvalidSource(t *testing.T) {
	handler := NewEntityHandler(new(MockEntityQueryService), new(MockEntityIngestService))

	c, w := newTestContext(t, "GET", "/bertron?source=KBASE", nil)
	handler.ListAll(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation failed")
}

func TestEntityHandler_GetByID_Success(t *testing.T) {
	mockQueryService := new(MockEntityQueryService)
	handler := NewEntityHandler(mockQueryService, new(MockEntityIngestService))

	mockQueryService.On("GetByID", mock.Anything, "emsl:123").
		Return(testEntity("emsl:123"), nil)

	c, w := newTestContext(t, "GET", "/bertron/emsl:123", nil)
	c.Params = gin.Params{{Key: "id", Value: "emsl:123"}}
	handler.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "emsl:123")
	mockQueryService.AssertExpectations(t)
}

func TestEntityHandler_GetByID_NotFound(t *testing.T) {
	mockQueryService := new(MockEntityQueryService)
	handler := NewEntityHandler(mockQueryService, new(MockEntityIngestService))

	mockQueryService.On("GetByID", mock.Anything, "emsl:missing").
		Return(nil, entities.ErrEntityNotFound)

	c, w := newTestContext(t, "GET", "/bertron/emsl:missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "emsl:missing"}}
	handler.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}

func TestEntityHandler_Find_Success(t *testing.T) {
	mockQueryService := new(MockEntityQueryService)
	handler := NewEntityHandler(mockQueryService, new(MockEntityIngestService))

	mockQueryService.On("Find", mock.Anything, mock.Anything).
		Return([]*entities.Entity{testEntity("nmdc:abc")}, nil)

	body := []byte(`{"filter": {"ber_data_source": "NMDC"}, "skip": 0, "limit": 100}`)
	c, w := newTestContext(t, "POST", "/bertron/find", body)
	handler.Find(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "nmdc:abc")
	mockQueryService.AssertExpectations(t)
}

func TestEntityHandler_Find_AppliesProjection(t *testing.T) {
	mockQueryService := new(MockEntityQueryService)
	handler := NewEntityHandler(mockQueryService, new(MockEntityIngestService))

	mockQueryService.On("Find", mock.Anything, mock.Anything).
		Return([]*entities.Entity{testEntity("nmdc:abc")}, nil)

	body := []byte(`{"filter": {}, "limit": 10, "projection": {"name": 1}}`)
	c, w := newTestContext(t, "POST", "/bertron/find", body)
	handler.Find(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name"`)
	assert.Contains(t, w.Body.String(), `"id"`)
	assert.NotContains(t, w.Body.String(), "ber_data_source")
}

func TestEntityHandler_Find_InvalidBody(t *testing.T) {
	handler := NewEntityHandler(new(MockEntityQueryService), new(MockEntityIngestService))

	c, w := newTestContext(t, "POST", "/bertron/find", []byte("{not json"))
	handler.Find(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid query document")
}

func TestEntityHandler_FindNearby_Success(t *testing.T) {
	mockQueryService := new(MockEntityQueryService)
	handler := NewEntityHandler(mockQueryService, new(MockEntityIngestService))

	mockQueryService.On("FindNearby", mock.Anything, mock.Anything).
		Return([]*entities.Entity{testEntity("emsl:near")}, nil)

	c, w := newTestContext(t, "GET", "/bertron/geo/nearby?latitude=46.28&longitude=-119.28&radius_meters=10000", nil)
	handler.FindNearby(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "emsl:near")
	mockQueryService.AssertExpectations(t)
}

func TestEntityHandler_FindNearby_MissingParameter(t *testing.T) {
	handler := NewEntityHandler(new(MockEntityQueryService), new(MockEntityIngestService))

	c, w := newTestContext(t, "GET", "/bertron/geo/nearby?latitude=46.28", nil)
	handler.FindNearby(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing required query parameter")
}

func TestEntityHandler_FindNearby_InvalidLatitude(t *testing.T) {
	handler := NewEntityHandler(new(MockEntityQueryService), new(MockEntityIngestService))

	c, w := newTestContext(t, "GET", "/bertron/geo/nearby?latitude=95&longitude=0&radius_meters=100", nil)
	handler.FindNearby(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation failed")
}

func TestEntityHandler_FindInBoundingBox_Success(t *testing.T) {
	mockQueryService := new(MockEntityQueryService)
	handler := NewEntityHandler(mockQueryService, new(MockEntityIngestService))

	mockQueryService.On("FindInBoundingBox", mock.Anything, mock.Anything).
		Return([]*entities.Entity{testEntity("essdive:box")}, nil)

	target := "/bertron/geo/bbox?southwest_lat=44&southwest_lng=-125&northeast_lat=49&northeast_lng=-110"
	c, w := newTestContext(t, "GET", target, nil)
	handler.FindInBoundingBox(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "essdive:box")
	mockQueryService.AssertExpectations(t)
}

func TestEntityHandler_Ingest_Success(t *testing.T) {
	mockIngestService := new(MockEntityIngestService)
	handler := NewEntityHandler(new(MockEntityQueryService), mockIngestService)

	created := testEntity("bertron:new")
	mockIngestService.On("Create", mock.Anything, mock.Anything).Return(created, nil)

	body := []byte(`{"name": "Test entity", "ber_data_source": "EMSL", "entity_type": ["sample"],
		"coordinates": {"latitude": 46.28, "longitude": -119.28}, "uri": "https://example.org/records/1"}`)
	c, w := newTestContext(t, "POST", "/bertron", body)
	handler.Ingest(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "bertron:new")
	mockIngestService.AssertExpectations(t)
}

func TestEntityHandler_Ingest_Duplicate(t *testing.T) {
	mockIngestService := new(MockEntityIngestService)
	handler := NewEntityHandler(new(MockEntityQueryService), mockIngestService)

	mockIngestService.On("Create", mock.Anything, mock.Anything).
		Return(nil, entities.ErrDuplicateEntity)

	body := []byte(`{"id": "emsl:dup", "name": "Test entity", "ber_data_source": "EMSL",
		"entity_type": ["sample"], "coordinates": {"latitude": 0, "longitude": 0},
		"uri": "https://example.org/records/1"}`)
	c, w := newTestContext(t, "POST", "/bertron", body)
	handler.Ingest(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestEntityHandler_DeleteByID_Success(t *testing.T) {
	mockIngestService := new(MockEntityIngestService)
	handler := NewEntityHandler(new(MockEntityQueryService), mockIngestService)

	mockIngestService.On("DeleteByID", mock.Anything, "emsl:123").Return(nil)

	c, w := newTestContext(t, "DELETE", "/bertron/emsl:123", nil)
	c.Params = gin.Params{{Key: "id", Value: "emsl:123"}}
	handler.DeleteByID(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockIngestService.AssertExpectations(t)
}

func TestEntityHandler_DeleteByID_NotFound(t *testing.T) {
	mockIngestService := new(MockEntityIngestService)
	handler := NewEntityHandler(new(MockEntityQueryService), mockIngestService)

	mockIngestService.On("DeleteByID", mock.Anything, "emsl:missing").
		Return(entities.ErrEntityNotFound)

	c, w := newTestContext(t, "DELETE", "/bertron/emsl:missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "emsl:missing"}}
	handler.DeleteByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
