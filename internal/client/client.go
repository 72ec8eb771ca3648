package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ber-data/bertron-client/internal/domain/entities"
	"github.com/ber-data/bertron-client/internal/pkg/config"
	"github.com/ber-data/bertron-client/internal/pkg/logger"
)

// BertronClient is a client for interacting with the BERtron API.
type BertronClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewBertronClient creates a BERtron API client from validated settings.
func NewBertronClient(settings *config.ClientSettings, log logger.Logger) (*BertronClient, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client settings: %w", err)
	}

	timeout := time.Duration(settings.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	transport := http.DefaultTransport
	if settings.Insecure {
		insecureTransport := http.DefaultTransport.(*http.Transport).Clone()
		insecureTransport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402
		transport = insecureTransport
	}

	return &BertronClient{
		baseURL: strings.TrimRight(settings.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		logger: log,
	}, nil
}

// Health checks the health of the BERtron API server.
func (c *BertronClient) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.doRequest(ctx, http.MethodGet, "/health", nil, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetAllEntities gets all entities from the BERtron database.
func (c *BertronClient) GetAllEntities(ctx context.Context) (*QueryResponse, error) {
	var envelope documentsEnvelope
	if err := c.doRequest(ctx, http.MethodGet, "", nil, nil, &envelope); err != nil {
		return nil, err
	}

	return &QueryResponse{
		Entities: envelope.Documents,
		Count:    len(envelope.Documents),
	}, nil
}

// GetEntityByID gets a specific entity by its CURIE identifier.
func (c *BertronClient) GetEntityByID(ctx context.Context, entityID string) (*entities.Entity, error) {
	var entity entities.Entity
	if err := c.doRequest(ctx, http.MethodGet, "/"+url.PathEscape(entityID), nil, nil, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

// FindEntities searches for entities using a MongoDB-style query document.
func (c *BertronClient) FindEntities(ctx context.Context, query *entities.FindQuery) (*QueryResponse, error) {
	if query == nil {
		query = entities.NewFindQuery()
	}

	var envelope documentsEnvelope
	if err := c.doRequest(ctx, http.MethodPost, "/find", nil, query, &envelope); err != nil {
		return nil, err
	}

	return &QueryResponse{
		Entities: envelope.Documents,
		Count:    envelope.Count,
	}, nil
}

// FindNearbyEntities finds entities within a radius of a geographic point,
// sorted by distance.
func (c *BertronClient) FindNearbyEntities(ctx context.Context, latitude, longitude, radiusMeters float64) (*QueryResponse, error) {
	params := url.Values{}
	params.Set("latitude", formatFloat(latitude))
	params.Set("longitude", formatFloat(longitude))
	params.Set("radius_meters", formatFloat(radiusMeters))

	var envelope documentsEnvelope
	if err := c.doRequest(ctx, http.MethodGet, "/geo/nearby", params, nil, &envelope); err != nil {
		return nil, err
	}

	// The server does not echo the request geometry; reconstruct it here
	metadata := map[string]interface{}{
		"center": map[string]interface{}{
			"latitude":  latitude,
			"longitude": longitude,
		},
		"radius_meters": radiusMeters,
	}

	return &QueryResponse{
		Entities:  envelope.Documents,
		Count:     envelope.Count,
		QueryType: QueryTypeGeospatialNearby,
		Metadata:  metadata,
	}, nil
}

// FindEntitiesInBoundingBox finds entities within a rectangular bounding box.
func (c *BertronClient) FindEntitiesInBoundingBox(ctx context.Context, southwestLat, southwestLng, northeastLat, northeastLng float64) (*QueryResponse, error) {
	params := url.Values{}
	params.Set("southwest_lat", formatFloat(southwestLat))
	params.Set("southwest_lng", formatFloat(southwestLng))
	params.Set("northeast_lat", formatFloat(northeastLat))
	params.Set("northeast_lng", formatFloat(northeastLng))

	var envelope documentsEnvelope
	if err := c.doRequest(ctx, http.MethodGet, "/geo/bbox", params, nil, &envelope); err != nil {
		return nil, err
	}

	metadata := map[string]interface{}{
		"bounding_box": map[string]interface{}{
			"southwest": map[string]interface{}{"latitude": southwestLat, "longitude": southwestLng},
			"northeast": map[string]interface{}{"latitude": northeastLat, "longitude": northeastLng},
		},
	}

	return &QueryResponse{
		Entities:  envelope.Documents,
		Count:     envelope.Count,
		QueryType: QueryTypeGeospatialBoundingBox,
		Metadata:  metadata,
	}, nil
}

// FindEntitiesBySource finds entities from a specific BER data source
// (EMSL, ESS-DIVE, JGI, NMDC, MONET).
func (c *BertronClient) FindEntitiesBySource(ctx context.Context, source string) (*QueryResponse, error) {
	query := entities.NewFindQuery()
	query.Filter = map[string]interface{}{"ber_data_source": source}
	return c.FindEntities(ctx, query)
}

// FindEntitiesByEntityType finds entities of a specific entity type
// (biodata, sample, sequence, taxon, jgi_biosample).
func (c *BertronClient) FindEntitiesByEntityType(ctx context.Context, entityType string) (*QueryResponse, error) {
	query := entities.NewFindQuery()
	query.Filter = map[string]interface{}{"entity_type": entityType}
	return c.FindEntities(ctx, query)
}

// SearchEntitiesByName searches for entities by name using regex pattern matching.
func (c *BertronClient) SearchEntitiesByName(ctx context.Context, namePattern string, caseSensitive bool) (*QueryResponse, error) {
	regexFilter := map[string]interface{}{"$regex": namePattern}
	if !caseSensitive {
		regexFilter["$options"] = "i"
	}

	query := entities.NewFindQuery()
	query.Filter = map[string]interface{}{"name": regexFilter}
	return c.FindEntities(ctx, query)
}

// GetEntitiesInRegion is a convenience method to find entities in a region
// with the radius given in kilometers.
func (c *BertronClient) GetEntitiesInRegion(ctx context.Context, centerLat, centerLng, radiusKm float64) (*QueryResponse, error) {
	return c.FindNearbyEntities(ctx, centerLat, centerLng, radiusKm*1000)
}

// CreateEntity ingests a new entity into the BERtron database.
func (c *BertronClient) CreateEntity(ctx context.Context, entity *entities.Entity) (*entities.Entity, error) {
	var created entities.Entity
	if err := c.doRequest(ctx, http.MethodPost, "", nil, entity, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteEntity removes an entity from the BERtron database.
func (c *BertronClient) DeleteEntity(ctx context.Context, entityID string) error {
	return c.doRequest(ctx, http.MethodDelete, "/"+url.PathEscape(entityID), nil, nil, nil)
}

// Summarize fetches all entities and aggregates counts per data source
// and entity type.
func (c *BertronClient) Summarize(ctx context.Context) (*EntitySummary, error) {
	response, err := c.GetAllEntities(ctx)
	if err != nil {
		return nil, err
	}

	summary := &EntitySummary{
		Total:        response.Count,
		BySource:     make(map[string]int),
		ByEntityType: make(map[string]int),
	}
	for _, entity := range response.Entities {
		summary.BySource[entity.BerDataSource]++
		for _, entityType := range entity.EntityType {
			summary.ByEntityType[entityType]++
		}
	}

	return summary, nil
}

// Close releases idle connections held by the underlying HTTP client.
func (c *BertronClient) Close() {
	c.httpClient.CloseIdleConnections()
}

// doRequest performs a request against the BERtron API and decodes the
// JSON response into out when non-nil. Non-2xx responses are returned as
// *APIError.
func (c *BertronClient) doRequest(ctx context.Context, method, endpoint string, params url.Values, body, out interface{}) error {
	requestURL := c.baseURL + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("API request failed: ", err)
		return &APIError{Message: err.Error(), Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func (c *BertronClient) errorFromResponse(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	message := strings.TrimSpace(string(raw))
	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		message = envelope.Message
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	c.logger.Error("API request failed with status ", resp.StatusCode, ": ", message)
	return &APIError{StatusCode: resp.StatusCode, Message: message}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
