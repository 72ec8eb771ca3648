package v1

import (
	"encoding/json"
	"fmt"

	"github.com/ber-data/bertron-client/internal/domain/entities"
)

// ErrorResponse is the error body returned by all endpoints.
type ErrorResponse struct {
	Message string `json:"message"`
}

// QueryResponse is the envelope returned by collection endpoints.
type QueryResponse struct {
	Documents []map[string]interface{} `json:"documents"`
	Count     int                      `json:"count"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// NewQueryResponse converts entities into the documents envelope, applying
// an optional Mongo-style projection.
func NewQueryResponse(list []*entities.Entity, projection map[string]int) (*QueryResponse, error) {
	documents := make([]map[string]interface{}, 0, len(list))
	for _, entity := range list {
		doc, err := entityToDocument(entity)
		if err != nil {
			return nil, err
		}
		if len(projection) > 0 {
			doc = applyProjection(doc, projection)
		}
		documents = append(documents, doc)
	}

	return &QueryResponse{
		Documents: documents,
		Count:     len(documents),
	}, nil
}

func entityToDocument(entity *entities.Entity) (map[string]interface{}, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize entity %s: %w", entity.ID, err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to convert entity %s: %w", entity.ID, err)
	}
	return doc, nil
}

// applyProjection trims a document per Mongo projection semantics: a
// 1-valued projection keeps only the listed fields, a 0-valued projection
// drops them. The id field stays unless explicitly excluded.
func applyProjection(doc map[string]interface{}, projection map[string]int) map[string]interface{} {
	// Any 1-valued field, id included, makes the projection inclusive
	inclusive := false
	for _, mode := range projection {
		if mode == 1 {
			inclusive = true
			break
		}
	}

	result := make(map[string]interface{})
	if inclusive {
		for field, mode := range projection {
			if mode != 1 {
				continue
			}
			if value, ok := doc[field]; ok {
				result[field] = value
			}
		}
		if mode, explicit := projection["id"]; !explicit || mode == 1 {
			if id, ok := doc["id"]; ok {
				result["id"] = id
			}
		}
		return result
	}

	for field, value := range doc {
		if mode, ok := projection[field]; ok && mode == 0 {
			continue
		}
		result[field] = value
	}
	return result
}
