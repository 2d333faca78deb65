package weaviate

import (
	"context"
	"fmt"
	"strings"

	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

// SDK encapsulates all Weaviate operations
type SDK struct {
	client *weaviate.Client
}

// NewSDK creates a new instance of SDK
func NewSDK(client *weaviate.Client) *SDK {
	return &SDK{
		client: client,
	}
}

// Ready reports whether the Weaviate instance accepts requests
func (w *SDK) Ready(ctx context.Context) error {
	ready, err := w.client.Misc().ReadyChecker().Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check Weaviate readiness: %w", err)
	}
	if !ready {
		return fmt.Errorf("weaviate reports not ready")
	}
	return nil
}

// EnsureSchema creates a class schema if it does not already exist
func (w *SDK) EnsureSchema(ctx context.Context, className string, properties []*models.Property) error {
	class := &models.Class{
		Class:      className,
		Properties: properties,
		Vectorizer: "none",
	}

	err := w.client.Schema().ClassCreator().WithClass(class).Do(ctx)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return fmt.Errorf("failed to create Weaviate class: %w", err)
	}

	return nil
}

// DeleteSchema deletes a class schema from Weaviate
func (w *SDK) DeleteSchema(ctx context.Context, className string) error {
	err := w.client.Schema().ClassDeleter().WithClassName(className).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete Weaviate class: %w", err)
	}

	return nil
}

// VectorObject represents a single object with its vector and properties
type VectorObject struct {
	Vector     []float32
	Properties map[string]interface{}
}

// BatchAddVectors adds multiple vector objects to a class in a single operation
func (w *SDK) BatchAddVectors(ctx context.Context, className string, objects []VectorObject) error {
	objs := make([]*models.Object, len(objects))
	for i, obj := range objects {
		objs[i] = &models.Object{
			Class:      className,
			Properties: obj.Properties,
			Vector:     obj.Vector,
		}
	}

	batcher := w.client.Batch().ObjectsBatcher()
	resp, err := batcher.WithObjects(objs...).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to batch add vectors: %w", err)
	}
	if len(resp) == 0 {
		return fmt.Errorf("batch operation returned no results")
	}

	return nil
}

// QueryConfig represents configuration for vector similarity search
type QueryConfig struct {
	Fields    []string // Fields to return in the result
	Limit     int      // Maximum number of results
	Certainty float64  // Optional certainty threshold
}

const DefaultQueryLimit = 4

// QueryResult represents a single result from vector similarity search
type QueryResult struct {
	ID         string
	Score      float64
	Properties map[string]interface{}
}

// QueryVectors performs vector similarity search in a class
func (w *SDK) QueryVectors(ctx context.Context, className string, vector []float32, config QueryConfig) ([]QueryResult, error) {
	fields := make([]graphql.Field, len(config.Fields))
	for i, field := range config.Fields {
		fields[i] = graphql.Field{Name: field}
	}
	fields = append(fields, graphql.Field{Name: "_additional { id certainty }"})

	nearVectorBuilder := w.client.GraphQL().NearVectorArgBuilder().
		WithVector(vector)
	if config.Certainty > 0 {
		nearVectorBuilder.WithCertainty(float32(config.Certainty))
	}

	if config.Limit <= 0 {
		config.Limit = DefaultQueryLimit
	}

	result, err := w.client.GraphQL().Get().
		WithClassName(className).
		WithFields(fields...).
		WithNearVector(nearVectorBuilder).
		WithLimit(config.Limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query vectors: %w", err)
	}

	var queryResults []QueryResult
	data, ok := result.Data["Get"].(map[string]interface{})
	if !ok {
		return queryResults, nil
	}
	objects, ok := data[className].([]interface{})
	if !ok {
		return queryResults, nil
	}

	for _, obj := range objects {
		objMap, ok := obj.(map[string]interface{})
		if !ok {
			continue
		}

		qr := QueryResult{Properties: make(map[string]interface{})}
		if additional, ok := objMap["_additional"].(map[string]interface{}); ok {
			if id, ok := additional["id"].(string); ok {
				qr.ID = id
			}
			if certainty, ok := additional["certainty"].(float64); ok {
				qr.Score = certainty
			}
		}
		for k, v := range objMap {
			if k != "_additional" {
				qr.Properties[k] = v
			}
		}

		queryResults = append(queryResults, qr)
	}

	return queryResults, nil
}
