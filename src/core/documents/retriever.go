package documents

import (
	"context"
	"fmt"

	"hydrorag/src/core/workflow"
	storage "hydrorag/src/storage/weaviate"
)

// TopK is the number of passages pulled per query.
const TopK = 4

// Retriever answers similarity queries against one document's vector class.
type Retriever struct {
	vectors        *storage.SDK
	embedder       Embedder
	embeddingModel string
	className      string
}

func NewRetriever(vectors *storage.SDK, embedder Embedder, embeddingModel, className string) *Retriever {
	return &Retriever{
		vectors:        vectors,
		embedder:       embedder,
		embeddingModel: embeddingModel,
		className:      className,
	}
}

func (r *Retriever) Retrieve(ctx context.Context, query string) ([]workflow.Passage, error) {
	vector, err := r.embedder.GetEmbedding(ctx, r.embeddingModel, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	results, err := r.vectors.QueryVectors(ctx, r.className, vector, storage.QueryConfig{
		Fields: []string{"content", "source", "position"},
		Limit:  TopK,
	})
	if err != nil {
		return nil, err
	}

	passages := make([]workflow.Passage, 0, len(results))
	for _, res := range results {
		passage := workflow.Passage{}
		if content, ok := res.Properties["content"].(string); ok {
			passage.Content = content
		}
		if source, ok := res.Properties["source"].(string); ok {
			passage.Source = source
		}
		if position, ok := res.Properties["position"].(float64); ok {
			passage.Position = int(position)
		}
		passages = append(passages, passage)
	}

	return passages, nil
}
