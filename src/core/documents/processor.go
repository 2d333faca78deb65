package documents

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/tmc/langchaingo/textsplitter"
	"github.com/weaviate/weaviate/entities/models"

	"hydrorag/src/infrastructure/integrations/unstructured"
	"hydrorag/src/infrastructure/log"
	storage "hydrorag/src/storage/weaviate"
)

const (
	ChunkSize    = 1000
	ChunkOverlap = 100
)

// plainTextExtensions are read directly; the rest of supportedExtensions go
// through the partition service.
var plainTextExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".py":   true,
	".js":   true,
	".html": true,
	".xml":  true,
	".csv":  true,
}

var binaryExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
	".xlsx": true,
	".xls":  true,
}

// ErrUnsupportedExtension reports a file type the processor cannot extract
// text from.
type ErrUnsupportedExtension struct {
	Extension string
}

func (e *ErrUnsupportedExtension) Error() string {
	return fmt.Sprintf("unsupported file extension: %s", e.Extension)
}

// SupportedExtensions lists every extension the processor accepts, plain
// text first.
func SupportedExtensions() []string {
	exts := []string{".txt", ".md", ".py", ".js", ".html", ".xml", ".csv", ".pdf", ".docx", ".doc", ".xlsx", ".xls"}
	return exts
}

// Embedder produces a vector for a piece of text.
type Embedder interface {
	GetEmbedding(ctx context.Context, model string, text string) ([]float32, error)
}

// Extractor partitions binary documents into text elements.
type Extractor interface {
	Partition(ctx context.Context, filename string, content []byte) ([]unstructured.Element, error)
}

// Processor turns an uploaded file into a per-upload vector index and hands
// back a retriever bound to it.
type Processor struct {
	vectors        *storage.SDK
	extractor      Extractor
	embedder       Embedder
	embeddingModel string
	node           *snowflake.Node
	splitter       textsplitter.RecursiveCharacter
}

func NewProcessor(vectors *storage.SDK, extractor Extractor, embedder Embedder, embeddingModel string) (*Processor, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}

	return &Processor{
		vectors:        vectors,
		extractor:      extractor,
		embedder:       embedder,
		embeddingModel: embeddingModel,
		node:           node,
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(ChunkSize),
			textsplitter.WithChunkOverlap(ChunkOverlap),
		),
	}, nil
}

// Index identifies the vector class built for one upload.
type Index struct {
	ClassName  string
	Source     string
	ChunkCount int
}

// Process extracts text, splits it into overlapping chunks, embeds each
// chunk and stores the vectors in a fresh class named after a snowflake ID.
func (p *Processor) Process(ctx context.Context, filename string, content []byte) (*Index, error) {
	text, err := p.extract(ctx, filename, content)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text extracted from %s", filename)
	}

	chunks, err := p.splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("failed to split text: %w", err)
	}

	className := fmt.Sprintf("Chunks%d", p.node.Generate().Int64())
	properties := []*models.Property{
		{Name: "content", DataType: []string{"text"}},
		{Name: "source", DataType: []string{"text"}},
		{Name: "position", DataType: []string{"int"}},
	}
	if err := p.vectors.EnsureSchema(ctx, className, properties); err != nil {
		return nil, err
	}

	objects := make([]storage.VectorObject, 0, len(chunks))
	for i, chunk := range chunks {
		vector, err := p.embedder.GetEmbedding(ctx, p.embeddingModel, chunk)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}
		objects = append(objects, storage.VectorObject{
			Vector: vector,
			Properties: map[string]interface{}{
				"content":  chunk,
				"source":   filename,
				"position": i,
			},
		})
	}

	if err := p.vectors.BatchAddVectors(ctx, className, objects); err != nil {
		return nil, err
	}

	log.Info("document indexed", "source", filename, "class", className, "chunks", len(chunks))

	return &Index{
		ClassName:  className,
		Source:     filename,
		ChunkCount: len(chunks),
	}, nil
}

// Drop removes the vector class behind an index.
func (p *Processor) Drop(ctx context.Context, index *Index) error {
	return p.vectors.DeleteSchema(ctx, index.ClassName)
}

// Retriever builds a retriever over a previously processed index.
func (p *Processor) Retriever(index *Index) *Retriever {
	return NewRetriever(p.vectors, p.embedder, p.embeddingModel, index.ClassName)
}

func (p *Processor) extract(ctx context.Context, filename string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case plainTextExtensions[ext]:
		return string(content), nil
	case binaryExtensions[ext]:
		elements, err := p.extractor.Partition(ctx, filename, content)
		if err != nil {
			return "", fmt.Errorf("failed to partition %s: %w", filename, err)
		}
		return unstructured.Text(elements), nil
	default:
		return "", &ErrUnsupportedExtension{Extension: ext}
	}
}
