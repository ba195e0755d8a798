package interfaces

import (
	"context"

	"tradebot/internal/rag/schema"
)

// Loader reads a file and converts it into a list of Document objects.
type Loader interface {
	Load(ctx context.Context, path string) ([]*schema.Document, error)
}

// Splitter splits a list of Documents into smaller chunks.
type Splitter interface {
	Split(ctx context.Context, docs []*schema.Document) ([]*schema.Document, error)
}

// VectorStore persists and queries embedded chunks.
type VectorStore interface {
	// Upsert writes (identifier, vector, payload) triples to the index,
	// creating the index first when it does not yet exist.
	Upsert(ctx context.Context, docs []*schema.Document) error

	// Query runs a nearest-neighbor search and returns up to topK
	// documents with their similarity scores, best first.
	Query(ctx context.Context, embedding []float32, topK int) ([]*schema.Document, error)
}
