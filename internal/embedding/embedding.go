package embedding

import "context"

// Embedding is the interface implemented by all embedding model clients.
type Embedding interface {
	// Embed generates the vector representation of a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates vector representations for a batch of texts,
	// in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
