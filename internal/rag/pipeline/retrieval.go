package pipeline

import (
	"context"
	"fmt"

	"tradebot/internal/embedding"
	"tradebot/internal/rag/interfaces"
	"tradebot/internal/rag/schema"
	"tradebot/pkg/logger"
)

// RetrievalPipeline embeds a question and retrieves the most similar chunks
// from the vector index, filtered by a minimum similarity score.
type RetrievalPipeline struct {
	embedder       embedding.Embedding
	store          interfaces.VectorStore
	topK           int
	scoreThreshold float32
	log            *logger.Logger
}

// NewRetrievalPipeline creates a new RetrievalPipeline.
func NewRetrievalPipeline(
	embedder embedding.Embedding,
	store interfaces.VectorStore,
	topK int,
	scoreThreshold float32,
	log *logger.Logger,
) *RetrievalPipeline {
	return &RetrievalPipeline{
		embedder:       embedder,
		store:          store,
		topK:           topK,
		scoreThreshold: scoreThreshold,
		log:            log,
	}
}

// Run returns up to topK chunks relevant to the question, best first.
// Matches below the score threshold are dropped even when fewer than topK
// remain.
func (p *RetrievalPipeline) Run(ctx context.Context, question string) ([]*schema.Document, error) {
	queryEmbedding, err := p.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	candidates, err := p.store.Query(ctx, queryEmbedding, p.topK)
	if err != nil {
		return nil, err
	}

	results := make([]*schema.Document, 0, len(candidates))
	for _, doc := range candidates {
		if doc.Score < p.scoreThreshold {
			continue
		}
		results = append(results, doc)
	}

	p.log.WithPayload(map[string]interface{}{
		"candidates": len(candidates),
		"results":    len(results),
	}).Info("Retrieved chunks for question")

	return results, nil
}
