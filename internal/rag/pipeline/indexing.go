package pipeline

import (
	"context"
	"fmt"

	"tradebot/internal/embedding"
	"tradebot/internal/rag/interfaces"
	"tradebot/internal/rag/loaders"
	"tradebot/internal/rag/schema"
	"tradebot/pkg/logger"
)

// IngestionPipeline loads uploaded files, splits them into overlapping
// chunks, embeds the chunks and persists them in the vector index.
type IngestionPipeline struct {
	splitter interfaces.Splitter
	embedder embedding.Embedding
	store    interfaces.VectorStore
	log      *logger.Logger
}

// NewIngestionPipeline creates a new IngestionPipeline.
func NewIngestionPipeline(
	splitter interfaces.Splitter,
	embedder embedding.Embedding,
	store interfaces.VectorStore,
	log *logger.Logger,
) *IngestionPipeline {
	return &IngestionPipeline{
		splitter: splitter,
		embedder: embedder,
		store:    store,
		log:      log,
	}
}

// Run executes the whole pipeline for the given file paths. Files with
// unrecognized extensions are skipped with a warning; when nothing loadable
// remains the persist step is skipped entirely and Run succeeds.
func (p *IngestionPipeline) Run(ctx context.Context, paths []string) error {
	docs, err := p.load(ctx, paths)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		p.log.Info("No valid documents found, skipping vector index write")
		return nil
	}
	return p.Store(ctx, docs)
}

// load dispatches each path to its extractor and concatenates the results
// in file-input order.
func (p *IngestionPipeline) load(ctx context.Context, paths []string) ([]*schema.Document, error) {
	var docs []*schema.Document
	for _, path := range paths {
		loader, ok := loaders.ForFile(path)
		if !ok {
			p.log.WithPayload(map[string]interface{}{"file": path}).
				Warn("Unsupported file type, skipping")
			continue
		}

		loaded, err := loader.Load(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		docs = append(docs, loaded...)
	}
	return docs, nil
}

// Store splits, embeds and persists already-loaded documents.
func (p *IngestionPipeline) Store(ctx context.Context, docs []*schema.Document) error {
	chunks, err := p.splitter.Split(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to split documents: %w", err)
	}
	if len(chunks) == 0 {
		p.log.Info("Documents produced no chunks, skipping vector index write")
		return nil
	}
	p.log.WithPayload(map[string]interface{}{"documents": len(docs), "chunks": len(chunks)}).
		Info("Split documents into chunks")

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	embeddings, err := p.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedder returned %d vectors for %d chunks", len(embeddings), len(chunks))
	}
	for i, chunk := range chunks {
		chunk.Embedding = embeddings[i]
	}

	if err := p.store.Upsert(ctx, chunks); err != nil {
		return err
	}

	p.log.WithPayload(map[string]interface{}{"chunks": len(chunks)}).
		Info("Finished ingesting documents")
	return nil
}
