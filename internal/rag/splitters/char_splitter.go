package splitters

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tradebot/internal/rag/interfaces"
	"tradebot/internal/rag/schema"
)

// Default chunking parameters.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// CharacterSplitter splits documents into fixed-size character chunks with
// a fixed overlap between adjacent chunks. Splitting is length-based over
// the raw text; the overlap bounds context loss at chunk boundaries.
type CharacterSplitter struct {
	ChunkSize    int
	ChunkOverlap int
}

// NewCharacterSplitter creates a CharacterSplitter. The overlap must be
// strictly smaller than the chunk size.
func NewCharacterSplitter(chunkSize, chunkOverlap int) (*CharacterSplitter, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("chunk overlap %d must be in [0, %d)", chunkOverlap, chunkSize)
	}
	return &CharacterSplitter{ChunkSize: chunkSize, ChunkOverlap: chunkOverlap}, nil
}

// Split produces the ordered chunk sequence for each document in turn.
// Every chunk after the first begins with the overlap span that ended the
// previous chunk, and every chunk gets a freshly generated identifier.
func (s *CharacterSplitter) Split(ctx context.Context, docs []*schema.Document) ([]*schema.Document, error) {
	var chunks []*schema.Document

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		runes := []rune(doc.Text)
		if len(runes) == 0 {
			continue
		}

		step := s.ChunkSize - s.ChunkOverlap
		for start, number := 0, 1; start < len(runes); start, number = start+step, number+1 {
			end := start + s.ChunkSize
			if end > len(runes) {
				end = len(runes)
			}

			chunk := &schema.Document{
				ID:       uuid.New().String(),
				Text:     string(runes[start:end]),
				Metadata: schema.CopyMetadata(doc.Metadata),
			}
			chunk.Metadata["original_doc_id"] = doc.ID
			chunk.Metadata["chunk_number"] = number
			chunks = append(chunks, chunk)

			if end == len(runes) {
				break
			}
		}
	}

	return chunks, nil
}

var _ interfaces.Splitter = (*CharacterSplitter)(nil)
