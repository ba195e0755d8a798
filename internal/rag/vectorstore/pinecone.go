package vectorstore

import (
	"context"
	"fmt"
	"sync"

	pc "github.com/pinecone-io/go-pinecone/v2/pinecone"
	"google.golang.org/protobuf/types/known/structpb"

	"tradebot/internal/apperr"
	"tradebot/internal/database/pinecone"
	"tradebot/internal/rag/interfaces"
	"tradebot/internal/rag/schema"
	"tradebot/pkg/logger"
)

// PineconeStore implements the VectorStore interface on top of a Pinecone
// index. The index is created on first write when absent, and the
// data-plane connection is established once and reused.
type PineconeStore struct {
	client    *pinecone.Client
	indexName string
	dimension int
	log       *logger.Logger

	mu   sync.Mutex
	conn *pc.IndexConnection
}

// NewPineconeStore creates a PineconeStore for the provider's index.
func NewPineconeStore(client *pinecone.Client, indexName string, dimension int, log *logger.Logger) *PineconeStore {
	return &PineconeStore{
		client:    client,
		indexName: indexName,
		dimension: dimension,
		log:       log,
	}
}

// connection lazily ensures the index and opens the data-plane connection.
func (s *PineconeStore) connection(ctx context.Context) (*pc.IndexConnection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		return s.conn, nil
	}

	if _, err := s.client.EnsureIndex(ctx, s.indexName, s.dimension); err != nil {
		return nil, err
	}
	conn, err := s.client.Connection(ctx, s.indexName)
	if err != nil {
		return nil, err
	}
	s.conn = conn
	return conn, nil
}

// Upsert writes one (identifier, vector, payload) triple per chunk. Any
// error aborts the whole call; there is no partial-failure retry.
func (s *PineconeStore) Upsert(ctx context.Context, docs []*schema.Document) error {
	if len(docs) == 0 {
		return nil
	}

	vectors := make([]*pc.Vector, 0, len(docs))
	for _, doc := range docs {
		if len(doc.Embedding) != s.dimension {
			return apperr.New(apperr.KindValidation, fmt.Sprintf(
				"embedding dimension %d does not match index dimension %d", len(doc.Embedding), s.dimension))
		}

		payload := map[string]interface{}{schema.MetadataKeyText: doc.Text}
		for k, v := range doc.Metadata {
			payload[k] = v
		}
		metadata, err := structpb.NewStruct(payload)
		if err != nil {
			return fmt.Errorf("failed to build metadata for chunk %s: %w", doc.ID, err)
		}

		vectors = append(vectors, &pc.Vector{
			Id:       doc.ID,
			Values:   doc.Embedding,
			Metadata: metadata,
		})
	}

	conn, err := s.connection(ctx)
	if err != nil {
		return apperr.Wrap(apperr.KindUpstream, "vector index unavailable", err)
	}

	count, err := conn.UpsertVectors(ctx, vectors)
	if err != nil {
		return apperr.Wrap(apperr.KindUpstream, "vector index write failed", err)
	}

	s.log.WithPayload(map[string]interface{}{"index": s.indexName, "count": count}).
		Info("Upserted chunks into vector index")
	return nil
}

// Query runs a nearest-neighbor search and maps matches back to documents
// with their similarity scores.
func (s *PineconeStore) Query(ctx context.Context, embedding []float32, topK int) ([]*schema.Document, error) {
	conn, err := s.connection(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "vector index unavailable", err)
	}

	res, err := conn.QueryByVectorValues(ctx, &pc.QueryByVectorValuesRequest{
		Vector:          embedding,
		TopK:            uint32(topK),
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "vector index query failed", err)
	}

	docs := make([]*schema.Document, 0, len(res.Matches))
	for _, match := range res.Matches {
		if match.Vector == nil {
			continue
		}
		doc := &schema.Document{
			ID:       match.Vector.Id,
			Score:    match.Score,
			Metadata: map[string]interface{}{},
		}
		if match.Vector.Metadata != nil {
			for k, v := range match.Vector.Metadata.AsMap() {
				if k == schema.MetadataKeyText {
					doc.Text, _ = v.(string)
					continue
				}
				doc.Metadata[k] = v
			}
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

var _ interfaces.VectorStore = (*PineconeStore)(nil)
