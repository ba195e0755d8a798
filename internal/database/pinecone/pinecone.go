// Package pinecone wraps the Pinecone client with the small surface the
// ingestion and retrieval pipelines need: ensure an index exists with the
// expected dimensionality, and open a connection to it.
package pinecone

import (
	"context"
	"fmt"

	"github.com/pinecone-io/go-pinecone/v2/pinecone"

	"tradebot/pkg/logger"
)

// serverlessCloud and serverlessRegion locate newly created indexes.
const (
	serverlessCloud  = pinecone.Aws
	serverlessRegion = "us-east-1"
)

// Client wraps a Pinecone API client.
type Client struct {
	pc  *pinecone.Client
	log *logger.Logger
}

// New creates a Client authenticated with the given API key.
func New(apiKey string, log *logger.Logger) (*Client, error) {
	pc, err := pinecone.NewClient(pinecone.NewClientParams{ApiKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create pinecone client: %w", err)
	}
	return &Client{pc: pc, log: log}, nil
}

// EnsureIndex verifies that the named index exists, creating it with the
// given dimensionality and a cosine similarity metric when it does not.
// It returns the index description either way.
func (c *Client) EnsureIndex(ctx context.Context, name string, dimension int) (*pinecone.Index, error) {
	indexes, err := c.pc.ListIndexes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list indexes: %w", err)
	}

	for _, idx := range indexes {
		if idx.Name != name {
			continue
		}
		if int(idx.Dimension) != dimension {
			return nil, fmt.Errorf("index %s has dimension %d, embedding model produces %d",
				name, idx.Dimension, dimension)
		}
		return idx, nil
	}

	c.log.WithPayload(map[string]interface{}{"index": name, "dimension": dimension}).
		Info("Index not found, creating it")

	idx, err := c.pc.CreateServerlessIndex(ctx, &pinecone.CreateServerlessIndexRequest{
		Name:      name,
		Dimension: int32(dimension),
		Metric:    pinecone.Cosine,
		Cloud:     serverlessCloud,
		Region:    serverlessRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create index %s: %w", name, err)
	}
	return idx, nil
}

// Connection opens a data-plane connection to the named index.
func (c *Client) Connection(ctx context.Context, name string) (*pinecone.IndexConnection, error) {
	idx, err := c.pc.DescribeIndex(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to describe index %s: %w", name, err)
	}

	conn, err := c.pc.Index(pinecone.NewIndexConnParams{Host: idx.Host})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to index %s: %w", name, err)
	}
	return conn, nil
}
