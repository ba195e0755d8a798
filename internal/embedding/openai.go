package embedding

import (
	"context"
	"fmt"

	openai "github.com/meguminnnnnnnnn/go-openai"
)

// AzureModel is an embedding client backed by an Azure OpenAI deployment.
type AzureModel struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewAzureModel creates an AzureModel for the named embedding deployment.
func NewAzureModel(apiKey, endpoint, modelName string) (*AzureModel, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("azure endpoint is required")
	}
	cfg := openai.DefaultAzureConfig(apiKey, endpoint)
	return &AzureModel{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.EmbeddingModel(modelName),
	}, nil
}

// Embed generates the embedding vector for one text.
func (m *AzureModel) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := m.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedding response was empty")
	}
	return vectors[0], nil
}

// EmbedBatch generates embedding vectors for a batch of texts.
func (m *AzureModel) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := m.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: m.model,
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}

	embeddings := make([][]float32, 0, len(resp.Data))
	for _, item := range resp.Data {
		embeddings = append(embeddings, item.Embedding)
	}
	return embeddings, nil
}

var _ Embedding = (*AzureModel)(nil)
