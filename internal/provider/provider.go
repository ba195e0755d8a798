// Package provider resolves the active model provider from configuration
// into concrete embedding and chat clients. Exactly one provider is active
// per process; switching providers means switching vector indexes too,
// since their embedding spaces are not compatible.
package provider

import (
	"context"
	"fmt"

	"tradebot/internal/apperr"
	"tradebot/internal/config"
	"tradebot/internal/embedding"
	"tradebot/internal/llm"
	"tradebot/internal/models"
)

// Provider bundles everything derived from the model_provider selection:
// the embedding client, the index it writes to, and a chat model factory.
type Provider struct {
	Name      string
	IndexName string
	Dimension int
	Embedder  embedding.Embedding

	cfg *config.AppConfig
	env *config.Env
}

// Resolve validates the configured provider and builds its embedding
// client. An unknown provider name or incomplete section is a
// configuration error.
func Resolve(ctx context.Context, cfg *config.AppConfig, env *config.Env) (*Provider, error) {
	p := &Provider{Name: cfg.ModelProvider.Provider, cfg: cfg, env: env}

	var embCfg config.EmbeddingModelConfig
	switch p.Name {
	case config.ProviderAzure:
		embCfg = cfg.EmbeddingModel.Azure
		p.IndexName = cfg.VectorDB.Azure.IndexName
	case config.ProviderGroq:
		embCfg = cfg.EmbeddingModel.Groq
		p.IndexName = cfg.VectorDB.Groq.IndexName
	case config.ProviderGoogle:
		embCfg = cfg.EmbeddingModel.Google
		p.IndexName = cfg.VectorDB.Google.IndexName
	default:
		return nil, apperr.New(apperr.KindValidation, fmt.Sprintf(
			"unknown model provider %q: must be one of azure, groq, google", p.Name))
	}

	if p.IndexName == "" {
		return nil, apperr.New(apperr.KindValidation, fmt.Sprintf(
			"vector_db.%s.index_name must not be empty", p.Name))
	}
	if embCfg.Dimension <= 0 {
		return nil, apperr.New(apperr.KindValidation, fmt.Sprintf(
			"embedding_model.%s.dimension must be positive", p.Name))
	}
	if embCfg.ModelName == "" {
		return nil, apperr.New(apperr.KindValidation, fmt.Sprintf(
			"embedding_model.%s.model_name must not be empty", p.Name))
	}
	p.Dimension = embCfg.Dimension

	var err error
	switch p.Name {
	case config.ProviderAzure:
		p.Embedder, err = embedding.NewAzureModel(env.AzureOpenAIAPIKey, env.AzureOpenAIEndpoint, embCfg.ModelName)
	default:
		// Groq serves chat only, so its embeddings come from the Google
		// embedding API.
		p.Embedder, err = embedding.NewGoogleModel(ctx, env.GoogleAPIKey, embCfg.ModelName)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build %s embedding client: %w", p.Name, err)
	}

	return p, nil
}

// NewLLM builds the chat model of the active provider with the given
// system prompt and tool declarations.
func (p *Provider) NewLLM(ctx context.Context, systemPrompt string, tools []models.ToolSchema) (llm.LLM, error) {
	switch p.Name {
	case config.ProviderAzure:
		return llm.NewAzure(p.cfg.LLM.Azure.ModelName, p.env.AzureOpenAIAPIKey,
			p.env.AzureOpenAIEndpoint, p.cfg.LLM.Azure.APIVersion, systemPrompt, tools)
	case config.ProviderGroq:
		return llm.NewGroq(p.cfg.LLM.Groq.ModelName, p.env.GroqAPIKey, systemPrompt, tools)
	case config.ProviderGoogle:
		return llm.NewGemini(ctx, p.cfg.LLM.Google.ModelName, p.env.GoogleAPIKey, systemPrompt, tools)
	default:
		return nil, apperr.New(apperr.KindValidation, fmt.Sprintf("unknown model provider %q", p.Name))
	}
}
