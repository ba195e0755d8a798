package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider names accepted under model_provider.provider.
const (
	ProviderAzure  = "azure"
	ProviderGroq   = "groq"
	ProviderGoogle = "google"
)

// ModelProviderConfig selects which of the supported providers is active.
type ModelProviderConfig struct {
	Provider string `yaml:"provider"` // one of: azure, groq, google
}

// EmbeddingModelConfig holds the embedding model settings of one provider.
type EmbeddingModelConfig struct {
	ModelName string `yaml:"model_name"` // provider-specific embedding model identifier
	Dimension int    `yaml:"dimension"`  // output vector dimensionality; must match the index
}

// EmbeddingConfig holds the per-provider embedding model settings.
type EmbeddingConfig struct {
	Azure  EmbeddingModelConfig `yaml:"azure"`
	Groq   EmbeddingModelConfig `yaml:"groq"`
	Google EmbeddingModelConfig `yaml:"google"`
}

// LLMModelConfig holds the chat model settings of one provider.
type LLMModelConfig struct {
	ModelName  string `yaml:"model_name"`
	APIVersion string `yaml:"api_version,omitempty"` // azure only
}

// LLMConfig holds the per-provider chat model settings.
type LLMConfig struct {
	Azure  LLMModelConfig `yaml:"azure"`
	Groq   LLMModelConfig `yaml:"groq"`
	Google LLMModelConfig `yaml:"google"`
}

// VectorDBIndexConfig names the vector index used by one provider.
type VectorDBIndexConfig struct {
	IndexName string `yaml:"index_name"`
}

// VectorDBConfig holds the per-provider vector index settings.
type VectorDBConfig struct {
	Azure  VectorDBIndexConfig `yaml:"azure"`
	Groq   VectorDBIndexConfig `yaml:"groq"`
	Google VectorDBIndexConfig `yaml:"google"`
}

// RetrieverConfig tunes the similarity search.
type RetrieverConfig struct {
	TopK           int     `yaml:"top_k"`
	ScoreThreshold float32 `yaml:"score_threshold"`
}

// TavilyConfig tunes the web-search tool.
type TavilyConfig struct {
	MaxResults int `yaml:"max_results"`
}

// ToolsConfig groups the tool settings.
type ToolsConfig struct {
	Tavily TavilyConfig `yaml:"tavily"`
}

// RateLimiterConfig configures the token-bucket limiter on the HTTP API.
type RateLimiterConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Rate     float64 `yaml:"rate"`     // tokens per second
	Capacity int     `yaml:"capacity"` // burst size
}

// MiddlewareConfig groups HTTP middleware settings.
type MiddlewareConfig struct {
	RateLimiter RateLimiterConfig `yaml:"rate_limiter"`
}

// AppConfig is the root of the YAML configuration file.
type AppConfig struct {
	ModelProvider  ModelProviderConfig `yaml:"model_provider"`
	EmbeddingModel EmbeddingConfig     `yaml:"embedding_model"`
	LLM            LLMConfig           `yaml:"llm"`
	VectorDB       VectorDBConfig      `yaml:"vector_db"`
	Retriever      RetrieverConfig     `yaml:"retriever"`
	Tools          ToolsConfig         `yaml:"tools"`
	Middleware     MiddlewareConfig    `yaml:"middleware"`
}

// LoadConfig reads and parses the YAML configuration file at path.
func LoadConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Env holds the secrets read from the process environment.
type Env struct {
	GoogleAPIKey        string
	GroqAPIKey          string
	PineconeAPIKey      string
	AzureOpenAIAPIKey   string
	AzureOpenAIEndpoint string

	// Optional tool credentials. Their tools report errors to the model
	// when the key is absent instead of blocking startup.
	TavilyAPIKey  string
	PolygonAPIKey string
}

// MissingOptional names the optional tool credentials that are unset, so
// startup can warn that the corresponding tools will report errors.
func (e *Env) MissingOptional() []string {
	var missing []string
	if e.TavilyAPIKey == "" {
		missing = append(missing, "TAVILY_API_KEY")
	}
	if e.PolygonAPIKey == "" {
		missing = append(missing, "POLYGON_API_KEY")
	}
	return missing
}

var requiredEnvVars = []string{
	"GOOGLE_API_KEY",
	"GROQ_API_KEY",
	"PINECONE_API_KEY",
	"AZURE_OPENAI_API_KEY",
	"AZURE_OPENAI_ENDPOINT",
}

// LoadEnv reads the required environment variables. Any missing required
// variable is a fatal configuration error reported at startup.
func LoadEnv() (*Env, error) {
	var missing []string
	for _, name := range requiredEnvVars {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}

	return &Env{
		GoogleAPIKey:        os.Getenv("GOOGLE_API_KEY"),
		GroqAPIKey:          os.Getenv("GROQ_API_KEY"),
		PineconeAPIKey:      os.Getenv("PINECONE_API_KEY"),
		AzureOpenAIAPIKey:   os.Getenv("AZURE_OPENAI_API_KEY"),
		AzureOpenAIEndpoint: os.Getenv("AZURE_OPENAI_ENDPOINT"),
		TavilyAPIKey:        os.Getenv("TAVILY_API_KEY"),
		PolygonAPIKey:       os.Getenv("POLYGON_API_KEY"),
	}, nil
}
