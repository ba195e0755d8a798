package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleYAML = `
model_provider:
  provider: groq

embedding_model:
  google:
    model_name: embedding-001
    dimension: 768
  groq:
    model_name: embedding-001
    dimension: 768

llm:
  azure:
    model_name: gpt-4o
    api_version: 2024-08-01-preview
  groq:
    model_name: llama-3.3-70b-versatile

vector_db:
  groq:
    index_name: stock-docs-groq

retriever:
  top_k: 5
  score_threshold: 0.5

tools:
  tavily:
    max_results: 3

middleware:
  rate_limiter:
    enabled: true
    rate: 10
    capacity: 20
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.ModelProvider.Provider != ProviderGroq {
		t.Errorf("provider = %q", cfg.ModelProvider.Provider)
	}
	if cfg.EmbeddingModel.Groq.Dimension != 768 {
		t.Errorf("groq dimension = %d", cfg.EmbeddingModel.Groq.Dimension)
	}
	if cfg.LLM.Azure.APIVersion != "2024-08-01-preview" {
		t.Errorf("azure api_version = %q", cfg.LLM.Azure.APIVersion)
	}
	if cfg.VectorDB.Groq.IndexName != "stock-docs-groq" {
		t.Errorf("groq index = %q", cfg.VectorDB.Groq.IndexName)
	}
	if cfg.Retriever.TopK != 5 || cfg.Retriever.ScoreThreshold != 0.5 {
		t.Errorf("retriever = %+v", cfg.Retriever)
	}
	if cfg.Tools.Tavily.MaxResults != 3 {
		t.Errorf("tavily max_results = %d", cfg.Tools.Tavily.MaxResults)
	}
	if !cfg.Middleware.RateLimiter.Enabled || cfg.Middleware.RateLimiter.Capacity != 20 {
		t.Errorf("rate limiter = %+v", cfg.Middleware.RateLimiter)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, "model_provider: [unclosed")); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func setAllEnv(t *testing.T) {
	t.Helper()
	for _, name := range requiredEnvVars {
		t.Setenv(name, "value-for-"+name)
	}
}

func TestLoadEnv(t *testing.T) {
	setAllEnv(t)
	t.Setenv("TAVILY_API_KEY", "tv-key")

	env, err := LoadEnv()
	if err != nil {
		t.Fatal(err)
	}
	if env.PineconeAPIKey != "value-for-PINECONE_API_KEY" {
		t.Errorf("pinecone key = %q", env.PineconeAPIKey)
	}
	if env.TavilyAPIKey != "tv-key" {
		t.Errorf("tavily key = %q", env.TavilyAPIKey)
	}
	if env.PolygonAPIKey != "" {
		t.Errorf("polygon key = %q, want empty", env.PolygonAPIKey)
	}
}

func TestMissingOptional(t *testing.T) {
	setAllEnv(t)
	t.Setenv("TAVILY_API_KEY", "tv-key")

	env, err := LoadEnv()
	if err != nil {
		t.Fatal(err)
	}

	missing := env.MissingOptional()
	if len(missing) != 1 || missing[0] != "POLYGON_API_KEY" {
		t.Errorf("missing = %v, want [POLYGON_API_KEY]", missing)
	}

	env.PolygonAPIKey = "pg-key"
	if got := env.MissingOptional(); len(got) != 0 {
		t.Errorf("missing = %v, want none", got)
	}
}

func TestLoadEnvReportsAllMissing(t *testing.T) {
	setAllEnv(t)
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("AZURE_OPENAI_ENDPOINT", "")

	_, err := LoadEnv()
	if err == nil {
		t.Fatal("expected error for missing variables")
	}
	for _, want := range []string{"GROQ_API_KEY", "AZURE_OPENAI_ENDPOINT"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
	if strings.Contains(err.Error(), "GOOGLE_API_KEY") {
		t.Errorf("error %q names a variable that is set", err)
	}
}
