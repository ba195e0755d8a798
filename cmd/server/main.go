package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"tradebot/internal/agent"
	"tradebot/internal/config"
	"tradebot/internal/database/pinecone"
	"tradebot/internal/provider"
	"tradebot/internal/rag/pipeline"
	"tradebot/internal/rag/splitters"
	"tradebot/internal/rag/vectorstore"
	"tradebot/internal/server/api"
	"tradebot/internal/tools"
	"tradebot/pkg/circuitbreaker"
	"tradebot/pkg/httpclient"
	"tradebot/pkg/logger"
)

const systemPrompt = "You are a stock market analyst assistant. Answer questions about " +
	"companies, markets and the user's uploaded financial documents. Prefer the " +
	"retrieve_documents tool for anything the documents may cover, web_search for " +
	"recent events, and stock_financials for fundamentals by ticker. Cite which " +
	"source your answer came from. If the available information is insufficient, " +
	"say so instead of guessing."

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML configuration file")
	addr := flag.String("addr", ":8000", "listen address")
	flag.Parse()

	logger.Init(logrus.InfoLevel)
	log := logger.New("server", "")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	env, err := config.LoadEnv()
	if err != nil {
		log.WithError(err).Fatal("Failed to load environment")
	}
	for _, name := range env.MissingOptional() {
		log.WithPayload(map[string]interface{}{"variable": name}).
			Warn("Optional credential not set, its tool will report errors")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	prov, err := provider.Resolve(ctx, cfg, env)
	if err != nil {
		log.WithError(err).Fatal("Failed to resolve model provider")
	}
	log.WithPayload(map[string]interface{}{
		"provider": prov.Name,
		"index":    prov.IndexName,
	}).Info("Model provider resolved")

	pcClient, err := pinecone.New(env.PineconeAPIKey, logger.New("pinecone", ""))
	if err != nil {
		log.WithError(err).Fatal("Failed to create vector database client")
	}
	store := vectorstore.NewPineconeStore(pcClient, prov.IndexName, prov.Dimension, logger.New("vectorstore", ""))

	splitter, err := splitters.NewCharacterSplitter(splitters.DefaultChunkSize, splitters.DefaultChunkOverlap)
	if err != nil {
		log.WithError(err).Fatal("Failed to create splitter")
	}

	ingestion := pipeline.NewIngestionPipeline(splitter, prov.Embedder, store, logger.New("ingestion", ""))
	retrieval := pipeline.NewRetrievalPipeline(prov.Embedder, store,
		cfg.Retriever.TopK, cfg.Retriever.ScoreThreshold, logger.New("retrieval", ""))

	searchClient := httpclient.New(
		httpclient.WithBreaker(circuitbreaker.New(5, 2, 30*time.Second)),
	)
	registry := tools.NewRegistry(
		tools.NewRetrieverTool(retrieval),
		tools.NewWebSearchTool(tools.NewTavilyClient(searchClient, env.TavilyAPIKey, cfg.Tools.Tavily.MaxResults)),
		tools.NewFinancialsTool(tools.NewFinancialsClient(env.PolygonAPIKey)),
	)

	model, err := prov.NewLLM(ctx, systemPrompt, registry.Schemas())
	if err != nil {
		log.WithError(err).Fatal("Failed to create chat model")
	}
	graph := agent.NewGraph(model, registry, logger.New("agent", ""))

	handler := api.NewHandler(ingestion, graph, logger.New("api", ""))
	router := api.NewRouter(handler, cfg.Middleware)

	srv := &http.Server{
		Addr:    *addr,
		Handler: router,
	}

	go func() {
		log.WithPayload(map[string]interface{}{"addr": *addr}).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown failed")
		os.Exit(1)
	}
	log.Info("Server stopped")
}
