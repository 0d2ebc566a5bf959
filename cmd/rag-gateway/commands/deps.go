// ABOUTME: Provider construction shared by serve, chat, ingest, and mcp
// ABOUTME: Builds OpenAI, Cohere, pgvector, and checkpoint backends from config
package commands

import (
	"context"
	"fmt"
	"log"

	openai "github.com/sashabaranov/go-openai"

	"github.com/villard/rag-gateway/internal/checkpoint"
	"github.com/villard/rag-gateway/internal/config"
	"github.com/villard/rag-gateway/internal/ingest"
	"github.com/villard/rag-gateway/internal/llm"
	"github.com/villard/rag-gateway/internal/rerank"
	"github.com/villard/rag-gateway/internal/vectorstore"
	"github.com/villard/rag-gateway/internal/workflow"
)

// providers bundles everything a command needs to run the pipeline
type providers struct {
	engine   *workflow.Engine
	ingestor *ingest.Ingestor
	store    *vectorstore.Store
	saver    checkpoint.Saver
}

// newSaver picks the checkpoint backend. Redis wins when configured;
// long-running local commands get SQLite so threads survive restarts,
// everything else degrades to memory.
func newSaver(cfg *config.Config, preferLocal bool) (checkpoint.Saver, error) {
	if cfg.RedisURL != "" {
		saver, err := checkpoint.NewRedisSaver(cfg.RedisURL, cfg.CheckpointTTL)
		if err != nil {
			return nil, fmt.Errorf("connecting to Redis: %w", err)
		}
		return saver, nil
	}

	if preferLocal {
		saver, err := checkpoint.OpenSQLiteSaver(checkpoint.DefaultDBPath())
		if err != nil {
			return nil, fmt.Errorf("opening checkpoint database: %w", err)
		}
		return saver, nil
	}

	if verbose {
		log.Println("no REDIS_URL configured, checkpoints are in-memory only")
	}
	return checkpoint.NewMemorySaver(), nil
}

// buildProviders wires the full pipeline from configuration
func buildProviders(ctx context.Context, cfg *config.Config, preferLocal bool) (*providers, error) {
	openaiClient, err := llm.NewClient(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		Timeout:        cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing OpenAI client: %w", err)
	}

	reranker, err := rerank.NewClient(&rerank.ClientConfig{
		APIKey:  cfg.CohereKey,
		Model:   cfg.RerankModel,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing Cohere client: %w", err)
	}

	store, err := vectorstore.New(ctx, cfg.DatabaseURL, cfg.VectorDimension)
	if err != nil {
		return nil, fmt.Errorf("connecting to vector store: %w", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("preparing vector store schema: %w", err)
	}

	saver, err := newSaver(cfg, preferLocal)
	if err != nil {
		store.Close()
		return nil, err
	}

	engine := workflow.NewEngine(workflow.Options{
		Classifier: openaiClient,
		Embedder:   openaiClient,
		Generator:  openaiClient,
		Reranker:   reranker,
		Store:      store,
		Saver:      saver,
		RetrieveK:  cfg.RetrieveK,
		RerankTopN: cfg.RerankTopN,
	})

	ingestor := ingest.New(openaiClient, store, ingest.Config{
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
		MaxRetries:   cfg.MaxRetries,
		RetryDelay:   cfg.RetryDelay,
	})

	return &providers{
		engine:   engine,
		ingestor: ingestor,
		store:    store,
		saver:    saver,
	}, nil
}

// Close releases the pooled connections held by the providers
func (p *providers) Close() {
	if p.store != nil {
		p.store.Close()
	}
	if closer, ok := p.saver.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Printf("warning: closing checkpoint store: %v", err)
		}
	}
}
