// ABOUTME: Document ingestor: chunks, embeds, and stores into tenant collections
// ABOUTME: Embedding calls retry with backoff; ingestion is outside the query pipeline
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/villard/rag-gateway/internal/models"
	"github.com/villard/rag-gateway/internal/util"
	"github.com/villard/rag-gateway/internal/vectorstore"
)

// Embedder produces embedding vectors for chunks
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// DocumentStore persists chunks with their embeddings
type DocumentStore interface {
	Add(ctx context.Context, collection string, docs []models.Document, vectors [][]float32) error
}

// Config holds ingestion parameters
type Config struct {
	ChunkSize    int
	ChunkOverlap int
	MaxRetries   int
	RetryDelay   time.Duration
}

// Ingestor turns raw document text into stored, embedded chunks
type Ingestor struct {
	embedder Embedder
	store    DocumentStore
	cfg      Config
}

// New creates an Ingestor. Zero config values fall back to the
// 1000/200 chunking defaults with 3 retries.
func New(embedder Embedder, store DocumentStore, cfg Config) *Ingestor {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 1000
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = 200
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	return &Ingestor{embedder: embedder, store: store, cfg: cfg}
}

// IngestText chunks and stores a document into the (domain, client)
// collection, tagging every chunk with its source. Returns the number
// of chunks stored.
func (ing *Ingestor) IngestText(ctx context.Context, clientID string, domain models.Domain, source, text string) (int, error) {
	if clientID == "" {
		return 0, fmt.Errorf("client identifier is required")
	}
	if !domain.IsValid() {
		return 0, fmt.Errorf("invalid domain %q", domain)
	}

	chunks := ChunkText(text, ing.cfg.ChunkSize, ing.cfg.ChunkOverlap)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("document contains no text")
	}

	docs := make([]models.Document, len(chunks))
	vectors := make([][]float32, len(chunks))
	for i, chunk := range chunks {
		vec, err := ing.embedWithRetry(ctx, chunk)
		if err != nil {
			return 0, fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}
		docs[i] = models.Document{
			Content: chunk,
			Metadata: map[string]interface{}{
				"source":    source,
				"client_id": clientID,
				"domain":    string(domain),
				"chunk":     i,
			},
		}
		vectors[i] = vec
	}

	collection := vectorstore.CollectionKey(domain, clientID)
	if err := ing.store.Add(ctx, collection, docs, vectors); err != nil {
		return 0, fmt.Errorf("failed to store chunks: %w", err)
	}

	return len(chunks), nil
}

func (ing *Ingestor) embedWithRetry(ctx context.Context, text string) ([]float32, error) {
	var lastErr error
	for attempt := 0; attempt <= ing.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(util.CalculateBackoff(ing.cfg.RetryDelay, attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		vec, err := ing.embedder.Embed(ctx, text)
		if err == nil {
			return vec, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("after %d attempts: %w", ing.cfg.MaxRetries+1, lastErr)
}
