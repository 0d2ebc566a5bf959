// ABOUTME: Postgres + pgvector document store partitioned by collection key
// ABOUTME: The collection key {domain}_{clientID} is the multi-tenancy boundary
package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/villard/rag-gateway/internal/models"
)

// MaxConns bounds the shared connection pool used by concurrent runs
const MaxConns = 10

// CollectionKey derives the logical collection for a (domain, client)
// pair. This pairing is the isolation boundary: it must never be
// inferred from query content.
func CollectionKey(domain models.Domain, clientID string) string {
	return fmt.Sprintf("%s_%s", domain, clientID)
}

// Store persists document chunks and their embeddings in Postgres
type Store struct {
	pool      *pgxpool.Pool
	dimension int
}

// New connects to Postgres and returns a Store. The pool is safe for
// concurrent use across runs.
func New(ctx context.Context, databaseURL string, dimension int) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w", err)
	}
	cfg.MaxConns = MaxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	return &Store{pool: pool, dimension: dimension}, nil
}

// Close releases the connection pool
func (s *Store) Close() {
	s.pool.Close()
}

// EnsureSchema creates the documents table and supporting index
func (s *Store) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS documents (
			id BIGSERIAL PRIMARY KEY,
			collection TEXT NOT NULL,
			content TEXT NOT NULL,
			metadata JSONB,
			embedding VECTOR(%d),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, s.dimension),
		`CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents (collection)`,
	}

	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema setup failed: %w", err)
		}
	}
	return nil
}

// Add inserts document chunks with their embeddings into a collection
func (s *Store) Add(ctx context.Context, collection string, docs []models.Document, vectors [][]float32) error {
	if len(docs) != len(vectors) {
		return fmt.Errorf("document/vector count mismatch: %d vs %d", len(docs), len(vectors))
	}

	for i, doc := range docs {
		if len(vectors[i]) != s.dimension {
			return fmt.Errorf("chunk %d: embedding dimension %d, want %d", i, len(vectors[i]), s.dimension)
		}

		meta, err := json.Marshal(doc.Metadata)
		if err != nil {
			return fmt.Errorf("chunk %d: failed to encode metadata: %w", i, err)
		}

		_, err = s.pool.Exec(ctx,
			`INSERT INTO documents (collection, content, metadata, embedding) VALUES ($1, $2, $3, $4)`,
			collection, doc.Content, meta, pgvector.NewVector(vectors[i]))
		if err != nil {
			return fmt.Errorf("chunk %d: insert failed: %w", i, err)
		}
	}
	return nil
}

// Search returns the top-k nearest neighbors within one collection,
// ordered by ascending cosine distance. An empty or unknown collection
// yields an empty slice, never an error.
func (s *Store) Search(ctx context.Context, collection string, vector []float32, k int) ([]models.Document, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT content, metadata FROM documents
		 WHERE collection = $1
		 ORDER BY embedding <=> $2
		 LIMIT $3`,
		collection, pgvector.NewVector(vector), k)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}
	defer rows.Close()

	results := []models.Document{}
	for rows.Next() {
		var content string
		var meta []byte
		if err := rows.Scan(&content, &meta); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		doc := models.Document{Content: content}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &doc.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode metadata: %w", err)
			}
		}
		results = append(results, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	return results, nil
}
