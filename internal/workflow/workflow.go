// ABOUTME: Provider interfaces and stage contract for the RAG pipeline
// ABOUTME: Concrete providers are injected at construction, never held as globals
package workflow

import (
	"context"

	"github.com/villard/rag-gateway/internal/models"
)

// Classifier classifies a query into a business domain label
type Classifier interface {
	Classify(ctx context.Context, query string) (string, error)
}

// Embedder produces an embedding vector for a text. The model must be
// consistent with whatever populated the vector store at ingestion time.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Generator produces a completion from a system prompt and conversation
// history
type Generator interface {
	Generate(ctx context.Context, systemPrompt string, history []models.Message) (string, error)
}

// Reranker reorders and truncates candidate documents by relevance
type Reranker interface {
	Rerank(ctx context.Context, query string, docs []models.Document, topN int) ([]models.Document, error)
}

// SearchStore performs nearest-neighbor search within one collection
type SearchStore interface {
	Search(ctx context.Context, collection string, vector []float32, k int) ([]models.Document, error)
}

// Stage is one step of the pipeline. Run returns a new state built from
// structural updates; it never mutates its input. A returned error is
// converted by the engine into a run-level state error.
type Stage interface {
	Name() string
	Run(ctx context.Context, state models.WorkflowState) (models.WorkflowState, error)
}
