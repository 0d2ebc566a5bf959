// ABOUTME: Rerank stage: reorders candidates by relevance via the rerank provider
// ABOUTME: Empty candidate sets skip the provider call entirely
package workflow

import (
	"context"

	"github.com/villard/rag-gateway/internal/models"
)

// DefaultRerankTopN is the fixed size of the reranked subset
const DefaultRerankTopN = 4

// RerankStage submits retrieved candidates to the rerank provider and
// replaces them with the reordered, truncated subset
type RerankStage struct {
	reranker Reranker
	topN     int
}

// NewRerankStage creates a rerank stage. topN <= 0 selects the default.
func NewRerankStage(reranker Reranker, topN int) *RerankStage {
	if topN <= 0 {
		topN = DefaultRerankTopN
	}
	return &RerankStage{reranker: reranker, topN: topN}
}

// Name identifies the stage
func (s *RerankStage) Name() string { return "rerank" }

// Run reranks retrieved_docs. With no candidates the stage advances
// without calling the provider, avoiding wasted calls and provider
// errors on empty input.
func (s *RerankStage) Run(ctx context.Context, state models.WorkflowState) (models.WorkflowState, error) {
	if len(state.RetrievedDocs) == 0 {
		return state.WithStep(models.StepReranked), nil
	}

	docs, err := s.reranker.Rerank(ctx, state.Query, state.RetrievedDocs, s.topN)
	if err != nil {
		return state, err
	}

	return state.WithDocs(docs).WithStep(models.StepReranked), nil
}
