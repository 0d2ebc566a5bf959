// ABOUTME: Retrieval stage: nearest-neighbor search scoped to one tenant collection
// ABOUTME: The collection key {domain}_{clientID} enforces the isolation boundary
package workflow

import (
	"context"
	"fmt"

	"github.com/villard/rag-gateway/internal/models"
	"github.com/villard/rag-gateway/internal/vectorstore"
)

// DefaultRetrieveK is the fixed candidate count fetched before reranking
const DefaultRetrieveK = 10

// RetrievalStage embeds the query and fetches top-K candidates from the
// (domain, client) collection
type RetrievalStage struct {
	embedder Embedder
	store    SearchStore
	k        int
}

// NewRetrievalStage creates a retrieval stage. k <= 0 selects the default.
func NewRetrievalStage(embedder Embedder, store SearchStore, k int) *RetrievalStage {
	if k <= 0 {
		k = DefaultRetrieveK
	}
	return &RetrievalStage{embedder: embedder, store: store, k: k}
}

// Name identifies the stage
func (s *RetrievalStage) Name() string { return "retrieve" }

// Run replaces retrieved_docs with the top-K nearest neighbors of the
// query embedding. An empty or unknown collection yields an empty
// sequence, not an error.
func (s *RetrievalStage) Run(ctx context.Context, state models.WorkflowState) (models.WorkflowState, error) {
	if state.ClientID == "" {
		return state, fmt.Errorf("retrieval requires a client identifier")
	}
	if !state.Domain.IsValid() {
		return state, fmt.Errorf("retrieval requires a routed domain, got %q", state.Domain)
	}

	vector, err := s.embedder.Embed(ctx, state.Query)
	if err != nil {
		return state, err
	}

	collection := vectorstore.CollectionKey(state.Domain, state.ClientID)
	docs, err := s.store.Search(ctx, collection, vector, s.k)
	if err != nil {
		return state, err
	}

	return state.WithDocs(docs).WithStep(models.StepRetrieved), nil
}
