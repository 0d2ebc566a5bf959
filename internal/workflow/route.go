// ABOUTME: Routing stage: classifies the query into a business domain
// ABOUTME: Unknown labels fall back to the default domain, never an error
package workflow

import (
	"context"
	"fmt"

	"github.com/villard/rag-gateway/internal/models"
)

// RoutingStage classifies the current query into one of the closed set
// of domains using a single LLM call
type RoutingStage struct {
	classifier Classifier
}

// NewRoutingStage creates a routing stage with the given classifier
func NewRoutingStage(classifier Classifier) *RoutingStage {
	return &RoutingStage{classifier: classifier}
}

// Name identifies the stage
func (s *RoutingStage) Name() string { return "route" }

// Run extracts the query text, classifies it, and sets the domain.
// An invalid classifier label is replaced by the fallback domain:
// misclassification must never abort a request. Provider failures are
// returned to the engine.
func (s *RoutingStage) Run(ctx context.Context, state models.WorkflowState) (models.WorkflowState, error) {
	query := state.Query
	if query == "" {
		query = state.LastMessageText()
	}
	if query == "" {
		return state, fmt.Errorf("no query or messages to route")
	}

	label, err := s.classifier.Classify(ctx, query)
	if err != nil {
		return state, err
	}

	domain := models.ParseDomain(label)

	return state.
		WithQuery(query).
		WithDomain(domain).
		WithContextValue("routing_label", label).
		WithStep(models.StepRouted), nil
}
