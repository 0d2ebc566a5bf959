// ABOUTME: Generation stage: synthesizes a grounded answer from reranked sources
// ABOUTME: The context block preserves rerank order; source N is the N-th document
package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/villard/rag-gateway/internal/models"
)

const generatePromptHeader = `You are a helpful assistant answering questions about a client's business documents.
Ground every statement in the numbered sources below. Sources are ordered by relevance, most relevant first.
If the sources do not contain the answer, say that you could not find it in the available documents.`

// GenerationStage produces the final answer from the reranked documents
// and the full conversation history
type GenerationStage struct {
	generator Generator
}

// NewGenerationStage creates a generation stage with the given generator
func NewGenerationStage(generator Generator) *GenerationStage {
	return &GenerationStage{generator: generator}
}

// Name identifies the stage
func (s *GenerationStage) Name() string { return "generate" }

// Run builds the grounding prompt, calls the LLM with the full message
// history, and records the answer as both final_response and an
// appended assistant message. This is the terminal success state.
func (s *GenerationStage) Run(ctx context.Context, state models.WorkflowState) (models.WorkflowState, error) {
	systemPrompt := buildSystemPrompt(state.RetrievedDocs)

	answer, err := s.generator.Generate(ctx, systemPrompt, state.Messages)
	if err != nil {
		return state, err
	}

	return state.
		WithFinalResponse(answer).
		AppendMessage(models.NewAssistantMessage(answer)).
		WithStep(models.StepCompleted), nil
}

// buildSystemPrompt assembles the grounding instructions and the
// numbered context block, in rerank order
func buildSystemPrompt(docs []models.Document) string {
	var sb strings.Builder
	sb.WriteString(generatePromptHeader)
	sb.WriteString("\n\n")

	if len(docs) == 0 {
		sb.WriteString("No sources are available for this query.\n")
		return sb.String()
	}

	for i, doc := range docs {
		fmt.Fprintf(&sb, "Source %d:\n%s\n\n", i+1, doc.Content)
	}
	return sb.String()
}
