// ABOUTME: Finite-state-machine engine sequencing the four pipeline stages
// ABOUTME: Linear transition table plus one absorbing error state; no graph library
package workflow

import (
	"context"
	"fmt"
	"log"

	"github.com/villard/rag-gateway/internal/checkpoint"
	"github.com/villard/rag-gateway/internal/models"
)

// Options configures an Engine. All providers are required; Saver may
// be nil to disable checkpointing.
type Options struct {
	Classifier Classifier
	Embedder   Embedder
	Generator  Generator
	Reranker   Reranker
	Store      SearchStore
	Saver      checkpoint.Saver

	// RetrieveK and RerankTopN fall back to the stage defaults when <= 0
	RetrieveK  int
	RerankTopN int
}

// Engine executes the fixed pipeline: route -> retrieve -> rerank ->
// generate. The transition table maps the step a run has reached to the
// stage that runs next; a set error field is the single escape hatch.
type Engine struct {
	transitions map[models.Step]Stage
	saver       checkpoint.Saver
}

// NewEngine builds the engine and its stages from the given providers
func NewEngine(opts Options) *Engine {
	return &Engine{
		transitions: map[models.Step]Stage{
			models.StepStart:     NewRoutingStage(opts.Classifier),
			models.StepRouted:    NewRetrievalStage(opts.Embedder, opts.Store, opts.RetrieveK),
			models.StepRetrieved: NewRerankStage(opts.Reranker, opts.RerankTopN),
			models.StepReranked:  NewGenerationStage(opts.Generator),
		},
		saver: opts.Saver,
	}
}

// next returns the stage to run from the current state, or nil when the
// run is terminal. An error on the state absorbs every step.
func (e *Engine) next(state models.WorkflowState) Stage {
	if state.Error != "" {
		return nil
	}
	return e.transitions[state.CurrentStep]
}

// Run executes the pipeline for one thread. The returned state is
// always well-formed: exactly one of final_response or error is
// populated once the step is completed or errored. Stage failures are
// converted to a state error, never raised.
//
// When a checkpoint exists for the thread, its message history is
// prepended to the initial state's messages so the generation stage
// sees the whole conversation.
func (e *Engine) Run(ctx context.Context, initial models.WorkflowState, threadID string) models.WorkflowState {
	state := e.restoreHistory(ctx, initial, threadID)

	for {
		stage := e.next(state)
		if stage == nil {
			break
		}

		next, err := stage.Run(ctx, state)
		if err != nil {
			state = state.WithError(fmt.Sprintf("%s stage failed: %v", stage.Name(), err))
			break
		}
		state = next
	}

	if e.saver != nil {
		if err := e.saver.Save(ctx, threadID, state); err != nil {
			// A checkpoint failure must not invalidate a finished run
			log.Printf("warning: failed to save checkpoint for thread %s: %v", threadID, err)
		}
	}

	return state
}

// restoreHistory merges a prior checkpoint's conversation into the
// initial state. Checkpoint load failures degrade to a fresh history.
func (e *Engine) restoreHistory(ctx context.Context, initial models.WorkflowState, threadID string) models.WorkflowState {
	if e.saver == nil {
		return initial
	}

	prior, ok, err := e.saver.Load(ctx, threadID)
	if err != nil {
		log.Printf("warning: failed to load checkpoint for thread %s: %v", threadID, err)
		return initial
	}
	if !ok || len(prior.Messages) == 0 {
		return initial
	}

	merged := make([]models.Message, 0, len(prior.Messages)+len(initial.Messages))
	merged = append(merged, prior.Messages...)
	merged = append(merged, initial.Messages...)

	state := initial
	state.Messages = merged
	return state
}
