// ABOUTME: Checkpoint Saver contract for per-thread workflow state persistence
// ABOUTME: Backends: in-memory (tests), Redis (server), SQLite (CLI)
package checkpoint

import (
	"context"

	"github.com/villard/rag-gateway/internal/models"
)

// Saver persists workflow state keyed by an opaque, caller-supplied
// thread identifier. It provides conversation continuity across calls.
type Saver interface {
	// Save stores a snapshot of the state for the thread
	Save(ctx context.Context, threadID string, state models.WorkflowState) error

	// Load returns the saved state for the thread; ok is false when no
	// checkpoint exists
	Load(ctx context.Context, threadID string) (state models.WorkflowState, ok bool, err error)
}
