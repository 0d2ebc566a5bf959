// ABOUTME: In-memory checkpoint saver for tests and single-process use
// ABOUTME: Stores deep copies via JSON round-trip to avoid aliasing
package checkpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/villard/rag-gateway/internal/models"
)

// MemorySaver keeps checkpoints in a mutex-guarded map
type MemorySaver struct {
	mu     sync.RWMutex
	states map[string][]byte
}

// NewMemorySaver creates an empty in-memory saver
func NewMemorySaver() *MemorySaver {
	return &MemorySaver{states: make(map[string][]byte)}
}

// Save stores a snapshot of the state for the thread
func (m *MemorySaver) Save(ctx context.Context, threadID string, state models.WorkflowState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[threadID] = data
	return nil
}

// Load returns the saved state for the thread
func (m *MemorySaver) Load(ctx context.Context, threadID string) (models.WorkflowState, bool, error) {
	m.mu.RLock()
	data, ok := m.states[threadID]
	m.mu.RUnlock()

	if !ok {
		return models.WorkflowState{}, false, nil
	}

	var state models.WorkflowState
	if err := json.Unmarshal(data, &state); err != nil {
		return models.WorkflowState{}, false, fmt.Errorf("failed to decode checkpoint: %w", err)
	}
	return state, true, nil
}
