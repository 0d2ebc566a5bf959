// ABOUTME: SQLite-backed checkpoint saver for CLI sessions
// ABOUTME: Uses modernc.org/sqlite for pure-Go SQLite support
package checkpoint

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/villard/rag-gateway/internal/models"
)

// DefaultDBPath returns the default checkpoint database path following
// the XDG spec
func DefaultDBPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".local", "share", "rag-gateway", "checkpoints.db")
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "rag-gateway", "checkpoints.db")
}

// SQLiteSaver persists checkpoints in a local SQLite database
type SQLiteSaver struct {
	conn *sql.DB
}

// OpenSQLiteSaver opens or creates the checkpoint database at path
func OpenSQLiteSaver(path string) (*SQLiteSaver, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create checkpoint directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint database: %w", err)
	}

	_, err = conn.Exec(`CREATE TABLE IF NOT EXISTS checkpoints (
		thread_id TEXT PRIMARY KEY,
		state TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create checkpoints table: %w", err)
	}

	return &SQLiteSaver{conn: conn}, nil
}

// Close closes the database connection
func (s *SQLiteSaver) Close() error {
	return s.conn.Close()
}

// Save stores a snapshot of the state for the thread
func (s *SQLiteSaver) Save(ctx context.Context, threadID string, state models.WorkflowState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}

	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO checkpoints (thread_id, state, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(thread_id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		threadID, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return nil
}

// Load returns the saved state for the thread
func (s *SQLiteSaver) Load(ctx context.Context, threadID string) (models.WorkflowState, bool, error) {
	var data string
	err := s.conn.QueryRowContext(ctx,
		`SELECT state FROM checkpoints WHERE thread_id = ?`, threadID).Scan(&data)
	if err == sql.ErrNoRows {
		return models.WorkflowState{}, false, nil
	}
	if err != nil {
		return models.WorkflowState{}, false, fmt.Errorf("failed to load checkpoint: %w", err)
	}

	var state models.WorkflowState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return models.WorkflowState{}, false, fmt.Errorf("failed to decode checkpoint: %w", err)
	}
	return state, true, nil
}
