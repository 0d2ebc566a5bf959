// ABOUTME: Redis-backed checkpoint saver used by the HTTP server
// ABOUTME: Checkpoints expire after a configurable TTL
package checkpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/villard/rag-gateway/internal/models"
)

const redisKeyPrefix = "rag:checkpoint:"

// RedisSaver persists checkpoints in Redis with a TTL
type RedisSaver struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSaver connects to Redis using a redis:// URL
func NewRedisSaver(redisURL string, ttl time.Duration) (*RedisSaver, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}
	return &RedisSaver{client: redis.NewClient(opts), ttl: ttl}, nil
}

// Ping verifies the Redis connection
func (r *RedisSaver) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the Redis connection
func (r *RedisSaver) Close() error {
	return r.client.Close()
}

// Save stores a snapshot of the state for the thread
func (r *RedisSaver) Save(ctx context.Context, threadID string, state models.WorkflowState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}

	if err := r.client.Set(ctx, redisKeyPrefix+threadID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return nil
}

// Load returns the saved state for the thread
func (r *RedisSaver) Load(ctx context.Context, threadID string) (models.WorkflowState, bool, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+threadID).Bytes()
	if err == redis.Nil {
		return models.WorkflowState{}, false, nil
	}
	if err != nil {
		return models.WorkflowState{}, false, fmt.Errorf("failed to load checkpoint: %w", err)
	}

	var state models.WorkflowState
	if err := json.Unmarshal(data, &state); err != nil {
		return models.WorkflowState{}, false, fmt.Errorf("failed to decode checkpoint: %w", err)
	}
	return state, true, nil
}
