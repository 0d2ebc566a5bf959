// ABOUTME: Centralized configuration for the RAG gateway
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the gateway
type Config struct {
	// Server settings
	ServerAddr string

	// Postgres / vector store settings
	DatabaseURL string

	// Redis checkpoint settings
	RedisURL      string
	CheckpointTTL time.Duration

	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration

	// Cohere rerank settings
	CohereKey   string
	RerankModel string

	// Pipeline settings
	RetrieveK  int
	RerankTopN int

	// Ingestion settings
	ChunkSize    int
	ChunkOverlap int
	MaxRetries   int
	RetryDelay   time.Duration

	// Embedding dimension expected by the vector store
	VectorDimension int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		ServerAddr:      getEnv("RAG_SERVER_ADDR", ":8080"),
		DatabaseURL:     getEnv("DATABASE_URL", "postgres://localhost:5432/rag_gateway"),
		// Empty RedisURL means checkpoints fall back to a local backend
		RedisURL:        os.Getenv("REDIS_URL"),
		CheckpointTTL:   getEnvDuration("RAG_CHECKPOINT_TTL", 24*time.Hour),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		ChatModel:       getEnv("RAG_OPENAI_MODEL", "gpt-4o-mini"),
		EmbeddingModel:  getEnv("RAG_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:         getEnvDuration("RAG_PROVIDER_TIMEOUT", 30*time.Second),
		CohereKey:       os.Getenv("COHERE_API_KEY"),
		RerankModel:     getEnv("COHERE_RERANK_MODEL", "rerank-english-v3.0"),
		RetrieveK:       getEnvInt("RAG_RETRIEVE_K", 10),
		RerankTopN:      getEnvInt("RAG_RERANK_TOP_N", 4),
		ChunkSize:       getEnvInt("RAG_CHUNK_SIZE", 1000),
		ChunkOverlap:    getEnvInt("RAG_CHUNK_OVERLAP", 200),
		MaxRetries:      getEnvInt("RAG_INGEST_MAX_RETRIES", 3),
		RetryDelay:      getEnvDuration("RAG_INGEST_RETRY_DELAY", 2*time.Second),
		VectorDimension: getEnvInt("RAG_VECTOR_DIMENSION", 1536),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.RetrieveK <= 0 {
		return fmt.Errorf("RAG_RETRIEVE_K must be positive, got %d", c.RetrieveK)
	}
	if c.RerankTopN <= 0 {
		return fmt.Errorf("RAG_RERANK_TOP_N must be positive, got %d", c.RerankTopN)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("RAG_CHUNK_OVERLAP (%d) must be smaller than RAG_CHUNK_SIZE (%d)", c.ChunkOverlap, c.ChunkSize)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("RAG_INGEST_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.VectorDimension <= 0 {
		return fmt.Errorf("RAG_VECTOR_DIMENSION must be positive, got %d", c.VectorDimension)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
