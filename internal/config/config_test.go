// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies environment variable parsing and validation
package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear environment to test defaults
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify defaults
	if cfg.ServerAddr != ":8080" {
		t.Errorf("ServerAddr = %s, want :8080", cfg.ServerAddr)
	}
	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %s, want gpt-4o-mini", cfg.ChatModel)
	}
	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %s, want text-embedding-3-small", cfg.EmbeddingModel)
	}
	if cfg.RerankModel != "rerank-english-v3.0" {
		t.Errorf("RerankModel = %s, want rerank-english-v3.0", cfg.RerankModel)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.RetrieveK != 10 {
		t.Errorf("RetrieveK = %d, want 10", cfg.RetrieveK)
	}
	if cfg.RerankTopN != 4 {
		t.Errorf("RerankTopN = %d, want 4", cfg.RerankTopN)
	}
	if cfg.ChunkSize != 1000 {
		t.Errorf("ChunkSize = %d, want 1000", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap != 200 {
		t.Errorf("ChunkOverlap = %d, want 200", cfg.ChunkOverlap)
	}
	if cfg.CheckpointTTL != 24*time.Hour {
		t.Errorf("CheckpointTTL = %v, want 24h", cfg.CheckpointTTL)
	}
	if cfg.VectorDimension != 1536 {
		t.Errorf("VectorDimension = %d, want 1536", cfg.VectorDimension)
	}
	if cfg.RedisURL != "" {
		t.Errorf("RedisURL = %s, want empty (local checkpoint fallback)", cfg.RedisURL)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	// Set custom environment variables
	os.Clearenv()
	os.Setenv("RAG_SERVER_ADDR", ":9090")
	os.Setenv("DATABASE_URL", "postgres://db:5432/custom")
	os.Setenv("REDIS_URL", "redis://cache:6379/1")
	os.Setenv("OPENAI_API_KEY", "test-key")
	os.Setenv("RAG_OPENAI_MODEL", "gpt-4")
	os.Setenv("RAG_EMBEDDING_MODEL", "text-embedding-3-large")
	os.Setenv("RAG_PROVIDER_TIMEOUT", "60s")
	os.Setenv("COHERE_API_KEY", "co-key")
	os.Setenv("COHERE_RERANK_MODEL", "rerank-multilingual-v3.0")
	os.Setenv("RAG_RETRIEVE_K", "20")
	os.Setenv("RAG_RERANK_TOP_N", "6")
	os.Setenv("RAG_VECTOR_DIMENSION", "3072")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify custom values
	if cfg.ServerAddr != ":9090" {
		t.Errorf("ServerAddr = %s, want :9090", cfg.ServerAddr)
	}
	if cfg.DatabaseURL != "postgres://db:5432/custom" {
		t.Errorf("DatabaseURL = %s, want postgres://db:5432/custom", cfg.DatabaseURL)
	}
	if cfg.RedisURL != "redis://cache:6379/1" {
		t.Errorf("RedisURL = %s, want redis://cache:6379/1", cfg.RedisURL)
	}
	if cfg.OpenAIKey != "test-key" {
		t.Errorf("OpenAIKey = %s, want test-key", cfg.OpenAIKey)
	}
	if cfg.ChatModel != "gpt-4" {
		t.Errorf("ChatModel = %s, want gpt-4", cfg.ChatModel)
	}
	if cfg.EmbeddingModel != "text-embedding-3-large" {
		t.Errorf("EmbeddingModel = %s, want text-embedding-3-large", cfg.EmbeddingModel)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.Timeout)
	}
	if cfg.CohereKey != "co-key" {
		t.Errorf("CohereKey = %s, want co-key", cfg.CohereKey)
	}
	if cfg.RerankModel != "rerank-multilingual-v3.0" {
		t.Errorf("RerankModel = %s, want rerank-multilingual-v3.0", cfg.RerankModel)
	}
	if cfg.RetrieveK != 20 {
		t.Errorf("RetrieveK = %d, want 20", cfg.RetrieveK)
	}
	if cfg.RerankTopN != 6 {
		t.Errorf("RerankTopN = %d, want 6", cfg.RerankTopN)
	}
	if cfg.VectorDimension != 3072 {
		t.Errorf("VectorDimension = %d, want 3072", cfg.VectorDimension)
	}
}

func TestValidate_InvalidRetrieveK(t *testing.T) {
	cfg := &Config{
		RetrieveK:       0,
		RerankTopN:      4,
		ChunkSize:       1000,
		ChunkOverlap:    200,
		VectorDimension: 1536,
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for RetrieveK <= 0")
	}
}

func TestValidate_InvalidRerankTopN(t *testing.T) {
	cfg := &Config{
		RetrieveK:       10,
		RerankTopN:      -1,
		ChunkSize:       1000,
		ChunkOverlap:    200,
		VectorDimension: 1536,
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for RerankTopN <= 0")
	}
}

func TestValidate_OverlapLargerThanChunk(t *testing.T) {
	cfg := &Config{
		RetrieveK:       10,
		RerankTopN:      4,
		ChunkSize:       100,
		ChunkOverlap:    100,
		VectorDimension: 1536,
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail when overlap >= chunk size")
	}
}

func TestValidate_InvalidMaxRetries(t *testing.T) {
	cfg := &Config{
		RetrieveK:       10,
		RerankTopN:      4,
		ChunkSize:       1000,
		ChunkOverlap:    200,
		MaxRetries:      15,
		VectorDimension: 1536,
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for MaxRetries > 10")
	}

	cfg.MaxRetries = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for MaxRetries < 0")
	}
}
