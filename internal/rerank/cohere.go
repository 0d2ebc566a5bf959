// ABOUTME: Cohere v2 rerank API client over HTTP
// ABOUTME: Reorders retrieved documents by relevance and attaches scores
package rerank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/villard/rag-gateway/internal/models"
)

// DefaultBaseURL is the Cohere API endpoint
const DefaultBaseURL = "https://api.cohere.com"

// DefaultModel is the standard rerank model
const DefaultModel = "rerank-english-v3.0"

// ClientConfig holds configuration for the Cohere client
type ClientConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client calls the Cohere v2 rerank endpoint
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// NewClient creates a new Cohere rerank client
func NewClient(config *ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Cohere API key is required")
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		apiKey:  config.APIKey,
		model:   config.Model,
		baseURL: config.BaseURL,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// request body for the v2 rerank endpoint
type rerankRequest struct {
	Model     string   `json:"model"`
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
	TopN      int      `json:"top_n"`
}

// response from the v2 rerank endpoint
type rerankResponse struct {
	Results []struct {
		Index          int     `json:"index"`
		RelevanceScore float64 `json:"relevance_score"`
	} `json:"results"`
}

// Rerank submits (query, document texts) and returns the reordered,
// possibly truncated subset ranked by descending relevance, with the
// provider's relevance score attached to each document.
func (c *Client) Rerank(ctx context.Context, query string, docs []models.Document, topN int) ([]models.Document, error) {
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Content
	}

	body, err := json.Marshal(rerankRequest{
		Model:     c.model,
		Query:     query,
		Documents: texts,
		TopN:      topN,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode rerank request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/rerank", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build rerank request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rerank request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("rerank returned status %d: %s", resp.StatusCode, string(detail))
	}

	var parsed rerankResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode rerank response: %w", err)
	}

	out := make([]models.Document, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		if r.Index < 0 || r.Index >= len(docs) {
			return nil, fmt.Errorf("rerank returned out-of-range index %d for %d documents", r.Index, len(docs))
		}
		doc := docs[r.Index]
		doc.Score = r.RelevanceScore
		out = append(out, doc)
	}
	return out, nil
}
