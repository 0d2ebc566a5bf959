// ABOUTME: Document chunk type flowing through retrieval, rerank, and generation
// ABOUTME: Score is zero after retrieval and populated by the rerank provider
package models

// Document is one retrieved chunk. Metadata carries ingestion-time
// attributes (source filename, client, domain). Score holds the rerank
// relevance score so downstream consumers can surface confidence.
type Document struct {
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Score    float64                `json:"score,omitempty"`
}
