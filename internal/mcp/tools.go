// ABOUTME: MCP tool definitions and registration for the RAG gateway
// ABOUTME: Exposes rag_query and ingest_document over the MCP stdio transport
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/villard/rag-gateway/internal/models"
)

// WorkflowRunner executes one pipeline run for a thread
type WorkflowRunner interface {
	Run(ctx context.Context, initial models.WorkflowState, threadID string) models.WorkflowState
}

// DocumentIngestor stores a document into a tenant collection
type DocumentIngestor interface {
	IngestText(ctx context.Context, clientID string, domain models.Domain, source, text string) (int, error)
}

// RegisterTools registers the gateway's MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, engine WorkflowRunner, ingestor DocumentIngestor) *Handlers {
	handlers := &Handlers{
		engine:   engine,
		ingestor: ingestor,
	}

	// 1. rag_query - Run the retrieval pipeline and answer a question
	server.AddTool(mcp.Tool{
		Name:        "rag_query",
		Description: "Answer a question using documents from the client's knowledge base. Routes the query to a domain, retrieves and reranks relevant chunks, and generates a grounded answer.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Question to answer",
				},
				"client_id": map[string]interface{}{
					"type":        "string",
					"description": "Tenant identifier whose collections are searched",
				},
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Optional conversation thread ID for multi-turn context",
				},
			},
			Required: []string{"query", "client_id"},
		},
	}, handlers.RagQuery)

	// 2. ingest_document - Chunk, embed, and store a document
	server.AddTool(mcp.Tool{
		Name:        "ingest_document",
		Description: "Ingest a text document into the client's knowledge base for a given domain. The text is chunked, embedded, and stored in the tenant's collection.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Document text to ingest",
				},
				"client_id": map[string]interface{}{
					"type":        "string",
					"description": "Tenant identifier owning the document",
				},
				"domain": map[string]interface{}{
					"type":        "string",
					"description": "Target domain: accounting, transaction, or operations",
					"enum":        []string{"accounting", "transaction", "operations"},
				},
				"source": map[string]interface{}{
					"type":        "string",
					"description": "Source name recorded in chunk metadata (default: mcp)",
				},
			},
			Required: []string{"text", "client_id", "domain"},
		},
	}, handlers.IngestDocument)

	return handlers
}
