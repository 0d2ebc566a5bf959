// ABOUTME: MCP tool handler implementations for the RAG gateway
// ABOUTME: Maps tool arguments onto the workflow engine and the ingestor
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/villard/rag-gateway/internal/models"
)

// Handlers contains the handler functions for the gateway's MCP tools
type Handlers struct {
	engine   WorkflowRunner
	ingestor DocumentIngestor
}

// RagQuery handles the rag_query tool
func (h *Handlers) RagQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	clientID, err := request.RequireString("client_id")
	if err != nil {
		return mcp.NewToolResultError("client_id argument is required and must be a string"), nil
	}

	sessionID := request.GetString("session_id", "")
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	final := h.engine.Run(ctx, models.NewWorkflowState(clientID, query), sessionID)
	if final.Error != "" {
		return mcp.NewToolResultError(final.Error), nil
	}

	sources := make([]map[string]interface{}, 0, len(final.RetrievedDocs))
	for _, doc := range final.RetrievedDocs {
		sources = append(sources, map[string]interface{}{
			"content":  doc.Content,
			"metadata": doc.Metadata,
			"score":    doc.Score,
		})
	}

	response := map[string]interface{}{
		"answer":     final.FinalResponse,
		"domain":     string(final.Domain),
		"session_id": sessionID,
		"sources":    sources,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// IngestDocument handles the ingest_document tool
func (h *Handlers) IngestDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}
	clientID, err := request.RequireString("client_id")
	if err != nil {
		return mcp.NewToolResultError("client_id argument is required and must be a string"), nil
	}
	domainArg, err := request.RequireString("domain")
	if err != nil {
		return mcp.NewToolResultError("domain argument is required and must be a string"), nil
	}

	domain := models.Domain(domainArg)
	if !domain.IsValid() {
		return mcp.NewToolResultError("domain must be one of: accounting, transaction, operations"), nil
	}

	source := request.GetString("source", "mcp")

	chunks, err := h.ingestor.IngestText(ctx, clientID, domain, source, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingestion failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"status": "ok",
		"chunks": chunks,
		"domain": string(domain),
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}
