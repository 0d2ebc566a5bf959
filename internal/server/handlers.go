// ABOUTME: Chat and ingest HTTP handlers
// ABOUTME: Callers always receive a terminal result; errored runs map to 500
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/villard/rag-gateway/internal/models"
)

const maxUploadBytes = 10 << 20 // 10 MiB

// ChatRequest is the /chat request body
type ChatRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
}

// SourceDocument is one grounding source returned to the caller
type SourceDocument struct {
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Score    float64                `json:"score,omitempty"`
}

// ChatResponse is the /chat response body
type ChatResponse struct {
	Answer    string           `json:"answer"`
	Sources   []SourceDocument `json:"sources"`
	SessionID string           `json:"session_id"`
	Domain    string           `json:"domain,omitempty"`
}

// IngestResponse is the /ingest response body
type IngestResponse struct {
	Status string `json:"status"`
	Chunks int    `json:"chunks"`
	Domain string `json:"domain"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	clientID := clientFromContext(r.Context())
	initial := models.NewWorkflowState(clientID, req.Query)

	final := s.engine.Run(r.Context(), initial, sessionID)
	workflowRunsTotal.WithLabelValues(string(final.CurrentStep)).Inc()

	if final.Error != "" {
		writeError(w, http.StatusInternalServerError, final.Error)
		return
	}

	sources := make([]SourceDocument, len(final.RetrievedDocs))
	for i, doc := range final.RetrievedDocs {
		sources[i] = SourceDocument{
			Content:  doc.Content,
			Metadata: doc.Metadata,
			Score:    doc.Score,
		}
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Answer:    final.FinalResponse,
		Sources:   sources,
		SessionID: sessionID,
		Domain:    string(final.Domain),
	})
}

var allowedExtensions = map[string]bool{
	".txt": true,
	".md":  true,
	".csv": true,
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	domain := models.Domain(strings.ToLower(strings.TrimSpace(r.FormValue("domain"))))
	if !domain.IsValid() {
		writeError(w, http.StatusBadRequest, "domain must be one of: accounting, transaction, operations")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "filename is missing")
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		writeError(w, http.StatusBadRequest, "unsupported file format")
		return
	}

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	clientID := clientFromContext(r.Context())
	chunks, err := s.ingestor.IngestText(r.Context(), clientID, domain, header.Filename, string(content))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, IngestResponse{
		Status: "ok",
		Chunks: chunks,
		Domain: string(domain),
	})
}
