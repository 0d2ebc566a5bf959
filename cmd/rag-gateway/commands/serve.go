// ABOUTME: Serve command runs the HTTP API
// ABOUTME: Exposes chat, ingest, health, and metrics endpoints until shutdown
package commands

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/villard/rag-gateway/internal/config"
	"github.com/villard/rag-gateway/internal/server"
)

var serveAddr string

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Serves the query pipeline on POST /api/v1/chat and document ingestion
on POST /api/v1/ingest, both behind API-key authentication. Health is
on /healthz and Prometheus metrics on /metrics.

The server shuts down gracefully on SIGINT/SIGTERM.`,
		RunE: runServe,
		Example: `  # Start with defaults (listens on :8080)
  rag-gateway serve

  # Override the listen address
  rag-gateway serve --addr :9000`,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides RAG_SERVER_ADDR)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if serveAddr != "" {
		cfg.ServerAddr = serveAddr
	}

	deps, err := buildProviders(cmd.Context(), cfg, false)
	if err != nil {
		return err
	}
	defer deps.Close()

	srv := server.New(deps.engine, deps.ingestor)
	return srv.ListenAndServe(cfg.ServerAddr)
}
