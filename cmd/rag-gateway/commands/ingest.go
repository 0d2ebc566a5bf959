// ABOUTME: Ingest command loads a document file into a tenant collection
// ABOUTME: Chunks, embeds with retry, and stores under {domain}_{client}
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/villard/rag-gateway/internal/config"
	"github.com/villard/rag-gateway/internal/models"
)

var (
	ingestClientID string
	ingestDomain   string
)

var ingestExtensions = map[string]bool{
	".txt": true,
	".md":  true,
	".csv": true,
}

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Ingest a document into the knowledge base",
		Long: `Ingest a document into the knowledge base.

The file is split into chunks, embedded, and stored in the client's
collection for the given domain. Supported formats: .txt, .md, .csv.

Examples:
  rag-gateway ingest --client acme --domain accounting invoices.txt
  rag-gateway ingest --client acme --domain operations runbook.md`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}

	cmd.Flags().StringVar(&ingestClientID, "client", "", "Client (tenant) identifier")
	cmd.Flags().StringVar(&ingestDomain, "domain", "", "Target domain (accounting, transaction, operations)")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("domain")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	domain := models.Domain(strings.ToLower(strings.TrimSpace(ingestDomain)))
	if !domain.IsValid() {
		return fmt.Errorf("invalid domain %q: must be one of accounting, transaction, operations", ingestDomain)
	}

	path := args[0]
	ext := strings.ToLower(filepath.Ext(path))
	if !ingestExtensions[ext] {
		return fmt.Errorf("unsupported file format %q: must be .txt, .md, or .csv", ext)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	deps, err := buildProviders(cmd.Context(), cfg, false)
	if err != nil {
		return err
	}
	defer deps.Close()

	chunks, err := deps.ingestor.IngestText(cmd.Context(), ingestClientID, domain, filepath.Base(path), string(content))
	if err != nil {
		return fmt.Errorf("ingesting %s: %w", path, err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Ingested %s: %d chunk(s) into %s_%s\n",
			filepath.Base(path), chunks, domain, ingestClientID)
	}

	return nil
}
