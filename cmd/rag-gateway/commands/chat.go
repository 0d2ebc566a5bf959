// ABOUTME: Chat command runs one query through the pipeline from the terminal
// ABOUTME: Prints the grounded answer and its sources
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/villard/rag-gateway/internal/config"
	"github.com/villard/rag-gateway/internal/models"
)

var (
	chatClientID  string
	chatSessionID string
)

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat <query>",
		Short: "Ask a question against the knowledge base",
		Long: `Ask a question against the knowledge base.

Runs the full pipeline: routes the query to a domain, retrieves and
reranks chunks from the client's collections, and generates a grounded
answer. Reusing --session keeps conversation context across calls.

Examples:
  rag-gateway chat --client acme "How much does onboarding cost?"
  rag-gateway chat --client acme --session billing-q3 "And for renewals?"
  rag-gateway chat --client acme --format json "List the payment steps"`,
		Args: cobra.ExactArgs(1),
		RunE: runChat,
	}

	cmd.Flags().StringVar(&chatClientID, "client", "", "Client (tenant) identifier")
	cmd.Flags().StringVar(&chatSessionID, "session", "", "Conversation thread ID (generated when empty)")
	_ = cmd.MarkFlagRequired("client")

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	deps, err := buildProviders(cmd.Context(), cfg, true)
	if err != nil {
		return err
	}
	defer deps.Close()

	sessionID := chatSessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	initial := models.NewWorkflowState(chatClientID, args[0])
	final := deps.engine.Run(cmd.Context(), initial, sessionID)

	if final.Error != "" {
		return fmt.Errorf("pipeline failed: %s", final.Error)
	}

	if outputFormat == "json" {
		out := map[string]interface{}{
			"answer":     final.FinalResponse,
			"domain":     string(final.Domain),
			"session_id": sessionID,
			"sources":    final.RetrievedDocs,
		}
		jsonData, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", final.FinalResponse)

	if !quiet && len(final.RetrievedDocs) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\nSources (%s):\n", final.Domain)
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "SCORE\tSOURCE\tPREVIEW\n")
		for _, doc := range final.RetrievedDocs {
			source, _ := doc.Metadata["source"].(string)
			if source == "" {
				source = "(unknown)"
			}
			fmt.Fprintf(w, "%.3f\t%s\t%s\n",
				doc.Score,
				truncate(source, 25),
				truncate(doc.Content, 60))
		}
		w.Flush()
		fmt.Fprintf(cmd.OutOrStdout(), "\nSession: %s\n", sessionID)
	}

	return nil
}
