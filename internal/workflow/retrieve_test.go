// ABOUTME: Tests for the retrieval stage
// ABOUTME: Covers tenant isolation, empty collections, and precondition checks

package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/villard/rag-gateway/internal/models"
)

func routedState(clientID string, domain models.Domain, query string) models.WorkflowState {
	return models.NewWorkflowState(clientID, query).
		WithDomain(domain).
		WithStep(models.StepRouted)
}

func TestRetrievalStage_SearchesTenantCollection(t *testing.T) {
	store := &fakeStore{collections: map[string][]models.Document{
		"accounting_A": {{Content: "invoice for A"}},
		"accounting_B": {{Content: "invoice for B"}},
		"operations_A": {{Content: "runbook for A"}},
	}}
	stage := NewRetrievalStage(&fakeEmbedder{}, store, 10)

	out, err := stage.Run(context.Background(), routedState("A", models.DomainAccounting, "invoices?"))
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if store.gotCollection != "accounting_A" {
		t.Errorf("searched collection %q, want accounting_A", store.gotCollection)
	}
	if store.gotK != 10 {
		t.Errorf("searched with k = %d, want 10", store.gotK)
	}
	if len(out.RetrievedDocs) != 1 || out.RetrievedDocs[0].Content != "invoice for A" {
		t.Errorf("RetrievedDocs = %+v, want only client A's accounting doc", out.RetrievedDocs)
	}
	if out.CurrentStep != models.StepRetrieved {
		t.Errorf("CurrentStep = %q, want retrieved", out.CurrentStep)
	}
}

func TestRetrievalStage_NoCrossTenantLeakage(t *testing.T) {
	// Identical query text, different tenants: results must differ
	store := &fakeStore{collections: map[string][]models.Document{
		"transaction_A": {{Content: "A's transfer log"}},
		"transaction_B": {{Content: "B's transfer log"}},
	}}
	stage := NewRetrievalStage(&fakeEmbedder{}, store, 10)

	outA, err := stage.Run(context.Background(), routedState("A", models.DomainTransaction, "transfers"))
	if err != nil {
		t.Fatalf("Run() for A failed: %v", err)
	}
	outB, err := stage.Run(context.Background(), routedState("B", models.DomainTransaction, "transfers"))
	if err != nil {
		t.Fatalf("Run() for B failed: %v", err)
	}

	if outA.RetrievedDocs[0].Content != "A's transfer log" {
		t.Errorf("client A saw %q", outA.RetrievedDocs[0].Content)
	}
	if outB.RetrievedDocs[0].Content != "B's transfer log" {
		t.Errorf("client B saw %q", outB.RetrievedDocs[0].Content)
	}
}

func TestRetrievalStage_EmptyCollectionIsNotAnError(t *testing.T) {
	store := &fakeStore{collections: map[string][]models.Document{}}
	stage := NewRetrievalStage(&fakeEmbedder{}, store, 10)

	out, err := stage.Run(context.Background(), routedState("A", models.DomainOperations, "anything"))
	if err != nil {
		t.Fatalf("Run() on empty collection failed: %v", err)
	}
	if out.RetrievedDocs == nil || len(out.RetrievedDocs) != 0 {
		t.Errorf("RetrievedDocs = %v, want empty slice", out.RetrievedDocs)
	}
	if out.CurrentStep != models.StepRetrieved {
		t.Errorf("CurrentStep = %q, want retrieved", out.CurrentStep)
	}
}

func TestRetrievalStage_Preconditions(t *testing.T) {
	stage := NewRetrievalStage(&fakeEmbedder{}, &fakeStore{}, 10)

	// Missing client identifier
	st := models.NewWorkflowState("", "query").WithDomain(models.DomainAccounting)
	if _, err := stage.Run(context.Background(), st); err == nil {
		t.Error("Run() should fail without a client identifier")
	}

	// Unset domain
	st = models.NewWorkflowState("clientA", "query")
	if _, err := stage.Run(context.Background(), st); err == nil {
		t.Error("Run() should fail without a routed domain")
	}
}

func TestRetrievalStage_EmbedderErrorPropagates(t *testing.T) {
	stage := NewRetrievalStage(&fakeEmbedder{err: errors.New("rate limited")}, &fakeStore{}, 10)
	_, err := stage.Run(context.Background(), routedState("A", models.DomainAccounting, "q"))
	if err == nil {
		t.Error("Run() should propagate embedder failures")
	}
}

func TestNewRetrievalStage_DefaultK(t *testing.T) {
	store := &fakeStore{collections: map[string][]models.Document{}}
	stage := NewRetrievalStage(&fakeEmbedder{}, store, 0)

	if _, err := stage.Run(context.Background(), routedState("A", models.DomainAccounting, "q")); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if store.gotK != DefaultRetrieveK {
		t.Errorf("k = %d, want default %d", store.gotK, DefaultRetrieveK)
	}
}
