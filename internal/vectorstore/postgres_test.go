// ABOUTME: Tests for collection key derivation and tenant isolation
// ABOUTME: DB-backed search behavior is covered by fakes in the workflow tests

package vectorstore

import (
	"testing"

	"github.com/villard/rag-gateway/internal/models"
)

func TestCollectionKey(t *testing.T) {
	tests := []struct {
		name     string
		domain   models.Domain
		clientID string
		want     string
	}{
		{"accounting client A", models.DomainAccounting, "A", "accounting_A"},
		{"transaction client B", models.DomainTransaction, "B", "transaction_B"},
		{"operations", models.DomainOperations, "acme", "operations_acme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CollectionKey(tt.domain, tt.clientID); got != tt.want {
				t.Errorf("CollectionKey(%q, %q) = %q, want %q", tt.domain, tt.clientID, got, tt.want)
			}
		})
	}
}

func TestCollectionKey_TenantIsolation(t *testing.T) {
	// Same domain, different clients must map to different collections
	a := CollectionKey(models.DomainAccounting, "A")
	b := CollectionKey(models.DomainAccounting, "B")
	if a == b {
		t.Errorf("clients A and B share collection %q", a)
	}

	// Same client, different domains must map to different collections
	acc := CollectionKey(models.DomainAccounting, "A")
	ops := CollectionKey(models.DomainOperations, "A")
	if acc == ops {
		t.Errorf("domains accounting and operations share collection %q", acc)
	}
}
