// ABOUTME: Tests for Domain enum validation and label parsing
// ABOUTME: Verifies the fallback policy for unknown classifier labels

package models

import "testing"

func TestDomain_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		domain Domain
		want   bool
	}{
		{"accounting", DomainAccounting, true},
		{"transaction", DomainTransaction, true},
		{"operations", DomainOperations, true},
		{"empty string", Domain(""), false},
		{"unknown", Domain("marketing"), false},
		{"uppercase", Domain("Accounting"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.domain.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDomain(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  Domain
	}{
		{"exact match", "accounting", DomainAccounting},
		{"uppercase", "TRANSACTION", DomainTransaction},
		{"surrounding whitespace", "  operations \n", DomainOperations},
		{"unknown label falls back", "legal", DefaultDomain},
		{"empty label falls back", "", DefaultDomain},
		{"sentence falls back", "the domain is accounting", DefaultDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDomain(tt.label); got != tt.want {
				t.Errorf("ParseDomain(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestAllDomains(t *testing.T) {
	domains := AllDomains()
	if len(domains) != 3 {
		t.Fatalf("AllDomains() returned %d domains, want 3", len(domains))
	}
	for _, d := range domains {
		if !d.IsValid() {
			t.Errorf("AllDomains() contains invalid domain %q", d)
		}
	}
}
