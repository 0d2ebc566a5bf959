// ABOUTME: Domain enum used to partition document collections and route queries
// ABOUTME: Closed set of three business domains with a fixed fallback
package models

import "strings"

// Domain is a business category used to partition document collections
type Domain string

const (
	// DomainAccounting - invoices, bookkeeping, fiscal documents
	DomainAccounting Domain = "accounting"

	// DomainTransaction - payments, transfers, transaction records
	DomainTransaction Domain = "transaction"

	// DomainOperations - day-to-day operational documentation
	DomainOperations Domain = "operations"
)

// DefaultDomain is applied when classification returns an unknown label.
// Misclassification must never abort a request.
const DefaultDomain = DomainOperations

// AllDomains lists every valid domain, in a stable order
func AllDomains() []Domain {
	return []Domain{DomainAccounting, DomainTransaction, DomainOperations}
}

// IsValid reports whether d is one of the three known domains
func (d Domain) IsValid() bool {
	switch d {
	case DomainAccounting, DomainTransaction, DomainOperations:
		return true
	}
	return false
}

// ParseDomain normalizes a classifier label into a Domain, falling back
// to DefaultDomain for anything outside the closed set
func ParseDomain(label string) Domain {
	d := Domain(strings.ToLower(strings.TrimSpace(label)))
	if !d.IsValid() {
		return DefaultDomain
	}
	return d
}
