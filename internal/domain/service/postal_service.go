// Package service declares contracts for external collaborators the domain
// depends on but does not implement.
package service

import (
	"context"

	"pizzeria/internal/errors"
)

// ErrPostalCodeNotFound is returned when the lookup service knows the code
// is not a real postal code (as opposed to the lookup itself failing).
var ErrPostalCodeNotFound = errors.New("postal code not found")

// PostalAddress is the address record a postal-code lookup resolves to.
type PostalAddress struct {
	PostalCode string // Normalized, digits only.
	Street     string
	District   string
	City       string
	State      string // Two-letter region code.
}

// PostalCodeService validates a postal code against an external source and
// returns the address it resolves to. Implementations perform a blocking
// network call and must carry their own timeout; callers treat any failure
// as "validation failed", never as fatal.
type PostalCodeService interface {
	Lookup(ctx context.Context, code string) (*PostalAddress, error)
}
