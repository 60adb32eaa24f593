// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// PostalCodeLength is the fixed length of a Brazilian CEP (digits only).
const PostalCodeLength = 8

// ResidenceType classifies the kind of building at a delivery address.
type ResidenceType string

// The closed set of residence types offered during registration.
const (
	ResidenceHouse       ResidenceType = "Casa"
	ResidenceApartment   ResidenceType = "Apartamento"
	ResidenceCondominium ResidenceType = "Condomínio"
)

// Address is a delivery location belonging to exactly one customer.
type Address struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID     // The owning customer.
	Label         string        // A customer-facing label, e.g. "Principal".
	PostalCode    string        // CEP, exactly PostalCodeLength digits.
	Street        string        // Street name as resolved by the postal lookup.
	Number        string        // House number, free-form but never empty.
	Complement    string        // Optional: block, floor, unit. Empty when absent.
	District      string        // Neighbourhood.
	City          string
	State         string        // Two-letter region code (UF).
	ResidenceType ResidenceType
	CreatedAt     time.Time
}
