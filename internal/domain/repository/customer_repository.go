// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"

	"pizzeria/internal/domain/entity"
	"pizzeria/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for customer persistence.
var (
	// ErrCustomerNotFound is returned when a customer lookup finds no row.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrAddressNotFound is returned when an address lookup finds no row.
	ErrAddressNotFound = errors.New("address not found")
)

// CustomerRepository defines the standard operations for customer persistence.
// The application layer depends on this interface, not the concrete implementation.
type CustomerRepository interface {
	// Create persists a new customer. The store enforces phone uniqueness;
	// a duplicate surfaces as domainerrors.ErrCustomerAlreadyExists.
	Create(ctx context.Context, customer *entity.Customer) error

	// FindByID retrieves a customer by ID, with addresses preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)

	// FindByPhone retrieves a customer by normalized phone, with addresses preloaded.
	FindByPhone(ctx context.Context, phone string) (*entity.Customer, error)

	// AddAddress persists a new address for an existing customer.
	AddAddress(ctx context.Context, address *entity.Address) error

	// ListAddresses retrieves a customer's addresses ordered by label.
	ListAddresses(ctx context.Context, customerID uuid.UUID) ([]*entity.Address, error)

	// FindAddressByID retrieves a single address.
	FindAddressByID(ctx context.Context, id uuid.UUID) (*entity.Address, error)
}
