package usecase

import (
	"context"

	"pizzeria/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterAddressInput carries the address fields collected during registration.
type RegisterAddressInput struct {
	Label         string
	PostalCode    string
	Street        string
	Number        string
	Complement    string
	District      string
	City          string
	State         string
	ResidenceType entity.ResidenceType
}

// RegisterCustomerInput carries a complete registration.
type RegisterCustomerInput struct {
	Name    string
	Phone   string // Already normalized to digits.
	Address RegisterAddressInput
}

// CustomerUsecase exposes registration and identity lookup.
type CustomerUsecase interface {
	// Register creates the customer and their first address atomically.
	// A duplicate phone yields domainerrors.ErrCustomerAlreadyExists and
	// leaves the existing customer untouched.
	Register(ctx context.Context, input *RegisterCustomerInput) (*entity.Customer, error)

	// FindByPhone looks a customer up by normalized phone, with addresses.
	FindByPhone(ctx context.Context, phone string) (*entity.Customer, error)

	// ListAddresses returns a customer's delivery addresses.
	ListAddresses(ctx context.Context, customerID uuid.UUID) ([]*entity.Address, error)
}
