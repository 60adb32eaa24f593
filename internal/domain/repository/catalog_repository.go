// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"pizzeria/internal/domain/entity"
	"pizzeria/internal/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Domain-specific errors for catalog persistence.
var (
	// ErrProductNotFound is returned when a product lookup finds no row.
	ErrProductNotFound = errors.New("product not found")
	// ErrPriceNotFound is returned when a (product, size) pair has no price
	// entry, or the product is unavailable.
	ErrPriceNotFound = errors.New("price not found")
)

// CatalogRepository defines read-mostly operations over products and prices.
type CatalogRepository interface {
	// ListAvailableProducts retrieves every available product with its price
	// entries, ordered by category name then product name.
	ListAvailableProducts(ctx context.Context) ([]*entity.Product, error)

	// FindProductByID retrieves a single product with its price entries,
	// whether or not it is available.
	FindProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// ResolvePrice returns the unit price for an available product at the
	// given size. Missing product, unavailable product and missing price
	// entry all surface as ErrPriceNotFound.
	ResolvePrice(ctx context.Context, productID uuid.UUID, size entity.SizeTag) (decimal.Decimal, error)

	// SetAvailability toggles the only mutable product attribute.
	SetAvailability(ctx context.Context, productID uuid.UUID, available bool) error
}
