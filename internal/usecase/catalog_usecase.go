// Package usecase declares the application-facing contracts implemented in impl.
package usecase

import (
	"context"

	"pizzeria/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogUsecase exposes menu browsing and pricing.
type CatalogUsecase interface {
	// ListAvailableProducts returns the orderable menu with per-size prices.
	ListAvailableProducts(ctx context.Context) ([]*entity.Product, error)

	// ResolvePrice returns the current unit price for an available product
	// at the given size, or domainerrors.ErrPriceUnavailable. The result
	// must never be cached across a dialogue.
	ResolvePrice(ctx context.Context, productID uuid.UUID, size entity.SizeTag) (decimal.Decimal, error)

	// SetProductAvailability toggles whether a product can be ordered.
	SetProductAvailability(ctx context.Context, productID uuid.UUID, available bool) error
}
