// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"pizzeria/internal/domain/entity"
	domainerrors "pizzeria/internal/domain/errors"
	"pizzeria/internal/domain/repository"
	"pizzeria/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.CatalogUsecase {
	return &catalogService{
		txManager: txManager,
		logger:    logger,
	}
}

// ListAvailableProducts returns the orderable menu.
func (srv *catalogService) ListAvailableProducts(ctx context.Context) ([]*entity.Product, error) {
	var products []*entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.CatalogRepo().ListAvailableProducts(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list products")
		}
		products = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load catalog")
	}

	return products, nil
}

// ResolvePrice returns the current unit price for (product, size).
func (srv *catalogService) ResolvePrice(ctx context.Context, productID uuid.UUID, size entity.SizeTag) (decimal.Decimal, error) {
	if !size.Valid() {
		return decimal.Zero, errors.Wrap(domainerrors.ErrPriceUnavailable, "unknown size tag")
	}

	var price decimal.Decimal

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		resolved, err := repoFactory.CatalogRepo().ResolvePrice(ctx, productID, size)
		if err != nil {
			if errors.Is(err, repository.ErrPriceNotFound) {
				return errors.Wrap(domainerrors.ErrPriceUnavailable, "no price entry")
			}

			return errors.Wrap(err, "failed to resolve price")
		}
		price = resolved

		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}

	return price, nil
}

// SetProductAvailability toggles whether a product can be ordered.
func (srv *catalogService) SetProductAvailability(ctx context.Context, productID uuid.UUID, available bool) error {
	srv.logger.Info("Updating product availability",
		"productID", productID, "available", available)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.CatalogRepo().SetAvailability(ctx, productID, available); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "unknown product")
			}

			return errors.Wrap(err, "failed to update availability")
		}

		return nil
	})

	return err
}
