package postgres

import (
	"context"

	"pizzeria/internal/domain/entity"
	domainerrors "pizzeria/internal/domain/errors"
	"pizzeria/internal/domain/repository"
	"pizzeria/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// catalogRepository implements the domain.CatalogRepository interface using GORM.
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository is the constructor for catalogRepository.
func NewCatalogRepository(db *gorm.DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

// ListAvailableProducts retrieves every available product with prices and
// category, ordered the way the menu presents them.
func (repo *catalogRepository) ListAvailableProducts(ctx context.Context) ([]*entity.Product, error) {
	var productModels []*model.ProductModel
	err := repo.db.WithContext(ctx).
		Preload("Prices").
		Preload("Category").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("products.available = ?", true).
		Order("categories.name ASC, products.name ASC").
		Find(&productModels).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to list available products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// FindProductByID retrieves a single product with prices and category.
func (repo *catalogRepository) FindProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).
		Preload("Prices").
		Preload("Category").
		Where("id = ?", id).
		First(&productM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// ResolvePrice returns the unit price for an available product at the given
// size. The price row is only reachable through an available product, so an
// unavailable product resolves to ErrPriceNotFound as well.
func (repo *catalogRepository) ResolvePrice(ctx context.Context, productID uuid.UUID, size entity.SizeTag) (decimal.Decimal, error) {
	var priceM model.PriceModel
	err := repo.db.WithContext(ctx).
		Joins("JOIN products ON products.id = prices.product_id").
		Where("prices.product_id = ? AND prices.size = ? AND products.available = ?", productID, string(size), true).
		First(&priceM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, repository.ErrPriceNotFound
		}

		return decimal.Zero, errors.Wrap(err, "failed to resolve price")
	}

	return priceM.Value, nil
}

// SetAvailability toggles the only mutable product attribute.
func (repo *catalogRepository) SetAvailability(ctx context.Context, productID uuid.UUID, available bool) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", productID).
		Update("available", available)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product availability")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// --- Mapper functions ---

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	prices := make([]entity.PriceEntry, 0, len(data.Prices))
	for _, priceM := range data.Prices {
		prices = append(prices, entity.PriceEntry{
			ProductID: priceM.ProductID,
			Size:      entity.SizeTag(priceM.Size),
			Value:     priceM.Value,
		})
	}

	categoryName := ""
	if data.Category != nil {
		categoryName = data.Category.Name
	}

	return &entity.Product{
		ID:           data.ID,
		Name:         data.Name,
		Description:  data.Description,
		Ingredients:  data.Ingredients,
		CategoryID:   data.CategoryID,
		CategoryName: categoryName,
		Available:    data.Available,
		Prices:       prices,
		CreatedAt:    data.CreatedAt,
	}
}
