package postgres

import (
	"context"
	"log/slog"

	"pizzeria/internal/errors"
	"pizzeria/internal/infra/persistence/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for all persisted models.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.CustomerModel{},
		&model.AddressModel{},
		&model.CategoryModel{},
		&model.ProductModel{},
		&model.PriceModel{},
		&model.OrderModel{},
		&model.OrderItemModel{},
	)
	if err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return nil
}

type seedProduct struct {
	name        string
	description string
	ingredients string
	category    string
	prices      map[string]string // size -> value
}

var seedCatalog = []seedProduct{
	{
		name:        "Calabresa",
		description: "Pizza clássica de calabresa",
		ingredients: "Calabresa, cebola e mussarela",
		category:    "Tradicionais",
		prices:      map[string]string{"P": "35.90", "M": "45.90", "G": "55.90"},
	},
	{
		name:        "Marguerita",
		description: "Pizza tradicional italiana",
		ingredients: "Mussarela, tomate e manjericão",
		category:    "Tradicionais",
		prices:      map[string]string{"P": "38.50", "M": "48.50", "G": "58.50"},
	},
	{
		name:        "Vegetariana",
		description: "Pizza recheada de vegetais",
		ingredients: "Berinjela, abobrinha, pimentão e mussarela",
		category:    "Vegetarianas",
		prices:      map[string]string{"P": "42.00", "M": "52.00", "G": "62.00"},
	},
}

var seedCategories = map[string]string{
	"Tradicionais": "As pizzas mais amadas da casa",
	"Especiais":    "Combinações exclusivas do chef",
	"Vegetarianas": "Deliciosas opções sem carne",
}

// SeedIfEmpty loads the starter menu when the catalog has no categories yet.
// Mirrors the seed data the service launched with; a populated database is
// left untouched.
func SeedIfEmpty(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&model.CategoryModel{}).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to count categories")
	}
	if count > 0 {
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := make(map[string]*model.CategoryModel, len(seedCategories))
		for name, description := range seedCategories {
			category := &model.CategoryModel{Name: name, Description: description}
			if err := tx.Create(category).Error; err != nil {
				return errors.Wrapf(err, "failed to seed category %s", name)
			}
			categories[name] = category
		}

		for _, seed := range seedCatalog {
			product := &model.ProductModel{
				Name:        seed.name,
				Description: seed.description,
				Ingredients: seed.ingredients,
				CategoryID:  categories[seed.category].ID,
				Available:   true,
			}
			if err := tx.Create(product).Error; err != nil {
				return errors.Wrapf(err, "failed to seed product %s", seed.name)
			}

			for size, value := range seed.prices {
				price := &model.PriceModel{
					ProductID: product.ID,
					Size:      size,
					Value:     decimal.RequireFromString(value),
				}
				if err := tx.Create(price).Error; err != nil {
					return errors.Wrapf(err, "failed to seed price %s/%s", seed.name, size)
				}
			}
		}

		logger.InfoContext(ctx, "Seeded starter catalog",
			slog.Int("categories", len(seedCategories)),
			slog.Int("products", len(seedCatalog)),
		)

		return nil
	})
}
