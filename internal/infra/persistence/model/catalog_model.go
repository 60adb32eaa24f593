package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(100);unique;not null"`
	Description string    `gorm:"type:text"`
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// ProductModel mirrors the 'products' table. Rows are immutable after
// creation except for the Available flag.
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(100);unique;not null;check:length(name) >= 3"`
	Description string    `gorm:"type:text;not null;check:length(description) >= 10"`
	Ingredients string    `gorm:"type:text;not null;check:length(ingredients) >= 5"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null"`
	Available   bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time

	Category *CategoryModel `gorm:"foreignKey:CategoryID"`
	Prices   []*PriceModel  `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// PriceModel mirrors the 'prices' table: one positive value per
// (product, size) pair.
type PriceModel struct {
	ProductID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Size      string          `gorm:"type:char(1);primaryKey;check:size IN ('P','M','G')"`
	Value     decimal.Decimal `gorm:"type:decimal(10,2);not null;check:value > 0"`
}

// TableName explicitly sets the table name for GORM.
func (PriceModel) TableName() string {
	return "prices"
}
