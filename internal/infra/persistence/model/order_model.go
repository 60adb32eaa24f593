package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table. Total carries a CHECK > 0; the
// commit path guarantees it equals the sum of the items' line totals.
type OrderModel struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CustomerID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	AddressID     uuid.UUID        `gorm:"type:uuid;not null"`
	Status        string           `gorm:"type:varchar(20);not null;default:'received';check:status IN ('received','confirmed','preparing','baking','out_for_delivery','delivered')"`
	Total         decimal.Decimal  `gorm:"type:decimal(10,2);not null;check:total > 0"`
	PaymentMethod *string          `gorm:"type:varchar(20)"`
	ChangeFor     *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Notes         *string          `gorm:"type:text"`
	CreatedAt     time.Time        `gorm:"index"`

	Customer *CustomerModel    `gorm:"foreignKey:CustomerID"`
	Address  *AddressModel     `gorm:"foreignKey:AddressID"`
	Items    []*OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. UnitPrice is the frozen
// copy captured at commit time, deliberately denormalized from 'prices'.
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Size      string          `gorm:"type:char(1);not null;check:size IN ('P','M','G')"`
	Quantity  int             `gorm:"not null;check:quantity > 0"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null;check:unit_price > 0"`

	Product *ProductModel `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
