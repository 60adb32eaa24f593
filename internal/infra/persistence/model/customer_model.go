// Package model contains the GORM-specific structs that mirror the database
// tables. They are kept separate from the pure domain entities.
package model

import (
	"time"

	"github.com/google/uuid"
)

// CustomerModel mirrors the 'customers' table. Phone is the unique contact
// identity; the length checks mirror the usecase validation so bad data can
// never land even through an out-of-band write.
type CustomerModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(100);not null;check:length(name) >= 3"`
	Phone     string    `gorm:"type:varchar(20);unique;not null;check:length(phone) >= 10"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Addresses []*AddressModel `gorm:"foreignKey:CustomerID"`
}

// TableName explicitly sets the table name for GORM.
func (CustomerModel) TableName() string {
	return "customers"
}

// AddressModel mirrors the 'addresses' table.
type AddressModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CustomerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Label         string    `gorm:"type:varchar(50);not null"`
	PostalCode    string    `gorm:"type:char(8);not null;check:length(postal_code) = 8"`
	Street        string    `gorm:"type:varchar(255);not null"`
	Number        string    `gorm:"type:varchar(20);not null"`
	Complement    *string   `gorm:"type:varchar(100)"`
	District      string    `gorm:"type:varchar(100);not null"`
	City          string    `gorm:"type:varchar(100);not null"`
	State         string    `gorm:"type:char(2);not null;check:length(state) = 2"`
	ResidenceType string    `gorm:"type:varchar(20);not null"`
	CreatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (AddressModel) TableName() string {
	return "addresses"
}
