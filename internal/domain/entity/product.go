// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SizeTag is the axis along which a product carries multiple prices.
type SizeTag string

// The closed set of size tags. A product does not need a price for every
// size; a size without a price entry simply cannot be ordered.
const (
	SizeSmall  SizeTag = "P"
	SizeMedium SizeTag = "M"
	SizeLarge  SizeTag = "G"
)

// SizeTags lists the valid tags in menu order.
var SizeTags = []SizeTag{SizeSmall, SizeMedium, SizeLarge}

// Valid reports whether the tag belongs to the closed set.
func (s SizeTag) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	default:
		return false
	}
}

// Label returns the customer-facing name of the size.
func (s SizeTag) Label() string {
	switch s {
	case SizeSmall:
		return "Pequena"
	case SizeMedium:
		return "Média"
	case SizeLarge:
		return "Grande"
	default:
		return string(s)
	}
}

// Category groups products on the menu.
type Category struct {
	ID          uuid.UUID
	Name        string // Unique.
	Description string
}

// Product is a menu item. Products are immutable once created except for
// the availability flag.
type Product struct {
	ID           uuid.UUID
	Name         string // Unique, at least 3 characters.
	Description  string // At least 10 characters.
	Ingredients  string // At least 5 characters.
	CategoryID   uuid.UUID
	CategoryName string // Resolved from the category on reads.
	Available    bool
	Prices       []PriceEntry // One entry per priced size.
	CreatedAt    time.Time
}

// PriceEntry maps a (product, size) pair to a positive unit price.
type PriceEntry struct {
	ProductID uuid.UUID
	Size      SizeTag
	Value     decimal.Decimal
}

// PriceFor returns the price entry for the given size, if any.
func (p *Product) PriceFor(size SizeTag) (PriceEntry, bool) {
	for _, entry := range p.Prices {
		if entry.Size == size {
			return entry, true
		}
	}

	return PriceEntry{}, false
}
