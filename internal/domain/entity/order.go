// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is a member of the ordered lifecycle set an order moves through.
type OrderStatus string

// The lifecycle states, in delivery order. Status updates are not forced to
// be monotonic: operators may correct a status backwards.
const (
	StatusReceived       OrderStatus = "received"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusBaking         OrderStatus = "baking"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
)

// OrderStatuses lists the lifecycle states in progression order.
var OrderStatuses = []OrderStatus{
	StatusReceived,
	StatusConfirmed,
	StatusPreparing,
	StatusBaking,
	StatusOutForDelivery,
	StatusDelivered,
}

// Valid reports whether the status belongs to the closed lifecycle set.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}

	return false
}

// PaymentMethod is the closed set of accepted payment methods.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "Dinheiro"
	PaymentCard PaymentMethod = "Cartão"
	PaymentPix  PaymentMethod = "PIX"
)

// Valid reports whether the payment method belongs to the closed set.
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentPix:
		return true
	default:
		return false
	}
}

// Order is a committed purchase. Its total always equals the sum of its
// items' line totals; the store enforces this at commit time and the items
// are never mutated afterwards.
type Order struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID
	AddressID     uuid.UUID
	Status        OrderStatus
	Total         decimal.Decimal
	PaymentMethod PaymentMethod    // Empty when not captured.
	ChangeFor     *decimal.Decimal // Cash only: amount the customer will pay with.
	Notes         string
	Items         []*OrderItem
	Customer      *Customer // Populated on detail reads.
	Address       *Address  // Populated on detail reads.
	CreatedAt     time.Time
}

// SumItems recomputes the total from the order's items.
func (o *Order) SumItems() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}

	return total
}

// OrderItem is one line of an order. UnitPrice is a frozen copy of the
// catalog price at commit time: later catalog changes never reprice a
// historical order.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string // Resolved from the product on reads.
	Size        SizeTag
	Quantity    int // Always > 0.
	UnitPrice   decimal.Decimal
}

// LineTotal returns unit price times quantity, exactly.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
