package usecase

import (
	"context"

	"pizzeria/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineInput is one requested line of a new order. The unit price is
// deliberately absent: it is resolved inside the commit transaction.
type OrderLineInput struct {
	ProductID uuid.UUID
	Size      entity.SizeTag
	Quantity  int
}

// PlaceOrderInput carries everything needed to commit an order.
type PlaceOrderInput struct {
	CustomerID    uuid.UUID
	AddressID     uuid.UUID
	PaymentMethod entity.PaymentMethod // Optional.
	ChangeFor     *decimal.Decimal     // Cash only.
	Notes         string
	Lines         []OrderLineInput
}

// OrderUsecase exposes the commit protocol, the read queries and the
// operator status update.
type OrderUsecase interface {
	// PlaceOrder atomically prices and persists an order. Prices are
	// resolved inside the transaction and frozen into the lines; a missing
	// price aborts the whole commit with domainerrors.ErrPriceUnavailable.
	PlaceOrder(ctx context.Context, input *PlaceOrderInput) (*entity.Order, error)

	// ListOrders returns a customer's orders most-recent-first.
	ListOrders(ctx context.Context, customerID uuid.UUID, limit int) ([]*entity.Order, error)

	// GetOrder returns the full order detail.
	GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)

	// UpdateStatus sets an order's lifecycle status. Any member of the
	// closed set is accepted, in any direction, for operator correction.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) error
}
