// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"pizzeria/internal/domain/entity"
	"pizzeria/internal/errors"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order lookup finds no row.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the operations for order persistence. Create is
// only meaningful inside a transaction obtained from the TransactionManager;
// the reads are safe on their own.
type OrderRepository interface {
	// Create persists an order together with all of its items. The order's
	// total must already equal the sum of the items' line totals; the store
	// constraints reject zero or negative totals.
	Create(ctx context.Context, order *entity.Order) error

	// ListByCustomer retrieves a customer's orders most-recent-first.
	// A non-positive limit means no limit.
	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]*entity.Order, error)

	// FindByID retrieves an order with items, customer and address preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// UpdateStatus sets the order's lifecycle status. The caller validates
	// membership in the closed set.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
}
