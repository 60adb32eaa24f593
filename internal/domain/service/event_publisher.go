package service

import (
	"context"
	"time"
)

// OrderStatusEvent is published whenever an order's lifecycle status changes,
// so downstream consumers (kitchen displays, notifiers) can react.
type OrderStatusEvent struct {
	OrderID       string    `json:"order_id"`
	CustomerPhone string    `json:"customer_phone"`
	OldStatus     string    `json:"old_status,omitempty"`
	NewStatus     string    `json:"new_status"`
	ChangedAt     time.Time `json:"changed_at"`
}

// OrderEventPublisher defines the interface for publishing order events to a
// message broker. Publishing is best-effort: a failed publish is logged by
// the caller and never fails the originating operation.
type OrderEventPublisher interface {
	// PublishStatusChanged publishes a status-change event.
	PublishStatusChanged(ctx context.Context, event *OrderStatusEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
