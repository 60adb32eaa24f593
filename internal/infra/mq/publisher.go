// Package mq implements the order-event publisher over RabbitMQ.
package mq

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"pizzeria/config"
	"pizzeria/internal/domain/service"
	"pizzeria/internal/errors"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"
)

const statusChangedRoutingKey = "order.status_changed"

// publisher implements service.OrderEventPublisher on a topic exchange.
type publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	logger   *slog.Logger
}

// Params holds dependencies for the publisher, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New dials RabbitMQ and declares the durable topic exchange. Returns nil
// (no publisher) when the broker is not configured; callers treat a nil
// publisher as "events disabled".
func New(params Params) (service.OrderEventPublisher, error) {
	cfg := params.Config
	logger := params.Logger
	if cfg.AMQP == nil || cfg.AMQP.URL == "" {
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.AMQP.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to dial rabbitmq")
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()

		return nil, errors.Wrap(err, "failed to open rabbitmq channel")
	}

	exchange := cfg.AMQP.Exchange
	if exchange == "" {
		exchange = "orders_topic"
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()

		return nil, errors.Wrap(err, "failed to declare exchange")
	}

	pub := &publisher{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
		logger:   logger,
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return pub.Close()
		},
	})

	return pub, nil
}

// PublishStatusChanged publishes a persistent JSON status-change event.
func (p *publisher) PublishStatusChanged(ctx context.Context, event *service.OrderStatusEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to marshal status event")
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, statusChangedRoutingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		return errors.Wrap(err, "failed to publish status event")
	}

	p.logger.DebugContext(ctx, "Published order status event",
		slog.String("orderID", event.OrderID),
		slog.String("status", event.NewStatus),
	)

	return nil
}

// Close releases the channel and the connection.
func (p *publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}

	return nil
}
