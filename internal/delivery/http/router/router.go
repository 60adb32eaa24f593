// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"pizzeria/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	WebhookHandler *handler.WebhookHandler
	OrderHandler   *handler.OrderHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	webhookHandler *handler.WebhookHandler
	orderHandler   *handler.OrderHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		webhookHandler: params.WebhookHandler,
		orderHandler:   params.OrderHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Messaging gateway webhook
	e.POST("/webhook/whatsapp", r.webhookHandler.HandleInbound)

	// Operator order API
	e.GET("/orders/:id", r.orderHandler.GetOrder)
	e.PATCH("/orders/:id/status", r.orderHandler.UpdateStatus)
	e.GET("/customers/:phone/orders", r.orderHandler.ListCustomerOrders)
}
