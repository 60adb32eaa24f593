package handler

import (
	"log/slog"
	"net/http"
	"time"

	"pizzeria/internal/delivery/http/response"
	"pizzeria/internal/domain/entity"
	"pizzeria/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler exposes the operator order API.
type OrderHandler struct {
	orderUC    usecase.OrderUsecase
	customerUC usecase.CustomerUsecase
	logger     *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(
	orderUC usecase.OrderUsecase,
	customerUC usecase.CustomerUsecase,
	logger *slog.Logger,
) *OrderHandler {
	return &OrderHandler{
		orderUC:    orderUC,
		customerUC: customerUC,
		logger:     logger,
	}
}

// orderItemView is the wire shape of one order line. Money travels as a
// fixed-point string; floats never appear on the wire.
type orderItemView struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName,omitempty"`
	Size        string `json:"size"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	LineTotal   string `json:"lineTotal"`
}

type orderView struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customerId"`
	Status        string          `json:"status"`
	Total         string          `json:"total"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Items         []orderItemView `json:"items,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func toOrderView(order *entity.Order) orderView {
	view := orderView{
		ID:            order.ID.String(),
		CustomerID:    order.CustomerID.String(),
		Status:        string(order.Status),
		Total:         order.Total.StringFixed(2),
		PaymentMethod: string(order.PaymentMethod),
		Notes:         order.Notes,
		CreatedAt:     order.CreatedAt,
	}
	for _, item := range order.Items {
		view.Items = append(view.Items, orderItemView{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Size:        string(item.Size),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			LineTotal:   item.LineTotal().StringFixed(2),
		})
	}

	return view
}

// GetOrder handles GET /orders/:id.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ORDER_ID", "Invalid order id")
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderView(order), "")
}

// updateStatusInput is the PATCH /orders/:id/status body.
type updateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus handles PATCH /orders/:id/status.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ORDER_ID", "Invalid order id")
	}

	var input updateStatusInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Missing status field")
	}

	status := entity.OrderStatus(input.Status)
	if err := h.orderUC.UpdateStatus(c.Request().Context(), orderID, status); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK,
		map[string]string{"id": orderID.String(), "status": string(status)},
		"Order status updated")
}

// ListCustomerOrders handles GET /customers/:phone/orders.
func (h *OrderHandler) ListCustomerOrders(c echo.Context) error {
	phone := entity.NormalizePhone(c.Param("phone"))
	if phone == "" {
		return response.BadRequest(c, "INVALID_PHONE", "Invalid phone")
	}

	customer, err := h.customerUC.FindByPhone(c.Request().Context(), phone)
	if err != nil {
		return errors.WithStack(err)
	}

	orders, err := h.orderUC.ListOrders(c.Request().Context(), customer.ID, 0)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]orderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, toOrderView(order))
	}

	return response.Success(c, http.StatusOK, views, "")
}
