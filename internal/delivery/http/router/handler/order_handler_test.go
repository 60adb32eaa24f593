package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pizzeria/internal/delivery/http/validator"
	"pizzeria/internal/domain/entity"
	mockUsecase "pizzeria/internal/mocks/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderHandlerFixtures struct {
	handler    *OrderHandler
	orderUC    *mockUsecase.MockOrderUsecase
	customerUC *mockUsecase.MockCustomerUsecase
}

func createTestOrderHandler(t *testing.T) orderHandlerFixtures {
	orderUC := mockUsecase.NewMockOrderUsecase(t)
	customerUC := mockUsecase.NewMockCustomerUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return orderHandlerFixtures{
		handler:    NewOrderHandler(orderUC, customerUC, logger),
		orderUC:    orderUC,
		customerUC: customerUC,
	}
}

func TestOrderHandler_GetOrder_Success(t *testing.T) {
	fx := createTestOrderHandler(t)
	orderID := uuid.New()

	fx.orderUC.On("GetOrder", mock.Anything, orderID).
		Return(&entity.Order{
			ID:         orderID,
			CustomerID: uuid.New(),
			Status:     entity.StatusReceived,
			Total:      decimal.RequireFromString("91.80"),
			Items: []*entity.OrderItem{{
				ProductID:   uuid.New(),
				ProductName: "Calabresa",
				Size:        entity.SizeMedium,
				Quantity:    2,
				UnitPrice:   decimal.RequireFromString("45.90"),
			}},
		}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(orderID.String())

	require.NoError(t, fx.handler.GetOrder(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Success bool `json:"success"`
		Data    struct {
			Total string `json:"total"`
			Items []struct {
				LineTotal string `json:"lineTotal"`
			} `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.True(t, payload.Success)
	// Money travels as fixed-point strings, never floats.
	assert.Equal(t, "91.80", payload.Data.Total)
	require.Len(t, payload.Data.Items, 1)
	assert.Equal(t, "91.80", payload.Data.Items[0].LineTotal)
}

func TestOrderHandler_GetOrder_InvalidID(t *testing.T) {
	fx := createTestOrderHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	require.NoError(t, fx.handler.GetOrder(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	fx.orderUC.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything)
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	fx := createTestOrderHandler(t)
	orderID := uuid.New()

	fx.orderUC.On("UpdateStatus", mock.Anything, orderID, entity.StatusPreparing).
		Return(nil)

	e := echo.New()
	e.Validator = validator.New()
	req := httptest.NewRequest(http.MethodPatch, "/",
		strings.NewReader(`{"status": "preparing"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(orderID.String())

	require.NoError(t, fx.handler.UpdateStatus(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
