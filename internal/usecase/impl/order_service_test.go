package impl

import (
	"context"
	"testing"

	"pizzeria/internal/domain/entity"
	domainerrors "pizzeria/internal/domain/errors"
	"pizzeria/internal/domain/repository"
	"pizzeria/internal/domain/service"
	mockRepo "pizzeria/internal/mocks/repository"
	mockService "pizzeria/internal/mocks/service"
	"pizzeria/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderServiceFixtures struct {
	service      usecase.OrderUsecase
	customerRepo *mockRepo.MockCustomerRepository
	catalogRepo  *mockRepo.MockCatalogRepository
	orderRepo    *mockRepo.MockOrderRepository
	publisher    *mockService.MockOrderEventPublisher
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	customerRepo := mockRepo.NewMockCustomerRepository(t)
	catalogRepo := mockRepo.NewMockCatalogRepository(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	publisher := mockService.NewMockOrderEventPublisher(t)
	txManager := newFakeTxManager(&mockRepo.FakeRepositoryFactory{
		Customer: customerRepo,
		Catalog:  catalogRepo,
		Order:    orderRepo,
	})

	return orderServiceFixtures{
		service:      NewOrderService(txManager, publisher, newDiscardLogger()),
		customerRepo: customerRepo,
		catalogRepo:  catalogRepo,
		orderRepo:    orderRepo,
		publisher:    publisher,
	}
}

func TestOrderService_PlaceOrder_ExactTotal(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	customerID := uuid.New()
	addressID := uuid.New()
	productID := uuid.New()
	unitPrice := decimal.RequireFromString("45.90")

	fx.customerRepo.On("FindByID", ctx, customerID).
		Return(&entity.Customer{ID: customerID}, nil)
	fx.customerRepo.On("FindAddressByID", ctx, addressID).
		Return(&entity.Address{ID: addressID, CustomerID: customerID}, nil)
	fx.catalogRepo.On("ResolvePrice", ctx, productID, entity.SizeMedium).
		Return(unitPrice, nil)
	fx.orderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Order).ID = uuid.New()
		}).
		Return(nil)

	order, err := fx.service.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		CustomerID: customerID,
		AddressID:  addressID,
		Lines: []usecase.OrderLineInput{
			{ProductID: productID, Size: entity.SizeMedium, Quantity: 2},
		},
	})
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("91.80")),
		"total = %s", order.Total)
	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].UnitPrice.Equal(unitPrice))
	assert.Equal(t, entity.StatusReceived, order.Status)
	assert.True(t, order.Total.Equal(order.SumItems()))
}

func TestOrderService_PlaceOrder_PriceUnavailable(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	customerID := uuid.New()
	addressID := uuid.New()
	productID := uuid.New()

	fx.customerRepo.On("FindByID", ctx, customerID).
		Return(&entity.Customer{ID: customerID}, nil)
	fx.customerRepo.On("FindAddressByID", ctx, addressID).
		Return(&entity.Address{ID: addressID, CustomerID: customerID}, nil)
	fx.catalogRepo.On("ResolvePrice", ctx, productID, entity.SizeLarge).
		Return(decimal.Zero, repository.ErrPriceNotFound)

	_, err := fx.service.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		CustomerID: customerID,
		AddressID:  addressID,
		Lines: []usecase.OrderLineInput{
			{ProductID: productID, Size: entity.SizeLarge, Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrPriceUnavailable)
	// A stale price aborts the whole commit: nothing may be persisted.
	fx.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_PlaceOrder_AddressOwnership(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	customerID := uuid.New()
	addressID := uuid.New()

	fx.customerRepo.On("FindByID", ctx, customerID).
		Return(&entity.Customer{ID: customerID}, nil)
	fx.customerRepo.On("FindAddressByID", ctx, addressID).
		Return(&entity.Address{ID: addressID, CustomerID: uuid.New()}, nil)

	_, err := fx.service.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		CustomerID: customerID,
		AddressID:  addressID,
		Lines: []usecase.OrderLineInput{
			{ProductID: uuid.New(), Size: entity.SizeSmall, Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAddressOwnershipViolation)
	fx.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_PlaceOrder_InputValidation(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	_, err := fx.service.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		CustomerID: uuid.New(),
		AddressID:  uuid.New(),
	})
	assert.ErrorIs(t, err, domainerrors.ErrOrderHasNoItems)

	_, err = fx.service.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		CustomerID: uuid.New(),
		AddressID:  uuid.New(),
		Lines: []usecase.OrderLineInput{
			{ProductID: uuid.New(), Size: entity.SizeSmall, Quantity: 0},
		},
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = fx.service.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		CustomerID: uuid.New(),
		AddressID:  uuid.New(),
		Lines: []usecase.OrderLineInput{
			{ProductID: uuid.New(), Size: entity.SizeTag("XL"), Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestOrderService_UpdateStatus_InvalidStatus(t *testing.T) {
	fx := createTestOrderService(t)

	err := fx.service.UpdateStatus(context.Background(), uuid.New(), entity.OrderStatus("burnt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOrderStatus)
	fx.orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_UpdateStatus_PublishesEvent(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	orderID := uuid.New()

	fx.orderRepo.On("FindByID", ctx, orderID).
		Return(&entity.Order{
			ID:       orderID,
			Status:   entity.StatusReceived,
			Customer: &entity.Customer{Phone: "5511999990000"},
		}, nil)
	fx.orderRepo.On("UpdateStatus", ctx, orderID, entity.StatusPreparing).
		Return(nil)
	fx.publisher.On("PublishStatusChanged", ctx, mock.MatchedBy(func(event *service.OrderStatusEvent) bool {
		return event.OrderID == orderID.String() &&
			event.OldStatus == string(entity.StatusReceived) &&
			event.NewStatus == string(entity.StatusPreparing) &&
			event.CustomerPhone == "5511999990000"
	})).Return(nil)

	err := fx.service.UpdateStatus(ctx, orderID, entity.StatusPreparing)
	require.NoError(t, err)
}

func TestOrderService_UpdateStatus_PublishFailureTolerated(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	orderID := uuid.New()

	fx.orderRepo.On("FindByID", ctx, orderID).
		Return(&entity.Order{ID: orderID, Status: entity.StatusReceived}, nil)
	fx.orderRepo.On("UpdateStatus", ctx, orderID, entity.StatusConfirmed).
		Return(nil)
	fx.publisher.On("PublishStatusChanged", ctx, mock.Anything).
		Return(assert.AnError)

	// The status change has committed; a broker hiccup must not undo it.
	err := fx.service.UpdateStatus(ctx, orderID, entity.StatusConfirmed)
	require.NoError(t, err)
}

func TestOrderService_UpdateStatus_NilPublisher(t *testing.T) {
	orderRepo := mockRepo.NewMockOrderRepository(t)
	txManager := newFakeTxManager(&mockRepo.FakeRepositoryFactory{Order: orderRepo})
	svc := NewOrderService(txManager, nil, newDiscardLogger())

	ctx := context.Background()
	orderID := uuid.New()
	orderRepo.On("FindByID", ctx, orderID).
		Return(&entity.Order{ID: orderID, Status: entity.StatusReceived}, nil)
	orderRepo.On("UpdateStatus", ctx, orderID, entity.StatusDelivered).
		Return(nil)

	require.NoError(t, svc.UpdateStatus(ctx, orderID, entity.StatusDelivered))
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	orderID := uuid.New()

	fx.orderRepo.On("FindByID", ctx, orderID).
		Return(nil, repository.ErrOrderNotFound)

	_, err := fx.service.GetOrder(ctx, orderID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}
