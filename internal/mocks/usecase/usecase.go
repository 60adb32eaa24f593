// Package usecase provides test doubles for the application contracts.
package usecase

import (
	"context"
	"testing"

	"pizzeria/internal/domain/entity"
	"pizzeria/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCustomerUsecase is a mock for usecase.CustomerUsecase.
type MockCustomerUsecase struct {
	mock.Mock
}

// NewMockCustomerUsecase builds the mock and asserts its expectations on
// test cleanup.
func NewMockCustomerUsecase(t *testing.T) *MockCustomerUsecase {
	m := &MockCustomerUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCustomerUsecase) Register(ctx context.Context, input *usecase.RegisterCustomerInput) (*entity.Customer, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Customer), args.Error(1)
}

func (m *MockCustomerUsecase) FindByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Customer), args.Error(1)
}

func (m *MockCustomerUsecase) ListAddresses(ctx context.Context, customerID uuid.UUID) ([]*entity.Address, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Address), args.Error(1)
}

// MockCatalogUsecase is a mock for usecase.CatalogUsecase.
type MockCatalogUsecase struct {
	mock.Mock
}

// NewMockCatalogUsecase builds the mock and asserts its expectations on
// test cleanup.
func NewMockCatalogUsecase(t *testing.T) *MockCatalogUsecase {
	m := &MockCatalogUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCatalogUsecase) ListAvailableProducts(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *MockCatalogUsecase) ResolvePrice(ctx context.Context, productID uuid.UUID, size entity.SizeTag) (decimal.Decimal, error) {
	args := m.Called(ctx, productID, size)

	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCatalogUsecase) SetProductAvailability(ctx context.Context, productID uuid.UUID, available bool) error {
	args := m.Called(ctx, productID, available)

	return args.Error(0)
}

// MockOrderUsecase is a mock for usecase.OrderUsecase.
type MockOrderUsecase struct {
	mock.Mock
}

// NewMockOrderUsecase builds the mock and asserts its expectations on test
// cleanup.
func NewMockOrderUsecase(t *testing.T) *MockOrderUsecase {
	m := &MockOrderUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOrderUsecase) PlaceOrder(ctx context.Context, input *usecase.PlaceOrderInput) (*entity.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderUsecase) ListOrders(ctx context.Context, customerID uuid.UUID, limit int) ([]*entity.Order, error) {
	args := m.Called(ctx, customerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *MockOrderUsecase) GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderUsecase) UpdateStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) error {
	args := m.Called(ctx, orderID, status)

	return args.Error(0)
}
