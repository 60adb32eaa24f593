package repository

import (
	"context"
	"testing"

	"pizzeria/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCatalogRepository is a mock for repository.CatalogRepository.
type MockCatalogRepository struct {
	mock.Mock
}

// NewMockCatalogRepository builds the mock and asserts its expectations on
// test cleanup.
func NewMockCatalogRepository(t *testing.T) *MockCatalogRepository {
	m := &MockCatalogRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCatalogRepository) ListAvailableProducts(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *MockCatalogRepository) FindProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockCatalogRepository) ResolvePrice(ctx context.Context, productID uuid.UUID, size entity.SizeTag) (decimal.Decimal, error) {
	args := m.Called(ctx, productID, size)

	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCatalogRepository) SetAvailability(ctx context.Context, productID uuid.UUID, available bool) error {
	args := m.Called(ctx, productID, available)

	return args.Error(0)
}
