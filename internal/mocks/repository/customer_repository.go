package repository

import (
	"context"
	"testing"

	"pizzeria/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCustomerRepository is a mock for repository.CustomerRepository.
type MockCustomerRepository struct {
	mock.Mock
}

// NewMockCustomerRepository builds the mock and asserts its expectations on
// test cleanup.
func NewMockCustomerRepository(t *testing.T) *MockCustomerRepository {
	m := &MockCustomerRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	args := m.Called(ctx, customer)

	return args.Error(0)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Customer), args.Error(1)
}

func (m *MockCustomerRepository) AddAddress(ctx context.Context, address *entity.Address) error {
	args := m.Called(ctx, address)

	return args.Error(0)
}

func (m *MockCustomerRepository) ListAddresses(ctx context.Context, customerID uuid.UUID) ([]*entity.Address, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Address), args.Error(1)
}

func (m *MockCustomerRepository) FindAddressByID(ctx context.Context, id uuid.UUID) (*entity.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Address), args.Error(1)
}
