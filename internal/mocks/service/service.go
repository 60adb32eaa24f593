// Package service provides test doubles for the domain service contracts.
package service

import (
	"context"
	"testing"

	"pizzeria/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockPostalCodeService is a mock for service.PostalCodeService.
type MockPostalCodeService struct {
	mock.Mock
}

// NewMockPostalCodeService builds the mock and asserts its expectations on
// test cleanup.
func NewMockPostalCodeService(t *testing.T) *MockPostalCodeService {
	m := &MockPostalCodeService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPostalCodeService) Lookup(ctx context.Context, code string) (*service.PostalAddress, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.PostalAddress), args.Error(1)
}

// MockOrderEventPublisher is a mock for service.OrderEventPublisher.
type MockOrderEventPublisher struct {
	mock.Mock
}

// NewMockOrderEventPublisher builds the mock and asserts its expectations on
// test cleanup.
func NewMockOrderEventPublisher(t *testing.T) *MockOrderEventPublisher {
	m := &MockOrderEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOrderEventPublisher) PublishStatusChanged(ctx context.Context, event *service.OrderStatusEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *MockOrderEventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}
