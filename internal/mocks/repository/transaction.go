// Package repository provides test doubles for the repository contracts.
package repository

import (
	"context"

	"pizzeria/internal/domain/repository"
)

// FakeTransactionManager runs the transactional function inline against a
// fixed factory. Tests assert on the repositories the factory hands out.
type FakeTransactionManager struct {
	Factory repository.RepositoryFactory
}

func (f *FakeTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(f.Factory)
}

// FakeRepositoryFactory hands out the repositories it was built with.
type FakeRepositoryFactory struct {
	Customer repository.CustomerRepository
	Catalog  repository.CatalogRepository
	Order    repository.OrderRepository
}

func (f *FakeRepositoryFactory) CustomerRepo() repository.CustomerRepository {
	return f.Customer
}

func (f *FakeRepositoryFactory) CatalogRepo() repository.CatalogRepository {
	return f.Catalog
}

func (f *FakeRepositoryFactory) OrderRepo() repository.OrderRepository {
	return f.Order
}
