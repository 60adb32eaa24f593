// Package postgres contains the concrete implementation of the persistence
// layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"pizzeria/internal/domain/entity"
	domainerrors "pizzeria/internal/domain/errors"
	"pizzeria/internal/domain/repository"
	"pizzeria/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// customerRepository implements the domain.CustomerRepository interface using GORM.
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository is the constructor for customerRepository. It returns
// the repository as a domain interface, adhering to dependency inversion.
func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

// Create persists a new customer. A duplicate phone is reported as the
// domain conflict error, never as a second row.
func (repo *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	customerM := fromCustomerDomain(customer)

	if err := repo.db.WithContext(ctx).Create(customerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrCustomerAlreadyExists.WrapMessage("phone already registered")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("customer data rejected by constraints")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create customer")
	}

	customer.ID = customerM.ID
	customer.CreatedAt = customerM.CreatedAt
	customer.UpdatedAt = customerM.UpdatedAt

	return nil
}

// FindByID retrieves a customer by ID, preloading their addresses.
func (repo *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customerM model.CustomerModel
	err := repo.db.WithContext(ctx).
		Preload("Addresses").
		Where("id = ?", id).
		First(&customerM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer by id")
	}

	return toCustomerDomain(&customerM), nil
}

// FindByPhone retrieves a customer by normalized phone, preloading addresses.
func (repo *customerRepository) FindByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	var customerM model.CustomerModel
	err := repo.db.WithContext(ctx).
		Preload("Addresses").
		Where("phone = ?", phone).
		First(&customerM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer by phone")
	}

	return toCustomerDomain(&customerM), nil
}

// AddAddress persists a new address for an existing customer.
func (repo *customerRepository) AddAddress(ctx context.Context, address *entity.Address) error {
	addressM := fromAddressDomain(address)

	if err := repo.db.WithContext(ctx).Create(addressM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrCustomerNotFound.WrapMessage("address references unknown customer")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("address data rejected by constraints")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create address")
	}

	address.ID = addressM.ID
	address.CreatedAt = addressM.CreatedAt

	return nil
}

// ListAddresses retrieves a customer's addresses ordered by label.
func (repo *customerRepository) ListAddresses(ctx context.Context, customerID uuid.UUID) ([]*entity.Address, error) {
	var addressModels []*model.AddressModel
	err := repo.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("label ASC").
		Find(&addressModels).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to list addresses")
	}

	addresses := make([]*entity.Address, 0, len(addressModels))
	for _, addressM := range addressModels {
		addresses = append(addresses, toAddressDomain(addressM))
	}

	return addresses, nil
}

// FindAddressByID retrieves a single address.
func (repo *customerRepository) FindAddressByID(ctx context.Context, id uuid.UUID) (*entity.Address, error) {
	var addressM model.AddressModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&addressM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAddressNotFound
		}

		return nil, errors.Wrap(err, "failed to find address by id")
	}

	return toAddressDomain(&addressM), nil
}

// --- Mapper functions ---

func toCustomerDomain(data *model.CustomerModel) *entity.Customer {
	if data == nil {
		return nil
	}

	addresses := make([]*entity.Address, 0, len(data.Addresses))
	for _, addressM := range data.Addresses {
		addresses = append(addresses, toAddressDomain(addressM))
	}

	return &entity.Customer{
		ID:        data.ID,
		Name:      data.Name,
		Phone:     data.Phone,
		Addresses: addresses,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromCustomerDomain(data *entity.Customer) *model.CustomerModel {
	if data == nil {
		return nil
	}

	return &model.CustomerModel{
		ID:    data.ID,
		Name:  data.Name,
		Phone: data.Phone,
	}
}

func toAddressDomain(data *model.AddressModel) *entity.Address {
	if data == nil {
		return nil
	}

	complement := ""
	if data.Complement != nil {
		complement = *data.Complement
	}

	return &entity.Address{
		ID:            data.ID,
		CustomerID:    data.CustomerID,
		Label:         data.Label,
		PostalCode:    data.PostalCode,
		Street:        data.Street,
		Number:        data.Number,
		Complement:    complement,
		District:      data.District,
		City:          data.City,
		State:         data.State,
		ResidenceType: entity.ResidenceType(data.ResidenceType),
		CreatedAt:     data.CreatedAt,
	}
}

func fromAddressDomain(data *entity.Address) *model.AddressModel {
	if data == nil {
		return nil
	}

	var complement *string
	if data.Complement != "" {
		c := data.Complement
		complement = &c
	}

	return &model.AddressModel{
		ID:            data.ID,
		CustomerID:    data.CustomerID,
		Label:         data.Label,
		PostalCode:    data.PostalCode,
		Street:        data.Street,
		Number:        data.Number,
		Complement:    complement,
		District:      data.District,
		City:          data.City,
		State:         data.State,
		ResidenceType: string(data.ResidenceType),
	}
}
