package impl

import (
	"context"
	"log/slog"
	"strings"

	"pizzeria/internal/domain/entity"
	domainerrors "pizzeria/internal/domain/errors"
	"pizzeria/internal/domain/repository"
	"pizzeria/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const minNameLength = 3

// customerService implements the CustomerUsecase interface.
type customerService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewCustomerService is the constructor for customerService.
func NewCustomerService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.CustomerUsecase {
	return &customerService{
		txManager: txManager,
		logger:    logger,
	}
}

// Register creates the customer and their first address in one transaction.
// If the phone is already registered nothing is written and the conflict is
// reported; the existing customer is never mutated.
func (srv *customerService) Register(ctx context.Context, input *usecase.RegisterCustomerInput) (*entity.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if len([]rune(name)) < minNameLength {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "name too short")
	}
	if !entity.ValidPhone(input.Phone) {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "invalid phone")
	}
	if len(input.Address.PostalCode) != entity.PostalCodeLength {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "invalid postal code")
	}
	if strings.TrimSpace(input.Address.Number) == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "missing house number")
	}

	customer := &entity.Customer{
		Name:  cases.Title(language.BrazilianPortuguese).String(name),
		Phone: input.Phone,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		customerRepo := repoFactory.CustomerRepo()

		if err := customerRepo.Create(ctx, customer); err != nil {
			return err
		}

		label := input.Address.Label
		if label == "" {
			label = "Principal"
		}

		address := &entity.Address{
			CustomerID:    customer.ID,
			Label:         label,
			PostalCode:    input.Address.PostalCode,
			Street:        input.Address.Street,
			Number:        strings.TrimSpace(input.Address.Number),
			Complement:    strings.TrimSpace(input.Address.Complement),
			District:      input.Address.District,
			City:          input.Address.City,
			State:         input.Address.State,
			ResidenceType: input.Address.ResidenceType,
		}
		if err := customerRepo.AddAddress(ctx, address); err != nil {
			return errors.Wrap(err, "failed to add registration address")
		}
		customer.Addresses = []*entity.Address{address}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("Registered customer", "customerID", customer.ID)

	return customer, nil
}

// FindByPhone looks a customer up by normalized phone.
func (srv *customerService) FindByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	var customer *entity.Customer

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.CustomerRepo().FindByPhone(ctx, phone)
		if err != nil {
			if errors.Is(err, repository.ErrCustomerNotFound) {
				return errors.Wrap(domainerrors.ErrCustomerNotFound, "unknown phone")
			}

			return errors.Wrap(err, "failed to find customer")
		}
		customer = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return customer, nil
}

// ListAddresses returns a customer's delivery addresses.
func (srv *customerService) ListAddresses(ctx context.Context, customerID uuid.UUID) ([]*entity.Address, error) {
	var addresses []*entity.Address

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.CustomerRepo().ListAddresses(ctx, customerID)
		if err != nil {
			return errors.Wrap(err, "failed to list addresses")
		}
		addresses = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return addresses, nil
}
