package impl

import (
	"context"
	"log/slog"
	"time"

	"pizzeria/internal/domain/entity"
	domainerrors "pizzeria/internal/domain/errors"
	"pizzeria/internal/domain/repository"
	"pizzeria/internal/domain/service"
	"pizzeria/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	publisher service.OrderEventPublisher // nil when events are disabled
	logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(
	txManager repository.TransactionManager,
	publisher service.OrderEventPublisher,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		txManager: txManager,
		publisher: publisher,
		logger:    logger,
	}
}

// PlaceOrder runs the commit protocol: verify the customer and address,
// resolve every line's price inside the transaction, freeze the prices into
// the lines and persist order plus lines together. Any failure rolls the
// whole commit back; no partial rows survive.
func (srv *orderService) PlaceOrder(ctx context.Context, input *usecase.PlaceOrderInput) (*entity.Order, error) {
	if len(input.Lines) == 0 {
		return nil, errors.Wrap(domainerrors.ErrOrderHasNoItems, "empty order")
	}
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed, "quantity must be positive")
		}
		if !line.Size.Valid() {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown size tag")
		}
	}
	if input.PaymentMethod != "" && !input.PaymentMethod.Valid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown payment method")
	}

	order := &entity.Order{
		CustomerID:    input.CustomerID,
		AddressID:     input.AddressID,
		Status:        entity.StatusReceived,
		PaymentMethod: input.PaymentMethod,
		ChangeFor:     input.ChangeFor,
		Notes:         input.Notes,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		customerRepo := repoFactory.CustomerRepo()
		catalogRepo := repoFactory.CatalogRepo()

		if _, err := customerRepo.FindByID(ctx, input.CustomerID); err != nil {
			if errors.Is(err, repository.ErrCustomerNotFound) {
				return errors.Wrap(domainerrors.ErrCustomerNotFound, "unknown customer")
			}

			return errors.Wrap(err, "failed to verify customer")
		}

		address, err := customerRepo.FindAddressByID(ctx, input.AddressID)
		if err != nil {
			if errors.Is(err, repository.ErrAddressNotFound) {
				return errors.Wrap(domainerrors.ErrAddressNotFound, "unknown address")
			}

			return errors.Wrap(err, "failed to verify address")
		}
		if address.CustomerID != input.CustomerID {
			return errors.Wrap(domainerrors.ErrAddressOwnershipViolation, "address belongs to another customer")
		}

		total := decimal.Zero
		items := make([]*entity.OrderItem, 0, len(input.Lines))
		for _, line := range input.Lines {
			// The price is resolved here, at line-insertion time, so a
			// catalog change mid-dialogue is reflected faithfully. Once
			// written, the line's unit price never changes again.
			unitPrice, err := catalogRepo.ResolvePrice(ctx, line.ProductID, line.Size)
			if err != nil {
				if errors.Is(err, repository.ErrPriceNotFound) {
					return errors.Wrap(domainerrors.ErrPriceUnavailable, "price lookup failed at commit")
				}

				return errors.Wrap(err, "failed to resolve line price")
			}

			item := &entity.OrderItem{
				ProductID: line.ProductID,
				Size:      line.Size,
				Quantity:  line.Quantity,
				UnitPrice: unitPrice,
			}
			items = append(items, item)
			total = total.Add(item.LineTotal())
		}

		order.Items = items
		order.Total = total

		if err := repoFactory.OrderRepo().Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to persist order")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("Order committed",
		"orderID", order.ID,
		"customerID", order.CustomerID,
		"total", order.Total.StringFixed(2),
	)

	return order, nil
}

// ListOrders returns a customer's orders most-recent-first.
func (srv *orderService) ListOrders(ctx context.Context, customerID uuid.UUID, limit int) ([]*entity.Order, error) {
	var orders []*entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OrderRepo().ListByCustomer(ctx, customerID, limit)
		if err != nil {
			return errors.Wrap(err, "failed to list orders")
		}
		orders = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// GetOrder returns the full order detail.
func (srv *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "unknown order")
			}

			return errors.Wrap(err, "failed to fetch order")
		}
		order = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// UpdateStatus sets an order's lifecycle status and publishes the change.
// The status may move in any direction within the closed set.
func (srv *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) error {
	if !status.Valid() {
		return errors.Wrap(domainerrors.ErrInvalidOrderStatus, "status outside lifecycle set")
	}

	var oldStatus entity.OrderStatus
	var customerPhone string

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, err := orderRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "unknown order")
			}

			return errors.Wrap(err, "failed to fetch order")
		}
		oldStatus = order.Status
		if order.Customer != nil {
			customerPhone = order.Customer.Phone
		}

		return orderRepo.UpdateStatus(ctx, orderID, status)
	})
	if err != nil {
		return err
	}

	if srv.publisher != nil {
		event := &service.OrderStatusEvent{
			OrderID:       orderID.String(),
			CustomerPhone: customerPhone,
			OldStatus:     string(oldStatus),
			NewStatus:     string(status),
			ChangedAt:     time.Now().UTC(),
		}
		if err := srv.publisher.PublishStatusChanged(ctx, event); err != nil {
			// Publishing is best-effort; the status change has committed.
			srv.logger.Error("Failed to publish status event",
				"orderID", orderID, "error", err)
		}
	}

	return nil
}
