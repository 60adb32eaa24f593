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

// orderRepository implements the domain.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create persists an order with all of its items in one GORM create. Inside
// txManager.Execute this rides the surrounding transaction, so either the
// order row and every item land together or nothing does.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrOrderCommitFailed.WrapMessage("order references unknown customer, address or product")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrOrderCommitFailed.WrapMessage("order data rejected by constraints")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	for i, itemM := range orderM.Items {
		order.Items[i].ID = itemM.ID
		order.Items[i].OrderID = orderM.ID
	}

	return nil
}

// ListByCustomer retrieves a customer's orders most-recent-first.
func (repo *orderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]*entity.Order, error) {
	query := repo.db.WithContext(ctx).
		Preload("Items").
		Preload("Address").
		Where("customer_id = ?", customerID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var orderModels []*model.OrderModel
	if err := query.Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders by customer")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// FindByID retrieves the full order detail: items with product names, plus
// customer and address snapshots.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items.Product").
		Preload("Customer").
		Preload("Address").
		Where("id = ?", id).
		First(&orderM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// UpdateStatus sets the order's lifecycle status.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("status", string(status))

	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrInvalidOrderStatus.WrapMessage("status rejected by constraints")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// --- Mapper functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]*entity.OrderItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		productName := ""
		if itemM.Product != nil {
			productName = itemM.Product.Name
		}
		items = append(items, &entity.OrderItem{
			ID:          itemM.ID,
			OrderID:     itemM.OrderID,
			ProductID:   itemM.ProductID,
			ProductName: productName,
			Size:        entity.SizeTag(itemM.Size),
			Quantity:    itemM.Quantity,
			UnitPrice:   itemM.UnitPrice,
		})
	}

	paymentMethod := entity.PaymentMethod("")
	if data.PaymentMethod != nil {
		paymentMethod = entity.PaymentMethod(*data.PaymentMethod)
	}

	notes := ""
	if data.Notes != nil {
		notes = *data.Notes
	}

	return &entity.Order{
		ID:            data.ID,
		CustomerID:    data.CustomerID,
		AddressID:     data.AddressID,
		Status:        entity.OrderStatus(data.Status),
		Total:         data.Total,
		PaymentMethod: paymentMethod,
		ChangeFor:     data.ChangeFor,
		Notes:         notes,
		Items:         items,
		Customer:      toCustomerDomain(data.Customer),
		Address:       toAddressDomain(data.Address),
		CreatedAt:     data.CreatedAt,
	}
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]*model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, &model.OrderItemModel{
			ProductID: item.ProductID,
			Size:      string(item.Size),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	var paymentMethod *string
	if data.PaymentMethod != "" {
		p := string(data.PaymentMethod)
		paymentMethod = &p
	}

	var notes *string
	if data.Notes != "" {
		n := data.Notes
		notes = &n
	}

	return &model.OrderModel{
		CustomerID:    data.CustomerID,
		AddressID:     data.AddressID,
		Status:        string(data.Status),
		Total:         data.Total,
		PaymentMethod: paymentMethod,
		ChangeFor:     data.ChangeFor,
		Notes:         notes,
		Items:         items,
	}
}
