package bot

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"pizzeria/config"
	"pizzeria/internal/domain/entity"
	domainerrors "pizzeria/internal/domain/errors"
	"pizzeria/internal/domain/service"
	mockService "pizzeria/internal/mocks/service"
	mockUsecase "pizzeria/internal/mocks/usecase"
	"pizzeria/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testPhone = "whatsapp:+5511999990000"

type dispatcherFixtures struct {
	dispatcher *Dispatcher
	registry   *Registry
	customerUC *mockUsecase.MockCustomerUsecase
	catalogUC  *mockUsecase.MockCatalogUsecase
	orderUC    *mockUsecase.MockOrderUsecase
	postal     *mockService.MockPostalCodeService
}

func createTestDispatcher(t *testing.T) dispatcherFixtures {
	registry := NewRegistry()
	customerUC := mockUsecase.NewMockCustomerUsecase(t)
	catalogUC := mockUsecase.NewMockCatalogUsecase(t)
	orderUC := mockUsecase.NewMockOrderUsecase(t)
	postal := mockService.NewMockPostalCodeService(t)

	cfg := config.BotConfig{
		AutoLoginAfterRegister: true,
		OrderListLimit:         5,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return dispatcherFixtures{
		dispatcher: NewDispatcher(registry, customerUC, catalogUC, orderUC, postal, cfg, logger),
		registry:   registry,
		customerUC: customerUC,
		catalogUC:  catalogUC,
		orderUC:    orderUC,
		postal:     postal,
	}
}

func (fx dispatcherFixtures) send(text string) []string {
	return fx.dispatcher.HandleMessage(context.Background(), testPhone, text)
}

func testCustomer() *entity.Customer {
	customerID := uuid.New()

	return &entity.Customer{
		ID:    customerID,
		Name:  "Ana",
		Phone: "5511999990000",
		Addresses: []*entity.Address{
			{ID: uuid.New(), CustomerID: customerID, Label: "Principal"},
		},
	}
}

func testMenu() []*entity.Product {
	productID := uuid.New()

	return []*entity.Product{
		{
			ID:        productID,
			Name:      "Calabresa",
			Available: true,
			Prices: []entity.PriceEntry{
				{ProductID: productID, Size: entity.SizeSmall, Value: decimal.RequireFromString("35.90")},
				{ProductID: productID, Size: entity.SizeMedium, Value: decimal.RequireFromString("45.90")},
				{ProductID: productID, Size: entity.SizeLarge, Value: decimal.RequireFromString("55.90")},
			},
		},
	}
}

func login(t *testing.T, fx dispatcherFixtures, customer *entity.Customer) {
	t.Helper()
	fx.customerUC.On("FindByPhone", mock.Anything, customer.Phone).
		Return(customer, nil).Once()
	replies := fx.send("login")
	require.Len(t, replies, 1)
	require.Contains(t, replies[0], customer.Name)
}

func startOrder(t *testing.T, fx dispatcherFixtures, menu []*entity.Product) {
	t.Helper()
	fx.catalogUC.On("ListAvailableProducts", mock.Anything).
		Return(menu, nil).Once()
	replies := fx.send("cardapio")
	require.Len(t, replies, 2)
	require.Contains(t, replies[0], menu[0].Name)
}

func TestDispatcher_RegistrationFlow(t *testing.T) {
	fx := createTestDispatcher(t)

	replies := fx.send("cadastrar")
	require.Equal(t, []string{msgAskName}, replies)

	replies = fx.send("Ana")
	require.Equal(t, []string{msgAskPostalCode}, replies)

	// Too short and too long postal codes are rejected locally, before any
	// lookup happens.
	require.Equal(t, []string{msgInvalidPostalCode}, fx.send("0131010"))
	require.Equal(t, []string{msgInvalidPostalCode}, fx.send("013101000"))
	fx.postal.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)

	fx.postal.On("Lookup", mock.Anything, "01310100").
		Return(&service.PostalAddress{
			PostalCode: "01310100",
			Street:     "Avenida Paulista",
			District:   "Bela Vista",
			City:       "São Paulo",
			State:      "SP",
		}, nil).Once()
	require.Equal(t, []string{msgAskHouseNumber}, fx.send("01310100"))

	require.Equal(t, []string{msgAskResidenceType}, fx.send("100"))
	require.Equal(t, []string{msgAskComplement}, fx.send("1"))

	customer := testCustomer()
	fx.customerUC.On("Register", mock.Anything, mock.MatchedBy(func(input *usecase.RegisterCustomerInput) bool {
		return input.Name == "Ana" &&
			input.Phone == "5511999990000" &&
			input.Address.PostalCode == "01310100" &&
			input.Address.Number == "100" &&
			input.Address.ResidenceType == entity.ResidenceHouse &&
			input.Address.Complement == ""
	})).Return(customer, nil).Once()

	replies = fx.send("não")
	require.Len(t, replies, 1)
	// Auto-login lands the session on the authenticated menu.
	assert.Contains(t, replies[0], customer.Name)
	assert.Contains(t, replies[0], "cardapio")
}

func TestDispatcher_RegistrationNameTooShort(t *testing.T) {
	fx := createTestDispatcher(t)

	fx.send("cadastrar")
	require.Equal(t, []string{msgNameTooShort}, fx.send("Jo"))
	// The valid retry advances normally.
	require.Equal(t, []string{msgAskPostalCode}, fx.send("Ana"))
}

func TestDispatcher_RegistrationDuplicatePhone(t *testing.T) {
	fx := createTestDispatcher(t)

	fx.send("cadastrar")
	fx.send("Ana")
	fx.postal.On("Lookup", mock.Anything, "01310100").
		Return(&service.PostalAddress{PostalCode: "01310100"}, nil).Once()
	fx.send("01310100")
	fx.send("100")
	fx.send("2")

	fx.customerUC.On("Register", mock.Anything, mock.Anything).
		Return(nil, domainerrors.ErrCustomerAlreadyExists).Once()

	require.Equal(t, []string{msgAlreadyRegistered}, fx.send("não"))

	// The session fell back to anonymous.
	require.Equal(t, []string{msgWelcome}, fx.send("oi"))
}

func TestDispatcher_RegistrationUnknownPostalCode(t *testing.T) {
	fx := createTestDispatcher(t)

	fx.send("cadastrar")
	fx.send("Ana")

	fx.postal.On("Lookup", mock.Anything, "99999999").
		Return(nil, service.ErrPostalCodeNotFound).Once()
	require.Equal(t, []string{msgPostalCodeNotFound}, fx.send("99999999"))

	// Still waiting on a postal code.
	fx.postal.On("Lookup", mock.Anything, "01310100").
		Return(&service.PostalAddress{PostalCode: "01310100"}, nil).Once()
	require.Equal(t, []string{msgAskHouseNumber}, fx.send("01310100"))
}

func TestDispatcher_LoginUnknownPhone(t *testing.T) {
	fx := createTestDispatcher(t)

	fx.customerUC.On("FindByPhone", mock.Anything, "5511999990000").
		Return(nil, domainerrors.ErrCustomerNotFound).Once()

	require.Equal(t, []string{msgUnknownPhone}, fx.send("login"))
}

func TestDispatcher_OrderFlow_ExactTotal(t *testing.T) {
	fx := createTestDispatcher(t)
	customer := testCustomer()
	menu := testMenu()

	login(t, fx, customer)
	startOrder(t, fx, menu)

	replies := fx.send("1")
	require.Len(t, replies, 1)
	require.Contains(t, replies[0], "tamanho")

	require.Equal(t, []string{msgAskQuantity}, fx.send("m"))

	replies = fx.send("2")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "91.80")
	assert.Contains(t, replies[0], "2x Calabresa")

	order := &entity.Order{
		ID:     uuid.New(),
		Status: entity.StatusReceived,
		Total:  decimal.RequireFromString("91.80"),
	}
	fx.orderUC.On("PlaceOrder", mock.Anything, mock.MatchedBy(func(input *usecase.PlaceOrderInput) bool {
		return input.CustomerID == customer.ID &&
			input.AddressID == customer.Addresses[0].ID &&
			len(input.Lines) == 1 &&
			input.Lines[0].ProductID == menu[0].ID &&
			input.Lines[0].Size == entity.SizeMedium &&
			input.Lines[0].Quantity == 2
	})).Return(order, nil).Once()

	replies = fx.send("confirmar")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "91.80")

	// Confirming again does nothing: the draft is gone.
	require.Equal(t, []string{msgNoOrderInProgress}, fx.send("confirmar"))
}

func TestDispatcher_InvalidQuantityStaysPut(t *testing.T) {
	fx := createTestDispatcher(t)

	login(t, fx, testCustomer())
	startOrder(t, fx, testMenu())
	fx.send("1")
	fx.send("M")

	require.Equal(t, []string{msgInvalidQuantity}, fx.send("abc"))
	require.Equal(t, []string{msgInvalidQuantity}, fx.send("0"))
	require.Equal(t, []string{msgInvalidQuantity}, fx.send("-3"))
	fx.orderUC.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)

	// The session is still waiting on the quantity.
	replies := fx.send("2")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "91.80")
}

func TestDispatcher_InvalidSelectionRePrompts(t *testing.T) {
	fx := createTestDispatcher(t)

	login(t, fx, testCustomer())
	startOrder(t, fx, testMenu())

	require.Equal(t, []string{msgInvalidSelection}, fx.send("9"))
	require.Equal(t, []string{msgInvalidSelection}, fx.send("abc"))
	require.Equal(t, []string{msgInvalidSelection}, fx.send("0"))
}

func TestDispatcher_SinglePriceSkipsVariant(t *testing.T) {
	fx := createTestDispatcher(t)
	productID := uuid.New()
	menu := []*entity.Product{{
		ID:        productID,
		Name:      "Brotinho",
		Available: true,
		Prices: []entity.PriceEntry{
			{ProductID: productID, Size: entity.SizeSmall, Value: decimal.RequireFromString("25.00")},
		},
	}}

	login(t, fx, testCustomer())
	startOrder(t, fx, menu)

	require.Equal(t, []string{msgAskQuantity}, fx.send("1"))
}

func TestDispatcher_CancelDiscardsDraft(t *testing.T) {
	fx := createTestDispatcher(t)

	login(t, fx, testCustomer())
	startOrder(t, fx, testMenu())
	fx.send("1")
	fx.send("G")
	fx.send("1")

	require.Equal(t, []string{msgOrderCancelled}, fx.send("cancelar"))
	require.Equal(t, []string{msgNoOrderInProgress}, fx.send("confirmar"))
	fx.orderUC.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
}

func TestDispatcher_StalePriceAtCommit(t *testing.T) {
	fx := createTestDispatcher(t)

	login(t, fx, testCustomer())
	startOrder(t, fx, testMenu())
	fx.send("1")
	fx.send("P")
	fx.send("1")

	fx.orderUC.On("PlaceOrder", mock.Anything, mock.Anything).
		Return(nil, domainerrors.ErrPriceUnavailable.WrapMessage("stale")).Once()

	require.Equal(t, []string{msgPriceUnavailable}, fx.send("confirmar"))
	// Failure clears the draft too; the commit is never retried silently.
	require.Equal(t, []string{msgNoOrderInProgress}, fx.send("confirmar"))
}

func TestDispatcher_Logout(t *testing.T) {
	fx := createTestDispatcher(t)

	login(t, fx, testCustomer())
	require.Equal(t, 1, fx.registry.Len())

	require.Equal(t, []string{msgGoodbye}, fx.send("sair"))
	require.Equal(t, 0, fx.registry.Len())

	// The next contact starts a fresh anonymous session.
	require.Equal(t, []string{msgWelcome}, fx.send("oi"))
}

func TestDispatcher_ListOrders(t *testing.T) {
	fx := createTestDispatcher(t)
	customer := testCustomer()

	login(t, fx, customer)

	fx.orderUC.On("ListOrders", mock.Anything, customer.ID, 5).
		Return([]*entity.Order{{
			ID:     uuid.New(),
			Status: entity.StatusOutForDelivery,
			Total:  decimal.RequireFromString("45.90"),
		}}, nil).Once()

	replies := fx.send("pedidos")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "45.90")
	assert.Contains(t, replies[0], "Saiu para entrega")
}

func TestDispatcher_AccentedCommand(t *testing.T) {
	fx := createTestDispatcher(t)

	login(t, fx, testCustomer())
	fx.catalogUC.On("ListAvailableProducts", mock.Anything).
		Return(testMenu(), nil).Once()

	replies := fx.send("Cardápio")
	require.Len(t, replies, 2)
	assert.Contains(t, replies[0], "Calabresa")
}

func TestDispatcher_EmptyMessageRePrompts(t *testing.T) {
	fx := createTestDispatcher(t)

	fx.send("cadastrar")
	require.Equal(t, []string{msgAskName}, fx.send("   "))
}

func TestDispatcher_MissingPhoneDropped(t *testing.T) {
	fx := createTestDispatcher(t)

	replies := fx.dispatcher.HandleMessage(context.Background(), "whatsapp:", "oi")
	assert.Nil(t, replies)
	assert.Equal(t, 0, fx.registry.Len())
}

// A panic inside a handler must reset the session, not kill it.
func TestDispatcher_PanicResetsSession(t *testing.T) {
	fx := createTestDispatcher(t)

	login(t, fx, testCustomer())
	fx.catalogUC.On("ListAvailableProducts", mock.Anything).
		Run(func(mock.Arguments) { panic("boom") }).
		Return(nil, nil).Once()

	require.Equal(t, []string{msgInternalError}, fx.send("cardapio"))

	// The session survived, back on the stable menu state.
	require.Equal(t, []string{msgAuthenticatedHelp}, fx.send("ajuda"))
}

func TestDispatcher_MultiItemOrder(t *testing.T) {
	fx := createTestDispatcher(t)
	customer := testCustomer()
	menu := testMenu()

	login(t, fx, customer)
	startOrder(t, fx, menu)
	fx.send("1")
	fx.send("M")
	fx.send("1")

	// "pedir" from the confirmation step adds a second item.
	fx.catalogUC.On("ListAvailableProducts", mock.Anything).
		Return(menu, nil).Once()
	fx.send("pedir")
	fx.send("1")
	fx.send("P")
	replies := fx.send("1")
	require.Len(t, replies, 1)
	// 45.90 + 35.90
	assert.Contains(t, replies[0], "81.80")

	fx.orderUC.On("PlaceOrder", mock.Anything, mock.MatchedBy(func(input *usecase.PlaceOrderInput) bool {
		return len(input.Lines) == 2
	})).Return(&entity.Order{
		ID:    uuid.New(),
		Total: decimal.RequireFromString("81.80"),
	}, nil).Once()

	replies = fx.send("confirmar")
	require.Len(t, replies, 1)
	assert.True(t, strings.Contains(replies[0], "81.80"))
}
