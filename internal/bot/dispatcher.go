package bot

import (
	"context"
	"log/slog"
	"strings"

	"pizzeria/config"
	"pizzeria/internal/domain/entity"
	domainerrors "pizzeria/internal/domain/errors"
	"pizzeria/internal/domain/service"
	"pizzeria/internal/errors"
	"pizzeria/internal/usecase"
)

// Commands the dialogue understands, matched case-insensitively.
const (
	cmdRegister = "cadastrar"
	cmdLogin    = "login"
	cmdMenu     = "cardapio"
	cmdOrder    = "pedir"
	cmdOrders   = "pedidos"
	cmdConfirm  = "confirmar"
	cmdCancel   = "cancelar"
	cmdLogout   = "sair"
)

// Dispatcher routes inbound messages through the per-customer state machine.
// It is safe for concurrent use; the registry serializes per customer.
type Dispatcher struct {
	registry   *Registry
	customerUC usecase.CustomerUsecase
	catalogUC  usecase.CatalogUsecase
	orderUC    usecase.OrderUsecase
	postal     service.PostalCodeService
	cfg        config.BotConfig
	logger     *slog.Logger
}

// NewDispatcher is the constructor for Dispatcher.
func NewDispatcher(
	registry *Registry,
	customerUC usecase.CustomerUsecase,
	catalogUC usecase.CatalogUsecase,
	orderUC usecase.OrderUsecase,
	postal service.PostalCodeService,
	cfg config.BotConfig,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		registry:   registry,
		customerUC: customerUC,
		catalogUC:  catalogUC,
		orderUC:    orderUC,
		postal:     postal,
		cfg:        cfg,
		logger:     logger,
	}
}

// HandleMessage interprets one inbound message and returns the replies to
// send back, in order. rawPhone may carry transport prefixes; it is
// normalized to digits before keying the session.
func (d *Dispatcher) HandleMessage(ctx context.Context, rawPhone, text string) []string {
	phone := entity.NormalizePhone(rawPhone)
	if phone == "" {
		d.logger.Warn("Dropping message without a usable sender phone")

		return nil
	}

	var replies []string
	d.registry.With(phone, func(session *Session) {
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("Dialogue handler panicked",
					"phone", phone, "state", session.State.String(), "panic", r)
				session.Reset()
				replies = []string{msgInternalError}
			}
		}()

		session.touch()
		replies = d.route(ctx, session, strings.TrimSpace(text))
	})

	return replies
}

// route runs one step of the state machine. Unrecognized input re-prompts
// the current state; it never advances it.
func (d *Dispatcher) route(ctx context.Context, session *Session, message string) []string {
	if message == "" {
		return []string{promptFor(session)}
	}

	command := normalizeCommand(message)

	// Logout applies anywhere an identity exists, mid-flow included.
	if session.Customer != nil && command == cmdLogout {
		session.Close()

		return []string{msgGoodbye}
	}

	switch {
	case session.State == StateAnonymous:
		return d.handleAnonymous(ctx, session, command)
	case session.State.registering():
		return d.handleRegistration(ctx, session, message, command)
	case session.State == StateAuthenticated:
		return d.handleAuthenticated(ctx, session, command)
	case session.State.ordering():
		return d.handleOrdering(ctx, session, message, command)
	default:
		d.logger.Error("Session in unknown state, resetting",
			"phone", session.Phone, "state", int(session.State))
		session.Reset()

		return []string{promptFor(session)}
	}
}

func (d *Dispatcher) handleAnonymous(ctx context.Context, session *Session, command string) []string {
	switch command {
	case cmdRegister:
		session.Registration = &registrationDraft{}
		session.State = StateRegisteringName

		return []string{msgAskName}

	case cmdLogin:
		customer, err := d.customerUC.FindByPhone(ctx, session.Phone)
		if err != nil {
			if errors.Is(err, domainerrors.ErrCustomerNotFound) {
				return []string{msgUnknownPhone}
			}
			d.logger.Error("Login lookup failed", "phone", session.Phone, "error", err)

			return []string{msgInternalError}
		}

		session.Customer = customer
		session.State = StateAuthenticated

		return []string{greeting(customer.Name)}

	default:
		return []string{msgWelcome}
	}
}

// normalizeCommand lowercases and folds the accents customers actually type,
// so "Cardápio" and "cardapio" land on the same command.
func normalizeCommand(message string) string {
	command := strings.ToLower(strings.TrimSpace(message))
	replacer := strings.NewReplacer("á", "a", "ã", "a", "é", "e", "í", "i", "ó", "o")

	return replacer.Replace(command)
}
