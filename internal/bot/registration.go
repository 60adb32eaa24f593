package bot

import (
	"context"
	"strings"

	"pizzeria/internal/domain/entity"
	domainerrors "pizzeria/internal/domain/errors"
	"pizzeria/internal/domain/service"
	"pizzeria/internal/errors"
	"pizzeria/internal/usecase"
)

// handleRegistration collects one field per message. Invalid input re-asks
// the same question; the draft only ever grows forward.
func (d *Dispatcher) handleRegistration(ctx context.Context, session *Session, message, command string) []string {
	if command == cmdCancel {
		session.Registration = nil
		session.State = StateAnonymous

		return []string{msgRegistrationCancelled, msgWelcome}
	}

	draft := session.Registration
	if draft == nil {
		// A registration state without a draft is unreachable by normal
		// transitions; recover to the welcome instead of crashing.
		session.Reset()

		return []string{promptFor(session)}
	}

	switch session.State {
	case StateRegisteringName:
		name := strings.TrimSpace(message)
		if len([]rune(name)) < 3 {
			return []string{msgNameTooShort}
		}
		draft.Name = name
		session.State = StateRegisteringPostalCode

		return []string{msgAskPostalCode}

	case StateRegisteringPostalCode:
		return d.handlePostalCode(ctx, session, message)

	case StateRegisteringHouseNumber:
		number := strings.TrimSpace(message)
		if number == "" {
			return []string{msgHouseNumberMissing}
		}
		draft.Number = number
		session.State = StateRegisteringResidenceType

		return []string{msgAskResidenceType}

	case StateRegisteringResidenceType:
		residence, ok := parseResidenceType(command)
		if !ok {
			return []string{msgInvalidResidenceType}
		}
		draft.ResidenceType = residence
		session.State = StateRegisteringComplement

		return []string{msgAskComplement}

	case StateRegisteringComplement:
		if command != "nao" {
			draft.Complement = strings.TrimSpace(message)
		}

		return d.completeRegistration(ctx, session)

	default:
		return []string{promptFor(session)}
	}
}

// handlePostalCode validates the CEP shape locally before any network call:
// a 7- or 9-digit input never reaches the lookup service.
func (d *Dispatcher) handlePostalCode(ctx context.Context, session *Session, message string) []string {
	code := digitsOnly(message)
	if len(code) != entity.PostalCodeLength {
		return []string{msgInvalidPostalCode}
	}

	postal, err := d.postal.Lookup(ctx, code)
	if err != nil {
		if errors.Is(err, service.ErrPostalCodeNotFound) {
			return []string{msgPostalCodeNotFound}
		}
		d.logger.Warn("Postal lookup failed", "error", err)

		return []string{msgPostalLookupFailed}
	}

	session.Registration.Postal = postal
	session.State = StateRegisteringHouseNumber

	return []string{msgAskHouseNumber}
}

// completeRegistration commits the draft. Customer and address are written
// in one transaction; a duplicate phone leaves nothing behind.
func (d *Dispatcher) completeRegistration(ctx context.Context, session *Session) []string {
	draft := session.Registration
	session.Registration = nil

	customer, err := d.customerUC.Register(ctx, &usecase.RegisterCustomerInput{
		Name:  draft.Name,
		Phone: session.Phone,
		Address: usecase.RegisterAddressInput{
			PostalCode:    draft.Postal.PostalCode,
			Street:        draft.Postal.Street,
			Number:        draft.Number,
			Complement:    draft.Complement,
			District:      draft.Postal.District,
			City:          draft.Postal.City,
			State:         draft.Postal.State,
			ResidenceType: draft.ResidenceType,
		},
	})
	if err != nil {
		session.State = StateAnonymous
		if errors.Is(err, domainerrors.ErrCustomerAlreadyExists) {
			return []string{msgAlreadyRegistered}
		}
		d.logger.Error("Registration failed", "phone", session.Phone, "error", err)

		return []string{msgRegistrationFailed}
	}

	if d.cfg.AutoLoginAfterRegister {
		session.Customer = customer
		session.State = StateAuthenticated

		return []string{greeting(customer.Name)}
	}

	session.State = StateAnonymous

	return []string{msgRegisteredLoginHint}
}

func parseResidenceType(command string) (entity.ResidenceType, bool) {
	switch command {
	case "1", "casa":
		return entity.ResidenceHouse, true
	case "2", "apartamento":
		return entity.ResidenceApartment, true
	case "3", "condominio":
		return entity.ResidenceCondominium, true
	default:
		return "", false
	}
}

func digitsOnly(raw string) string {
	var sb strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}
