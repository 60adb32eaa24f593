// Package bot implements the per-customer conversational state machine and
// the session registry behind it. The dispatcher is transport-agnostic: it
// consumes (phone, text) pairs and produces reply texts.
package bot

// State is a wait position in the dialogue. Every inbound message is
// interpreted against the session's current state; invalid input re-prompts
// and never advances.
type State int

const (
	// StateAnonymous is the entry state: no identity attached yet.
	StateAnonymous State = iota

	// Registration collects one field per message, in order.
	StateRegisteringName
	StateRegisteringPostalCode
	StateRegisteringHouseNumber
	StateRegisteringResidenceType
	StateRegisteringComplement

	// StateAuthenticated is the stable menu state between flows.
	StateAuthenticated

	// Ordering walks selection, variant, quantity and confirmation.
	StateSelectingProduct
	StateSelectingVariant
	StateEnteringQuantity
	StateConfirming
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateRegisteringName:
		return "registering_name"
	case StateRegisteringPostalCode:
		return "registering_postal_code"
	case StateRegisteringHouseNumber:
		return "registering_house_number"
	case StateRegisteringResidenceType:
		return "registering_residence_type"
	case StateRegisteringComplement:
		return "registering_complement"
	case StateAuthenticated:
		return "authenticated"
	case StateSelectingProduct:
		return "selecting_product"
	case StateSelectingVariant:
		return "selecting_variant"
	case StateEnteringQuantity:
		return "entering_quantity"
	case StateConfirming:
		return "confirming"
	default:
		return "unknown"
	}
}

// registering reports whether the state belongs to the registration flow.
func (s State) registering() bool {
	return s >= StateRegisteringName && s <= StateRegisteringComplement
}

// ordering reports whether the state belongs to the order-building flow.
func (s State) ordering() bool {
	return s >= StateSelectingProduct && s <= StateConfirming
}
