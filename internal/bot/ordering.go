package bot

import (
	"context"
	"strconv"
	"strings"

	"pizzeria/internal/domain/entity"
	domainerrors "pizzeria/internal/domain/errors"
	"pizzeria/internal/errors"
	"pizzeria/internal/usecase"
)

func (d *Dispatcher) handleAuthenticated(ctx context.Context, session *Session, command string) []string {
	switch command {
	case cmdMenu, cmdOrder:
		return d.startOrderFlow(ctx, session)

	case cmdOrders:
		return d.listOrders(ctx, session)

	case cmdConfirm, cmdCancel:
		return []string{msgNoOrderInProgress}

	default:
		return []string{msgAuthenticatedHelp}
	}
}

// startOrderFlow snapshots the available menu into the session. The snapshot
// is what the numeric selection indexes into for the rest of the flow.
func (d *Dispatcher) startOrderFlow(ctx context.Context, session *Session) []string {
	products, err := d.catalogUC.ListAvailableProducts(ctx)
	if err != nil {
		d.logger.Error("Failed to load menu", "error", err)

		return []string{msgInternalError}
	}
	if len(products) == 0 {
		return []string{msgMenuEmpty}
	}

	session.Menu = products
	if session.Order == nil {
		session.Order = &orderDraft{}
	}
	session.State = StateSelectingProduct

	return []string{formatMenu(products), msgSelectProduct}
}

func (d *Dispatcher) listOrders(ctx context.Context, session *Session) []string {
	orders, err := d.orderUC.ListOrders(ctx, session.Customer.ID, d.cfg.OrderListLimit)
	if err != nil {
		d.logger.Error("Failed to list orders", "customerID", session.Customer.ID, "error", err)

		return []string{msgInternalError}
	}
	if len(orders) == 0 {
		return []string{msgNoOrdersYet}
	}

	return []string{formatOrders(orders)}
}

func (d *Dispatcher) handleOrdering(ctx context.Context, session *Session, message, command string) []string {
	if command == cmdCancel {
		session.Order = nil
		session.Menu = nil
		session.State = StateAuthenticated

		return []string{msgOrderCancelled}
	}

	switch session.State {
	case StateSelectingProduct:
		return d.handleProductSelection(session, message)
	case StateSelectingVariant:
		return d.handleVariantSelection(session, command)
	case StateEnteringQuantity:
		return d.handleQuantity(session, message)
	case StateConfirming:
		return d.handleConfirmation(ctx, session, command)
	default:
		return []string{promptFor(session)}
	}
}

func (d *Dispatcher) handleProductSelection(session *Session, message string) []string {
	index, err := strconv.Atoi(message)
	if err != nil || index < 1 || index > len(session.Menu) {
		return []string{msgInvalidSelection}
	}

	product := session.Menu[index-1]
	if len(product.Prices) == 0 {
		return []string{msgPriceUnavailable}
	}

	session.Order.Pending = &draftLine{Product: product}

	// A single-priced product has no variant to choose.
	if len(product.Prices) == 1 {
		entry := product.Prices[0]
		session.Order.Pending.Size = entry.Size
		session.Order.Pending.UnitPrice = entry.Value
		session.State = StateEnteringQuantity

		return []string{msgAskQuantity}
	}

	session.State = StateSelectingVariant

	return []string{formatSizes(product)}
}

func (d *Dispatcher) handleVariantSelection(session *Session, command string) []string {
	pending := session.Order.Pending

	size := entity.SizeTag(strings.ToUpper(command))
	entry, ok := pending.Product.PriceFor(size)
	if !size.Valid() || !ok {
		return []string{formatSizes(pending.Product)}
	}

	pending.Size = entry.Size
	pending.UnitPrice = entry.Value
	session.State = StateEnteringQuantity

	return []string{msgAskQuantity}
}

// handleQuantity accepts the pending line. Non-numeric or non-positive input
// stays right here; nothing is written anywhere yet.
func (d *Dispatcher) handleQuantity(session *Session, message string) []string {
	quantity, err := strconv.Atoi(message)
	if err != nil || quantity <= 0 {
		return []string{msgInvalidQuantity}
	}

	session.Order.acceptPending(quantity)
	session.State = StateConfirming

	return []string{formatDraft(session.Order)}
}

// handleConfirmation runs the commit protocol on "confirmar". Success and
// failure both clear the draft; a failed commit is reported, never retried
// silently.
func (d *Dispatcher) handleConfirmation(ctx context.Context, session *Session, command string) []string {
	switch command {
	case cmdConfirm:
		draft := session.Order
		session.Order = nil
		session.Menu = nil
		session.State = StateAuthenticated

		return []string{d.commitOrder(ctx, session, draft)}

	case cmdMenu, cmdOrder:
		// Add another item on top of the accepted lines.
		return d.startOrderFlow(ctx, session)

	default:
		return []string{formatDraft(session.Order)}
	}
}

func (d *Dispatcher) commitOrder(ctx context.Context, session *Session, draft *orderDraft) string {
	if len(session.Customer.Addresses) == 0 {
		return msgNoAddress
	}

	lines := make([]usecase.OrderLineInput, 0, len(draft.Lines))
	for _, line := range draft.Lines {
		lines = append(lines, usecase.OrderLineInput{
			ProductID: line.Product.ID,
			Size:      line.Size,
			Quantity:  line.Quantity,
		})
	}

	order, err := d.orderUC.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		CustomerID: session.Customer.ID,
		AddressID:  session.Customer.Addresses[0].ID,
		Lines:      lines,
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrPriceUnavailable) {
			d.logger.Warn("Order commit hit a stale price", "customerID", session.Customer.ID)

			return msgPriceUnavailable
		}
		d.logger.Error("Order commit failed", "customerID", session.Customer.ID, "error", err)

		return msgOrderFailed
	}

	return formatOrderPlaced(order)
}
