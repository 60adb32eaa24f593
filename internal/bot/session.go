package bot

import (
	"time"

	"pizzeria/internal/domain/entity"
	"pizzeria/internal/domain/service"

	"github.com/shopspring/decimal"
)

// Session is the dialogue state of one customer, keyed by normalized phone.
// All access happens under the registry's per-key lock, so the fields need
// no locking of their own.
type Session struct {
	Phone    string
	State    State
	Customer *entity.Customer // Non-nil from login until logout.

	// Menu is the numbered snapshot shown to the customer. Selection indexes
	// into this snapshot, so a catalog change mid-dialogue never shifts the
	// numbers under the customer.
	Menu []*entity.Product

	Registration *registrationDraft
	Order        *orderDraft

	LastSeen time.Time

	closed bool
}

// registrationDraft accumulates the fields collected one message at a time.
type registrationDraft struct {
	Name          string
	Postal        *service.PostalAddress
	Number        string
	ResidenceType entity.ResidenceType
	Complement    string
}

// draftLine is one chosen item awaiting commit. UnitPrice is the snapshot
// price used for display; the commit re-resolves it inside the transaction.
type draftLine struct {
	Product   *entity.Product
	Size      entity.SizeTag
	UnitPrice decimal.Decimal
	Quantity  int
}

// orderDraft is an in-progress order. Pending holds the line currently being
// built; Lines holds the ones already accepted.
type orderDraft struct {
	Pending *draftLine
	Lines   []draftLine
	Total   decimal.Decimal
}

// acceptPending moves the pending line into the accepted set and updates the
// running total.
func (d *orderDraft) acceptPending(quantity int) {
	d.Pending.Quantity = quantity
	d.Lines = append(d.Lines, *d.Pending)
	d.Total = d.Total.Add(d.Pending.UnitPrice.Mul(decimal.NewFromInt(int64(quantity))))
	d.Pending = nil
}

// Reset drops every in-progress flow and returns the session to its stable
// state: the menu when authenticated, the welcome otherwise. Used after any
// internal failure so a session can never be left unresponsive.
func (s *Session) Reset() {
	s.Registration = nil
	s.Order = nil
	s.Menu = nil
	if s.Customer != nil {
		s.State = StateAuthenticated
	} else {
		s.State = StateAnonymous
	}
}

// touch records inbound activity for idle sweeping.
func (s *Session) touch() {
	s.LastSeen = time.Now()
}

// Close marks the session for removal from the registry (logout).
func (s *Session) Close() {
	s.closed = true
}
