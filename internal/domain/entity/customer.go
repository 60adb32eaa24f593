// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MinPhoneDigits is the minimum number of digits a contact phone must carry.
const MinPhoneDigits = 10

// Customer is the core identity in the system. A customer is keyed by their
// normalized contact phone, which is unique and immutable once registered.
type Customer struct {
	ID        uuid.UUID  // The unique identifier for the customer.
	Name      string     // Display name, at least 3 characters, title-cased on registration.
	Phone     string     // Normalized contact phone: digits only, at least MinPhoneDigits long.
	Addresses []*Address // Delivery addresses; a customer needs at least one before ordering.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizePhone strips everything but digits from a raw contact identity.
// Transports prefix the number with channel tags (e.g. "whatsapp:+55...");
// the domain only ever sees the digit string.
func NormalizePhone(raw string) string {
	var sb strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// ValidPhone reports whether the normalized phone is acceptable as a customer identity.
func ValidPhone(phone string) bool {
	return len(phone) >= MinPhoneDigits
}
