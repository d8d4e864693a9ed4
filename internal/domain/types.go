package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind names the remote collection a record came from.
type Kind string

const (
	KindProduct    Kind = "product"
	KindOrder      Kind = "order"
	KindPayment    Kind = "payment"
	KindWithdrawal Kind = "withdrawal"
	KindUser       Kind = "user"
	KindCartItem   Kind = "cart_item"
	KindShipment   Kind = "shipment"
)

// Flag names recorded on Record.Flags when a field could not be parsed.
const (
	FlagAmount = "amount"
	FlagFee    = "fee"
	FlagDate   = "date"
	FlagID     = "id"
)

// Fallbacks substituted for missing optional display fields.
const (
	FallbackPhone = "N/A"
	FallbackName  = "N/A"
)

// Record is the uniform shape every raw API record is normalized into.
// It is a read-only projection; nothing in this service writes it back.
type Record struct {
	ID          string          `json:"id"`
	Kind        Kind            `json:"kind"`
	Status      string          `json:"status"`
	Category    string          `json:"category,omitempty"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description"`
	Name        string          `json:"name,omitempty"`
	Email       string          `json:"email,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	UserID      string          `json:"user_id,omitempty"`
	Role        string          `json:"role,omitempty"`
	Delivery    string          `json:"delivery,omitempty"`
	Credited    bool            `json:"credited"`
	Amount      decimal.Decimal `json:"amount"`
	Fee         decimal.Decimal `json:"fee"`
	Date        *time.Time      `json:"date,omitempty"`
	DateRaw     string          `json:"date_raw,omitempty"`
	CurrentStep int             `json:"current_step,omitempty"`
	Flags       []string        `json:"flags,omitempty"`
}

// HasFlag reports whether field was flagged as malformed during normalization.
func (r Record) HasFlag(field string) bool {
	for _, f := range r.Flags {
		if f == field {
			return true
		}
	}
	return false
}
