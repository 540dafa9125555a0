package kafka

import "time"

const (
	EventCartUpdated   = "CART_UPDATED"
	EventPromoApplied  = "PROMO_APPLIED"
	EventPromoRejected = "PROMO_REJECTED"
)

// CartEventPayload is the wire format for every cart activity event.
// Monetary fields carry decimal strings to stay precision-safe downstream.
type CartEventPayload struct {
	SchemaVersion  int       `json:"schema_version"`
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	SessionID      string    `json:"session_id"`
	Action         string    `json:"action,omitempty"`
	PromoCode      string    `json:"promo_code,omitempty"`
	Subtotal       string    `json:"subtotal,omitempty"`
	DiscountAmount string    `json:"discount_amount,omitempty"`
	Total          string    `json:"total,omitempty"`
	ItemCount      int       `json:"item_count"`
	OccurredAt     time.Time `json:"occurred_at"`
}
