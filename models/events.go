package models

import "time"

// CheckoutEvent is published (best-effort) after an order is materialized,
// either directly for cash on delivery or by the reconciler after a gateway
// payment is confirmed.
type CheckoutEvent struct {
	Event         string    `json:"event"`
	EventID       string    `json:"event_id"`
	UserID        string    `json:"user_id"`
	OrderID       string    `json:"order_id"`
	PaymentMethod string    `json:"payment_method"`
	TotalAmount   float64   `json:"total_amount"`
	Timestamp     time.Time `json:"timestamp"`
}

const (
	EventCheckoutCompleted = "checkout.completed"
)
