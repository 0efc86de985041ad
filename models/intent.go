package models

import "time"

// DefaultIntentTTL is how long a pending order intent stays usable after it
// was written. Anything older is treated as an abandoned checkout.
const DefaultIntentTTL = 30 * time.Minute

// PendingOrderIntent is the durable record written right before the browser
// is sent to the payment gateway's hosted page. It is the only state that
// survives the redirect round-trip, so the reconciler rebuilds the order
// from it when the gateway sends the user back.
type PendingOrderIntent struct {
	Items           []CartItem      `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	TotalAmount     float64         `json:"totalAmount"`
	CreatedAt       time.Time       `json:"createdAt"`
	Failed          bool            `json:"failed,omitempty"`
	LastError       string          `json:"lastError,omitempty"`
}

// IsStale reports whether the intent is older than ttl at the given instant.
func (p *PendingOrderIntent) IsStale(now time.Time, ttl time.Duration) bool {
	return now.Sub(p.CreatedAt) > ttl
}
