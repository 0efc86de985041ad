package models

import "time"

const (
	PaymentMethodCOD     = "cash_on_delivery"
	PaymentMethodGateway = "gateway"
)

const (
	OrderStatusProcessing = "Processing"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// PaymentDetails carries the gateway reference handed back on the return
// URL. Exactly one of PaymentIntentID or SessionID is set, depending on
// which gateway flow produced it.
type PaymentDetails struct {
	PaymentIntentID string `json:"paymentIntentId,omitempty"`
	SessionID       string `json:"sessionId,omitempty"`
	Status          string `json:"status"`
}

// OrderData is the payload sent to the order service for both creation and
// payment confirmation.
type OrderData struct {
	Items           []CartItem      `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	TotalAmount     float64         `json:"totalAmount"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentDetails  *PaymentDetails `json:"paymentDetails,omitempty"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string    `json:"paymentIntentId,omitempty"`
	SessionID       string    `json:"sessionId,omitempty"`
	OrderData       OrderData `json:"orderData"`
}

// Order is the durable entity owned by the order service.
type Order struct {
	ID          string     `json:"id"`
	OrderNumber string     `json:"order_number"`
	Status      string     `json:"status"`
	TotalAmount float64    `json:"total_amount"`
	CreatedAt   time.Time  `json:"created_at"`
	Items       []CartItem `json:"items,omitempty"`
}
