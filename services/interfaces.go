package services

import (
	"context"
	"time"

	"checkout-service/models"
)

// IntentStore is the durable slot holding the not-yet-confirmed order across
// the gateway redirect, plus the confirmation reservation used to keep the
// confirm call single-shot per gateway reference.
type IntentStore interface {
	Write(ctx context.Context, userID string, intent *models.PendingOrderIntent) error
	Read(ctx context.Context, userID string) (*models.PendingOrderIntent, error)
	Clear(ctx context.Context, userID string) error
	ReserveConfirmation(ctx context.Context, ref string, ttl time.Duration) (bool, error)
	ReleaseConfirmation(ctx context.Context, ref string) error
}

type CartAPI interface {
	GetCart(ctx context.Context, token string) (*models.Cart, error)
}

type OrderAPI interface {
	CreateOrder(ctx context.Context, token string, order *models.OrderData) (*models.Order, error)
	ConfirmPayment(ctx context.Context, token string, req *models.ConfirmPaymentRequest) (*models.Order, error)
	CancelOrder(ctx context.Context, token, orderID string) error
}

// PaymentGateway creates a hosted-checkout session and returns its reference
// and the URL the browser must be sent to.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, items []models.CartItem, addr models.ShippingAddress) (sessionID, url string, err error)
}

type EventPublisher interface {
	PublishCheckoutEvent(event models.CheckoutEvent) error
}
