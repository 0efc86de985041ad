package services

import (
	"context"
	"fmt"
	"math"

	"checkout-service/models"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
)

// StripeService creates hosted-checkout sessions. The success URL carries the
// {CHECKOUT_SESSION_ID} placeholder so Stripe appends the session reference
// the reconciler needs when redirecting the customer back.
type StripeService struct {
	successURL string
	cancelURL  string
	currency   string
}

func NewStripeService(secretKey, frontendURL, currency string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{
		successURL: frontendURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:  frontendURL + "/payment-cancel",
		currency:   currency,
	}
}

func (s *StripeService) CreateCheckoutSession(ctx context.Context, items []models.CartItem, addr models.ShippingAddress) (string, string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(s.currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.ProductID),
				},
				UnitAmount: stripe.Int64(int64(math.Round(item.Price * 100))),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.successURL),
		CancelURL:  stripe.String(s.cancelURL),
		LineItems:  lineItems,
	}
	params.Context = ctx
	params.AddMetadata("shipping_name", addr.FullName)
	params.AddMetadata("shipping_city", addr.City)
	params.AddMetadata("shipping_postal_code", addr.PostalCode)
	params.AddMetadata("shipping_country", addr.Country)

	sess, err := session.New(params)
	if err != nil {
		return "", "", err
	}
	if sess.URL == "" {
		return "", "", fmt.Errorf("stripe returned no checkout URL for session %s", sess.ID)
	}
	return sess.ID, sess.URL, nil
}
