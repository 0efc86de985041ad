package services

import (
	"context"
	"strings"
	"time"

	apperrors "checkout-service/common/errors"
	"checkout-service/models"
	"checkout-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutService orchestrates checkout: it validates the cart snapshot and
// shipping address, places cash-on-delivery orders directly, and starts
// gateway payments by creating a hosted-checkout session. For gateway
// payments the pending intent is persisted strictly before the redirect URL
// is handed out, because once the browser navigates away nothing in memory
// survives.
type CheckoutService struct {
	carts     CartAPI
	orders    OrderAPI
	gateway   PaymentGateway
	store     IntentStore
	payments  repository.PaymentRepository
	events    EventPublisher
	currency  string
	intentTTL time.Duration
	logger    *zap.Logger
}

func NewCheckoutService(
	carts CartAPI,
	orders OrderAPI,
	gateway PaymentGateway,
	store IntentStore,
	payments repository.PaymentRepository,
	events EventPublisher,
	currency string,
	intentTTL time.Duration,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		orders:    orders,
		gateway:   gateway,
		store:     store,
		payments:  payments,
		events:    events,
		currency:  currency,
		intentTTL: intentTTL,
		logger:    logger,
	}
}

// CheckoutResult is what the UI needs after a cash-on-delivery order: the
// order, a message to show, and where to navigate after the given delay.
type CheckoutResult struct {
	Order           *models.Order `json:"order,omitempty"`
	Message         string        `json:"message"`
	RedirectTo      string        `json:"redirect_to"`
	RedirectAfterMS int           `json:"redirect_after_ms"`
}

// GatewaySessionResult carries the hosted-checkout redirect target.
type GatewaySessionResult struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// Summary returns the cart as checkout would use it: invalid line items
// dropped and the total recomputed from the survivors.
func (s *CheckoutService) Summary(ctx context.Context, token string) (*models.Cart, error) {
	cart, err := s.carts.GetCart(ctx, token)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOrderService, err)
	}
	items, total := models.Snapshot(cart.Items)
	cart.Items = items
	cart.TotalAmount = total
	return cart, nil
}

// PlaceCODOrder creates a cash-on-delivery order synchronously with the
// order service. The gateway is never involved.
func (s *CheckoutService) PlaceCODOrder(ctx context.Context, token, userID string, addr models.ShippingAddress) (*CheckoutResult, error) {
	items, total, err := s.buildSnapshot(ctx, token, &addr)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.CreateOrder(ctx, token, &models.OrderData{
		Items:           items,
		ShippingAddress: addr,
		TotalAmount:     total,
		PaymentMethod:   models.PaymentMethodCOD,
	})
	if err != nil {
		s.logger.Warn("COD order creation failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}

	s.publishCheckoutEvent(userID, order.ID, models.PaymentMethodCOD, total)

	return &CheckoutResult{
		Order:           order,
		Message:         "Order placed successfully! Cash on delivery selected.",
		RedirectTo:      "/orders",
		RedirectAfterMS: 3000,
	}, nil
}

// StartGatewayCheckout creates the hosted-checkout session and persists the
// pending intent. On any gateway failure nothing is written, so there is no
// partial state to clean up.
func (s *CheckoutService) StartGatewayCheckout(ctx context.Context, token, userID string, addr models.ShippingAddress) (*GatewaySessionResult, error) {
	items, total, err := s.buildSnapshot(ctx, token, &addr)
	if err != nil {
		return nil, err
	}

	sessionID, url, err := s.gateway.CreateCheckoutSession(ctx, items, addr)
	if err != nil {
		s.logger.Warn("gateway session creation failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, apperrors.Wrap(apperrors.ErrGatewaySession, err)
	}

	intent := &models.PendingOrderIntent{
		Items:           items,
		ShippingAddress: addr,
		TotalAmount:     total,
		CreatedAt:       time.Now().UTC(),
	}
	// The write must land before the URL leaves this service; the redirect
	// unloads the storefront entirely.
	if err := s.store.Write(ctx, userID, intent); err != nil {
		return nil, apperrors.New(500, "Failed to persist checkout state", err)
	}

	s.recordPaymentAttempt(ctx, userID, total, sessionID, url)

	return &GatewaySessionResult{SessionID: sessionID, URL: url}, nil
}

// CancelOrder forwards a cancellation to the order service. The order
// service rejects it unless the order is still Processing.
func (s *CheckoutService) CancelOrder(ctx context.Context, token, orderID string) error {
	return s.orders.CancelOrder(ctx, token, orderID)
}

func (s *CheckoutService) buildSnapshot(ctx context.Context, token string, addr *models.ShippingAddress) ([]models.CartItem, float64, error) {
	if err := validateAddress(addr); err != nil {
		return nil, 0, err
	}

	cart, err := s.carts.GetCart(ctx, token)
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrOrderService, err)
	}

	items, total := models.Snapshot(cart.Items)
	if len(items) == 0 {
		return nil, 0, apperrors.ErrEmptyCart
	}
	return items, total, nil
}

func (s *CheckoutService) recordPaymentAttempt(ctx context.Context, userID string, total float64, sessionID, url string) {
	if s.payments == nil {
		return
	}
	attempt := &models.PaymentAttempt{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      total,
		Currency:    s.currency,
		Method:      models.PaymentMethodGateway,
		Status:      models.PaymentAttemptInitiated,
		GatewayRef:  &sessionID,
		CheckoutURL: &url,
	}
	if err := s.payments.Create(ctx, attempt); err != nil {
		s.logger.Warn("failed to record payment attempt",
			zap.String("gateway_ref", sessionID),
			zap.Error(err),
		)
	}
}

func (s *CheckoutService) publishCheckoutEvent(userID, orderID, method string, total float64) {
	if s.events == nil {
		return
	}
	event := models.CheckoutEvent{
		Event:         models.EventCheckoutCompleted,
		EventID:       uuid.NewString(),
		UserID:        userID,
		OrderID:       orderID,
		PaymentMethod: method,
		TotalAmount:   total,
		Timestamp:     time.Now().UTC(),
	}
	if err := s.events.PublishCheckoutEvent(event); err != nil {
		s.logger.Warn("failed to publish checkout event",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
	}
}

func validateAddress(addr *models.ShippingAddress) error {
	addr.Normalize()
	if missing := addr.MissingFields(); len(missing) > 0 {
		return apperrors.WithMessage(apperrors.ErrValidation,
			"Please fill in all required fields: "+strings.Join(missing, ", "))
	}
	if !addr.PhoneValid() {
		return apperrors.WithMessage(apperrors.ErrValidation, "Please enter a valid phone number")
	}
	return nil
}
