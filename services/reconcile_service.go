package services

import (
	"context"
	"net/http"
	"time"

	apperrors "checkout-service/common/errors"
	"checkout-service/models"
	"checkout-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReconcileState string

const (
	StateChecking ReconcileState = "checking"
	StateSuccess  ReconcileState = "success"
	StateFailed   ReconcileState = "failed"
	StateError    ReconcileState = "error"
)

// ReconcileResult is returned to the UI landing on the payment return URL.
// Code is the HTTP status the controller should respond with.
type ReconcileResult struct {
	Status          ReconcileState `json:"status"`
	Message         string         `json:"message,omitempty"`
	Order           *models.Order  `json:"order,omitempty"`
	RedirectTo      string         `json:"redirect_to,omitempty"`
	RedirectAfterMS int            `json:"redirect_after_ms,omitempty"`
	Code            int            `json:"-"`
}

// ReconcileService resolves a gateway redirect-back into exactly one durable
// order. It reads the pending intent written before the redirect, asks the
// order service to confirm the payment, and clears or annotates the intent
// depending on the outcome:
//
//   - success and 409 conflict clear the intent (conflict means a previous
//     confirmation already materialized the order)
//   - an explicit decline and an expired login keep the intent so the user
//     can retry without re-entering anything
//   - unexpected failures keep the intent annotated with the error
type ReconcileService struct {
	store    IntentStore
	orders   OrderAPI
	payments repository.PaymentRepository
	events   EventPublisher
	ttl      time.Duration
	logger   *zap.Logger
}

func NewReconcileService(
	store IntentStore,
	orders OrderAPI,
	payments repository.PaymentRepository,
	events EventPublisher,
	ttl time.Duration,
	logger *zap.Logger,
) *ReconcileService {
	return &ReconcileService{
		store:    store,
		orders:   orders,
		payments: payments,
		events:   events,
		ttl:      ttl,
		logger:   logger,
	}
}

// ReconcileReturn runs once per landing on the return URL. sessionID and
// paymentIntentID come from the gateway's query parameters; whichever is
// present is the reference. At most one confirm call reaches the order
// service per reference.
func (s *ReconcileService) ReconcileReturn(ctx context.Context, token, userID, sessionID, paymentIntentID string) *ReconcileResult {
	ref := sessionID
	if ref == "" {
		ref = paymentIntentID
	}
	if ref == "" {
		return &ReconcileResult{
			Status:  StateError,
			Message: "No payment reference found in the return URL.",
			Code:    http.StatusBadRequest,
		}
	}

	intent, err := s.store.Read(ctx, userID)
	if err != nil {
		s.logger.Error("failed to read pending intent",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return &ReconcileResult{
			Status:  StateError,
			Message: "Could not load your pending order. Please try again.",
			Code:    http.StatusInternalServerError,
		}
	}
	if intent == nil {
		return &ReconcileResult{
			Status:  StateError,
			Message: apperrors.ErrIntentMissing.Message,
			Code:    apperrors.ErrIntentMissing.Code,
		}
	}

	if intent.IsStale(time.Now().UTC(), s.ttl) {
		if err := s.store.Clear(ctx, userID); err != nil {
			s.logger.Warn("failed to clear stale intent", zap.String("user_id", userID), zap.Error(err))
		}
		return &ReconcileResult{
			Status:  StateError,
			Message: apperrors.ErrStaleIntent.Message,
			Code:    apperrors.ErrStaleIntent.Code,
		}
	}

	reserved, err := s.store.ReserveConfirmation(ctx, ref, s.ttl)
	if err != nil {
		// The reservation is a guard, not a gate; the order service's own
		// idempotence still holds if Redis is unavailable.
		s.logger.Warn("confirmation reservation unavailable", zap.String("gateway_ref", ref), zap.Error(err))
		reserved = true
	}
	if !reserved {
		return &ReconcileResult{
			Status:  StateChecking,
			Message: "Payment confirmation is already in progress.",
			Code:    http.StatusAccepted,
		}
	}

	confirmReq := &models.ConfirmPaymentRequest{
		OrderData: models.OrderData{
			Items:           intent.Items,
			ShippingAddress: intent.ShippingAddress,
			TotalAmount:     intent.TotalAmount,
			PaymentMethod:   models.PaymentMethodGateway,
			PaymentDetails: &models.PaymentDetails{
				Status: "succeeded",
			},
		},
	}
	if sessionID != "" {
		confirmReq.SessionID = sessionID
		confirmReq.OrderData.PaymentDetails.SessionID = sessionID
	} else {
		confirmReq.PaymentIntentID = paymentIntentID
		confirmReq.OrderData.PaymentDetails.PaymentIntentID = paymentIntentID
	}

	order, err := s.orders.ConfirmPayment(ctx, token, confirmReq)
	if err != nil {
		return s.resolveFailure(ctx, userID, ref, intent, err)
	}

	return s.resolveSuccess(ctx, userID, ref, intent, order, "Payment successful! Your order has been placed.")
}

func (s *ReconcileService) resolveSuccess(ctx context.Context, userID, ref string, intent *models.PendingOrderIntent, order *models.Order, message string) *ReconcileResult {
	if err := s.store.Clear(ctx, userID); err != nil {
		s.logger.Warn("failed to clear confirmed intent", zap.String("user_id", userID), zap.Error(err))
	}
	s.markPayment(ctx, ref, models.PaymentAttemptSucceeded, nil)

	orderID := ""
	if order != nil {
		orderID = order.ID
	}
	s.publishCheckoutEvent(userID, orderID, intent.TotalAmount)

	return &ReconcileResult{
		Status:          StateSuccess,
		Message:         message,
		Order:           order,
		RedirectTo:      "/orders",
		RedirectAfterMS: 2000,
		Code:            http.StatusOK,
	}
}

func (s *ReconcileService) resolveFailure(ctx context.Context, userID, ref string, intent *models.PendingOrderIntent, err error) *ReconcileResult {
	appErr := apperrors.From(err)

	switch {
	case appErr.Code == http.StatusConflict:
		// The order already exists for this reference; a reload or re-fired
		// confirmation reached the order service first. Same as success.
		return s.resolveSuccess(ctx, userID, ref, intent, nil, "Your order was already confirmed.")

	case appErr.Code == http.StatusUnauthorized:
		// Keep the intent and release the reservation so the confirmation
		// can be retried after logging in again.
		s.releaseReservation(ctx, ref)
		return &ReconcileResult{
			Status:  StateError,
			Message: apperrors.ErrAuthExpired.Message,
			Code:    http.StatusUnauthorized,
		}

	case appErr.Code >= http.StatusBadRequest && appErr.Code < http.StatusInternalServerError:
		// Explicit decline from the order service. Intent stays so the user
		// can retry without re-entering payment details.
		s.releaseReservation(ctx, ref)
		s.markPayment(ctx, ref, models.PaymentAttemptFailed, &appErr.Message)
		return &ReconcileResult{
			Status:  StateFailed,
			Message: appErr.Message,
			Code:    http.StatusUnprocessableEntity,
		}

	default:
		// Network or unexpected upstream failure: annotate the intent so a
		// later retry or a support engineer can pick it up.
		s.releaseReservation(ctx, ref)
		s.annotateIntent(ctx, userID, intent, appErr.Error())
		s.markPayment(ctx, ref, models.PaymentAttemptFailed, &appErr.Message)
		return &ReconcileResult{
			Status:  StateError,
			Message: "Failed to confirm payment. Your order details were kept for retry.",
			Code:    http.StatusBadGateway,
		}
	}
}

func (s *ReconcileService) annotateIntent(ctx context.Context, userID string, intent *models.PendingOrderIntent, lastError string) {
	intent.Failed = true
	intent.LastError = lastError
	if err := s.store.Write(ctx, userID, intent); err != nil {
		s.logger.Warn("failed to annotate pending intent", zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *ReconcileService) releaseReservation(ctx context.Context, ref string) {
	if err := s.store.ReleaseConfirmation(ctx, ref); err != nil {
		s.logger.Warn("failed to release confirmation reservation", zap.String("gateway_ref", ref), zap.Error(err))
	}
}

func (s *ReconcileService) markPayment(ctx context.Context, ref, status string, lastError *string) {
	if s.payments == nil {
		return
	}
	if err := s.payments.UpdateStatusByGatewayRef(ctx, ref, status, lastError); err != nil {
		s.logger.Warn("failed to update payment attempt",
			zap.String("gateway_ref", ref),
			zap.String("status", status),
			zap.Error(err),
		)
	}
}

func (s *ReconcileService) publishCheckoutEvent(userID, orderID string, total float64) {
	if s.events == nil {
		return
	}
	event := models.CheckoutEvent{
		Event:         models.EventCheckoutCompleted,
		EventID:       uuid.NewString(),
		UserID:        userID,
		OrderID:       orderID,
		PaymentMethod: models.PaymentMethodGateway,
		TotalAmount:   total,
		Timestamp:     time.Now().UTC(),
	}
	if err := s.events.PublishCheckoutEvent(event); err != nil {
		s.logger.Warn("failed to publish checkout event", zap.String("order_id", orderID), zap.Error(err))
	}
}
