package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	apperrors "checkout-service/common/errors"
	"checkout-service/models"
)

// OrderClient talks to the order service. Upstream failures are translated
// into the application error taxonomy so callers can branch on the outcome
// without inspecting HTTP details:
//
//	401 -> ErrAuthExpired, 409 -> ErrConflict, other 4xx -> order service
//	decline with the upstream message verbatim, 5xx and transport errors ->
//	ErrOrderService.
type OrderClient struct {
	baseURL string
	client  *http.Client
}

func NewOrderClient(baseURL string, timeout time.Duration) *OrderClient {
	return &OrderClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type orderEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// CreateOrder places a cash-on-delivery order synchronously.
func (c *OrderClient) CreateOrder(ctx context.Context, token string, order *models.OrderData) (*models.Order, error) {
	return c.postOrder(ctx, token, "/orders", order)
}

// ConfirmPayment asks the order service to atomically confirm the gateway
// payment and materialize the order. The order service is idempotent keyed
// by the gateway reference; a duplicate call returns 409.
func (c *OrderClient) ConfirmPayment(ctx context.Context, token string, req *models.ConfirmPaymentRequest) (*models.Order, error) {
	return c.postOrder(ctx, token, "/orders/confirm-payment", req)
}

// CancelOrder cancels an order. Only valid while the order is Processing.
func (c *OrderClient) CancelOrder(ctx context.Context, token, orderID string) error {
	_, err := c.postOrder(ctx, token, "/orders/"+orderID+"/cancel", nil)
	return err
}

func (c *OrderClient) postOrder(ctx context.Context, token, path string, payload interface{}) (*models.Order, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOrderService, err)
	}
	defer resp.Body.Close()

	var envelope orderEnvelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&envelope)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, apperrors.ErrAuthExpired
	case resp.StatusCode == http.StatusConflict:
		return nil, apperrors.ErrConflict
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, apperrors.WithMessage(apperrors.ErrOrderService, upstreamMessage(envelope, "Order service is unavailable"))
	}

	if decodeErr != nil {
		return nil, apperrors.Wrap(apperrors.ErrOrderService, decodeErr)
	}

	if resp.StatusCode >= http.StatusBadRequest || !envelope.Success {
		// Explicit decline from the order service; keep its message.
		code := resp.StatusCode
		if code < http.StatusBadRequest {
			code = http.StatusBadRequest
		}
		return nil, apperrors.New(code, upstreamMessage(envelope, "Order request was declined"), nil)
	}

	var order models.Order
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &order); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrOrderService, err)
		}
	}
	return &order, nil
}

func upstreamMessage(envelope orderEnvelope, fallback string) string {
	if envelope.Message != "" {
		return envelope.Message
	}
	return fallback
}
