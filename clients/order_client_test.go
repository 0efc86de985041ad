package clients_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"checkout-service/clients"
	apperrors "checkout-service/common/errors"
	"checkout-service/models"

	"github.com/stretchr/testify/assert"
)

func orderServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func confirmRequest() *models.ConfirmPaymentRequest {
	return &models.ConfirmPaymentRequest{
		SessionID: "cs_abc",
		OrderData: models.OrderData{
			Items:         []models.CartItem{{ProductID: "A", Quantity: 1, Price: 100}},
			TotalAmount:   100,
			PaymentMethod: models.PaymentMethodGateway,
		},
	}
}

func TestConfirmPayment_Success(t *testing.T) {
	srv := orderServer(t, http.StatusOK, `{"success":true,"data":{"id":"order-9","status":"Processing","total_amount":100}}`)
	defer srv.Close()

	client := clients.NewOrderClient(srv.URL, 2*time.Second)
	order, err := client.ConfirmPayment(context.Background(), "test-token", confirmRequest())

	assert.NoError(t, err)
	assert.Equal(t, "order-9", order.ID)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
}

func TestConfirmPayment_ConflictMapped(t *testing.T) {
	srv := orderServer(t, http.StatusConflict, `{"success":false,"message":"order already exists"}`)
	defer srv.Close()

	client := clients.NewOrderClient(srv.URL, 2*time.Second)
	_, err := client.ConfirmPayment(context.Background(), "test-token", confirmRequest())

	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestConfirmPayment_AuthExpiredMapped(t *testing.T) {
	srv := orderServer(t, http.StatusUnauthorized, `{"success":false,"message":"token expired"}`)
	defer srv.Close()

	client := clients.NewOrderClient(srv.URL, 2*time.Second)
	_, err := client.ConfirmPayment(context.Background(), "test-token", confirmRequest())

	assert.True(t, apperrors.Is(err, apperrors.ErrAuthExpired))
}

func TestConfirmPayment_DeclineKeepsUpstreamMessage(t *testing.T) {
	srv := orderServer(t, http.StatusBadRequest, `{"success":false,"message":"Payment amount mismatch"}`)
	defer srv.Close()

	client := clients.NewOrderClient(srv.URL, 2*time.Second)
	_, err := client.ConfirmPayment(context.Background(), "test-token", confirmRequest())

	appErr := apperrors.From(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Equal(t, "Payment amount mismatch", appErr.Message)
}

func TestConfirmPayment_UpstreamServerError(t *testing.T) {
	srv := orderServer(t, http.StatusInternalServerError, `{"success":false}`)
	defer srv.Close()

	client := clients.NewOrderClient(srv.URL, 2*time.Second)
	_, err := client.ConfirmPayment(context.Background(), "test-token", confirmRequest())

	assert.Equal(t, http.StatusBadGateway, apperrors.From(err).Code)
}

func TestConfirmPayment_TransportError(t *testing.T) {
	srv := orderServer(t, http.StatusOK, `{}`)
	srv.Close() // force a connection failure

	client := clients.NewOrderClient(srv.URL, time.Second)
	_, err := client.ConfirmPayment(context.Background(), "test-token", confirmRequest())

	assert.Equal(t, http.StatusBadGateway, apperrors.From(err).Code)
}

func TestCreateOrder_SendsOrderPayload(t *testing.T) {
	var received models.OrderData
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"order-1"}}`))
	}))
	defer srv.Close()

	client := clients.NewOrderClient(srv.URL, 2*time.Second)
	order, err := client.CreateOrder(context.Background(), "test-token", &models.OrderData{
		Items:         []models.CartItem{{ProductID: "A", Quantity: 2, Price: 500}},
		TotalAmount:   1000,
		PaymentMethod: models.PaymentMethodCOD,
	})

	assert.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, 1000.0, received.TotalAmount)
	assert.Equal(t, models.PaymentMethodCOD, received.PaymentMethod)
}

func TestCancelOrder_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/order-1/cancel", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	client := clients.NewOrderClient(srv.URL, 2*time.Second)
	err := client.CancelOrder(context.Background(), "test-token", "order-1")

	assert.NoError(t, err)
}
