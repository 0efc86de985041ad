package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"checkout-service/models"
)

// fakeIntentStore keeps intents as raw JSON so corrupt-slot behavior can be
// exercised the same way the Redis-backed store behaves.
type fakeIntentStore struct {
	raw        map[string]string
	reserved   map[string]bool
	writeErr   error
	readErr    error
	reserveErr error
	writes     int
	clears     int
}

func newFakeIntentStore() *fakeIntentStore {
	return &fakeIntentStore{
		raw:      make(map[string]string),
		reserved: make(map[string]bool),
	}
}

func (f *fakeIntentStore) Write(ctx context.Context, userID string, intent *models.PendingOrderIntent) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	data, err := json.Marshal(intent)
	if err != nil {
		return err
	}
	f.raw[userID] = string(data)
	f.writes++
	return nil
}

func (f *fakeIntentStore) Read(ctx context.Context, userID string) (*models.PendingOrderIntent, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	data, ok := f.raw[userID]
	if !ok {
		return nil, nil
	}
	var intent models.PendingOrderIntent
	if err := json.Unmarshal([]byte(data), &intent); err != nil {
		delete(f.raw, userID)
		return nil, nil
	}
	return &intent, nil
}

func (f *fakeIntentStore) Clear(ctx context.Context, userID string) error {
	delete(f.raw, userID)
	f.clears++
	return nil
}

func (f *fakeIntentStore) ReserveConfirmation(ctx context.Context, ref string, ttl time.Duration) (bool, error) {
	if f.reserveErr != nil {
		return false, f.reserveErr
	}
	if f.reserved[ref] {
		return false, nil
	}
	f.reserved[ref] = true
	return true, nil
}

func (f *fakeIntentStore) ReleaseConfirmation(ctx context.Context, ref string) error {
	delete(f.reserved, ref)
	return nil
}

func (f *fakeIntentStore) stored(userID string) *models.PendingOrderIntent {
	data, ok := f.raw[userID]
	if !ok {
		return nil
	}
	var intent models.PendingOrderIntent
	if err := json.Unmarshal([]byte(data), &intent); err != nil {
		return nil
	}
	return &intent
}

type fakeCartAPI struct {
	cart *models.Cart
	err  error
}

func (f *fakeCartAPI) GetCart(ctx context.Context, token string) (*models.Cart, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cart, nil
}

type fakeOrderAPI struct {
	createCalls  int
	confirmCalls int
	cancelCalls  int

	lastCreate  *models.OrderData
	lastConfirm *models.ConfirmPaymentRequest

	order      *models.Order
	createErr  error
	confirmErr error
	cancelErr  error
}

func (f *fakeOrderAPI) CreateOrder(ctx context.Context, token string, order *models.OrderData) (*models.Order, error) {
	f.createCalls++
	f.lastCreate = order
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.order, nil
}

func (f *fakeOrderAPI) ConfirmPayment(ctx context.Context, token string, req *models.ConfirmPaymentRequest) (*models.Order, error) {
	f.confirmCalls++
	f.lastConfirm = req
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	return f.order, nil
}

func (f *fakeOrderAPI) CancelOrder(ctx context.Context, token, orderID string) error {
	f.cancelCalls++
	return f.cancelErr
}

type fakeGateway struct {
	calls     int
	sessionID string
	url       string
	err       error
}

func (f *fakeGateway) CreateCheckoutSession(ctx context.Context, items []models.CartItem, addr models.ShippingAddress) (string, string, error) {
	f.calls++
	if f.err != nil {
		return "", "", f.err
	}
	return f.sessionID, f.url, nil
}

type fakeEvents struct {
	published []models.CheckoutEvent
	err       error
}

func (f *fakeEvents) PublishCheckoutEvent(event models.CheckoutEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, event)
	return nil
}

var errNetwork = errors.New("connection refused")
