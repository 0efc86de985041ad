package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"checkout-service/models"

	"github.com/redis/go-redis/v9"
)

// IntentRepository is the pending-intent store: one well-known slot per user
// holding the order that is in flight across the gateway redirect.
type IntentRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIntentRepository(client *redis.Client, ttl time.Duration) *IntentRepository {
	return &IntentRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *IntentRepository) key(userID string) string {
	return fmt.Sprintf("checkout:pending:%s", userID)
}

func (r *IntentRepository) confirmKey(ref string) string {
	return "checkout:confirm:" + ref
}

// Write persists the intent, overwriting any prior value. The Redis expiry is
// set to twice the staleness TTL as a backstop; staleness itself is judged by
// the intent's CreatedAt.
func (r *IntentRepository) Write(ctx context.Context, userID string, intent *models.PendingOrderIntent) error {
	data, err := json.Marshal(intent)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(userID), data, 2*r.ttl).Err()
}

// Read returns the stored intent, or nil if none exists. A value that fails
// to parse is deleted and reported as absent so the same corrupt slot is
// never read twice.
func (r *IntentRepository) Read(ctx context.Context, userID string) (*models.PendingOrderIntent, error) {
	data, err := r.client.Get(ctx, r.key(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	intent, err := decodeIntent(data)
	if err != nil {
		_ = r.client.Del(ctx, r.key(userID)).Err()
		return nil, nil
	}
	return intent, nil
}

// Clear removes the slot unconditionally.
func (r *IntentRepository) Clear(ctx context.Context, userID string) error {
	return r.client.Del(ctx, r.key(userID)).Err()
}

// ReserveConfirmation claims the right to confirm the given gateway
// reference. Returns false if another confirmation for the same reference
// already holds the claim, which guards against the return page firing the
// confirm call twice.
func (r *IntentRepository) ReserveConfirmation(ctx context.Context, ref string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, r.confirmKey(ref), time.Now().UTC().Format(time.RFC3339), ttl).Result()
}

// ReleaseConfirmation gives the claim back so a failed confirmation can be
// retried.
func (r *IntentRepository) ReleaseConfirmation(ctx context.Context, ref string) error {
	return r.client.Del(ctx, r.confirmKey(ref)).Err()
}

func decodeIntent(data string) (*models.PendingOrderIntent, error) {
	var intent models.PendingOrderIntent
	if err := json.Unmarshal([]byte(data), &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}
