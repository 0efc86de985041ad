package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsStale_OlderThanTTL(t *testing.T) {
	now := time.Now().UTC()
	intent := &PendingOrderIntent{CreatedAt: now.Add(-31 * time.Minute)}

	assert.True(t, intent.IsStale(now, DefaultIntentTTL))
}

func TestIsStale_WithinTTL(t *testing.T) {
	now := time.Now().UTC()
	intent := &PendingOrderIntent{CreatedAt: now.Add(-29 * time.Minute)}

	assert.False(t, intent.IsStale(now, DefaultIntentTTL))
}

func TestIsStale_ExactBoundary(t *testing.T) {
	now := time.Now().UTC()
	intent := &PendingOrderIntent{CreatedAt: now.Add(-DefaultIntentTTL)}

	// Exactly at the TTL is still usable; only strictly older is stale.
	assert.False(t, intent.IsStale(now, DefaultIntentTTL))
}
