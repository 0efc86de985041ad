package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentAttemptInitiated = "initiated"
	PaymentAttemptSucceeded = "succeeded"
	PaymentAttemptFailed    = "failed"
)

// PaymentAttempt is the local audit row written when a gateway session is
// created and updated when the reconciler resolves it. It exists for support
// diagnosis; the order service remains the source of truth for orders.
type PaymentAttempt struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      string    `gorm:"type:varchar(64);index;not null"`
	Amount      float64   `gorm:"not null"`
	Currency    string    `gorm:"type:varchar(10);not null"`
	Method      string    `gorm:"type:varchar(30);not null"`
	Status      string    `gorm:"type:varchar(20);not null"`
	GatewayRef  *string   `gorm:"uniqueIndex"`
	CheckoutURL *string   `gorm:"type:varchar(1024)"`
	LastError   *string   `gorm:"type:text"`
	SucceededAt *time.Time
	FailedAt    *time.Time
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
