package repository

import (
	"context"
	"time"

	"checkout-service/models"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, attempt *models.PaymentAttempt) error
	GetByGatewayRef(ctx context.Context, ref string) (*models.PaymentAttempt, error)
	UpdateStatusByGatewayRef(ctx context.Context, ref, status string, lastError *string) error
}

type gormPaymentRepo struct {
	db *gorm.DB
}

func NewGormPaymentRepo(db *gorm.DB) PaymentRepository {
	return &gormPaymentRepo{db: db}
}

func (r *gormPaymentRepo) Create(ctx context.Context, attempt *models.PaymentAttempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *gormPaymentRepo) GetByGatewayRef(ctx context.Context, ref string) (*models.PaymentAttempt, error) {
	var attempt models.PaymentAttempt
	if err := r.db.WithContext(ctx).Where("gateway_ref = ?", ref).First(&attempt).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *gormPaymentRepo) UpdateStatusByGatewayRef(ctx context.Context, ref, status string, lastError *string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":     status,
		"last_error": lastError,
	}
	switch status {
	case models.PaymentAttemptSucceeded:
		updates["succeeded_at"] = &now
	case models.PaymentAttemptFailed:
		updates["failed_at"] = &now
	}
	return r.db.WithContext(ctx).
		Model(&models.PaymentAttempt{}).
		Where("gateway_ref = ?", ref).
		Updates(updates).Error
}
