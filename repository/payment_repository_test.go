package repository_test

import (
	"context"
	"regexp"
	"testing"

	"checkout-service/models"
	"checkout-service/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gormDB, mock
}

func TestCreate_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormPaymentRepo(gormDB)

	ref := "cs_abc"
	url := "https://gw/pay"
	attempt := &models.PaymentAttempt{
		ID:          uuid.New(),
		UserID:      "user-1",
		Amount:      2500,
		Currency:    "inr",
		Method:      models.PaymentMethodGateway,
		Status:      models.PaymentAttemptInitiated,
		GatewayRef:  &ref,
		CheckoutURL: &url,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "payment_attempts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(attempt.ID))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), attempt)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusByGatewayRef_Succeeded(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormPaymentRepo(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "payment_attempts"`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.UpdateStatusByGatewayRef(context.Background(), "cs_abc", models.PaymentAttemptSucceeded, nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusByGatewayRef_FailedWithError(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormPaymentRepo(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "payment_attempts"`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	lastError := "upstream timeout"
	err := repo.UpdateStatusByGatewayRef(context.Background(), "cs_abc", models.PaymentAttemptFailed, &lastError)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByGatewayRef_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormPaymentRepo(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payment_attempts"`)).
		WithArgs("cs_missing").
		WillReturnRows(sqlmock.NewRows([]string{}))

	attempt, err := repo.GetByGatewayRef(context.Background(), "cs_missing")
	assert.Error(t, err)
	assert.Nil(t, attempt)
}
