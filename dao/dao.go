package dao

import (
	"context"
	"errors"
	"time"

	"github.com/companieshouse/payments.gateway.ch.gov.uk/models"
)

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateRefund is returned when a refund id is already stored
	ErrDuplicateRefund = errors.New("refund id already exists")

	// ErrVersionConflict is returned when a record changed since it was read
	ErrVersionConflict = errors.New("record was modified concurrently")
)

// RefundDAO is an interface for accessing refunds from a backend store
type RefundDAO interface {
	CreateRefund(ctx context.Context, refund *models.RefundDB) error
	FindRefundsByStatusAndCutoff(ctx context.Context, status models.RefundStatus, cutoff time.Time) ([]models.RefundDB, error)
	SaveRefund(ctx context.Context, refund *models.RefundDB) error
}

// WebhookDAO is an interface for accessing webhook notifications from a
// backend store
type WebhookDAO interface {
	CreateWebhook(ctx context.Context, notification *models.WebhookNotification) error
	FindWebhooksDueForRetry(ctx context.Context, now time.Time) ([]models.WebhookNotification, error)
	SaveWebhook(ctx context.Context, notification *models.WebhookNotification) error
}

// DAO is an interface for accessing dao from a backend store
type DAO interface {
	RefundDAO
	WebhookDAO
}
