package dao

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/companieshouse/payments.gateway.ch.gov.uk/models"
)

// MemoryDAO is an in-process implementation of the DAO interface with the same
// versioned save semantics as MongoService. Records are copied on the way in
// and out so callers never share state with the store.
type MemoryDAO struct {
	mu       sync.Mutex
	refunds  map[string]models.RefundDB
	webhooks map[string]models.WebhookNotification
}

// NewMemoryDAO returns an empty MemoryDAO
func NewMemoryDAO() *MemoryDAO {
	return &MemoryDAO{
		refunds:  make(map[string]models.RefundDB),
		webhooks: make(map[string]models.WebhookNotification),
	}
}

// CreateRefund stores a new refund
func (m *MemoryDAO) CreateRefund(_ context.Context, refund *models.RefundDB) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.refunds[refund.RefundID]; ok {
		return fmt.Errorf("error creating refund [%s]: %w", refund.RefundID, ErrDuplicateRefund)
	}
	m.refunds[refund.RefundID] = *refund
	return nil
}

// FindRefundsByStatusAndCutoff gets every refund with the given status
// created at or before the cutoff, oldest first
func (m *MemoryDAO) FindRefundsByStatusAndCutoff(_ context.Context, status models.RefundStatus, cutoff time.Time) ([]models.RefundDB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var refunds []models.RefundDB
	for _, refund := range m.refunds {
		if refund.Status == string(status) && !refund.CreatedAt.After(cutoff) {
			refunds = append(refunds, refund)
		}
	}
	sort.Slice(refunds, func(i, j int) bool {
		return refunds[i].CreatedAt.Before(refunds[j].CreatedAt)
	})

	return refunds, nil
}

// SaveRefund replaces the stored refund if its version is unchanged
func (m *MemoryDAO) SaveRefund(_ context.Context, refund *models.RefundDB) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.refunds[refund.RefundID]
	if !ok || stored.Version != refund.Version {
		return fmt.Errorf("error saving refund [%s]: %w", refund.RefundID, ErrVersionConflict)
	}

	refund.Version++
	m.refunds[refund.RefundID] = *refund
	return nil
}

// GetRefund gets a single refund by id
func (m *MemoryDAO) GetRefund(id string) (models.RefundDB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	refund, ok := m.refunds[id]
	if !ok {
		return models.RefundDB{}, ErrNotFound
	}
	return refund, nil
}

// CreateWebhook stores a new webhook notification
func (m *MemoryDAO) CreateWebhook(_ context.Context, notification *models.WebhookNotification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.webhooks[notification.ID]; ok {
		return fmt.Errorf("webhook [%s] already exists", notification.ID)
	}
	m.webhooks[notification.ID] = copyWebhook(*notification)
	return nil
}

// FindWebhooksDueForRetry gets every pending webhook notification whose next
// attempt is due, earliest first
func (m *MemoryDAO) FindWebhooksDueForRetry(_ context.Context, now time.Time) ([]models.WebhookNotification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var notifications []models.WebhookNotification
	for _, notification := range m.webhooks {
		if notification.Status == models.WebhookStatusPending && !notification.NextAttemptAt.After(now) {
			notifications = append(notifications, copyWebhook(notification))
		}
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].NextAttemptAt.Before(notifications[j].NextAttemptAt)
	})

	return notifications, nil
}

// SaveWebhook replaces the stored webhook notification if its version is
// unchanged
func (m *MemoryDAO) SaveWebhook(_ context.Context, notification *models.WebhookNotification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.webhooks[notification.ID]
	if !ok || stored.Version != notification.Version {
		return fmt.Errorf("error saving webhook [%s]: %w", notification.ID, ErrVersionConflict)
	}

	notification.Version++
	m.webhooks[notification.ID] = copyWebhook(*notification)
	return nil
}

// GetWebhook gets a single webhook notification by id
func (m *MemoryDAO) GetWebhook(id string) (models.WebhookNotification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	notification, ok := m.webhooks[id]
	if !ok {
		return models.WebhookNotification{}, ErrNotFound
	}
	return copyWebhook(notification), nil
}

func copyWebhook(notification models.WebhookNotification) models.WebhookNotification {
	notification.Payload = append([]byte(nil), notification.Payload...)
	notification.Attempts = append([]models.DeliveryAttempt(nil), notification.Attempts...)
	return notification
}
