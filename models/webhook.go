package models

import (
	"fmt"
	"time"
)

// WebhookStatus is the delivery status of a webhook notification
type WebhookStatus string

// Webhook notification statuses
const (
	WebhookStatusPending   WebhookStatus = "PENDING"
	WebhookStatusDelivered WebhookStatus = "DELIVERED"
	WebhookStatusExhausted WebhookStatus = "EXHAUSTED"
)

// IsTerminal reports whether a notification with this status must never be
// mutated again.
func (status WebhookStatus) IsTerminal() bool {
	return status == WebhookStatusDelivered || status == WebhookStatusExhausted
}

// WebhookNotification is an outbound notification and its delivery history
type WebhookNotification struct {
	ID            string            `bson:"_id"`
	TargetURL     string            `bson:"target_url"      validate:"required,url"`
	Payload       []byte            `bson:"payload"`
	AttemptCount  int               `bson:"attempt_count"`
	Status        WebhookStatus     `bson:"status"`
	NextAttemptAt time.Time         `bson:"next_attempt_at"`
	LastError     string            `bson:"last_error,omitempty"`
	Attempts      []DeliveryAttempt `bson:"attempts,omitempty"`
	CreatedAt     time.Time         `bson:"created_at"`
	UpdatedAt     time.Time         `bson:"updated_at"`
	Version       int64             `bson:"version"`
}

// DeliveryAttempt records a single delivery attempt of a notification
type DeliveryAttempt struct {
	AttemptedAt time.Time `bson:"attempted_at"`
	StatusCode  int       `bson:"status_code,omitempty"`
	Error       string    `bson:"error,omitempty"`
}

// Validate checks the notification has a usable target
func (notification WebhookNotification) Validate() error {
	if err := validate.Struct(notification); err != nil {
		return fmt.Errorf("invalid webhook notification [%s]: [%v]", notification.ID, err)
	}
	return nil
}
