package service

import (
	"context"

	"github.com/companieshouse/payments.gateway.ch.gov.uk/models"
)

// WebhookSender delivers a notification to its target url. The returned status
// code is zero when no response was received. Any transport failure or non-2xx
// response is returned as an error.
type WebhookSender interface {
	Send(ctx context.Context, notification models.WebhookNotification) (int, error)
}

// RefundEventPublisher announces refunds that have been settled
type RefundEventPublisher interface {
	PublishRefundProcessed(refund models.Refund) error
}

// SettlementDecider decides how an in-flight refund settles
type SettlementDecider interface {
	Decide(ctx context.Context, refund models.Refund) (SettlementOutcome, error)
}

// SettlementOutcome is the decision for a single refund. A status of
// PROCESSING means the refund has not settled yet and is left for a later run.
type SettlementOutcome struct {
	Status          models.RefundStatus
	GatewayResponse string
	GatewayRefundID string
}
