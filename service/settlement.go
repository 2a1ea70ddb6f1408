package service

import (
	"context"

	"github.com/companieshouse/payments.gateway.ch.gov.uk/models"
	"github.com/google/uuid"
)

// ConfirmationResponse is the gateway response recorded against refunds
// settled by ConfirmingSettlement
const ConfirmationResponse = "Refund confirmed by acquiring bank"

// ConfirmingSettlement stands in for an asynchronous bank confirmation. Every
// refund it is asked about is confirmed.
type ConfirmingSettlement struct{}

// Decide confirms the refund, assigning a gateway refund id if the refund has
// none yet
func (ConfirmingSettlement) Decide(_ context.Context, refund models.Refund) (SettlementOutcome, error) {
	gatewayRefundID := refund.GatewayRefundID
	if gatewayRefundID == "" {
		gatewayRefundID = "rf_" + uuid.NewString()
	}

	return SettlementOutcome{
		Status:          models.RefundStatusCompleted,
		GatewayResponse: ConfirmationResponse,
		GatewayRefundID: gatewayRefundID,
	}, nil
}
