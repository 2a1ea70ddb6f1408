package transformers

import (
	"fmt"

	"github.com/companieshouse/payments.gateway.ch.gov.uk/models"
	"github.com/shopspring/decimal"
)

// amountScale is the number of decimal places an amount is persisted with
const amountScale = 2

// RefundTransformer transforms refunds between the domain and database models
type RefundTransformer struct{}

// TransformToDB transforms a refund into the refund database model
func (rt RefundTransformer) TransformToDB(refund models.Refund) models.RefundDB {
	return models.RefundDB{
		RefundID:        refund.RefundID,
		PaymentID:       refund.PaymentID,
		TransactionID:   refund.TransactionID,
		MerchantID:      refund.MerchantID,
		CustomerID:      refund.CustomerID,
		Amount:          refund.Amount.StringFixed(amountScale),
		Currency:        refund.Currency,
		Status:          string(refund.Status),
		Reason:          string(refund.Reason),
		GatewayResponse: refund.GatewayResponse,
		GatewayRefundID: refund.GatewayRefundID,
		CreatedAt:       refund.CreatedAt,
		UpdatedAt:       refund.UpdatedAt,
		Version:         refund.Version,
	}
}

// TransformToResource transforms a refund database model into a refund. An
// error is returned if the stored amount is not a decimal number.
func (rt RefundTransformer) TransformToResource(dbResource models.RefundDB) (models.Refund, error) {
	amount, err := decimal.NewFromString(dbResource.Amount)
	if err != nil {
		return models.Refund{}, fmt.Errorf("error parsing amount [%s] of refund [%s]: [%v]", dbResource.Amount, dbResource.RefundID, err)
	}

	return models.Refund{
		RefundID:        dbResource.RefundID,
		PaymentID:       dbResource.PaymentID,
		TransactionID:   dbResource.TransactionID,
		MerchantID:      dbResource.MerchantID,
		CustomerID:      dbResource.CustomerID,
		Amount:          amount,
		Currency:        dbResource.Currency,
		Status:          models.RefundStatus(dbResource.Status),
		Reason:          models.RefundReason(dbResource.Reason),
		GatewayResponse: dbResource.GatewayResponse,
		GatewayRefundID: dbResource.GatewayRefundID,
		CreatedAt:       dbResource.CreatedAt,
		UpdatedAt:       dbResource.UpdatedAt,
		Version:         dbResource.Version,
	}, nil
}
