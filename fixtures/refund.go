package fixtures

import (
	"fmt"
	"time"

	"github.com/companieshouse/payments.gateway.ch.gov.uk/models"
)

// MerchantID is the merchant every fixture refund belongs to
var MerchantID = "merchant_0001"

// TargetURL is the endpoint every fixture webhook notification is sent to
var TargetURL = "https://merchant.example.com/webhooks"

// GetProcessingRefund returns a refund in flight since createdAt
func GetProcessingRefund(id string, createdAt time.Time) models.RefundDB {
	return models.RefundDB{
		RefundID:      id,
		PaymentID:     "pay_" + id,
		TransactionID: "txn_" + id,
		MerchantID:    MerchantID,
		CustomerID:    "cus_0001",
		Amount:        "150.00",
		Currency:      "GBP",
		Status:        string(models.RefundStatusProcessing),
		Reason:        string(models.RefundReasonCustomerRequest),
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

// GetProcessingRefunds returns count refunds in flight, the first created at
// createdAt and each later one a second after the previous
func GetProcessingRefunds(count int, createdAt time.Time) []models.RefundDB {
	refunds := make([]models.RefundDB, 0, count)
	for i := 0; i < count; i++ {
		refunds = append(refunds, GetProcessingRefund(fmt.Sprintf("refund_%03d", i), createdAt.Add(time.Duration(i)*time.Second)))
	}
	return refunds
}

// GetPendingWebhook returns a webhook notification due at nextAttemptAt that
// has never been attempted
func GetPendingWebhook(id string, nextAttemptAt time.Time) models.WebhookNotification {
	return models.WebhookNotification{
		ID:            id,
		TargetURL:     TargetURL,
		Payload:       []byte(fmt.Sprintf(`{"event":"refund.completed","id":"%s"}`, id)),
		Status:        models.WebhookStatusPending,
		NextAttemptAt: nextAttemptAt,
		CreatedAt:     nextAttemptAt,
		UpdatedAt:     nextAttemptAt,
	}
}
