package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// RefundStatus is the lifecycle status of a refund
type RefundStatus string

// Refund statuses, in lifecycle order
const (
	RefundStatusPending    RefundStatus = "PENDING"
	RefundStatusProcessing RefundStatus = "PROCESSING"
	RefundStatusCompleted  RefundStatus = "COMPLETED"
	RefundStatusFailed     RefundStatus = "FAILED"
	RefundStatusCancelled  RefundStatus = "CANCELLED"
)

// refundTransitions is the refund state graph. Statuses missing from the map
// are terminal.
var refundTransitions = map[RefundStatus][]RefundStatus{
	RefundStatusPending:    {RefundStatusProcessing},
	RefundStatusProcessing: {RefundStatusCompleted, RefundStatusFailed, RefundStatusCancelled},
}

// CanTransitionTo reports whether the state graph allows moving from status
// to next.
func (status RefundStatus) CanTransitionTo(next RefundStatus) bool {
	for _, allowed := range refundTransitions[status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (status RefundStatus) IsTerminal() bool {
	return len(refundTransitions[status]) == 0
}

// RefundReason is the reason a refund was requested
type RefundReason string

// Refund reasons
const (
	RefundReasonCustomerRequest  RefundReason = "CUSTOMER_REQUEST"
	RefundReasonMerchantRequest  RefundReason = "MERCHANT_REQUEST"
	RefundReasonDuplicatePayment RefundReason = "DUPLICATE_PAYMENT"
	RefundReasonFraud            RefundReason = "FRAUD"
	RefundReasonTechnicalError   RefundReason = "TECHNICAL_ERROR"
	RefundReasonOther            RefundReason = "OTHER"
)

// Refund is a refund against a payment
type Refund struct {
	RefundID        string       `validate:"required"`
	PaymentID       string       `validate:"required"`
	TransactionID   string
	MerchantID      string       `validate:"required"`
	CustomerID      string
	Amount          decimal.Decimal
	Currency        string       `validate:"len=3,alpha,uppercase"`
	Status          RefundStatus `validate:"oneof=PENDING PROCESSING COMPLETED FAILED CANCELLED"`
	Reason          RefundReason `validate:"oneof=CUSTOMER_REQUEST MERCHANT_REQUEST DUPLICATE_PAYMENT FRAUD TECHNICAL_ERROR OTHER"`
	GatewayResponse string
	GatewayRefundID string
	CreatedAt       time.Time `validate:"required"`
	UpdatedAt       time.Time
	Version         int64
}

// RefundDB is the refund as stored in the DB
type RefundDB struct {
	RefundID        string    `bson:"_id"`
	PaymentID       string    `bson:"payment_id"`
	TransactionID   string    `bson:"transaction_id,omitempty"`
	MerchantID      string    `bson:"merchant_id"`
	CustomerID      string    `bson:"customer_id,omitempty"`
	Amount          string    `bson:"amount"`
	Currency        string    `bson:"currency"`
	Status          string    `bson:"status"`
	Reason          string    `bson:"reason"`
	GatewayResponse string    `bson:"gateway_response,omitempty"`
	GatewayRefundID string    `bson:"gateway_refund_id,omitempty"`
	CreatedAt       time.Time `bson:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at"`
	Version         int64     `bson:"version"`
}

// Validate checks the refund holds a usable record: identifiers present, a
// positive amount, an ISO currency code and known status and reason values.
func (refund Refund) Validate() error {
	if !refund.Amount.IsPositive() {
		return errors.New("refund amount must be greater than zero")
	}
	if err := validate.Struct(refund); err != nil {
		return fmt.Errorf("invalid refund [%s]: [%v]", refund.RefundID, err)
	}
	return nil
}
