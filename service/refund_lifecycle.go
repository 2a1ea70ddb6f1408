package service

import (
	"context"
	"fmt"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/dao"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/models"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/transformers"
)

// RefundJobName is the name of the refund lifecycle job
const RefundJobName = "refund-lifecycle"

// RefundLifecycleManager settles refunds that have been in flight for longer
// than AgeThreshold
type RefundLifecycleManager struct {
	DAO          dao.RefundDAO
	Settlement   SettlementDecider
	Publisher    RefundEventPublisher
	AgeThreshold time.Duration
	Transformer  transformers.RefundTransformer
}

// NewRefundLifecycleManager returns a manager using the confirming settlement.
// publisher may be nil, in which case no events are produced.
func NewRefundLifecycleManager(refundDAO dao.RefundDAO, publisher RefundEventPublisher, ageThreshold time.Duration) *RefundLifecycleManager {
	return &RefundLifecycleManager{
		DAO:          refundDAO,
		Settlement:   ConfirmingSettlement{},
		Publisher:    publisher,
		AgeThreshold: ageThreshold,
	}
}

// ProcessDueRefunds settles every PROCESSING refund created at or before
// now - AgeThreshold. A failure on one refund is reported and does not stop
// the rest of the batch. Cancelling ctx stops the batch between refunds.
func (m *RefundLifecycleManager) ProcessDueRefunds(ctx context.Context, now time.Time) models.ProcessingReport {
	report := models.ProcessingReport{Job: RefundJobName, RanAt: now}
	cutoff := now.Add(-m.AgeThreshold)

	refunds, err := m.DAO.FindRefundsByStatusAndCutoff(ctx, models.RefundStatusProcessing, cutoff)
	if err != nil {
		log.Error(fmt.Errorf("error finding due refunds: [%v]", err), log.Data{"cutoff": cutoff})
		report.AddFailure("", models.StageSelect, err)
		return report
	}
	report.Selected = len(refunds)

	for _, record := range refunds {
		if ctx.Err() != nil {
			log.Info("refund lifecycle run stopped before the end of the batch", log.Data{"selected": report.Selected})
			break
		}

		outcome, stage, err := m.processRefund(ctx, now, record)
		if err != nil {
			log.Error(fmt.Errorf("error processing refund: [%v]", err), log.Data{"refund_id": record.RefundID, "stage": stage})
			report.AddFailure(record.RefundID, stage, err)
			continue
		}
		outcome.record(&report)
	}

	log.Info("refund lifecycle run complete", log.Data{
		"selected":  report.Selected,
		"succeeded": report.Succeeded,
		"retried":   report.Retried,
		"failed":    report.Failed,
	})

	return report
}

// processRefund settles a single refund record. The save is a single versioned
// write and runs to completion even if ctx is cancelled meanwhile.
func (m *RefundLifecycleManager) processRefund(ctx context.Context, now time.Time, record models.RefundDB) (Outcome, string, error) {
	refund, err := m.Transformer.TransformToResource(record)
	if err != nil {
		return Failed, models.StageValidate, err
	}
	if err = refund.Validate(); err != nil {
		return Failed, models.StageValidate, err
	}
	if refund.Status != models.RefundStatusProcessing {
		return Skipped, "", nil
	}

	decision, err := m.Settlement.Decide(ctx, refund)
	if err != nil {
		return Failed, models.StageSettle, fmt.Errorf("error deciding settlement: [%v]", err)
	}
	if decision.Status == models.RefundStatusProcessing {
		log.Debug("refund not settled yet", log.Data{"refund_id": refund.RefundID})
		return Retried, "", nil
	}
	if !refund.Status.CanTransitionTo(decision.Status) {
		return Failed, models.StageSettle, fmt.Errorf("settlement status [%s] is not reachable from [%s]", decision.Status, refund.Status)
	}

	refund.Status = decision.Status
	refund.GatewayResponse = decision.GatewayResponse
	if decision.GatewayRefundID != "" {
		refund.GatewayRefundID = decision.GatewayRefundID
	}
	refund.UpdatedAt = now

	updated := m.Transformer.TransformToDB(refund)
	if err = m.DAO.SaveRefund(context.WithoutCancel(ctx), &updated); err != nil {
		return Failed, models.StageSave, err
	}

	log.Info("refund settled", log.Data{"refund_id": refund.RefundID, "payment_id": refund.PaymentID, "status": refund.Status})

	if m.Publisher != nil {
		if err = m.Publisher.PublishRefundProcessed(refund); err != nil {
			log.Error(fmt.Errorf("error publishing refund processed message: [%v]", err), log.Data{"refund_id": refund.RefundID})
		}
	}

	return Succeeded, "", nil
}
