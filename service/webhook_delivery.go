package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/dao"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/models"
	"golang.org/x/sync/errgroup"
)

// WebhookJobName is the name of the webhook retry job
const WebhookJobName = "webhook-retries"

// WebhookDeliveryEngine delivers pending webhook notifications and schedules
// retries of failed deliveries. Delivery is at-least-once.
type WebhookDeliveryEngine struct {
	DAO             dao.WebhookDAO
	Sender          WebhookSender
	Backoff         BackoffPolicy
	MaxAttempts     int
	DeliveryTimeout time.Duration
	Concurrency     int
}

// ProcessRetries attempts delivery of every PENDING notification due at now.
// Up to Concurrency notifications are delivered at once, each attempt bounded
// by DeliveryTimeout. Cancelling ctx stops new deliveries from starting while
// those in flight finish and are saved.
func (e *WebhookDeliveryEngine) ProcessRetries(ctx context.Context, now time.Time) models.ProcessingReport {
	report := models.ProcessingReport{Job: WebhookJobName, RanAt: now}

	notifications, err := e.DAO.FindWebhooksDueForRetry(ctx, now)
	if err != nil {
		log.Error(fmt.Errorf("error finding due webhooks: [%v]", err), log.Data{"now": now})
		report.AddFailure("", models.StageSelect, err)
		return report
	}
	report.Selected = len(notifications)

	var mtx sync.Mutex
	group := new(errgroup.Group)
	group.SetLimit(max(e.Concurrency, 1))

	for _, notification := range notifications {
		if ctx.Err() != nil {
			log.Info("webhook retry run stopped before the end of the batch", log.Data{"selected": report.Selected})
			break
		}

		group.Go(func() error {
			outcome, err := e.processNotification(ctx, now, notification)

			mtx.Lock()
			defer mtx.Unlock()
			if err != nil {
				log.Error(fmt.Errorf("error processing webhook: [%v]", err), log.Data{"webhook_id": notification.ID})
				report.AddFailure(notification.ID, models.StageSave, err)
				return nil
			}
			outcome.record(&report)
			return nil
		})
	}
	_ = group.Wait()

	log.Info("webhook retry run complete", log.Data{
		"selected":  report.Selected,
		"delivered": report.Succeeded,
		"retried":   report.Retried,
		"exhausted": report.Exhausted,
		"failed":    report.Failed,
	})

	return report
}

// processNotification makes one delivery attempt and saves the result. The
// only error returned is a failure to save.
func (e *WebhookDeliveryEngine) processNotification(ctx context.Context, now time.Time, notification models.WebhookNotification) (Outcome, error) {
	if notification.Status.IsTerminal() || notification.NextAttemptAt.After(now) {
		return Skipped, nil
	}

	statusCode, deliveryErr := e.deliver(ctx, notification)

	attempt := models.DeliveryAttempt{AttemptedAt: now, StatusCode: statusCode}
	notification.Attempts = append(notification.Attempts, attempt)
	notification.UpdatedAt = now

	var outcome Outcome
	if deliveryErr == nil {
		notification.Status = models.WebhookStatusDelivered
		outcome = Succeeded
	} else {
		notification.Attempts[len(notification.Attempts)-1].Error = deliveryErr.Error()
		notification.AttemptCount++
		notification.LastError = deliveryErr.Error()

		if notification.AttemptCount >= e.MaxAttempts {
			notification.Status = models.WebhookStatusExhausted
			outcome = Exhausted
		} else {
			notification.NextAttemptAt = now.Add(e.Backoff.Next(notification.AttemptCount))
			outcome = Retried
		}
	}

	if err := e.DAO.SaveWebhook(context.WithoutCancel(ctx), &notification); err != nil {
		if outcome == Succeeded {
			log.Error(fmt.Errorf("webhook delivered but not saved, it will be delivered again: [%v]", err), log.Data{"webhook_id": notification.ID})
		}
		return Failed, err
	}

	logData := log.Data{
		"webhook_id":    notification.ID,
		"outcome":       outcome.String(),
		"attempt_count": notification.AttemptCount,
		"status_code":   statusCode,
	}
	switch outcome {
	case Retried:
		logData["next_attempt_at"] = notification.NextAttemptAt
	case Exhausted:
		logData["last_error"] = notification.LastError
	}
	log.Info("webhook delivery attempted", logData)

	return outcome, nil
}

// deliver sends the notification within the delivery timeout. The timeout is
// applied to a context detached from ctx so a shutdown does not cut off an
// attempt already in progress.
func (e *WebhookDeliveryEngine) deliver(ctx context.Context, notification models.WebhookNotification) (int, error) {
	if err := notification.Validate(); err != nil {
		return 0, err
	}

	deliveryCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.DeliveryTimeout)
	defer cancel()

	statusCode, err := e.Sender.Send(deliveryCtx, notification)
	if err != nil && errors.Is(deliveryCtx.Err(), context.DeadlineExceeded) {
		return statusCode, fmt.Errorf("webhook delivery timed out after %s: [%v]", e.DeliveryTimeout, err)
	}
	return statusCode, err
}
