package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/companieshouse/payments.gateway.ch.gov.uk/models"
)

// Headers sent with every webhook delivery
const (
	HeaderWebhookID        = "X-Webhook-Id"
	HeaderWebhookAttempt   = "X-Webhook-Attempt"
	HeaderWebhookSignature = "X-Webhook-Signature"
)

// maxDrainBytes bounds how much of a response body is read so the connection
// can be reused
const maxDrainBytes = 64 << 10

// HTTPSender delivers webhook notifications as JSON POST requests. Receivers
// should deduplicate on the X-Webhook-Id header since a notification can be
// delivered more than once.
type HTTPSender struct {
	Client        *http.Client
	SigningSecret string
}

// NewHTTPSender returns an HTTPSender using its own client. An empty signing
// secret sends unsigned requests.
func NewHTTPSender(signingSecret string) *HTTPSender {
	return &HTTPSender{
		Client:        &http.Client{},
		SigningSecret: signingSecret,
	}
}

// Send posts the notification payload to its target url
func (s *HTTPSender) Send(ctx context.Context, notification models.WebhookNotification) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, notification.TargetURL, bytes.NewReader(notification.Payload))
	if err != nil {
		return 0, fmt.Errorf("error creating webhook request: [%v]", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderWebhookID, notification.ID)
	req.Header.Set(HeaderWebhookAttempt, strconv.Itoa(notification.AttemptCount+1))
	if s.SigningSecret != "" {
		req.Header.Set(HeaderWebhookSignature, Sign(s.SigningSecret, notification.Payload))
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("error sending webhook: [%v]", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp.StatusCode, fmt.Errorf("webhook target responded with status [%d]", resp.StatusCode)
	}

	return resp.StatusCode, nil
}

// Sign returns the signature header value for payload
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}
