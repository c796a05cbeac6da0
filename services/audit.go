package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hr_payroll/utils"

	"go.uber.org/zap"
)

// AuditEvent is emitted for every manager decision on a leave request.
type AuditEvent struct {
	Action         string    `json:"action"`
	LeaveRequestID string    `json:"leave_request_id"`
	PersonID       uint      `json:"person_id"`
	ManagerID      uint      `json:"manager_id"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes,omitempty"`
	At             time.Time `json:"at"`
}

type AuditSinkInterface interface {
	Record(ctx context.Context, event AuditEvent) error
}

// NewAuditSink returns the webhook sink when an endpoint is configured and
// the log sink otherwise.
func NewAuditSink(webhookURL string) AuditSinkInterface {
	if webhookURL == "" {
		return &LogAuditSink{}
	}
	return NewWebhookAuditSink(webhookURL)
}

// LogAuditSink writes events to the application log.
type LogAuditSink struct{}

func (s *LogAuditSink) Record(_ context.Context, event AuditEvent) error {
	utils.Logger.Info("Leave decision recorded",
		zap.String("action", event.Action),
		zap.String("leave_request_id", event.LeaveRequestID),
		zap.Uint("person_id", event.PersonID),
		zap.Uint("manager_id", event.ManagerID),
		zap.String("status", event.Status),
		zap.Time("at", event.At),
	)
	return nil
}

// WebhookAuditSink posts events as JSON to an external audit endpoint.
type WebhookAuditSink struct {
	client   *http.Client
	endpoint string
	timeout  time.Duration
}

func NewWebhookAuditSink(endpoint string) *WebhookAuditSink {
	return &WebhookAuditSink{
		client:   &http.Client{},
		endpoint: endpoint,
		timeout:  10 * time.Second,
	}
}

func (s *WebhookAuditSink) Record(ctx context.Context, event AuditEvent) error {
	payload := map[string]interface{}{
		"method": "record_leave_decision",
		"args":   event,
	}
	return s.post(ctx, payload)
}

func (s *WebhookAuditSink) post(ctx context.Context, payload map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("audit webhook failed with status: %d", resp.StatusCode)
	}

	return nil
}
