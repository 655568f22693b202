package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/paymentops/connecthub/internal/model"
	"github.com/paymentops/connecthub/internal/schema"
)

// WebhookService performs the remote webhook operations against the
// provider connection API and folds their results into the connection
// store. The store is only written after a confirmed create; a failed or
// rejected call leaves it untouched.
type WebhookService struct {
	connections *ConnectionService
	apiBaseURL  string
	httpClient  *http.Client
	now         func() time.Time
}

func NewWebhookService(connections *ConnectionService, apiBaseURL string, httpClient *http.Client) *WebhookService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &WebhookService{
		connections: connections,
		apiBaseURL:  apiBaseURL,
		httpClient:  httpClient,
		now:         time.Now,
	}
}

// ConnectURL builds the provider's authorization redirect target. The
// source parameter tells the provider which callback to issue; the store
// is not touched - success is only observable via the callback later.
func (s *WebhookService) ConnectURL(provider string) (string, error) {
	u, err := url.Parse(fmt.Sprintf("%s/api/%s/connection/connect", s.apiBaseURL, provider))
	if err != nil {
		return "", fmt.Errorf("failed to build connect url: %w", err)
	}

	q := u.Query()
	q.Set("source", provider)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Disconnect resets the provider to disconnected and drops the persisted
// snapshot. Local-only: no remote call is made.
func (s *WebhookService) Disconnect(provider string) error {
	err := s.connections.Clear(provider)
	if err != nil {
		return err
	}

	slog.Info("provider disconnected", "provider", provider)
	return nil
}

// CreateResult is the outcome of a create call. Created=false with a
// Message is a business rejection from the remote endpoint, not an error.
type CreateResult struct {
	Created bool
	Message string
	Webhook *model.WebhookRecord
}

type createRequest struct {
	Events   []string `json:"events"`
	Provider string   `json:"provider"`
}

type createResponse struct {
	WebhookInfo json.RawMessage `json:"webhookInfo"`
	Message     string          `json:"message"`
	Created     bool            `json:"created"`
}

// Create registers a webhook for the given events with the remote endpoint.
// On confirmation the normalized record is appended (status forced active)
// and the merged snapshot persisted. Transport and parse failures return an
// error with the store unchanged. Emptiness of events is the caller's
// concern; no validation happens here.
func (s *WebhookService) Create(ctx context.Context, provider string, events []string) (*CreateResult, error) {
	body, err := json.Marshal(createRequest{Events: events, Provider: provider})
	if err != nil {
		return nil, fmt.Errorf("failed to encode webhook request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/%s/connection/webhook", s.apiBaseURL, provider)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call webhook endpoint: %w", err)
	}
	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close response body", "error", closeErr)
		}
	}()

	var payload createResponse
	err = json.NewDecoder(resp.Body).Decode(&payload)
	if err != nil {
		return nil, fmt.Errorf("failed to parse webhook response: %w", err)
	}

	if !payload.Created {
		slog.Info("webhook creation rejected", "provider", provider, "message", payload.Message)
		return &CreateResult{Created: false, Message: payload.Message}, nil
	}

	result := &CreateResult{Created: true, Message: payload.Message}

	if len(payload.WebhookInfo) == 0 || string(payload.WebhookInfo) == "null" {
		return result, nil
	}

	record := schema.DecodeWebhook(payload.WebhookInfo).Normalize(s.now())
	record.Status = model.WebhookStatusActive

	current := s.connections.Status(provider)
	webhooks := append(append([]model.WebhookRecord{}, current.Webhooks...), record)

	_, err = s.connections.Apply(provider, model.StatusDelta{Webhooks: &webhooks})
	if err != nil {
		return nil, fmt.Errorf("failed to persist webhook: %w", err)
	}

	slog.Info("webhook created", "provider", provider, "webhook_id", record.ID, "events", len(record.Events))

	result.Webhook = &record
	return result, nil
}

// Delete forgets the webhook with the given ID. Purely local: the remote
// endpoint offers no delete operation, so only the stored record is
// removed. A missing ID is a successful no-op. Returns false only when
// persisting the filtered list fails.
func (s *WebhookService) Delete(provider, webhookID string) bool {
	current := s.connections.Status(provider)

	webhooks := make([]model.WebhookRecord, 0, len(current.Webhooks))
	for _, wh := range current.Webhooks {
		if wh.ID != webhookID {
			webhooks = append(webhooks, wh)
		}
	}

	_, err := s.connections.Apply(provider, model.StatusDelta{Webhooks: &webhooks})
	if err != nil {
		slog.Error("failed to delete webhook", "error", err, "provider", provider, "webhook_id", webhookID)
		return false
	}

	slog.Info("webhook deleted", "provider", provider, "webhook_id", webhookID)
	return true
}
