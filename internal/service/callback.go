package service

import (
	"log/slog"
	"net/url"

	"github.com/paymentops/connecthub/internal/model"
)

// CallbackPayload is the one-shot result of a provider authorization flow,
// carried back in the redirect's query parameters. Never persisted.
type CallbackPayload struct {
	Status   string
	Source   string
	ClientID string
	Name     string
	Email    string
}

// ParseCallback extracts the callback parameters from a query string.
func ParseCallback(query url.Values) CallbackPayload {
	return CallbackPayload{
		Status:   query.Get("status"),
		Source:   query.Get("source"),
		ClientID: query.Get("client_id"),
		Name:     query.Get("name"),
		Email:    query.Get("email"),
	}
}

// Connected reports whether the payload signals a successful connection:
// status=connected with a recognized source. Anything else, including an
// absent status, is simply "not connected" - never an error.
func (p CallbackPayload) Connected() bool {
	return p.Status == "connected" && model.KnownProvider(p.Source)
}

// CallbackReconciler folds a successful authorization callback into the
// connection store for the provider it names.
type CallbackReconciler struct {
	connections *ConnectionService
}

func NewCallbackReconciler(connections *ConnectionService) *CallbackReconciler {
	return &CallbackReconciler{connections: connections}
}

// Reconcile commits a fresh connected snapshot when the query encodes a
// successful callback for the given provider, and reports whether it did.
// A callback for a different provider is silently ignored so the stored
// status of this provider is never clobbered by someone else's redirect.
// Reconciling a query without callback parameters is a no-op, which makes
// re-processing a scrubbed URL idempotent.
func (r *CallbackReconciler) Reconcile(provider string, query url.Values) (bool, error) {
	payload := ParseCallback(query)

	if !payload.Connected() || payload.Source != provider {
		return false, nil
	}

	status := model.ConnectionStatus{
		Connected: true,
		AccountID: payload.ClientID,
		Name:      payload.Name,
		Email:     payload.Email,
		Webhooks:  []model.WebhookRecord{},
	}

	err := r.connections.Save(provider, status)
	if err != nil {
		return false, err
	}

	slog.Info("provider connected", "provider", provider, "account_id", payload.ClientID)
	return true, nil
}
