package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/paymentops/connecthub/internal/model"
	"github.com/paymentops/connecthub/internal/service"
)

type ConnectionHandler struct {
	connections *service.ConnectionService
	webhooks    *service.WebhookService
	reconciler  *service.CallbackReconciler
}

func NewConnectionHandler(connections *service.ConnectionService, webhooks *service.WebhookService, reconciler *service.CallbackReconciler) *ConnectionHandler {
	return &ConnectionHandler{
		connections: connections,
		webhooks:    webhooks,
		reconciler:  reconciler,
	}
}

// ConnectionPage serves the connection snapshot for a provider. This URL is
// also the redirect target of the authorization flow: when the query carries
// a successful callback the snapshot is committed first and the client is
// redirected to the bare path, so a reload cannot re-process the callback.
func (h *ConnectionHandler) ConnectionPage(w http.ResponseWriter, r *http.Request) {
	provider, ok := h.provider(w, r)
	if !ok {
		return
	}

	reconciled, err := h.reconciler.Reconcile(provider, r.URL.Query())
	if err != nil {
		slog.Error("failed to reconcile callback", "error", err, "provider", provider)
		writeError(w, http.StatusInternalServerError, "Failed to complete connection")
		return
	}

	if reconciled {
		http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
		return
	}

	writeJSON(w, http.StatusOK, h.connections.Status(provider))
}

// Connect sends the browser to the provider's authorization flow.
func (h *ConnectionHandler) Connect(w http.ResponseWriter, r *http.Request) {
	provider, ok := h.provider(w, r)
	if !ok {
		return
	}

	connectURL, err := h.webhooks.ConnectURL(provider)
	if err != nil {
		slog.Error("failed to build connect url", "error", err, "provider", provider)
		writeError(w, http.StatusInternalServerError, "Failed to start connection")
		return
	}

	slog.Info("redirecting to provider authorization", "provider", provider)
	http.Redirect(w, r, connectURL, http.StatusSeeOther)
}

func (h *ConnectionHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	provider, ok := h.provider(w, r)
	if !ok {
		return
	}

	err := h.webhooks.Disconnect(provider)
	if err != nil {
		slog.Error("failed to disconnect provider", "error", err, "provider", provider)
		writeError(w, http.StatusInternalServerError, "Failed to disconnect")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("%s disconnected successfully", provider),
	})
}

func (h *ConnectionHandler) CreateWebhook(w http.ResponseWriter, r *http.Request) {
	provider, ok := h.provider(w, r)
	if !ok {
		return
	}

	var body struct {
		Events []string `json:"events"`
	}
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(body.Events) == 0 {
		writeError(w, http.StatusBadRequest, "At least one event is required")
		return
	}

	result, err := h.webhooks.Create(r.Context(), provider, body.Events)
	if err != nil {
		slog.Error("failed to create webhook", "error", err, "provider", provider)
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"message": "Failed to create webhook. Please try again.",
		})
		return
	}

	if !result.Created {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"message": result.Message,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": result.Message,
		"webhook": result.Webhook,
	})
}

func (h *ConnectionHandler) DeleteWebhook(w http.ResponseWriter, r *http.Request) {
	provider, ok := h.provider(w, r)
	if !ok {
		return
	}

	webhookID := r.PathValue("id")

	deleted := h.webhooks.Delete(provider, webhookID)
	if !deleted {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"deleted": false,
			"message": "Failed to delete webhook",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"deleted": true,
		"message": "Webhook deleted successfully",
	})
}

// Events serves the catalog of selectable webhook events for a provider.
func (h *ConnectionHandler) Events(w http.ResponseWriter, r *http.Request) {
	provider, ok := h.provider(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"provider": provider,
		"events":   model.ProviderEvents(provider),
	})
}

func (h *ConnectionHandler) provider(w http.ResponseWriter, r *http.Request) (string, bool) {
	provider := r.PathValue("provider")
	if !model.KnownProvider(provider) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown provider: %s", provider))
		return "", false
	}
	return provider, true
}
