package routes

import (
	"net/http"

	"github.com/paymentops/connecthub/internal/app"
	"github.com/paymentops/connecthub/internal/handler"
	"github.com/paymentops/connecthub/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	connection := handler.NewConnectionHandler(app.ConnectionService, app.WebhookService, app.CallbackReconciler)
	health := handler.NewHealthHandler(app.Cfg)

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /health", health.Health)

	// Connections (also the callback redirect target of the authorization flow)
	mux.HandleFunc("GET /app/connections/{provider}", connection.ConnectionPage)
	mux.HandleFunc("GET /app/connections/{provider}/connect", connection.Connect)
	mux.HandleFunc("POST /app/connections/{provider}/disconnect", connection.Disconnect)
	mux.HandleFunc("GET /app/connections/{provider}/events", connection.Events)

	// Webhooks
	mux.HandleFunc("POST /app/connections/{provider}/webhooks", connection.CreateWebhook)
	mux.HandleFunc("DELETE /app/connections/{provider}/webhooks/{id}", connection.DeleteWebhook)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.RequestLogging,
	)

	return handler
}
