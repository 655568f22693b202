package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/paymentops/connecthub/internal/config"
	"github.com/paymentops/connecthub/internal/db"
	"github.com/paymentops/connecthub/internal/repository"
	"github.com/paymentops/connecthub/internal/service"
)

type App struct {
	Cfg                *config.Config
	DB                 *sqlx.DB
	ConnectionService  *service.ConnectionService
	CallbackReconciler *service.CallbackReconciler
	WebhookService     *service.WebhookService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	connectionRepository := repository.NewConnectionRepository(database)

	// Services
	connectionService := service.NewConnectionService(connectionRepository)
	callbackReconciler := service.NewCallbackReconciler(connectionService)
	webhookService := service.NewWebhookService(connectionService, cfg.ProviderAPIURL, &http.Client{
		Timeout: cfg.HTTPTimeout,
	})

	return &App{
		Cfg:                cfg,
		DB:                 database,
		ConnectionService:  connectionService,
		CallbackReconciler: callbackReconciler,
		WebhookService:     webhookService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
