package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/paymentops/connecthub/internal/model"
	"github.com/paymentops/connecthub/internal/repository"
)

// ConnectionService is the per-provider snapshot register. It holds no
// business rules: load, save whole, clear. A missing or corrupt persisted
// value reads as disconnected, never as an error.
type ConnectionService struct {
	repo repository.ConnectionRepository
}

func NewConnectionService(repo repository.ConnectionRepository) *ConnectionService {
	return &ConnectionService{repo: repo}
}

// Status returns the current snapshot for a provider. Any failure to load
// or decode the persisted value degrades to the disconnected default; a
// partially decoded object is never returned.
func (s *ConnectionService) Status(provider string) model.ConnectionStatus {
	conn, err := s.repo.ByProvider(provider)
	if err != nil {
		if !errors.Is(err, repository.ErrConnectionNotFound) {
			slog.Error("failed to load connection, defaulting to disconnected", "error", err, "provider", provider)
		}
		return model.ConnectionStatus{}
	}

	var status model.ConnectionStatus
	err = json.Unmarshal([]byte(conn.Status), &status)
	if err != nil {
		slog.Warn("corrupt connection status, defaulting to disconnected", "error", err, "provider", provider)
		return model.ConnectionStatus{}
	}

	return status
}

// Save overwrites the persisted snapshot for a provider. All merging
// happens in memory before this call; last writer wins.
func (s *ConnectionService) Save(provider string, status model.ConnectionStatus) error {
	value, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to encode connection status: %w", err)
	}

	err = s.repo.Upsert(&model.Connection{
		Provider:  provider,
		Status:    string(value),
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to save connection status: %w", err)
	}

	return nil
}

// Clear removes the persisted snapshot; subsequent loads return the
// disconnected default.
func (s *ConnectionService) Clear(provider string) error {
	err := s.repo.Delete(provider)
	if err != nil {
		return fmt.Errorf("failed to clear connection: %w", err)
	}

	return nil
}

// Apply merges a delta into the current snapshot and persists the result.
func (s *ConnectionService) Apply(provider string, delta model.StatusDelta) (model.ConnectionStatus, error) {
	next := model.Merge(s.Status(provider), delta)

	err := s.Save(provider, next)
	if err != nil {
		return model.ConnectionStatus{}, err
	}

	return next, nil
}
