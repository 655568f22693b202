package model

import (
	"time"
)

// Connection is the persisted row for one provider: the full connection
// snapshot serialized as JSON in Status, last-writer-wins.
type Connection struct {
	Provider  string    `db:"provider"`
	Status    string    `db:"status"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ConnectionStatus is the single source of truth the UI reads for one
// provider. Identity fields are only set after a successful callback;
// a disconnected status never carries webhook records.
type ConnectionStatus struct {
	Connected bool            `json:"connected"`
	AccountID string          `json:"accountId,omitempty"`
	Name      string          `json:"name,omitempty"`
	Email     string          `json:"email,omitempty"`
	Webhooks  []WebhookRecord `json:"webhooks,omitempty"`
}

// StatusDelta describes a partial update to a ConnectionStatus.
// Nil fields leave the previous value untouched.
type StatusDelta struct {
	Connected *bool
	AccountID *string
	Name      *string
	Email     *string
	Webhooks  *[]WebhookRecord
}

// Merge applies a delta to a snapshot and returns the new snapshot.
// A status merged to disconnected loses its identity fields and webhooks.
func Merge(prev ConnectionStatus, d StatusDelta) ConnectionStatus {
	next := prev

	if d.Connected != nil {
		next.Connected = *d.Connected
	}
	if d.AccountID != nil {
		next.AccountID = *d.AccountID
	}
	if d.Name != nil {
		next.Name = *d.Name
	}
	if d.Email != nil {
		next.Email = *d.Email
	}
	if d.Webhooks != nil {
		next.Webhooks = *d.Webhooks
	}

	if !next.Connected {
		next.AccountID = ""
		next.Name = ""
		next.Email = ""
		next.Webhooks = nil
	}

	return next
}
