package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/paymentops/connecthub/internal/model"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	_, err = db.Exec(`
		CREATE TABLE connections (
			provider TEXT PRIMARY KEY,
			status TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	return db
}

func TestConnectionRepository_UpsertAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConnectionRepository(db)

	conn := &model.Connection{
		Provider:  "stripe",
		Status:    `{"connected":true,"accountId":"acct_1"}`,
		UpdatedAt: time.Now(),
	}

	err := repo.Upsert(conn)
	if err != nil {
		t.Fatalf("Failed to upsert connection: %v", err)
	}

	fetched, err := repo.ByProvider("stripe")
	if err != nil {
		t.Fatalf("Failed to get connection: %v", err)
	}

	if fetched.Status != conn.Status {
		t.Errorf("Expected status %s, got %s", conn.Status, fetched.Status)
	}
}

func TestConnectionRepository_UpsertOverwrites(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConnectionRepository(db)

	first := &model.Connection{Provider: "stripe", Status: `{"connected":true}`, UpdatedAt: time.Now()}
	second := &model.Connection{Provider: "stripe", Status: `{"connected":false}`, UpdatedAt: time.Now()}

	if err := repo.Upsert(first); err != nil {
		t.Fatalf("Failed to upsert first: %v", err)
	}
	if err := repo.Upsert(second); err != nil {
		t.Fatalf("Failed to upsert second: %v", err)
	}

	fetched, err := repo.ByProvider("stripe")
	if err != nil {
		t.Fatalf("Failed to get connection: %v", err)
	}

	if fetched.Status != second.Status {
		t.Errorf("Expected last write to win, got %s", fetched.Status)
	}
}

func TestConnectionRepository_MissingProvider(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConnectionRepository(db)

	_, err := repo.ByProvider("paypal")
	if !errors.Is(err, ErrConnectionNotFound) {
		t.Errorf("Expected ErrConnectionNotFound, got %v", err)
	}
}

func TestConnectionRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConnectionRepository(db)

	conn := &model.Connection{Provider: "stripe", Status: `{"connected":true}`, UpdatedAt: time.Now()}
	if err := repo.Upsert(conn); err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}

	if err := repo.Delete("stripe"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}

	_, err := repo.ByProvider("stripe")
	if !errors.Is(err, ErrConnectionNotFound) {
		t.Errorf("Expected ErrConnectionNotFound after delete, got %v", err)
	}

	// Deleting an absent row is not an error
	if err := repo.Delete("stripe"); err != nil {
		t.Errorf("Expected delete of missing row to succeed, got %v", err)
	}
}

func TestConnectionRepository_ProvidersDoNotCollide(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConnectionRepository(db)

	stripe := &model.Connection{Provider: "stripe", Status: `{"connected":true,"accountId":"acct_1"}`, UpdatedAt: time.Now()}
	paypal := &model.Connection{Provider: "paypal", Status: `{"connected":true,"accountId":"merchant_1"}`, UpdatedAt: time.Now()}

	if err := repo.Upsert(stripe); err != nil {
		t.Fatalf("Failed to upsert stripe: %v", err)
	}
	if err := repo.Upsert(paypal); err != nil {
		t.Fatalf("Failed to upsert paypal: %v", err)
	}

	if err := repo.Delete("stripe"); err != nil {
		t.Fatalf("Failed to delete stripe: %v", err)
	}

	fetched, err := repo.ByProvider("paypal")
	if err != nil {
		t.Fatalf("Expected paypal row to survive, got %v", err)
	}
	if fetched.Status != paypal.Status {
		t.Errorf("Expected paypal status untouched, got %s", fetched.Status)
	}
}
