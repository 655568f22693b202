package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/paymentops/connecthub/internal/model"
)

var (
	ErrConnectionNotFound = errors.New("connection not found")
)

type ConnectionRepository interface {
	ByProvider(provider string) (*model.Connection, error)
	Upsert(conn *model.Connection) error
	Delete(provider string) error
}

type connectionRepository struct {
	db *sqlx.DB
}

func NewConnectionRepository(db *sqlx.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) ByProvider(provider string) (*model.Connection, error) {
	conn := &model.Connection{}
	query := `SELECT * FROM connections WHERE provider = $1`

	err := r.db.Get(conn, query, provider)
	if err == sql.ErrNoRows {
		return nil, ErrConnectionNotFound
	}
	if err != nil {
		return nil, err
	}

	return conn, nil
}

func (r *connectionRepository) Upsert(conn *model.Connection) error {
	query := `
		INSERT INTO connections (provider, status, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (provider) DO UPDATE
		SET status = excluded.status,
		    updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query, conn.Provider, conn.Status, conn.UpdatedAt)

	return err
}

func (r *connectionRepository) Delete(provider string) error {
	query := `DELETE FROM connections WHERE provider = $1`

	_, err := r.db.Exec(query, provider)

	return err
}
