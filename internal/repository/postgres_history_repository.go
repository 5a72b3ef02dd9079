package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/checklist-epi-api/internal/models"
)

// PostgresHistoryRepository persists history rows in checklist_history.
type PostgresHistoryRepository struct {
	db *sqlx.DB
}

// NewPostgresHistoryRepository constructs the repository.
func NewPostgresHistoryRepository(db *sqlx.DB) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{db: db}
}

// EnsureSchema creates the history table when missing.
func (r *PostgresHistoryRepository) EnsureSchema(ctx context.Context) error {
	const query = `CREATE TABLE IF NOT EXISTS checklist_history (
    key TEXT PRIMARY KEY,
    payload JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure checklist_history: %w", err)
	}
	return nil
}

// Read fetches the payload stored under key.
func (r *PostgresHistoryRepository) Read(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT key, payload, updated_at FROM checklist_history WHERE key = $1`
	var record models.HistoryRecord
	if err := r.db.GetContext(ctx, &record, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHistoryNotFound
		}
		return nil, fmt.Errorf("get checklist history: %w", err)
	}
	return []byte(record.Payload), nil
}

// Write inserts or replaces the payload stored under key.
func (r *PostgresHistoryRepository) Write(ctx context.Context, key string, payload []byte) error {
	const query = `INSERT INTO checklist_history (key, payload, updated_at)
VALUES (:key, :payload, :updated_at)
ON CONFLICT (key)
DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
	record := models.HistoryRecord{Key: key, Payload: string(payload), UpdatedAt: time.Now().UTC()}
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("upsert checklist history: %w", err)
	}
	return nil
}
