package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rpggio/mockdata/internal/repository"
)

// ParamRepository is a key/value store for shareable UI parameters such as
// the selected project id.
type ParamRepository struct {
	db *DB
}

// NewParamRepository creates a new ParamRepository
func NewParamRepository(db *DB) *ParamRepository {
	return &ParamRepository{db: db}
}

// SetParam stores value under key, replacing any previous value
func (r *ParamRepository) SetParam(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO params (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to set param %s: %w", key, err)
	}
	return nil
}

// GetParam returns the value stored under key
func (r *ParamRepository) GetParam(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM params WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get param %s: %w", key, err)
	}
	return value, nil
}

// DeleteParam removes key. Deleting a missing key is not an error.
func (r *ParamRepository) DeleteParam(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM params WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete param %s: %w", key, err)
	}
	return nil
}
