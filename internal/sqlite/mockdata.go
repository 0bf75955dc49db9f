package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rpggio/mockdata/internal/domain/mockdata"
	"github.com/rpggio/mockdata/internal/repository"
)

// MockDataRepository implements mockdata.Repository for SQLite
type MockDataRepository struct {
	db *DB
}

// NewMockDataRepository creates a new MockDataRepository
func NewMockDataRepository(db *DB) *MockDataRepository {
	return &MockDataRepository{db: db}
}

const mockDataColumns = `
	id, project_id, name, type, enabled, path, description,
	delay, content_type, response, created_at
`

// Create inserts rec and sets its ID and CreatedAt
func (r *MockDataRepository) Create(ctx context.Context, rec *mockdata.Record) error {
	query := `
		INSERT INTO mock_data (
			project_id, name, type, enabled, path, description,
			delay, content_type, response, created_at, modified_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		rec.ProjectID,
		rec.Name,
		rec.Type,
		rec.Enabled,
		rec.Path,
		rec.Description,
		rec.Delay,
		rec.ContentType,
		rec.Response,
		now,
		now,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create mock data: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get mock data id: %w", err)
	}

	rec.ID = id
	rec.CreatedAt = now.Format(time.RFC3339)
	return nil
}

// Get retrieves a record by ID
func (r *MockDataRepository) Get(ctx context.Context, id int64) (*mockdata.Record, error) {
	query := `SELECT ` + mockDataColumns + ` FROM mock_data WHERE id = ?`

	rec, err := scanMockData(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mock data: %w", err)
	}

	return rec, nil
}

// Update writes the mutable fields of rec
func (r *MockDataRepository) Update(ctx context.Context, rec *mockdata.Record) error {
	query := `
		UPDATE mock_data
		SET name = ?, type = ?, enabled = ?, path = ?, description = ?,
			delay = ?, content_type = ?, response = ?, modified_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		rec.Name,
		rec.Type,
		rec.Enabled,
		rec.Path,
		rec.Description,
		rec.Delay,
		rec.ContentType,
		rec.Response,
		time.Now().UTC(),
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update mock data: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a record by ID
func (r *MockDataRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM mock_data WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete mock data: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ListByProject returns the records of a project in creation order
func (r *MockDataRepository) ListByProject(ctx context.Context, projectID string) ([]mockdata.Record, error) {
	query := `SELECT ` + mockDataColumns + ` FROM mock_data WHERE project_id = ? ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list mock data: %w", err)
	}
	defer rows.Close()

	recs := []mockdata.Record{}
	for rows.Next() {
		rec, err := scanMockData(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mock data: %w", err)
		}
		recs = append(recs, *rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mock data rows: %w", err)
	}

	return recs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMockData(row rowScanner) (*mockdata.Record, error) {
	var (
		rec       mockdata.Record
		createdAt time.Time
	)
	err := row.Scan(
		&rec.ID,
		&rec.ProjectID,
		&rec.Name,
		&rec.Type,
		&rec.Enabled,
		&rec.Path,
		&rec.Description,
		&rec.Delay,
		&rec.ContentType,
		&rec.Response,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	rec.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return &rec, nil
}
