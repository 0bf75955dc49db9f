package mockdata

import (
	"context"

	"github.com/rpggio/mockdata/internal/domain/project"
)

// Repository provides persistence for mock data records.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id int64) (*Record, error)
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id int64) error
	ListByProject(ctx context.Context, projectID string) ([]Record, error)
}

// ProjectRepository is the subset of project persistence mock data needs.
type ProjectRepository interface {
	Get(ctx context.Context, id string) (*project.Project, error)
}
