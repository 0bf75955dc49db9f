package mockdata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rpggio/mockdata/internal/repository"
)

// Service handles mock data business logic on the backend side.
type Service struct {
	records  Repository
	projects ProjectRepository
	logger   *slog.Logger
}

// NewService creates a new mock data service.
func NewService(records Repository, projects ProjectRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		records:  records,
		projects: projects,
		logger:   logger,
	}
}

// Create validates and stores a new record for p.ProjectID.
func (s *Service) Create(ctx context.Context, p Payload) (*Record, error) {
	if strings.TrimSpace(p.ProjectID) == "" {
		return nil, fmt.Errorf("%w: projectId is required", ErrInvalidInput)
	}
	if err := ValidatePayload(p); err != nil {
		return nil, err
	}
	if err := s.ensureProject(ctx, p.ProjectID); err != nil {
		return nil, err
	}

	rec := &Record{
		Name:        p.Name,
		Type:        NormalizeType(p.Type),
		Enabled:     p.Enabled,
		Path:        p.Path,
		Description: p.Description,
		Delay:       p.Delay,
		ContentType: p.ContentType,
		Response:    p.Response,
		ProjectID:   p.ProjectID,
	}
	if err := s.records.Create(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("creating mock data: %w", err)
	}

	s.logger.Info("mock data created", "id", rec.ID, "project_id", rec.ProjectID, "path", rec.Path)
	return rec, nil
}

// Update replaces the writable fields of record id. The owning project
// never changes.
func (s *Service) Update(ctx context.Context, id int64, p Payload) (*Record, error) {
	if err := ValidatePayload(p); err != nil {
		return nil, err
	}

	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rec.Name = p.Name
	rec.Type = NormalizeType(p.Type)
	rec.Enabled = p.Enabled
	rec.Path = p.Path
	rec.Description = p.Description
	rec.Delay = p.Delay
	rec.ContentType = p.ContentType
	rec.Response = p.Response

	if err := s.records.Update(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("updating mock data: %w", err)
	}

	s.logger.Info("mock data updated", "id", rec.ID, "project_id", rec.ProjectID)
	return rec, nil
}

// Delete removes record id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.records.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("deleting mock data: %w", err)
	}
	s.logger.Info("mock data deleted", "id", id)
	return nil
}

// Get fetches a record by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Record, error) {
	rec, err := s.records.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("getting mock data: %w", err)
	}
	return rec, nil
}

// List returns all records of a project.
func (s *Service) List(ctx context.Context, projectID string) ([]Record, error) {
	if err := s.ensureProject(ctx, projectID); err != nil {
		return nil, err
	}
	recs, err := s.records.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing mock data: %w", err)
	}
	return recs, nil
}

// Match finds the enabled record of projectID serving method on path, where
// path is relative to the project's path prefix.
func (s *Service) Match(ctx context.Context, projectID, method, path string) (*Record, error) {
	recs, err := s.List(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for i := range recs {
		rec := recs[i]
		if !rec.Enabled || rec.Path != path {
			continue
		}
		if MatchesMethod(rec.Type, method) {
			return &rec, nil
		}
	}
	return nil, ErrNoMatch
}

func (s *Service) ensureProject(ctx context.Context, projectID string) error {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("getting project: %w", err)
	}
	return nil
}
