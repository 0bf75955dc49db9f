package mocks

import (
	"context"

	"github.com/rpggio/mockdata/internal/domain/mockdata"
	"github.com/rpggio/mockdata/internal/domain/project"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.ProjectSummary, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.ProjectSummary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockDataRepository is a mock for mockdata.Repository.
type MockDataRepository struct {
	mock.Mock
}

func (m *MockDataRepository) Create(ctx context.Context, rec *mockdata.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockDataRepository) Get(ctx context.Context, id int64) (*mockdata.Record, error) {
	args := m.Called(ctx, id)
	if rec, ok := args.Get(0).(*mockdata.Record); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDataRepository) Update(ctx context.Context, rec *mockdata.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockDataRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDataRepository) ListByProject(ctx context.Context, projectID string) ([]mockdata.Record, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]mockdata.Record); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
