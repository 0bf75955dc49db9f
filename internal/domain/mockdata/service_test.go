package mockdata_test

import (
	"context"
	"testing"

	"github.com/rpggio/mockdata/internal/domain/mockdata"
	"github.com/rpggio/mockdata/internal/domain/project"
	"github.com/rpggio/mockdata/internal/repository"
	"github.com/rpggio/mockdata/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validPayload() mockdata.Payload {
	return mockdata.Payload{
		Name:      "users",
		Type:      "GET",
		Enabled:   true,
		Path:      "/users",
		Delay:     10,
		Response:  `[]`,
		ProjectID: "p1",
	}
}

func TestMockDataService_Create(t *testing.T) {
	ctx := context.Background()

	records := &mocks.MockDataRepository{}
	projects := &mocks.ProjectRepository{}
	projects.On("Get", ctx, "p1").Return(&project.Project{ID: "p1"}, nil)
	records.On("Create", ctx, mock.AnythingOfType("*mockdata.Record")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*mockdata.Record).ID = 7
		}).
		Return(nil)

	svc := mockdata.NewService(records, projects, nil)
	rec, err := svc.Create(ctx, validPayload())
	require.NoError(t, err)
	require.Equal(t, int64(7), rec.ID)
	require.Equal(t, "get", rec.Type)
	require.Equal(t, "p1", rec.ProjectID)
	records.AssertExpectations(t)
}

func TestMockDataService_CreateRequiresProject(t *testing.T) {
	ctx := context.Background()

	records := &mocks.MockDataRepository{}
	projects := &mocks.ProjectRepository{}
	projects.On("Get", ctx, "p1").Return((*project.Project)(nil), repository.ErrNotFound)

	svc := mockdata.NewService(records, projects, nil)
	_, err := svc.Create(ctx, validPayload())
	require.ErrorIs(t, err, mockdata.ErrProjectNotFound)

	p := validPayload()
	p.ProjectID = ""
	_, err = svc.Create(ctx, p)
	require.ErrorIs(t, err, mockdata.ErrInvalidInput)
	records.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestValidatePayload(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*mockdata.Payload)
	}{
		{"missing name", func(p *mockdata.Payload) { p.Name = " " }},
		{"relative path", func(p *mockdata.Payload) { p.Path = "users" }},
		{"query in path", func(p *mockdata.Payload) { p.Path = "/users?id=1" }},
		{"unknown type", func(p *mockdata.Payload) { p.Type = "trace" }},
		{"negative delay", func(p *mockdata.Payload) { p.Delay = -1 }},
		{"delay too long", func(p *mockdata.Payload) { p.Delay = mockdata.MaxDelay + 1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPayload()
			tc.mutate(&p)
			require.ErrorIs(t, mockdata.ValidatePayload(p), mockdata.ErrInvalidInput)
		})
	}

	p := validPayload()
	p.Type = ""
	require.NoError(t, mockdata.ValidatePayload(p))
}

func TestMockDataService_UpdateKeepsProject(t *testing.T) {
	ctx := context.Background()

	records := &mocks.MockDataRepository{}
	projects := &mocks.ProjectRepository{}
	existing := &mockdata.Record{ID: 3, Name: "old", Path: "/old", Type: "all", ProjectID: "p1"}
	records.On("Get", ctx, int64(3)).Return(existing, nil)
	records.On("Update", ctx, mock.AnythingOfType("*mockdata.Record")).Return(nil)

	p := validPayload()
	p.ProjectID = "other"

	svc := mockdata.NewService(records, projects, nil)
	rec, err := svc.Update(ctx, 3, p)
	require.NoError(t, err)
	require.Equal(t, "p1", rec.ProjectID)
	require.Equal(t, "users", rec.Name)
	require.Equal(t, "/users", rec.Path)
}

func TestMockDataService_DeleteNotFound(t *testing.T) {
	ctx := context.Background()

	records := &mocks.MockDataRepository{}
	records.On("Delete", ctx, int64(9)).Return(repository.ErrNotFound)

	svc := mockdata.NewService(records, &mocks.ProjectRepository{}, nil)
	require.ErrorIs(t, svc.Delete(ctx, 9), mockdata.ErrRecordNotFound)
}

func TestMockDataService_Match(t *testing.T) {
	ctx := context.Background()

	records := &mocks.MockDataRepository{}
	projects := &mocks.ProjectRepository{}
	projects.On("Get", ctx, "p1").Return(&project.Project{ID: "p1"}, nil)
	records.On("ListByProject", ctx, "p1").Return([]mockdata.Record{
		{ID: 1, Path: "/users", Type: "post", Enabled: true},
		{ID: 2, Path: "/users", Type: "all", Enabled: false},
		{ID: 3, Path: "/users", Type: "all", Enabled: true},
	}, nil)

	svc := mockdata.NewService(records, projects, nil)

	rec, err := svc.Match(ctx, "p1", "POST", "/users")
	require.NoError(t, err)
	require.Equal(t, int64(1), rec.ID)

	rec, err = svc.Match(ctx, "p1", "GET", "/users")
	require.NoError(t, err)
	require.Equal(t, int64(3), rec.ID)

	_, err = svc.Match(ctx, "p1", "GET", "/orders")
	require.ErrorIs(t, err, mockdata.ErrNoMatch)
}

func TestDraftDefaults(t *testing.T) {
	d := mockdata.Draft("p1")
	require.Equal(t, mockdata.NewID, d.ID)
	require.Equal(t, "all", d.Type)
	require.True(t, d.Enabled)
	require.Equal(t, "p1", d.ProjectID)
	require.Empty(t, d.Name)
	require.Zero(t, d.Delay)
}
