package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/mockdata/internal/domain/mockdata"
	"github.com/rpggio/mockdata/internal/domain/project"
	"github.com/rpggio/mockdata/internal/repository"
	"github.com/stretchr/testify/require"
)

func createTestProject(t *testing.T, repo *ProjectRepository, id string) *project.Project {
	t.Helper()

	proj := &project.Project{
		ID:          id,
		Name:        "Project " + id,
		Path:        "/" + id,
		Description: "A test project",
		CreatedAt:   time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), proj))
	return proj
}

func TestProjectRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := createTestProject(t, repo, "p1")

	retrieved, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, proj.ID, retrieved.ID)
	require.Equal(t, proj.Name, retrieved.Name)
	require.Equal(t, "/p1", retrieved.Path)
	require.Equal(t, proj.Description, retrieved.Description)
	require.WithinDuration(t, proj.CreatedAt, retrieved.CreatedAt, time.Second)

	_, err = repo.Get(ctx, "nonexistent")
	require.Equal(t, repository.ErrNotFound, err)
}

func TestProjectRepository_CreateDuplicate(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)

	createTestProject(t, repo, "p1")

	err := repo.Create(context.Background(), &project.Project{ID: "p1", Name: "again", CreatedAt: time.Now()})
	require.ErrorIs(t, err, repository.ErrConflict)
}

func TestProjectRepository_ListCountsRecords(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	records := NewMockDataRepository(db)
	ctx := context.Background()

	createTestProject(t, repo, "p1")
	createTestProject(t, repo, "p2")

	for _, path := range []string{"/a", "/b"} {
		require.NoError(t, records.Create(ctx, &mockdata.Record{
			ProjectID: "p1", Name: path, Type: "all", Enabled: true, Path: path,
		}))
	}

	summaries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	counts := map[string]int{}
	for _, s := range summaries {
		counts[s.ID] = s.RecordCount
	}
	require.Equal(t, 2, counts["p1"])
	require.Equal(t, 0, counts["p2"])
}
