package testserver

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rpggio/mockdata/internal/domain/mockdata"
	"github.com/rpggio/mockdata/internal/domain/project"
	"github.com/rpggio/mockdata/internal/sqlite"
	"github.com/rpggio/mockdata/internal/transport"
	"github.com/stretchr/testify/require"
)

// TestServer is a backend running on an in-memory database.
type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Token    string
	Projects *project.Service
	MockData *mockdata.Service
}

// New starts a backend. An empty token disables auth.
func New(t *testing.T, token string) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	projectRepo := sqlite.NewProjectRepository(db)
	mockDataRepo := sqlite.NewMockDataRepository(db)

	projectSvc := project.NewService(projectRepo, nil)
	mockDataSvc := mockdata.NewService(mockDataRepo, projectRepo, nil)

	server := httptest.NewServer(transport.NewServer(transport.Config{
		Projects: projectSvc,
		MockData: mockDataSvc,
		Token:    token,
	}))

	ts := &TestServer{
		Server:   server,
		DB:       db,
		Token:    token,
		Projects: projectSvc,
		MockData: mockDataSvc,
	}

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

// URL returns the server's base URL.
func (ts *TestServer) URL() string {
	return ts.Server.URL
}
