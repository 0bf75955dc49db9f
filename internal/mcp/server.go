// Package mcp exposes the mock data store as MCP tools.
package mcp

import (
	"context"
	"io"
	"log/slog"
	"sync"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/mockdata/internal/domain/mockdata"
	"github.com/rpggio/mockdata/internal/domain/project"
	"github.com/rpggio/mockdata/internal/notify"
)

const serverInstructions = "Manage mock data records of a mock server project. " +
	"Call list_projects and select_project first; every other tool works on the selected project. " +
	"Records are served at the url shown by list_mock_data."

// Store is the mock data store the tools drive.
type Store interface {
	Project() *project.Project
	Records() []mockdata.Record
	SetProject(ctx context.Context, prj *project.Project)
	NewDraft() (mockdata.Record, error)
	Create(ctx context.Context, rec mockdata.Record) bool
	Edit(ctx context.Context, rec mockdata.Record) bool
	Delete(ctx context.Context, rec mockdata.Record) bool
	Refresh(ctx context.Context)
}

// ProjectAPI looks projects up on the backend.
type ProjectAPI interface {
	ListProjects(ctx context.Context) (mockdata.Envelope[[]project.ProjectSummary], error)
	GetProject(ctx context.Context, id string) (mockdata.Envelope[*project.Project], error)
}

// Config contains server configuration.
type Config struct {
	Store    Store
	Projects ProjectAPI
	// Notes must be the notifier (or part of it) the store reports to, so
	// tool results can carry the store's messages.
	Notes   *notify.Recorder
	Version string
	Logger  *slog.Logger
}

// Server holds the tool handlers.
type Server struct {
	store    Store
	projects ProjectAPI
	notes    *notify.Recorder
	logger   *slog.Logger

	// mu serializes store calls so each result only sees its own notes.
	mu sync.Mutex
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	notes := cfg.Notes
	if notes == nil {
		notes = &notify.Recorder{}
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "mockdata",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	s := &Server{
		store:    cfg.Store,
		projects: cfg.Projects,
		notes:    notes,
		logger:   logger,
	}
	s.registerTools(server)

	return server
}
