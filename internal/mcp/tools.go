package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/mockdata/internal/domain/mockdata"
	"github.com/rpggio/mockdata/internal/domain/project"
	"github.com/rpggio/mockdata/internal/notify"
	"github.com/rpggio/mockdata/internal/store"
)

// ProjectView is a project as reported by tools.
type ProjectView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description"`
	RecordCount int    `json:"recordCount,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

// EmptyInput is the input of tools without parameters.
type EmptyInput struct{}

type ListProjectsOutput struct {
	Success  bool          `json:"success"`
	Projects []ProjectView `json:"projects"`
	Message  string        `json:"message"`
}

type SelectProjectInput struct {
	ID    string `json:"id,omitempty" jsonschema:"Project id to select"`
	Clear bool   `json:"clear,omitempty" jsonschema:"Clear the selection instead of selecting a project"`
}

type ProjectOutput struct {
	Success bool         `json:"success"`
	Project *ProjectView `json:"project,omitempty"`
	Count   int          `json:"count"`
	Message string       `json:"message"`
}

type ListMockDataInput struct {
	Refresh bool `json:"refresh,omitempty" jsonschema:"Reload the list from the backend before returning it"`
}

type ListMockDataOutput struct {
	Success bool              `json:"success"`
	Records []mockdata.Record `json:"records"`
	Count   int               `json:"count"`
	Message string            `json:"message"`
}

type DraftOutput struct {
	Success bool             `json:"success"`
	Draft   *mockdata.Record `json:"draft,omitempty"`
	Message string           `json:"message"`
}

// MockDataInput holds the writable fields of a record.
type MockDataInput struct {
	Name        string `json:"name" jsonschema:"Display name"`
	Type        string `json:"type,omitempty" jsonschema:"HTTP method the mock answers (all, get, post, put, patch, delete, head, options). Defaults to all"`
	Enabled     *bool  `json:"enabled,omitempty" jsonschema:"Whether the mock is served. Defaults to true"`
	Path        string `json:"path" jsonschema:"Request path below the project path, starting with /"`
	Description string `json:"description,omitempty" jsonschema:"Free text description"`
	Delay       int64  `json:"delay,omitempty" jsonschema:"Response delay in milliseconds"`
	ContentType string `json:"contentType,omitempty" jsonschema:"Response content type. Defaults to application/json"`
	Response    string `json:"response,omitempty" jsonschema:"Response body"`
}

// EditMockDataInput changes only the fields that are present.
type EditMockDataInput struct {
	ID          int64   `json:"id" jsonschema:"Id of the record to edit"`
	Name        *string `json:"name,omitempty" jsonschema:"Display name"`
	Type        *string `json:"type,omitempty" jsonschema:"HTTP method the mock answers, or all"`
	Enabled     *bool   `json:"enabled,omitempty" jsonschema:"Whether the mock is served"`
	Path        *string `json:"path,omitempty" jsonschema:"Request path below the project path, starting with /"`
	Description *string `json:"description,omitempty" jsonschema:"Free text description"`
	Delay       *int64  `json:"delay,omitempty" jsonschema:"Response delay in milliseconds"`
	ContentType *string `json:"contentType,omitempty" jsonschema:"Response content type"`
	Response    *string `json:"response,omitempty" jsonschema:"Response body"`
}

func (in EditMockDataInput) apply(rec *mockdata.Record) {
	setIf(&rec.Name, in.Name)
	setIf(&rec.Type, in.Type)
	setIf(&rec.Enabled, in.Enabled)
	setIf(&rec.Path, in.Path)
	setIf(&rec.Description, in.Description)
	setIf(&rec.Delay, in.Delay)
	setIf(&rec.ContentType, in.ContentType)
	setIf(&rec.Response, in.Response)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

type DeleteMockDataInput struct {
	ID int64 `json:"id" jsonschema:"Id of the record to delete"`
}

// WriteOutput mirrors the store's result of a write.
type WriteOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) registerTools(server *sdkmcp.Server) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List the projects known to the backend",
	}, s.handleListProjects)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "select_project",
		Description: "Select the project whose mock data the other tools work on, or clear the selection",
	}, s.handleSelectProject)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "current_project",
		Description: "Show the selected project",
	}, s.handleCurrentProject)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_mock_data",
		Description: "List the mock data records of the selected project with their preview urls",
	}, s.handleListMockData)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "new_mock_data_draft",
		Description: "Return a blank record for the selected project with default values filled in",
	}, s.handleNewDraft)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_mock_data",
		Description: "Create a mock data record in the selected project",
	}, s.handleCreate)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "edit_mock_data",
		Description: "Replace the fields of an existing mock data record",
	}, s.handleEdit)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_mock_data",
		Description: "Delete a mock data record",
	}, s.handleDelete)
}

func (s *Server) handleListProjects(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, ListProjectsOutput, error) {
	env, err := s.projects.ListProjects(ctx)
	if err == nil {
		err = env.Err()
	}
	if err != nil {
		s.logger.Error("failed to list projects", "error", err)
		return nil, ListProjectsOutput{Projects: []ProjectView{}, Message: errorMessage(err)}, nil
	}

	views := make([]ProjectView, 0, len(env.Data))
	for _, summary := range env.Data {
		views = append(views, ProjectView{
			ID:          summary.ID,
			Name:        summary.Name,
			Path:        summary.Path,
			Description: summary.Description,
			RecordCount: summary.RecordCount,
			CreatedAt:   formatTime(summary.CreatedAt),
		})
	}
	return nil, ListProjectsOutput{Success: true, Projects: views}, nil
}

func (s *Server) handleSelectProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in SelectProjectInput) (*sdkmcp.CallToolResult, ProjectOutput, error) {
	id := strings.TrimSpace(in.ID)
	if !in.Clear && id == "" {
		return nil, ProjectOutput{Message: "either id or clear is required"}, nil
	}

	if in.Clear {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.notes.Drain()
		s.store.SetProject(ctx, nil)
		return nil, ProjectOutput{Success: true, Message: "selection cleared"}, nil
	}

	env, err := s.projects.GetProject(ctx, id)
	if err == nil {
		err = env.Err()
	}
	if err != nil {
		s.logger.Warn("failed to fetch project", "project_id", id, "error", err)
		return nil, ProjectOutput{Message: errorMessage(err)}, nil
	}
	if env.Data == nil {
		return nil, ProjectOutput{Message: "project not found"}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes.Drain()
	s.store.SetProject(ctx, env.Data)

	out := ProjectOutput{
		Success: true,
		Project: projectView(env.Data),
		Count:   len(s.store.Records()),
	}
	if failed, msg := firstFailure(s.notes.Drain()); failed {
		out.Message = msg
	}
	return nil, out, nil
}

func (s *Server) handleCurrentProject(_ context.Context, _ *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, ProjectOutput, error) {
	prj := s.store.Project()
	if prj == nil {
		return nil, ProjectOutput{Success: true, Message: "no project selected"}, nil
	}
	return nil, ProjectOutput{
		Success: true,
		Project: projectView(prj),
		Count:   len(s.store.Records()),
	}, nil
}

func (s *Server) handleListMockData(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListMockDataInput) (*sdkmcp.CallToolResult, ListMockDataOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store.Project() == nil {
		return nil, ListMockDataOutput{Records: []mockdata.Record{}, Message: errorMessage(store.ErrNoProject)}, nil
	}

	out := ListMockDataOutput{Success: true}
	if in.Refresh {
		s.notes.Drain()
		s.store.Refresh(ctx)
		if failed, msg := firstFailure(s.notes.Drain()); failed {
			out.Success = false
			out.Message = msg
		}
	}

	out.Records = s.store.Records()
	if out.Records == nil {
		out.Records = []mockdata.Record{}
	}
	out.Count = len(out.Records)
	return nil, out, nil
}

func (s *Server) handleNewDraft(_ context.Context, _ *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, DraftOutput, error) {
	draft, err := s.store.NewDraft()
	if err != nil {
		return nil, DraftOutput{Message: errorMessage(err)}, nil
	}
	return nil, DraftOutput{Success: true, Draft: &draft}, nil
}

func (s *Server) handleCreate(ctx context.Context, _ *sdkmcp.CallToolRequest, in MockDataInput) (*sdkmcp.CallToolResult, WriteOutput, error) {
	rec, err := s.store.NewDraft()
	if err != nil {
		return nil, WriteOutput{Message: errorMessage(err)}, nil
	}
	in.apply(&rec)

	return nil, s.write(func() bool { return s.store.Create(ctx, rec) }), nil
}

func (s *Server) handleEdit(ctx context.Context, _ *sdkmcp.CallToolRequest, in EditMockDataInput) (*sdkmcp.CallToolResult, WriteOutput, error) {
	if s.store.Project() == nil {
		return nil, WriteOutput{Message: errorMessage(store.ErrNoProject)}, nil
	}
	rec, ok := findRecord(s.store.Records(), in.ID)
	if !ok {
		return nil, WriteOutput{Message: fmt.Sprintf("mock data %d not found in the selected project, call list_mock_data with refresh", in.ID)}, nil
	}
	in.apply(&rec)

	return nil, s.write(func() bool { return s.store.Edit(ctx, rec) }), nil
}

func (s *Server) handleDelete(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeleteMockDataInput) (*sdkmcp.CallToolResult, WriteOutput, error) {
	rec := mockdata.Record{ID: in.ID}
	return nil, s.write(func() bool { return s.store.Delete(ctx, rec) }), nil
}

// write runs a store write and reports its first notification, which is
// the write's own outcome; later ones come from the refresh.
func (s *Server) write(fn func() bool) WriteOutput {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes.Drain()
	ok := fn()
	out := WriteOutput{Success: ok}
	if notes := s.notes.Drain(); len(notes) > 0 {
		out.Message = notes[0].Text
		for _, n := range notes[1:] {
			if !n.Success {
				out.Message += "; " + n.Text
			}
		}
	}
	return out
}

func (in MockDataInput) apply(rec *mockdata.Record) {
	rec.Name = in.Name
	if in.Type != "" {
		rec.Type = in.Type
	}
	if in.Enabled != nil {
		rec.Enabled = *in.Enabled
	}
	rec.Path = in.Path
	rec.Description = in.Description
	rec.Delay = in.Delay
	if in.ContentType != "" {
		rec.ContentType = in.ContentType
	}
	rec.Response = in.Response
}

func findRecord(records []mockdata.Record, id int64) (mockdata.Record, bool) {
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return mockdata.Record{}, false
}

func firstFailure(notes []notify.Message) (failed bool, msg string) {
	for _, n := range notes {
		if !n.Success {
			return true, n.Text
		}
	}
	return false, ""
}

func projectView(prj *project.Project) *ProjectView {
	return &ProjectView{
		ID:          prj.ID,
		Name:        prj.Name,
		Path:        prj.Path,
		Description: prj.Description,
		CreatedAt:   formatTime(prj.CreatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
