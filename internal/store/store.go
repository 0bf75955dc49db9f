// Package store holds the client-side state of the mock data screen: the
// selected project and the mock data records that belong to it.
package store

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rpggio/mockdata/internal/domain/mockdata"
	"github.com/rpggio/mockdata/internal/domain/project"
)

// ParamProjectID is the shareable parameter holding the selected project id.
const ParamProjectID = "prjId"

// User-facing notification messages.
const (
	MsgNoProject     = "No project selected"
	MsgListFailed    = "Failed to load mock data list"
	MsgCreateSuccess = "Mock data created"
	MsgCreateFailed  = "Failed to create mock data"
	MsgEditSuccess   = "Mock data updated"
	MsgEditFailed    = "Failed to update mock data"
	MsgDeleteSuccess = "Mock data deleted"
	MsgDeleteFailed  = "Failed to delete mock data"
)

// Options configures a Store.
type Options struct {
	API      API
	Notifier Notifier
	// Params may be nil, in which case the selection is not persisted.
	Params ParamStore
	// PreviewBaseURL prefixes every record's preview URL.
	PreviewBaseURL string
	// Location is used to display createdAt. Defaults to time.Local.
	Location *time.Location
	Logger   *slog.Logger
}

// Store owns the selected project and its mock data list. The list is only
// ever replaced wholesale, never patched. It is safe for concurrent use;
// when refreshes overlap the one started last wins.
type Store struct {
	api      API
	notifier Notifier
	params   ParamStore
	baseURL  string
	loc      *time.Location
	logger   *slog.Logger

	mu      sync.Mutex
	project *project.Project
	records []mockdata.Record
	// gen increases on every project change and refresh start, so a
	// refresh only applies its result if nothing newer began meanwhile.
	gen uint64
	// loaded reports whether the latest refresh of the selected project succeeded.
	loaded bool
}

// New creates a store with no project selected and an empty list.
func New(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = discardNotifier{}
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &Store{
		api:      opts.API,
		notifier: notifier,
		params:   opts.Params,
		baseURL:  strings.TrimRight(opts.PreviewBaseURL, "/"),
		loc:      loc,
		logger:   logger,
		records:  []mockdata.Record{},
	}
}

// Project returns a copy of the selected project, or nil.
func (s *Store) Project() *project.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil {
		return nil
	}
	prj := *s.project
	return &prj
}

// Records returns a copy of the current list.
func (s *Store) Records() []mockdata.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]mockdata.Record, len(s.records))
	copy(out, s.records)
	return out
}

// LastRefreshOK reports whether the list of the selected project was
// fetched successfully by the most recent refresh.
func (s *Store) LastRefreshOK() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project != nil && s.loaded
}

// SetProject replaces the selection and clears the list. A non-nil project
// is persisted under ParamProjectID and its list fetched; nil removes the
// parameter.
func (s *Store) SetProject(ctx context.Context, prj *project.Project) {
	s.mu.Lock()
	if prj != nil {
		cp := *prj
		s.project = &cp
	} else {
		s.project = nil
	}
	s.records = []mockdata.Record{}
	s.loaded = false
	s.gen++
	s.mu.Unlock()

	if prj == nil {
		s.deleteParam(ctx)
		return
	}

	s.setParam(ctx, prj.ID)
	s.Refresh(ctx)
}

// NewDraft returns an unsaved record owned by the selected project.
func (s *Store) NewDraft() (mockdata.Record, error) {
	prj := s.Project()
	if prj == nil {
		return mockdata.Record{}, ErrNoProject
	}
	return mockdata.Draft(prj.ID), nil
}

// Create sends rec as a new record of the selected project. The list is
// refreshed before Create returns true.
func (s *Store) Create(ctx context.Context, rec mockdata.Record) bool {
	payload := rec.Payload()
	payload.ProjectID = ""
	if prj := s.Project(); prj != nil {
		payload.ProjectID = prj.ID
	}

	return s.write(ctx, "create", MsgCreateSuccess, MsgCreateFailed, func(ctx context.Context) (bool, string, error) {
		env, err := s.api.CreateMockData(ctx, payload)
		return env.Success, env.Message, err
	})
}

// Edit sends the writable fields of rec to the backend.
func (s *Store) Edit(ctx context.Context, rec mockdata.Record) bool {
	payload := rec.Payload()
	payload.ProjectID = ""

	return s.write(ctx, "edit", MsgEditSuccess, MsgEditFailed, func(ctx context.Context) (bool, string, error) {
		env, err := s.api.UpdateMockData(ctx, rec.ID, payload)
		return env.Success, env.Message, err
	})
}

// Delete removes rec on the backend.
func (s *Store) Delete(ctx context.Context, rec mockdata.Record) bool {
	return s.write(ctx, "delete", MsgDeleteSuccess, MsgDeleteFailed, func(ctx context.Context) (bool, string, error) {
		env, err := s.api.DeleteMockData(ctx, rec.ID)
		return env.Success, env.Message, err
	})
}

func (s *Store) write(ctx context.Context, action, okMsg, failMsg string, call func(context.Context) (bool, string, error)) bool {
	success, message, err := call(ctx)
	if err != nil {
		s.logger.Error("mock data request failed", "action", action, "error", err)
		s.notifier.Error(ctx, failMsg)
		return false
	}
	if !success {
		s.logger.Warn("mock data request rejected", "action", action, "message", message)
		s.notifier.Error(ctx, failMsg)
		return false
	}

	s.notifier.Success(ctx, okMsg)
	s.Refresh(ctx)
	return true
}

// Refresh refetches the selected project's records. Failures are logged and
// reported through the notifier; the list is left untouched.
func (s *Store) Refresh(ctx context.Context) {
	s.mu.Lock()
	if s.project == nil {
		s.mu.Unlock()
		s.notifier.Error(ctx, MsgNoProject)
		return
	}
	prj := *s.project
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	env, err := s.api.ListMockData(ctx, prj.ID)
	if err == nil {
		err = env.Err()
	}
	if err != nil {
		s.mu.Lock()
		stale := s.gen != gen
		if !stale {
			s.loaded = false
		}
		s.mu.Unlock()
		if stale {
			s.logger.Debug("ignoring failure of stale mock data list", "project_id", prj.ID, "error", err)
			return
		}
		s.logger.Error("failed to load mock data list", "project_id", prj.ID, "error", err)
		s.notifier.Error(ctx, MsgListFailed)
		return
	}

	records := make([]mockdata.Record, 0, len(env.Data))
	for _, rec := range env.Data {
		rec.CreatedAt = FormatCreatedAt(rec.CreatedAt, s.loc)
		rec.URL = PreviewURL(s.baseURL, &prj, rec.Path)
		records = append(records, rec)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		s.logger.Debug("dropping stale mock data list", "project_id", prj.ID)
		return
	}
	s.records = records
	s.loaded = true
}

func (s *Store) setParam(ctx context.Context, id string) {
	if s.params == nil {
		return
	}
	if err := s.params.SetParam(ctx, ParamProjectID, id); err != nil {
		s.logger.Warn("failed to persist selected project", "project_id", id, "error", err)
	}
}

func (s *Store) deleteParam(ctx context.Context) {
	if s.params == nil {
		return
	}
	if err := s.params.DeleteParam(ctx, ParamProjectID); err != nil {
		s.logger.Warn("failed to clear selected project", "error", err)
	}
}

type discardNotifier struct{}

func (discardNotifier) Success(context.Context, string) {}
func (discardNotifier) Error(context.Context, string)   {}
