package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rpggio/mockdata/internal/domain/mockdata"
	"github.com/rpggio/mockdata/internal/domain/project"
	"github.com/rpggio/mockdata/internal/notify"
	"github.com/rpggio/mockdata/internal/store"
	"github.com/rpggio/mockdata/internal/store/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testProject = &project.Project{ID: "p1", Name: "Shop", Path: "/proj"}

type fixture struct {
	api      *mocks.API
	notifier *mocks.Notifier
	params   *mocks.ParamStore
	store    *store.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		api:      &mocks.API{},
		notifier: &mocks.Notifier{},
		params:   &mocks.ParamStore{},
	}
	f.store = store.New(store.Options{
		API:            f.api,
		Notifier:       f.notifier,
		Params:         f.params,
		PreviewBaseURL: "http://api",
		Location:       time.UTC,
	})
	return f
}

func listOK(records ...mockdata.Record) mockdata.Envelope[[]mockdata.Record] {
	return mockdata.Envelope[[]mockdata.Record]{Success: true, Data: records}
}

// selectProject selects testProject with the given backend list.
func (f *fixture) selectProject(t *testing.T, records ...mockdata.Record) {
	t.Helper()
	f.params.On("SetParam", mock.Anything, store.ParamProjectID, "p1").Return(nil)
	f.api.On("ListMockData", mock.Anything, "p1").Return(listOK(records...), nil)
	f.store.SetProject(context.Background(), testProject)
}

func TestStore_InitialState(t *testing.T) {
	f := newFixture(t)
	require.Nil(t, f.store.Project())
	require.NotNil(t, f.store.Records())
	require.Empty(t, f.store.Records())
}

func TestStore_SetProjectPersistsAndRefreshes(t *testing.T) {
	f := newFixture(t)
	f.selectProject(t, mockdata.Record{
		ID:        1,
		Name:      "foo",
		Path:      "/foo",
		ProjectID: "p1",
		CreatedAt: "2024-05-01T10:20:30Z",
	})

	require.Equal(t, "p1", f.store.Project().ID)
	records := f.store.Records()
	require.Len(t, records, 1)
	require.Equal(t, "http://api/mock/p1/proj/foo", records[0].URL)
	require.Equal(t, "2024-05-01 10:20:30", records[0].CreatedAt)
	f.params.AssertCalled(t, "SetParam", mock.Anything, "prjId", "p1")
	f.api.AssertNumberOfCalls(t, "ListMockData", 1)
}

func TestStore_SetProjectNilClearsListAndParam(t *testing.T) {
	f := newFixture(t)
	f.selectProject(t, mockdata.Record{ID: 1, Path: "/foo"})
	require.Len(t, f.store.Records(), 1)

	f.params.On("DeleteParam", mock.Anything, "prjId").Return(nil)
	f.store.SetProject(context.Background(), nil)

	require.Nil(t, f.store.Project())
	require.Empty(t, f.store.Records())
	f.params.AssertCalled(t, "DeleteParam", mock.Anything, "prjId")
	f.api.AssertNumberOfCalls(t, "ListMockData", 1)
}

func TestStore_SetProjectClearsListEvenWhenRefreshFails(t *testing.T) {
	f := newFixture(t)
	f.selectProject(t, mockdata.Record{ID: 1, Path: "/foo"})

	other := &project.Project{ID: "p2", Path: ""}
	f.params.On("SetParam", mock.Anything, "prjId", "p2").Return(nil)
	f.api.On("ListMockData", mock.Anything, "p2").Return(mockdata.Envelope[[]mockdata.Record]{}, errors.New("connection refused"))
	f.notifier.On("Error", mock.Anything, store.MsgListFailed).Return()

	f.store.SetProject(context.Background(), other)

	require.Equal(t, "p2", f.store.Project().ID)
	require.Empty(t, f.store.Records())
	require.False(t, f.store.LastRefreshOK())
	f.notifier.AssertCalled(t, "Error", mock.Anything, store.MsgListFailed)
}

func TestStore_SetProjectParamFailureStillRefreshes(t *testing.T) {
	f := newFixture(t)
	f.params.On("SetParam", mock.Anything, "prjId", "p1").Return(errors.New("disk full"))
	f.api.On("ListMockData", mock.Anything, "p1").Return(listOK(mockdata.Record{ID: 1, Path: "/a"}), nil)

	f.store.SetProject(context.Background(), testProject)
	require.Len(t, f.store.Records(), 1)
}

func TestStore_NewDraft(t *testing.T) {
	f := newFixture(t)

	_, err1 := f.store.NewDraft()
	_, err2 := f.store.NewDraft()
	require.ErrorIs(t, err1, store.ErrNoProject)
	require.Equal(t, err1, err2)

	f.selectProject(t)
	draft, err := f.store.NewDraft()
	require.NoError(t, err)
	require.Equal(t, mockdata.NewID, draft.ID)
	require.Equal(t, "p1", draft.ProjectID)
	require.Equal(t, "all", draft.Type)
	require.True(t, draft.Enabled)
}

func TestStore_CreateSuccessRefreshesOnce(t *testing.T) {
	f := newFixture(t)
	f.selectProject(t)

	rec := mockdata.Record{ID: mockdata.NewID, Name: "users", Path: "/users", Type: "all", ProjectID: "stale"}
	want := rec.Payload()
	want.ProjectID = "p1"

	f.api.On("CreateMockData", mock.Anything, want).
		Return(mockdata.Envelope[*mockdata.Record]{Success: true}, nil)
	f.notifier.On("Success", mock.Anything, store.MsgCreateSuccess).Return()

	require.True(t, f.store.Create(context.Background(), rec))
	f.api.AssertNumberOfCalls(t, "ListMockData", 2)
	f.notifier.AssertExpectations(t)
}

func TestStore_EditStripsProject(t *testing.T) {
	f := newFixture(t)
	f.selectProject(t)

	rec := mockdata.Record{ID: 4, Name: "users", Path: "/users", ProjectID: "p1"}
	want := rec.Payload()
	want.ProjectID = ""

	f.api.On("UpdateMockData", mock.Anything, int64(4), want).
		Return(mockdata.Envelope[*mockdata.Record]{Success: true}, nil)
	f.notifier.On("Success", mock.Anything, store.MsgEditSuccess).Return()

	require.True(t, f.store.Edit(context.Background(), rec))
	f.api.AssertNumberOfCalls(t, "ListMockData", 2)
}

func TestStore_DeleteSuccess(t *testing.T) {
	f := newFixture(t)
	f.selectProject(t)

	f.api.On("DeleteMockData", mock.Anything, int64(4)).
		Return(mockdata.Envelope[any]{Success: true}, nil)
	f.notifier.On("Success", mock.Anything, store.MsgDeleteSuccess).Return()

	require.True(t, f.store.Delete(context.Background(), mockdata.Record{ID: 4}))
	f.api.AssertNumberOfCalls(t, "ListMockData", 2)
}

func TestStore_WriteFailures(t *testing.T) {
	transportErr := errors.New("connection reset")

	cases := []struct {
		name    string
		failMsg string
		setup   func(api *mocks.API, err error)
		run     func(s *store.Store) bool
	}{
		{
			name:    "create",
			failMsg: store.MsgCreateFailed,
			setup: func(api *mocks.API, err error) {
				api.On("CreateMockData", mock.Anything, mock.Anything).
					Return(mockdata.Envelope[*mockdata.Record]{Success: false, Message: "bad"}, err)
			},
			run: func(s *store.Store) bool {
				return s.Create(context.Background(), mockdata.Record{ID: -1, Path: "/x"})
			},
		},
		{
			name:    "edit",
			failMsg: store.MsgEditFailed,
			setup: func(api *mocks.API, err error) {
				api.On("UpdateMockData", mock.Anything, int64(2), mock.Anything).
					Return(mockdata.Envelope[*mockdata.Record]{Success: false}, err)
			},
			run: func(s *store.Store) bool {
				return s.Edit(context.Background(), mockdata.Record{ID: 2, Path: "/x"})
			},
		},
		{
			name:    "delete",
			failMsg: store.MsgDeleteFailed,
			setup: func(api *mocks.API, err error) {
				api.On("DeleteMockData", mock.Anything, int64(2)).
					Return(mockdata.Envelope[any]{Success: false}, err)
			},
			run: func(s *store.Store) bool {
				return s.Delete(context.Background(), mockdata.Record{ID: 2})
			},
		},
	}

	for _, tc := range cases {
		for _, err := range []error{nil, transportErr} {
			name := tc.name + "/rejected"
			if err != nil {
				name = tc.name + "/transport"
			}
			t.Run(name, func(t *testing.T) {
				f := newFixture(t)
				f.selectProject(t)
				tc.setup(f.api, err)
				f.notifier.On("Error", mock.Anything, tc.failMsg).Return()

				require.False(t, tc.run(f.store))
				f.api.AssertNumberOfCalls(t, "ListMockData", 1)
				f.notifier.AssertCalled(t, "Error", mock.Anything, tc.failMsg)
				f.notifier.AssertNotCalled(t, "Success", mock.Anything, mock.Anything)
			})
		}
	}
}

func TestStore_RefreshWithoutProject(t *testing.T) {
	f := newFixture(t)
	f.notifier.On("Error", mock.Anything, store.MsgNoProject).Return()

	f.store.Refresh(context.Background())

	require.Empty(t, f.store.Records())
	f.notifier.AssertCalled(t, "Error", mock.Anything, store.MsgNoProject)
	f.api.AssertNotCalled(t, "ListMockData", mock.Anything, mock.Anything)
}

func TestStore_RefreshRejectedKeepsList(t *testing.T) {
	f := newFixture(t)
	f.selectProject(t, mockdata.Record{ID: 1, Path: "/a"})

	f.api.ExpectedCalls = nil
	f.api.On("ListMockData", mock.Anything, "p1").
		Return(mockdata.Envelope[[]mockdata.Record]{Success: false, Message: "db down"}, nil)
	f.notifier.On("Error", mock.Anything, store.MsgListFailed).Return()

	require.True(t, f.store.LastRefreshOK())
	f.store.Refresh(context.Background())

	require.Len(t, f.store.Records(), 1)
	require.False(t, f.store.LastRefreshOK())
	f.notifier.AssertCalled(t, "Error", mock.Anything, store.MsgListFailed)
}

func TestStore_RecordsReturnsCopy(t *testing.T) {
	f := newFixture(t)
	f.selectProject(t, mockdata.Record{ID: 1, Name: "a", Path: "/a"})

	records := f.store.Records()
	records[0].Name = "changed"
	require.Equal(t, "a", f.store.Records()[0].Name)
}

// blockingAPI lets a test hold one list call open while another completes.
type blockingAPI struct {
	mocks.API

	mu      sync.Mutex
	calls   int
	started chan struct{}
	release chan struct{}
}

func (b *blockingAPI) ListMockData(_ context.Context, _ string) (mockdata.Envelope[[]mockdata.Record], error) {
	b.mu.Lock()
	b.calls++
	n := b.calls
	b.mu.Unlock()

	switch n {
	case 1:
		return listOK(), nil
	case 2:
		close(b.started)
		<-b.release
		return listOK(mockdata.Record{ID: 1, Name: "old", Path: "/old"}), nil
	default:
		return listOK(mockdata.Record{ID: 2, Name: "new", Path: "/new"}), nil
	}
}

func TestStore_OverlappingRefreshLatestWins(t *testing.T) {
	api := &blockingAPI{started: make(chan struct{}), release: make(chan struct{})}
	s := store.New(store.Options{API: api, PreviewBaseURL: "http://api"})
	ctx := context.Background()

	s.SetProject(ctx, testProject)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Refresh(ctx)
	}()
	<-api.started

	s.Refresh(ctx)
	close(api.release)
	<-done

	records := s.Records()
	require.Len(t, records, 1)
	require.Equal(t, "new", records[0].Name)
}

// switchAPI holds the list call of p1 open until released; other
// projects answer at once.
type switchAPI struct {
	mocks.API

	started chan struct{}
	release chan struct{}
	p1Err   error
}

func (a *switchAPI) ListMockData(_ context.Context, projectID string) (mockdata.Envelope[[]mockdata.Record], error) {
	if projectID != "p1" {
		return listOK(mockdata.Record{ID: 2, Name: "second", Path: "/b", ProjectID: projectID}), nil
	}
	close(a.started)
	<-a.release
	if a.p1Err != nil {
		return mockdata.Envelope[[]mockdata.Record]{}, a.p1Err
	}
	return listOK(mockdata.Record{ID: 1, Name: "first", Path: "/a", ProjectID: "p1"}), nil
}

func TestStore_ProjectSwitchDuringRefresh(t *testing.T) {
	tests := []struct {
		name  string
		p1Err error
	}{
		{name: "slow list arrives"},
		{name: "slow list fails", p1Err: errors.New("connection reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &switchAPI{started: make(chan struct{}), release: make(chan struct{}), p1Err: tt.p1Err}
			notes := &notify.Recorder{}
			s := store.New(store.Options{API: api, Notifier: notes, PreviewBaseURL: "http://api"})
			ctx := context.Background()

			done := make(chan struct{})
			go func() {
				defer close(done)
				s.SetProject(ctx, testProject)
			}()
			<-api.started

			s.SetProject(ctx, &project.Project{ID: "p2", Name: "Other", Path: "/other"})
			close(api.release)
			<-done

			require.Equal(t, "p2", s.Project().ID)
			records := s.Records()
			require.Len(t, records, 1)
			for _, rec := range records {
				require.Equal(t, "p2", rec.ProjectID)
			}
			require.True(t, s.LastRefreshOK())
			require.Empty(t, notes.Drain())
		})
	}
}

func TestPreviewURL(t *testing.T) {
	got := store.PreviewURL("http://api", &project.Project{ID: "p1", Path: "/proj"}, "/foo")
	require.Equal(t, "http://api/mock/p1/proj/foo", got)
}

func TestFormatCreatedAt(t *testing.T) {
	require.Equal(t, "2024-05-01 10:20:30", store.FormatCreatedAt("2024-05-01T10:20:30Z", time.UTC))
	require.Equal(t, "2024-05-01 12:20:30", store.FormatCreatedAt("2024-05-01T10:20:30Z", time.FixedZone("X", 2*3600)))
	require.Equal(t, "yesterday", store.FormatCreatedAt("yesterday", time.UTC))
	require.Equal(t, "", store.FormatCreatedAt("", time.UTC))
}
