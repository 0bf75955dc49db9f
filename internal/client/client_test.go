package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rpggio/mockdata/internal/domain/mockdata"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method string
	path   string
	auth   string
	reqID  string
	body   map[string]any
}

func newTestServer(t *testing.T, status int, response string) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.EscapedPath()
		got.auth = r.Header.Get("Authorization")
		got.reqID = r.Header.Get(requestIDHeader)
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &got.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server, got
}

func TestClient_ListMockData(t *testing.T) {
	server, got := newTestServer(t, http.StatusOK,
		`{"success":true,"data":[{"id":1,"name":"users","path":"/users","projectId":"p 1","createdAt":"2024-05-01T10:20:30Z"}]}`)

	c := New(Options{BaseURL: server.URL + "/", Token: "secret"})
	env, err := c.ListMockData(context.Background(), "p 1")
	require.NoError(t, err)
	require.True(t, env.Success)
	require.Len(t, env.Data, 1)
	require.Equal(t, "/users", env.Data[0].Path)

	require.Equal(t, http.MethodGet, got.method)
	require.Equal(t, "/mock/api/prj/p%201/list", got.path)
	require.Equal(t, "Bearer secret", got.auth)
	require.NotEmpty(t, got.reqID)
}

func TestClient_CreateMockDataBody(t *testing.T) {
	server, got := newTestServer(t, http.StatusOK, `{"success":true,"data":{"id":5}}`)

	c := New(Options{BaseURL: server.URL})
	rec := mockdata.Record{ID: -1, Name: "users", Type: "all", Enabled: true, Path: "/users", ProjectID: "p1"}
	env, err := c.CreateMockData(context.Background(), rec.Payload())
	require.NoError(t, err)
	require.True(t, env.Success)
	require.Equal(t, int64(5), env.Data.ID)

	require.Equal(t, http.MethodPost, got.method)
	require.Equal(t, "/mock/api/data", got.path)
	require.Empty(t, got.auth)
	require.NotContains(t, got.body, "id")
	require.Equal(t, "p1", got.body["projectId"])
	require.Equal(t, true, got.body["enabled"])
}

func TestClient_UpdateOmitsProject(t *testing.T) {
	server, got := newTestServer(t, http.StatusOK, `{"success":true}`)

	c := New(Options{BaseURL: server.URL})
	p := mockdata.Record{ID: 9, Name: "users", Path: "/users", ProjectID: "p1"}.Payload()
	p.ProjectID = ""
	_, err := c.UpdateMockData(context.Background(), 9, p)
	require.NoError(t, err)

	require.Equal(t, http.MethodPut, got.method)
	require.Equal(t, "/mock/api/data/9", got.path)
	require.NotContains(t, got.body, "id")
	require.NotContains(t, got.body, "projectId")
}

func TestClient_RejectedEnvelopeIsNotAnError(t *testing.T) {
	server, got := newTestServer(t, http.StatusNotFound, `{"success":false,"message":"mock data not found"}`)

	c := New(Options{BaseURL: server.URL})
	env, err := c.DeleteMockData(context.Background(), 3)
	require.NoError(t, err)
	require.False(t, env.Success)
	require.Equal(t, "mock data not found", env.Message)
	require.Equal(t, http.MethodDelete, got.method)

	var rejected *mockdata.RejectedError
	require.ErrorAs(t, env.Err(), &rejected)
	require.Equal(t, "mock data not found", rejected.Message)
}

func TestClient_BadResponse(t *testing.T) {
	server, _ := newTestServer(t, http.StatusBadGateway, `<html>bad gateway</html>`)

	c := New(Options{BaseURL: server.URL})
	_, err := c.ListProjects(context.Background())
	require.ErrorIs(t, err, ErrBadResponse)
}

func TestClient_TransportError(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{"success":true}`)
	server.Close()

	c := New(Options{BaseURL: server.URL})
	_, err := c.GetProject(context.Background(), "p1")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrBadResponse)
}
