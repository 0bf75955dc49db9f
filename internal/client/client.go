// Package client talks to the mock data backend API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/mockdata/internal/domain/mockdata"
	"github.com/rpggio/mockdata/internal/domain/project"
)

const (
	requestIDHeader = "X-Request-Id"
	maxBodyBytes    = 10 << 20
)

// ErrBadResponse indicates the backend answered with something that is not an envelope.
var ErrBadResponse = errors.New("unexpected backend response")

// Options configures a Client.
type Options struct {
	BaseURL string
	// Token is sent as a bearer token when set.
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client calls the backend envelope API. It does not retry.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a new Client.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		token:   opts.Token,
		http:    httpClient,
		logger:  logger,
	}
}

// CreateProjectRequest is the body of a project creation call.
type CreateProjectRequest struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
}

// ListProjects fetches every project.
func (c *Client) ListProjects(ctx context.Context) (mockdata.Envelope[[]project.ProjectSummary], error) {
	return call[[]project.ProjectSummary](ctx, c, http.MethodGet, "/mock/api/prj", nil)
}

// GetProject fetches one project.
func (c *Client) GetProject(ctx context.Context, id string) (mockdata.Envelope[*project.Project], error) {
	return call[*project.Project](ctx, c, http.MethodGet, "/mock/api/prj/"+url.PathEscape(id), nil)
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, req CreateProjectRequest) (mockdata.Envelope[*project.Project], error) {
	return call[*project.Project](ctx, c, http.MethodPost, "/mock/api/prj", req)
}

// ListMockData fetches all records of a project.
func (c *Client) ListMockData(ctx context.Context, projectID string) (mockdata.Envelope[[]mockdata.Record], error) {
	return call[[]mockdata.Record](ctx, c, http.MethodGet, "/mock/api/prj/"+url.PathEscape(projectID)+"/list", nil)
}

// CreateMockData creates a record.
func (c *Client) CreateMockData(ctx context.Context, p mockdata.Payload) (mockdata.Envelope[*mockdata.Record], error) {
	return call[*mockdata.Record](ctx, c, http.MethodPost, "/mock/api/data", p)
}

// UpdateMockData replaces the writable fields of record id.
func (c *Client) UpdateMockData(ctx context.Context, id int64, p mockdata.Payload) (mockdata.Envelope[*mockdata.Record], error) {
	return call[*mockdata.Record](ctx, c, http.MethodPut, dataPath(id), p)
}

// DeleteMockData deletes record id.
func (c *Client) DeleteMockData(ctx context.Context, id int64) (mockdata.Envelope[any], error) {
	return call[any](ctx, c, http.MethodDelete, dataPath(id), nil)
}

func dataPath(id int64) string {
	return "/mock/api/data/" + strconv.FormatInt(id, 10)
}

// call performs one round trip. Any body that decodes as an envelope is
// returned as is, whatever the status code.
func call[T any](ctx context.Context, c *Client, method, path string, body any) (mockdata.Envelope[T], error) {
	var env mockdata.Envelope[T]

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return env, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return env, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return env, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return env, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("backend call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if err := json.Unmarshal(data, &env); err != nil {
		return env, fmt.Errorf("%w: %s %s: status %d", ErrBadResponse, method, path, resp.StatusCode)
	}
	return env, nil
}
