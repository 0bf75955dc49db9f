package store

import (
	"context"

	"github.com/rpggio/mockdata/internal/domain/mockdata"
)

// API is the backend the store talks to. A returned error means the call did
// not produce an envelope (network, decoding); a rejected call returns an
// envelope with Success false.
type API interface {
	ListMockData(ctx context.Context, projectID string) (mockdata.Envelope[[]mockdata.Record], error)
	CreateMockData(ctx context.Context, p mockdata.Payload) (mockdata.Envelope[*mockdata.Record], error)
	UpdateMockData(ctx context.Context, id int64, p mockdata.Payload) (mockdata.Envelope[*mockdata.Record], error)
	DeleteMockData(ctx context.Context, id int64) (mockdata.Envelope[any], error)
}

// Notifier surfaces operation outcomes to the user.
type Notifier interface {
	Success(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
}

// ParamStore persists shareable parameters such as the selected project id.
type ParamStore interface {
	SetParam(ctx context.Context, key, value string) error
	DeleteParam(ctx context.Context, key string) error
}
