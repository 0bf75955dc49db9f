package mocks

import (
	"context"

	"github.com/rpggio/mockdata/internal/domain/mockdata"
	"github.com/stretchr/testify/mock"
)

// API is a mock for store.API.
type API struct {
	mock.Mock
}

func (m *API) ListMockData(ctx context.Context, projectID string) (mockdata.Envelope[[]mockdata.Record], error) {
	args := m.Called(ctx, projectID)
	env, _ := args.Get(0).(mockdata.Envelope[[]mockdata.Record])
	return env, args.Error(1)
}

func (m *API) CreateMockData(ctx context.Context, p mockdata.Payload) (mockdata.Envelope[*mockdata.Record], error) {
	args := m.Called(ctx, p)
	env, _ := args.Get(0).(mockdata.Envelope[*mockdata.Record])
	return env, args.Error(1)
}

func (m *API) UpdateMockData(ctx context.Context, id int64, p mockdata.Payload) (mockdata.Envelope[*mockdata.Record], error) {
	args := m.Called(ctx, id, p)
	env, _ := args.Get(0).(mockdata.Envelope[*mockdata.Record])
	return env, args.Error(1)
}

func (m *API) DeleteMockData(ctx context.Context, id int64) (mockdata.Envelope[any], error) {
	args := m.Called(ctx, id)
	env, _ := args.Get(0).(mockdata.Envelope[any])
	return env, args.Error(1)
}

// Notifier is a mock for store.Notifier.
type Notifier struct {
	mock.Mock
}

func (m *Notifier) Success(ctx context.Context, msg string) {
	m.Called(ctx, msg)
}

func (m *Notifier) Error(ctx context.Context, msg string) {
	m.Called(ctx, msg)
}

// ParamStore is a mock for store.ParamStore.
type ParamStore struct {
	mock.Mock
}

func (m *ParamStore) SetParam(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *ParamStore) DeleteParam(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
