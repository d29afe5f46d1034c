// Package testutil provides testing utilities shared by backend tests.
package testutil

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carlhannes/hannes-os/internal/infrastructure/config"
	"github.com/carlhannes/hannes-os/internal/infrastructure/server"
	"github.com/carlhannes/hannes-os/internal/shared/types"
)

// TestConfig returns a config suitable for tests: in-memory store,
// quiet logger, no rate limiting.
func TestConfig() *config.Config {
	cfg := config.Default()
	cfg.Store.Driver = "memory"
	cfg.RateLimit.Enabled = false
	return cfg
}

// StartServer boots a fully wired backend over an in-memory store and
// returns it together with an httptest server for requests. Both are
// torn down with the test.
func StartServer(t *testing.T) (*server.Server, *httptest.Server) {
	t.Helper()

	srv, err := server.NewServer(TestConfig())
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return srv, ts
}

// MockStore is a testify mock of storage.Store for failure injection
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Put(ctx context.Context, entity *types.Entity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockStore) Get(ctx context.Context, id string) (*types.Entity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Entity), args.Error(1)
}

func (m *MockStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) ListByParent(ctx context.Context, parentID string) ([]*types.Entity, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Entity), args.Error(1)
}

func (m *MockStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) SaveState(ctx context.Context, state *types.State) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockStore) LoadState(ctx context.Context) (*types.State, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.State), args.Error(1)
}

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
