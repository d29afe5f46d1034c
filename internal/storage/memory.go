package storage

import (
	"context"
	"sync"

	"github.com/carlhannes/hannes-os/internal/shared/types"
)

// Memory is a map-backed Store for tests and ephemeral sessions
type Memory struct {
	mu       sync.RWMutex
	entities map[string]*types.Entity
	state    *types.State
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		entities: make(map[string]*types.Entity),
	}
}

// Put inserts or replaces an entity by id
func (m *Memory) Put(_ context.Context, entity *types.Entity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entities[entity.ID] = entity.Clone()
	return nil
}

// Get retrieves an entity by id
func (m *Memory) Get(_ context.Context, id string) (*types.Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entity, ok := m.entities[id]
	if !ok {
		return nil, ErrNotFound
	}
	return entity.Clone(), nil
}

// Delete removes an entity by id
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entities, id)
	return nil
}

// ListByParent returns all entities whose ParentID equals parentID
func (m *Memory) ListByParent(_ context.Context, parentID string) ([]*types.Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*types.Entity
	for _, entity := range m.entities {
		if entity.ParentID != nil && *entity.ParentID == parentID {
			out = append(out, entity.Clone())
		}
	}
	return out, nil
}

// Count returns the total number of stored entities
func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entities), nil
}

// SaveState persists the aggregate state
func (m *Memory) SaveState(_ context.Context, state *types.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := *state
	m.state = &s
	return nil
}

// LoadState retrieves the aggregate state
func (m *Memory) LoadState(_ context.Context) (*types.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.state == nil {
		return nil, ErrNotFound
	}
	s := *m.state
	return &s, nil
}

// Close releases storage handles
func (m *Memory) Close() error {
	return nil
}
