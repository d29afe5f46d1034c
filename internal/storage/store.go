package storage

import (
	"context"
	"errors"

	"github.com/carlhannes/hannes-os/internal/shared/types"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("storage: not found")

// Store persists file-system entities and the aggregate state.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put inserts or replaces an entity by id
	Put(ctx context.Context, entity *types.Entity) error

	// Get retrieves an entity by id; ErrNotFound if absent
	Get(ctx context.Context, id string) (*types.Entity, error)

	// Delete removes an entity by id; deleting an absent id is not an error
	Delete(ctx context.Context, id string) error

	// ListByParent returns all entities whose ParentID equals parentID.
	// Order is unspecified.
	ListByParent(ctx context.Context, parentID string) ([]*types.Entity, error)

	// Count returns the total number of stored entities
	Count(ctx context.Context) (int, error)

	// SaveState persists the single-slot aggregate state
	SaveState(ctx context.Context, state *types.State) error

	// LoadState retrieves the aggregate state; ErrNotFound if never saved
	LoadState(ctx context.Context) (*types.State, error)

	// Close releases storage handles
	Close() error
}
