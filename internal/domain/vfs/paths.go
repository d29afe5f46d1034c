package vfs

import (
	"context"
	"strings"

	"github.com/carlhannes/hannes-os/internal/shared/types"
)

// GetEntityByPath resolves a slash-delimited absolute path to an entity.
// Resolution walks segment by segment from the root against live children
// listings, so it stays correct under concurrent renames at the cost of a
// listing per segment. "/" resolves to the root without traversal.
func (s *Service) GetEntityByPath(ctx context.Context, path string) (*types.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReady(); err != nil {
		return nil, err
	}

	entity, err := s.resolvePath(ctx, path)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// ListDirectoryByPath resolves a path and lists the directory it names
func (s *Service) ListDirectoryByPath(ctx context.Context, path string) ([]*types.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReady(); err != nil {
		return nil, err
	}

	dir, err := s.resolvePath(ctx, path)
	if err != nil {
		return nil, err
	}
	children, err := s.list(ctx, dir.ID)
	if err != nil {
		return nil, err
	}
	return children, nil
}

// GetPath reconstructs the absolute path of an entity by walking parent
// links up to the root. The root resolves to "/".
func (s *Service) GetPath(ctx context.Context, entityID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReady(); err != nil {
		return "", err
	}

	var segments []string
	currentID := entityID
	for {
		entity, err := s.get(ctx, currentID)
		if err != nil {
			return "", err
		}
		if entity.ParentID == nil {
			break
		}
		segments = append(segments, entity.Name)
		currentID = *entity.ParentID
	}

	if len(segments) == 0 {
		return "/", nil
	}

	// Segments were collected leaf-first
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return "/" + strings.Join(segments, "/"), nil
}

// resolvePath walks path segments from the root. Called with s.mu held.
func (s *Service) resolvePath(ctx context.Context, path string) (*types.Entity, *Error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return s.get(ctx, s.rootID)
	}

	segments := strings.Split(trimmed, "/")
	current, err := s.get(ctx, s.rootID)
	if err != nil {
		return nil, err
	}

	for i, segment := range segments {
		if !current.IsDir() {
			return nil, newError(CodeNotADirectory, "%q is not a directory", strings.Join(segments[:i], "/"))
		}

		children, listErr := s.store.ListByParent(ctx, current.ID)
		if listErr != nil {
			return nil, storageFault("list directory", listErr)
		}

		var next *types.Entity
		for _, child := range children {
			if child.Name == segment {
				next = child
				break
			}
		}
		if next == nil {
			return nil, newError(CodeEntityNotFound, "path %q not found", path)
		}
		current = next
	}

	return current, nil
}
