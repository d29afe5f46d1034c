package vfs

import (
	"context"
	"errors"
	"mime"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/carlhannes/hannes-os/internal/infrastructure/logging"
	"github.com/carlhannes/hannes-os/internal/infrastructure/monitoring"
	"github.com/carlhannes/hannes-os/internal/shared/id"
	"github.com/carlhannes/hannes-os/internal/shared/types"
	"github.com/carlhannes/hannes-os/internal/storage"
)

// AppCatalog is the registry surface the service needs for seeding
// application shortcuts on first run.
type AppCatalog interface {
	ListApps() []types.AppInfo
}

// Service implements the hierarchical file system over a storage.Store.
// Operations are logically serialized: one mutex guards every call, so
// validation always sees state as of the start of the operation.
type Service struct {
	mu      sync.Mutex
	store   storage.Store
	catalog AppCatalog
	log     *logging.Logger
	metrics *monitoring.Metrics
	events  notifier
	rootID  string
	ready   bool
}

// NewService creates a file-system service over the given store
func NewService(store storage.Store, log *logging.Logger) *Service {
	if log == nil {
		log = logging.NewNop()
	}
	return &Service{
		store: store,
		log:   log,
	}
}

// WithCatalog sets the application catalog used for seeding shortcuts
func (s *Service) WithCatalog(catalog AppCatalog) *Service {
	s.catalog = catalog
	return s
}

// WithMetrics adds metrics tracking to the service
func (s *Service) WithMetrics(metrics *monitoring.Metrics) *Service {
	s.metrics = metrics
	return s
}

// Subscribe registers a handler for change events
func (s *Service) Subscribe(handler EventHandler) {
	s.events.subscribe(handler)
}

// RootID returns the root directory id. Empty until Initialize succeeds.
func (s *Service) RootID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rootID
}

// Ready reports whether Initialize has completed
func (s *Service) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Initialize loads the persisted aggregate state, synthesizing and
// seeding a default tree when none exists. Idempotent: a second call
// is a no-op.
func (s *Service) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}

	state, err := s.store.LoadState(ctx)
	switch {
	case err == nil:
		if _, err := s.store.Get(ctx, state.RootID); err != nil {
			return storageFault("load root", err)
		}
		s.rootID = state.RootID
		s.log.Info("File system loaded", zap.String("root_id", s.rootID))

	case errors.Is(err, storage.ErrNotFound):
		rootID, seedErr := s.seedDefaultTree(ctx)
		if seedErr != nil {
			return seedErr
		}
		s.rootID = rootID
		s.log.Info("File system seeded", zap.String("root_id", s.rootID))

	default:
		return storageFault("load state", err)
	}

	s.ready = true
	return nil
}

// CreateDirectory creates a directory under parentID
func (s *Service) CreateDirectory(ctx context.Context, name, parentID string) (*types.Entity, error) {
	s.mu.Lock()
	entity, err := s.create(ctx, types.NewDirectory(id.NewDirID().String(), name, &parentID))
	s.mu.Unlock()

	s.record("create_directory", err)
	if err != nil {
		return nil, err
	}
	s.events.publish(Event{Op: "create_directory", EntityID: entity.ID})
	return entity, nil
}

// CreateFile creates a file under parentID. An empty mimeType is sniffed
// from the content, falling back to the name's extension.
func (s *Service) CreateFile(ctx context.Context, name, parentID, content, mimeType string) (*types.Entity, error) {
	if mimeType == "" {
		mimeType = sniffMime(name, content)
	}

	s.mu.Lock()
	entity, err := s.create(ctx, types.NewFile(id.NewFileID().String(), name, &parentID, content, mimeType))
	s.mu.Unlock()

	s.record("create_file", err)
	if err != nil {
		return nil, err
	}
	s.events.publish(Event{Op: "create_file", EntityID: entity.ID})
	return entity, nil
}

// CreateLink creates a link under parentID. The name is normalized to
// carry the link suffix. The target is not validated here: links may
// dangle, and resolution failure surfaces at open time.
func (s *Service) CreateLink(ctx context.Context, name, parentID string, targetType types.LinkTargetType, target string) (*types.Entity, error) {
	if !targetType.IsValid() {
		return nil, newError(CodeInvalidLinkTarget, "unknown link target type %q", targetType)
	}

	s.mu.Lock()
	entity, err := s.create(ctx, types.NewLink(id.NewLinkID().String(), name, &parentID, targetType, target))
	s.mu.Unlock()

	s.record("create_link", err)
	if err != nil {
		return nil, err
	}
	s.events.publish(Event{Op: "create_link", EntityID: entity.ID})
	return entity, nil
}

// UpdateLink partially updates a link's name, target type or target
func (s *Service) UpdateLink(ctx context.Context, linkID string, patch types.UpdateLinkRequest) (*types.Entity, error) {
	s.mu.Lock()
	entity, err := s.updateLink(ctx, linkID, patch)
	s.mu.Unlock()

	s.record("update_link", err)
	if err != nil {
		return nil, err
	}
	s.events.publish(Event{Op: "update_link", EntityID: entity.ID})
	return entity, nil
}

// GetEntity retrieves an entity by id
func (s *Service) GetEntity(ctx context.Context, entityID string) (*types.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	entity, err := s.get(ctx, entityID)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// ListDirectory returns the children of a directory, sorted by name for
// determinism. Callers must not rely on any particular order.
func (s *Service) ListDirectory(ctx context.Context, dirID string) ([]*types.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	children, err := s.list(ctx, dirID)
	if err != nil {
		return nil, err
	}
	return children, nil
}

// UpdateFileContent replaces a file's content and bumps its modified time
func (s *Service) UpdateFileContent(ctx context.Context, fileID, content string) (*types.Entity, error) {
	s.mu.Lock()
	entity, err := s.updateContent(ctx, fileID, content)
	s.mu.Unlock()

	s.record("update_content", err)
	if err != nil {
		return nil, err
	}
	s.events.publish(Event{Op: "update_content", EntityID: entity.ID})
	return entity, nil
}

// RenameEntity renames an entity, re-checking sibling uniqueness
func (s *Service) RenameEntity(ctx context.Context, entityID, newName string) (*types.Entity, error) {
	s.mu.Lock()
	entity, err := s.rename(ctx, entityID, newName)
	s.mu.Unlock()

	s.record("rename", err)
	if err != nil {
		return nil, err
	}
	s.events.publish(Event{Op: "rename", EntityID: entity.ID})
	return entity, nil
}

// DeleteEntity removes an entity. Directories are deleted depth-first
// through all descendants using an explicit worklist, so pathological
// tree depth cannot exhaust the goroutine stack.
func (s *Service) DeleteEntity(ctx context.Context, entityID string) error {
	s.mu.Lock()
	err := s.delete(ctx, entityID)
	s.mu.Unlock()

	s.record("delete", err)
	if err != nil {
		return err
	}
	s.events.publish(Event{Op: "delete", EntityID: entityID})
	return nil
}

// MoveEntity reparents an entity. The destination must be a directory,
// must not already contain the entity's name, and must not be the entity
// itself or one of its descendants.
func (s *Service) MoveEntity(ctx context.Context, entityID, newParentID string) (*types.Entity, error) {
	s.mu.Lock()
	entity, err := s.move(ctx, entityID, newParentID)
	s.mu.Unlock()

	s.record("move", err)
	if err != nil {
		return nil, err
	}
	s.events.publish(Event{Op: "move", EntityID: entity.ID})
	return entity, nil
}

// UpdateEntityMetadata shallow-merges patch into the entity's metadata.
// Unspecified keys are preserved; the modified time is not touched, as
// metadata changes are non-content mutations.
func (s *Service) UpdateEntityMetadata(ctx context.Context, entityID string, patch map[string]interface{}) (*types.Entity, error) {
	s.mu.Lock()
	entity, err := s.patchMetadata(ctx, entityID, patch)
	s.mu.Unlock()

	s.record("update_metadata", err)
	if err != nil {
		return nil, err
	}
	s.events.publish(Event{Op: "update_metadata", EntityID: entity.ID})
	return entity, nil
}

// Stats returns file-system statistics
func (s *Service) Stats(ctx context.Context) (*types.FSStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReady(); err != nil {
		return nil, err
	}

	count, err := s.store.Count(ctx)
	if err != nil {
		return nil, storageFault("count entities", err)
	}

	if s.metrics != nil {
		s.metrics.FSEntities.Set(float64(count))
	}

	return &types.FSStats{
		TotalEntities: count,
		RootID:        s.rootID,
	}, nil
}

// ----------------------------------------------------------------------------
// Internals. All helpers below are called with s.mu held.
// ----------------------------------------------------------------------------

func (s *Service) ensureReady() *Error {
	if !s.ready {
		return newError(CodeStorageFault, "file system not initialized")
	}
	return nil
}

// get retrieves an entity, mapping storage errors to typed failures
func (s *Service) get(ctx context.Context, entityID string) (*types.Entity, *Error) {
	entity, err := s.store.Get(ctx, entityID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, newError(CodeEntityNotFound, "entity %s not found", entityID)
	}
	if err != nil {
		return nil, storageFault("get entity", err)
	}
	return entity, nil
}

// parentDir resolves a parent id to a directory, with parent-flavored errors
func (s *Service) parentDir(ctx context.Context, parentID string) (*types.Entity, *Error) {
	parent, err := s.store.Get(ctx, parentID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, newError(CodeParentNotFound, "parent %s not found", parentID)
	}
	if err != nil {
		return nil, storageFault("get parent", err)
	}
	if !parent.IsDir() {
		return nil, newError(CodeNotADirectory, "parent %s is not a directory", parentID)
	}
	return parent, nil
}

// siblingTaken reports whether a child of parentID other than excludeID
// already carries name. Matching is exact and case-sensitive.
func (s *Service) siblingTaken(ctx context.Context, parentID, name, excludeID string) (bool, *Error) {
	siblings, err := s.store.ListByParent(ctx, parentID)
	if err != nil {
		return false, storageFault("list siblings", err)
	}
	for _, sibling := range siblings {
		if sibling.ID != excludeID && sibling.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) list(ctx context.Context, dirID string) ([]*types.Entity, *Error) {
	dir, err := s.get(ctx, dirID)
	if err != nil {
		return nil, err
	}
	if !dir.IsDir() {
		return nil, newError(CodeNotADirectory, "entity %s is not a directory", dirID)
	}

	children, listErr := s.store.ListByParent(ctx, dirID)
	if listErr != nil {
		return nil, storageFault("list directory", listErr)
	}

	sort.Slice(children, func(i, j int) bool {
		return children[i].Name < children[j].Name
	})
	return children, nil
}

// create validates parent and sibling uniqueness, then persists
func (s *Service) create(ctx context.Context, entity *types.Entity) (*types.Entity, *Error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}

	if _, err := s.parentDir(ctx, *entity.ParentID); err != nil {
		return nil, err
	}

	taken, err := s.siblingTaken(ctx, *entity.ParentID, entity.Name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, newError(CodeNameCollision, "%q already exists in parent %s", entity.Name, *entity.ParentID)
	}

	if putErr := s.store.Put(ctx, entity); putErr != nil {
		s.log.Error("Failed to persist entity", zap.String("name", entity.Name), zap.Error(putErr))
		return nil, storageFault("put entity", putErr)
	}
	return entity, nil
}

func (s *Service) updateLink(ctx context.Context, linkID string, patch types.UpdateLinkRequest) (*types.Entity, *Error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}

	link, err := s.get(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if link.Type != types.EntityLink {
		return nil, newError(CodeInvalidLinkTarget, "entity %s is not a link", linkID)
	}

	if patch.Name != nil {
		name := types.NormalizeLinkName(*patch.Name)
		if name != link.Name {
			taken, err := s.siblingTaken(ctx, *link.ParentID, name, link.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, newError(CodeNameCollision, "%q already exists in parent %s", name, *link.ParentID)
			}
			link.Name = name
		}
	}
	if patch.TargetType != nil {
		if !patch.TargetType.IsValid() {
			return nil, newError(CodeInvalidLinkTarget, "unknown link target type %q", *patch.TargetType)
		}
		link.TargetType = *patch.TargetType
	}
	if patch.Target != nil {
		link.Target = *patch.Target
	}
	link.ModifiedAt = time.Now()

	if putErr := s.store.Put(ctx, link); putErr != nil {
		return nil, storageFault("put link", putErr)
	}
	return link, nil
}

func (s *Service) updateContent(ctx context.Context, fileID, content string) (*types.Entity, *Error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}

	file, err := s.get(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if file.Type != types.EntityFile {
		return nil, newError(CodeEntityNotFound, "entity %s is not a file", fileID)
	}

	file.Content = content
	file.ModifiedAt = time.Now()

	if putErr := s.store.Put(ctx, file); putErr != nil {
		return nil, storageFault("put file", putErr)
	}
	return file, nil
}

func (s *Service) rename(ctx context.Context, entityID, newName string) (*types.Entity, *Error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}

	entity, err := s.get(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if entity.IsRoot() {
		return nil, newError(CodeEntityNotFound, "root directory cannot be renamed")
	}

	if entity.Type == types.EntityLink {
		newName = types.NormalizeLinkName(newName)
	}

	taken, err := s.siblingTaken(ctx, *entity.ParentID, newName, entity.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, newError(CodeNameCollision, "%q already exists in parent %s", newName, *entity.ParentID)
	}

	entity.Name = newName
	entity.ModifiedAt = time.Now()

	if putErr := s.store.Put(ctx, entity); putErr != nil {
		return nil, storageFault("put entity", putErr)
	}
	return entity, nil
}

func (s *Service) delete(ctx context.Context, entityID string) *Error {
	if err := s.ensureReady(); err != nil {
		return err
	}

	entity, err := s.get(ctx, entityID)
	if err != nil {
		return err
	}
	if entity.IsRoot() {
		return newError(CodeEntityNotFound, "root directory cannot be deleted")
	}

	// Explicit worklist instead of recursion: first pass collects the
	// subtree, second pass deletes children before parents.
	visit := []string{entityID}
	var order []string
	for len(visit) > 0 {
		current := visit[len(visit)-1]
		visit = visit[:len(visit)-1]
		order = append(order, current)

		children, listErr := s.store.ListByParent(ctx, current)
		if listErr != nil {
			return storageFault("list descendants", listErr)
		}
		for _, child := range children {
			visit = append(visit, child.ID)
		}
	}

	for i := len(order) - 1; i >= 0; i-- {
		if delErr := s.store.Delete(ctx, order[i]); delErr != nil {
			return storageFault("delete entity", delErr)
		}
	}
	return nil
}

func (s *Service) move(ctx context.Context, entityID, newParentID string) (*types.Entity, *Error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}

	entity, err := s.get(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if entity.IsRoot() {
		return nil, newError(CodeEntityNotFound, "root directory cannot be moved")
	}

	if _, err := s.parentDir(ctx, newParentID); err != nil {
		return nil, err
	}

	if entityID == newParentID {
		return nil, newError(CodeNotADirectory, "cannot move %s into itself", entityID)
	}
	inside, err := s.isDescendant(ctx, entityID, newParentID)
	if err != nil {
		return nil, err
	}
	if inside {
		return nil, newError(CodeNotADirectory, "cannot move %s into its own descendant", entityID)
	}

	taken, err := s.siblingTaken(ctx, newParentID, entity.Name, entity.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, newError(CodeNameCollision, "%q already exists in parent %s", entity.Name, newParentID)
	}

	entity.ParentID = &newParentID
	entity.ModifiedAt = time.Now()

	if putErr := s.store.Put(ctx, entity); putErr != nil {
		return nil, storageFault("put entity", putErr)
	}
	return entity, nil
}

// isDescendant reports whether candidate lies inside ancestor's subtree,
// by walking candidate's parent chain up to the root.
func (s *Service) isDescendant(ctx context.Context, ancestorID, candidateID string) (bool, *Error) {
	currentID := candidateID
	for {
		if currentID == ancestorID {
			return true, nil
		}
		current, err := s.get(ctx, currentID)
		if err != nil {
			return false, err
		}
		if current.ParentID == nil {
			return false, nil
		}
		currentID = *current.ParentID
	}
}

func (s *Service) patchMetadata(ctx context.Context, entityID string, patch map[string]interface{}) (*types.Entity, *Error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}

	entity, err := s.get(ctx, entityID)
	if err != nil {
		return nil, err
	}

	if entity.Metadata == nil {
		entity.Metadata = make(map[string]interface{}, len(patch))
	}
	for k, v := range patch {
		entity.Metadata[k] = v
	}

	if putErr := s.store.Put(ctx, entity); putErr != nil {
		return nil, storageFault("put entity", putErr)
	}
	return entity, nil
}

func (s *Service) record(op string, err *Error) {
	if s.metrics == nil {
		return
	}
	code := ""
	if err != nil {
		code = string(err.Code)
	}
	s.metrics.RecordFSOperation(op, code)
}

// sniffMime detects a mime type from content, falling back to the file
// extension and finally text/plain.
func sniffMime(name, content string) string {
	if content != "" {
		return mimetype.Detect([]byte(content)).String()
	}
	if ext := filepath.Ext(name); ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return byExt
		}
	}
	return "text/plain"
}
