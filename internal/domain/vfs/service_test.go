package vfs

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlhannes/hannes-os/internal/shared/types"
	"github.com/carlhannes/hannes-os/internal/storage"
)

type fakeCatalog struct {
	apps []types.AppInfo
}

func (c *fakeCatalog) ListApps() []types.AppInfo {
	return c.apps
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	catalog := &fakeCatalog{apps: []types.AppInfo{
		{ID: "notepad", Name: "Notepad", Icon: "📝", Component: "notepad"},
		{ID: "browser", Name: "Browser", Icon: "🌐", Component: "browser"},
	}}

	svc := NewService(storage.NewMemory(), nil).WithCatalog(catalog)
	require.NoError(t, svc.Initialize(context.Background()))
	return svc
}

func TestInitializeSeedsDefaultTree(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	require.NotEmpty(t, svc.RootID())
	require.True(t, svc.Ready())

	for _, path := range []string{
		"/Users/User/Documents",
		"/Users/User/Desktop",
		"/Users/User/Downloads",
		"/Users/User/Pictures",
		"/Applications",
		"/System",
	} {
		entity, err := svc.GetEntityByPath(ctx, path)
		require.NoError(t, err, path)
		assert.Equal(t, types.EntityDirectory, entity.Type, path)
	}

	// One shortcut per registered app, in both locations
	apps, err := svc.ListDirectoryByPath(ctx, "/Applications")
	require.NoError(t, err)
	require.Len(t, apps, 2)
	for _, link := range apps {
		assert.Equal(t, types.EntityLink, link.Type)
		assert.Equal(t, types.LinkTargetApplication, link.TargetType)
		assert.True(t, strings.HasSuffix(link.Name, types.LinkSuffix))
	}

	desktop, err := svc.ListDirectoryByPath(ctx, "/Users/User/Desktop")
	require.NoError(t, err)
	require.Len(t, desktop, 2)
	for _, link := range desktop {
		assert.Contains(t, link.Metadata, "desktopX")
		assert.Contains(t, link.Metadata, "desktopY")
	}

	// Sample files
	welcome, err := svc.GetEntityByPath(ctx, "/Users/User/Documents/Welcome.txt")
	require.NoError(t, err)
	assert.Equal(t, types.EntityFile, welcome.Type)
	assert.NotEmpty(t, welcome.Content)
}

func TestInitializeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	before, err := svc.Stats(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Initialize(ctx))

	after, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.TotalEntities, after.TotalEntities)
}

func TestInitializeLoadsExistingState(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()

	first := NewService(store, nil)
	require.NoError(t, first.Initialize(ctx))
	docs, err := first.GetEntityByPath(ctx, "/Users/User/Documents")
	require.NoError(t, err)
	_, err = first.CreateFile(ctx, "keep.txt", docs.ID, "kept", "")
	require.NoError(t, err)

	// A fresh service over the same store must not reseed
	second := NewService(store, nil)
	require.NoError(t, second.Initialize(ctx))
	assert.Equal(t, first.RootID(), second.RootID())

	kept, err := second.GetEntityByPath(ctx, "/Users/User/Documents/keep.txt")
	require.NoError(t, err)
	assert.Equal(t, "kept", kept.Content)
}

func TestOperationsRequireInitialize(t *testing.T) {
	ctx := context.Background()
	svc := NewService(storage.NewMemory(), nil)

	_, err := svc.CreateDirectory(ctx, "Docs", "dir_nope")
	require.Error(t, err)
	assert.Equal(t, CodeStorageFault, CodeOf(err))
}

func TestCreateDirectoryAndFile(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	docs, err := svc.CreateDirectory(ctx, "Docs", svc.RootID())
	require.NoError(t, err)
	assert.Equal(t, types.EntityDirectory, docs.Type)

	file, err := svc.CreateFile(ctx, "a.txt", docs.ID, "hello", "")
	require.NoError(t, err)
	assert.Equal(t, types.EntityFile, file.Type)

	found, err := svc.GetEntityByPath(ctx, "/Docs/a.txt")
	require.NoError(t, err)
	assert.Equal(t, file.ID, found.ID)
	assert.Equal(t, "hello", found.Content)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.CreateDirectory(ctx, "Docs", "dir_missing")
	assert.Equal(t, CodeParentNotFound, CodeOf(err))

	file, err := svc.CreateFile(ctx, "x.txt", svc.RootID(), "", "")
	require.NoError(t, err)

	_, err = svc.CreateFile(ctx, "child.txt", file.ID, "", "")
	assert.Equal(t, CodeNotADirectory, CodeOf(err))

	// Same name, different type, same parent: still a collision
	_, err = svc.CreateDirectory(ctx, "x.txt", svc.RootID())
	assert.Equal(t, CodeNameCollision, CodeOf(err))

	// A rejected create leaves no trace
	_, err = svc.GetEntityByPath(ctx, "/x.txt")
	require.NoError(t, err)
	children, err := svc.ListDirectory(ctx, svc.RootID())
	require.NoError(t, err)
	names := map[string]int{}
	for _, child := range children {
		names[child.Name]++
	}
	assert.Equal(t, 1, names["x.txt"])
}

func TestSiblingUniquenessIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.CreateFile(ctx, "Notes.txt", svc.RootID(), "", "")
	require.NoError(t, err)

	// Exact-match collision only; different case is a different name
	_, err = svc.CreateFile(ctx, "notes.txt", svc.RootID(), "", "")
	require.NoError(t, err)

	_, err = svc.CreateFile(ctx, "Notes.txt", svc.RootID(), "", "")
	assert.Equal(t, CodeNameCollision, CodeOf(err))
}

func TestUpdateFileContent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	file, err := svc.CreateFile(ctx, "a.txt", svc.RootID(), "one", "text/plain")
	require.NoError(t, err)

	updated, err := svc.UpdateFileContent(ctx, file.ID, "two")
	require.NoError(t, err)
	assert.Equal(t, "two", updated.Content)
	assert.False(t, updated.ModifiedAt.Before(file.ModifiedAt))

	_, err = svc.UpdateFileContent(ctx, "file_missing", "x")
	assert.Equal(t, CodeEntityNotFound, CodeOf(err))

	dir, err := svc.CreateDirectory(ctx, "Docs", svc.RootID())
	require.NoError(t, err)
	_, err = svc.UpdateFileContent(ctx, dir.ID, "x")
	assert.Equal(t, CodeEntityNotFound, CodeOf(err))
}

func TestRenameEntity(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	file, err := svc.CreateFile(ctx, "a.txt", svc.RootID(), "", "")
	require.NoError(t, err)
	_, err = svc.CreateFile(ctx, "b.txt", svc.RootID(), "", "")
	require.NoError(t, err)

	renamed, err := svc.RenameEntity(ctx, file.ID, "c.txt")
	require.NoError(t, err)
	assert.Equal(t, "c.txt", renamed.Name)

	_, err = svc.RenameEntity(ctx, file.ID, "b.txt")
	assert.Equal(t, CodeNameCollision, CodeOf(err))

	// Renaming to its own current name is allowed
	_, err = svc.RenameEntity(ctx, file.ID, "c.txt")
	require.NoError(t, err)
}

func TestRecursiveDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	top, err := svc.CreateDirectory(ctx, "top", svc.RootID())
	require.NoError(t, err)
	mid, err := svc.CreateDirectory(ctx, "mid", top.ID)
	require.NoError(t, err)
	leafDir, err := svc.CreateDirectory(ctx, "leaf", mid.ID)
	require.NoError(t, err)
	leafFile, err := svc.CreateFile(ctx, "deep.txt", leafDir.ID, "x", "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEntity(ctx, top.ID))

	for _, id := range []string{top.ID, mid.ID, leafDir.ID, leafFile.ID} {
		_, err := svc.GetEntity(ctx, id)
		assert.Equal(t, CodeEntityNotFound, CodeOf(err), id)
	}
}

func TestDeleteHandlesDeepNesting(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	// Deep chain: the worklist delete must not depend on stack depth
	parent := svc.RootID()
	top := ""
	for i := 0; i < 500; i++ {
		dir, err := svc.CreateDirectory(ctx, "d", parent)
		require.NoError(t, err)
		if top == "" {
			top = dir.ID
		}
		parent = dir.ID
	}

	require.NoError(t, svc.DeleteEntity(ctx, top))
	_, err := svc.GetEntity(ctx, parent)
	assert.Equal(t, CodeEntityNotFound, CodeOf(err))
}

func TestRootGuards(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	root, err := svc.GetEntity(ctx, svc.RootID())
	require.NoError(t, err)
	require.Nil(t, root.ParentID)

	err = svc.DeleteEntity(ctx, root.ID)
	require.Error(t, err)

	_, err = svc.RenameEntity(ctx, root.ID, "newroot")
	require.Error(t, err)

	dir, err := svc.CreateDirectory(ctx, "Docs", root.ID)
	require.NoError(t, err)
	_, err = svc.MoveEntity(ctx, root.ID, dir.ID)
	require.Error(t, err)
}

func TestMoveEntity(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	a, err := svc.CreateDirectory(ctx, "a", svc.RootID())
	require.NoError(t, err)
	b, err := svc.CreateDirectory(ctx, "b", svc.RootID())
	require.NoError(t, err)
	file, err := svc.CreateFile(ctx, "f.txt", a.ID, "", "")
	require.NoError(t, err)

	moved, err := svc.MoveEntity(ctx, file.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, *moved.ParentID)

	found, err := svc.GetEntityByPath(ctx, "/b/f.txt")
	require.NoError(t, err)
	assert.Equal(t, file.ID, found.ID)

	// Collision at the destination
	_, err = svc.CreateFile(ctx, "f.txt", a.ID, "", "")
	require.NoError(t, err)
	_, err = svc.MoveEntity(ctx, file.ID, a.ID)
	assert.Equal(t, CodeNameCollision, CodeOf(err))

	// Destination must be a directory
	_, err = svc.MoveEntity(ctx, a.ID, file.ID)
	assert.Equal(t, CodeNotADirectory, CodeOf(err))
}

func TestMoveCyclePrevention(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	outer, err := svc.CreateDirectory(ctx, "outer", svc.RootID())
	require.NoError(t, err)
	inner, err := svc.CreateDirectory(ctx, "inner", outer.ID)
	require.NoError(t, err)
	deepest, err := svc.CreateDirectory(ctx, "deepest", inner.ID)
	require.NoError(t, err)

	_, err = svc.MoveEntity(ctx, outer.ID, outer.ID)
	require.Error(t, err)

	_, err = svc.MoveEntity(ctx, outer.ID, inner.ID)
	require.Error(t, err)

	_, err = svc.MoveEntity(ctx, outer.ID, deepest.ID)
	require.Error(t, err)

	// The tree is unchanged
	found, err := svc.GetEntityByPath(ctx, "/outer/inner/deepest")
	require.NoError(t, err)
	assert.Equal(t, deepest.ID, found.ID)
}

func TestMetadataMerge(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	file, err := svc.CreateFile(ctx, "a.txt", svc.RootID(), "", "")
	require.NoError(t, err)

	_, err = svc.UpdateEntityMetadata(ctx, file.ID, map[string]interface{}{
		"desktopX": 10,
		"desktopY": 20,
	})
	require.NoError(t, err)

	// A partial patch preserves unspecified keys
	updated, err := svc.UpdateEntityMetadata(ctx, file.ID, map[string]interface{}{
		"desktopX": 99,
	})
	require.NoError(t, err)
	assert.Equal(t, 99, updated.Metadata["desktopX"])
	assert.Equal(t, 20, updated.Metadata["desktopY"])

	// Metadata changes are not content mutations
	assert.Equal(t, file.ModifiedAt, updated.ModifiedAt)
}

func TestLinks(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	link, err := svc.CreateLink(ctx, "My Site", svc.RootID(), types.LinkTargetURL, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "My Site.lnk", link.Name)
	assert.Equal(t, "My Site", link.DisplayName())

	// Dangling entity targets are allowed at create time
	_, err = svc.CreateLink(ctx, "Ghost", svc.RootID(), types.LinkTargetFile, "file_gone")
	require.NoError(t, err)

	_, err = svc.CreateLink(ctx, "Bad", svc.RootID(), "bogus", "x")
	assert.Equal(t, CodeInvalidLinkTarget, CodeOf(err))
}

func TestUpdateLink(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	link, err := svc.CreateLink(ctx, "Site", svc.RootID(), types.LinkTargetURL, "https://a.example")
	require.NoError(t, err)
	_, err = svc.CreateLink(ctx, "Other", svc.RootID(), types.LinkTargetURL, "https://b.example")
	require.NoError(t, err)

	newName := "Renamed"
	newTarget := "https://c.example"
	updated, err := svc.UpdateLink(ctx, link.ID, types.UpdateLinkRequest{Name: &newName, Target: &newTarget})
	require.NoError(t, err)
	assert.Equal(t, "Renamed.lnk", updated.Name)
	assert.Equal(t, "https://c.example", updated.Target)

	collision := "Other"
	_, err = svc.UpdateLink(ctx, link.ID, types.UpdateLinkRequest{Name: &collision})
	assert.Equal(t, CodeNameCollision, CodeOf(err))

	// Updating without a rename never collides with itself
	_, err = svc.UpdateLink(ctx, link.ID, types.UpdateLinkRequest{Target: &newTarget})
	require.NoError(t, err)

	file, err := svc.CreateFile(ctx, "f.txt", svc.RootID(), "", "")
	require.NoError(t, err)
	_, err = svc.UpdateLink(ctx, file.ID, types.UpdateLinkRequest{Target: &newTarget})
	assert.Equal(t, CodeInvalidLinkTarget, CodeOf(err))
}

func TestMimeSniffing(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	text, err := svc.CreateFile(ctx, "a.txt", svc.RootID(), "plain words", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text.MimeType, "text/plain"), text.MimeType)

	empty, err := svc.CreateFile(ctx, "b.txt", svc.RootID(), "", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(empty.MimeType, "text/plain"), empty.MimeType)

	explicit, err := svc.CreateFile(ctx, "c.bin", svc.RootID(), "data", "application/x-custom")
	require.NoError(t, err)
	assert.Equal(t, "application/x-custom", explicit.MimeType)
}

func TestChangeEvents(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	var events []Event
	svc.Subscribe(func(e Event) {
		events = append(events, e)
	})

	dir, err := svc.CreateDirectory(ctx, "Docs", svc.RootID())
	require.NoError(t, err)
	_, err = svc.RenameEntity(ctx, dir.ID, "Documents2")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteEntity(ctx, dir.ID))

	require.Len(t, events, 3)
	assert.Equal(t, "create_directory", events[0].Op)
	assert.Equal(t, dir.ID, events[0].EntityID)
	assert.Equal(t, "rename", events[1].Op)
	assert.Equal(t, "delete", events[2].Op)

	// Failed operations publish nothing
	_, err = svc.CreateDirectory(ctx, "x", "dir_missing")
	require.Error(t, err)
	assert.Len(t, events, 3)
}

// faultStore wraps a working store and fails selected calls
type faultStore struct {
	storage.Store
	failPut bool
	failGet map[string]bool
}

func (f *faultStore) Put(ctx context.Context, entity *types.Entity) error {
	if f.failPut {
		return errors.New("disk full")
	}
	return f.Store.Put(ctx, entity)
}

func (f *faultStore) Get(ctx context.Context, id string) (*types.Entity, error) {
	if f.failGet[id] {
		return nil, errors.New("read error")
	}
	return f.Store.Get(ctx, id)
}

func TestStorageFaultSurfaces(t *testing.T) {
	ctx := context.Background()
	inner := storage.NewMemory()
	fault := &faultStore{Store: inner, failGet: map[string]bool{}}

	svc := NewService(fault, nil)
	require.NoError(t, svc.Initialize(ctx))

	fault.failPut = true
	_, err := svc.CreateFile(ctx, "x.txt", svc.RootID(), "", "")
	assert.Equal(t, CodeStorageFault, CodeOf(err))
	fault.failPut = false

	file, err := svc.CreateFile(ctx, "x.txt", svc.RootID(), "", "")
	require.NoError(t, err)

	fault.failGet[file.ID] = true
	_, err = svc.GetEntity(ctx, file.ID)
	assert.Equal(t, CodeStorageFault, CodeOf(err))
}

func TestListDirectorySorted(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	dir, err := svc.CreateDirectory(ctx, "Docs", svc.RootID())
	require.NoError(t, err)
	for _, name := range []string{"zeta.txt", "alpha.txt", "mid.txt"} {
		_, err := svc.CreateFile(ctx, name, dir.ID, "", "")
		require.NoError(t, err)
	}

	children, err := svc.ListDirectory(ctx, dir.ID)
	require.NoError(t, err)
	require.Len(t, children, 3)
	assert.Equal(t, "alpha.txt", children[0].Name)
	assert.Equal(t, "mid.txt", children[1].Name)
	assert.Equal(t, "zeta.txt", children[2].Name)

	_, err = svc.ListDirectory(ctx, "dir_missing")
	assert.Equal(t, CodeEntityNotFound, CodeOf(err))
}
