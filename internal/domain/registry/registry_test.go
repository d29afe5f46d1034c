package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlhannes/hannes-os/internal/shared/types"
)

func TestBuiltinsSeeded(t *testing.T) {
	r := NewRegistry()

	for _, id := range []string{AppFinder, AppNotepad, AppBrowser, AppImageViewer, AppPhotoBooth, AppSettings} {
		app, ok := r.GetAppByID(id)
		require.True(t, ok, id)
		assert.Equal(t, id, app.ID)
		assert.NotEmpty(t, app.Name)
		assert.NotEmpty(t, app.Component)
	}

	_, ok := r.GetAppByID("no-such-app")
	assert.False(t, ok)
}

func TestListAppsStableOrder(t *testing.T) {
	r := NewRegistry()

	first := r.ListApps()
	second := r.ListApps()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestRegisterIgnoresDuplicates(t *testing.T) {
	r := NewRegistry()
	before := len(r.ListApps())

	r.Register(types.AppInfo{ID: AppNotepad, Name: "Impostor", Component: "other"})
	assert.Len(t, r.ListApps(), before)

	original, _ := r.GetAppByID(AppNotepad)
	assert.NotEqual(t, "Impostor", original.Name)

	r.Register(types.AppInfo{ID: "custom", Name: "Custom", Component: "custom"})
	assert.Len(t, r.ListApps(), before+1)
}

func TestGetAppsForExtension(t *testing.T) {
	r := NewRegistry()

	text := r.GetAppsForExtension("notes.txt")
	require.NotEmpty(t, text)
	assert.Equal(t, AppNotepad, text[0].ID)

	image := r.GetAppsForExtension("photo.PNG")
	require.NotEmpty(t, image)
	assert.Equal(t, AppImageViewer, image[0].ID)

	web := r.GetAppsForExtension("page.html")
	require.NotEmpty(t, web)
	assert.Equal(t, AppBrowser, web[0].ID)

	// Notepad is always available as a fallback handler
	unknown := r.GetAppsForExtension("blob.xyz")
	require.NotEmpty(t, unknown)
	assert.Equal(t, AppNotepad, unknown[0].ID)

	// And listed once, not twice, for its own extensions
	for _, handlers := range [][]types.AppInfo{text, image, web} {
		seen := map[string]int{}
		for _, app := range handlers {
			seen[app.ID]++
		}
		assert.LessOrEqual(t, seen[AppNotepad], 1)
	}
}

func TestRegisterExtension(t *testing.T) {
	r := NewRegistry()
	r.Register(types.AppInfo{ID: "mdviewer", Name: "Markdown Viewer", Component: "mdviewer"})
	r.RegisterExtension(".MD", "mdviewer")

	handlers := r.GetAppsForExtension("readme.md")
	ids := make([]string, 0, len(handlers))
	for _, app := range handlers {
		ids = append(ids, app.ID)
	}
	assert.Contains(t, ids, "mdviewer")
	// The builtin default keeps first place
	assert.Equal(t, AppNotepad, ids[0])

	// Re-registering the same pair is a no-op
	r.RegisterExtension(".md", "mdviewer")
	assert.Len(t, r.GetAppsForExtension("readme.md"), len(handlers))
}

func TestStats(t *testing.T) {
	r := NewRegistry()
	stats := r.Stats()
	assert.Equal(t, len(r.ListApps()), stats.TotalApps)
	assert.Greater(t, stats.Extensions, 0)
}
