package registry

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/carlhannes/hannes-os/internal/shared/types"
)

// Well-known application ids
const (
	AppFinder      = "finder"
	AppNotepad     = "notepad"
	AppBrowser     = "browser"
	AppImageViewer = "imageviewer"
	AppPhotoBooth  = "photobooth"
	AppSettings    = "settings"
)

// Registry holds the application catalog and extension handlers
type Registry struct {
	mu         sync.RWMutex
	apps       map[string]types.AppInfo
	order      []string            // registration order for stable listings
	extensions map[string][]string // ".txt" -> ordered app ids, first is default
}

// NewRegistry creates a registry seeded with the bundled applications
func NewRegistry() *Registry {
	r := &Registry{
		apps:       make(map[string]types.AppInfo),
		extensions: make(map[string][]string),
	}
	r.seedBuiltins()
	return r
}

// Register adds or replaces an application in the catalog
func (r *Registry) Register(app types.AppInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.apps[app.ID]; !exists {
		r.order = append(r.order, app.ID)
	}
	r.apps[app.ID] = app
}

// RegisterExtension maps a file extension (with leading dot) to an app.
// Earlier registrations win the default-handler slot.
func (r *Registry) RegisterExtension(ext, appID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ext = strings.ToLower(ext)
	for _, existing := range r.extensions[ext] {
		if existing == appID {
			return
		}
	}
	r.extensions[ext] = append(r.extensions[ext], appID)
}

// ListApps returns all applications in registration order
func (r *Registry) ListApps() []types.AppInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.AppInfo, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.apps[id])
	}
	return out
}

// GetAppByID retrieves an application by id
func (r *Registry) GetAppByID(id string) (types.AppInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	app, ok := r.apps[id]
	return app, ok
}

// GetAppsForExtension resolves the applications able to open a file,
// ordered with the default handler first. The text editor is always a
// last-resort handler so every file opens with something.
func (r *Registry) GetAppsForExtension(filename string) []types.AppInfo {
	ext := strings.ToLower(filepath.Ext(filename))

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []types.AppInfo
	seen := make(map[string]bool)
	for _, appID := range r.extensions[ext] {
		if app, ok := r.apps[appID]; ok && !seen[appID] {
			out = append(out, app)
			seen[appID] = true
		}
	}
	if !seen[AppNotepad] {
		if fallback, ok := r.apps[AppNotepad]; ok {
			out = append(out, fallback)
		}
	}
	return out
}

// Stats returns registry statistics
func (r *Registry) Stats() types.RegistryStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return types.RegistryStats{
		TotalApps:  len(r.apps),
		Extensions: len(r.extensions),
	}
}

func (r *Registry) seedBuiltins() {
	builtins := []types.AppInfo{
		{
			ID:          AppFinder,
			Name:        "Finder",
			Icon:        "📁",
			Component:   "finder",
			DefaultSize: types.Size{Width: 900, Height: 600},
		},
		{
			ID:          AppNotepad,
			Name:        "Notepad",
			Icon:        "📝",
			Component:   "notepad",
			DefaultSize: types.Size{Width: 700, Height: 500},
		},
		{
			ID:          AppBrowser,
			Name:        "Browser",
			Icon:        "🌐",
			Component:   "browser",
			DefaultSize: types.Size{Width: 1024, Height: 700},
			DefaultProps: map[string]interface{}{
				"initialUrl": "https://example.com",
			},
		},
		{
			ID:          AppImageViewer,
			Name:        "Image Viewer",
			Icon:        "🖼️",
			Component:   "imageviewer",
			DefaultSize: types.Size{Width: 800, Height: 600},
		},
		{
			ID:          AppPhotoBooth,
			Name:        "Photo Booth",
			Icon:        "📸",
			Component:   "photobooth",
			DefaultSize: types.Size{Width: 640, Height: 520},
		},
		{
			ID:          AppSettings,
			Name:        "Settings",
			Icon:        "⚙️",
			Component:   "settings",
			DefaultSize: types.Size{Width: 640, Height: 480},
		},
	}
	for _, app := range builtins {
		r.Register(app)
	}

	textExts := []string{".txt", ".md", ".json", ".log", ".csv"}
	for _, ext := range textExts {
		r.RegisterExtension(ext, AppNotepad)
	}
	imageExts := []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".bmp"}
	for _, ext := range imageExts {
		r.RegisterExtension(ext, AppImageViewer)
	}
	webExts := []string{".html", ".htm", ".url"}
	for _, ext := range webExts {
		r.RegisterExtension(ext, AppBrowser)
	}
}
