package window

import (
	"sync"

	"github.com/google/uuid"

	"github.com/carlhannes/hannes-os/internal/infrastructure/monitoring"
	"github.com/carlhannes/hannes-os/internal/shared/types"
)

// Geometry floors and chrome allowances
const (
	MinWidth  = 200
	MinHeight = 100

	menuBarHeight = 28
	dockHeight    = 80

	// Vertical drop applied when a minimize has no caller-supplied target
	minimizeDropOffset = 400

	defaultWidth  = 800
	defaultHeight = 600
)

// Manager owns the collection of open windows. All operations are
// synchronous in-memory state transitions.
type Manager struct {
	mu       sync.RWMutex
	windows  map[string]*types.Window
	order    []string // insertion order, deterministic tie-break
	nextZ    int
	viewport types.Size
	metrics  *monitoring.Metrics
}

// NewManager creates a window manager with the given viewport dimensions
func NewManager(viewportWidth, viewportHeight int) *Manager {
	return &Manager{
		windows:  make(map[string]*types.Window),
		viewport: types.Size{Width: viewportWidth, Height: viewportHeight},
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// SetViewport updates the desktop dimensions used for maximizing
func (m *Manager) SetViewport(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if width > 0 && height > 0 {
		m.viewport = types.Size{Width: width, Height: height}
	}
}

// OpenWindow creates a window from the spec, assigns it the top z-index
// and makes it the single active window. The id is returned immediately;
// content loading is the app component's own concern.
func (m *Manager) OpenWindow(spec types.WindowSpec) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	position := spec.Position
	if position.Width <= 0 {
		position.Width = defaultWidth
	}
	if position.Height <= 0 {
		position.Height = defaultHeight
	}
	if position.X == 0 && position.Y == 0 {
		// Cascade new windows so they do not stack exactly
		offset := 32 * (len(m.order) % 8)
		position.X = 80 + offset
		position.Y = menuBarHeight + 32 + offset
	}

	m.nextZ++
	m.deactivateAll()

	window := &types.Window{
		ID:        uuid.New().String(),
		Title:     spec.Title,
		Subtitle:  spec.Subtitle,
		Icon:      spec.Icon,
		Component: spec.Component,
		Position:  position,
		IsActive:  true,
		ZIndex:    m.nextZ,
		Props:     spec.Props,
	}

	m.windows[window.ID] = window
	m.order = append(m.order, window.ID)

	m.record("open")
	return window.ID
}

// Get retrieves a window by id
func (m *Manager) Get(id string) (*types.Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	window, ok := m.windows[id]
	if !ok {
		return nil, false
	}
	return window.Clone(), true
}

// List returns all windows in insertion order
func (m *Manager) List() []*types.Window {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*types.Window, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.windows[id].Clone())
	}
	return out
}

// CloseWindow removes a window. If it was active, the remaining visible
// window with the highest z-index is promoted.
func (m *Manager) CloseWindow(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	window, ok := m.windows[id]
	if !ok {
		return false
	}

	wasActive := window.IsActive
	delete(m.windows, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}

	if wasActive {
		m.promoteTopVisible()
	}

	m.record("close")
	return true
}

// ActivateWindow brings a window to the front: fresh top z-index, single
// active flag, un-minimized, stale thumbnail cleared.
func (m *Manager) ActivateWindow(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	ok := m.activate(id)
	if ok {
		m.record("activate")
	}
	return ok
}

// MinimizeWindow hides a window, recording animation hand-off geometry
// and an optional thumbnail, then promotes the next visible window.
func (m *Manager) MinimizeWindow(id string, target *types.Position, thumbnail string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	window, ok := m.windows[id]
	if !ok {
		return false
	}

	start := window.Position
	animTarget := types.Position{
		X:      start.X,
		Y:      start.Y + minimizeDropOffset,
		Width:  start.Width,
		Height: start.Height,
	}
	if target != nil {
		animTarget = *target
	}

	window.IsMinimized = true
	window.IsActive = false
	window.MinimizeAnimation = &types.MinimizeAnimation{Start: start, Target: animTarget}
	window.Thumbnail = thumbnail

	m.promoteTopVisible()

	m.record("minimize")
	return true
}

// RestoreWindow un-minimizes a window, clears its animation hand-off and
// thumbnail, and activates it.
func (m *Manager) RestoreWindow(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	window, ok := m.windows[id]
	if !ok {
		return false
	}

	window.IsMinimized = false
	window.MinimizeAnimation = nil
	window.Thumbnail = ""

	m.activate(id)
	m.record("restore")
	return true
}

// ToggleMaximize flips a window between maximized and restored. The
// pre-maximize geometry is snapshotted so restore puts the window back
// exactly where it was. Activation state is not changed here.
func (m *Manager) ToggleMaximize(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	window, ok := m.windows[id]
	if !ok {
		return false
	}

	if window.IsMaximized {
		if window.PreviousPosition != nil {
			window.Position = *window.PreviousPosition
		}
		window.PreviousPosition = nil
		window.IsMaximized = false
	} else {
		previous := window.Position
		window.PreviousPosition = &previous
		window.Position = types.Position{
			X:      0,
			Y:      menuBarHeight,
			Width:  m.viewport.Width,
			Height: m.viewport.Height - menuBarHeight - dockHeight,
		}
		window.IsMaximized = true
	}

	m.record("toggle_maximize")
	return true
}

// UpdatePosition moves a window during drag interaction
func (m *Manager) UpdatePosition(id string, x, y *int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	window, ok := m.windows[id]
	if !ok {
		return false
	}

	if x != nil {
		window.Position.X = *x
	}
	if y != nil {
		window.Position.Y = *y
	}
	return true
}

// UpdateSize resizes a window, enforcing the minimum geometry floor
func (m *Manager) UpdateSize(id string, width, height int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	window, ok := m.windows[id]
	if !ok {
		return false
	}

	if width < MinWidth {
		width = MinWidth
	}
	if height < MinHeight {
		height = MinHeight
	}
	window.Position.Width = width
	window.Position.Height = height
	return true
}

// ClearMinimizeAnimation drops the transient hand-off geometry once the
// caller's animation has completed. Idempotent.
func (m *Manager) ClearMinimizeAnimation(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	window, ok := m.windows[id]
	if !ok {
		return false
	}

	window.MinimizeAnimation = nil
	return true
}

// Stats returns window manager statistics
func (m *Manager) Stats() types.WindowStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := types.WindowStats{TotalWindows: len(m.windows)}
	for _, window := range m.windows {
		if window.IsMinimized {
			stats.MinimizedWindows++
		}
		if window.IsActive {
			id := window.ID
			stats.ActiveWindowID = &id
		}
	}
	return stats
}

// ----------------------------------------------------------------------------
// Internals. Called with m.mu held.
// ----------------------------------------------------------------------------

func (m *Manager) activate(id string) bool {
	window, ok := m.windows[id]
	if !ok {
		return false
	}

	m.nextZ++
	m.deactivateAll()

	window.IsActive = true
	window.IsMinimized = false
	window.Thumbnail = ""
	window.ZIndex = m.nextZ
	return true
}

func (m *Manager) deactivateAll() {
	for _, window := range m.windows {
		window.IsActive = false
	}
}

// promoteTopVisible activates the non-minimized window with the highest
// z-index. Insertion order breaks ties, though z-indexes are unique.
func (m *Manager) promoteTopVisible() {
	var top *types.Window
	for _, id := range m.order {
		window := m.windows[id]
		if window.IsMinimized {
			continue
		}
		if top == nil || window.ZIndex > top.ZIndex {
			top = window
		}
	}
	if top != nil {
		m.activate(top.ID)
	}
}

func (m *Manager) record(op string) {
	if m.metrics == nil {
		return
	}
	m.metrics.RecordWindowOperation(op)
	m.metrics.WindowsOpen.Set(float64(len(m.windows)))
}
