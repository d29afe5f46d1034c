package types

// Position represents window geometry on the desktop
type Position struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// MinimizeAnimation carries transient geometry handed off to the
// presentation layer so it can animate a minimize. Cleared by the
// caller once the animation has completed.
type MinimizeAnimation struct {
	Start  Position `json:"start_position"`
	Target Position `json:"target_position"`
}

// Window represents one open window. Owned by the window manager for
// the lifetime of the process run; never persisted.
type Window struct {
	ID                string                 `json:"id"`
	Title             string                 `json:"title"`
	Subtitle          string                 `json:"subtitle,omitempty"`
	Icon              string                 `json:"icon,omitempty"`
	Component         string                 `json:"component"`
	Position          Position               `json:"position"`
	PreviousPosition  *Position              `json:"previous_position,omitempty"` // pre-maximize snapshot
	IsActive          bool                   `json:"is_active"`
	IsMinimized       bool                   `json:"is_minimized"`
	IsMaximized       bool                   `json:"is_maximized"`
	ZIndex            int                    `json:"z_index"`
	Props             map[string]interface{} `json:"props,omitempty"`
	MinimizeAnimation *MinimizeAnimation     `json:"minimize_animation,omitempty"`
	Thumbnail         string                 `json:"thumbnail,omitempty"` // opaque image payload captured at minimize
}

// Clone returns a copy safe to hand to callers
func (w *Window) Clone() *Window {
	c := *w
	if w.PreviousPosition != nil {
		pp := *w.PreviousPosition
		c.PreviousPosition = &pp
	}
	if w.MinimizeAnimation != nil {
		ma := *w.MinimizeAnimation
		c.MinimizeAnimation = &ma
	}
	if w.Props != nil {
		c.Props = make(map[string]interface{}, len(w.Props))
		for k, v := range w.Props {
			c.Props[k] = v
		}
	}
	return &c
}

// WindowSpec is the caller-supplied subset of Window used to open one.
// System-assigned fields (id, activation, z-index, thumbnail) are omitted.
type WindowSpec struct {
	Title     string                 `json:"title"`
	Subtitle  string                 `json:"subtitle,omitempty"`
	Icon      string                 `json:"icon,omitempty"`
	Component string                 `json:"component"`
	Position  Position               `json:"position"`
	Props     map[string]interface{} `json:"props,omitempty"`
}

// WindowStats contains window manager statistics
type WindowStats struct {
	TotalWindows     int     `json:"total_windows"`
	MinimizedWindows int     `json:"minimized_windows"`
	ActiveWindowID   *string `json:"active_window_id,omitempty"`
}
