package http

import (
	"github.com/gin-gonic/gin"

	"github.com/carlhannes/hannes-os/internal/shared/types"
)

// ListWindows returns all open windows
func (h *Handlers) ListWindows(c *gin.Context) {
	ok(c, gin.H{
		"windows": h.windows.List(),
		"stats":   h.windows.Stats(),
	})
}

// OpenWindow opens a window from a caller-supplied spec
func (h *Handlers) OpenWindow(c *gin.Context) {
	var spec types.WindowSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		badRequest(c, err)
		return
	}

	id := h.windows.OpenWindow(spec)
	window, _ := h.windows.Get(id)
	ok(c, gin.H{"window": window})
}

// GetWindow returns a single window by id
func (h *Handlers) GetWindow(c *gin.Context) {
	window, found := h.windows.Get(c.Param("id"))
	if !found {
		notFound(c, "window not found")
		return
	}
	ok(c, gin.H{"window": window})
}

// CloseWindow closes a window
func (h *Handlers) CloseWindow(c *gin.Context) {
	id := c.Param("id")
	if !h.windows.CloseWindow(id) {
		notFound(c, "window not found")
		return
	}
	ok(c, gin.H{"id": id})
}

// ActivateWindow brings a window to the front
func (h *Handlers) ActivateWindow(c *gin.Context) {
	if !h.windows.ActivateWindow(c.Param("id")) {
		notFound(c, "window not found")
		return
	}
	h.windowResponse(c)
}

// MinimizeWindow minimizes a window
func (h *Handlers) MinimizeWindow(c *gin.Context) {
	var req types.MinimizeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}

	if !h.windows.MinimizeWindow(c.Param("id"), req.Target, req.Thumbnail) {
		notFound(c, "window not found")
		return
	}
	h.windowResponse(c)
}

// RestoreWindow un-minimizes and activates a window
func (h *Handlers) RestoreWindow(c *gin.Context) {
	if !h.windows.RestoreWindow(c.Param("id")) {
		notFound(c, "window not found")
		return
	}
	h.windowResponse(c)
}

// ToggleMaximize flips a window between maximized and restored
func (h *Handlers) ToggleMaximize(c *gin.Context) {
	if !h.windows.ToggleMaximize(c.Param("id")) {
		notFound(c, "window not found")
		return
	}
	h.windowResponse(c)
}

// UpdateWindowPosition moves a window
func (h *Handlers) UpdateWindowPosition(c *gin.Context) {
	var req types.GeometryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if !h.windows.UpdatePosition(c.Param("id"), req.X, req.Y) {
		notFound(c, "window not found")
		return
	}
	h.windowResponse(c)
}

// UpdateWindowSize resizes a window, subject to the minimum floor
func (h *Handlers) UpdateWindowSize(c *gin.Context) {
	var req types.GeometryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	width, height := 0, 0
	if req.Width != nil {
		width = *req.Width
	}
	if req.Height != nil {
		height = *req.Height
	}

	if !h.windows.UpdateSize(c.Param("id"), width, height) {
		notFound(c, "window not found")
		return
	}
	h.windowResponse(c)
}

// ClearMinimizeAnimation drops a window's animation hand-off geometry
func (h *Handlers) ClearMinimizeAnimation(c *gin.Context) {
	if !h.windows.ClearMinimizeAnimation(c.Param("id")) {
		notFound(c, "window not found")
		return
	}
	h.windowResponse(c)
}

// UpdateViewport updates the desktop dimensions used for maximizing
func (h *Handlers) UpdateViewport(c *gin.Context) {
	var req types.ViewportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	h.windows.SetViewport(req.Width, req.Height)
	ok(c, gin.H{"width": req.Width, "height": req.Height})
}

func (h *Handlers) windowResponse(c *gin.Context) {
	window, found := h.windows.Get(c.Param("id"))
	if !found {
		notFound(c, "window not found")
		return
	}
	ok(c, gin.H{"window": window})
}
