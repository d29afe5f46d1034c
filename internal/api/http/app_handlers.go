package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/carlhannes/hannes-os/internal/shared/types"
)

// ListApps lists the installed applications
func (h *Handlers) ListApps(c *gin.Context) {
	ok(c, gin.H{
		"apps":  h.registry.ListApps(),
		"stats": h.registry.Stats(),
	})
}

// GetApp returns a single application by id
func (h *Handlers) GetApp(c *gin.Context) {
	app, found := h.registry.GetAppByID(c.Param("id"))
	if !found {
		notFound(c, "application not found")
		return
	}
	ok(c, gin.H{"app": app})
}

// OpenEntity opens an entity by id or path, launching the right
// application window
func (h *Handlers) OpenEntity(c *gin.Context) {
	var req types.OpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var (
		windowID string
		err      error
	)
	switch {
	case req.EntityID != "":
		windowID, err = h.opener.OpenEntity(c.Request.Context(), req.EntityID)
	case req.Path != "":
		windowID, err = h.opener.OpenEntityByPath(c.Request.Context(), req.Path)
	default:
		badRequest(c, errors.New("entity_id or path is required"))
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	window, _ := h.windows.Get(windowID)
	ok(c, gin.H{"window": window})
}

// LaunchApp launches an application directly, with optional prop
// overrides in the request body
func (h *Handlers) LaunchApp(c *gin.Context) {
	var overrides map[string]interface{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&overrides); err != nil {
			badRequest(c, err)
			return
		}
	}

	windowID, err := h.opener.OpenApp(c.Param("id"), overrides)
	if err != nil {
		fail(c, err)
		return
	}

	window, _ := h.windows.Get(windowID)
	ok(c, gin.H{"window": window})
}
