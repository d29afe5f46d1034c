package http

import (
	"github.com/gin-gonic/gin"

	"github.com/carlhannes/hannes-os/internal/shared/types"
	"github.com/carlhannes/hannes-os/internal/shared/utils"
)

// InitFS (re)initializes the file system. Idempotent: calling it on a
// running service is a no-op that reports current state.
func (h *Handlers) InitFS(c *gin.Context) {
	if err := h.fs.Initialize(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"root_id": h.fs.RootID()})
}

// GetEntity returns a single entity by id
func (h *Handlers) GetEntity(c *gin.Context) {
	entity, err := h.fs.GetEntity(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"entity": entity})
}

// GetEntityByPath resolves an absolute path to an entity
func (h *Handlers) GetEntityByPath(c *gin.Context) {
	entity, err := h.fs.GetEntityByPath(c.Request.Context(), c.Param("path"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"entity": entity})
}

// ListDirectory returns the children of a directory
func (h *Handlers) ListDirectory(c *gin.Context) {
	children, err := h.fs.ListDirectory(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"entities": children})
}

// GetEntityPath returns the absolute path of an entity
func (h *Handlers) GetEntityPath(c *gin.Context) {
	path, err := h.fs.GetPath(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"path": path})
}

// CreateDirectory creates a directory
func (h *Handlers) CreateDirectory(c *gin.Context) {
	var req types.CreateDirectoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateName(req.Name); err != nil {
		badRequest(c, err)
		return
	}

	entity, err := h.fs.CreateDirectory(c.Request.Context(), req.Name, req.ParentID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"entity": entity})
}

// CreateFile creates a file
func (h *Handlers) CreateFile(c *gin.Context) {
	var req types.CreateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateName(req.Name); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateContent(req.Content); err != nil {
		badRequest(c, err)
		return
	}

	entity, err := h.fs.CreateFile(c.Request.Context(), req.Name, req.ParentID, req.Content, req.MimeType)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"entity": entity})
}

// CreateLink creates a link
func (h *Handlers) CreateLink(c *gin.Context) {
	var req types.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateName(req.Name); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateTarget(req.Target); err != nil {
		badRequest(c, err)
		return
	}

	entity, err := h.fs.CreateLink(c.Request.Context(), req.Name, req.ParentID, req.TargetType, req.Target)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"entity": entity})
}

// UpdateLink partially updates a link
func (h *Handlers) UpdateLink(c *gin.Context) {
	var req types.UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	entity, err := h.fs.UpdateLink(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"entity": entity})
}

// UpdateFileContent replaces a file's content
func (h *Handlers) UpdateFileContent(c *gin.Context) {
	var req types.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateContent(req.Content); err != nil {
		badRequest(c, err)
		return
	}

	entity, err := h.fs.UpdateFileContent(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"entity": entity})
}

// RenameEntity renames an entity
func (h *Handlers) RenameEntity(c *gin.Context) {
	var req types.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateName(req.Name); err != nil {
		badRequest(c, err)
		return
	}

	entity, err := h.fs.RenameEntity(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"entity": entity})
}

// MoveEntity reparents an entity
func (h *Handlers) MoveEntity(c *gin.Context) {
	var req types.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	entity, err := h.fs.MoveEntity(c.Request.Context(), c.Param("id"), req.ParentID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"entity": entity})
}

// UpdateEntityMetadata shallow-merges a metadata patch
func (h *Handlers) UpdateEntityMetadata(c *gin.Context) {
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	entity, err := h.fs.UpdateEntityMetadata(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"entity": entity})
}

// DeleteEntity removes an entity and its descendants
func (h *Handlers) DeleteEntity(c *gin.Context) {
	id := c.Param("id")
	if err := h.fs.DeleteEntity(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"id": id})
}
