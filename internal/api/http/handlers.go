package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carlhannes/hannes-os/internal/domain/opener"
	"github.com/carlhannes/hannes-os/internal/domain/registry"
	"github.com/carlhannes/hannes-os/internal/domain/vfs"
	"github.com/carlhannes/hannes-os/internal/domain/window"
	"github.com/carlhannes/hannes-os/internal/infrastructure/logging"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	fs       *vfs.Service
	windows  *window.Manager
	registry *registry.Registry
	opener   *opener.Opener
	log      *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(
	fs *vfs.Service,
	windows *window.Manager,
	reg *registry.Registry,
	open *opener.Opener,
	log *logging.Logger,
) *Handlers {
	if log == nil {
		log = logging.NewNop()
	}
	return &Handlers{
		fs:       fs,
		windows:  windows,
		registry: reg,
		opener:   open,
		log:      log,
	}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Desktop Service (Go)",
		"version": "0.1.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	status := "healthy"
	fsStats, err := h.fs.Stats(c.Request.Context())
	if err != nil {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       status,
		"file_system":  fsStats,
		"windows":      h.windows.Stats(),
		"app_registry": h.registry.Stats(),
	})
}
