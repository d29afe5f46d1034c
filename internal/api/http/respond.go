package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carlhannes/hannes-os/internal/domain/vfs"
	"github.com/carlhannes/hannes-os/internal/shared/types"
)

// statusFor maps a domain error to an HTTP status
func statusFor(err error) int {
	switch vfs.CodeOf(err) {
	case vfs.CodeEntityNotFound, vfs.CodeParentNotFound:
		return http.StatusNotFound
	case vfs.CodeNameCollision:
		return http.StatusConflict
	case vfs.CodeNotADirectory, vfs.CodeInvalidLinkTarget:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func ok(c *gin.Context, data map[string]interface{}) {
	c.JSON(http.StatusOK, types.Ok(data))
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), types.Fail(err.Error()))
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, types.Fail(err.Error()))
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, types.Fail(message))
}
