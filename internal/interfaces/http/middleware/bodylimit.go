package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swiftsupply/backend/internal/interfaces/http/dto"
)

// RouteLimit overrides the body limit of one route, matched on the gin route
// pattern (for example "/api/v1/suppliers/upload-image")
type RouteLimit struct {
	Path     string
	MaxBytes int64
}

// BodyLimit rejects requests declaring a body over maxBytes and caps the
// reader of the rest. A non-positive limit disables the check.
func BodyLimit(maxBytes int64, overrides ...RouteLimit) gin.HandlerFunc {
	perRoute := make(map[string]int64, len(overrides))
	for _, o := range overrides {
		perRoute[o.Path] = o.MaxBytes
	}
	return func(c *gin.Context) {
		limit := maxBytes
		if override, ok := perRoute[c.FullPath()]; ok {
			limit = override
		}
		if limit <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRequestTooLarge,
				"Request body exceeds maximum allowed size",
				getRequestID(c),
			))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
