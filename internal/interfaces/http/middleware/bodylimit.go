package middleware

import (
	"errors"
	"net/http"

	"github.com/erp/inventory/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// BodyTooLargeMessage is returned whenever a request body exceeds the limit
const BodyTooLargeMessage = "Request body exceeds maximum allowed size"

// BodyLimit rejects requests whose body is larger than maxBytes.
// Declared lengths are rejected up front; chunked bodies are capped while the
// handler reads them and surface as *http.MaxBytesError (see IsBodyTooLarge).
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.Set(ErrorCodeKey, dto.ErrCodeRequestTooLarge)
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRequestTooLarge,
				BodyTooLargeMessage,
				GetRequestID(c),
			))
			return
		}

		if c.Request.Body != nil && c.Request.Body != http.NoBody {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// IsBodyTooLarge reports whether err came from reading past the body limit
func IsBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
