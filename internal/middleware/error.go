package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/portfolio/backend/internal/types"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// InternalErrorMessage is the only detail a client sees for a server fault.
const InternalErrorMessage = "Internal Server Error"

// RequestID tags every request with an id, reusing the one sent by the client.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the id assigned by RequestID, or "-".
func GetRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return "-"
}

// ErrorHandler logs errors attached to the context and turns panics into a
// JSON 500 response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[%s] panic: %v\n%s", GetRequestID(c), err, debug.Stack())
				c.AbortWithStatusJSON(http.StatusInternalServerError, types.Response{
					Success: false,
					Message: InternalErrorMessage,
				})
			}
		}()

		c.Next()

		for _, e := range c.Errors {
			log.Printf("[%s] %s %s: %v", GetRequestID(c), c.Request.Method, c.Request.URL.Path, e.Err)
		}
		if len(c.Errors) > 0 && !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, types.Response{
				Success: false,
				Message: InternalErrorMessage,
			})
		}
	}
}
