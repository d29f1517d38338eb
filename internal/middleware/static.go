package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// HideDotfiles answers 404 for any path with a segment starting with a dot.
// Uploads in progress live in dotfiles next to the served assets.
func HideDotfiles() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, segment := range strings.Split(c.Request.URL.Path, "/") {
			if strings.HasPrefix(segment, ".") {
				c.AbortWithStatus(http.StatusNotFound)
				return
			}
		}
		c.Next()
	}
}
