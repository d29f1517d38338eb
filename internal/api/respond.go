package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/portfolio/backend/internal/middleware"
	"github.com/pageza/portfolio/backend/internal/types"
	"github.com/pageza/portfolio/backend/internal/validation"
)

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, types.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, types.Response{
		Success: false,
		Message: message,
	})
}

// invalid reports a malformed or rejected request body.
func invalid(c *gin.Context, err error) {
	detail := "Invalid request body"
	var verr *validation.Error
	if errors.As(err, &verr) {
		detail = verr.Message
	}
	c.JSON(http.StatusBadRequest, types.Response{
		Success: false,
		Message: "Validation error",
		Errors:  detail,
	})
}

// internalError logs err and answers with a generic message.
func internalError(c *gin.Context, message string, err error) {
	log.Printf("[%s] %s %s: %v", middleware.GetRequestID(c), c.Request.Method, c.Request.URL.Path, err)
	fail(c, http.StatusInternalServerError, message)
}

// bindAndValidate decodes the JSON body into v and checks its validate tags.
func bindAndValidate(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		invalid(c, err)
		return false
	}
	if err := validation.Struct(v); err != nil {
		invalid(c, err)
		return false
	}
	return true
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
