package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/portfolio/backend/internal/storage"
	"github.com/pageza/portfolio/backend/internal/types"
)

type HealthHandler struct {
	store storage.Storage
}

func NewHealthHandler(store storage.Storage) *HealthHandler {
	return &HealthHandler{store: store}
}

type healthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, types.Response{
			Success: false,
			Data:    healthStatus{Status: "degraded", Database: "unavailable"},
		})
		return
	}

	respond(c, http.StatusOK, "", healthStatus{Status: "ok", Database: "ok"})
}
