package api_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/portfolio/backend/internal/api"
	"github.com/pageza/portfolio/backend/internal/mocks"
)

func TestHealth(t *testing.T) {
	env := setupTestEnv(t)

	w := PerformRequest(env.router, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"status":"ok","database":"ok"}}`, w.Body.String())
}

func TestHealthDatabaseDown(t *testing.T) {
	store := new(mocks.MockStorage)
	store.On("Ping", mock.Anything).Return(errors.New("connection refused"))

	r := gin.New()
	r.GET("/api/health", api.NewHealthHandler(store).Health)

	w := PerformRequest(r, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"success":false,"data":{"status":"degraded","database":"unavailable"}}`, w.Body.String())
}
