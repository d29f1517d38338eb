package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/portfolio/backend/config"
	"github.com/pageza/portfolio/backend/internal/database"
	"github.com/pageza/portfolio/backend/internal/middleware"
	"github.com/pageza/portfolio/backend/internal/models"
	"github.com/pageza/portfolio/backend/internal/router"
	"github.com/pageza/portfolio/backend/internal/service"
	"github.com/pageza/portfolio/backend/internal/storage"
	"github.com/pageza/portfolio/backend/internal/testhelpers"
	"github.com/pageza/portfolio/backend/internal/types"
)

type stack struct {
	router *gin.Engine
	store  *storage.DatabaseStorage
	token  string
}

func setupStack(t *testing.T) *stack {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	db := testhelpers.SetupTestDatabase(t)
	store := storage.NewDatabaseStorage(db)
	require.NoError(t, store.Initialize(ctx))

	rdb, err := database.NewRedisClient(testhelpers.RedisURL(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	authSvc := service.NewAuthService(store, "integration-secret")
	require.NoError(t, authSvc.EnsureAdmin(ctx, "admin", "password123"))
	token, _, err := authSvc.Login(ctx, types.Credentials{Username: "admin", Password: "password123"})
	require.NoError(t, err)

	uploadDir := filepath.Join(t.TempDir(), "attached_assets")
	r := router.SetupRouter(router.Dependencies{
		Config:         &config.Config{CORSOrigins: []string{"http://localhost:5173"}},
		Store:          store,
		Auth:           authSvc,
		Uploads:        service.NewUploadService(service.NewLocalStore(uploadDir), config.MaxUploadSize),
		Cache:          middleware.NewResponseCache(rdb, 0),
		ContactLimiter: middleware.NewContactRateLimiter(rdb, 2),
		StaticDir:      uploadDir,
	})

	return &stack{router: r, store: store, token: token}
}

func (s *stack) do(method, path string, body interface{}, auth bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.10:40000"
	if auth {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	require.True(t, resp.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(resp.Data, v))
}

func TestCertificateFlowWithCache(t *testing.T) {
	s := setupStack(t)

	w := s.do(http.MethodGet, "/api/certificates", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

	w = s.do(http.MethodGet, "/api/certificates", nil, false)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))

	w = s.do(http.MethodPost, "/api/certificates", map[string]string{
		"title":       "Prompt Engineering",
		"issuer":      "DeepLearning.AI",
		"date":        "2024",
		"description": "Prompt engineering for developers",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Certificate
	decodeData(t, w, &created)

	w = s.do(http.MethodGet, "/api/certificates", nil, false)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"), "writes invalidate the list")
	var certs []models.Certificate
	decodeData(t, w, &certs)
	require.Len(t, certs, 1)
	assert.Equal(t, created.ID, certs[0].ID)

	path := fmt.Sprintf("/api/certificates/%d", created.ID)
	w = s.do(http.MethodPut, path, map[string]string{"credentialUrl": "https://example.com/c/1"}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, path, nil, false)
	var fetched models.Certificate
	decodeData(t, w, &fetched)
	require.NotNil(t, fetched.CredentialURL)
	assert.Equal(t, "https://example.com/c/1", *fetched.CredentialURL)

	w = s.do(http.MethodDelete, path, nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, path, nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContactRateLimit(t *testing.T) {
	s := setupStack(t)
	body := map[string]string{
		"name":    "Ann",
		"email":   "ann@example.com",
		"subject": "Hello",
		"message": "Let's build something together.",
	}

	for i := 0; i < 2; i++ {
		w := s.do(http.MethodPost, "/api/contact", body, false)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	w := s.do(http.MethodPost, "/api/contact", body, false)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	messages, err := s.store.GetContactMessages(context.Background())
	require.NoError(t, err)
	assert.Len(t, messages, 2)
}

func TestProfileSeedAndUpdate(t *testing.T) {
	s := setupStack(t)

	w := s.do(http.MethodGet, "/api/profile", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	var profile models.ProfileSummary
	decodeData(t, w, &profile)
	assert.Equal(t, storage.DefaultProfile.Title, profile.Title)

	w = s.do(http.MethodPut, fmt.Sprintf("/api/profile/%d", profile.ID), map[string]string{"title": "New Title"}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/profile", nil, false)
	decodeData(t, w, &profile)
	assert.Equal(t, "New Title", profile.Title)
}

func TestPostgresUniqueUsername(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	store := storage.NewDatabaseStorage(db)
	ctx := context.Background()

	_, err := store.CreateUser(ctx, &models.User{Username: "admin", PasswordHash: "x"})
	require.NoError(t, err)

	// Bypass the pre-check so the database constraint itself is exercised.
	err = db.Create(&models.User{Username: "admin", PasswordHash: "y"}).Error
	assert.Error(t, err)

	_, err = store.CreateUser(ctx, &models.User{Username: "admin", PasswordHash: "z"})
	assert.ErrorIs(t, err, storage.ErrConflict)
}

func TestMigrateDownAndUp(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, database.MigrateDown(ctx, sqlDB))
	assert.False(t, db.Migrator().HasTable("certificates"))

	require.NoError(t, database.MigrateUp(ctx, sqlDB))
	assert.True(t, db.Migrator().HasTable("certificates"))
	assert.NoError(t, database.MigrationStatus(ctx, sqlDB))
}
