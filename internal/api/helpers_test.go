package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/pageza/portfolio/backend/config"
	"github.com/pageza/portfolio/backend/internal/router"
	"github.com/pageza/portfolio/backend/internal/service"
	"github.com/pageza/portfolio/backend/internal/storage"
	"github.com/pageza/portfolio/backend/internal/testhelpers"
	"github.com/pageza/portfolio/backend/internal/types"
)

var (
	pdfContent = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF\n")
	pngContent = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router    *gin.Engine
	store     *storage.DatabaseStorage
	auth      *service.AuthService
	uploadDir string
	token     string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := storage.NewDatabaseStorage(testhelpers.NewSQLiteDB(t))
	authSvc := service.NewAuthService(store, "test-secret")
	uploadDir := filepath.Join(t.TempDir(), "attached_assets")
	cfg := &config.Config{CORSOrigins: []string{"http://localhost:5173"}}

	r := router.SetupRouter(router.Dependencies{
		Config:    cfg,
		Store:     store,
		Auth:      authSvc,
		Uploads:   service.NewUploadService(service.NewLocalStore(uploadDir), config.MaxUploadSize),
		StaticDir: uploadDir,
	})

	ctx := context.Background()
	require.NoError(t, authSvc.EnsureAdmin(ctx, "admin", "password123"))
	token, _, err := authSvc.Login(ctx, types.Credentials{Username: "admin", Password: "password123"})
	require.NoError(t, err)

	return &testEnv{
		router:    r,
		store:     store,
		auth:      authSvc,
		uploadDir: uploadDir,
		token:     token,
	}
}

// PerformRequest sends a JSON request; a non-empty token is sent as a bearer token.
func PerformRequest(r http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// PerformUpload sends a multipart request with one file under field.
func PerformUpload(t *testing.T, r http.Handler, path, field, filename string, content []byte, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("note", "no file here"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// envelope mirrors types.Response with the payload kept raw.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  string          `json:"errors"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}
