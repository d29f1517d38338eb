package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/portfolio/backend/internal/mocks"
	"github.com/pageza/portfolio/backend/internal/service"
)

var (
	pdfContent = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF\n")
	pngContent = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"resume.pdf", "resume.pdf"},
		{"my resume (final).pdf", "my_resume__final_.pdf"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\cert.png`, "cert.png"},
		{"résumé.pdf", "r_sum_.pdf"},
		{"", "file"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, service.SanitizeFilename(tt.in))
		})
	}
}

func TestStoredName(t *testing.T) {
	ts := time.UnixMilli(1700000000123)
	assert.Equal(t, "1700000000123-my_cv.pdf", service.StoredName(ts, "my cv.pdf"))
}

func TestUploadSaveLocal(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "attached_assets")
	svc := service.NewUploadService(service.NewLocalStore(dir), 1<<20)

	file, err := svc.Save(context.Background(), "My Resume.pdf", bytes.NewReader(pdfContent))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Regexp(t, `^\d+-My_Resume\.pdf$`, file.Name)
	assert.Equal(t, "/attached_assets/"+file.Name, file.URL)

	data, err := os.ReadFile(filepath.Join(dir, file.Name))
	require.NoError(t, err)
	assert.Equal(t, pdfContent, data)
}

func TestUploadRejectsInvalidType(t *testing.T) {
	store := new(mocks.MockFileStore)
	svc := service.NewUploadService(store, 1<<20)

	_, err := svc.Save(context.Background(), "notes.pdf", bytes.NewReader([]byte("just some plain text")))
	require.Error(t, err)

	var uploadErr *service.UploadError
	require.True(t, errors.As(err, &uploadErr))
	assert.Equal(t, service.ErrInvalidFileType, uploadErr)
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	dir := t.TempDir()
	svc := service.NewUploadService(service.NewLocalStore(dir), 64)

	content := append(append([]byte{}, pngContent...), make([]byte, 4096)...)
	_, err := svc.Save(context.Background(), "big.png", bytes.NewReader(content))
	assert.ErrorIs(t, err, service.ErrFileTooLarge)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial file is left behind")
}

func TestUploadStoreFailure(t *testing.T) {
	store := new(mocks.MockFileStore)
	store.On("Put", mock.Anything, mock.AnythingOfType("string"), "image/png", mock.Anything).
		Return("", errors.New("disk full"))

	svc := service.NewUploadService(store, 1<<20)
	_, err := svc.Save(context.Background(), "cert.png", bytes.NewReader(pngContent))
	require.Error(t, err)

	var uploadErr *service.UploadError
	assert.False(t, errors.As(err, &uploadErr))
	store.AssertExpectations(t)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestLocalStoreCleansUpOnError(t *testing.T) {
	dir := t.TempDir()
	store := service.NewLocalStore(dir)

	body := io.MultiReader(bytes.NewReader(pdfContent), failingReader{})
	_, err := store.Put(context.Background(), "broken.pdf", "application/pdf", body)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	store := service.NewLocalStore(dir)

	for i := 0; i < 2; i++ {
		url, err := store.Put(context.Background(), "a.pdf", "application/pdf", bytes.NewReader(pdfContent))
		require.NoError(t, err)
		assert.Equal(t, "/attached_assets/a.pdf", url)
	}
	assert.DirExists(t, dir)
}
