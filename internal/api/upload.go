package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/portfolio/backend/internal/service"
	"github.com/pageza/portfolio/backend/internal/storage"
	"github.com/pageza/portfolio/backend/internal/types"
)

// Multipart field names
const (
	ResumeField           = "resume"
	CertificateImageField = "certificateImage"
)

// multipartOverhead is the allowance for multipart headers and boundaries on
// top of the file size limit.
const multipartOverhead = 1 << 20

type UploadHandler struct {
	store   storage.Storage
	uploads service.IUploadService
	maxSize int64
}

func NewUploadHandler(store storage.Storage, uploads service.IUploadService, maxSize int64) *UploadHandler {
	return &UploadHandler{
		store:   store,
		uploads: uploads,
		maxSize: maxSize,
	}
}

// UploadResume stores a resume and points the current profile at it.
func (h *UploadHandler) UploadResume(c *gin.Context) {
	file, ok := h.receive(c, ResumeField)
	if !ok {
		return
	}
	defer file.close()

	ctx := c.Request.Context()
	profile, err := h.store.GetProfileSummary(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		fail(c, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		internalError(c, "An error occurred while uploading the resume", err)
		return
	}

	stored, ok := h.save(c, file, "An error occurred while uploading the resume")
	if !ok {
		return
	}

	updated, err := h.store.UpdateProfileSummary(ctx, profile.ID, types.ProfilePatch{ResumeURL: &stored.URL})
	if err != nil {
		internalError(c, "An error occurred while uploading the resume", err)
		return
	}

	respond(c, http.StatusOK, "Resume uploaded successfully", types.ResumeUpload{
		ResumeURL: stored.URL,
		Profile:   updated,
	})
}

// UploadCertificateImage stores an image and returns its URL. Attaching it to
// a certificate is left to the caller.
func (h *UploadHandler) UploadCertificateImage(c *gin.Context) {
	file, ok := h.receive(c, CertificateImageField)
	if !ok {
		return
	}
	defer file.close()

	stored, ok := h.save(c, file, "An error occurred while uploading the certificate image")
	if !ok {
		return
	}

	respond(c, http.StatusOK, "Certificate image uploaded successfully", types.ImageUpload{ImageURL: stored.URL})
}

type receivedFile struct {
	name  string
	body  io.Reader
	close func()
}

func (h *UploadHandler) receive(c *gin.Context, field string) (*receivedFile, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxSize+multipartOverhead)

	header, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, http.StatusBadRequest, service.ErrFileTooLarge.Message)
			return nil, false
		}
		fail(c, http.StatusBadRequest, "No file uploaded")
		return nil, false
	}
	if header.Size > h.maxSize {
		fail(c, http.StatusBadRequest, service.ErrFileTooLarge.Message)
		return nil, false
	}

	f, err := header.Open()
	if err != nil {
		internalError(c, "An error occurred while reading the upload", err)
		return nil, false
	}
	return &receivedFile{
		name:  header.Filename,
		body:  f,
		close: func() { _ = f.Close() },
	}, true
}

func (h *UploadHandler) save(c *gin.Context, file *receivedFile, failure string) (*service.StoredFile, bool) {
	stored, err := h.uploads.Save(c.Request.Context(), file.name, file.body)
	if err != nil {
		var rejected *service.UploadError
		if errors.As(err, &rejected) {
			fail(c, http.StatusBadRequest, rejected.Message)
			return nil, false
		}
		internalError(c, failure, err)
		return nil, false
	}
	return stored, true
}
