package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// sniffLen is how much of a file is inspected to detect its type.
const sniffLen = 3072

// AllowedContentTypes lists the file types accepted by the upload endpoints.
var AllowedContentTypes = []string{
	"application/pdf",
	"image/jpeg",
	"image/png",
	"image/gif",
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

// UploadError reports an upload rejected because of the file itself.
type UploadError struct {
	Message string
}

func (e *UploadError) Error() string {
	return e.Message
}

var (
	ErrInvalidFileType = &UploadError{Message: "Invalid file type. Only PDF, JPEG, PNG and GIF files are allowed."}
	ErrFileTooLarge    = &UploadError{Message: "File too large. Maximum size is 10MB."}
)

// StoredFile describes a file accepted by the upload service.
type StoredFile struct {
	Name        string
	URL         string
	ContentType string
}

type UploadService struct {
	store   FileStore
	maxSize int64
	now     func() time.Time
}

var _ IUploadService = (*UploadService)(nil)

func NewUploadService(store FileStore, maxSize int64) *UploadService {
	return &UploadService{
		store:   store,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Save checks the type and size of an uploaded file and hands it to the file store.
func (s *UploadService) Save(ctx context.Context, filename string, r io.Reader) (*StoredFile, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]

	mtype := mimetype.Detect(head)
	if !mimetype.EqualsAny(mtype.String(), AllowedContentTypes...) {
		return nil, ErrInvalidFileType
	}
	if int64(n) > s.maxSize {
		return nil, ErrFileTooLarge
	}

	body := &limitedReader{
		r:         io.MultiReader(bytes.NewReader(head), r),
		remaining: s.maxSize,
	}

	name := StoredName(s.now(), filename)
	url, err := s.store.Put(ctx, name, mtype.String(), body)
	if err != nil {
		return nil, err
	}

	return &StoredFile{
		Name:        name,
		URL:         url,
		ContentType: mtype.String(),
	}, nil
}

// StoredName builds the on-disk name of an upload: the millisecond timestamp
// followed by the sanitized base name of the client file name.
func StoredName(t time.Time, filename string) string {
	return fmt.Sprintf("%d-%s", t.UnixMilli(), SanitizeFilename(filename))
}

// SanitizeFilename strips any directory part and replaces characters outside
// [a-zA-Z0-9_.-] with underscores.
func SanitizeFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == ".." {
		return "file"
	}
	return unsafeChars.ReplaceAllString(base, "_")
}

// limitedReader fails with ErrFileTooLarge once more than remaining bytes are read.
type limitedReader struct {
	r         io.Reader
	remaining int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		return n, ErrFileTooLarge
	}
	return n, err
}
