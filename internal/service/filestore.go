package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pageza/portfolio/backend/config"
)

// PublicPrefix is the URL path under which uploaded files are served.
const PublicPrefix = "/attached_assets"

// LocalStore keeps uploads in a directory that is served statically.
type LocalStore struct {
	dir string
}

var _ FileStore = (*LocalStore)(nil)

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

// Dir returns the directory files are written to.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Put writes the file to a temporary name and renames it into place, so a
// failed upload never leaves a partial file behind.
func (s *LocalStore) Put(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	_, err = io.Copy(tmp, r)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	return PublicPrefix + "/" + name, nil
}

// S3API is the subset of the S3 client used by S3Store.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads files to an S3 bucket under the attached_assets/ prefix.
type S3Store struct {
	client  S3API
	bucket  string
	urlFunc func(key string) string
}

var _ FileStore = (*S3Store)(nil)

func NewS3Store(cfg *config.S3Config) *S3Store {
	return &S3Store{
		client:  cfg.Client,
		bucket:  cfg.BucketName,
		urlFunc: cfg.ObjectURL,
	}
}

func (s *S3Store) Put(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	// Uploads are small; buffering gives the SDK a seekable body with a known length.
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	key := "attached_assets/" + name
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return s.urlFunc(key), nil
}
