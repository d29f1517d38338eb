package service

import (
	"context"
	"io"

	"github.com/pageza/portfolio/backend/internal/models"
	"github.com/pageza/portfolio/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, creds types.Credentials) (*models.User, error)
	Login(ctx context.Context, creds types.Credentials) (string, *models.User, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

// IUploadService defines the interface for storing uploaded files
type IUploadService interface {
	Save(ctx context.Context, filename string, r io.Reader) (*StoredFile, error)
}

// FileStore persists an uploaded file under a generated name and returns its public URL.
type FileStore interface {
	Put(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

// IEmailService defines the interface for owner notifications
type IEmailService interface {
	NotifyContactMessage(ctx context.Context, msg *models.ContactMessage) error
}
