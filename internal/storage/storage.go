// Package storage is the repository layer between the HTTP handlers and the
// relational store.
package storage

import (
	"context"
	"errors"

	"github.com/pageza/portfolio/backend/internal/models"
	"github.com/pageza/portfolio/backend/internal/types"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write breaks a uniqueness constraint.
	ErrConflict = errors.New("record already exists")
)

// Storage defines the CRUD operations available to the API.
type Storage interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)

	CreateContactMessage(ctx context.Context, in types.ContactInput) (*models.ContactMessage, error)
	GetContactMessages(ctx context.Context) ([]models.ContactMessage, error)

	GetCertificates(ctx context.Context) ([]models.Certificate, error)
	GetCertificate(ctx context.Context, id uint) (*models.Certificate, error)
	CreateCertificate(ctx context.Context, in types.CertificateInput) (*models.Certificate, error)
	UpdateCertificate(ctx context.Context, id uint, patch types.CertificatePatch) (*models.Certificate, error)
	DeleteCertificate(ctx context.Context, id uint) (bool, error)

	GetProfileSummary(ctx context.Context) (*models.ProfileSummary, error)
	CreateProfileSummary(ctx context.Context, in types.ProfileInput) (*models.ProfileSummary, error)
	UpdateProfileSummary(ctx context.Context, id uint, patch types.ProfilePatch) (*models.ProfileSummary, error)

	Initialize(ctx context.Context) error
	Ping(ctx context.Context) error
}

// DefaultProfile is inserted by Initialize when no profile exists.
var DefaultProfile = types.ProfileInput{
	Title:     "Sanskar Unkule",
	Headline:  "Prompt Engineer & AI Specialist",
	Bio:       "I specialize in developing and refining prompt structures to improve AI model accuracy and reliability, with expertise in RLHF, LLM optimization, and data annotation.",
	ResumeURL: "/attached_assets/Sanskar_Resume.pdf",
}
