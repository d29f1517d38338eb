package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/pageza/portfolio/backend/internal/models"
	"github.com/pageza/portfolio/backend/internal/types"
)

// DatabaseStorage implements Storage on top of gorm. It keeps no state of its
// own; every call goes to the database.
type DatabaseStorage struct {
	db  *gorm.DB
	now func() time.Time
}

// Ensure DatabaseStorage implements Storage
var _ Storage = (*DatabaseStorage)(nil)

// NewDatabaseStorage creates a new DatabaseStorage instance
func NewDatabaseStorage(db *gorm.DB) *DatabaseStorage {
	return &DatabaseStorage{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *DatabaseStorage) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get user: %w", notFound(err))
	}
	return &user, nil
}

func (s *DatabaseStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to get user: %w", notFound(err))
	}
	return &user, nil
}

func (s *DatabaseStorage) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if _, err := s.GetUserByUsername(ctx, user.Username); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	created := *user
	created.ID = 0
	created.CreatedAt = s.now()
	if err := s.db.WithContext(ctx).Create(&created).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &created, nil
}

func (s *DatabaseStorage) CreateContactMessage(ctx context.Context, in types.ContactInput) (*models.ContactMessage, error) {
	msg := models.ContactMessage{
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: s.now(),
	}
	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("failed to create contact message: %w", err)
	}
	return &msg, nil
}

func (s *DatabaseStorage) GetContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	messages := []models.ContactMessage{}
	if err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return messages, nil
}

func (s *DatabaseStorage) GetCertificates(ctx context.Context) ([]models.Certificate, error) {
	certificates := []models.Certificate{}
	if err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&certificates).Error; err != nil {
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	return certificates, nil
}

func (s *DatabaseStorage) GetCertificate(ctx context.Context, id uint) (*models.Certificate, error) {
	var cert models.Certificate
	if err := s.db.WithContext(ctx).First(&cert, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get certificate: %w", notFound(err))
	}
	return &cert, nil
}

func (s *DatabaseStorage) CreateCertificate(ctx context.Context, in types.CertificateInput) (*models.Certificate, error) {
	cert := models.Certificate{
		Title:         in.Title,
		Issuer:        in.Issuer,
		Date:          in.Date,
		Description:   in.Description,
		CredentialID:  types.StringPtr(in.CredentialID),
		CredentialURL: types.StringPtr(in.CredentialURL),
		ImageURL:      types.StringPtr(in.ImageURL),
		CreatedAt:     s.now(),
	}
	if err := s.db.WithContext(ctx).Create(&cert).Error; err != nil {
		return nil, fmt.Errorf("failed to create certificate: %w", err)
	}
	return &cert, nil
}

func (s *DatabaseStorage) UpdateCertificate(ctx context.Context, id uint, patch types.CertificatePatch) (*models.Certificate, error) {
	if _, err := s.GetCertificate(ctx, id); err != nil {
		return nil, err
	}

	if updates := patch.Updates(); len(updates) > 0 {
		err := s.db.WithContext(ctx).Model(&models.Certificate{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return nil, fmt.Errorf("failed to update certificate: %w", err)
		}
	}

	return s.GetCertificate(ctx, id)
}

func (s *DatabaseStorage) DeleteCertificate(ctx context.Context, id uint) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&models.Certificate{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete certificate: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *DatabaseStorage) GetProfileSummary(ctx context.Context) (*models.ProfileSummary, error) {
	var profile models.ProfileSummary
	if err := s.db.WithContext(ctx).Order("id ASC").First(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to get profile summary: %w", notFound(err))
	}
	return &profile, nil
}

func (s *DatabaseStorage) CreateProfileSummary(ctx context.Context, in types.ProfileInput) (*models.ProfileSummary, error) {
	profile := models.ProfileSummary{
		Title:     in.Title,
		Headline:  in.Headline,
		Bio:       in.Bio,
		ResumeURL: types.StringPtr(in.ResumeURL),
		UpdatedAt: s.now(),
	}
	if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to create profile summary: %w", err)
	}
	return &profile, nil
}

func (s *DatabaseStorage) UpdateProfileSummary(ctx context.Context, id uint, patch types.ProfilePatch) (*models.ProfileSummary, error) {
	var profile models.ProfileSummary
	if err := s.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get profile summary: %w", notFound(err))
	}

	updates := patch.Updates()
	updates["updated_at"] = s.now()
	if err := s.db.WithContext(ctx).Model(&models.ProfileSummary{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile summary: %w", err)
	}

	if err := s.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload profile summary: %w", notFound(err))
	}
	return &profile, nil
}

// Initialize seeds the default profile when none exists. Safe to call repeatedly.
func (s *DatabaseStorage) Initialize(ctx context.Context) error {
	_, err := s.GetProfileSummary(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	if _, err := s.CreateProfileSummary(ctx, DefaultProfile); err != nil {
		return err
	}
	log.Printf("Seeded default profile summary")
	return nil
}

func (s *DatabaseStorage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
