package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/portfolio/backend/internal/models"
	"github.com/pageza/portfolio/backend/internal/types"
)

// MockStorage is a mock implementation of the Storage interface
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetUser(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) CreateContactMessage(ctx context.Context, in types.ContactInput) (*models.ContactMessage, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContactMessage), args.Error(1)
}

func (m *MockStorage) GetContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ContactMessage), args.Error(1)
}

func (m *MockStorage) GetCertificates(ctx context.Context) ([]models.Certificate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Certificate), args.Error(1)
}

func (m *MockStorage) GetCertificate(ctx context.Context, id uint) (*models.Certificate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Certificate), args.Error(1)
}

func (m *MockStorage) CreateCertificate(ctx context.Context, in types.CertificateInput) (*models.Certificate, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Certificate), args.Error(1)
}

func (m *MockStorage) UpdateCertificate(ctx context.Context, id uint, patch types.CertificatePatch) (*models.Certificate, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Certificate), args.Error(1)
}

func (m *MockStorage) DeleteCertificate(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) GetProfileSummary(ctx context.Context) (*models.ProfileSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProfileSummary), args.Error(1)
}

func (m *MockStorage) CreateProfileSummary(ctx context.Context, in types.ProfileInput) (*models.ProfileSummary, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProfileSummary), args.Error(1)
}

func (m *MockStorage) UpdateProfileSummary(ctx context.Context, id uint, patch types.ProfilePatch) (*models.ProfileSummary, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProfileSummary), args.Error(1)
}

func (m *MockStorage) Initialize(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStorage) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
