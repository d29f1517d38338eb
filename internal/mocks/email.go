package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/portfolio/backend/internal/models"
)

// MockEmailService is a mock implementation of service.IEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) NotifyContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
