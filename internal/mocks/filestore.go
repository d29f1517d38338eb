package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockFileStore is a mock implementation of the FileStore interface
type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Put(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, name, contentType, r)
	return args.String(0), args.Error(1)
}
