package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/portfolio/backend/internal/service"
	"github.com/pageza/portfolio/backend/internal/storage"
	"github.com/pageza/portfolio/backend/internal/testhelpers"
	"github.com/pageza/portfolio/backend/internal/types"
	"github.com/pageza/portfolio/backend/internal/validation"
)

func setupAuthTest(t *testing.T) (*service.AuthService, storage.Storage) {
	t.Helper()
	store := storage.NewDatabaseStorage(testhelpers.NewSQLiteDB(t))
	return service.NewAuthService(store, "test-secret"), store
}

func TestRegisterAndLogin(t *testing.T) {
	authSvc, store := setupAuthTest(t)
	ctx := context.Background()
	creds := types.Credentials{Username: "admin", Password: "password123"}

	user, err := authSvc.Register(ctx, creds)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, creds.Password, user.PasswordHash)

	stored, err := store.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)

	token, loggedIn, err := authSvc.Login(ctx, creds)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := authSvc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(service.TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestRegisterDuplicate(t *testing.T) {
	authSvc, _ := setupAuthTest(t)
	ctx := context.Background()
	creds := types.Credentials{Username: "admin", Password: "password123"}

	_, err := authSvc.Register(ctx, creds)
	require.NoError(t, err)

	_, err = authSvc.Register(ctx, creds)
	assert.ErrorIs(t, err, storage.ErrConflict)
}

func TestLoginInvalidCredentials(t *testing.T) {
	authSvc, _ := setupAuthTest(t)
	ctx := context.Background()

	_, err := authSvc.Register(ctx, types.Credentials{Username: "admin", Password: "password123"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		creds types.Credentials
	}{
		{"wrong password", types.Credentials{Username: "admin", Password: "wrong-password"}},
		{"unknown user", types.Credentials{Username: "nobody", Password: "password123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, user, err := authSvc.Login(ctx, tt.creds)
			assert.ErrorIs(t, err, service.ErrInvalidCredentials)
			assert.Empty(t, token)
			assert.Nil(t, user)
		})
	}
}

func TestValidateTokenRejectsBadTokens(t *testing.T) {
	authSvc, _ := setupAuthTest(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		UserID:   1,
		Username: "admin",
	})
	expiredToken, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, types.TokenClaims{UserID: 1, Username: "admin"})
	foreignToken, err := foreign.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "not-a-token",
		"expired":      expiredToken,
		"wrong secret": foreignToken,
		"empty":        "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := authSvc.ValidateToken(token)
			assert.ErrorIs(t, err, service.ErrInvalidToken)
		})
	}
}

func TestEnsureAdmin(t *testing.T) {
	authSvc, store := setupAuthTest(t)
	ctx := context.Background()

	require.NoError(t, authSvc.EnsureAdmin(ctx, "", ""))
	_, err := store.GetUserByUsername(ctx, "admin")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, authSvc.EnsureAdmin(ctx, "admin", "password123"))
	require.NoError(t, authSvc.EnsureAdmin(ctx, "admin", "changed-password"))

	// The existing account keeps its original password.
	_, _, err = authSvc.Login(ctx, types.Credentials{Username: "admin", Password: "password123"})
	assert.NoError(t, err)
}

func TestEnsureAdminRejectsUnusableCredentials(t *testing.T) {
	authSvc, store := setupAuthTest(t)
	ctx := context.Background()

	err := authSvc.EnsureAdmin(ctx, "admin", "short")
	require.Error(t, err)
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "password")

	_, err = store.GetUserByUsername(ctx, "admin")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = authSvc.Register(ctx, types.Credentials{Username: "ab", Password: "password123"})
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "username")
}
