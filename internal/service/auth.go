package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/portfolio/backend/internal/models"
	"github.com/pageza/portfolio/backend/internal/storage"
	"github.com/pageza/portfolio/backend/internal/types"
	"github.com/pageza/portfolio/backend/internal/validation"
)

// TokenTTL is the lifetime of an issued access token.
const TokenTTL = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

type AuthService struct {
	store     storage.Storage
	jwtSecret []byte
	now       func() time.Time
}

var _ IAuthService = (*AuthService)(nil)

func NewAuthService(store storage.Storage, jwtSecret string) *AuthService {
	return &AuthService{
		store:     store,
		jwtSecret: []byte(jwtSecret),
		now:       time.Now,
	}
}

// Register creates an admin user. Credentials that could never log in yield a
// *validation.Error and a taken username yields storage.ErrConflict.
func (s *AuthService) Register(ctx context.Context, creds types.Credentials) (*models.User, error) {
	if err := validation.Struct(creds); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.store.CreateUser(ctx, &models.User{
		Username:     creds.Username,
		PasswordHash: string(hashedPassword),
	})
}

func (s *AuthService) Login(ctx context.Context, creds types.Credentials) (string, *models.User, error) {
	user, err := s.store.GetUserByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := s.now()
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		UserID:   user.ID,
		Username: user.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

// EnsureAdmin creates the bootstrap admin account unless it already exists.
// Empty credentials disable the bootstrap.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	creds := types.Credentials{Username: username, Password: password}
	if err := validation.Struct(creds); err != nil {
		return fmt.Errorf("invalid admin credentials: %w", err)
	}

	_, err := s.store.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	if _, err := s.Register(ctx, creds); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	log.Printf("Created admin user %q", username)
	return nil
}
