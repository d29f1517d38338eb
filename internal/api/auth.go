package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/portfolio/backend/internal/middleware"
	"github.com/pageza/portfolio/backend/internal/service"
	"github.com/pageza/portfolio/backend/internal/storage"
	"github.com/pageza/portfolio/backend/internal/types"
)

type AuthHandler struct {
	authService service.IAuthService
}

func NewAuthHandler(authService service.IAuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.Credentials
	if !bindAndValidate(c, &req) {
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req)
	if errors.Is(err, service.ErrInvalidCredentials) {
		fail(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		internalError(c, "An error occurred while logging in", err)
		return
	}

	respond(c, http.StatusOK, "Login successful", types.LoginResponse{Token: token, User: user})
}

// Register creates another admin account. Only reachable by an authenticated admin.
func (h *AuthHandler) Register(c *gin.Context) {
	var req types.Credentials
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if errors.Is(err, storage.ErrConflict) {
		fail(c, http.StatusConflict, "Username already exists")
		return
	}
	if err != nil {
		internalError(c, "An error occurred while creating the user", err)
		return
	}

	respond(c, http.StatusCreated, "User created successfully", user)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if errors.Is(err, storage.ErrNotFound) {
		fail(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		internalError(c, "An error occurred while fetching the user", err)
		return
	}

	respond(c, http.StatusOK, "", user)
}
