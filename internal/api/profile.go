package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/portfolio/backend/internal/storage"
	"github.com/pageza/portfolio/backend/internal/types"
)

const msgProfileNotFound = "Profile summary not found"

type ProfileHandler struct {
	store storage.Storage
}

func NewProfileHandler(store storage.Storage) *ProfileHandler {
	return &ProfileHandler{store: store}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.store.GetProfileSummary(c.Request.Context())
	if errors.Is(err, storage.ErrNotFound) {
		fail(c, http.StatusNotFound, msgProfileNotFound)
		return
	}
	if err != nil {
		internalError(c, "An error occurred while fetching the profile summary", err)
		return
	}

	respond(c, http.StatusOK, "", profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		fail(c, http.StatusBadRequest, "Invalid profile ID")
		return
	}

	var patch types.ProfilePatch
	if !bindAndValidate(c, &patch) {
		return
	}

	profile, err := h.store.UpdateProfileSummary(c.Request.Context(), id, patch)
	if errors.Is(err, storage.ErrNotFound) {
		fail(c, http.StatusNotFound, msgProfileNotFound)
		return
	}
	if err != nil {
		internalError(c, "An error occurred while updating the profile summary", err)
		return
	}

	respond(c, http.StatusOK, "Profile updated successfully", profile)
}
