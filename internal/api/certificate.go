package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/portfolio/backend/internal/storage"
	"github.com/pageza/portfolio/backend/internal/types"
)

const (
	msgInvalidCertificateID = "Invalid certificate ID"
	msgCertificateNotFound  = "Certificate not found"
)

type CertificateHandler struct {
	store storage.Storage
}

func NewCertificateHandler(store storage.Storage) *CertificateHandler {
	return &CertificateHandler{store: store}
}

func (h *CertificateHandler) ListCertificates(c *gin.Context) {
	certs, err := h.store.GetCertificates(c.Request.Context())
	if err != nil {
		internalError(c, "An error occurred while fetching certificates", err)
		return
	}

	respond(c, http.StatusOK, "", certs)
}

func (h *CertificateHandler) GetCertificate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		fail(c, http.StatusBadRequest, msgInvalidCertificateID)
		return
	}

	cert, err := h.store.GetCertificate(c.Request.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		fail(c, http.StatusNotFound, msgCertificateNotFound)
		return
	}
	if err != nil {
		internalError(c, "An error occurred while fetching the certificate", err)
		return
	}

	respond(c, http.StatusOK, "", cert)
}

func (h *CertificateHandler) CreateCertificate(c *gin.Context) {
	var req types.CertificateInput
	if !bindAndValidate(c, &req) {
		return
	}

	cert, err := h.store.CreateCertificate(c.Request.Context(), req)
	if err != nil {
		internalError(c, "An error occurred while adding the certificate", err)
		return
	}

	respond(c, http.StatusCreated, "Certificate added successfully", cert)
}

func (h *CertificateHandler) UpdateCertificate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		fail(c, http.StatusBadRequest, msgInvalidCertificateID)
		return
	}

	var patch types.CertificatePatch
	if !bindAndValidate(c, &patch) {
		return
	}

	cert, err := h.store.UpdateCertificate(c.Request.Context(), id, patch)
	if errors.Is(err, storage.ErrNotFound) {
		fail(c, http.StatusNotFound, msgCertificateNotFound)
		return
	}
	if err != nil {
		internalError(c, "An error occurred while updating the certificate", err)
		return
	}

	respond(c, http.StatusOK, "Certificate updated successfully", cert)
}

func (h *CertificateHandler) DeleteCertificate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		fail(c, http.StatusBadRequest, msgInvalidCertificateID)
		return
	}

	deleted, err := h.store.DeleteCertificate(c.Request.Context(), id)
	if err != nil {
		internalError(c, "An error occurred while deleting the certificate", err)
		return
	}
	if !deleted {
		fail(c, http.StatusNotFound, msgCertificateNotFound)
		return
	}

	respond(c, http.StatusOK, "Certificate deleted successfully", nil)
}
