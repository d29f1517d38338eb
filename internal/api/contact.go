package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/portfolio/backend/internal/middleware"
	"github.com/pageza/portfolio/backend/internal/service"
	"github.com/pageza/portfolio/backend/internal/storage"
	"github.com/pageza/portfolio/backend/internal/types"
)

type ContactHandler struct {
	store    storage.Storage
	notifier service.IEmailService
}

// NewContactHandler creates a contact handler. notifier may be nil.
func NewContactHandler(store storage.Storage, notifier service.IEmailService) *ContactHandler {
	return &ContactHandler{store: store, notifier: notifier}
}

func (h *ContactHandler) CreateMessage(c *gin.Context) {
	var req types.ContactInput
	if !bindAndValidate(c, &req) {
		return
	}

	msg, err := h.store.CreateContactMessage(c.Request.Context(), req)
	if err != nil {
		internalError(c, "An error occurred while sending your message", err)
		return
	}

	// The message is already stored, a failed notification only gets logged.
	if h.notifier != nil {
		if err := h.notifier.NotifyContactMessage(c.Request.Context(), msg); err != nil {
			log.Printf("[%s] contact notification failed for message %d: %v", middleware.GetRequestID(c), msg.ID, err)
		}
	}

	respond(c, http.StatusCreated, "Message sent successfully", msg)
}

func (h *ContactHandler) ListMessages(c *gin.Context) {
	messages, err := h.store.GetContactMessages(c.Request.Context())
	if err != nil {
		internalError(c, "An error occurred while fetching messages", err)
		return
	}

	respond(c, http.StatusOK, "", messages)
}
