package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"ridetogether.backend/internal/domain/entities"
	"ridetogether.backend/internal/interfaces/http/response"
	"ridetogether.backend/internal/usecases"
)

// ContactHandler handles contact-form submissions
type ContactHandler struct {
	contactUsecase *usecases.ContactUsecase
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactUsecase *usecases.ContactUsecase) *ContactHandler {
	return &ContactHandler{contactUsecase: contactUsecase}
}

// Submit relays a submission to the support inbox
// POST /api/v1/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var form entities.ContactInput
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.contactUsecase.Submit(c.Request.Context(), &form); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
		"message": "Message sent successfully",
	})
}
