package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/models"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/repository"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/service"
)

// ============================================
// Contact Handler
// ============================================

type ContactHandler struct {
	contactService service.ContactService
}

// Submit accepts the public contact form. The submission is stored first
// and the confirmation emails are dispatched afterwards, so a mail outage
// never loses a lead.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req models.SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	contact, emailStatus, err := h.contactService.Submit(c.Request.Context(), &repository.Contact{
		Name:        req.Name,
		Email:       req.Email,
		Company:     req.Company,
		Phone:       req.Phone,
		ProjectType: req.ProjectType,
		Budget:      req.Budget,
		Timeline:    req.Timeline,
		Message:     req.Message,
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, models.SubmitContactResponse{
		Contact:     toContactResponse(contact),
		EmailStatus: emailStatus,
	})
}

func (h *ContactHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := repository.ContactFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Limit:    limit,
		Offset:   offset,
	}

	contacts, total, err := h.contactService.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := models.ContactListResponse{
		Contacts: make([]models.ContactResponse, len(contacts)),
		Total:    total,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}
	for i, contact := range contacts {
		response.Contacts[i] = toContactResponse(contact)
	}
	respondOK(c, http.StatusOK, response)
}

func (h *ContactHandler) Get(c *gin.Context) {
	contact, err := h.contactService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, toContactResponse(contact))
}

func (h *ContactHandler) Update(c *gin.Context) {
	var req models.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	contact, err := h.contactService.Update(c.Request.Context(), c.Param("id"), req.Status, req.Priority, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, toContactResponse(contact))
}

func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.contactService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Contact deleted")
}
