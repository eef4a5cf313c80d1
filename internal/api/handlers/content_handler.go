package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/api/middleware"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/models"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/service"
)

// ============================================
// Content Handler
// ============================================

type ContentHandler struct {
	contentService service.ContentService
}

func (h *ContentHandler) Get(c *gin.Context) {
	section, err := h.contentService.Get(c.Request.Context(), c.Param("section"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, toContentResponse(section))
}

func (h *ContentHandler) List(c *gin.Context) {
	sections, err := h.contentService.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load content")
		return
	}

	response := make([]models.ContentResponse, len(sections))
	for i, cs := range sections {
		response[i] = toContentResponse(cs)
	}
	respondOK(c, http.StatusOK, response)
}

func (h *ContentHandler) Update(c *gin.Context) {
	var req models.UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	section, err := h.contentService.Update(c.Request.Context(), c.Param("section"), req.Data, middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, toContentResponse(section))
}
