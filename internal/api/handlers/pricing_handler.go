package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/models"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/repository"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/service"
	"github.com/shopspring/decimal"
)

// ============================================
// Pricing Handler
// ============================================

type PricingHandler struct {
	pricingService service.PricingService
}

// ListActive serves the public pricing page.
func (h *PricingHandler) ListActive(c *gin.Context) {
	plans, err := h.pricingService.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load pricing plans")
		return
	}
	respondOK(c, http.StatusOK, toPlanResponses(plans))
}

func (h *PricingHandler) ListAll(c *gin.Context) {
	plans, err := h.pricingService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load pricing plans")
		return
	}
	respondOK(c, http.StatusOK, toPlanResponses(plans))
}

func (h *PricingHandler) Get(c *gin.Context) {
	plan, err := h.pricingService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, toPlanResponse(plan))
}

func (h *PricingHandler) Create(c *gin.Context) {
	var req models.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		respondError(c, http.StatusBadRequest, "price must be a non-negative number")
		return
	}

	plan, err := h.pricingService.Create(c.Request.Context(), &repository.PricingPlan{
		Name:        req.Name,
		Price:       price,
		PriceNote:   req.PriceNote,
		Description: req.Description,
		Features:    req.Features,
		CTA:         req.CTA,
		Note:        req.Note,
		SortOrder:   req.SortOrder,
		Popular:     req.Popular,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, toPlanResponse(plan))
}

func (h *PricingHandler) Update(c *gin.Context) {
	var req models.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		respondError(c, http.StatusBadRequest, "price must be a non-negative number")
		return
	}

	plan, err := h.pricingService.Update(c.Request.Context(), c.Param("id"), &repository.PricingPlan{
		Name:        req.Name,
		Price:       price,
		PriceNote:   req.PriceNote,
		Description: req.Description,
		Features:    req.Features,
		CTA:         req.CTA,
		Note:        req.Note,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, toPlanResponse(plan))
}

func (h *PricingHandler) TogglePopular(c *gin.Context) {
	plan, err := h.pricingService.TogglePopular(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, toPlanResponse(plan))
}

func (h *PricingHandler) Deactivate(c *gin.Context) {
	if err := h.pricingService.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Plan deactivated")
}

func (h *PricingHandler) Restore(c *gin.Context) {
	plan, err := h.pricingService.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, toPlanResponse(plan))
}
