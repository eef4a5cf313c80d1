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
// Portfolio Handler
// ============================================

type PortfolioHandler struct {
	portfolioService service.PortfolioService
}

// ListPublished serves the public portfolio grid, optionally filtered by
// category, tag, or featured flag.
func (h *PortfolioHandler) ListPublished(c *gin.Context) {
	var featured *bool
	if raw := c.Query("featured"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "featured must be true or false")
			return
		}
		featured = &v
	}

	projects, err := h.portfolioService.ListPublished(c.Request.Context(), c.Query("category"), c.Query("tag"), featured)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load projects")
		return
	}
	respondOK(c, http.StatusOK, toProjectResponses(projects))
}

// GetFeatured returns the single featured case study, if any.
func (h *PortfolioHandler) GetFeatured(c *gin.Context) {
	project, err := h.portfolioService.GetFeatured(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, toProjectResponse(project))
}

// Get resolves a project by ID or slug.
func (h *PortfolioHandler) Get(c *gin.Context) {
	project, err := h.portfolioService.Get(c.Request.Context(), c.Param("idOrSlug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, toProjectResponse(project))
}

func (h *PortfolioHandler) ListAll(c *gin.Context) {
	projects, err := h.portfolioService.ListAll(c.Request.Context(), c.Query("status"), c.Query("category"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, toProjectResponses(projects))
}

func (h *PortfolioHandler) Create(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	project, err := h.portfolioService.Create(c.Request.Context(), &repository.Project{
		Title:           req.Title,
		Slug:            req.Slug,
		Subtitle:        req.Subtitle,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		Category:        req.Category,
		Client:          req.Client,
		Image:           req.Image,
		HeroImage:       req.HeroImage,
		Images:          req.Images,
		Tags:            req.Tags,
		Status:          req.Status,
		Featured:        req.Featured,
		KeyResults:      req.KeyResults,
		Technologies:    req.Technologies,
		Timeline:        req.Timeline,
		Testimonials:    req.Testimonials,
		Features:        req.Features,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, toProjectResponse(project))
}

func (h *PortfolioHandler) Update(c *gin.Context) {
	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	existing, err := h.portfolioService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	project, err := h.portfolioService.Update(c.Request.Context(), existing.ID, updateToProject(existing, &req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, toProjectResponse(project))
}

func (h *PortfolioHandler) SetFeatured(c *gin.Context) {
	project, err := h.portfolioService.SetFeatured(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, toProjectResponse(project))
}

func (h *PortfolioHandler) Delete(c *gin.Context) {
	if err := h.portfolioService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Project deleted")
}

func (h *PortfolioHandler) BulkUpdateStatus(c *gin.Context) {
	var req models.BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	updated, err := h.portfolioService.BulkUpdateStatus(c.Request.Context(), req.IDs, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"updated": updated})
}

func (h *PortfolioHandler) Reorder(c *gin.Context) {
	var req models.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.portfolioService.Reorder(c.Request.Context(), req.Orders); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Projects reordered")
}

// updateToProject maps the partial update body onto a project value. An
// empty slug lets the service decide whether to keep or regenerate it.
func updateToProject(existing *repository.Project, req *models.UpdateProjectRequest) *repository.Project {
	p := *existing
	p.Slug = ""

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Slug != nil {
		p.Slug = *req.Slug
	}
	if req.Subtitle != nil {
		p.Subtitle = *req.Subtitle
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.LongDescription != nil {
		p.LongDescription = *req.LongDescription
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Client != nil {
		p.Client = *req.Client
	}
	if req.Image != nil {
		p.Image = *req.Image
	}
	if req.HeroImage != nil {
		p.HeroImage = *req.HeroImage
	}
	if req.Images != nil {
		p.Images = req.Images
	}
	if req.Tags != nil {
		p.Tags = req.Tags
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.Featured != nil {
		p.Featured = *req.Featured
	}
	if req.KeyResults != nil {
		p.KeyResults = req.KeyResults
	}
	if req.Technologies != nil {
		p.Technologies = req.Technologies
	}
	if req.Timeline != nil {
		p.Timeline = req.Timeline
	}
	if req.Testimonials != nil {
		p.Testimonials = req.Testimonials
	}
	if req.Features != nil {
		p.Features = req.Features
	}
	return &p
}
