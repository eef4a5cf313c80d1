package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/models"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/repository"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/service"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/storage"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth      *AuthHandler
	User      *UserHandler
	Portfolio *PortfolioHandler
	Pricing   *PricingHandler
	Contact   *ContactHandler
	Content   *ContentHandler
	Upload    *UploadHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services, storageSvc *storage.Service) *Handlers {
	return &Handlers{
		Auth:      &AuthHandler{authService: services.Auth},
		User:      &UserHandler{userService: services.User},
		Portfolio: &PortfolioHandler{portfolioService: services.Portfolio},
		Pricing:   &PricingHandler{pricingService: services.Pricing},
		Contact:   &ContactHandler{contactService: services.Contact},
		Content:   &ContentHandler{contentService: services.Content},
		Upload:    &UploadHandler{storage: storageSvc},
	}
}

// ============================================
// Response Helpers
// ============================================

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, models.Envelope{Success: true, Data: data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, models.Envelope{Success: true, Message: message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, models.Envelope{Success: false, Message: message})
}

func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.Envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  err.Error(),
	})
}

// respondServiceError maps service sentinel errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, service.ErrConflict):
		respondError(c, http.StatusConflict, "Resource already exists")
	case errors.Is(err, service.ErrPlanLimit):
		respondError(c, http.StatusBadRequest, "Maximum of 3 active pricing plans allowed")
	case errors.Is(err, service.ErrOrderTaken):
		respondError(c, http.StatusBadRequest, "Display order is already taken by an active plan")
	case errors.Is(err, service.ErrSelfDelete):
		respondError(c, http.StatusBadRequest, "You cannot delete your own account")
	case errors.Is(err, service.ErrLastAdmin):
		respondError(c, http.StatusConflict, "Cannot remove the last active admin")
	case errors.Is(err, service.ErrForbidden):
		respondError(c, http.StatusForbidden, "Forbidden")
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// ============================================
// Response Mappers
// ============================================

func toUserResponse(u *repository.User) models.UserResponse {
	return models.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}

func toProjectResponse(p *repository.Project) models.ProjectResponse {
	if p == nil {
		return models.ProjectResponse{}
	}

	return models.ProjectResponse{
		ID:              p.ID,
		Title:           p.Title,
		Slug:            p.Slug,
		Subtitle:        p.Subtitle,
		Description:     p.Description,
		LongDescription: p.LongDescription,
		Category:        p.Category,
		Client:          p.Client,
		Image:           p.Image,
		HeroImage:       p.HeroImage,
		Images:          safeStringSlice(p.Images),
		Tags:            safeStringSlice(p.Tags),
		Status:          p.Status,
		SortOrder:       p.SortOrder,
		Featured:        p.Featured,
		KeyResults:      p.KeyResults,
		Technologies:    p.Technologies,
		Timeline:        p.Timeline,
		Testimonials:    p.Testimonials,
		Features:        p.Features,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toProjectResponses(projects []*repository.Project) []models.ProjectResponse {
	out := make([]models.ProjectResponse, len(projects))
	for i, p := range projects {
		out[i] = toProjectResponse(p)
	}
	return out
}

func toPlanResponse(p *repository.PricingPlan) models.PlanResponse {
	return models.PlanResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.String(),
		PriceNote:   p.PriceNote,
		Description: p.Description,
		Features:    safeStringSlice(p.Features),
		CTA:         p.CTA,
		Note:        p.Note,
		SortOrder:   p.SortOrder,
		IsActive:    p.IsActive,
		Popular:     p.Popular,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPlanResponses(plans []*repository.PricingPlan) []models.PlanResponse {
	out := make([]models.PlanResponse, len(plans))
	for i, p := range plans {
		out[i] = toPlanResponse(p)
	}
	return out
}

func toContactResponse(contact *repository.Contact) models.ContactResponse {
	return models.ContactResponse{
		ID:               contact.ID,
		Name:             contact.Name,
		Email:            contact.Email,
		Company:          contact.Company,
		Phone:            contact.Phone,
		ProjectType:      contact.ProjectType,
		Budget:           contact.Budget,
		Timeline:         contact.Timeline,
		Message:          contact.Message,
		Status:           contact.Status,
		Priority:         contact.Priority,
		Notes:            contact.Notes,
		EmailSentToUser:  contact.EmailSentToUser,
		EmailSentToAdmin: contact.EmailSentToAdmin,
		CreatedAt:        contact.CreatedAt,
		UpdatedAt:        contact.UpdatedAt,
	}
}

func toContentResponse(cs *repository.ContentSection) models.ContentResponse {
	return models.ContentResponse{
		Section:   cs.Section,
		Data:      cs.Data,
		UpdatedBy: cs.UpdatedBy,
		UpdatedAt: cs.UpdatedAt,
	}
}

func safeStringSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
