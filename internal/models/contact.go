package models

import (
	"time"

	"github.com/pixelcraft-digital/pixelcraft-backend/internal/service"
)

// ============================================
// Contact DTOs
// ============================================

type SubmitContactRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Company     string `json:"company" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=30"`
	ProjectType string `json:"projectType" binding:"required"`
	Budget      string `json:"budget" binding:"required"`
	Timeline    string `json:"timeline" binding:"required"`
	Message     string `json:"message" binding:"required,min=10,max=5000"`
}

type UpdateContactRequest struct {
	Status   string `json:"status" binding:"omitempty,oneof=new contacted in-progress completed archived"`
	Priority string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Notes    string `json:"notes" binding:"max=5000"`
}

type ContactResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Company          string    `json:"company,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	ProjectType      string    `json:"projectType"`
	Budget           string    `json:"budget"`
	Timeline         string    `json:"timeline"`
	Message          string    `json:"message"`
	Status           string    `json:"status"`
	Priority         string    `json:"priority"`
	Notes            string    `json:"notes,omitempty"`
	EmailSentToUser  bool      `json:"emailSentToUser"`
	EmailSentToAdmin bool      `json:"emailSentToAdmin"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type SubmitContactResponse struct {
	Contact     ContactResponse     `json:"contact"`
	EmailStatus service.EmailStatus `json:"emailStatus"`
}

type ContactListResponse struct {
	Contacts []ContactResponse `json:"contacts"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}
