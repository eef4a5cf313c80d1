package models

import (
	"time"

	"github.com/pixelcraft-digital/pixelcraft-backend/internal/repository"
)

// ============================================
// Portfolio DTOs
// ============================================

type CreateProjectRequest struct {
	Title           string                     `json:"title" binding:"required,min=2"`
	Slug            string                     `json:"slug"`
	Subtitle        string                     `json:"subtitle"`
	Description     string                     `json:"description" binding:"required"`
	LongDescription string                     `json:"longDescription"`
	Category        string                     `json:"category" binding:"omitempty,oneof=web mobile branding ecommerce saas other"`
	Client          string                     `json:"client"`
	Image           string                     `json:"image"`
	HeroImage       string                     `json:"heroImage"`
	Images          []string                   `json:"images"`
	Tags            []string                   `json:"tags"`
	Status          string                     `json:"status" binding:"omitempty,oneof=draft published archived"`
	Featured        bool                       `json:"featured"`
	KeyResults      []repository.KeyResult     `json:"keyResults"`
	Technologies    []repository.Technology    `json:"technologies"`
	Timeline        []repository.TimelinePhase `json:"timeline"`
	Testimonials    []repository.Testimonial   `json:"testimonials"`
	Features        []string                   `json:"features"`
}

type UpdateProjectRequest struct {
	Title           *string                    `json:"title,omitempty" binding:"omitempty,min=2"`
	Slug            *string                    `json:"slug,omitempty"`
	Subtitle        *string                    `json:"subtitle,omitempty"`
	Description     *string                    `json:"description,omitempty"`
	LongDescription *string                    `json:"longDescription,omitempty"`
	Category        *string                    `json:"category,omitempty" binding:"omitempty,oneof=web mobile branding ecommerce saas other"`
	Client          *string                    `json:"client,omitempty"`
	Image           *string                    `json:"image,omitempty"`
	HeroImage       *string                    `json:"heroImage,omitempty"`
	Images          []string                   `json:"images,omitempty"`
	Tags            []string                   `json:"tags,omitempty"`
	Status          *string                    `json:"status,omitempty" binding:"omitempty,oneof=draft published archived"`
	Featured        *bool                      `json:"featured,omitempty"`
	KeyResults      []repository.KeyResult     `json:"keyResults,omitempty"`
	Technologies    []repository.Technology    `json:"technologies,omitempty"`
	Timeline        []repository.TimelinePhase `json:"timeline,omitempty"`
	Testimonials    []repository.Testimonial   `json:"testimonials,omitempty"`
	Features        []string                   `json:"features,omitempty"`
}

type BulkStatusRequest struct {
	IDs    []string `json:"ids" binding:"required,min=1"`
	Status string   `json:"status" binding:"required,oneof=draft published archived"`
}

type ReorderRequest struct {
	Orders []repository.ProjectOrder `json:"orders" binding:"required,min=1"`
}

type ProjectResponse struct {
	ID              string                     `json:"id"`
	Title           string                     `json:"title"`
	Slug            string                     `json:"slug"`
	Subtitle        string                     `json:"subtitle,omitempty"`
	Description     string                     `json:"description"`
	LongDescription string                     `json:"longDescription,omitempty"`
	Category        string                     `json:"category"`
	Client          string                     `json:"client,omitempty"`
	Image           string                     `json:"image,omitempty"`
	HeroImage       string                     `json:"heroImage,omitempty"`
	Images          []string                   `json:"images"`
	Tags            []string                   `json:"tags"`
	Status          string                     `json:"status"`
	SortOrder       int                        `json:"sortOrder"`
	Featured        bool                       `json:"featured"`
	KeyResults      []repository.KeyResult     `json:"keyResults,omitempty"`
	Technologies    []repository.Technology    `json:"technologies,omitempty"`
	Timeline        []repository.TimelinePhase `json:"timeline,omitempty"`
	Testimonials    []repository.Testimonial   `json:"testimonials,omitempty"`
	Features        []string                   `json:"features,omitempty"`
	CreatedAt       time.Time                  `json:"createdAt"`
	UpdatedAt       time.Time                  `json:"updatedAt"`
}
