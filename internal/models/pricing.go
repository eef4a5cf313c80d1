package models

import "time"

// ============================================
// Pricing DTOs
// ============================================

type CreatePlanRequest struct {
	Name        string   `json:"name" binding:"required,min=2"`
	Price       string   `json:"price" binding:"required"`
	PriceNote   string   `json:"priceNote"`
	Description string   `json:"description"`
	Features    []string `json:"features" binding:"required,min=1"`
	CTA         string   `json:"cta"`
	Note        string   `json:"note"`
	SortOrder   int      `json:"sortOrder" binding:"min=0,max=2"`
	Popular     bool     `json:"popular"`
}

type UpdatePlanRequest struct {
	Name        string   `json:"name" binding:"required,min=2"`
	Price       string   `json:"price" binding:"required"`
	PriceNote   string   `json:"priceNote"`
	Description string   `json:"description"`
	Features    []string `json:"features" binding:"required,min=1"`
	CTA         string   `json:"cta"`
	Note        string   `json:"note"`
	SortOrder   int      `json:"sortOrder" binding:"min=0,max=2"`
}

type PlanResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	PriceNote   string    `json:"priceNote,omitempty"`
	Description string    `json:"description,omitempty"`
	Features    []string  `json:"features"`
	CTA         string    `json:"cta,omitempty"`
	Note        string    `json:"note,omitempty"`
	SortOrder   int       `json:"sortOrder"`
	IsActive    bool      `json:"isActive"`
	Popular     bool      `json:"popular"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
