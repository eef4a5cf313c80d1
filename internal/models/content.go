package models

import (
	"encoding/json"
	"time"
)

// ============================================
// Content DTOs
// ============================================

type UpdateContentRequest struct {
	Data json.RawMessage `json:"data" binding:"required"`
}

type ContentResponse struct {
	Section   string          `json:"section"`
	Data      json.RawMessage `json:"data"`
	UpdatedBy *string         `json:"updatedBy,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
