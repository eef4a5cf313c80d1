package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/storage"
)

// ============================================
// Upload Handler
// ============================================

const maxUploadSize = 10 << 20 // 10 MB

var allowedUploadExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
	".svg":  true,
	".pdf":  true,
}

type UploadHandler struct {
	storage *storage.Service
}

func (h *UploadHandler) Upload(c *gin.Context) {
	if h.storage == nil {
		respondError(c, http.StatusServiceUnavailable, "File storage is not configured")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		respondError(c, http.StatusRequestEntityTooLarge, "File exceeds the 10 MB limit")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedUploadExts[ext] {
		respondError(c, http.StatusBadRequest, "Unsupported file type")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.storage.Upload(c.Request.Context(), header.Filename, file, header.Size, contentType)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Upload failed")
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"url": url})
}

func (h *UploadHandler) Delete(c *gin.Context) {
	if h.storage == nil {
		respondError(c, http.StatusServiceUnavailable, "File storage is not configured")
		return
	}

	var req struct {
		URL string `json:"url" binding:"required,url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.storage.Delete(c.Request.Context(), req.URL); err != nil {
		respondError(c, http.StatusInternalServerError, "Delete failed")
		return
	}
	respondMessage(c, http.StatusOK, "File deleted")
}
