package service

import (
	"context"
	"encoding/json"

	"github.com/pixelcraft-digital/pixelcraft-backend/internal/repository"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/socket"
)

// ============================================
// Content Service
// ============================================

// knownSections are the site blocks the frontend renders. Requests for
// anything else are rejected rather than creating stray rows.
var knownSections = map[string]bool{
	"hero":     true,
	"services": true,
	"about":    true,
	"process":  true,
	"footer":   true,
	"seo":      true,
}

type ContentService interface {
	Get(ctx context.Context, section string) (*repository.ContentSection, error)
	List(ctx context.Context) ([]*repository.ContentSection, error)
	Update(ctx context.Context, section string, data json.RawMessage, updatedBy string) (*repository.ContentSection, error)
}

type contentService struct {
	contentRepo repository.ContentRepository
	broadcaster *socket.Broadcaster
}

func NewContentService(contentRepo repository.ContentRepository, broadcaster *socket.Broadcaster) ContentService {
	return &contentService{contentRepo: contentRepo, broadcaster: broadcaster}
}

func (s *contentService) Get(ctx context.Context, section string) (*repository.ContentSection, error) {
	if !knownSections[section] {
		return nil, ErrNotFound
	}
	cs, err := s.contentRepo.Get(ctx, section)
	if err != nil {
		return nil, err
	}
	if cs == nil {
		return nil, ErrNotFound
	}
	return cs, nil
}

func (s *contentService) List(ctx context.Context) ([]*repository.ContentSection, error) {
	return s.contentRepo.List(ctx)
}

func (s *contentService) Update(ctx context.Context, section string, data json.RawMessage, updatedBy string) (*repository.ContentSection, error) {
	if !knownSections[section] {
		return nil, ErrNotFound
	}
	if len(data) == 0 || !json.Valid(data) {
		return nil, ErrInvalidInput
	}

	cs := &repository.ContentSection{Section: section, Data: data}
	if updatedBy != "" {
		cs.UpdatedBy = &updatedBy
	}
	if err := s.contentRepo.Upsert(ctx, cs); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastContentUpdated(section)
	}
	return cs, nil
}
