package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/repository"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/slug"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/socket"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/types"
)

// ============================================
// Portfolio Service
// ============================================

type PortfolioService interface {
	ListPublished(ctx context.Context, category, tag string, featured *bool) ([]*repository.Project, error)
	ListAll(ctx context.Context, status, category string) ([]*repository.Project, error)
	GetFeatured(ctx context.Context) (*repository.Project, error)
	Get(ctx context.Context, idOrSlug string) (*repository.Project, error)
	Create(ctx context.Context, project *repository.Project) (*repository.Project, error)
	Update(ctx context.Context, id string, project *repository.Project) (*repository.Project, error)
	SetFeatured(ctx context.Context, id string) (*repository.Project, error)
	Delete(ctx context.Context, id string) error
	BulkUpdateStatus(ctx context.Context, ids []string, status string) (int64, error)
	Reorder(ctx context.Context, orders []repository.ProjectOrder) error
}

type portfolioService struct {
	projectRepo repository.ProjectRepository
	broadcaster *socket.Broadcaster
}

func NewPortfolioService(projectRepo repository.ProjectRepository, broadcaster *socket.Broadcaster) PortfolioService {
	return &portfolioService{projectRepo: projectRepo, broadcaster: broadcaster}
}

func (s *portfolioService) ListPublished(ctx context.Context, category, tag string, featured *bool) ([]*repository.Project, error) {
	return s.projectRepo.List(ctx, repository.ProjectFilter{
		Status:   types.ProjectPublished,
		Category: category,
		Tag:      tag,
		Featured: featured,
	})
}

func (s *portfolioService) ListAll(ctx context.Context, status, category string) ([]*repository.Project, error) {
	return s.projectRepo.List(ctx, repository.ProjectFilter{
		Status:   status,
		Category: category,
	})
}

func (s *portfolioService) GetFeatured(ctx context.Context) (*repository.Project, error) {
	project, err := s.projectRepo.FindFeatured(ctx)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	return project, nil
}

// Get resolves by ID first, then by slug, so public pages can link either way.
func (s *portfolioService) Get(ctx context.Context, idOrSlug string) (*repository.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, idOrSlug)
	if err != nil || project == nil {
		project, err = s.projectRepo.FindBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	return project, nil
}

func (s *portfolioService) Create(ctx context.Context, project *repository.Project) (*repository.Project, error) {
	if project.Title == "" {
		return nil, ErrInvalidInput
	}
	if project.Category == "" {
		project.Category = types.CategoryOther
	}
	if !types.IsValidCategory(project.Category) {
		return nil, ErrInvalidInput
	}
	if project.Status == "" {
		project.Status = types.ProjectDraft
	}
	if !types.IsValidProjectStatus(project.Status) {
		return nil, ErrInvalidInput
	}

	if project.Slug == "" {
		uniqueSlug, err := s.uniqueSlug(ctx, project.Title, "")
		if err != nil {
			return nil, err
		}
		project.Slug = uniqueSlug
	} else {
		project.Slug = slug.Make(project.Slug)
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		if err == repository.ErrSlugTaken {
			return nil, ErrConflict
		}
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastProjectCreated(map[string]interface{}{
			"id": project.ID, "title": project.Title, "slug": project.Slug,
		})
	}
	return project, nil
}

func (s *portfolioService) Update(ctx context.Context, id string, in *repository.Project) (*repository.Project, error) {
	existing, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if in.Category != "" && !types.IsValidCategory(in.Category) {
		return nil, ErrInvalidInput
	}
	if in.Status != "" && !types.IsValidProjectStatus(in.Status) {
		return nil, ErrInvalidInput
	}

	// A title change without an explicit slug regenerates the slug.
	if in.Slug == "" && in.Title != existing.Title {
		uniqueSlug, err := s.uniqueSlug(ctx, in.Title, id)
		if err != nil {
			return nil, err
		}
		in.Slug = uniqueSlug
	} else if in.Slug == "" {
		in.Slug = existing.Slug
	} else {
		in.Slug = slug.Make(in.Slug)
	}
	if in.Category == "" {
		in.Category = existing.Category
	}
	if in.Status == "" {
		in.Status = existing.Status
	}

	in.ID = existing.ID
	in.CreatedBy = existing.CreatedBy

	if err := s.projectRepo.Update(ctx, in); err != nil {
		if err == repository.ErrSlugTaken {
			return nil, ErrConflict
		}
		return nil, err
	}

	updated, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastProjectUpdated(map[string]interface{}{
			"id": updated.ID, "title": updated.Title, "slug": updated.Slug,
		})
	}
	return updated, nil
}

func (s *portfolioService) SetFeatured(ctx context.Context, id string) (*repository.Project, error) {
	if err := s.projectRepo.SetFeatured(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastProjectFeatured(id)
	}
	return project, nil
}

func (s *portfolioService) Delete(ctx context.Context, id string) error {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrNotFound
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastProjectDeleted(id)
	}
	return nil
}

func (s *portfolioService) BulkUpdateStatus(ctx context.Context, ids []string, status string) (int64, error) {
	if len(ids) == 0 || !types.IsValidProjectStatus(status) {
		return 0, ErrInvalidInput
	}
	return s.projectRepo.UpdateStatusBulk(ctx, ids, status)
}

func (s *portfolioService) Reorder(ctx context.Context, orders []repository.ProjectOrder) error {
	if len(orders) == 0 {
		return ErrInvalidInput
	}
	return s.projectRepo.Reorder(ctx, orders)
}

// uniqueSlug derives a slug from the title and appends -2, -3, ... until it
// is free. excludeID skips the project being updated.
func (s *portfolioService) uniqueSlug(ctx context.Context, title, excludeID string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		return "", ErrInvalidInput
	}

	candidate := base
	for i := 2; ; i++ {
		exists, err := s.projectRepo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
