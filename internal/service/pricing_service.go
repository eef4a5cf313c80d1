package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pixelcraft-digital/pixelcraft-backend/internal/db"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/repository"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/socket"
)

// ============================================
// Pricing Service
// ============================================

const pricingCacheKey = "pricing:active"
const pricingCacheTTL = 5 * time.Minute

type PricingService interface {
	ListActive(ctx context.Context) ([]*repository.PricingPlan, error)
	ListAll(ctx context.Context) ([]*repository.PricingPlan, error)
	Get(ctx context.Context, id string) (*repository.PricingPlan, error)
	Create(ctx context.Context, plan *repository.PricingPlan) (*repository.PricingPlan, error)
	Update(ctx context.Context, id string, plan *repository.PricingPlan) (*repository.PricingPlan, error)
	// TogglePopular makes the plan the only popular one, or clears the flag
	// if the plan is already popular.
	TogglePopular(ctx context.Context, id string) (*repository.PricingPlan, error)
	Deactivate(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (*repository.PricingPlan, error)
}

type pricingService struct {
	planRepo    repository.PricingPlanRepository
	broadcaster *socket.Broadcaster
	cache       *db.RedisDB
}

func NewPricingService(planRepo repository.PricingPlanRepository, broadcaster *socket.Broadcaster, cache *db.RedisDB) PricingService {
	return &pricingService{planRepo: planRepo, broadcaster: broadcaster, cache: cache}
}

func (s *pricingService) ListActive(ctx context.Context) ([]*repository.PricingPlan, error) {
	if s.cache != nil {
		var cached []*repository.PricingPlan
		if err := s.cache.GetCache(ctx, pricingCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	plans, err := s.planRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetCache(ctx, pricingCacheKey, plans, pricingCacheTTL); err != nil {
			log.Printf("[Pricing] Failed to cache plans: %v", err)
		}
	}
	return plans, nil
}

func (s *pricingService) ListAll(ctx context.Context) ([]*repository.PricingPlan, error) {
	return s.planRepo.FindAll(ctx)
}

func (s *pricingService) Get(ctx context.Context, id string) (*repository.PricingPlan, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrNotFound
	}
	return plan, nil
}

func (s *pricingService) Create(ctx context.Context, plan *repository.PricingPlan) (*repository.PricingPlan, error) {
	if plan.Name == "" || len(plan.Features) == 0 {
		return nil, ErrInvalidInput
	}
	if plan.SortOrder < 0 || plan.SortOrder > 2 {
		return nil, ErrInvalidInput
	}
	plan.IsActive = true

	if err := s.planRepo.Create(ctx, plan); err != nil {
		switch err {
		case repository.ErrActivePlanLimit:
			return nil, ErrPlanLimit
		case repository.ErrOrderTaken:
			return nil, ErrOrderTaken
		}
		return nil, err
	}

	s.invalidateCache(ctx)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastPlanCreated(map[string]interface{}{"id": plan.ID, "name": plan.Name})
	}
	return plan, nil
}

func (s *pricingService) Update(ctx context.Context, id string, in *repository.PricingPlan) (*repository.PricingPlan, error) {
	existing, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if in.Name == "" || len(in.Features) == 0 {
		return nil, ErrInvalidInput
	}
	if in.SortOrder < 0 || in.SortOrder > 2 {
		return nil, ErrInvalidInput
	}

	in.ID = existing.ID
	in.IsActive = existing.IsActive
	// Popular only changes through TogglePopular.
	in.Popular = existing.Popular

	if err := s.planRepo.Update(ctx, in); err != nil {
		if err == repository.ErrOrderTaken {
			return nil, ErrOrderTaken
		}
		return nil, err
	}

	s.invalidateCache(ctx)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastPlanUpdated(map[string]interface{}{"id": id, "name": in.Name})
	}
	return s.planRepo.FindByID(ctx, id)
}

func (s *pricingService) TogglePopular(ctx context.Context, id string) (*repository.PricingPlan, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrNotFound
	}

	if plan.Popular {
		// Toggling off leaves zero popular plans, which is allowed.
		if err := s.planRepo.ClearPopular(ctx, id); err != nil {
			return nil, err
		}
	} else {
		if err := s.planRepo.SetPopular(ctx, id); err != nil {
			return nil, err
		}
	}

	s.invalidateCache(ctx)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastPlanUpdated(map[string]interface{}{"id": id, "popular": !plan.Popular})
	}
	return s.planRepo.FindByID(ctx, id)
}

func (s *pricingService) Deactivate(ctx context.Context, id string) error {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if plan == nil {
		return ErrNotFound
	}

	if err := s.planRepo.Deactivate(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastPlanUpdated(map[string]interface{}{"id": id, "isActive": false})
	}
	return nil
}

func (s *pricingService) Restore(ctx context.Context, id string) (*repository.PricingPlan, error) {
	if err := s.planRepo.Restore(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrActivePlanLimit):
			return nil, ErrPlanLimit
		case errors.Is(err, repository.ErrOrderTaken):
			return nil, ErrOrderTaken
		case errors.Is(err, pgx.ErrNoRows):
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.invalidateCache(ctx)
	return s.planRepo.FindByID(ctx, id)
}

func (s *pricingService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCache(ctx, "pricing:*"); err != nil {
		log.Printf("[Pricing] Failed to invalidate cache: %v", err)
	}
}
