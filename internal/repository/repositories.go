package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentinel errors surfaced by repositories when a database-level invariant
// rejects a write. The service layer maps these onto API errors.
var (
	ErrActivePlanLimit = errors.New("active plan limit reached")
	ErrOrderTaken      = errors.New("plan order already taken")
	ErrSlugTaken       = errors.New("project slug already taken")
)

type Repositories struct {
	UserRepo    UserRepository
	ProjectRepo ProjectRepository
	PricingRepo PricingPlanRepository
	ContactRepo ContactRepository
	ContentRepo ContentRepository
}

func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepo:    NewUserRepository(pool),
		ProjectRepo: NewProjectRepository(pool),
		PricingRepo: NewPricingPlanRepository(pool),
		ContactRepo: NewContactRepository(pool),
		ContentRepo: NewContentRepository(pool),
	}
}
