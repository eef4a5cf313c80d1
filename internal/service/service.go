package service

import (
	"errors"

	"github.com/pixelcraft-digital/pixelcraft-backend/internal/config"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/db"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/email"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/repository"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/socket"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrPlanLimit          = errors.New("maximum of 3 pricing plans allowed")
	ErrOrderTaken         = errors.New("order already taken")
	ErrSelfDelete         = errors.New("cannot delete your own account")
	ErrLastAdmin          = errors.New("cannot remove the last active admin")
)

// ============================================
// Services Container
// ============================================

type Services struct {
	Auth      AuthService
	User      UserService
	Portfolio PortfolioService
	Pricing   PricingService
	Contact   ContactService
	Content   ContentService
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Config      *config.Config
	Repos       *repository.Repositories
	EmailSvc    *email.Service
	Broadcaster *socket.Broadcaster
	Cache       *db.RedisDB
}

func NewServices(deps *ServiceDeps) *Services {
	var emailer ContactEmailer
	if deps.EmailSvc != nil {
		emailer = deps.EmailSvc
	}

	return &Services{
		Auth:      NewAuthService(deps.Config, deps.Repos.UserRepo),
		User:      NewUserService(deps.Repos.UserRepo),
		Portfolio: NewPortfolioService(deps.Repos.ProjectRepo, deps.Broadcaster),
		Pricing:   NewPricingService(deps.Repos.PricingRepo, deps.Broadcaster, deps.Cache),
		Contact:   NewContactService(deps.Repos.ContactRepo, emailer, deps.Broadcaster, deps.Config),
		Content:   NewContentService(deps.Repos.ContentRepo, deps.Broadcaster),
	}
}
