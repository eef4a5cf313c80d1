package service

import (
	"context"

	"github.com/pixelcraft-digital/pixelcraft-backend/internal/repository"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/types"
	"golang.org/x/crypto/bcrypt"
)

// ============================================
// User Service (admin user management + profile)
// ============================================

type CreateUserInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
	IsActive  bool
}

type UpdateUserInput struct {
	Username  *string
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
	Role      *string
	IsActive  *bool
}

type UserService interface {
	GetByID(ctx context.Context, id string) (*repository.User, error)
	List(ctx context.Context) ([]*repository.User, error)
	Create(ctx context.Context, in CreateUserInput) (*repository.User, error)
	Update(ctx context.Context, actorID, id string, in UpdateUserInput) (*repository.User, error)
	Delete(ctx context.Context, actorID, id string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetByID(ctx context.Context, id string) (*repository.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]*repository.User, error) {
	return s.userRepo.FindAll(ctx)
}

func (s *userService) Create(ctx context.Context, in CreateUserInput) (*repository.User, error) {
	if !types.IsValidRole(in.Role) {
		return nil, ErrInvalidInput
	}
	if existing, _ := s.userRepo.FindByEmail(ctx, in.Email); existing != nil {
		return nil, ErrUserExists
	}
	if existing, _ := s.userRepo.FindByUsername(ctx, in.Username); existing != nil {
		return nil, ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &repository.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		IsActive:     in.IsActive,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, actorID, id string, in UpdateUserInput) (*repository.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	// Demoting or disabling the last active admin would lock everyone out.
	losesAdmin := user.Role == types.RoleAdmin && user.IsActive &&
		((in.Role != nil && *in.Role != types.RoleAdmin) || (in.IsActive != nil && !*in.IsActive))
	if losesAdmin {
		admins, err := s.userRepo.CountActiveAdmins(ctx)
		if err != nil {
			return nil, err
		}
		if admins <= 1 {
			return nil, ErrLastAdmin
		}
	}

	if in.Username != nil && *in.Username != user.Username {
		if existing, _ := s.userRepo.FindByUsername(ctx, *in.Username); existing != nil && existing.ID != id {
			return nil, ErrUserExists
		}
		user.Username = *in.Username
	}
	if in.Email != nil && *in.Email != user.Email {
		if existing, _ := s.userRepo.FindByEmail(ctx, *in.Email); existing != nil && existing.ID != id {
			return nil, ErrUserExists
		}
		user.Email = *in.Email
	}
	if in.Password != nil && *in.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashed)
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Role != nil {
		if !types.IsValidRole(*in.Role) {
			return nil, ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return ErrSelfDelete
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	if user.Role == types.RoleAdmin && user.IsActive {
		admins, err := s.userRepo.CountActiveAdmins(ctx)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}

	return s.userRepo.Delete(ctx, id)
}
