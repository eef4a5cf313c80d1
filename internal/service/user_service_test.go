package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pixelcraft-digital/pixelcraft-backend/internal/repository"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users  map[string]*repository.User
	tokens map[string]*repository.RefreshToken
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[string]*repository.User),
		tokens: make(map[string]*repository.RefreshToken),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *repository.User) error {
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	copied := *u
	f.users[u.ID] = &copied
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*repository.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*repository.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*repository.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]*repository.User, error) {
	var out []*repository.User
	for _, u := range f.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *repository.User) error {
	copied := *u
	f.users[u.ID] = &copied
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, id string) error {
	if u, ok := f.users[id]; ok {
		now := time.Now()
		u.LastLogin = &now
	}
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) CountActiveAdmins(_ context.Context) (int, error) {
	n := 0
	for _, u := range f.users {
		if u.Role == types.RoleAdmin && u.IsActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepo) SaveRefreshToken(_ context.Context, rt *repository.RefreshToken) error {
	copied := *rt
	f.tokens[rt.Token] = &copied
	return nil
}

func (f *fakeUserRepo) FindRefreshToken(_ context.Context, token string) (*repository.RefreshToken, error) {
	rt, ok := f.tokens[token]
	if !ok {
		return nil, nil
	}
	copied := *rt
	return &copied, nil
}

func (f *fakeUserRepo) DeleteRefreshToken(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

func (f *fakeUserRepo) DeleteExpiredRefreshTokens(_ context.Context) (int64, error) {
	var n int64
	for token, rt := range f.tokens {
		if time.Now().After(rt.ExpiresAt) {
			delete(f.tokens, token)
			n++
		}
	}
	return n, nil
}

func seedAdmin(t *testing.T, repo *fakeUserRepo) *repository.User {
	t.Helper()
	admin := &repository.User{
		Username: "admin",
		Email:    "admin@example.com",
		Role:     types.RoleAdmin,
		IsActive: true,
	}
	require.NoError(t, repo.Create(context.Background(), admin))
	return admin
}

func TestDeleteOwnAccountRejected(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	admin := seedAdmin(t, repo)

	err := svc.Delete(context.Background(), admin.ID, admin.ID)
	assert.ErrorIs(t, err, ErrSelfDelete)
}

func TestDeleteLastAdminRejected(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	admin := seedAdmin(t, repo)

	actor := &repository.User{Username: "editor", Email: "ed@example.com", Role: types.RoleEditor, IsActive: true}
	require.NoError(t, repo.Create(context.Background(), actor))

	err := svc.Delete(context.Background(), actor.ID, admin.ID)
	assert.ErrorIs(t, err, ErrLastAdmin)
}

func TestDeleteAdminWithAnotherAdminPresent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	first := seedAdmin(t, repo)
	second := &repository.User{Username: "admin2", Email: "admin2@example.com", Role: types.RoleAdmin, IsActive: true}
	require.NoError(t, repo.Create(ctx, second))

	require.NoError(t, svc.Delete(ctx, second.ID, first.ID))

	_, err := svc.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDemoteLastAdminRejected(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	admin := seedAdmin(t, repo)

	editor := types.RoleEditor
	_, err := svc.Update(context.Background(), admin.ID, admin.ID, UpdateUserInput{Role: &editor})
	assert.ErrorIs(t, err, ErrLastAdmin)

	disabled := false
	_, err = svc.Update(context.Background(), admin.ID, admin.ID, UpdateUserInput{IsActive: &disabled})
	assert.ErrorIs(t, err, ErrLastAdmin)
}

func TestCreateUserRejectsDuplicates(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()
	seedAdmin(t, repo)

	_, err := svc.Create(ctx, CreateUserInput{
		Username: "someone", Email: "admin@example.com",
		Password: "password123", Role: types.RoleEditor, IsActive: true,
	})
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = svc.Create(ctx, CreateUserInput{
		Username: "admin", Email: "new@example.com",
		Password: "password123", Role: types.RoleEditor, IsActive: true,
	})
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = svc.Create(ctx, CreateUserInput{
		Username: "fresh", Email: "fresh@example.com",
		Password: "password123", Role: "superuser", IsActive: true,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
