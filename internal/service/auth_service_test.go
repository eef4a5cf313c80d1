package service

import (
	"context"
	"testing"

	"github.com/pixelcraft-digital/pixelcraft-backend/internal/config"
	"github.com/pixelcraft-digital/pixelcraft-backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiry:     1,
		RefreshExpiry: 7,
	}
}

func TestRegisterCreatesViewer(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), repo)
	ctx := context.Background()

	user, accessToken, refreshToken, err := svc.Register(ctx, "jamie", "jamie@example.com", "password123", "Jamie", "Doe")
	require.NoError(t, err)

	assert.Equal(t, types.RoleViewer, user.Role, "self-registration never grants staff access")
	assert.True(t, user.IsActive)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.NotEqual(t, "password123", user.PasswordHash)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), repo)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "jamie", "jamie@example.com", "password123", "", "")
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, "other", "jamie@example.com", "password123", "", "")
	assert.ErrorIs(t, err, ErrUserExists)

	_, _, _, err = svc.Register(ctx, "jamie", "other@example.com", "password123", "", "")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLoginChecksPasswordAndActive(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), repo)
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "jamie", "jamie@example.com", "password123", "", "")
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "jamie@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, _, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	logged, _, _, err := svc.Login(ctx, "jamie@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	stored := repo.users[user.ID]
	stored.IsActive = false
	_, _, _, err = svc.Login(ctx, "jamie@example.com", "password123")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestRefreshTokenRotates(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), repo)
	ctx := context.Background()

	_, _, refreshToken, err := svc.Register(ctx, "jamie", "jamie@example.com", "password123", "", "")
	require.NoError(t, err)

	access, rotated, err := svc.RefreshToken(ctx, refreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEqual(t, refreshToken, rotated)

	// The original token is single-use.
	_, _, err = svc.RefreshToken(ctx, refreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, _, err = svc.RefreshToken(ctx, rotated)
	require.NoError(t, err)
}

func TestTokenClaimsRoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), repo)
	ctx := context.Background()

	user, accessToken, _, err := svc.Register(ctx, "jamie", "jamie@example.com", "password123", "", "")
	require.NoError(t, err)

	token, err := svc.ValidateToken(accessToken)
	require.NoError(t, err)
	require.True(t, token.Valid)

	userID, role, err := svc.GetClaimsFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, types.RoleViewer, role)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), newFakeUserRepo())

	_, err := svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}
