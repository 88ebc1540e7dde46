package service

import (
	"context"
	"testing"

	"ai-notes-be/internal/config"
	"ai-notes-be/internal/dto"
	"ai-notes-be/internal/repository/memory"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJwtSecret = "test-secret"

func newAuthServiceForTest() (IAuthService, *memory.RepositoryFactory) {
	factory := memory.NewRepositoryFactory()
	cfg := config.AuthConfig{JwtSecret: testJwtSecret, AccessTokenHours: 24}
	return NewAuthService(factory, cfg, memory.NewUserCache(), nil), factory
}

func registerTestUser(t *testing.T, svc IAuthService) *dto.RegisterResponse {
	t.Helper()
	res, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "Test User",
		Email:    "Test@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	return res
}

func TestAuthRegisterNormalizesEmail(t *testing.T) {
	svc, _ := newAuthServiceForTest()

	res := registerTestUser(t, svc)
	assert.Equal(t, "test@example.com", res.Email)

	// The same address in any casing is a duplicate.
	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "Other",
		Email:    "TEST@example.com",
		Password: "secret123",
	})
	assert.Equal(t, fiber.StatusBadRequest, appStatus(t, err))
}

func TestAuthRegisterHashesPassword(t *testing.T) {
	svc, factory := newAuthServiceForTest()
	registerTestUser(t, svc)

	user, err := factory.Users.FindByEmail(context.Background(), "test@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
}

func TestAuthLogin(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	registered := registerTestUser(t, svc)

	res, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "test@example.com",
		Password: "secret123",
	}, "127.0.0.1", "go-test")
	require.NoError(t, err)

	assert.Equal(t, registered.Id, res.User.Id)
	assert.Empty(t, res.RefreshToken) // only issued with rememberMe

	token, err := jwt.Parse(res.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(testJwtSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, registered.Id.String(), claims["user_id"])
}

func TestAuthLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	registerTestUser(t, svc)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "test@example.com",
		Password: "wrong",
	}, "", "")
	assert.Equal(t, fiber.StatusUnauthorized, appStatus(t, err))

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	}, "", "")
	assert.Equal(t, fiber.StatusUnauthorized, appStatus(t, err))
}

func TestAuthRememberMeIssuesRevocableRefreshToken(t *testing.T) {
	svc, factory := newAuthServiceForTest()
	registered := registerTestUser(t, svc)

	res, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:      "test@example.com",
		Password:   "secret123",
		RememberMe: true,
	}, "127.0.0.1", "go-test")
	require.NoError(t, err)
	require.NotEmpty(t, res.RefreshToken)

	// Only the hash is stored.
	stored, err := factory.Users.FindRefreshTokenByHash(context.Background(), hashToken(res.RefreshToken))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, registered.Id, stored.UserId)
	assert.NotEqual(t, res.RefreshToken, stored.TokenHash)

	require.NoError(t, svc.Logout(context.Background(), res.RefreshToken))

	// Revoked tokens no longer resolve by hash.
	revoked, err := factory.Users.FindRefreshTokenByHash(context.Background(), hashToken(res.RefreshToken))
	require.NoError(t, err)
	assert.Nil(t, revoked)

	// Logging out twice or with an unknown token is a no-op.
	require.NoError(t, svc.Logout(context.Background(), res.RefreshToken))
	require.NoError(t, svc.Logout(context.Background(), "unknown"))
	require.NoError(t, svc.Logout(context.Background(), ""))
}

func TestAuthProfile(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	registered := registerTestUser(t, svc)

	profile, err := svc.Profile(context.Background(), registered.Id)
	require.NoError(t, err)
	assert.Equal(t, registered.Id, profile.Id)
	assert.Equal(t, "test@example.com", profile.Email)
	assert.Equal(t, "Test User", profile.FullName)

	// Second call is served from cache and matches.
	cached, err := svc.Profile(context.Background(), registered.Id)
	require.NoError(t, err)
	assert.Equal(t, profile, cached)
}
