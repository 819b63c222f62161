package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fleetrent-backend/internal/config"
	"fleetrent-backend/internal/security"
	"fleetrent-backend/internal/service"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	tm := security.NewTokenManager("test-secret", time.Hour)
	svc := service.NewAuthService(config.AuthConfig{Credentials: map[string]config.Credential{
		config.RoleAdmin:   {Name: "boss", PasswordHash: string(hash)},
		config.RoleFinance: {Name: "books", PasswordHash: string(hash)},
	}}, tm)

	t.Run("Success", func(t *testing.T) {
		res, err := svc.Login(ctx, "books", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, config.RoleFinance, res.Role)
		assert.True(t, res.ExpiresAt.After(time.Now()))

		claims, err := tm.ValidateToken(res.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "books", claims.Name)
		assert.Equal(t, config.RoleFinance, claims.Role)
	})

	t.Run("Unknown User", func(t *testing.T) {
		_, err := svc.Login(ctx, "stranger", "s3cret")
		assert.ErrorIs(t, err, service.ErrUnknownUser)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		_, err := svc.Login(ctx, "boss", "guess")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}
