package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"fleetrent-backend/internal/config"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/security"
)

var (
	ErrUnknownUser        = errors.New("unknown user")
	ErrInvalidCredentials = errors.New("invalid name or password")
)

type authService struct {
	credentials  map[string]config.Credential
	tokenManager security.TokenManager
}

// NewAuthService takes the staff credentials resolved at startup.
func NewAuthService(auth config.AuthConfig, tm security.TokenManager) AuthService {
	creds := make(map[string]config.Credential, len(auth.Credentials))
	for role, c := range auth.Credentials {
		creds[role] = c
	}
	return &authService{credentials: creds, tokenManager: tm}
}

func (s *authService) Login(ctx context.Context, name, password string) (*LoginResult, error) {
	logger.EnterMethod("authService.Login", "name", name)

	role, cred, ok := s.lookup(name)
	if !ok {
		logger.WarnContext(ctx, "Login attempt for unknown user", "name", name)
		logger.ExitMethodWithError("authService.Login", ErrUnknownUser, "name", name)
		return nil, ErrUnknownUser
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		logger.WarnContext(ctx, "Login attempt with wrong password", "name", name, "role", role)
		logger.ExitMethodWithError("authService.Login", ErrInvalidCredentials, "name", name)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenManager.GenerateAccessToken(cred.Name, role)
	if err != nil {
		logger.ExitMethodWithError("authService.Login", err, "name", name)
		return nil, err
	}

	logger.InfoContext(ctx, "Staff signed in", "name", name, "role", role)
	logger.ExitMethod("authService.Login", "name", name, "role", role)
	return &LoginResult{AccessToken: token, ExpiresAt: expiresAt, Role: role}, nil
}

// lookup finds the role whose configured name matches.
func (s *authService) lookup(name string) (string, config.Credential, bool) {
	for _, role := range []string{config.RoleAdmin, config.RoleOperator, config.RoleFinance} {
		cred, ok := s.credentials[role]
		if !ok || cred.Name == "" {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(cred.Name), []byte(name)) == 1 {
			return role, cred, true
		}
	}
	return "", config.Credential{}, false
}
