package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"research-directory/config"
	"research-directory/internal/delivery/dto"
	"research-directory/internal/service"
	"research-directory/pkg/jwt"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthUsecase(t *testing.T) (AuthUsecase, *jwt.SessionTokenService, service.SessionStore) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	sessionCfg := config.SessionConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
		Store:  "memory",
	}
	adminCfg := config.AdminConfig{
		Username:     "admin",
		PasswordHash: string(hash),
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	tokenService := jwt.NewSessionTokenService(sessionCfg)
	sessions := service.NewMemorySessionStore()
	return NewAuthUsecase(log, adminCfg, tokenService, sessions), tokenService, sessions
}

func TestLoginSuccess(t *testing.T) {
	uc, tokenService, sessions := newTestAuthUsecase(t)

	session, err := uc.Login(context.Background(), &dto.LoginRequest{
		Username: "admin",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.EqualValues(t, 3600, session.ExpiresIn)

	claims, err := tokenService.ValidateToken(session.Token)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Username)

	live, err := sessions.Exists(context.Background(), claims.TokenID)
	require.NoError(t, err)
	require.True(t, live)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	uc, _, _ := newTestAuthUsecase(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = uc.Login(ctx, &dto.LoginRequest{Username: "intruder", Password: "correct horse"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutRevokesSession(t *testing.T) {
	uc, tokenService, sessions := newTestAuthUsecase(t)
	ctx := context.Background()

	session, err := uc.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "correct horse"})
	require.NoError(t, err)

	claims, err := tokenService.ValidateToken(session.Token)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, claims.TokenID))

	live, err := sessions.Exists(ctx, claims.TokenID)
	require.NoError(t, err)
	require.False(t, live)

	// Logging out an already-revoked session stays a no-op.
	require.NoError(t, uc.Logout(ctx, claims.TokenID))
}
