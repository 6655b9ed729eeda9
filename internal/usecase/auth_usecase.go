package usecase

import (
	"context"
	"errors"

	"research-directory/config"
	"research-directory/internal/delivery/dto"
	"research-directory/internal/service"
	"research-directory/pkg/jwt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error)
	Logout(ctx context.Context, tokenID string) error
}

type authUsecase struct {
	log          *logrus.Logger
	admin        config.AdminConfig
	tokenService *jwt.SessionTokenService
	sessions     service.SessionStore
}

func NewAuthUsecase(
	log *logrus.Logger,
	admin config.AdminConfig,
	tokenService *jwt.SessionTokenService,
	sessions service.SessionStore,
) AuthUsecase {
	return &authUsecase{
		log:          log,
		admin:        admin,
		tokenService: tokenService,
		sessions:     sessions,
	}
}

// Login checks the submitted pair against the configured admin credential and
// opens a privileged session on match. The password hash comparison runs even
// for a wrong username so both failure modes cost the same.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error) {
	usernameMatches := req.Username == u.admin.Username
	if err := bcrypt.CompareHashAndPassword([]byte(u.admin.PasswordHash), []byte(req.Password)); err != nil || !usernameMatches {
		return nil, ErrInvalidCredentials
	}

	token, tokenID, err := u.tokenService.GenerateSessionToken(req.Username)
	if err != nil {
		u.log.Warnf("Failed to generate session token: %+v", err)
		return nil, err
	}

	if err := u.sessions.Save(ctx, tokenID, u.tokenService.GetExpiry()); err != nil {
		return nil, err
	}

	return &dto.SessionResponse{
		Token:     token,
		ExpiresIn: int64(u.tokenService.GetExpiry().Seconds()),
	}, nil
}

// Logout revokes the session unconditionally; revoking an already-dead
// session is not an error.
func (u *authUsecase) Logout(ctx context.Context, tokenID string) error {
	return u.sessions.Revoke(ctx, tokenID)
}
