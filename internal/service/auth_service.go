package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/bloglist/internal/auth"
	"github.com/spec-kit/bloglist/internal/config"
	"github.com/spec-kit/bloglist/internal/domain"
	"github.com/spec-kit/bloglist/internal/repository"
	apperrors "github.com/spec-kit/bloglist/pkg/util"
)

// ErrTooManyAttempts is returned by Login while a username is throttled.
var ErrTooManyAttempts = errors.New("too many failed login attempts")

const invalidCredentialsMessage = "invalid username or password"

// AuthService coordinates login.
type AuthService struct {
	users   repository.UserRepository
	tokens  *auth.TokenCodec
	limiter *LoginLimiter
	logger  *zap.Logger
}

// NewAuthService builds the service. The signing secret is fixed here for the process lifetime.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, limiter *LoginLimiter, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:   users,
		tokens:  auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL()),
		limiter: limiter,
		logger:  logger,
	}
}

// Login checks the credentials and issues a token for the user.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	if !s.limiter.Allow(ctx, username) {
		return nil, ErrTooManyAttempts
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			s.limiter.RecordFailure(ctx, username)
			return nil, apperrors.NewUnauthorized(invalidCredentialsMessage)
		}
		return nil, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, err
		}
		s.limiter.RecordFailure(ctx, username)
		return nil, apperrors.NewUnauthorized(invalidCredentialsMessage)
	}
	s.limiter.Reset(ctx, username)

	token, exp, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("user logged in", zap.String("user_id", user.ID))
	return &domain.Session{Token: token, Username: user.Username, Name: user.Name, ExpiresAt: exp}, nil
}

// TokenCodec exposes the codec for middleware usage.
func (s *AuthService) TokenCodec() *auth.TokenCodec {
	return s.tokens
}
