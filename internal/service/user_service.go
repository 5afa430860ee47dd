package service

import (
	"context"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spec-kit/bloglist/internal/auth"
	"github.com/spec-kit/bloglist/internal/domain"
	"github.com/spec-kit/bloglist/internal/events"
	"github.com/spec-kit/bloglist/internal/repository"
	"github.com/spec-kit/bloglist/internal/validation"
	apperrors "github.com/spec-kit/bloglist/pkg/util"
)

// UserCreateInput describes a new account.
type UserCreateInput struct {
	Username string `json:"username" validate:"required,min=3"`
	Name     string `json:"name"`
	Password string `json:"password" validate:"required"`
}

// UserService manages accounts.
type UserService struct {
	users      repository.UserRepository
	validator  *validation.Validator
	dispatcher events.Dispatcher
	bcryptCost int
	logger     *zap.Logger
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Validator  *validation.Validator
	Dispatcher events.Dispatcher
	BcryptCost int
	Logger     *zap.Logger
}

// NewUserService builds the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		validator:  deps.Validator,
		dispatcher: deps.Dispatcher,
		bcryptCost: deps.BcryptCost,
		logger:     deps.Logger,
	}
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Create validates the input, hashes the password and stores the user.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	if input.Password != "" && utf8.RuneCountInString(input.Password) < auth.MinPasswordLength {
		return nil, apperrors.NewValidationError("password needs to have more than three characters",
			[]apperrors.Violation{{Field: "password", Rule: "min"}})
	}
	if err := s.validator.Struct("User", input); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		Name:         input.Name,
		PasswordHash: hash,
		Blogs:        []string{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventUserCreated, user.ID, events.Actor{},
		events.UserCreatedPayload{Username: user.Username, Name: user.Name}))
	return user, nil
}

func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
