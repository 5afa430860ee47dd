package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bloglist/internal/domain"
	"github.com/spec-kit/bloglist/internal/repository"
	apperrors "github.com/spec-kit/bloglist/pkg/util"
)

const (
	userKey      = "auth_user"
	bearerPrefix = "Bearer "
)

// AuthMiddleware validates bearer tokens and optionally loads the caller.
type AuthMiddleware struct {
	tokens *TokenCodec
	users  repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenCodec, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// ValidateToken rejects requests without a valid token and attaches nothing.
func (m *AuthMiddleware) ValidateToken(c *fiber.Ctx) error {
	if _, err := m.verify(c); err != nil {
		return err
	}
	return c.Next()
}

// ResolveUser validates the token, then loads the user it names into the request.
func (m *AuthMiddleware) ResolveUser(c *fiber.Ctx) error {
	subjectID, err := m.verify(c)
	if err != nil {
		return err
	}

	user, err := m.users.GetByID(c.UserContext(), subjectID)
	if err != nil {
		switch apperrors.KindOf(err) {
		case apperrors.KindNotFound, apperrors.KindMalformattedID:
			return apperrors.NewInvalidToken(err)
		default:
			return err
		}
	}

	c.Locals(userKey, user)
	return c.Next()
}

func (m *AuthMiddleware) verify(c *fiber.Ctx) (string, error) {
	subjectID, err := m.tokens.Verify(ExtractToken(c.Get(fiber.HeaderAuthorization)))
	switch {
	case err == nil:
		return subjectID, nil
	case errors.Is(err, ErrTokenExpired):
		return "", apperrors.NewTokenExpired(err)
	case errors.Is(err, ErrTokenMissing):
		return "", apperrors.NewMalformedToken(err)
	default:
		return "", apperrors.NewInvalidToken(err)
	}
}

// ExtractToken strips the bearer scheme. Anything else is returned untouched so that
// verification decides what is wrong with it.
func ExtractToken(header string) string {
	if strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimPrefix(header, bearerPrefix)
	}
	return header
}

// UserFromContext retrieves the user attached by ResolveUser.
func UserFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(userKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}
